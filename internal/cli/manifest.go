package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// Manifest describes one query dataset: where its query files live and
// where the metrics database goes. Loaded from CUE so datasets can
// share constraint blocks and defaults across manifests.
type Manifest struct {
	Name    string // dataset name, used in logs and reports
	Queries string // query file directory, resolved against the manifest dir
	Store   string // SQLite database path, resolved against the manifest dir
}

// LoadError represents an error that occurred during manifest loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No query files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeParseFailed = "E008" // Query parse error

	// Manifest validation errors
	ErrCodeManifestName    = "E101" // Missing dataset name
	ErrCodeManifestQueries = "E102" // Missing or invalid queries directory
	ErrCodeManifestStore   = "E103" // Missing store path
)

// LoadManifest loads the dataset manifest from a directory of CUE
// files. Relative paths in the manifest resolve against dir.
func LoadManifest(dir string) (*Manifest, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("manifest directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing manifest directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	dataset := value.LookupPath(cue.ParsePath("dataset"))
	if !dataset.Exists() {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: "manifest has no dataset block"}
	}

	m := &Manifest{}
	if m.Name, err = stringField(dataset, "name"); err != nil {
		return nil, &LoadError{Code: ErrCodeManifestName, Message: err.Error()}
	}
	if m.Queries, err = stringField(dataset, "queries"); err != nil {
		return nil, &LoadError{Code: ErrCodeManifestQueries, Message: err.Error()}
	}
	if m.Store, err = stringField(dataset, "store"); err != nil {
		return nil, &LoadError{Code: ErrCodeManifestStore, Message: err.Error()}
	}

	if !filepath.IsAbs(m.Queries) {
		m.Queries = filepath.Join(dir, m.Queries)
	}
	if !filepath.IsAbs(m.Store) {
		m.Store = filepath.Join(dir, m.Store)
	}

	if info, err := os.Stat(m.Queries); err != nil || !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeManifestQueries, Message: fmt.Sprintf("queries directory not found: %s", m.Queries)}
	}

	return m, nil
}

// stringField extracts a required concrete string field from a CUE value.
func stringField(v cue.Value, name string) (string, error) {
	field := v.LookupPath(cue.ParsePath(name))
	if !field.Exists() {
		return "", fmt.Errorf("dataset.%s is required", name)
	}
	s, err := field.String()
	if err != nil {
		return "", fmt.Errorf("dataset.%s: %v", name, err)
	}
	if s == "" {
		return "", fmt.Errorf("dataset.%s must be non-empty", name)
	}
	return s, nil
}

// FindQueryFiles walks the directory and returns all .rq and .sparql
// file paths in sorted order, so ingest sequence numbers are stable.
func FindQueryFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".rq", ".sparql":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
