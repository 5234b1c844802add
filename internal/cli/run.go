package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/veldt-io/sparqstat/internal/report"
	"github.com/veldt-io/sparqstat/internal/sparql"
	"github.com/veldt-io/sparqstat/internal/stats"
	"github.com/veldt-io/sparqstat/internal/store"
)

// RunSummary reports what one ingest run did.
type RunSummary struct {
	Dataset    string `json:"dataset"`
	BatchToken string `json:"batch_token"`
	Analyzed   int    `json:"analyzed"`
	Skipped    int    `json:"skipped"`
	Store      string `json:"store"`
}

func (s RunSummary) String() string {
	return fmt.Sprintf("dataset %s: analyzed %d, skipped %d (batch %s, store %s)",
		s.Dataset, s.Analyzed, s.Skipped, s.BatchToken, s.Store)
}

// newBatchToken tags one ingest run. UUIDv7 keeps batch tokens
// chronologically sortable; tests swap in a fixed generator.
var newBatchToken = func() (string, error) {
	token, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return token.String(), nil
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <manifest-dir>",
		Short: "Analyze a query dataset and store the metrics",
		Long: `Load the CUE dataset manifest, parse every query file it names,
compute metrics, and write queries and metrics to the manifest's SQLite
store. Each run is tagged with a fresh batch token (UUIDv7).

Query files that fail to parse are logged and skipped; the run
continues with the rest of the dataset.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRun(opts *RootOptions, manifestDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	manifest, err := LoadManifest(manifestDir)
	if err != nil {
		code := ErrCodeGeneric
		if loadErr, ok := err.(*LoadError); ok {
			code = loadErr.Code
		}
		formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "load manifest", err)
	}

	files, err := FindQueryFiles(manifest.Queries)
	if err != nil {
		formatter.Error(ErrCodeScanError, fmt.Sprintf("error scanning queries: %v", err), nil)
		return WrapExitError(ExitCommandError, "scan queries", err)
	}
	if len(files) == 0 {
		formatter.Error(ErrCodeNoFiles, fmt.Sprintf("no query files found in %s", manifest.Queries), nil)
		return NewExitError(ExitCommandError, "no query files found")
	}

	token, err := newBatchToken()
	if err != nil {
		formatter.Error(ErrCodeGeneric, fmt.Sprintf("generate batch token: %v", err), nil)
		return WrapExitError(ExitCommandError, "generate batch token", err)
	}

	db, err := store.Open(manifest.Store)
	if err != nil {
		formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("open store: %v", err), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer db.Close()

	logger.Info("starting run",
		"dataset", manifest.Name,
		"batch_token", token,
		"files", len(files))

	ctx := cmd.Context()
	summary := RunSummary{
		Dataset:    manifest.Name,
		BatchToken: token,
		Store:      manifest.Store,
	}

	var seq int64
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "file", path, "error", err)
			summary.Skipped++
			continue
		}
		text := string(data)

		q, err := sparql.Parse(text)
		if err != nil {
			logger.Warn("skipping unparseable query", "file", path, "error", err)
			summary.Skipped++
			continue
		}

		id := report.QueryID(text)
		seq++
		if err := db.WriteQuery(ctx, store.QueryRecord{
			ID:         id,
			Text:       text,
			BatchToken: token,
			Seq:        seq,
		}); err != nil {
			formatter.Error(ErrCodeWriteFailed, err.Error(), path)
			return WrapExitError(ExitCommandError, "write query", err)
		}

		metrics := stats.Analyze(q)
		if err := db.WriteMetrics(ctx, id, metrics); err != nil {
			formatter.Error(ErrCodeWriteFailed, err.Error(), path)
			return WrapExitError(ExitCommandError, "write metrics", err)
		}

		logger.Debug("analyzed query",
			"file", path,
			"query_id", id,
			"triples", metrics[stats.MetricTriples])
		summary.Analyzed++
	}

	logger.Info("run complete",
		"dataset", manifest.Name,
		"analyzed", summary.Analyzed,
		"skipped", summary.Skipped)

	return formatter.Success(summary)
}
