package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldt-io/sparqstat/internal/sparql"
)

// ValidationResult holds validation results for a query directory.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one rejected query file.
type ValidationError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <queries-dir>",
		Short: "Check that every query in a directory parses",
		Long: `Parse every .rq and .sparql file under a directory without storing
anything. All parse errors are collected and reported together, so one
broken query doesn't hide the rest.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	files, err := FindQueryFiles(dir)
	if err != nil {
		formatter.Error(ErrCodeScanError, fmt.Sprintf("error scanning directory: %v", err), nil)
		return WrapExitError(ExitCommandError, "scan queries", err)
	}
	if len(files) == 0 {
		formatter.Error(ErrCodeNoFiles, fmt.Sprintf("no query files found in %s", dir), nil)
		return NewExitError(ExitCommandError, "no query files found")
	}

	result := ValidationResult{Valid: true, Files: len(files)}
	for _, path := range files {
		formatter.VerboseLog("Validating %s", path)
		data, err := os.ReadFile(path)
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{File: path, Message: err.Error()})
			continue
		}
		if _, err := sparql.Parse(string(data)); err != nil {
			result.Errors = append(result.Errors, ValidationError{File: path, Message: err.Error()})
		}
	}
	result.Valid = len(result.Errors) == 0

	if !result.Valid {
		if opts.Format == "json" {
			formatter.Error(ErrCodeParseFailed, fmt.Sprintf("%d of %d query file(s) failed to parse", len(result.Errors), result.Files), result.Errors)
		} else {
			for _, e := range result.Errors {
				fmt.Fprintf(formatter.Writer, "%s: %s\n", e.File, e.Message)
			}
			fmt.Fprintf(formatter.Writer, "%d of %d query file(s) failed to parse\n", len(result.Errors), result.Files)
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("%d query file(s) OK", result.Files))
}
