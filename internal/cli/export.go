package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veldt-io/sparqstat/internal/report"
	"github.com/veldt-io/sparqstat/internal/store"
)

// ExportSummary reports what an export produced.
type ExportSummary struct {
	Queries    int      `json:"queries"`
	Statements []string `json:"statements"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <db-path>",
		Short: "Render stored metrics as SPARQL update statements",
		Long: `Read every analyzed query from the store and print one INSERT DATA
statement per query, in ingest order. The output is what an upload
stage would send to a remote triple store.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(dbPath); err != nil {
		formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeGeneric, fmt.Sprintf("open store: %v", err), nil)
		return WrapExitError(ExitCommandError, "open store", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	recs, err := db.ListQueries(ctx)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "list queries", err)
	}

	summary := ExportSummary{}
	for _, rec := range recs {
		metrics, err := db.ReadMetrics(ctx, rec.ID)
		if err != nil {
			formatter.Error(ErrCodeGeneric, err.Error(), rec.ID)
			return WrapExitError(ExitCommandError, "read metrics", err)
		}
		if len(metrics) == 0 {
			formatter.VerboseLog("skipping %s: no metrics stored", rec.ID)
			continue
		}
		summary.Statements = append(summary.Statements, report.UpdateStatement(report.QueryIRI(rec.ID), metrics))
		summary.Queries++
	}

	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	for _, stmt := range summary.Statements {
		fmt.Fprintln(formatter.Writer, stmt)
	}
	return nil
}
