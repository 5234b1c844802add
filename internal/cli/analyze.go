package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldt-io/sparqstat/internal/sparql"
	"github.com/veldt-io/sparqstat/internal/stats"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <query-file>",
		Short: "Compute metrics for one query",
		Long: `Parse a single SPARQL query file and print its structural metrics.

Pass "-" to read the query from stdin.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runAnalyze(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	text, err := readQueryText(path, cmd.InOrStdin())
	if err != nil {
		formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "read query", err)
	}

	q, err := sparql.Parse(text)
	if err != nil {
		formatter.Error(ErrCodeParseFailed, err.Error(), path)
		return WrapExitError(ExitFailure, "parse query", err)
	}

	metrics := stats.Analyze(q)

	if opts.Format == "json" {
		return formatter.Success(metrics)
	}
	return formatter.Success(formatMetrics(metrics))
}

// readQueryText reads the query from a file, or from stdin when path
// is "-".
func readQueryText(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// formatMetrics renders metrics one per line in report order.
func formatMetrics(metrics stats.Metrics) string {
	var b strings.Builder
	for i, name := range stats.Names {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s = %d", name, metrics[name])
	}
	return b.String()
}
