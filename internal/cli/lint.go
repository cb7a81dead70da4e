package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/relabel/internal/table"
)

// LintOptions holds flags for the lint command.
type LintOptions struct {
	*RootOptions
	Table string
}

// LintResult is the json payload of the lint command.
type LintResult struct {
	Table    string          `json:"table"`
	Pairs    int             `json:"pairs"`
	Findings []table.Finding `json:"findings"`
}

// NewLintCommand creates the lint command.
func NewLintCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LintOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report table entries that table order can shadow",
		Long: `Check a replacement table without applying it.

Reports pairs whose match contains an earlier, shorter match (the earlier
pass fragments the phrase first), duplicate and empty matches, and matches
that are not NFC normalized. The table is never reordered.

Exits 1 when there are findings.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "replacement table file (.yaml, .yml or .cue); default built-in")

	return cmd
}

func runLint(opts *LintOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	tbl, source, err := loadTable(opts.Table)
	if err != nil {
		return fail(formatter, errorCode(err), fmt.Sprintf("loading table: %v", err), err)
	}
	formatter.VerboseLog("Linting %d pair(s) from %s", len(tbl), source)

	result := LintResult{Table: source, Pairs: len(tbl), Findings: table.Lint(tbl)}
	if result.Findings == nil {
		result.Findings = []table.Finding{}
	}

	if len(result.Findings) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(result)
		}
		fmt.Fprintf(formatter.Writer, "✓ No findings in %s table (%d pairs)\n", source, len(tbl))
		return nil
	}

	return outputLintFindings(formatter, result)
}

func outputLintFindings(formatter *OutputFormatter, result LintResult) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("lint found %d finding(s)", len(result.Findings)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    ErrCodeLintFindings,
				Message: result.Findings[0].String(),
				Details: result.Findings[0],
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintf(formatter.Writer, "✗ %d finding(s) in %s table (%d pairs)\n\n", len(result.Findings), result.Table, result.Pairs)
	for _, f := range result.Findings {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n", f.Kind, f)
	}
	return exitErr
}
