package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/relabel/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Ledger string
	Path   string
}

// HistoryResult is the json payload of the history command.
type HistoryResult struct {
	Runs []store.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List runs recorded in a ledger",
		Long: `List runs recorded by "relabel apply --ledger", oldest first.

Example:
  relabel history --ledger relabel.db
  relabel history --ledger relabel.db --path src/app/page.tsx --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "path to SQLite ledger (required)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "only show runs for this document path")
	_ = cmd.MarkFlagRequired("ledger")

	return cmd
}

func runHistory(ctx context.Context, opts *HistoryOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	// Opening would create an empty ledger; a typo should be an error instead.
	if _, err := os.Stat(opts.Ledger); err != nil {
		return fail(formatter, ErrCodeNotFound, fmt.Sprintf("ledger not found: %s", opts.Ledger), err)
	}

	st, err := store.Open(opts.Ledger)
	if err != nil {
		return fail(formatter, ErrCodeLedger, fmt.Sprintf("opening ledger: %v", err), err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, opts.Path)
	if err != nil {
		return fail(formatter, ErrCodeLedger, fmt.Sprintf("reading ledger: %v", err), err)
	}

	if opts.Verbose {
		for i := range runs {
			full, err := st.ReadRun(ctx, runs[i].ID)
			if err != nil {
				return fail(formatter, errorCode(err), fmt.Sprintf("reading run: %v", err), err)
			}
			runs[i] = full
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%d  %s  %s  %d replacement(s)  table %s\n",
			r.Seq, r.ID, r.Path, r.Replacements, shortDigest(r.TableDigest))
		for _, p := range r.Passes {
			fmt.Fprintf(formatter.Writer, "      [%d] %q ×%d\n", p.Index, p.Match, p.Count)
		}
	}
	return nil
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	return d
}
