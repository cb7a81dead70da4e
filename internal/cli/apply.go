package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/relabel/internal/document"
	"github.com/roach88/relabel/internal/store"
	"github.com/roach88/relabel/internal/subst"
	"github.com/roach88/relabel/internal/table"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	*RootOptions
	Table  string // table file; empty means built-in
	Ledger string // SQLite run ledger; empty disables recording

	// IDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs store.IDGenerator
}

// ApplyResult is the json payload of a successful apply.
type ApplyResult struct {
	Path         string             `json:"path"`
	Table        string             `json:"table"`
	TableDigest  string             `json:"table_digest"`
	Replacements int                `json:"replacements"`
	Passes       []subst.PassResult `json:"passes"`
	RunID        string             `json:"run_id,omitempty"`
	Seq          int64              `json:"seq,omitempty"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ApplyOptions{RootOptions: rootOpts}
	return newApplyCommand(opts)
}

func newApplyCommand(opts *ApplyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Translate labels in a file in place",
		Long: `Apply the replacement table to a file and overwrite it.

The whole file is read, every pair is applied in table order, and the result
is written back to the same path. Nothing is written if the file cannot be
read or the table is invalid. There is no backup.

Example:
  relabel apply src/app/page.tsx
  relabel apply --table labels.yaml --ledger relabel.db src/app/page.tsx`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "replacement table file (.yaml, .yml or .cue); default built-in")
	cmd.Flags().StringVar(&opts.Ledger, "ledger", "", "record the run in this SQLite ledger")

	return cmd
}

func runApply(ctx context.Context, opts *ApplyOptions, path string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)
	configureLogging(formatter.GetErrWriter(), opts.Verbose)

	tbl, source, err := loadTable(opts.Table)
	if err != nil {
		return fail(formatter, errorCode(err), fmt.Sprintf("loading table: %v", err), err)
	}
	digest, err := table.Digest(tbl)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, fmt.Sprintf("hashing table: %v", err), err)
	}
	slog.Debug("table loaded", "source", source, "pairs", len(tbl), "digest", digest)

	doc, err := document.Read(path)
	if err != nil {
		return fail(formatter, errorCode(err), err.Error(), err)
	}
	inputHash := store.HashContent(doc.Text)

	out, report, err := subst.ApplyWithReport(doc.Text, tbl)
	if err != nil {
		return fail(formatter, errorCode(err), err.Error(), err)
	}
	for _, p := range report.Changed() {
		slog.Debug("pass", "index", p.Index, "match", p.Match, "count", p.Count)
	}

	if err := doc.Write(out); err != nil {
		return fail(formatter, errorCode(err), err.Error(), err)
	}
	slog.Debug("document written", "path", path, "replacements", report.Total())

	result := ApplyResult{
		Path:         path,
		Table:        source,
		TableDigest:  digest,
		Replacements: report.Total(),
		Passes:       report.Changed(),
	}
	if result.Passes == nil {
		result.Passes = []subst.PassResult{}
	}

	if opts.Ledger != "" {
		run, err := recordRun(ctx, opts, store.Run{
			Path:         path,
			TableDigest:  digest,
			InputSHA256:  inputHash,
			OutputSHA256: store.HashContent(out),
			Replacements: report.Total(),
			Passes:       toStorePasses(report.Passes),
		})
		if err != nil {
			// The document is already written; only the record is missing.
			return fail(formatter, ErrCodeLedger, fmt.Sprintf("file written but run not recorded: %v", err), err)
		}
		result.RunID, result.Seq = run.ID, run.Seq
		slog.Debug("run recorded", "ledger", opts.Ledger, "run_id", run.ID, "seq", run.Seq)
	}

	return outputApplySuccess(formatter, result)
}

func recordRun(ctx context.Context, opts *ApplyOptions, run store.Run) (store.Run, error) {
	ids := opts.IDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	run.ID = ids.Generate()

	st, err := store.Open(opts.Ledger)
	if err != nil {
		return store.Run{}, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing ledger", "error", closeErr)
		}
	}()
	return st.RecordRun(ctx, run)
}

func toStorePasses(passes []subst.PassResult) []store.Pass {
	out := make([]store.Pass, 0, len(passes))
	for _, p := range passes {
		out = append(out, store.Pass{Index: p.Index, Match: p.Match, Count: p.Count})
	}
	return out
}

// outputApplySuccess prints the completion acknowledgment.
func outputApplySuccess(formatter *OutputFormatter, result ApplyResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	formatter.VerboseLog("%d replacement(s) in %s using %s table", result.Replacements, result.Path, result.Table)
	if result.RunID != "" {
		formatter.VerboseLog("recorded run %s (seq %d)", result.RunID, result.Seq)
	}
	fmt.Fprintln(formatter.Writer, "Done!")
	return nil
}
