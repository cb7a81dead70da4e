package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/relabel/internal/subst"
	"github.com/roach88/relabel/internal/table"
)

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	Table string
}

// TableListing is the json payload of the table command.
type TableListing struct {
	Table  string      `json:"table"`
	Digest string      `json:"digest"`
	Pairs  subst.Table `json:"pairs"`
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the effective replacement table",
		Long: `Print the replacement table in application order, with its digest.

The digest changes whenever a pair or the order of pairs changes, and is
the value recorded in the run ledger.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "replacement table file (.yaml, .yml or .cue); default built-in")

	return cmd
}

func runTable(opts *TableOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	tbl, source, err := loadTable(opts.Table)
	if err != nil {
		return fail(formatter, errorCode(err), fmt.Sprintf("loading table: %v", err), err)
	}
	digest, err := table.Digest(tbl)
	if err != nil {
		return fail(formatter, ErrCodeGeneric, fmt.Sprintf("hashing table: %v", err), err)
	}

	listing := TableListing{Table: source, Digest: digest, Pairs: tbl}
	if formatter.Format == "json" {
		return formatter.Success(listing)
	}

	fmt.Fprintf(formatter.Writer, "Table: %s (%d pairs)\n", listing.Table, len(listing.Pairs))
	fmt.Fprintf(formatter.Writer, "Digest: %s\n\n", listing.Digest)
	for i, p := range listing.Pairs {
		fmt.Fprintf(formatter.Writer, "%3d  %q → %q\n", i, p.Match, p.Replacement)
	}
	return nil
}
