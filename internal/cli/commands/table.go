package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/celldash/internal/cli/output"
)

// TableOptions holds options for the table command.
type TableOptions struct {
	Limit int
}

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	opts := &TableOptions{}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the raw data table",
		Long:  `Print the loaded rows, as shown in the dashboard's raw data section.`,
		Example: `  celldash table --limit 10
  celldash table --limit 0 -o json   # every row`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTable(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "Maximum rows to print (0 for all)")

	return cmd
}

func runTable(cmd *cobra.Command, opts *TableOptions) error {
	cc := NewCommandContext(cmd)
	t, err := cc.LoadTable(cmd.Context())
	if err != nil {
		return err
	}
	r := cc.Renderer

	columns := t.Schema().Names()
	rows := t.Records(opts.Limit)

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.TableOutput{Columns: columns, Rows: rows, Total: t.Len()})
	}

	r.Table(columns, rows)
	if len(rows) < t.Len() {
		r.Printf("Showing %s of %s rows.\n", r.Count(len(rows)), r.Count(t.Len()))
	}
	return nil
}
