package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/celldash/internal/cli/output"
	"github.com/leapstack-labs/celldash/internal/dashboard"
)

// Column roles shown by the schema command.
const (
	roleCategorical = "categorical"
	roleNumerical   = "numerical"
)

// SchemaOptions holds options for the schema command.
type SchemaOptions struct {
	Format string
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	opts := &SchemaOptions{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show column types and filter classification",
		Long: `Show the column types recorded when the table was loaded, after the
identifier columns are dropped, and which columns the sidebar offers as
categorical or numerical filters.`,
		Example: `  celldash schema
  celldash schema --format yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchema(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format (text|yaml|json); default follows --output")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSchema(cmd *cobra.Command, opts *SchemaOptions) error {
	cc := NewCommandContext(cmd)
	t, err := cc.LoadTable(cmd.Context())
	if err != nil {
		return err
	}
	r := cc.Renderer

	class := dashboard.Classify(t.Schema())
	out := output.SchemaOutput{
		Columns:     make([]output.SchemaColumn, 0, t.Schema().Len()),
		Categorical: class.Categorical,
		Numerical:   class.Numerical,
	}
	for _, c := range t.Schema().Columns() {
		col := output.SchemaColumn{Name: c.Name, Type: string(c.Type)}
		switch {
		case class.IsCategorical(c.Name):
			col.Role = roleCategorical
		case class.IsNumerical(c.Name):
			col.Role = roleNumerical
		}
		out.Columns = append(out.Columns, col)
	}

	format := opts.Format
	if format == "" && r.EffectiveMode() == output.ModeJSON {
		format = "json"
	}

	switch format {
	case "json":
		return r.JSON(out)
	case "yaml":
		enc := yaml.NewEncoder(r.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode schema: %w", err)
		}
		return enc.Close()
	case "", "text":
		title := cases.Title(language.English)
		r.Header(1, fmt.Sprintf("Schema (%d columns)", len(out.Columns)))
		rows := make([][]string, 0, len(out.Columns))
		for _, c := range out.Columns {
			role := "-"
			if c.Role != "" {
				role = title.String(c.Role)
			}
			rows = append(rows, []string{c.Name, c.Type, role})
		}
		r.Table([]string{"Column", "Type", "Filter"}, rows)
		return nil
	default:
		return fmt.Errorf("unknown schema format %q (available: text, yaml, json)", format)
	}
}
