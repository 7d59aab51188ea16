package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/celldash/internal/charts"
	"github.com/leapstack-labs/celldash/internal/cli/output"
	"github.com/leapstack-labs/celldash/internal/dashboard"
)

// ChartOptions holds options for the chart command.
type ChartOptions struct {
	Color    string
	Size     string
	FacetRow string
	FacetCol string
	OutDir   string
	Width    int
	Height   int
}

// Selection returns the filters as a dashboard selection.
func (o *ChartOptions) Selection() dashboard.FilterSelection {
	return dashboard.FilterSelection{
		Category: o.Color,
		Size:     o.Size,
		RowFacet: o.FacetRow,
		ColFacet: o.FacetCol,
	}
}

// NewChartCommand creates the chart command.
func NewChartCommand() *cobra.Command {
	opts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the dashboard charts to SVG files",
		Long: `Render the Signal Strength vs SNR scatter chart and, when the data has the
grouping columns, the average call duration bar chart and the call type donut
chart as SVG files.

The filter flags take the same columns the dashboard sidebar offers; a column
the sidebar would not offer is an error.`,
		Example: `  # Colour by environment, facet rows by call type
  celldash chart --color Environment --facet-row "Call Type"

  # Size points by attenuation and write into ./out
  celldash chart --size Attenuation --out-dir out`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChart(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Color, "color", "", "Categorical column that colours the points")
	cmd.Flags().StringVar(&opts.Size, "size", "", "Numerical column that sizes the points")
	cmd.Flags().StringVar(&opts.FacetRow, "facet-row", "", "Categorical column that splits the chart into rows")
	cmd.Flags().StringVar(&opts.FacetCol, "facet-col", "", "Categorical column that splits the chart into columns")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "charts", "Directory to write the SVG files into")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Chart width in pixels")
	cmd.Flags().IntVar(&opts.Height, "height", 0, "Chart height in pixels")

	return cmd
}

func runChart(cmd *cobra.Command, opts *ChartOptions) error {
	cc := NewCommandContext(cmd)
	t, err := cc.LoadTable(cmd.Context())
	if err != nil {
		return err
	}
	r := cc.Renderer

	selection := opts.Selection()
	if err := selection.Validate(dashboard.Classify(t.Schema())); err != nil {
		return err
	}
	snap, err := dashboard.Render(t, selection)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.OutDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	size := charts.Options{Width: opts.Width, Height: opts.Height}

	var written []output.ChartFile
	write := func(kind, title, name, svg string) error {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, []byte(svg), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, output.ChartFile{Kind: kind, Title: title, Path: path})
		return nil
	}

	panels, _, err := charts.Scatter(snap.Table(), snap.Chart, size)
	if err != nil {
		return err
	}
	for i, p := range panels {
		name := "scatter.svg"
		if len(panels) > 1 {
			name = fmt.Sprintf("scatter-%02d.svg", i+1)
		}
		if err := write("scatter", p.Title, name, p.SVG); err != nil {
			return err
		}
	}

	if v := snap.DurationByEnvironment; v != nil {
		svg, err := charts.Bar(*v, size)
		switch {
		case errors.Is(err, charts.ErrNoData):
			cc.Logger.Debug("skipping empty view", "view", v.Kind)
		case err != nil:
			return err
		default:
			if err := write("bar", v.Title, "call-duration-by-environment.svg", svg); err != nil {
				return err
			}
		}
	}
	if v := snap.CallTypes; v != nil {
		svg, err := charts.Donut(*v, size)
		switch {
		case errors.Is(err, charts.ErrNoData):
			cc.Logger.Debug("skipping empty view", "view", v.Kind)
		case err != nil:
			return err
		default:
			if err := write("donut", v.Title, "call-types.svg", svg); err != nil {
				return err
			}
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(written)
	}
	r.Header(1, fmt.Sprintf("Charts (%d files)", len(written)))
	rows := make([][]string, 0, len(written))
	for _, f := range written {
		rows = append(rows, []string{f.Kind, f.Title, f.Path})
	}
	r.Table([]string{"Kind", "Title", "File"}, rows)
	return nil
}
