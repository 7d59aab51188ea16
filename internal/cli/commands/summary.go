package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/celldash/internal/cli/output"
	"github.com/leapstack-labs/celldash/internal/dashboard"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the metric tiles",
		Long: `Print the maximum and minimum of Signal Strength, SNR, Call Duration,
Attenuation and Distance to Tower, the ten tiles shown at the top of the
dashboard. Null cells are ignored; a column with no values shows "nan".`,
		Example: `  celldash summary
  celldash summary --data calls.csv -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(cmd)
		},
	}
}

func runSummary(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	snap, err := cc.Render(cmd.Context(), dashboard.FilterSelection{})
	if err != nil {
		return err
	}
	r := cc.Renderer

	if r.EffectiveMode() == output.ModeJSON {
		out := output.SummaryOutput{
			Rows:    snap.Table().Len(),
			Metrics: make([]output.Metric, 0, len(snap.Metrics)),
			Tiles:   make([]output.Tile, 0, len(snap.Tiles)),
		}
		for _, m := range snap.Metrics {
			out.Metrics = append(out.Metrics, output.Metric{Field: m.Field, Max: output.Finite(m.Max), Min: output.Finite(m.Min)})
		}
		for _, t := range snap.Tiles {
			out.Tiles = append(out.Tiles, output.Tile{Label: t.Label, Value: output.Finite(t.Value), Display: t.Display()})
		}
		return r.JSON(out)
	}

	r.Header(1, "Network Performance Summary")
	rows := make([][]string, 0, len(snap.Tiles))
	for _, t := range snap.Tiles {
		rows = append(rows, []string{t.Label, t.Display()})
	}
	r.Table([]string{"Metric", "Value"}, rows)
	r.KeyValue("Rows", r.Count(snap.Table().Len()))
	return nil
}
