package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/celldash/internal/cli/output"
	"github.com/leapstack-labs/celldash/internal/dashboard"
)

// NewViewsCommand creates the views command.
func NewViewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "Print the aggregation views",
		Long: `Print the average call duration per environment and the number of rows
per call type. A view is left out when its grouping column is not in the data.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runViews(cmd)
		},
	}
}

func runViews(cmd *cobra.Command) error {
	cc := NewCommandContext(cmd)
	snap, err := cc.Render(cmd.Context(), dashboard.FilterSelection{})
	if err != nil {
		return err
	}
	r := cc.Renderer

	views := make([]dashboard.AggregationView, 0, 2)
	if snap.DurationByEnvironment != nil {
		views = append(views, *snap.DurationByEnvironment)
	}
	if snap.CallTypes != nil {
		views = append(views, *snap.CallTypes)
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(views)
	}
	if len(views) == 0 {
		r.Warn("No aggregation views: the data has neither an Environment nor a Call Type column.")
		return nil
	}

	for _, v := range views {
		r.Header(2, v.Title)
		if v.Kind == dashboard.ViewCallTypes {
			rows := make([][]string, 0, len(v.Rows))
			for _, row := range v.SortedByKey() {
				rows = append(rows, []string{row.Key, r.Count(row.Count)})
			}
			r.Table([]string{v.GroupBy, "Count"}, rows)
			continue
		}
		rows := make([][]string, 0, len(v.Rows))
		for _, row := range v.SortedByKey() {
			rows = append(rows, []string{row.Key, r.Number(row.Value), strconv.Itoa(row.Count)})
		}
		r.Table([]string{v.GroupBy, "Mean " + v.Measure, "Rows"}, rows)
	}
	return nil
}
