// Package dashboard provides the dashboard page, its filter endpoint and the JSON API.
package dashboard

import (
	"math"

	"github.com/leapstack-labs/celldash/internal/charts"
	core "github.com/leapstack-labs/celldash/internal/dashboard"
)

// FilterSignals mirrors the page's datastar signals.
type FilterSignals struct {
	Category string `json:"category"`
	Size     string `json:"size"`
	Row      string `json:"row"`
	Col      string `json:"col"`
}

// Selection converts signals into a filter selection.
func (s FilterSignals) Selection() core.FilterSelection {
	return core.FilterSelection{
		Category: s.Category,
		Size:     s.Size,
		RowFacet: s.Row,
		ColFacet: s.Col,
	}
}

func signalsFor(f core.FilterSelection) FilterSignals {
	return FilterSignals{
		Category: f.Category,
		Size:     f.Size,
		Row:      f.RowFacet,
		Col:      f.ColFacet,
	}
}

// APIResponse is the JSON form of one render pass.
type APIResponse struct {
	Filters        core.FilterSelection   `json:"filters"`
	Classification core.Classification    `json:"classification"`
	Metrics        []APIMetric            `json:"metrics"`
	Chart          core.ChartParams       `json:"chart"`
	Scatter        APIScatter             `json:"scatter"`
	Views          []core.AggregationView `json:"views"`
	Rows           int                    `json:"rows"`
}

// APIMetric is one metric pair. Values are null when the column has no data.
type APIMetric struct {
	Field      string   `json:"field"`
	Max        *float64 `json:"max"`
	Min        *float64 `json:"min"`
	MaxDisplay string   `json:"max_display"`
	MinDisplay string   `json:"min_display"`
}

// APIScatter holds the scatter points per facet cell.
type APIScatter struct {
	Grid   charts.Grid    `json:"grid"`
	Panels []charts.Panel `json:"panels"`
}

func apiMetric(p core.MetricPair) APIMetric {
	return APIMetric{
		Field:      p.Field,
		Max:        finite(p.Max),
		Min:        finite(p.Min),
		MaxDisplay: core.FormatValue(p.Max),
		MinDisplay: core.FormatValue(p.Min),
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
