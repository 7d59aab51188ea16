package dashboard

import "github.com/leapstack-labs/celldash/internal/dataset"

// Snapshot is the complete output of one render pass over one table.
type Snapshot struct {
	Classification Classification
	Filters        FilterSelection
	Metrics        []MetricPair
	Tiles          []Tile
	Chart          ChartParams

	// Nil when the grouping column is absent.
	DurationByEnvironment *AggregationView
	CallTypes             *AggregationView

	table *dataset.Table
}

// Table returns the table the snapshot was rendered from.
func (s *Snapshot) Table() *dataset.Table { return s.table }

// Columns returns the raw view's header.
func (s *Snapshot) Columns() []string { return s.table.Schema().Names() }

// RawRows returns up to limit rows for the raw data view. A limit of zero or less
// returns every row.
func (s *Snapshot) RawRows(limit int) [][]string { return s.table.Records(limit) }

// Render runs one render pass. Filters not offered by the classification are
// treated as unset. A missing required field fails the whole pass.
func Render(t *dataset.Table, f FilterSelection) (*Snapshot, error) {
	class := Classify(t.Schema())
	filters := f.Sanitize(class)

	metrics, err := Summarize(t)
	if err != nil {
		return nil, err
	}
	params, err := MapChartParams(t, filters)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Classification: class,
		Filters:        filters,
		Metrics:        metrics,
		Tiles:          Tiles(metrics),
		Chart:          params,
		table:          t,
	}
	if v, ok := MeanCallDurationByEnvironment(t); ok {
		snap.DurationByEnvironment = &v
	}
	if v, ok := CallTypeFrequency(t); ok {
		snap.CallTypes = &v
	}
	return snap, nil
}
