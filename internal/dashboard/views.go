package dashboard

import (
	"math"
	"slices"
	"strings"

	"github.com/leapstack-labs/celldash/internal/dataset"
)

// ViewKind identifies an aggregation view.
type ViewKind string

// Aggregation views.
const (
	ViewMeanDuration ViewKind = "mean_call_duration_by_environment"
	ViewCallTypes    ViewKind = "call_type_frequency"
)

// ViewRow is one group of an aggregation view. Count is the number of rows that
// contributed to Value.
type ViewRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// AggregationView is a derived (group key, aggregate) table. Rows are in order of
// first appearance in the source table.
type AggregationView struct {
	Kind    ViewKind  `json:"kind"`
	Title   string    `json:"title"`
	GroupBy string    `json:"group_by"`
	Measure string    `json:"measure"`
	Rows    []ViewRow `json:"rows"`
}

// Total returns the sum of the row counts.
func (v AggregationView) Total() int {
	n := 0
	for _, r := range v.Rows {
		n += r.Count
	}
	return n
}

// SortedByKey returns the rows ordered by key.
func (v AggregationView) SortedByKey() []ViewRow {
	rows := slices.Clone(v.Rows)
	slices.SortStableFunc(rows, func(a, b ViewRow) int { return strings.Compare(a.Key, b.Key) })
	return rows
}

// Lookup returns the row for key.
func (v AggregationView) Lookup(key string) (ViewRow, bool) {
	for _, r := range v.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return ViewRow{}, false
}

// MeanCallDurationByEnvironment averages call duration per environment. The
// view is absent when the table has no Environment or Call Duration column.
// Null keys are skipped, null durations are left out of the mean, and a group
// with no durations is omitted.
func MeanCallDurationByEnvironment(t *dataset.Table) (AggregationView, bool) {
	if !t.Has(FieldEnvironment) || !t.Has(FieldCallDuration) {
		return AggregationView{}, false
	}
	keys, nulls, err := t.Strings(FieldEnvironment)
	if err != nil {
		return AggregationView{}, false
	}
	durations, err := t.Floats(FieldCallDuration)
	if err != nil {
		return AggregationView{}, false
	}

	type acc struct {
		sum float64
		n   int
	}
	var order []string
	groups := make(map[string]*acc)
	for i, k := range keys {
		if nulls[i] {
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		if d := durations[i]; !math.IsNaN(d) {
			g.sum += d
			g.n++
		}
	}

	rows := make([]ViewRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		if g.n == 0 {
			continue
		}
		rows = append(rows, ViewRow{Key: k, Value: g.sum / float64(g.n), Count: g.n})
	}
	return AggregationView{
		Kind:    ViewMeanDuration,
		Title:   "Average Call Duration by Environment",
		GroupBy: FieldEnvironment,
		Measure: FieldCallDuration,
		Rows:    rows,
	}, true
}

// CallTypeFrequency counts rows per call type. The view is absent when the table
// has no Call Type column. Null call types are not counted.
func CallTypeFrequency(t *dataset.Table) (AggregationView, bool) {
	if !t.Has(FieldCallType) {
		return AggregationView{}, false
	}
	keys, nulls, err := t.Strings(FieldCallType)
	if err != nil {
		return AggregationView{}, false
	}

	var order []string
	counts := make(map[string]int)
	for i, k := range keys {
		if nulls[i] {
			continue
		}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	rows := make([]ViewRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, ViewRow{Key: k, Value: float64(counts[k]), Count: counts[k]})
	}
	return AggregationView{
		Kind:    ViewCallTypes,
		Title:   "Call Type Distribution",
		GroupBy: FieldCallType,
		Measure: "count",
		Rows:    rows,
	}, true
}
