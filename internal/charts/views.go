package charts

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/leapstack-labs/celldash/internal/dashboard"
)

// Bar renders the mean call duration view with one coloured bar per group,
// ordered by key.
func Bar(view dashboard.AggregationView, opts Options) (string, error) {
	rows := view.SortedByKey()
	if len(rows) == 0 {
		return "", ErrNoData
	}
	opts = opts.withDefaults(900, 420)

	top := 0.0
	bars := make([]chart.Value, len(rows))
	for i, r := range rows {
		bars[i] = chart.Value{
			Label: r.Key,
			Value: r.Value,
			Style: chart.Style{
				FillColor:   Color(i),
				StrokeColor: Color(i),
				StrokeWidth: 1,
			},
		}
		top = math.Max(top, r.Value)
	}
	if top <= 0 {
		top = 1
	}

	bc := chart.BarChart{
		Title:      view.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth(opts.Width, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Name:           view.Measure,
			Range:          &chart.ContinuousRange{Min: 0, Max: top * 1.1},
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
		},
		Bars: bars,
	}
	return renderSVG(bc)
}

func barWidth(width, n int) int {
	w := (width - 120) / (2 * n)
	return min(max(w, 12), 120)
}

// Donut renders the call type view as a donut chart, largest share first.
func Donut(view dashboard.AggregationView, opts Options) (string, error) {
	rows := slices.Clone(view.Rows)
	slices.SortStableFunc(rows, func(a, b dashboard.ViewRow) int { return cmp.Compare(b.Count, a.Count) })

	total := view.Total()
	if total == 0 {
		return "", ErrNoData
	}
	opts = opts.withDefaults(520, 520)

	values := make([]chart.Value, len(rows))
	for i, r := range rows {
		values[i] = chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", r.Key, 100*float64(r.Count)/float64(total)),
			Value: float64(r.Count),
			Style: chart.Style{FillColor: Color(i)},
		}
	}

	dc := chart.DonutChart{
		Title:  view.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
	return renderSVG(dc)
}
