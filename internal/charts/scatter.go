package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/leapstack-labs/celldash/internal/dashboard"
	"github.com/leapstack-labs/celldash/internal/dataset"
)

// Point radius bounds when size follows a column.
const (
	MinRadius     = 3.0
	MaxRadius     = 14.0
	defaultRadius = 4.0
)

// Point is one plotted row.
type Point struct {
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Group  string       `json:"group,omitempty"`
	Radius float64      `json:"radius"`
	Hover  []HoverValue `json:"hover"`
}

// Panel is one cell of the facet grid. Row and Col are the facet values, empty
// when the chart is not faceted in that direction.
type Panel struct {
	Row    string  `json:"row,omitempty"`
	Col    string  `json:"col,omitempty"`
	Title  string  `json:"title,omitempty"`
	Points []Point `json:"points"`
	SVG    string  `json:"-"`
}

// Grid describes the facet layout of a scatter chart.
type Grid struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Groups []string `json:"groups,omitempty"`
}

// Scatter renders p as a grid of point charts, one per facet cell, row-major.
// Rows whose x, y or any mapped grouping value is null are not plotted.
func Scatter(t *dataset.Table, p dashboard.ChartParams, opts Options) ([]Panel, Grid, error) {
	xs, err := t.Floats(p.X)
	if err != nil {
		return nil, Grid{}, err
	}
	ys, err := t.Floats(p.Y)
	if err != nil {
		return nil, Grid{}, err
	}

	color, err := categories(t, p.Color)
	if err != nil {
		return nil, Grid{}, err
	}
	row, err := categories(t, p.FacetRow)
	if err != nil {
		return nil, Grid{}, err
	}
	col, err := categories(t, p.FacetCol)
	if err != nil {
		return nil, Grid{}, err
	}

	radius := func(int) float64 { return defaultRadius }
	if p.HasSize() {
		sizes, err := t.Floats(p.Size)
		if err != nil {
			return nil, Grid{}, err
		}
		radius = sizeScale(sizes)
	}

	hover := make(map[string][]float64, len(p.HoverFields))
	for _, f := range p.HoverFields {
		if vals, err := t.Floats(f); err == nil {
			hover[f] = vals
		}
	}

	grid := Grid{Rows: row.order, Cols: col.order, Groups: color.order}
	cells := make(map[[2]string][]Point)
	var xb, yb bounds
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) || color.null(i) || row.null(i) || col.null(i) {
			continue
		}
		pt := Point{
			X:      xs[i],
			Y:      ys[i],
			Group:  color.value(i),
			Radius: radius(i),
		}
		for _, f := range p.HoverFields {
			if vals, ok := hover[f]; ok {
				pt.Hover = append(pt.Hover, HoverValue{Field: f, Value: vals[i]})
			}
		}
		key := [2]string{row.value(i), col.value(i)}
		cells[key] = append(cells[key], pt)
		xb.add(xs[i])
		yb.add(ys[i])
	}

	nRows, nCols := len(grid.Rows), len(grid.Cols)
	if nRows == 0 {
		grid.Rows = []string{""}
		nRows = 1
	}
	if nCols == 0 {
		grid.Cols = []string{""}
		nCols = 1
	}
	opts = opts.withDefaults(900, 520)
	cellW := max(opts.Width/nCols, 240)
	cellH := max(opts.Height/nRows, 200)

	xr, yr := xb.rangeOf(), yb.rangeOf()
	panels := make([]Panel, 0, nRows*nCols)
	for _, r := range grid.Rows {
		for _, c := range grid.Cols {
			panel := Panel{
				Row:    r,
				Col:    c,
				Title:  facetTitle(p, r, c),
				Points: cells[[2]string{r, c}],
			}
			if panel.Points == nil {
				panel.Points = []Point{}
			}
			svg, err := renderScatter(p, panel, grid.Groups, xr, yr, cellW, cellH)
			if err != nil {
				return nil, Grid{}, fmt.Errorf("render scatter panel %q: %w", panel.Title, err)
			}
			panel.SVG = svg
			panels = append(panels, panel)
		}
	}
	return panels, grid, nil
}

func renderScatter(p dashboard.ChartParams, panel Panel, groups []string, xr, yr *chart.ContinuousRange, w, h int) (string, error) {
	var series []chart.Series
	addSeries := func(name string, colorIdx int, pts []Point) {
		s := chart.ContinuousSeries{
			Name:    name,
			XValues: make([]float64, len(pts)),
			YValues: make([]float64, len(pts)),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    defaultRadius,
				DotColor:    Color(colorIdx).WithAlpha(200),
			},
		}
		radii := make([]float64, len(pts))
		for i, pt := range pts {
			s.XValues[i], s.YValues[i], radii[i] = pt.X, pt.Y, pt.Radius
		}
		if p.HasSize() {
			s.Style.DotWidthProvider = func(_, _ chart.Range, index int, _, _ float64) float64 {
				return radii[index]
			}
		}
		series = append(series, s)
	}

	if p.HasColor() {
		for gi, g := range groups {
			var pts []Point
			for _, pt := range panel.Points {
				if pt.Group == g {
					pts = append(pts, pt)
				}
			}
			if len(pts) > 0 {
				addSeries(g, gi, pts)
			}
		}
	} else if len(panel.Points) > 0 {
		addSeries(p.Y, 0, panel.Points)
	}

	if len(series) == 0 {
		// empty facet cell: go-chart needs one visible series, so draw the range
		// corners with no stroke and no dots to keep the axes of the grid aligned
		series = append(series, chart.ContinuousSeries{
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: 0},
			XValues: []float64{xr.Min, xr.Max},
			YValues: []float64{yr.Min, yr.Max},
		})
	}

	ch := chart.Chart{
		Title:      panel.Title,
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: p.X, Range: &chart.ContinuousRange{Min: xr.Min, Max: xr.Max}},
		YAxis:      chart.YAxis{Name: p.Y, Range: &chart.ContinuousRange{Min: yr.Min, Max: yr.Max}},
		Series:     series,
	}
	if p.HasColor() && len(panel.Points) > 0 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return renderSVG(ch)
}

func facetTitle(p dashboard.ChartParams, row, col string) string {
	var parts []string
	if p.HasFacetRow() {
		parts = append(parts, p.FacetRow+" = "+row)
	}
	if p.HasFacetCol() {
		parts = append(parts, p.FacetCol+" = "+col)
	}
	return strings.Join(parts, " | ")
}

// category holds a grouping column with its distinct values in first-seen order.
type category struct {
	values []string
	nulls  []bool
	order  []string
}

func categories(t *dataset.Table, name string) (category, error) {
	if name == dashboard.Unset {
		return category{}, nil
	}
	vals, nulls, err := t.Strings(name)
	if err != nil {
		return category{}, err
	}
	seen := make(map[string]bool)
	c := category{values: vals, nulls: nulls}
	for i, v := range vals {
		if nulls[i] || seen[v] {
			continue
		}
		seen[v] = true
		c.order = append(c.order, v)
	}
	return c, nil
}

func (c category) null(i int) bool {
	return c.nulls != nil && c.nulls[i]
}

func (c category) value(i int) string {
	if c.values == nil {
		return ""
	}
	return c.values[i]
}

// sizeScale maps size values linearly into [MinRadius, MaxRadius].
// Null sizes get MinRadius.
func sizeScale(sizes []float64) func(int) float64 {
	var b bounds
	for _, v := range sizes {
		b.add(v)
	}
	return func(i int) float64 {
		v := sizes[i]
		switch {
		case math.IsNaN(v):
			return MinRadius
		case b.max == b.min:
			return (MinRadius + MaxRadius) / 2
		default:
			return MinRadius + (v-b.min)/(b.max-b.min)*(MaxRadius-MinRadius)
		}
	}
}

type bounds struct {
	min, max float64
	n        int
}

func (b *bounds) add(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	if b.n == 0 || v < b.min {
		b.min = v
	}
	if b.n == 0 || v > b.max {
		b.max = v
	}
	b.n++
}

// rangeOf returns the bounds padded by 5% on each side.
func (b bounds) rangeOf() *chart.ContinuousRange {
	if b.n == 0 {
		return &chart.ContinuousRange{Min: -1, Max: 1}
	}
	pad := (b.max - b.min) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(b.max)*0.05, 1)
	}
	return &chart.ContinuousRange{Min: b.min - pad, Max: b.max + pad}
}
