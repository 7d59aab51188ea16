package charts

import (
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/celldash/internal/dashboard"
	"github.com/leapstack-labs/celldash/internal/dataset"
)

func fixture(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.Load(t.Context(), dataset.Options{Path: filepath.Join("..", "..", "testdata", "train.csv")})
	require.NoError(t, err)
	return tbl
}

func params(t *testing.T, tbl *dataset.Table, f dashboard.FilterSelection) dashboard.ChartParams {
	t.Helper()
	p, err := dashboard.MapChartParams(tbl, f)
	require.NoError(t, err)
	return p
}

func TestScatter_Unfiltered(t *testing.T) {
	tbl := fixture(t)
	panels, grid, err := Scatter(tbl, params(t, tbl, dashboard.FilterSelection{}), Options{})
	require.NoError(t, err)

	require.Len(t, panels, 1)
	assert.Equal(t, []string{""}, grid.Rows)
	assert.Equal(t, []string{""}, grid.Cols)
	assert.Empty(t, grid.Groups)

	// one row has a null SNR
	assert.Len(t, panels[0].Points, 7)
	for _, pt := range panels[0].Points {
		assert.Equal(t, defaultRadius, pt.Radius)
		assert.Empty(t, pt.Group)
		require.Len(t, pt.Hover, 3)
		assert.Equal(t, dashboard.FieldCallDuration, pt.Hover[0].Field)
	}
	assert.True(t, strings.HasPrefix(strings.TrimSpace(panels[0].SVG), "<svg"))
	assert.Empty(t, panels[0].Title)
}

func TestScatter_ColorAndSize(t *testing.T) {
	tbl := fixture(t)
	p := params(t, tbl, dashboard.FilterSelection{Category: "Call Type", Size: dashboard.FieldDistance})

	panels, grid, err := Scatter(tbl, p, Options{Width: 600, Height: 400})
	require.NoError(t, err)
	require.Len(t, panels, 1)
	assert.Equal(t, []string{"voice", "data", "video"}, grid.Groups)

	for _, pt := range panels[0].Points {
		assert.GreaterOrEqual(t, pt.Radius, MinRadius)
		assert.LessOrEqual(t, pt.Radius, MaxRadius)
		assert.NotEmpty(t, pt.Group)
	}
	assert.Contains(t, panels[0].SVG, "voice")
}

func TestScatter_Facets(t *testing.T) {
	tbl := fixture(t)
	p := params(t, tbl, dashboard.FilterSelection{RowFacet: "Incoming/Outgoing", ColFacet: "Call Type"})

	panels, grid, err := Scatter(tbl, p, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"incoming", "outgoing"}, grid.Rows)
	assert.Equal(t, []string{"voice", "data", "video"}, grid.Cols)
	require.Len(t, panels, 6)

	assert.Equal(t, "incoming", panels[0].Row)
	assert.Equal(t, "voice", panels[0].Col)
	assert.Equal(t, "Incoming/Outgoing = incoming | Call Type = voice", panels[0].Title)

	total := 0
	for _, panel := range panels {
		total += len(panel.Points)
		assert.NotEmpty(t, panel.SVG)
	}
	assert.Equal(t, 7, total)

	// no outgoing video calls in the fixture, the cell still renders
	last := panels[5]
	assert.Equal(t, "outgoing", last.Row)
	assert.Equal(t, "video", last.Col)
	assert.Empty(t, last.Points)
}

func TestScatter_SparseGrid(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader(`Signal Strength (dBm),SNR,Environment,Call Type
-80,5,Urban,voice
-95,2,Rural,data
`))
	require.NoError(t, err)
	p := params(t, tbl, dashboard.FilterSelection{
		Category: "Environment",
		RowFacet: "Environment",
		ColFacet: "Call Type",
	})

	panels, grid, err := Scatter(tbl, p, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Urban", "Rural"}, grid.Rows)
	assert.Equal(t, []string{"voice", "data"}, grid.Cols)
	require.Len(t, panels, 4)

	filled := 0
	for _, panel := range panels {
		assert.True(t, strings.HasPrefix(strings.TrimSpace(panel.SVG), "<svg"), panel.Title)
		if len(panel.Points) > 0 {
			filled++
		}
	}
	assert.Equal(t, 2, filled)
	assert.Equal(t, "Environment = Urban | Call Type = data", panels[1].Title)
	assert.Empty(t, panels[1].Points)
}

func TestScatter_AllPointsNull(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader("Signal Strength (dBm),SNR\n-80,\n,3\n"))
	require.NoError(t, err)

	panels, _, err := Scatter(tbl, params(t, tbl, dashboard.FilterSelection{}), Options{})
	require.NoError(t, err)
	require.Len(t, panels, 1)
	assert.Empty(t, panels[0].Points)
	assert.NotEmpty(t, panels[0].SVG)
}

func TestScatter_MissingColumn(t *testing.T) {
	tbl := fixture(t)
	p := params(t, tbl, dashboard.FilterSelection{})
	p.Color = "Latency"

	_, _, err := Scatter(tbl, p, Options{})
	assert.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestSizeScale(t *testing.T) {
	scale := sizeScale([]float64{0, 5, 10, math.NaN()})
	assert.InDelta(t, MinRadius, scale(0), 1e-9)
	assert.InDelta(t, (MinRadius+MaxRadius)/2, scale(1), 1e-9)
	assert.InDelta(t, MaxRadius, scale(2), 1e-9)
	assert.InDelta(t, MinRadius, scale(3), 1e-9)

	flat := sizeScale([]float64{2, 2})
	assert.InDelta(t, (MinRadius+MaxRadius)/2, flat(0), 1e-9)
}

func TestBounds(t *testing.T) {
	var b bounds
	r := b.rangeOf()
	assert.Less(t, r.Min, r.Max)

	b.add(5)
	r = b.rangeOf()
	assert.Less(t, r.Min, 5.0)
	assert.Greater(t, r.Max, 5.0)

	b.add(15)
	b.add(math.NaN())
	r = b.rangeOf()
	assert.InDelta(t, 4.5, r.Min, 1e-9)
	assert.InDelta(t, 15.5, r.Max, 1e-9)
}

func TestBar(t *testing.T) {
	view, ok := dashboard.MeanCallDurationByEnvironment(fixture(t))
	require.True(t, ok)

	svg, err := Bar(view, Options{})
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "suburban")

	_, err = Bar(dashboard.AggregationView{}, Options{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestDonut(t *testing.T) {
	view, ok := dashboard.CallTypeFrequency(fixture(t))
	require.True(t, ok)

	svg, err := Donut(view, Options{})
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")

	_, err = Donut(dashboard.AggregationView{}, Options{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHoverValue_MarshalJSON(t *testing.T) {
	out, err := json.Marshal([]HoverValue{
		{Field: "SNR", Value: 1.5},
		{Field: "Attenuation", Value: math.NaN()},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"field":"SNR","value":1.5},{"field":"Attenuation","value":null}]`, string(out))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#636EFA", ColorHex(0))
	assert.Equal(t, ColorHex(0), ColorHex(len(palette)))
	assert.Equal(t, Color(1), Color(1+len(palette)))
}
