package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/celldash/internal/charts"
	core "github.com/leapstack-labs/celldash/internal/dashboard"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func TestSidebar(t *testing.T) {
	menus := []core.Menu{
		{Name: core.FilterCategory, Label: "Categorical Filtering", Options: []core.Option{
			{Value: "", Label: core.NoneLabel},
			{Value: "Environment", Label: "Environment"},
		}},
		{Name: core.FilterColFacet, Label: "Column Filtering", Options: []core.Option{
			{Value: "", Label: core.NoneLabel},
			{Value: `<script>"x"`, Label: `<script>"x"`},
		}},
	}
	out := render(t, Sidebar(menus, core.FilterSelection{Category: "Environment"}))

	assert.Contains(t, out, `<select id="filter-category" data-bind="category" data-on:change="@post('/filters')">`)
	assert.Contains(t, out, `<select id="filter-col" data-bind="col"`)
	assert.Contains(t, out, `<option value="Environment" selected>Environment</option>`)
	assert.Contains(t, out, `<option value="" selected>None</option>`)
	assert.Contains(t, out, `<option value="&lt;script&gt;&#34;x&#34;">&lt;script&gt;&#34;x&#34;</option>`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Eng. Ehab El-Guindy")
}

func TestMain_ErrorPanel(t *testing.T) {
	out := render(t, Main(MainData{Error: `missing field <b>"Call Duration (s)"</b>`}))

	assert.Contains(t, out, `<main id="dashboard-main">`)
	assert.Contains(t, out, `<strong>Cannot render dashboard.</strong> missing field &lt;b&gt;`)
	assert.NotContains(t, out, `class="tiles"`)
	assert.NotContains(t, out, "Show Raw Data")
}

func TestMain_Content(t *testing.T) {
	data := MainData{
		Tiles: []core.Tile{{Label: "Max SNR", Value: 15.6}, {Label: "Min SNR", Value: 1.3}},
		Chart: core.ChartParams{Color: "Environment", HoverFields: []string{"Attenuation", "Distance to Tower (km)"}},
		Grid:  charts.Grid{Rows: []string{""}, Cols: []string{"voice", "data"}, Groups: []string{"urban", "rural"}},
		Panels: []charts.Panel{
			{SVG: "<svg>a</svg>", Points: make([]charts.Point, 2)},
			{},
		},
		HasBar:    true,
		BarSVG:    "<svg>bar</svg>",
		Columns:   []string{"SNR", "Environment"},
		Rows:      [][]string{{"1.5", "a&b"}},
		TotalRows: 4,
	}
	out := render(t, Main(data))

	assert.Contains(t, out, `<div class="tile" data-col="1"><span class="tile-label">Min SNR</span> <span class="tile-value">1.30</span></div>`)
	assert.Contains(t, out, `style="grid-template-columns: repeat(2, minmax(0, 1fr));"`)
	assert.Contains(t, out, `<div class="svg"><svg>a</svg></div><figcaption>2 points</figcaption>`)
	assert.Contains(t, out, `<p class="empty">No data to chart.</p><figcaption>0 points</figcaption>`)
	assert.Contains(t, out, `<span class="swatch" style="background: #636EFA;"></span>urban`)
	assert.Contains(t, out, "Hover fields: Attenuation, Distance to Tower (km)")
	assert.Contains(t, out, "<svg>bar</svg>")
	// one scatter panel and the bar chart; the donut view is absent
	assert.Equal(t, 2, strings.Count(out, `<div class="svg">`))
	assert.Contains(t, out, "<tr><td>1.5</td><td>a&amp;b</td></tr>")
	assert.Contains(t, out, "Showing 1 of 4 rows.")
}

func TestDashboardPage(t *testing.T) {
	out := render(t, DashboardPage(PageData{
		Title:   "Network Performance Dashboard",
		Signals: `{"category":"","size":"","row":"","col":""}`,
		Main:    MainData{Error: "boom"},
	}))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/dashboard.css">`)
	assert.Contains(t, out, `<body data-signals="{&#34;category&#34;:&#34;&#34;`)
	assert.Contains(t, out, `<div id="dashboard-refresh"></div>`)
	assert.Contains(t, out, "boom")
}

func TestRefreshTrigger(t *testing.T) {
	out := render(t, RefreshTrigger(7))
	assert.Equal(t, `<div data-refresh="7" data-init="@post('/filters')"></div>`, out)
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, templ.SafeCSS("grid-template-columns: repeat(1, minmax(0, 1fr))"), gridColumns(0))
	assert.Equal(t, templ.SafeCSS("grid-template-columns: repeat(3, minmax(0, 1fr))"), gridColumns(3))
}
