// Package pages holds the templ components of the dashboard.
package pages

import (
	"github.com/leapstack-labs/celldash/internal/charts"
	core "github.com/leapstack-labs/celldash/internal/dashboard"
)

// Element ids patched over SSE.
const (
	MainID    = "dashboard-main"
	RefreshID = "dashboard-refresh"
)

// PageData is everything the full page needs.
type PageData struct {
	Title   string
	Menus   []core.Menu
	Filters core.FilterSelection
	// Signals is the JSON object seeded into data-signals.
	Signals string
	Main    MainData
}

// MainData is the content of #dashboard-main.
type MainData struct {
	Error string

	Tiles []core.Tile

	Chart  core.ChartParams
	Grid   charts.Grid
	Panels []charts.Panel

	BarTitle string
	BarSVG   string
	HasBar   bool

	DonutTitle string
	DonutSVG   string
	HasDonut   bool

	Columns   []string
	Rows      [][]string
	TotalRows int
}
