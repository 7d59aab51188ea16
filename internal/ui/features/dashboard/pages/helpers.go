package pages

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/leapstack-labs/celldash/internal/charts"
	core "github.com/leapstack-labs/celldash/internal/dashboard"
)

// signalName maps a menu name onto its datastar signal.
func signalName(menu string) string {
	switch menu {
	case core.FilterRowFacet:
		return "row"
	case core.FilterColFacet:
		return "col"
	default:
		return menu
	}
}

func gridColumns(cols int) templ.SafeCSS {
	return templ.SafeCSS("grid-template-columns: repeat(" + strconv.Itoa(max(cols, 1)) + ", minmax(0, 1fr))")
}

func swatchStyle(i int) templ.SafeCSS {
	return templ.SafeCSS("background: " + charts.ColorHex(i))
}

func hoverCaption(p core.ChartParams) string {
	return strings.Join(p.HoverFields, ", ")
}
