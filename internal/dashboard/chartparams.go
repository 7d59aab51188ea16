package dashboard

import "github.com/leapstack-labs/celldash/internal/dataset"

// Unset is the "no grouping" value of an optional chart parameter. The renderer
// treats all rows as one group, draws uniform points, or skips faceting.
const Unset = ""

// ChartParams is what the scatter renderer consumes.
type ChartParams struct {
	X           string   `json:"x"`
	Y           string   `json:"y"`
	Color       string   `json:"color,omitempty"`
	Size        string   `json:"size,omitempty"`
	FacetCol    string   `json:"facet_col,omitempty"`
	FacetRow    string   `json:"facet_row,omitempty"`
	HoverFields []string `json:"hover_fields"`
}

// HasColor reports whether points are coloured by a column.
func (p ChartParams) HasColor() bool { return p.Color != Unset }

// HasSize reports whether point size follows a column.
func (p ChartParams) HasSize() bool { return p.Size != Unset }

// HasFacetCol reports whether the chart is split into columns.
func (p ChartParams) HasFacetCol() bool { return p.FacetCol != Unset }

// HasFacetRow reports whether the chart is split into rows.
func (p ChartParams) HasFacetRow() bool { return p.FacetRow != Unset }

// MapChartParams maps the filter selection onto scatter parameters. x and y are
// fixed; each optional parameter is the matching filter or Unset. The result
// depends only on its arguments.
func MapChartParams(t *dataset.Table, f FilterSelection) (ChartParams, error) {
	for _, field := range []string{FieldSignalStrength, FieldSNR} {
		if err := requireField(t.Has, field); err != nil {
			return ChartParams{}, err
		}
	}
	return ChartParams{
		X:           FieldSignalStrength,
		Y:           FieldSNR,
		Color:       orUnset(f.Category),
		Size:        orUnset(f.Size),
		FacetCol:    orUnset(f.ColFacet),
		FacetRow:    orUnset(f.RowFacet),
		HoverFields: HoverFields(),
	}, nil
}

func orUnset(v string) string {
	if v == "" {
		return Unset
	}
	return v
}
