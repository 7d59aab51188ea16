package dashboard

import (
	"slices"

	"github.com/leapstack-labs/celldash/internal/dataset"
)

// Classification partitions column names for the filter menus.
// Both lists keep table column order and never share a name.
type Classification struct {
	Categorical []string `json:"categorical" yaml:"categorical"`
	Numerical   []string `json:"numerical" yaml:"numerical"`
}

// Classify partitions the schema's columns by declared type. String columns are
// categorical, integer and float columns are numerical, anything else is in neither.
func Classify(schema dataset.Schema) Classification {
	c := Classification{
		Categorical: []string{},
		Numerical:   []string{},
	}
	for _, col := range schema.Columns() {
		switch {
		case col.Type == dataset.TypeString:
			c.Categorical = append(c.Categorical, col.Name)
		case col.Type.IsNumeric():
			c.Numerical = append(c.Numerical, col.Name)
		}
	}
	return c
}

// IsCategorical reports whether name is a categorical column.
func (c Classification) IsCategorical(name string) bool {
	return slices.Contains(c.Categorical, name)
}

// IsNumerical reports whether name is a numerical column.
func (c Classification) IsNumerical(name string) bool {
	return slices.Contains(c.Numerical, name)
}
