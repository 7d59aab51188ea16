package dashboard

// FilterSelection is one session's sidebar state. An empty string is unset.
type FilterSelection struct {
	Category string `json:"category"`
	Size     string `json:"size"`
	RowFacet string `json:"row_facet"`
	ColFacet string `json:"col_facet"`
}

// Filter names used in errors and menus.
const (
	FilterCategory = "category"
	FilterSize     = "size"
	FilterRowFacet = "row"
	FilterColFacet = "column"
)

// NoneLabel is the menu label of the unset option.
const NoneLabel = "None"

// Option is one entry of a filter menu.
type Option struct {
	Value string
	Label string
}

// Menu is a sidebar select box.
type Menu struct {
	Name    string
	Label   string
	Options []Option
}

// Menus returns the four sidebar menus for a classification. Each starts with the
// unset option followed by the offered columns in table order.
func Menus(c Classification) []Menu {
	return []Menu{
		{Name: FilterCategory, Label: "Categorical Filtering", Options: options(c.Categorical)},
		{Name: FilterSize, Label: "Numerical Filtering", Options: options(c.Numerical)},
		{Name: FilterRowFacet, Label: "Row Filtering", Options: options(c.Categorical)},
		{Name: FilterColFacet, Label: "Column Filtering", Options: options(c.Categorical)},
	}
}

func options(cols []string) []Option {
	opts := make([]Option, 0, len(cols)+1)
	opts = append(opts, Option{Value: "", Label: NoneLabel})
	for _, c := range cols {
		opts = append(opts, Option{Value: c, Label: c})
	}
	return opts
}

// Get returns the value of the named filter.
func (f FilterSelection) Get(name string) string {
	switch name {
	case FilterCategory:
		return f.Category
	case FilterSize:
		return f.Size
	case FilterRowFacet:
		return f.RowFacet
	case FilterColFacet:
		return f.ColFacet
	}
	return ""
}

// IsZero reports whether every filter is unset.
func (f FilterSelection) IsZero() bool {
	return f == FilterSelection{}
}

// Sanitize returns a copy in which every value not offered by the menus is unset.
func (f FilterSelection) Sanitize(c Classification) FilterSelection {
	keep := func(v string, ok func(string) bool) string {
		if v == "" || !ok(v) {
			return ""
		}
		return v
	}
	return FilterSelection{
		Category: keep(f.Category, c.IsCategorical),
		Size:     keep(f.Size, c.IsNumerical),
		RowFacet: keep(f.RowFacet, c.IsCategorical),
		ColFacet: keep(f.ColFacet, c.IsCategorical),
	}
}

// Validate returns an InvalidFilterError for the first value not offered by the menus.
func (f FilterSelection) Validate(c Classification) error {
	checks := []struct {
		name    string
		value   string
		allowed []string
		ok      func(string) bool
	}{
		{FilterCategory, f.Category, c.Categorical, c.IsCategorical},
		{FilterSize, f.Size, c.Numerical, c.IsNumerical},
		{FilterRowFacet, f.RowFacet, c.Categorical, c.IsCategorical},
		{FilterColFacet, f.ColFacet, c.Categorical, c.IsCategorical},
	}
	for _, chk := range checks {
		if chk.value != "" && !chk.ok(chk.value) {
			return &InvalidFilterError{Filter: chk.name, Value: chk.value, Allowed: chk.allowed}
		}
	}
	return nil
}
