package output

import "math"

// Metric is one metric pair in JSON output. Max and Min are null when the column
// has no non-null values.
type Metric struct {
	Field string   `json:"field"`
	Max   *float64 `json:"max"`
	Min   *float64 `json:"min"`
}

// Tile is one labelled metric tile in JSON output.
type Tile struct {
	Label   string   `json:"label"`
	Value   *float64 `json:"value"`
	Display string   `json:"display"`
}

// SummaryOutput is the JSON shape of the summary command.
type SummaryOutput struct {
	Rows    int      `json:"rows"`
	Metrics []Metric `json:"metrics"`
	Tiles   []Tile   `json:"tiles"`
}

// SchemaColumn is one column in schema output.
type SchemaColumn struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
}

// SchemaOutput is the shape of the schema command in JSON and YAML.
type SchemaOutput struct {
	Columns     []SchemaColumn `json:"columns" yaml:"columns"`
	Categorical []string       `json:"categorical" yaml:"categorical"`
	Numerical   []string       `json:"numerical" yaml:"numerical"`
}

// TableOutput is the JSON shape of the table command. Null cells are empty
// strings.
type TableOutput struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Total   int        `json:"total"`
}

// ChartFile is one chart written by the chart command.
type ChartFile struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Path  string `json:"path"`
}

// Finite returns a pointer to v, or nil for NaN and infinities, which JSON
// cannot carry.
func Finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
