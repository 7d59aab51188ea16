package dataset

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrColumnNotFound is returned when a named column is not part of the table.
var ErrColumnNotFound = errors.New("column not found")

// Table is the immutable Record Table. Every operation that would change the
// table returns a new Table; the receiver is never modified.
type Table struct {
	df     dataframe.DataFrame
	schema Schema
}

// NewTable wraps a gota DataFrame, deriving the schema from the frame's column types.
func NewTable(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("invalid data frame: %w", df.Err)
	}
	names := df.Names()
	types := df.Types()
	cols := make([]Column, len(names))
	for i, name := range names {
		cols[i] = Column{Name: name, Type: fromSeriesType(types[i])}
	}
	return &Table{df: df, schema: NewSchema(cols...)}, nil
}

// newTableWithSchema wraps a DataFrame whose column types were declared by the source.
func newTableWithSchema(df dataframe.DataFrame, schema Schema) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("invalid data frame: %w", df.Err)
	}
	return &Table{df: df, schema: schema}, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{schema: NewSchema()}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t.schema.Len() == 0 {
		return 0
	}
	return t.df.Nrow()
}

// Schema returns the load-time schema.
func (t *Table) Schema() Schema { return t.schema }

// Has reports whether the named column exists.
func (t *Table) Has(name string) bool { return t.schema.Has(name) }

func (t *Table) col(name string) (series.Series, error) {
	if !t.schema.Has(name) {
		return series.Series{}, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	s := t.df.Col(name)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("read column %q: %w", name, s.Err)
	}
	return s, nil
}

// Floats returns the named column as float64 values. Null cells and cells that
// are not numbers are NaN.
func (t *Table) Floats(name string) ([]float64, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, err
	}
	vals := s.Float()
	nulls := s.IsNaN()
	for i := range vals {
		if nulls[i] {
			vals[i] = math.NaN()
		}
	}
	return vals, nil
}

// Strings returns the named column as strings together with a null mask.
func (t *Table) Strings(name string) ([]string, []bool, error) {
	s, err := t.col(name)
	if err != nil {
		return nil, nil, err
	}
	vals := s.Records()
	nulls := s.IsNaN()
	for i := range vals {
		if nulls[i] {
			vals[i] = ""
		}
	}
	return vals, nulls, nil
}

// Records returns up to limit rows as display strings in column order.
// A limit of zero or less returns every row. Null cells are empty strings.
func (t *Table) Records(limit int) [][]string {
	n := t.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	names := t.schema.Names()
	cols := make([][]string, len(names))
	for j, name := range names {
		vals, _, err := t.Strings(name)
		if err != nil {
			continue
		}
		cols[j] = vals
	}

	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(names))
		for j := range names {
			if cols[j] != nil && i < len(cols[j]) {
				row[j] = cols[j][i]
			}
		}
		rows[i] = row
	}
	return rows
}

// Drop returns a table without the named columns. Names that are not present are
// ignored, so dropping from an already cleaned table returns an equal table.
func (t *Table) Drop(names ...string) *Table {
	present := make([]string, 0, len(names))
	for _, n := range names {
		if t.schema.Has(n) {
			present = append(present, n)
		}
	}
	if len(present) == 0 {
		return t
	}
	schema := t.schema.Without(present...)
	if schema.Len() == 0 {
		return Empty()
	}
	return &Table{
		df:     t.df.Select(schema.Names()),
		schema: schema,
	}
}
