// Package dataset loads the cellular network performance table and exposes it
// as an immutable Record Table with an explicit load-time schema.
package dataset

import (
	"strings"

	"github.com/go-gota/gota/series"
)

// ColumnType is the declared type of a column, fixed when the table is loaded.
type ColumnType string

// Column types understood by the dashboard.
const (
	TypeString  ColumnType = "string"
	TypeInt     ColumnType = "int"
	TypeFloat   ColumnType = "float"
	TypeBool    ColumnType = "bool"
	TypeUnknown ColumnType = "unknown"
)

// IsNumeric reports whether values of this type are integers or floats.
func (t ColumnType) IsNumeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column describes a single column of the table.
type Column struct {
	Name string     `json:"name" yaml:"name"`
	Type ColumnType `json:"type" yaml:"type"`
}

// Schema is the ordered list of columns of a table.
type Schema struct {
	columns []Column
	index   map[string]int
}

// NewSchema builds a schema from columns in table order.
// Later duplicates of a column name are ignored.
func NewSchema(columns ...Column) Schema {
	s := Schema{
		columns: make([]Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := s.index[c.Name]; dup {
			continue
		}
		s.index[c.Name] = len(s.columns)
		s.columns = append(s.columns, c)
	}
	return s
}

// Columns returns a copy of the columns in table order.
func (s Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Names returns the column names in table order.
func (s Schema) Names() []string {
	names := make([]string, len(s.columns))
	for i, c := range s.columns {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.columns) }

// Has reports whether the schema contains the named column.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Type returns the declared type of the named column, or TypeUnknown if absent.
func (s Schema) Type(name string) ColumnType {
	i, ok := s.index[name]
	if !ok {
		return TypeUnknown
	}
	return s.columns[i].Type
}

// Without returns a schema with the named columns removed.
func (s Schema) Without(names ...string) Schema {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]Column, 0, len(s.columns))
	for _, c := range s.columns {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	return NewSchema(kept...)
}

// fromSeriesType maps a gota series type onto a ColumnType.
func fromSeriesType(t series.Type) ColumnType {
	switch t {
	case series.String:
		return TypeString
	case series.Int:
		return TypeInt
	case series.Float:
		return TypeFloat
	case series.Bool:
		return TypeBool
	default:
		return TypeUnknown
	}
}

// toSeriesType maps a ColumnType onto the gota series type used to store it.
// Unknown columns are kept as strings so their raw values survive.
func toSeriesType(t ColumnType) series.Type {
	switch t {
	case TypeInt:
		return series.Int
	case TypeFloat:
		return series.Float
	case TypeBool:
		return series.Bool
	default:
		return series.String
	}
}

// ParseColumnType maps a SQL database type name onto a ColumnType.
func ParseColumnType(dbType string) ColumnType {
	t := strings.ToUpper(strings.TrimSpace(dbType))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = t[:i]
	}
	switch t {
	case "VARCHAR", "TEXT", "CHAR", "BPCHAR", "STRING", "NVARCHAR", "CHARACTER VARYING", "NAME", "UUID":
		return TypeString
	case "INTEGER", "INT", "INT2", "INT4", "INT8", "BIGINT", "SMALLINT", "TINYINT", "HUGEINT",
		"UBIGINT", "UINTEGER", "USMALLINT", "UTINYINT":
		return TypeInt
	case "DOUBLE", "FLOAT", "FLOAT4", "FLOAT8", "REAL", "DECIMAL", "NUMERIC", "DOUBLE PRECISION":
		return TypeFloat
	case "BOOLEAN", "BOOL":
		return TypeBool
	default:
		return TypeUnknown
	}
}
