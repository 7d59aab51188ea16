package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	_ "github.com/jackc/pgx/v5/stdlib"  // postgres driver ("pgx")
	_ "github.com/marcboeker/go-duckdb" // duckdb driver ("duckdb")
	_ "modernc.org/sqlite"              // sqlite driver ("sqlite")
)

// Driver names registered with database/sql.
const (
	DriverDuckDB   = "duckdb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// SQLSource reads the table with a single query over database/sql.
type SQLSource struct {
	Driver string
	DSN    string
	// Query overrides the default SELECT * FROM Table.
	Query string
	Table string

	// DB is used instead of opening Driver/DSN when set.
	DB *sql.DB
}

// NewDuckDBSource reads a CSV file through DuckDB's read_csv_auto, letting DuckDB
// infer the column types.
func NewDuckDBSource(path string) (SQLSource, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SQLSource{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	return SQLSource{
		Driver: DriverDuckDB,
		DSN:    "",
		Query:  fmt.Sprintf("SELECT * FROM read_csv_auto('%s', header=true)", strings.ReplaceAll(abs, "'", "''")),
	}, nil
}

// Name returns a short description for logs.
func (s SQLSource) Name() string {
	if s.Table != "" && s.Query == "" {
		return s.Driver + ":" + s.Table
	}
	return s.Driver + ":query"
}

func (s SQLSource) query() (string, error) {
	if s.Query != "" {
		return s.Query, nil
	}
	if !identPattern.MatchString(s.Table) {
		return "", fmt.Errorf("invalid table name %q", s.Table)
	}
	return "SELECT * FROM " + s.Table, nil //nolint:gosec // table name validated above
}

// Load runs the query and converts the result set into a Table. Column types come
// from the driver's reported database types.
func (s SQLSource) Load(ctx context.Context) (*Table, error) {
	q, err := s.query()
	if err != nil {
		return nil, err
	}

	db := s.DB
	if db == nil {
		db, err = sql.Open(s.Driver, s.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s connection: %w", s.Driver, err)
		}
		defer func() { _ = db.Close() }()
	}

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query source: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTable(rows)
}

func scanTable(rows *sql.Rows) (*Table, error) {
	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}
	if len(colTypes) == 0 {
		return nil, ErrEmptySource
	}

	cols := make([]Column, len(colTypes))
	for i, ct := range colTypes {
		cols[i] = Column{Name: ct.Name(), Type: ParseColumnType(ct.DatabaseTypeName())}
	}

	values := make([][]interface{}, len(cols))
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range raw {
			values[i] = append(values[i], cellValue(v, cols[i].Type))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	schema := NewSchema(cols...)
	if schema.Len() != len(cols) {
		return nil, fmt.Errorf("source returned duplicate column names")
	}
	if len(values[0]) == 0 {
		return tableWithoutRows(schema)
	}

	ss := make([]series.Series, len(cols))
	for i, c := range cols {
		ss[i] = series.New(values[i], toSeriesType(c.Type), c.Name)
	}
	return newTableWithSchema(dataframe.New(ss...), schema)
}

func tableWithoutRows(schema Schema) (*Table, error) {
	ss := make([]series.Series, 0, schema.Len())
	for _, c := range schema.Columns() {
		ss = append(ss, series.New([]string{}, toSeriesType(c.Type), c.Name))
	}
	return newTableWithSchema(dataframe.New(ss...), schema)
}

// cellValue converts a scanned driver value into something gota's element setters
// accept. nil stays nil, which gota stores as NaN.
func cellValue(v any, t ColumnType) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case int32:
		return int(x)
	case int16:
		return int(x)
	case int8:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	case int64:
		if t == TypeFloat {
			return float64(x)
		}
		return int(x)
	case float32:
		return float64(x)
	case string:
		return x
	case bool:
		return x
	case float64, int:
		return x
	default:
		if s, ok := v.(fmt.Stringer); ok {
			if f, err := strconv.ParseFloat(s.String(), 64); err == nil && t.IsNumeric() {
				return f
			}
			return s.String()
		}
		return fmt.Sprint(v)
	}
}
