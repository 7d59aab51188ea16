package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// nullTokens are cell values treated as missing.
var nullTokens = []string{"", "NA", "N/A", "n/a", "NaN", "nan", "null", "NULL"}

// CSVSource reads the table from a comma-separated file with a header row.
type CSVSource struct {
	Path string
}

// Name returns a short description for logs.
func (s CSVSource) Name() string { return "csv:" + s.Path }

// Load reads and type-detects the CSV file.
func (s CSVSource) Load(_ context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f)
}

// ReadCSV parses CSV data into a Table. Column types are detected once here and
// recorded in the table's schema.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if len(header) == 0 || (len(header) == 1 && header[0] == "") {
		return nil, ErrEmptySource
	}

	records := [][]string{header}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		records = append(records, normalizeRow(row, len(header)))
	}

	if len(records) == 1 {
		cols := make([]Column, len(header))
		for i, name := range header {
			cols[i] = Column{Name: name, Type: TypeString}
		}
		return tableWithoutRows(NewSchema(cols...))
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nullTokens),
		dataframe.WithTypes(nullColumnTypes(header, records[1:])),
	)
	return NewTable(df)
}

// normalizeRow pads or truncates a row to width and trims each cell.
func normalizeRow(row []string, width int) []string {
	out := make([]string, width)
	for i := 0; i < width; i++ {
		if i < len(row) {
			out[i] = strings.TrimSpace(row[i])
		}
	}
	return out
}

// nullColumnTypes declares columns without a single non-null cell as float, the
// type a numeric reader gives an empty column. Type detection would otherwise
// fall back to string.
func nullColumnTypes(header []string, rows [][]string) map[string]series.Type {
	types := make(map[string]series.Type)
	for i, name := range header {
		empty := true
		for _, row := range rows {
			if !slices.Contains(nullTokens, row[i]) {
				empty = false
				break
			}
		}
		if empty {
			types[name] = series.Float
		}
	}
	return types
}
