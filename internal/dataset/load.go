package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// ErrEmptySource is returned when the source has no columns.
var ErrEmptySource = errors.New("data source has no columns")

// Source kinds accepted in Options.Source.
const (
	SourceCSV      = "csv"
	SourceDuckDB   = "duckdb"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// DefaultDropColumns are identifier columns removed right after load.
var DefaultDropColumns = []string{"Tower ID", "User ID"}

// Source produces a freshly loaded table.
type Source interface {
	Load(ctx context.Context) (*Table, error)
	Name() string
}

// Options selects and configures the data source.
type Options struct {
	Source      string
	Path        string
	DSN         string
	Table       string
	DropColumns []string
	Logger      *slog.Logger
}

// NewSource builds the Source described by opts.
func NewSource(opts Options) (Source, error) {
	switch opts.Source {
	case "", SourceCSV:
		return CSVSource{Path: opts.Path}, nil
	case SourceDuckDB:
		return NewDuckDBSource(opts.Path)
	case SourceSQLite:
		return SQLSource{Driver: DriverSQLite, DSN: opts.Path, Table: tableOrDefault(opts.Table)}, nil
	case SourcePostgres:
		return SQLSource{Driver: DriverPostgres, DSN: opts.DSN, Table: tableOrDefault(opts.Table)}, nil
	default:
		return nil, fmt.Errorf("unknown data source %q", opts.Source)
	}
}

func tableOrDefault(name string) string {
	if name == "" {
		return "train"
	}
	return name
}

// Load opens the configured source and drops the configured identifier columns.
// A nil DropColumns uses DefaultDropColumns.
func Load(ctx context.Context, opts Options) (*Table, error) {
	src, err := NewSource(opts)
	if err != nil {
		return nil, err
	}
	return LoadFrom(ctx, src, opts)
}

// LoadFrom loads from an already constructed source.
func LoadFrom(ctx context.Context, src Source, opts Options) (*Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	t, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}
	if t.Schema().Len() == 0 {
		return nil, ErrEmptySource
	}

	drop := opts.DropColumns
	if drop == nil {
		drop = DefaultDropColumns
	}
	t = t.Drop(drop...)

	logger.Info("dataset loaded",
		slog.String("source", src.Name()),
		slog.Int("rows", t.Len()),
		slog.Int("columns", t.Schema().Len()))
	return t, nil
}

// Store holds the current table. Readers take one snapshot per render pass with
// Current; Reload swaps in a new table without affecting snapshots already taken.
type Store struct {
	current atomic.Pointer[Table]
	src     Source
	opts    Options
}

// NewStore loads the initial table from src.
func NewStore(ctx context.Context, src Source, opts Options) (*Store, error) {
	t, err := LoadFrom(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	s := &Store{src: src, opts: opts}
	s.current.Store(t)
	return s, nil
}

// NewStaticStore wraps an already loaded table. Reload is a no-op.
func NewStaticStore(t *Table) *Store {
	s := &Store{}
	s.current.Store(t)
	return s
}

// Current returns the table in effect.
func (s *Store) Current() *Table {
	return s.current.Load()
}

// Reload loads the source again and swaps the result in. On error the previous
// table stays current.
func (s *Store) Reload(ctx context.Context) error {
	if s.src == nil {
		return nil
	}
	t, err := LoadFrom(ctx, s.src, s.opts)
	if err != nil {
		return err
	}
	s.current.Store(t)
	return nil
}
