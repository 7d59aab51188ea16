package dataset

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV_DetectsTypes(t *testing.T) {
	data := `Environment,SNR,Call Duration (s),Tower ID,Active
urban,12.5,120,7,true
rural,NA,30,8,false
,3.25,,9,true
`
	tbl, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, []string{"Environment", "SNR", "Call Duration (s)", "Tower ID", "Active"}, tbl.Schema().Names())
	assert.Equal(t, TypeString, tbl.Schema().Type("Environment"))
	assert.Equal(t, TypeFloat, tbl.Schema().Type("SNR"))
	assert.Equal(t, TypeInt, tbl.Schema().Type("Call Duration (s)"))
	assert.Equal(t, TypeInt, tbl.Schema().Type("Tower ID"))
	assert.Equal(t, TypeBool, tbl.Schema().Type("Active"))

	snr, err := tbl.Floats("SNR")
	require.NoError(t, err)
	assert.InDelta(t, 12.5, snr[0], 1e-9)
	assert.True(t, math.IsNaN(snr[1]))

	dur, err := tbl.Floats("Call Duration (s)")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(dur[2]))

	env, nulls, err := tbl.Strings("Environment")
	require.NoError(t, err)
	assert.Equal(t, []string{"urban", "rural", ""}, env)
	assert.Equal(t, []bool{false, false, true}, nulls)
}

func TestReadCSV_NullTokens(t *testing.T) {
	data := "Environment,SNR\nnull,N/A\nrural,n/a\nNULL,4.5\n"
	tbl, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	_, nulls, err := tbl.Strings("Environment")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true}, nulls)

	snr, err := tbl.Floats("SNR")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(snr[0]))
	assert.True(t, math.IsNaN(snr[1]))
	assert.InDelta(t, 4.5, snr[2], 1e-9)
	assert.Equal(t, TypeFloat, tbl.Schema().Type("SNR"))
}

func TestReadCSV_AllNullColumnIsNumeric(t *testing.T) {
	data := "Environment,Attenuation,SNR\nurban,,1.5\nrural,NA,2\n"
	tbl, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, TypeFloat, tbl.Schema().Type("Attenuation"))
	vals, err := tbl.Floats("Attenuation")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(vals[0]))
	assert.True(t, math.IsNaN(vals[1]))
}

func TestReadCSV_RaggedRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b,c\nx, 1\ny,2,3,extra\n"))
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, [][]string{{"x", "1", ""}, {"y", "2", "3"}}, tbl.Records(0))
	assert.Equal(t, TypeInt, tbl.Schema().Type("c"))
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("SNR,Environment\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Len())
	assert.Equal(t, []string{"SNR", "Environment"}, tbl.Schema().Names())
}

func TestTable_ColumnNotFound(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("SNR\n1.5\n"))
	require.NoError(t, err)

	_, err = tbl.Floats("Attenuation")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	_, _, err = tbl.Strings("Attenuation")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTable_Drop(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("Tower ID,SNR,User ID,Environment\n1,2.5,3,urban\n"))
	require.NoError(t, err)

	t.Run("removes present columns", func(t *testing.T) {
		cleaned := tbl.Drop(DefaultDropColumns...)
		assert.Equal(t, []string{"SNR", "Environment"}, cleaned.Schema().Names())
		assert.Equal(t, 1, cleaned.Len())
		// receiver is untouched
		assert.True(t, tbl.Has("Tower ID"))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := tbl.Drop(DefaultDropColumns...)
		twice := once.Drop(DefaultDropColumns...)
		assert.Same(t, once, twice)
		assert.Equal(t, once.Records(0), twice.Records(0))
	})

	t.Run("all columns", func(t *testing.T) {
		none := tbl.Drop("Tower ID", "SNR", "User ID", "Environment")
		assert.Equal(t, 0, none.Schema().Len())
		assert.Equal(t, 0, none.Len())
	})
}

func TestTable_Records(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("a,b\nx,1\ny,NA\nz,3\n"))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"x", "1"}, {"y", ""}}, tbl.Records(2))
	assert.Len(t, tbl.Records(0), 3)
	assert.Len(t, tbl.Records(10), 3)
}

func TestParseColumnType(t *testing.T) {
	tests := []struct {
		in   string
		want ColumnType
	}{
		{"VARCHAR", TypeString},
		{"text", TypeString},
		{"BIGINT", TypeInt},
		{"INT4", TypeInt},
		{"DOUBLE", TypeFloat},
		{"NUMERIC(10,2)", TypeFloat},
		{"BOOLEAN", TypeBool},
		{"TIMESTAMP", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseColumnType(tt.in))
		})
	}
}

func TestSchema(t *testing.T) {
	s := NewSchema(
		Column{Name: "a", Type: TypeString},
		Column{Name: "b", Type: TypeFloat},
		Column{Name: "a", Type: TypeInt},
	)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, TypeString, s.Type("a"))
	assert.Equal(t, TypeUnknown, s.Type("missing"))
	assert.Equal(t, []string{"b"}, s.Without("a", "zzz").Names())
	assert.True(t, TypeInt.IsNumeric())
	assert.False(t, TypeBool.IsNumeric())
}

func TestLoad_CSVFixture(t *testing.T) {
	tbl, err := Load(context.Background(), Options{
		Source: SourceCSV,
		Path:   filepath.Join("..", "..", "testdata", "train.csv"),
	})
	require.NoError(t, err)

	assert.False(t, tbl.Has("Tower ID"))
	assert.False(t, tbl.Has("User ID"))
	assert.True(t, tbl.Has("Signal Strength (dBm)"))
	assert.Equal(t, 8, tbl.Len())
}

func TestLoad_CustomDropColumns(t *testing.T) {
	tbl, err := Load(context.Background(), Options{
		Path:        filepath.Join("..", "..", "testdata", "train.csv"),
		DropColumns: []string{},
	})
	require.NoError(t, err)
	assert.True(t, tbl.Has("Tower ID"))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), Options{Path: filepath.Join(t.TempDir(), "nope.csv")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open data file")
}

func TestNewSource(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantName  string
		expectErr bool
	}{
		{name: "default csv", opts: Options{Path: "train.csv"}, wantName: "csv:train.csv"},
		{name: "sqlite default table", opts: Options{Source: SourceSQLite, Path: "x.db"}, wantName: "sqlite:train"},
		{name: "postgres", opts: Options{Source: SourcePostgres, DSN: "postgres://", Table: "calls"}, wantName: "pgx:calls"},
		{name: "duckdb", opts: Options{Source: SourceDuckDB, Path: "train.csv"}, wantName: "duckdb:query"},
		{name: "unknown", opts: Options{Source: "excel"}, expectErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewSource(tt.opts)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, src.Name())
		})
	}
}

type stubSource struct {
	tables []*Table
	calls  int
	err    error
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Load(context.Context) (*Table, error) {
	if s.err != nil {
		return nil, s.err
	}
	t := s.tables[s.calls]
	s.calls++
	return t, nil
}

func TestStore_Reload(t *testing.T) {
	first, err := ReadCSV(strings.NewReader("SNR\n1\n"))
	require.NoError(t, err)
	second, err := ReadCSV(strings.NewReader("SNR\n1\n2\n"))
	require.NoError(t, err)

	src := &stubSource{tables: []*Table{first, second}}
	store, err := NewStore(context.Background(), src, Options{})
	require.NoError(t, err)

	snapshot := store.Current()
	require.NoError(t, store.Reload(context.Background()))

	assert.Equal(t, 1, snapshot.Len())
	assert.Equal(t, 2, store.Current().Len())

	src.err = assert.AnError
	require.Error(t, store.Reload(context.Background()))
	assert.Equal(t, 2, store.Current().Len())
}

func TestStore_EmptySource(t *testing.T) {
	src := &stubSource{tables: []*Table{Empty()}}
	_, err := NewStore(context.Background(), src, Options{})
	assert.ErrorIs(t, err, ErrEmptySource)
}
