package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/celldash/internal/cli/config"
	"github.com/leapstack-labs/celldash/internal/testutil"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "summary", "schema", "views", "table", "chart", "version", "completion"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
	for _, flag := range []string{"config", "data", "source", "dsn", "table", "verbose", "output", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_SummaryThroughFlags(t *testing.T) {
	out, err := runRoot(t, "--data", testutil.FixturePath(t, "train.csv"), "-o", "json", "summary")
	require.NoError(t, err)

	var got struct {
		Rows int `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 8, got.Rows)
	assert.Equal(t, "json", config.GetCurrentConfig().OutputFormat)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	_, err := runRoot(t, "--source", "excel", "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown data source")
}

func TestRootCommand_MissingDataFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runRoot(t, "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load data")
}

func TestCompletionCommand(t *testing.T) {
	out, err := runRoot(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "celldash")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "json", false).Info("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, "json", true).Debug("shown", "rows", 8)
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.EqualValues(t, 8, line["rows"])

	buf.Reset()
	NewLogger(&buf, "text", true).Warn("careful")
	assert.Contains(t, buf.String(), "level=WARN msg=careful")
}
