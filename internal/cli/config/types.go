// Package config loads celldash settings from defaults, a YAML file, CELLDASH_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"encoding/hex"
	"os"
	"sync"

	"github.com/gorilla/securecookie"

	"github.com/leapstack-labs/celldash/internal/dataset"
)

// Default configuration values.
const (
	DefaultSource       = dataset.SourceCSV
	DefaultDataPath     = "train.csv"
	DefaultTable        = "train"
	DefaultPort         = 8765
	DefaultRawRowsLimit = 500
	DefaultOutput       = "auto" // TTY=text, non-TTY=markdown
	DefaultLogFormat    = "text"
)

// runSecret is generated once per process. Sessions signed with it do not
// survive a restart.
var runSecret = sync.OnceValue(func() string {
	return hex.EncodeToString(securecookie.GenerateRandomKey(32))
})

// Config holds all CLI configuration options.
type Config struct {
	Data         DataConfig `koanf:"data"`
	UI           UIConfig   `koanf:"ui"`
	Verbose      bool       `koanf:"verbose"`
	OutputFormat string     `koanf:"output"`
	LogFormat    string     `koanf:"log_format"`

	// ConfigDir is the directory of the config file used, or the working
	// directory when none was found.
	ConfigDir string `koanf:"-"`
}

// DataConfig selects the data source.
type DataConfig struct {
	Source      string   `koanf:"source"`
	Path        string   `koanf:"path"`
	DSN         string   `koanf:"dsn"`
	Table       string   `koanf:"table"`
	DropColumns []string `koanf:"drop_columns"`
}

// UIConfig holds configuration for the dashboard server.
type UIConfig struct {
	Port          int    `koanf:"port"`
	AutoOpen      bool   `koanf:"auto_open"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
	RawRowsLimit  int    `koanf:"raw_rows_limit"` // 0 shows every row
}

// DatasetOptions converts the data section into loader options.
func (c *Config) DatasetOptions() dataset.Options {
	return dataset.Options{
		Source:      c.Data.Source,
		Path:        c.Data.Path,
		DSN:         c.Data.DSN,
		Table:       c.Data.Table,
		DropColumns: c.Data.DropColumns,
	}
}

// FileBacked reports whether the data source reads a local file that can be
// watched for changes.
func (c *Config) FileBacked() bool {
	return c.Data.Source != dataset.SourcePostgres
}

// SessionSecret returns the cookie signing secret: the configured value, then
// CELLDASH_SESSION_SECRET, then a random key generated for this run.
func (c *Config) SessionSecret() string {
	if c.UI.SessionSecret != "" {
		return c.UI.SessionSecret
	}
	if s := os.Getenv("CELLDASH_SESSION_SECRET"); s != "" {
		return s
	}
	return runSecret()
}
