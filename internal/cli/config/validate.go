package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/celldash/internal/dataset"
)

var (
	validSources    = []string{dataset.SourceCSV, dataset.SourceDuckDB, dataset.SourceSQLite, dataset.SourcePostgres}
	validOutputs    = []string{"auto", "text", "markdown", "json"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(validSources, c.Data.Source) {
		return fmt.Errorf("unknown data source %q (available: %s)", c.Data.Source, strings.Join(validSources, ", "))
	}
	if c.Data.Source == dataset.SourcePostgres {
		if c.Data.DSN == "" {
			return fmt.Errorf("data.dsn is required for the postgres source")
		}
	} else if c.Data.Path == "" {
		return fmt.Errorf("data.path is required for the %s source", c.Data.Source)
	}
	if c.UI.Port <= 0 || c.UI.Port > 65535 {
		return fmt.Errorf("ui.port must be between 1 and 65535, got %d", c.UI.Port)
	}
	if c.UI.RawRowsLimit < 0 {
		return fmt.Errorf("ui.raw_rows_limit must not be negative")
	}
	if !slices.Contains(validOutputs, c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (available: %s)", c.OutputFormat, strings.Join(validOutputs, ", "))
	}
	if !slices.Contains(validLogFormats, c.LogFormat) {
		return fmt.Errorf("unknown log format %q (available: %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	return nil
}
