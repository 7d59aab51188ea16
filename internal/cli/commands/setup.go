package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/celldash/internal/cli/config"
	"github.com/leapstack-labs/celldash/internal/cli/output"
	"github.com/leapstack-labs/celldash/internal/dashboard"
	"github.com/leapstack-labs/celldash/internal/dataset"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the context from the loaded config and the logger the
// root command stored.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// LoadTable loads the configured data source with identifier columns dropped.
func (c *CommandContext) LoadTable(ctx context.Context) (*dataset.Table, error) {
	opts := c.Cfg.DatasetOptions()
	opts.Logger = c.Logger
	t, err := dataset.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return t, nil
}

// Render loads the table and runs one render pass with the given filters.
func (c *CommandContext) Render(ctx context.Context, f dashboard.FilterSelection) (*dashboard.Snapshot, error) {
	t, err := c.LoadTable(ctx)
	if err != nil {
		return nil, err
	}
	return dashboard.Render(t, f)
}

// getConfig returns the loaded configuration, or defaults when commands run
// without the root command (tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Data: config.DataConfig{
			Source: config.DefaultSource,
			Path:   config.DefaultDataPath,
			Table:  config.DefaultTable,
		},
		UI: config.UIConfig{
			Port:         config.DefaultPort,
			Watch:        true,
			RawRowsLimit: config.DefaultRawRowsLimit,
		},
		OutputFormat: config.DefaultOutput,
		LogFormat:    config.DefaultLogFormat,
	}
}
