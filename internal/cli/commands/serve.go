package commands

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/celldash/internal/dataset"
	"github.com/leapstack-labs/celldash/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the network performance dashboard",
		Long: `Start a local web server with the interactive dashboard.

The page shows the metric tiles, the filterable scatter chart, the average call
duration and call type charts, and the raw data. Filter choices are kept per
browser session. With --watch the data file is reloaded when it changes and
open pages refresh.`,
		Example: `  # Serve train.csv on the default port
  celldash serve

  # Serve another file on port 3000
  celldash serve --data calls.csv --port 3000

  # Read the table from SQLite without opening a browser
  celldash serve --source sqlite --data calls.db --no-browser`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the data file when it changes")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cc := NewCommandContext(cmd)
	cfg := cc.Cfg

	// CLI flags override config file
	port := cfg.UI.Port
	if opts.Port != 0 {
		port = opts.Port
	}
	autoOpen := cfg.UI.AutoOpen && !opts.NoBrowser
	watch := cfg.UI.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	dsOpts := cfg.DatasetOptions()
	dsOpts.Logger = cc.Logger
	src, err := dataset.NewSource(dsOpts)
	if err != nil {
		return err
	}
	store, err := dataset.NewStore(cmd.Context(), src, dsOpts)
	if err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	var watchPath string
	if watch && cfg.FileBacked() {
		watchPath = cfg.Data.Path
	}

	server := ui.NewServer(ui.Config{
		Store:         store,
		Port:          port,
		Watch:         watch,
		WatchPath:     watchPath,
		SessionSecret: cfg.SessionSecret(),
		RawRowsLimit:  cfg.UI.RawRowsLimit,
		Logger:        cc.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", port)
	if autoOpen {
		go openBrowser(url)
	}

	t := store.Current()
	cc.Renderer.Printf("Loaded %s rows, %d columns from %s\n", cc.Renderer.Count(t.Len()), t.Schema().Len(), src.Name())
	cc.Renderer.Printf("Starting dashboard on %s\n", url)
	cc.Renderer.Println("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
