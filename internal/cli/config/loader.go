package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/celldash/internal/dataset"
)

// loggerKey is used to store the logger in a command context.
type loggerKey struct{}

const envPrefix = "CELLDASH_"

// configNames are searched in the working directory when --config is not given.
var configNames = []string{"celldash.yaml", "celldash.yml"}

var (
	configFileUsed string
	currentConfig  *Config
)

// flagKeys maps persistent flag names to config keys. Flags not listed here are
// not configuration.
var flagKeys = map[string]string{
	"data":       "data.path",
	"source":     "data.source",
	"dsn":        "data.dsn",
	"table":      "data.table",
	"verbose":    "verbose",
	"output":     "output",
	"log-format": "log_format",
}

// ResetConfig clears the remembered config. Used for testing.
func ResetConfig() {
	configFileUsed = ""
	currentConfig = nil
}

func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"data.source":       DefaultSource,
		"data.path":         DefaultDataPath,
		"data.dsn":          "",
		"data.table":        DefaultTable,
		"data.drop_columns": slices.Clone(dataset.DefaultDropColumns),
		"ui.port":           DefaultPort,
		"ui.auto_open":      false,
		"ui.watch":          true,
		"ui.session_secret": "",
		"ui.raw_rows_limit": DefaultRawRowsLimit,
		"verbose":           false,
		"output":            DefaultOutput,
		"log_format":        DefaultLogFormat,
	}
}

// envKey maps CELLDASH_UI__PORT to ui.port. Without a double underscore the
// first segment names the section when it is one: CELLDASH_DATA_PATH is
// data.path, CELLDASH_LOG_FORMAT stays log_format.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if strings.Contains(key, "__") {
		return strings.ReplaceAll(key, "__", ".")
	}
	for _, section := range []string{"data_", "ui_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}

// LoadConfig loads configuration from defaults, file, environment and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// Only flags that were explicitly set override lower layers.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	var flagPath string
	if flags != nil {
		if f := flags.Lookup("data"); f != nil && f.Changed {
			flagPath = f.Value.String()
		}
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeDurationHookFunc(),
			),
			Result:           &cfg,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	for i, c := range cfg.Data.DropColumns {
		cfg.Data.DropColumns[i] = strings.TrimSpace(c)
	}
	cfg.Data.DSN = expandEnvVars(cfg.Data.DSN)

	// Paths from the config file are relative to the file; a --data flag is
	// relative to the working directory.
	cfg.ConfigDir, _ = os.Getwd()
	if configFileUsed != "" {
		if abs, err := filepath.Abs(configFileUsed); err == nil {
			cfg.ConfigDir = filepath.Dir(abs)
		}
	}
	if flagPath == "" {
		cfg.Data.Path = resolvePathRelativeTo(cfg.Data.Path, cfg.ConfigDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	currentConfig = &cfg
	return &cfg, nil
}

func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns. Unset variables are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the most recently loaded configuration.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger, so commands
// can read it without importing the root cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
