// Package config resolves CLI settings from defaults, a TOML file, the
// environment and root flags, in that order.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/todolist/internal/store/jsonstore"
)

const (
	DefaultLabel    = "Todos"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"

	configFileName = "todo.toml"
)

// Config holds the resolved CLI settings.
type Config struct {
	File          string `toml:"file"`
	Label         string `toml:"label"`
	Theme         string `toml:"theme"`
	LogLevel      string `toml:"log_level"`
	LogTimestamps bool   `toml:"log_timestamps"`
	NoColor       bool   `toml:"no_color"`

	// Source is the config file that was read, if any.
	Source string `toml:"-"`
}

// Load resolves configuration and parses root flags from args into fs.
// Remaining positional arguments are available through fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if path := findConfigFile(); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.File = jsonstore.DefaultFileName
	cfg.Label = DefaultLabel
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
}

// findConfigFile prefers TODO_CONFIG, then ./todo.toml, then the user
// config dir.
func findConfigFile() string {
	if p := strings.TrimSpace(os.Getenv("TODO_CONFIG")); p != "" {
		return p
	}
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "todo", configFileName)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_FILE"); v != "" {
		cfg.File = v
	}
	if v := os.Getenv("TODO_LABEL"); v != "" {
		cfg.Label = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if err := envBool("TODO_LOG_TIMESTAMPS", &cfg.LogTimestamps); err != nil {
		return err
	}
	return envBool("TODO_NO_COLOR", &cfg.NoColor)
}

func envBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	fs.StringVar(&cfg.File, "file", cfg.File, "path to the todo snapshot file")
	fs.StringVar(&cfg.Label, "label", cfg.Label, "label for a new list")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "output theme: classic, neon, mono")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "timestamp log lines")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	return fs.Parse(args)
}

func finalize(cfg *Config) error {
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	switch cfg.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme %q", cfg.Theme)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	file, err := jsonstore.ResolvePath(cfg.File)
	if err != nil {
		return err
	}
	cfg.File = file
	return nil
}
