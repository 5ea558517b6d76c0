// Package config resolves signalctl settings from flags, environment
// variables and an optional YAML file.
//
// Precedence, highest first: command-line flags, SIGNALCTL_* environment
// variables, the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/signalctl/internal/codec"
)

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// ValidBackends lists the accepted backend names.
var ValidBackends = []string{BackendFile, BackendSQLite}

// Config holds resolved settings.
type Config struct {
	File    string `mapstructure:"file"`    // backing file or database path
	Format  string `mapstructure:"format"`  // codec for the file backend
	Backend string `mapstructure:"backend"` // "file" | "sqlite"
	Verbose bool   `mapstructure:"verbose"`
}

// Default returns the built-in configuration. File is left empty and is
// filled in from the backend and format by Load.
func Default() *Config {
	return &Config{
		Format:  "jsonl",
		Backend: BackendFile,
	}
}

// DefaultPath returns the backing path used when none is configured.
func DefaultPath(backend, format string) string {
	switch {
	case backend == BackendSQLite:
		return "traffic_signals.db"
	case format == "csv":
		return "traffic_signals.txt"
	default:
		return "traffic_signals.jsonl"
	}
}

// Load resolves configuration. configFile may be empty, in which case
// signalctl.yaml is searched for in the working directory and the user
// config directory; a missing file is not an error. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	cfg := Default()
	v := viper.New()

	v.SetDefault("file", cfg.File)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("backend", cfg.Backend)
	v.SetDefault("verbose", cfg.Verbose)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("signalctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := userConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix("SIGNALCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, name := range []string{"file", "format", "backend", "verbose"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %q: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", describe(configFile), err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.File == "" {
		cfg.File = DefaultPath(cfg.Backend, cfg.Format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return fmt.Errorf("config: file is required")
	}
	if !slices.Contains(ValidBackends, c.Backend) {
		return fmt.Errorf("config: invalid backend %q: must be one of %v", c.Backend, ValidBackends)
	}
	if c.Backend == BackendFile {
		if _, err := codec.Lookup(c.Format); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "signalctl")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "signalctl")
}

func describe(configFile string) string {
	if configFile == "" {
		return "signalctl.yaml"
	}
	return configFile
}
