// Package config loads application configuration from defaults, an
// optional YAML file and GAMBIT_-prefixed environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Solver   SolverConfig   `mapstructure:"solver"`
	Output   OutputConfig   `mapstructure:"output"`
}

// DatabaseConfig holds run-history sqlite settings.
type DatabaseConfig struct {
	Path     string `mapstructure:"path"`
	Disabled bool   `mapstructure:"disabled"`
}

// SolverConfig holds default search settings applied when the CLI
// flags leave them unset.
type SolverConfig struct {
	// Scorers are path:function:weight directives. Empty means an
	// unweighted search: every candidate scores zero and the lowest
	// legal column wins each expansion.
	Scorers []string `mapstructure:"scorers"`
	// MaxNodes bounds the blacklist node count. Zero is unlimited.
	MaxNodes int `mapstructure:"max_nodes"`
	// Timeout bounds a single solve. Zero means no deadline.
	Timeout time.Duration `mapstructure:"timeout"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix GAMBIT_, e.g. GAMBIT_DATABASE_PATH. The config file is taken
// from GAMBIT_CONFIG when set, otherwise gambit.yaml is searched in
// $XDG_CONFIG_HOME/gambit and the current directory.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("database.disabled", false)
	v.SetDefault("solver.scorers", []string{})
	v.SetDefault("solver.max_nodes", 0)
	v.SetDefault("solver.timeout", time.Duration(0))
	v.SetDefault("output.format", "text")
	v.SetDefault("output.verbose", false)

	v.SetConfigType("yaml")

	explicit := os.Getenv("GAMBIT_CONFIG")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(filepath.Join(xdgConfigHome(), "gambit"))
		v.AddConfigPath(".")
		v.SetConfigName("gambit")
	}

	v.SetEnvPrefix("GAMBIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing file on the search path is fine; an explicitly
		// requested file must exist.
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// DefaultDatabasePath returns the run-history location used when no
// path is configured: $XDG_STATE_HOME/gambit/gambit.db.
func DefaultDatabasePath() string {
	return filepath.Join(xdgStateHome(), "gambit", "gambit.db")
}

func xdgConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}

func xdgStateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state")
}
