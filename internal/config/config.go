// Package config loads CLI configuration from defaults, an optional YAML file
// and CSTATE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. Nested keys are
// separated by a double underscore: CSTATE_LOG__LEVEL=debug.
const EnvPrefix = "CSTATE_"

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = ".cstate.yml"

// Config holds the CLI configuration.
type Config struct {
	Project ProjectConfig `koanf:"project"`
	Log     LogConfig     `koanf:"log"`
	Hugo    HugoConfig    `koanf:"hugo"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ProjectConfig locates the status-page project.
type ProjectConfig struct {
	Root         string `koanf:"root" validate:"required"`
	ConfigFile   string `koanf:"config_file" validate:"required"`
	ContentDir   string `koanf:"content_dir" validate:"required"`
	TemplatesDir string `koanf:"templates_dir"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// HugoConfig configures the site generator subprocess.
type HugoConfig struct {
	Binary    string `koanf:"binary" validate:"required"`
	Theme     string `koanf:"theme"`
	ThemesDir string `koanf:"themes_dir"`
}

// MetricsConfig configures the node_exporter textfile output.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

var defaults = map[string]any{
	"project.root":          ".",
	"project.config_file":   "config.yml",
	"project.content_dir":   "content/issues",
	"project.templates_dir": "",
	"log.level":             "warn",
	"log.format":            "text",
	"hugo.binary":           "hugo",
	"hugo.theme":            "cstate",
	"hugo.themes_dir":       "../..",
	"metrics.textfile":      "",
}

// Load reads configuration. An empty path falls back to DefaultFile, which is
// skipped when it does not exist; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if _, err := os.Stat(path); err == nil || explicit {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration, including values set after Load.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
