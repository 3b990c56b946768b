// Package config resolves tabula's settings from built-in defaults, an
// optional YAML file and environment overrides, in that order.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/dreamware/tabula/internal/hashtable"
	"github.com/dreamware/tabula/internal/logging"
	"github.com/dreamware/tabula/internal/storage"
)

// Environment variables read by Load.
const (
	EnvConfigFile    = "TABULA_CONFIG"
	EnvPrompt        = "TABULA_PROMPT"
	EnvLogLevel      = "TABULA_LOG_LEVEL"
	EnvColor         = "TABULA_COLOR"
	EnvIndexCapacity = "TABULA_INDEX_CAPACITY"
)

// DefaultPrompt is printed before every command.
const DefaultPrompt = "==$ "

// Config holds the settings of one tabula process.
//
// Example file:
//
//	prompt: "tabula> "
//	color: true
//	log_level: debug
//	index_capacity: 1024
//	preload:
//	  - name: users
//	    file: data/users.txt
type Config struct {
	Prompt        string           `yaml:"prompt"`
	Color         bool             `yaml:"color"`
	LogLevel      string           `yaml:"log_level"`
	LogFormat     string           `yaml:"log_format"`
	LogFile       string           `yaml:"log_file"`
	IndexCapacity int              `yaml:"index_capacity"`
	Preload       []storage.Source `yaml:"preload"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Prompt:   DefaultPrompt,
		LogLevel: logging.LevelWarn,
	}
}

// Load resolves the configuration. getenv is consulted for every variable
// listed above; pass os.Getenv outside of tests.
//
// Returns an error if the config file cannot be read or parsed, an
// override does not parse, or the result fails Validate.
func Load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if path := getenv(EnvConfigFile); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
		if err := Decode(bytes.NewReader(data), &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "config %s", path)
		}
	}

	if err := applyEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads YAML settings from r into cfg. Keys absent from the input
// keep their current values; unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "parse yaml")
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) string) error {
	cfg.Prompt = getenv(lookup, EnvPrompt, cfg.Prompt)
	cfg.LogLevel = getenv(lookup, EnvLogLevel, cfg.LogLevel)

	if v := getenv(lookup, EnvColor, ""); v != "" {
		color, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvColor)
		}
		cfg.Color = color
	}
	if v := getenv(lookup, EnvIndexCapacity, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvIndexCapacity)
		}
		cfg.IndexCapacity = n
	}
	return nil
}

// getenv returns the variable k, or def when it is unset or empty.
func getenv(lookup func(string) string, k, def string) string {
	if v := lookup(k); v != "" {
		return v
	}
	return def
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "" && c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Newf("unknown log format %q", c.LogFormat)
	}
	if c.IndexCapacity < 0 || c.IndexCapacity > hashtable.MaxCapacity {
		return errors.Newf("index_capacity must be between 0 and %d, got %d", hashtable.MaxCapacity, c.IndexCapacity)
	}
	for i, src := range c.Preload {
		if src.Name == "" || src.File == "" {
			return errors.Newf("preload entry %d needs both name and file", i)
		}
	}
	return nil
}
