// Package config loads config-sub settings from YAML and the environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	coreerrors "github.com/FocuswithJustin/configsub/core/errors"
	"github.com/FocuswithJustin/configsub/internal/logging"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "CONFIGSUB_LOG_LEVEL"
	EnvLogFormat = "CONFIGSUB_LOG_FORMAT"
	EnvCacheSize = "CONFIGSUB_CACHE_SIZE"
	EnvCacheDB   = "CONFIGSUB_CACHE_DB"
)

// Config holds all config-sub settings.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Cache CacheConfig `yaml:"cache"`
}

// LogConfig selects the diagnostic log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// CacheConfig controls the result memo and the persistent store.
type CacheConfig struct {
	// Size is the in-memory memo capacity. Zero disables memoization.
	Size int `yaml:"size"`
	// DB is the path of the persistent result store. Empty disables it.
	DB string `yaml:"db"`
}

// Default returns the settings used when no file or environment is given.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "warn", Format: "text"},
		Cache: CacheConfig{Size: 256},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, coreerrors.NewIO("read", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, coreerrors.NewParse("yaml", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any CONFIGSUB_* variables found by lookup.
// Pass os.LookupEnv for the process environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvCacheSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvCacheSize, v, coreerrors.ErrInvalidInput)
		}
		c.Cache.Size = n
	}
	if v, ok := lookup(EnvCacheDB); ok {
		c.Cache.DB = v
	}
	return nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %v: %w", err, coreerrors.ErrInvalidInput)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %v: %w", err, coreerrors.ErrInvalidInput)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size must be >= 0, got %d: %w", c.Cache.Size, coreerrors.ErrInvalidInput)
	}
	return nil
}

// Logging returns the parsed log level and format. Call Validate first.
func (c Config) Logging() (logging.Level, logging.Format) {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		level = logging.LevelWarn
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		format = logging.FormatText
	}
	return level, format
}
