package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

/*
format: text        # text | json
indent: "    "
dump: 0             # hex-dump up to N payload bytes of skipped boxes
log:
  level: info       # debug | info | warn | error
  color: auto       # auto | always | never
*/

type LogConfig struct {
	Level string `yaml:"level"`
	Color string `yaml:"color"`
}

type Config struct {
	Format string    `yaml:"format"`
	Indent string    `yaml:"indent"`
	Dump   int       `yaml:"dump"`
	Log    LogConfig `yaml:"log"`
}

func defaultConfig() Config {
	return Config{
		Format: "text",
		Indent: "    ",
		Log:    LogConfig{Level: "info", Color: "auto"},
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func loadConfig(path string) (Config, error) {
	conf := defaultConfig()
	if path == "" {
		return conf, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}
	if err := parseConfig(data, &conf); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

func parseConfig(data []byte, conf *Config) error {
	if err := yaml.Unmarshal(data, conf); err != nil {
		return err
	}
	return conf.validate()
}

func (c *Config) validate() error {
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format: %q", c.Format)
	}
	if c.Dump < 0 {
		return fmt.Errorf("dump must not be negative: %d", c.Dump)
	}
	switch c.Log.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode: %q", c.Log.Color)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
}
