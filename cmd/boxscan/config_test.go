package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	conf := defaultConfig()
	err := parseConfig([]byte(`
format: json
dump: 32
log:
  level: debug
  color: always
`), &conf)
	require.NoError(t, err)
	require.Equal(t, "json", conf.Format)
	require.Equal(t, 32, conf.Dump)
	require.Equal(t, "debug", conf.Log.Level)
	require.Equal(t, "always", conf.Log.Color)
	// unset keys keep their defaults
	require.Equal(t, "    ", conf.Indent)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"format":  "format: xml",
		"dump":    "dump: -1",
		"level":   "log:\n  level: verbose",
		"color":   "log:\n  color: maybe",
		"garbage": "format: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			conf := defaultConfig()
			require.Error(t, parseConfig([]byte(data), &conf))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	conf, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), conf)

	path := filepath.Join(t.TempDir(), "boxscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indent: \"\\t\"\n"), 0o644))
	conf, err = loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "\t", conf.Indent)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLevel(t *testing.T) {
	lvl, err := parseLevel("WARN")
	require.NoError(t, err)
	require.Equal(t, slog.LevelWarn, lvl)

	lvl, err = parseLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, lvl)

	_, err = parseLevel("trace")
	require.Error(t, err)
}
