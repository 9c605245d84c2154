package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Format:       "text",
		Journal:      "",
		MaxLineBytes: 1048576,
	}, cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "socialnet.cue")
	src := `
log_level: "debug"
format:    "json"
journal:   "/tmp/journal.db"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "/tmp/journal.db", cfg.Journal)
	assert.Equal(t, 1048576, cfg.MaxLineBytes)
}

func TestParse_JSONIsAccepted(t *testing.T) {
	cfg, err := Parse([]byte(`{"max_line_bytes": 4096, "log_format": "json"}`), "cfg.json")
	require.NoError(t, err)
	assert.Equal(t, 4096, cfg.MaxLineBytes)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown field":   `verbose: true`,
		"bad enum":        `format: "xml"`,
		"bad type":        `journal: 12`,
		"below minimum":   `max_line_bytes: 10`,
		"syntax error":    `log_level: "debug`,
		"not an integer":  `max_line_bytes: 2048.5`,
		"bad level value": `log_level: "trace"`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), "bad.cue")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
