// Package config loads the optional socialnet configuration file.
//
// The file is CUE (JSON is valid CUE) and is unified with an embedded
// closed schema, so typos and out-of-range values are rejected with a
// position. Every field has a default; a missing path yields Defaults().
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Config holds file-level settings. Command-line flags override them.
type Config struct {
	LogLevel     string `json:"log_level"`
	LogFormat    string `json:"log_format"`
	Format       string `json:"format"`
	Journal      string `json:"journal"`
	MaxLineBytes int    `json:"max_line_bytes"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	cfg, err := decode(nil, "")
	if err != nil {
		// the embedded schema is static; failure here is a build defect
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}
	return cfg
}

// Load reads and validates the configuration file at path.
// An empty path returns Defaults().
func Load(path string) (Config, error) {
	if path == "" {
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(data, path)
}

// Parse validates configuration source held in memory.
func Parse(data []byte, filename string) (Config, error) {
	return decode(data, filename)
}

func decode(data []byte, filename string) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	src := ctx.CompileString("{}")
	if data != nil {
		src = ctx.CompileBytes(data, cue.Filename(filename))
		if err := src.Err(); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", filename, err)
		}
	}

	v := def.Unify(src)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
