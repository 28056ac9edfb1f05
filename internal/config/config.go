// Package config loads engine settings from an optional .bigo.kdl file.
// Every field has a working default; a missing config file is the
// normal case, not an error.
package config

import (
	"fmt"
	"path/filepath"

	bigoerrors "github.com/standardbeagle/bigo/internal/errors"
)

// ConfigFileName is looked up in the working directory.
const ConfigFileName = ".bigo.kdl"

// Config is the full engine configuration.
type Config struct {
	Models Models
	Engine Engine
	Debug  Debug
}

// Models controls the ensemble artifact registry.
type Models struct {
	// Dir is the artifact directory; empty means use the compiled-in
	// default set.
	Dir string
	// UseDefaults keeps the compiled-in set when Dir is empty. Setting
	// it false with no Dir yields an empty registry, so every request
	// runs heuristic-only.
	UseDefaults bool
	// Watch reloads the registry when artifacts change on disk.
	Watch bool
	// WatchDebounceMs coalesces bursts of file events into one reload.
	WatchDebounceMs int
	// Parallelism bounds concurrent model evaluations per request;
	// zero means one goroutine per model.
	Parallelism int
}

// Engine bounds a single analysis request.
type Engine struct {
	// MaxCodeBytes rejects oversized submissions before parsing.
	MaxCodeBytes int
}

// Debug controls file-based debug logging.
type Debug struct {
	Enabled bool
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Models: Models{
			UseDefaults:     true,
			Watch:           false,
			WatchDebounceMs: 500,
			Parallelism:     4,
		},
		Engine: Engine{
			MaxCodeBytes: 1 << 20,
		},
	}
}

// Validate checks ranges and resolves the models dir to an absolute
// path so the watcher and loader agree on it.
func (c *Config) Validate() error {
	if c.Models.WatchDebounceMs < 0 {
		return bigoerrors.NewConfigError("models.watch_debounce_ms",
			fmt.Sprintf("%d", c.Models.WatchDebounceMs), fmt.Errorf("must be >= 0"))
	}
	if c.Models.Parallelism < 0 {
		return bigoerrors.NewConfigError("models.parallelism",
			fmt.Sprintf("%d", c.Models.Parallelism), fmt.Errorf("must be >= 0"))
	}
	if c.Engine.MaxCodeBytes <= 0 {
		return bigoerrors.NewConfigError("engine.max_code_bytes",
			fmt.Sprintf("%d", c.Engine.MaxCodeBytes), fmt.Errorf("must be > 0"))
	}
	if c.Models.Dir != "" {
		abs, err := filepath.Abs(c.Models.Dir)
		if err != nil {
			return bigoerrors.NewConfigError("models.dir", c.Models.Dir, err)
		}
		c.Models.Dir = abs
	}
	return nil
}
