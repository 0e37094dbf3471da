// Package config resolves fidgo settings from defaults, an optional YAML
// file and FIDGO_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/chazu/fidgo/pkg/engine"
	"github.com/chazu/fidgo/pkg/kernel"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultDepth  = 6
	DefaultStore  = "fidgo.db"
	DefaultOutDir = "."
)

// Config holds the settings shared by the CLI commands.
type Config struct {
	// Depth is the meshing octree depth; the grid has 2^Depth cells per side.
	Depth int `yaml:"depth" env:"FIDGO_DEPTH"`
	// Store is the path of the SQLite shape library.
	Store string `yaml:"store" env:"FIDGO_STORE"`
	// OutDir is where rendered STL files are written.
	OutDir string `yaml:"out_dir" env:"FIDGO_OUT_DIR"`
	// EvalTimeout bounds a single script evaluation.
	EvalTimeout time.Duration `yaml:"eval_timeout" env:"FIDGO_EVAL_TIMEOUT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Depth:       DefaultDepth,
		Store:       DefaultStore,
		OutDir:      DefaultOutDir,
		EvalTimeout: engine.EvalTimeout,
	}
}

// Load starts from Default, overlays the YAML file at path when path is
// non-empty, then applies environment overrides. A missing file is an
// error only when path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	var errs []error
	if c.Depth < 1 || c.Depth > kernel.MaxDepth {
		errs = append(errs, fmt.Errorf("depth %d outside [1, %d]", c.Depth, kernel.MaxDepth))
	}
	if c.Store == "" {
		errs = append(errs, errors.New("store path is empty"))
	}
	if c.EvalTimeout <= 0 {
		errs = append(errs, fmt.Errorf("eval timeout %s must be positive", c.EvalTimeout))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
