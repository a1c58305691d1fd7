// Package config loads the optional reactive.yaml that tunes the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/reactive/pkg/collections"
)

// FileName is the name of the configuration file looked up in a directory.
const FileName = "reactive.yaml"

// Config represents the optional reactive.yaml configuration.
type Config struct {
	List   ListConfig   `yaml:"list"`
	Output OutputConfig `yaml:"output"`
}

// ListConfig holds defaults for lists built by the CLI.
type ListConfig struct {
	ResetRatio         *float64 `yaml:"reset_ratio,omitempty"`
	ResetFloor         *int     `yaml:"reset_floor,omitempty"`
	RangeNotifications bool     `yaml:"range_notifications,omitempty"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"`
}

// Output formats.
const (
	FormatTranscript = "transcript"
	FormatDump       = "dump"
)

// Resolved contains resolved configuration values.
type Resolved struct {
	Root               string
	ModulePath         string
	ResetRatio         float64
	ResetFloor         int
	RangeNotifications bool
	Format             string
}

// ListOptions returns list options carrying the resolved reset policy.
func (r *Resolved) ListOptions() collections.ListOptions[string] {
	return collections.ListOptions[string]{
		ResetRatio:         r.ResetRatio,
		ResetFloor:         r.ResetFloor,
		RangeNotifications: r.RangeNotifications,
	}
}

// Path resolves a relative path against Root.
func (r *Resolved) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Root, p)
}

// LoadOptional reads reactive.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads reactive.yaml (if present) and fills in defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	r := &Resolved{
		Root:               dir,
		ModulePath:         modulePath(dir),
		ResetRatio:         collections.DefaultResetRatio,
		ResetFloor:         collections.DefaultResetFloor,
		RangeNotifications: cfg.List.RangeNotifications,
		Format:             strings.TrimSpace(cfg.Output.Format),
	}
	if cfg.List.ResetRatio != nil {
		r.ResetRatio = *cfg.List.ResetRatio
	}
	if cfg.List.ResetFloor != nil {
		r.ResetFloor = *cfg.List.ResetFloor
	}
	if r.Format == "" {
		r.Format = FormatTranscript
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Resolved) validate() error {
	switch r.Format {
	case FormatTranscript, FormatDump:
	default:
		return fmt.Errorf("output.format must be %q or %q (got %q)", FormatTranscript, FormatDump, r.Format)
	}
	if r.ResetRatio == 0 {
		return fmt.Errorf("list.reset_ratio must not be 0; use a negative value to disable resets")
	}
	if r.ResetFloor == 0 {
		return fmt.Errorf("list.reset_floor must not be 0; use a negative value for no floor")
	}
	return nil
}

// modulePath returns the module declared by dir/go.mod, or "" when dir is
// not a module root.
func modulePath(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(data)
}
