// Package scenario reads the YAML files the reactive CLI replays.
//
// A scenario describes a source list, an optional projection of it and a
// sequence of steps applied to the source:
//
//	version: v1
//	source: [A, B, C]
//	projection:
//	  exclude: [B]
//	  order: asc
//	steps:
//	  - add: D
//	  - remove_at: 0
//	  - move: {from: 0, to: 2}
//	  - resync: true
package scenario

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the only major file version this package reads.
const SupportedMajor = "v1"

// Scenario is a replayable sequence of list operations.
type Scenario struct {
	Version    string      `yaml:"version"`
	Name       string      `yaml:"name,omitempty"`
	Source     []string    `yaml:"source"`
	Projection *Projection `yaml:"projection,omitempty"`
	Steps      []Step      `yaml:"steps"`
}

// Projection describes a projection of the source.
type Projection struct {
	// Select is "identity" (default), "upper", "lower" or "length".
	Select string `yaml:"select,omitempty"`
	// Exclude drops these items.
	Exclude []string `yaml:"exclude,omitempty"`
	// Prefix keeps only items starting with it.
	Prefix string `yaml:"prefix,omitempty"`
	// Order is "none" (default), "asc" or "desc".
	Order string `yaml:"order,omitempty"`
}

// Step is one operation. Exactly one field must be set.
type Step struct {
	Add         *string  `yaml:"add,omitempty"`
	AddRange    []string `yaml:"add_range,omitempty"`
	Insert      *Item    `yaml:"insert,omitempty"`
	InsertRange *Items   `yaml:"insert_range,omitempty"`
	RemoveAt    *int     `yaml:"remove_at,omitempty"`
	Remove      *string  `yaml:"remove,omitempty"`
	RemoveRange *Range   `yaml:"remove_range,omitempty"`
	Set         *Item    `yaml:"set,omitempty"`
	Move        *Move    `yaml:"move,omitempty"`
	Clear       bool     `yaml:"clear,omitempty"`
	Sort        bool     `yaml:"sort,omitempty"`
	Reset       bool     `yaml:"reset,omitempty"`
	Resync      bool     `yaml:"resync,omitempty"`
	Suppress    []Step   `yaml:"suppress,omitempty"`
}

// Item is an item at an index.
type Item struct {
	Index int    `yaml:"index"`
	Item  string `yaml:"item"`
}

// Items are items starting at an index.
type Items struct {
	Index int      `yaml:"index"`
	Items []string `yaml:"items"`
}

// Range is count items starting at an index.
type Range struct {
	Index int `yaml:"index"`
	Count int `yaml:"count"`
}

// Move moves the item at From so it ends up at To.
type Move struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Kind returns the name of the operation the step performs.
func (s Step) Kind() (string, error) {
	var kinds []string
	add := func(set bool, name string) {
		if set {
			kinds = append(kinds, name)
		}
	}
	add(s.Add != nil, "add")
	add(s.AddRange != nil, "add_range")
	add(s.Insert != nil, "insert")
	add(s.InsertRange != nil, "insert_range")
	add(s.RemoveAt != nil, "remove_at")
	add(s.Remove != nil, "remove")
	add(s.RemoveRange != nil, "remove_range")
	add(s.Set != nil, "set")
	add(s.Move != nil, "move")
	add(s.Clear, "clear")
	add(s.Sort, "sort")
	add(s.Reset, "reset")
	add(s.Resync, "resync")
	add(s.Suppress != nil, "suppress")

	switch len(kinds) {
	case 0:
		return "", fmt.Errorf("step has no operation")
	case 1:
		return kinds[0], nil
	default:
		return "", fmt.Errorf("step has several operations: %s", strings.Join(kinds, ", "))
	}
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the version, the projection settings and every step.
func (s *Scenario) Validate() error {
	if err := checkVersion(s.Version); err != nil {
		return err
	}
	if p := s.Projection; p != nil {
		switch p.Select {
		case "", "identity", "upper", "lower", "length":
		default:
			return fmt.Errorf("projection.select: unknown selector %q", p.Select)
		}
		switch p.Order {
		case "", "none", "asc", "desc":
		default:
			return fmt.Errorf("projection.order: unknown order %q", p.Order)
		}
	}
	return validateSteps(s.Steps, "steps")
}

func validateSteps(steps []Step, path string) error {
	for i, step := range steps {
		kind, err := step.Kind()
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		if kind == "suppress" {
			if err := validateSteps(step.Suppress, fmt.Sprintf("%s[%d].suppress", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("missing version (want %s)", SupportedMajor)
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("version %q is not a valid semantic version", v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("unsupported version %s (want %s)", v, SupportedMajor)
	}
	return nil
}
