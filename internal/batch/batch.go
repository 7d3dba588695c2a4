// Package batch loads YAML edit scripts and turns them into write
// batches for the mutator.
package batch

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"beanpath/mutate"
	"beanpath/path"
)

var ErrEmptyScript = errors.New("script has no rules")

// Script is one YAML edit script: an ordered list of path-addressed
// assignments to apply against a graph.
type Script struct {
	Version string `yaml:"version,omitempty"`
	Set     []Rule `yaml:"set"`
}

// Rule assigns a value to the object at a path.
type Rule struct {
	Path  string `yaml:"path"`
	Value any    `yaml:"value"`
}

// LoadFile loads and parses a YAML edit script from the given path.
func LoadFile(file string) (*Script, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", file, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Script and validates every rule path.
func Parse(data []byte) (*Script, error) {
	var s Script

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}

	if s.Version == "" {
		s.Version = "1"
	}
	if len(s.Set) == 0 {
		return nil, ErrEmptyScript
	}

	for i, r := range s.Set {
		if _, err := path.Parse(r.Path); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}

	return &s, nil
}

// Writes converts the script rules into a mutator batch.
func (s *Script) Writes() ([]mutate.Write, error) {
	writes := make([]mutate.Write, 0, len(s.Set))

	for i, r := range s.Set {
		p, err := path.Parse(r.Path)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		writes = append(writes, mutate.Write{Path: p, Value: r.Value})
	}

	return writes, nil
}

// Apply runs the script against the root graph.
func (s *Script) Apply(root any) error {
	writes, err := s.Writes()
	if err != nil {
		return err
	}
	return mutate.Apply(root, writes)
}

// Marshal serializes a Script to YAML.
func Marshal(s *Script) ([]byte, error) {
	return yaml.Marshal(s)
}
