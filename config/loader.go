package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedKind is the only document kind the loader accepts.
const SupportedKind = "Flow"

// Loader handles loading and initial parsing of a FlowConfig from a file.
type Loader struct {
	filePath string
}

// NewLoader creates a new configuration loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads the flow file, unmarshals it into FlowConfig, and performs
// structural validation. Defaulting is handled separately by ApplyDefaults.
func (l *Loader) Load() (*FlowConfig, error) {
	if l.filePath == "" {
		return nil, fmt.Errorf("configuration file path is empty")
	}
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read flow file '%s': %w", l.filePath, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("flow file '%s' is empty", l.filePath)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("invalid flow file '%s': %w", l.filePath, err)
	}
	return cfg, nil
}

// Parse unmarshals and validates a FlowConfig from raw YAML.
func Parse(content []byte) (*FlowConfig, error) {
	var cfg FlowConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flow YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the document envelope and the step declarations.
func (c *FlowConfig) Validate() error {
	if c.APIVersion == "" {
		return fmt.Errorf("flow validation failed: apiVersion is a required field")
	}
	if c.Kind != SupportedKind {
		return fmt.Errorf("flow validation failed: kind must be '%s', got '%s'", SupportedKind, c.Kind)
	}
	if c.Metadata.Name == "" {
		return fmt.Errorf("flow validation failed: metadata.name is a required field")
	}
	if c.Spec == nil || len(c.Spec.Steps) == 0 {
		return fmt.Errorf("flow validation failed: spec.steps must declare at least one step")
	}

	seen := make(map[string]bool, len(c.Spec.Steps))
	for i, s := range c.Spec.Steps {
		if s.Name == "" {
			return fmt.Errorf("flow validation failed: spec.steps[%d] has no name", i)
		}
		if seen[s.Name] {
			return fmt.Errorf("flow validation failed: duplicate step name '%s'", s.Name)
		}
		seen[s.Name] = true
		if s.Extends != "" && !seen[s.Extends] {
			return fmt.Errorf("flow validation failed: step '%s' extends unknown step '%s' (must be declared earlier in the flow)", s.Name, s.Extends)
		}
	}
	return nil
}
