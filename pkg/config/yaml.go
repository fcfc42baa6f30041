package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation used for every YAML document mdfoot writes.
const yamlIndent = 2

// YAMLIndent returns the indentation used for YAML output.
func YAMLIndent() int {
	return yamlIndent
}

// ToYAML encodes the persisted fields of c.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeYAML decodes data on top of a copy of base, so keys missing from
// data keep the value from base. A nil base starts from the zero Config.
// JSON documents are accepted. Unknown keys are an error.
func DecodeYAML(data []byte, base *Config) (*Config, error) {
	cfg := base.Clone()
	if cfg == nil {
		cfg = &Config{}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Ignore = slices.Clone(c.Ignore)
	return &clone
}
