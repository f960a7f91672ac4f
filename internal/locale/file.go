package locale

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML table definition from path.
func LoadFile(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %q: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML table definition.
func Parse(raw []byte) (*Tables, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("failed to parse locale table: %w", err)
	}
	return New(def)
}
