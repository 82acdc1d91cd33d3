package codegen

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLRenderer dumps the declaration tree itself, for inspection.
type YAMLRenderer struct{}

func (YAMLRenderer) Name() string { return "yaml" }

func (YAMLRenderer) Render(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("encode declaration tree: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode declaration tree: %w", err)
	}
	return buf.Bytes(), nil
}
