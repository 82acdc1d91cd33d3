package codegen

import (
	"fmt"
	"sort"
)

// Output format names.
const (
	FormatRust       = "rust"
	FormatGo         = "go"
	FormatJSONSchema = "jsonschema"
	FormatYAML       = "yaml"
)

// RenderOptions carries per-format settings.
type RenderOptions struct {
	// GoPackage is the package clause of Go output.
	GoPackage string
}

var formats = map[string]func(RenderOptions) Renderer{
	FormatRust:       func(RenderOptions) Renderer { return RustRenderer{} },
	FormatGo:         func(o RenderOptions) Renderer { return GoRenderer{Package: o.GoPackage} },
	FormatJSONSchema: func(RenderOptions) Renderer { return JSONSchemaRenderer{} },
	FormatYAML:       func(RenderOptions) Renderer { return YAMLRenderer{} },
}

// Formats lists the supported format names in sorted order.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for name := range formats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns the renderer for a format name.
func Lookup(format string, opts RenderOptions) (Renderer, error) {
	mk, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, format, Formats())
	}
	return mk(opts), nil
}
