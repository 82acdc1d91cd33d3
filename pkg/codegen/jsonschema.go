package codegen

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

// Property names used for the parts of an element that have no XML name of
// their own.
const (
	AttrPrefix   = "@"
	TextProperty = "#text"
)

const naiveTimestampPattern = `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`

// JSONSchemaRenderer emits a Draft 2020-12 JSON Schema describing the JSON
// form of a document: attributes become "@name" properties, element text
// "#text", and every declaration a $defs entry.
type JSONSchemaRenderer struct{}

func (JSONSchemaRenderer) Name() string { return "jsonschema" }

func (r JSONSchemaRenderer) Render(f *File) ([]byte, error) {
	doc := r.Schema(f)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal json schema: %w", err)
	}
	return append(out, '\n'), nil
}

// Schema builds the schema document for f.
func (JSONSchemaRenderer) Schema(f *File) *jsonschema.Schema {
	doc := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Definitions: make(jsonschema.Definitions, len(f.Decls)),
	}
	if f.Root != "" {
		doc.Ref = defRef(Named{Name: f.Root})
	}

	for _, d := range f.Decls {
		obj := &jsonschema.Schema{
			Type:                 "object",
			Title:                d.Wire,
			Properties:           jsonschema.NewProperties(),
			AdditionalProperties: jsonschema.FalseSchema,
		}
		var order []string
		required := make(map[string]bool)
		for _, fd := range allFields(d) {
			name := propertyName(fd)
			need := !fd.Optional && !fd.List && !isUnset(fd)
			if prev, ok := obj.Properties.Get(name); ok {
				// a leaf item and a child list can share a wire name
				obj.Properties.Set(name, anyOf(prev, fieldSchema(fd)))
				required[name] = required[name] && need
				continue
			}
			obj.Properties.Set(name, fieldSchema(fd))
			required[name] = need
			order = append(order, name)
		}
		for _, name := range order {
			if required[name] {
				obj.Required = append(obj.Required, name)
			}
		}
		doc.Definitions[defName(Named{Scope: d.Scope, Name: d.Name})] = obj
	}
	return doc
}

func anyOf(prev, next *jsonschema.Schema) *jsonschema.Schema {
	if prev.AnyOf != nil && prev.Type == "" && prev.Ref == "" {
		prev.AnyOf = append(prev.AnyOf, next)
		return prev
	}
	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{prev, next}}
}

func isUnset(f *Field) bool {
	return !f.Type.IsNamed() && f.Type.Kind.Kind == xmlschema.KindUnset
}

func propertyName(f *Field) string {
	switch f.Role {
	case RoleContent:
		return TextProperty
	case RoleAttr:
		return AttrPrefix + f.Wire
	default:
		return f.Wire
	}
}

func defName(n Named) string {
	return n.String()
}

func defRef(n Named) string {
	return "#/$defs/" + defName(n)
}

func fieldSchema(f *Field) *jsonschema.Schema {
	var s *jsonschema.Schema
	if f.Type.IsNamed() {
		s = &jsonschema.Schema{Ref: defRef(*f.Type.Named)}
	} else {
		s = primitiveSchema(f.Type.Kind)
	}
	if f.List {
		return &jsonschema.Schema{Type: "array", Items: s}
	}
	return s
}

func primitiveSchema(k xmlschema.ValueKind) *jsonschema.Schema {
	switch k.Kind {
	case xmlschema.KindInteger:
		return &jsonschema.Schema{Type: "integer"}
	case xmlschema.KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case xmlschema.KindURL:
		return &jsonschema.Schema{Type: "string", Format: "uri"}
	case xmlschema.KindTimestamp:
		switch k.Timestamp {
		case xmlschema.TimestampRFC3339:
			return &jsonschema.Schema{Type: "string", Format: "date-time"}
		case xmlschema.TimestampNaive:
			return &jsonschema.Schema{Type: "string", Pattern: naiveTimestampPattern}
		}
		return &jsonschema.Schema{Type: "string"}
	default:
		return &jsonschema.Schema{Type: "string"}
	}
}
