// Package types provides the input and output types of the xmltypes MCP
// tools. They are designed for external consumption and carry only plain
// JSON values so the tool output schemas stay accurate.
package types

import (
	"encoding/json"

	"github.com/usestring/xmltypes/pkg/codegen"
)

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ResourceRef points to an MCP resource.
type ResourceRef struct {
	URI  string `json:"uri"`
	MIME string `json:"mime"`
	Hint string `json:"hint,omitempty"`
}

// DeclSummary is a compact view of one generated declaration.
type DeclSummary struct {
	Name     string         `json:"name"`
	Scope    string         `json:"scope,omitempty"`
	Wire     string         `json:"wire"`
	Promoted bool           `json:"promoted,omitempty"`
	Fields   []FieldSummary `json:"fields,omitempty"`
}

// FieldSummary describes one member of a declaration.
type FieldSummary struct {
	Wire     string `json:"wire"`
	Ident    string `json:"ident"`
	Role     string `json:"role"` // content, attr, item, children
	Type     string `json:"type"`
	Optional bool   `json:"optional,omitempty"`
	List     bool   `json:"list,omitempty"`
}

// Summarize flattens a declaration file into summaries, in emission order.
func Summarize(f *codegen.File) []DeclSummary {
	if f == nil {
		return nil
	}
	out := make([]DeclSummary, 0, len(f.Decls))
	for _, d := range f.Decls {
		s := DeclSummary{
			Name:     d.Name,
			Scope:    d.Scope,
			Wire:     d.Wire,
			Promoted: d.Promoted,
		}
		if d.Content != nil {
			s.Fields = append(s.Fields, summarizeField(d.Content))
		}
		for _, fd := range d.Fields {
			s.Fields = append(s.Fields, summarizeField(fd))
		}
		out = append(out, s)
	}
	return out
}

func summarizeField(fd *codegen.Field) FieldSummary {
	return FieldSummary{
		Wire:     fd.Wire,
		Ident:    fd.Ident,
		Role:     fd.Role.String(),
		Type:     fd.Type.String(),
		Optional: fd.Optional,
		List:     fd.List,
	}
}
