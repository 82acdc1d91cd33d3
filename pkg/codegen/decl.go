// Package codegen turns an inferred element tree into a language-neutral
// declaration tree and renders it as source code or schema documents.
package codegen

import (
	"errors"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

// Role says where a field's value lives in the document.
type Role int

const (
	// RoleContent is the element's own text.
	RoleContent Role = iota + 1
	RoleAttr
	// RoleItem is a nested leaf element.
	RoleItem
	// RoleChildren is a list of nested structural elements.
	RoleChildren
)

var roleNames = map[Role]string{
	RoleContent:  "content",
	RoleAttr:     "attr",
	RoleItem:     "item",
	RoleChildren: "children",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the role by name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Named references another declaration. Scope is empty for top-level
// declarations.
type Named struct {
	Scope string `json:"scope,omitempty" yaml:"scope,omitempty"`
	Name  string `json:"name" yaml:"name"`
}

func (n Named) String() string {
	if n.Scope == "" {
		return n.Name
	}
	return n.Scope + "." + n.Name
}

// TypeRef is either a primitive kind or a reference to a declaration.
type TypeRef struct {
	Kind  xmlschema.ValueKind `json:"kind" yaml:"kind"`
	Named *Named              `json:"named,omitempty" yaml:"named,omitempty"`
}

// IsNamed reports whether t references a declaration.
func (t TypeRef) IsNamed() bool { return t.Named != nil }

func (t TypeRef) String() string {
	if t.Named != nil {
		return t.Named.String()
	}
	return t.Kind.String()
}

// MarshalYAML keeps the inspection dump compact.
func (t TypeRef) MarshalYAML() (any, error) {
	return t.String(), nil
}

// Field is one member of a declaration.
type Field struct {
	// Wire is the XML name (empty for content).
	Wire string `json:"wire" yaml:"wire"`
	// Ident is the snake_case identifier, unique within the declaration.
	Ident    string  `json:"ident" yaml:"ident"`
	Role     Role    `json:"role" yaml:"role"`
	Type     TypeRef `json:"type" yaml:"type"`
	Optional bool    `json:"optional,omitempty" yaml:"optional,omitempty"`
	List     bool    `json:"list,omitempty" yaml:"list,omitempty"`
}

// Decl is one type declaration.
type Decl struct {
	// Name is the PascalCase type name, unique within Scope.
	Name string `json:"name" yaml:"name"`
	// Wire is the XML element name the declaration was built from.
	Wire string `json:"wire" yaml:"wire"`
	// Scope is the name of the declaration a promoted leaf belongs to.
	Scope    string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Content  *Field   `json:"content,omitempty" yaml:"content,omitempty"`
	Fields   []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
	Promoted bool     `json:"promoted,omitempty" yaml:"promoted,omitempty"`
}

// Ref returns a reference to d.
func (d *Decl) Ref() TypeRef {
	return TypeRef{Named: &Named{Scope: d.Scope, Name: d.Name}}
}

// File is a complete declaration tree in emission order: every structural
// declaration is followed by its promoted leaf declarations and then by the
// declarations of its children.
type File struct {
	Root  string  `json:"root" yaml:"root"`
	Decls []*Decl `json:"decls" yaml:"decls"`
}

// Lookup returns the declaration referenced by n.
func (f *File) Lookup(n Named) (*Decl, bool) {
	for _, d := range f.Decls {
		if d.Scope == n.Scope && d.Name == n.Name {
			return d, true
		}
	}
	return nil, false
}

// Scopes returns the distinct non-empty scopes in emission order.
func (f *File) Scopes() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range f.Decls {
		if d.Scope != "" && !seen[d.Scope] {
			seen[d.Scope] = true
			out = append(out, d.Scope)
		}
	}
	return out
}

// Renderer emits a declaration tree in one output format.
type Renderer interface {
	Name() string
	Render(f *File) ([]byte, error)
}

// ErrUnknownFormat is returned by Lookup for an unregistered format name.
var ErrUnknownFormat = errors.New("unknown output format")
