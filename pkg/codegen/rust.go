package codegen

import (
	"fmt"
	"strings"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

var rustKeywords = map[string]bool{
	"abstract": true, "as": true, "async": true, "await": true, "become": true,
	"box": true, "break": true, "const": true, "continue": true, "crate": true,
	"do": true, "dyn": true, "else": true, "enum": true, "extern": true,
	"false": true, "final": true, "fn": true, "for": true, "if": true,
	"impl": true, "in": true, "let": true, "loop": true, "macro": true,
	"match": true, "mod": true, "move": true, "mut": true, "override": true,
	"priv": true, "pub": true, "ref": true, "return": true, "self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true,
	"try": true, "type": true, "typeof": true, "unsafe": true, "unsized": true,
	"use": true, "virtual": true, "where": true, "while": true, "yield": true,
}

// Type names that would shadow what the generated code itself refers to.
var rustReservedTypes = map[string]bool{
	"Self": true, "Option": true, "Vec": true, "String": true,
	"Box": true, "Result": true, "Deserialize": true,
}

// RustRenderer emits serde-deserializable Rust structs. Promoted leaf
// declarations live in a module named after their parent struct.
type RustRenderer struct{}

func (RustRenderer) Name() string { return "rust" }

func (r RustRenderer) Render(f *File) ([]byte, error) {
	typeNames := rustTypeNames(f)

	var sb strings.Builder
	sb.WriteString("use serde::Deserialize;\n")

	for i := 0; i < len(f.Decls); {
		d := f.Decls[i]
		if d.Scope == "" {
			sb.WriteString("\n")
			r.writeStruct(&sb, d, "", typeNames)
			i++
			continue
		}

		scope := d.Scope
		fmt.Fprintf(&sb, "\npub mod %s {\n    use super::*;\n", rustModule(scope))
		for ; i < len(f.Decls) && f.Decls[i].Scope == scope; i++ {
			sb.WriteString("\n")
			r.writeStruct(&sb, f.Decls[i], "    ", typeNames)
		}
		sb.WriteString("}\n")
	}
	return []byte(sb.String()), nil
}

func (r RustRenderer) writeStruct(sb *strings.Builder, d *Decl, indent string, typeNames map[string]string) {
	fmt.Fprintf(sb, "%s#[derive(Debug, Deserialize)]\n", indent)
	fmt.Fprintf(sb, "%spub struct %s {\n", indent, typeNames[declKey(d.Scope, d.Name)])
	inner := indent + "    "

	idents := newNameSet("_")
	if d.Content != nil {
		idents.reserve(rustContentField)
		fmt.Fprintf(sb, "%s#[serde(rename = \"$value\")]\n", inner)
		fmt.Fprintf(sb, "%spub %s: %s,\n", inner, rustContentField, rustType(d.Content, typeNames))
	}
	for _, fd := range d.Fields {
		ident := idents.unique(rustIdent(fd.Ident))
		if ident != fd.Wire {
			fmt.Fprintf(sb, "%s#[serde(rename = %q)]\n", inner, fd.Wire)
		}
		fmt.Fprintf(sb, "%spub %s: %s,\n", inner, ident, rustType(fd, typeNames))
	}
	fmt.Fprintf(sb, "%s}\n", indent)
}

const rustContentField = "content_xml"

func rustIdent(ident string) string {
	if rustKeywords[ident] {
		return ident + "_xml"
	}
	return ident
}

// rustTypeNames resolves declaration names to Rust type names, moving
// reserved names out of the way without colliding with the names already
// taken in the same module.
func rustTypeNames(f *File) map[string]string {
	scopes := make(map[string]*nameSet)
	for _, d := range f.Decls {
		names, ok := scopes[d.Scope]
		if !ok {
			names = newNameSet("")
			scopes[d.Scope] = names
		}
		if !rustReservedTypes[d.Name] {
			names.reserve(d.Name)
		}
	}

	out := make(map[string]string, len(f.Decls))
	for _, d := range f.Decls {
		name := d.Name
		if rustReservedTypes[name] {
			name = scopes[d.Scope].unique(name + "Xml")
		}
		out[declKey(d.Scope, d.Name)] = name
	}
	return out
}

func rustModule(scope string) string {
	return rustIdent(SnakeName(scope))
}

func rustType(f *Field, typeNames map[string]string) string {
	if f.Type.IsNamed() {
		base := typeNames[declKey(f.Type.Named.Scope, f.Type.Named.Name)]
		if f.Type.Named.Scope != "" {
			base = rustModule(f.Type.Named.Scope) + "::" + base
		}
		return rustWrap(base, f)
	}
	if f.Type.Kind.Kind == xmlschema.KindUnset {
		if f.List {
			return "Vec<Option<String>>"
		}
		return "Option<String>"
	}
	return rustWrap(rustPrimitive(f.Type.Kind), f)
}

func rustWrap(base string, f *Field) string {
	switch {
	case f.List:
		return "Vec<" + base + ">"
	case f.Optional:
		return "Option<" + base + ">"
	default:
		return base
	}
}

func rustPrimitive(k xmlschema.ValueKind) string {
	switch k.Kind {
	case xmlschema.KindInteger:
		return "i64"
	case xmlschema.KindFloat:
		return "f64"
	case xmlschema.KindURL:
		return "url::Url"
	case xmlschema.KindTimestamp:
		if k.Timestamp == xmlschema.TimestampNaive {
			return "chrono::NaiveDateTime"
		}
		return "chrono::DateTime<chrono::FixedOffset>"
	default:
		return "String"
	}
}
