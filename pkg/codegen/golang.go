package codegen

import (
	"fmt"
	"go/format"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

// DefaultGoPackage is the package clause used when GoRenderer.Package is empty.
const DefaultGoPackage = "model"

var goInitialisms = map[string]bool{
	"ACL": true, "API": true, "ASCII": true, "CPU": true, "CSS": true,
	"DNS": true, "EOF": true, "GUID": true, "HTML": true, "HTTP": true,
	"HTTPS": true, "ID": true, "IP": true, "JSON": true, "QPS": true,
	"RAM": true, "RPC": true, "SLA": true, "SMTP": true, "SQL": true,
	"SSH": true, "TCP": true, "TLS": true, "TTL": true, "UDP": true,
	"UI": true, "UID": true, "UUID": true, "URI": true, "URL": true,
	"UTF8": true, "VM": true, "XML": true, "XMPP": true, "XSRF": true,
	"XSS": true,
}

// Field names the generated structs already use for their own purposes.
var goReservedFields = map[string]bool{
	"XMLName": true,
	"Content": true,
}

// GoRenderer emits gofmt'ed Go structs with encoding/xml tags. Promoted leaf
// types are prefixed with their parent type name.
type GoRenderer struct {
	Package string
}

func (GoRenderer) Name() string { return "go" }

func (r GoRenderer) Render(f *File) ([]byte, error) {
	pkg := r.Package
	if pkg == "" {
		pkg = DefaultGoPackage
	}

	typeNames := goTypeNames(f)
	usesTime := false
	for _, d := range f.Decls {
		for _, fd := range allFields(d) {
			if goIsTime(fd) {
				usesTime = true
			}
		}
	}

	var imports []string
	if f.Root != "" {
		imports = append(imports, "encoding/xml")
	}
	if usesTime {
		imports = append(imports, "time")
	}

	var sb strings.Builder
	sb.WriteString("// Code generated by xmltypes. DO NOT EDIT.\n\n")
	fmt.Fprintf(&sb, "package %s\n\n", pkg)
	if len(imports) > 0 {
		sb.WriteString("import (\n")
		for _, imp := range imports {
			fmt.Fprintf(&sb, "\t%q\n", imp)
		}
		sb.WriteString(")\n\n")
	}

	for _, d := range f.Decls {
		r.writeStruct(&sb, f, d, typeNames)
	}

	out, err := format.Source([]byte(sb.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated go source: %w", err)
	}
	return out, nil
}

func (r GoRenderer) writeStruct(sb *strings.Builder, f *File, d *Decl, typeNames map[string]string) {
	name := typeNames[declKey(d.Scope, d.Name)]
	fmt.Fprintf(sb, "type %s struct {\n", name)

	if d.Scope == "" && d.Name == f.Root {
		fmt.Fprintf(sb, "XMLName xml.Name `xml:%q`\n", d.Wire)
	}
	if d.Content != nil {
		fmt.Fprintf(sb, "Content %s `xml:\",chardata\"`\n", goType(d.Content, typeNames))
	}

	idents := newNameSet("")
	for _, fd := range d.Fields {
		ident := GoName(Words(fd.Ident))
		if goReservedFields[ident] {
			ident += "XML"
		}
		ident = idents.unique(ident)
		fmt.Fprintf(sb, "%s %s `xml:%q`\n", ident, goType(fd, typeNames), goTag(fd))
	}
	sb.WriteString("}\n\n")
}

// goTypeNames flattens scoped declarations into unique top-level Go names.
func goTypeNames(f *File) map[string]string {
	names := newNameSet("")
	out := make(map[string]string, len(f.Decls))
	for _, d := range f.Decls {
		base := GoName(Words(d.Name))
		if d.Scope != "" {
			base = GoName(Words(d.Scope)) + base
		}
		out[declKey(d.Scope, d.Name)] = names.unique(base)
	}
	return out
}

func declKey(scope, name string) string {
	return scope + "." + name
}

func allFields(d *Decl) []*Field {
	if d.Content == nil {
		return d.Fields
	}
	return append([]*Field{d.Content}, d.Fields...)
}

// GoName joins words as an exported Go identifier, upper-casing common
// initialisms ("user", "id" -> "UserID").
func GoName(words []string) string {
	upper := cases.Upper(language.Und)
	title := cases.Title(language.Und)
	var sb strings.Builder
	for _, w := range words {
		u := upper.String(w)
		if goInitialisms[u] {
			sb.WriteString(u)
			continue
		}
		sb.WriteString(title.String(w))
	}
	return sb.String()
}

func goTag(f *Field) string {
	wire := f.Wire
	if i := strings.LastIndexByte(wire, ':'); i >= 0 {
		wire = wire[i+1:]
	}
	if f.Role == RoleAttr {
		if f.Optional || f.Type.Kind.Kind == xmlschema.KindUnset {
			return wire + ",attr,omitempty"
		}
		return wire + ",attr"
	}
	return wire
}

func goIsTime(f *Field) bool {
	return !f.Type.IsNamed() && f.Type.Kind.Kind == xmlschema.KindTimestamp &&
		f.Type.Kind.Timestamp == xmlschema.TimestampRFC3339
}

func goType(f *Field, typeNames map[string]string) string {
	var base string
	optional := f.Optional
	switch {
	case f.Type.IsNamed():
		base = typeNames[declKey(f.Type.Named.Scope, f.Type.Named.Name)]
	case f.Type.Kind.Kind == xmlschema.KindUnset:
		base = "string"
		optional = true
	default:
		base = goPrimitive(f.Type.Kind)
	}
	switch {
	case f.List:
		return "[]" + base
	case optional:
		return "*" + base
	default:
		return base
	}
}

func goPrimitive(k xmlschema.ValueKind) string {
	switch k.Kind {
	case xmlschema.KindInteger:
		return "int64"
	case xmlschema.KindFloat:
		return "float64"
	case xmlschema.KindTimestamp:
		if k.Timestamp == xmlschema.TimestampRFC3339 {
			return "time.Time"
		}
		return "string"
	default:
		return "string"
	}
}
