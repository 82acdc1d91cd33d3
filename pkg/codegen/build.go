package codegen

import (
	"log/slog"
	"sort"

	"github.com/samber/lo"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

// Options controls how the declaration tree is derived.
type Options struct {
	Merge xmlschema.MergeOptions
	// SplitChildSlots emits one list per distinct child element name instead
	// of merging every structural child into a single representative slot
	// named after the first one.
	SplitChildSlots bool
}

const contentIdent = "content"

type builder struct {
	opts     Options
	file     *File
	topNames *nameSet
}

// Build derives the declaration tree for root. Structural children are merged
// while descending, so repeated siblings at every level collapse into one
// declaration.
func Build(root *xmlschema.Element, opts Options) *File {
	b := &builder{
		opts:     opts,
		file:     &File{},
		topNames: newNameSet(""),
	}
	if root == nil {
		return b.file
	}
	b.file.Root = b.element(root)

	slog.Debug("built declaration tree",
		slog.String("root", b.file.Root),
		slog.Int("decls", len(b.file.Decls)),
	)
	return b.file
}

// element emits the declaration for el and everything below it and returns
// the resolved declaration name.
func (b *builder) element(el *xmlschema.Element) string {
	decl := &Decl{
		Name: b.topNames.unique(PascalName(el.Name)),
		Wire: el.Name,
	}
	b.file.Decls = append(b.file.Decls, decl)

	if !el.Value.Absent() {
		decl.Content = &Field{
			Ident:    contentIdent,
			Role:     RoleContent,
			Type:     TypeRef{Kind: el.Value.ValueKind},
			Optional: el.Value.Optional,
		}
	}

	attrs := attributeFields(el.Attributes)

	scopeNames := newNameSet("")
	var members []*Field
	var promoted []*Decl
	for _, it := range el.Items {
		f := &Field{
			Wire: it.Name,
			Role: RoleItem,
			List: it.Repeated,
		}
		if !f.List {
			f.Optional = it.Value.Optional
		}
		if len(it.Attributes) == 0 {
			f.Type = TypeRef{Kind: it.Value.ValueKind}
		} else {
			pd := promotedDecl(decl.Name, scopeNames.unique(PascalName(it.Name)+"Element"), it)
			promoted = append(promoted, pd)
			f.Type = pd.Ref()
		}
		members = append(members, f)
	}
	b.file.Decls = append(b.file.Decls, promoted...)

	for _, slot := range b.childSlots(el.Elements) {
		name := b.element(slot)
		members = append(members, &Field{
			Wire: slot.Name,
			Role: RoleChildren,
			Type: TypeRef{Named: &Named{Name: name}},
			List: true,
		})
	}

	sort.SliceStable(members, func(i, j int) bool { return members[i].Wire < members[j].Wire })
	decl.Fields = append(attrs, members...)
	assignIdents(decl.Content, decl.Fields)
	return decl.Name
}

// promotedDecl builds the declaration of a leaf item that carries
// attributes: its text becomes the content field.
func promotedDecl(scope, name string, it xmlschema.LeafItem) *Decl {
	d := &Decl{
		Name:     name,
		Wire:     it.Name,
		Scope:    scope,
		Promoted: true,
		Content: &Field{
			Ident: contentIdent,
			Role:  RoleContent,
			Type:  TypeRef{Kind: it.Value.ValueKind},
		},
		Fields: attributeFields(it.Attributes),
	}
	assignIdents(d.Content, d.Fields)
	return d
}

func attributeFields(attrs xmlschema.Attributes) []*Field {
	keys := attrs.SortedKeys()
	if len(keys) == 0 {
		return nil
	}
	return lo.Map(keys, func(k string, _ int) *Field {
		v := attrs[k]
		return &Field{
			Wire:     k,
			Role:     RoleAttr,
			Type:     TypeRef{Kind: v.ValueKind},
			Optional: v.Optional,
		}
	})
}

// childSlots merges structural children into the representatives that get
// a declaration each.
func (b *builder) childSlots(children []*xmlschema.Element) []*xmlschema.Element {
	if len(children) == 0 {
		return nil
	}
	if !b.opts.SplitChildSlots {
		return []*xmlschema.Element{xmlschema.MergeElements(children, b.opts.Merge)}
	}

	groups := lo.GroupBy(children, func(el *xmlschema.Element) string { return el.Name })
	names := lo.Keys(groups)
	sort.Strings(names)
	return lo.Map(names, func(name string, _ int) *xmlschema.Element {
		return xmlschema.MergeElements(groups[name], b.opts.Merge)
	})
}

// assignIdents gives every field a snake_case identifier unique within the
// declaration. Items and child lists keep their natural identifier; a
// colliding attribute takes an "attr" suffix, and anything still colliding
// gets a numeric suffix. The content identifier, when present, is reserved
// first.
func assignIdents(content *Field, fields []*Field) {
	taken := make(map[string]bool)
	for _, f := range fields {
		if f.Role != RoleAttr {
			taken[SnakeName(f.Wire)] = true
		}
	}

	names := newNameSet("_")
	if content != nil {
		taken[content.Ident] = true
		names.reserve(content.Ident)
	}
	for _, f := range fields {
		ident := SnakeName(f.Wire)
		if f.Role == RoleAttr && taken[ident] {
			ident += "_attr"
		}
		f.Ident = names.unique(ident)
	}
}
