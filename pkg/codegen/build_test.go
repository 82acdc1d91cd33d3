package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

func mustBuild(t *testing.T, doc string, opts Options) *File {
	t.Helper()
	root, err := xmlschema.ParseString(doc, opts.Merge)
	require.NoError(t, err)
	return Build(root, opts)
}

func field(t *testing.T, d *Decl, wire string) *Field {
	t.Helper()
	for _, f := range d.Fields {
		if f.Wire == wire {
			return f
		}
	}
	t.Fatalf("decl %s has no field %q", d.Name, wire)
	return nil
}

func TestBuild_RepeatedLeafWithAttributes(t *testing.T) {
	f := mustBuild(t, `<root><item id="1">a</item><item id="2">b</item></root>`, Options{})

	assert.Equal(t, "Root", f.Root)
	require.Len(t, f.Decls, 2)

	root := f.Decls[0]
	assert.Equal(t, "Root", root.Name)
	assert.Nil(t, root.Content)
	require.Len(t, root.Fields, 1)
	item := root.Fields[0]
	assert.Equal(t, RoleItem, item.Role)
	assert.True(t, item.List)
	require.True(t, item.Type.IsNamed())
	assert.Equal(t, Named{Scope: "Root", Name: "ItemElement"}, *item.Type.Named)

	promoted, ok := f.Lookup(*item.Type.Named)
	require.True(t, ok)
	assert.True(t, promoted.Promoted)
	require.NotNil(t, promoted.Content)
	assert.Equal(t, xmlschema.Text, promoted.Content.Type.Kind)
	id := field(t, promoted, "id")
	assert.Equal(t, xmlschema.Integer, id.Type.Kind)
	assert.False(t, id.Optional)
}

func TestBuild_MissingAttributeOptional(t *testing.T) {
	f := mustBuild(t, `<root><item id="1">a</item><item>b</item></root>`, Options{})

	promoted, ok := f.Lookup(Named{Scope: "Root", Name: "ItemElement"})
	require.True(t, ok)
	assert.True(t, field(t, promoted, "id").Optional)
}

func TestBuild_FieldOrder(t *testing.T) {
	f := mustBuild(t, `<book zeta="1" alpha="x">
		<title>Go</title>
		<chapter><page>1</page></chapter>
		<author>A</author>
	</book>`, Options{})

	book := f.Decls[0]
	wires := make([]string, 0, len(book.Fields))
	for _, fd := range book.Fields {
		wires = append(wires, fd.Wire)
	}
	assert.Equal(t, []string{"alpha", "zeta", "author", "chapter", "title"}, wires)
	assert.Equal(t, RoleChildren, field(t, book, "chapter").Role)
}

func TestBuild_StructuralContent(t *testing.T) {
	f := mustBuild(t, `<note><to>x</to>42</note>`, Options{})
	require.NotNil(t, f.Decls[0].Content)
	assert.Equal(t, xmlschema.Integer, f.Decls[0].Content.Type.Kind)
}

func TestBuild_AttributeCollision(t *testing.T) {
	f := mustBuild(t, `<root id="1"><id>2</id><other>x</other></root>`, Options{})

	root := f.Decls[0]
	assert.Equal(t, "id_attr", field(t, root, "id").Ident)
	for _, fd := range root.Fields {
		if fd.Role == RoleItem && fd.Wire == "id" {
			assert.Equal(t, "id", fd.Ident)
		}
	}
}

func TestBuild_ContentIdentReserved(t *testing.T) {
	f := mustBuild(t, `<root content="a">text<content>1</content></root>`, Options{})

	root := f.Decls[0]
	require.NotNil(t, root.Content)
	assert.Equal(t, "content", root.Content.Ident)

	idents := make(map[Role]string)
	for _, fd := range root.Fields {
		idents[fd.Role] = fd.Ident
	}
	assert.Equal(t, map[Role]string{RoleAttr: "content_attr", RoleItem: "content_2"}, idents)
}

func TestBuild_NumericSuffixOnCollision(t *testing.T) {
	f := mustBuild(t, `<root><foo-bar>1</foo-bar><foo_bar>x</foo_bar></root>`, Options{})

	idents := []string{f.Decls[0].Fields[0].Ident, f.Decls[0].Fields[1].Ident}
	assert.ElementsMatch(t, []string{"foo_bar", "foo_bar_2"}, idents)
}

func TestBuild_TopLevelNamesUnique(t *testing.T) {
	f := mustBuild(t, `<item><item><x>1</x></item></item>`, Options{})

	require.Len(t, f.Decls, 2)
	assert.Equal(t, "Item", f.Decls[0].Name)
	assert.Equal(t, "Item2", f.Decls[1].Name)
	assert.Equal(t, Named{Name: "Item2"}, *field(t, f.Decls[0], "item").Type.Named)
}

func TestBuild_SingleChildSlot(t *testing.T) {
	doc := `<root>
		<a><x>1</x></a>
		<b><y>2</y></b>
	</root>`
	f := mustBuild(t, doc, Options{})

	root := f.Decls[0]
	require.Len(t, root.Fields, 1)
	assert.Equal(t, "a", root.Fields[0].Wire)

	a, ok := f.Lookup(*root.Fields[0].Type.Named)
	require.True(t, ok)
	assert.Len(t, a.Fields, 2, "second slot merged into the first")
}

func TestBuild_SplitChildSlots(t *testing.T) {
	doc := `<root>
		<b><y>2</y></b>
		<a><x>1</x></a>
		<b><y>3</y><z>u</z></b>
	</root>`
	f := mustBuild(t, doc, Options{SplitChildSlots: true})

	root := f.Decls[0]
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "a", root.Fields[0].Wire)
	assert.Equal(t, "b", root.Fields[1].Wire)

	b, ok := f.Lookup(Named{Name: "B"})
	require.True(t, ok)
	assert.Len(t, b.Fields, 2)
}

func TestBuild_MergesAtEveryLevel(t *testing.T) {
	doc := `<library>
		<shelf><book><title>A</title></book></shelf>
		<shelf><book><title>B</title><isbn>1</isbn></book></shelf>
	</library>`
	f := mustBuild(t, doc, Options{Merge: xmlschema.MergeOptions{OptionalMissingItems: true}})

	book, ok := f.Lookup(Named{Name: "Book"})
	require.True(t, ok)
	assert.True(t, field(t, book, "isbn").Optional)
	assert.False(t, field(t, book, "title").Optional)
}

func TestBuild_Nil(t *testing.T) {
	f := Build(nil, Options{})
	assert.Empty(t, f.Root)
	assert.Empty(t, f.Decls)
}

func TestFile_Scopes(t *testing.T) {
	f := mustBuild(t, `<root><a k="1">x</a><b k="2">y</b><c><d k="3">z</d></c></root>`, Options{})
	assert.Equal(t, []string{"Root", "C"}, f.Scopes())
}
