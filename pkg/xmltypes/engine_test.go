package xmltypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/xmlschema"
)

func TestParse_EndToEnd(t *testing.T) {
	code, err := Parse(`<root><item id="1">a</item><item id="2">b</item></root>`)
	require.NoError(t, err)

	assert.Contains(t, code, "pub struct Root {\n    pub item: Vec<root::ItemElement>,\n}")
	assert.Contains(t, code, "pub mod root {")
	assert.Contains(t, code, "pub id: i64,")
}

func TestParse_DroppedAttributeOptional(t *testing.T) {
	code, err := Parse(`<root><item id="1">a</item><item>b</item></root>`)
	require.NoError(t, err)
	assert.Contains(t, code, "pub id: Option<i64>,")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(`<a><b></a>`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlschema.ErrMismatchedTag))

	var pe *xmlschema.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, []string{"a", "b"}, pe.Path)
}

func TestEngine_Formats(t *testing.T) {
	engine := NewEngine()
	doc := []byte(`<catalog><book id="1"><title>Go</title></book></catalog>`)

	for _, format := range codegen.Formats() {
		t.Run(format, func(t *testing.T) {
			res, err := engine.Generate(doc, Options{Format: format})
			require.NoError(t, err)
			assert.Equal(t, format, res.Format)
			assert.Equal(t, "Catalog", res.RootType)
			assert.Equal(t, 1, res.Samples)
			assert.NotEmpty(t, res.Code)
			require.NotNil(t, res.Declarations)
			assert.Len(t, res.Declarations.Decls, 2)
		})
	}
}

func TestEngine_UnknownFormat(t *testing.T) {
	_, err := NewEngine().Generate([]byte(`<a/>`), Options{Format: "cobol"})
	assert.True(t, errors.Is(err, codegen.ErrUnknownFormat))
}

func TestEngine_NotXML(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Generate([]byte(`{"a": 1}`), Options{})
	assert.True(t, errors.Is(err, ErrNotXML))

	_, err = engine.Generate([]byte(`<!DOCTYPE html><html><body/></html>`), Options{})
	assert.True(t, errors.Is(err, ErrNotXML))

	_, err = engine.GenerateSamples(nil, Options{})
	assert.True(t, errors.Is(err, ErrNoSamples))
}

func TestEngine_GenerateSamples(t *testing.T) {
	bodies := [][]byte{
		[]byte(`<order id="1"><total>10</total><note>x</note></order>`),
		[]byte(`<order><total>12</total></order>`),
	}

	res, err := NewEngine().GenerateSamples(bodies, Options{
		Format: codegen.FormatGo,
		Merge:  xmlschema.MergeOptions{OptionalMissingItems: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Samples)
	assert.Regexp(t, `ID\s+\*int64\s+`+"`"+`xml:"id,attr,omitempty"`, res.Code)
	assert.Regexp(t, `Note\s+\*string\s+`+"`"+`xml:"note"`, res.Code)
	assert.Regexp(t, `Total\s+int64\s+`+"`"+`xml:"total"`, res.Code)
}

func TestEngine_XPath(t *testing.T) {
	doc := []byte(`<feed>
		<meta><generator>x</generator></meta>
		<entry><title>a</title></entry>
		<entry><title>b</title><summary>s</summary></entry>
	</feed>`)

	res, err := NewEngine().Generate(doc, Options{XPath: "//entry", Format: codegen.FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, "Entry", res.RootType)
	assert.Equal(t, 2, res.Samples)

	_, err = NewEngine().Generate(doc, Options{XPath: "//missing"})
	assert.True(t, errors.Is(err, xmlschema.ErrNoMatch))
}

func TestEngine_GenerateTrees(t *testing.T) {
	engine := NewEngine()
	var roots []*xmlschema.Element
	for _, doc := range []string{`<r><a>1</a></r>`, `<r><b>x</b></r>`} {
		trees, err := engine.ParseSample([]byte(doc), Options{})
		require.NoError(t, err)
		roots = append(roots, trees...)
	}

	res, err := engine.GenerateTrees(roots, Options{Format: codegen.FormatRust})
	require.NoError(t, err)
	assert.Contains(t, res.Code, "pub a: i64,")
	assert.Contains(t, res.Code, "pub b: String,")

	_, err = engine.GenerateTrees(nil, Options{})
	assert.True(t, errors.Is(err, ErrNoSamples))
}

func TestEngine_Validate(t *testing.T) {
	bodies := [][]byte{
		[]byte(`<catalog><book id="1"><title>Go</title><price currency="USD">10.5</price></book></catalog>`),
		[]byte(`<catalog><book id="2"><title>Rust</title><price currency="EUR">12</price></book></catalog>`),
	}

	res, err := NewEngine().GenerateSamples(bodies, Options{Format: codegen.FormatJSONSchema, Validate: true})
	require.NoError(t, err)
	require.NotNil(t, res.Validation)
	assert.True(t, res.Validation.Valid, "%+v", res.Validation.Errors)
}

func TestEngine_ValidateReportsDrift(t *testing.T) {
	// the attribute kind of the last sample wins, so the first no longer fits
	bodies := [][]byte{
		[]byte(`<r><a v="http://example.com">x</a></r>`),
		[]byte(`<r><a v="1">y</a></r>`),
	}

	res, err := NewEngine().GenerateSamples(bodies, Options{Validate: true})
	require.NoError(t, err)
	require.NotNil(t, res.Validation)
	assert.False(t, res.Validation.Valid)
	require.Len(t, res.Validation.Errors, 1)
	assert.Equal(t, 0, res.Validation.Errors[0].Sample)
	assert.NotEmpty(t, res.Validation.Errors[0].Message)
}
