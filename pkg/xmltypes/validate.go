package xmltypes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	santhosh "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/xmlschema"
)

// Validation reports whether every sample conforms to the inferred schema.
type Validation struct {
	Valid  bool          `json:"valid"`
	Errors []SampleError `json:"errors,omitempty"`
}

// SampleError is one sample that failed validation.
type SampleError struct {
	Sample  int    `json:"sample"`
	Message string `json:"message"`
}

const schemaResource = "xmltypes.schema.json"

// ValidateSamples converts the samples (or their XPath matches) to their JSON
// form and validates them against the JSON Schema of file.
func ValidateSamples(bodies [][]byte, file *codegen.File, xpath string) (*Validation, error) {
	schema, err := compileSchema(file)
	if err != nil {
		return nil, err
	}
	if xpath == "" {
		xpath = "/"
	}

	v := &Validation{Valid: true}
	for i, body := range bodies {
		nodes, err := xmlschema.SelectNodes(bytes.NewReader(body), xpath)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		for _, n := range nodes {
			inst, err := Instance(n, file)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			if err := schema.Validate(inst); err != nil {
				v.Valid = false
				v.Errors = append(v.Errors, SampleError{Sample: i, Message: err.Error()})
			}
		}
	}
	return v, nil
}

func compileSchema(file *codegen.File) (*santhosh.Schema, error) {
	raw, err := codegen.JSONSchemaRenderer{}.Render(file)
	if err != nil {
		return nil, err
	}
	doc, err := santhosh.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("reading generated schema: %w", err)
	}

	c := santhosh.NewCompiler()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	schema, err := c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return schema, nil
}

// Instance converts an element into the JSON value described by the root
// declaration of file: attributes become "@name" members, text "#text", and
// nested elements members named after them (arrays for list fields). Text of
// numeric fields is converted to a number when it parses as one. Elements and
// attributes the declarations do not mention are left out.
func Instance(n *xmlquery.Node, file *codegen.File) (any, error) {
	root, ok := file.Lookup(codegen.Named{Name: file.Root})
	if !ok {
		return nil, fmt.Errorf("root declaration %q not found", file.Root)
	}
	raw, err := json.Marshal(elementInstance(n, root, file))
	if err != nil {
		return nil, fmt.Errorf("encode instance: %w", err)
	}
	return santhosh.UnmarshalJSON(bytes.NewReader(raw))
}

func elementInstance(n *xmlquery.Node, d *codegen.Decl, file *codegen.File) map[string]any {
	obj := make(map[string]any)
	if d.Content != nil {
		if text, ok := ownText(n); ok {
			obj[codegen.TextProperty] = scalar(text, d.Content)
		}
	}

	for _, fd := range d.Fields {
		if fd.Role == codegen.RoleAttr {
			for _, a := range n.Attr {
				if xmlschema.NodeAttrName(a) == fd.Wire {
					obj[codegen.AttrPrefix+fd.Wire] = scalar(a.Value, fd)
					break
				}
			}
			continue
		}

		var vals []any
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode && c.Data == fd.Wire {
				vals = append(vals, memberInstance(c, fd, file))
			}
		}
		switch {
		case len(vals) == 0:
		case fd.List:
			obj[fd.Wire] = vals
		default:
			obj[fd.Wire] = vals[0]
		}
	}
	return obj
}

func memberInstance(n *xmlquery.Node, fd *codegen.Field, file *codegen.File) any {
	if fd.Type.IsNamed() {
		d, ok := file.Lookup(*fd.Type.Named)
		if !ok {
			return nil
		}
		return elementInstance(n, d, file)
	}
	text, _ := ownText(n)
	return scalar(text, fd)
}

// ownText returns the last non-blank text run directly inside n.
func ownText(n *xmlquery.Node) (string, bool) {
	var last string
	var run strings.Builder
	flush := func() {
		if t := strings.TrimSpace(run.String()); t != "" {
			last = t
		}
		run.Reset()
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			run.WriteString(c.Data)
		case xmlquery.ElementNode:
			flush()
		}
	}
	flush()
	return last, last != ""
}

func scalar(text string, fd *codegen.Field) any {
	if fd.Type.IsNamed() {
		return text
	}
	switch fd.Type.Kind.Kind {
	case xmlschema.KindInteger:
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return v
		}
	case xmlschema.KindFloat:
		if v, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
			return v
		}
	}
	return text
}
