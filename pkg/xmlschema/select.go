package xmlschema

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var (
	// ErrNoMatch is returned by Select when the expression matches no element.
	ErrNoMatch = errors.New("xpath expression matched no element")
	// ErrInvalidXPath is returned when the expression does not compile.
	ErrInvalidXPath = errors.New("invalid XPath expression")
)

// Select parses the document in r, evaluates the XPath expression against
// it and builds one element tree per matched element, in document order.
// Matches that are not elements (attributes, text) are ignored.
func Select(r io.Reader, expression string, opts MergeOptions) ([]*Element, error) {
	nodes, err := SelectNodes(r, expression)
	if err != nil {
		return nil, err
	}

	out := make([]*Element, 0, len(nodes))
	for _, node := range nodes {
		b := NewBuilder(opts)
		if err := feedNode(b, node); err != nil {
			return nil, err
		}
		el, err := b.Finish()
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

// SelectNodes returns the element nodes matched by expression. A match on
// the document node stands for its document element. It fails with
// ErrNoMatch when nothing matched.
func SelectNodes(r io.Reader, expression string) ([]*xmlquery.Node, error) {
	expr, err := xpath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidXPath, err)
	}

	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, &ParseError{Kind: ErrSyntax, Cause: err}
	}

	var out []*xmlquery.Node
	for _, node := range xmlquery.QuerySelectorAll(doc, expr) {
		if node.Type == xmlquery.DocumentNode {
			node = firstElement(node)
		}
		if node == nil || node.Type != xmlquery.ElementNode {
			continue
		}
		out = append(out, node)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, expression)
	}
	return out, nil
}

func firstElement(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

// feedNode replays an already parsed subtree into the builder with the same
// text semantics as the tokenizer: adjacent text is coalesced and trimmed,
// and only the last run before a tag is kept.
func feedNode(b *Builder, n *xmlquery.Node) error {
	b.Start(n.Data, nodeAttrs(n))

	var text strings.Builder
	flush := func() {
		if t := strings.TrimSpace(text.String()); t != "" {
			b.Characters(t)
		}
		text.Reset()
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		case xmlquery.ElementNode:
			flush()
			if err := feedNode(b, c); err != nil {
				return err
			}
		}
	}
	flush()
	return b.End(n.Data)
}

func nodeAttrs(n *xmlquery.Node) []Attr {
	if len(n.Attr) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(n.Attr))
	for _, a := range n.Attr {
		if isNamespaceDecl(a.Name) {
			continue
		}
		out = append(out, Attr{Name: NodeAttrName(a), Value: a.Value})
	}
	return out
}

// xmlquery resolves the reserved xml prefix to its namespace URL.
const xmlNamespaceURL = "http://www.w3.org/XML/1998/namespace"

// NodeAttrName returns the prefixed name of a parsed attribute, the same
// name the tokenizer reports for it.
func NodeAttrName(a xmlquery.Attr) string {
	name := a.Name
	if name.Space == xmlNamespaceURL {
		name.Space = "xml"
	}
	return qualifiedName(name)
}
