package xmlschema

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Builder is the stack machine that folds document events into an element
// tree. A synthetic root is pushed before the first event; every closed
// element is either demoted to a leaf item of its parent (when it has no
// children of its own) or attached as a structural child.
type Builder struct {
	opts  MergeOptions
	stack []*Element
	line  int
}

// NewBuilder returns a Builder with only the synthetic root open.
func NewBuilder(opts MergeOptions) *Builder {
	return &Builder{
		opts:  opts,
		stack: []*Element{{}},
	}
}

// Depth returns the number of open document elements.
func (b *Builder) Depth() int {
	return len(b.stack) - 1
}

func (b *Builder) top() *Element {
	return b.stack[len(b.stack)-1]
}

// path returns the names of the open document elements, outermost first.
func (b *Builder) path() []string {
	out := make([]string, 0, b.Depth())
	for _, el := range b.stack[1:] {
		out = append(out, el.Name)
	}
	return out
}

// Start opens a new element. Attribute values are classified immediately.
func (b *Builder) Start(name string, attrs []Attr) {
	el := &Element{Name: name}
	if len(attrs) > 0 {
		el.Attributes = make(Attributes, len(attrs))
		for _, a := range attrs {
			el.Attributes[a.Name] = Classify(a.Value)
		}
	}
	b.stack = append(b.stack, el)
}

// Characters records the kind of the open element's text. A later run
// replaces an earlier one.
func (b *Builder) Characters(text string) {
	b.top().Value = Classify(text)
}

// End closes the open element, which must be called name.
func (b *Builder) End(name string) error {
	if b.Depth() == 0 {
		return &ParseError{Kind: ErrUnexpectedEnd, Tag: name, Line: b.line}
	}
	cur := b.top()
	if cur.Name != name {
		return &ParseError{
			Kind:     ErrMismatchedTag,
			Tag:      name,
			Expected: cur.Name,
			Path:     b.path(),
			Line:     b.line,
		}
	}
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.top()

	if cur.IsLeaf() {
		parent.Items = append(parent.Items, cur.Leaf())
		return nil
	}
	cur.Items = normalizeItems(cur.Items, b.opts)
	parent.Elements = append(parent.Elements, cur)
	return nil
}

// Feed applies a tokenizer event.
func (b *Builder) Feed(ev Event) error {
	if ev.Line > 0 {
		b.line = ev.Line
	}
	switch ev.Kind {
	case EventStart:
		b.Start(ev.Name, ev.Attrs)
	case EventCharacters:
		b.Characters(ev.Text)
	case EventEnd:
		return b.End(ev.Name)
	}
	return nil
}

// Finish ends the document and returns the document element. Any element
// still open is reported as ErrUnclosed. A document element without child
// elements is returned as an Element carrying its attributes and text kind.
func (b *Builder) Finish() (*Element, error) {
	if b.Depth() > 0 {
		return nil, &ParseError{
			Kind: ErrUnclosed,
			Tag:  b.top().Name,
			Path: b.path(),
			Line: b.line,
		}
	}
	root := b.stack[0]
	switch {
	case len(root.Elements) > 0:
		return root.Elements[0], nil
	case len(root.Items) > 0:
		it := root.Items[0]
		return &Element{Name: it.Name, Attributes: it.Attributes, Value: it.Value}, nil
	default:
		return nil, &ParseError{Kind: ErrEmptyDocument, Line: b.line}
	}
}

// ParseDocument reads a complete document from r and returns its element
// tree. Malformed documents yield a *ParseError.
func ParseDocument(r io.Reader, opts MergeOptions) (*Element, error) {
	tok := NewTokenizer(r)
	b := NewBuilder(opts)
	events := 0

	for {
		ev, err := tok.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Kind: ErrSyntax, Path: b.path(), Line: tok.Line(), Cause: err}
		}
		events++
		if err := b.Feed(ev); err != nil {
			return nil, err
		}
	}

	root, err := b.Finish()
	if err != nil {
		return nil, err
	}
	slog.Debug("built element tree",
		slog.String("root", root.Name),
		slog.Int("events", events),
	)
	return root, nil
}

// ParseString is ParseDocument over an in-memory document.
func ParseString(doc string, opts MergeOptions) (*Element, error) {
	root, err := ParseDocument(strings.NewReader(doc), opts)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return root, nil
}
