package xmlschema

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// EventKind identifies a tokenizer event.
type EventKind int

const (
	EventStart EventKind = iota + 1
	EventCharacters
	EventEnd
)

// Attr is a raw attribute as read from the document.
type Attr struct {
	Name  string
	Value string
}

// Event is one Start, Characters or End event of the document stream.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs []Attr
	Text  string
	Line  int
}

// Tokenizer turns an XML document into Start/Characters/End events.
// Element names are reduced to their local part, attribute names keep their
// prefix, and namespace declarations are dropped. Tag balancing is left to
// the consumer: the underlying decoder is used in raw mode so that the Tree
// Builder sees (and reports) unmatched closing tags itself.
type Tokenizer struct {
	dec     *xml.Decoder
	text    strings.Builder
	pending *Event
}

// NewTokenizer creates a tokenizer reading from r. Documents declaring a
// non-UTF-8 encoding in their prolog are transcoded.
func NewTokenizer(r io.Reader) *Tokenizer {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel
	return &Tokenizer{dec: dec}
}

// Line returns the current line of the decoder.
func (t *Tokenizer) Line() int {
	line, _ := t.dec.InputPos()
	return line
}

// Next returns the next event, or io.EOF once the input is exhausted.
// Adjacent character data (including CDATA sections and text split by
// comments) is coalesced into a single whitespace-trimmed Characters event;
// whitespace-only runs produce no event.
func (t *Tokenizer) Next() (Event, error) {
	if t.pending != nil {
		ev := *t.pending
		t.pending = nil
		return ev, nil
	}

	for {
		tok, err := t.dec.RawToken()
		if err == io.EOF {
			if ev, ok := t.flushText(); ok {
				return ev, nil
			}
			return Event{}, io.EOF
		}
		if err != nil {
			return Event{}, err
		}

		var ev Event
		switch tk := tok.(type) {
		case xml.CharData:
			t.text.Write(tk)
			continue
		case xml.StartElement:
			ev = Event{Kind: EventStart, Name: tk.Name.Local, Attrs: convertAttrs(tk.Attr), Line: t.Line()}
		case xml.EndElement:
			ev = Event{Kind: EventEnd, Name: tk.Name.Local, Line: t.Line()}
		default:
			// comments, processing instructions and directives carry no schema
			continue
		}

		if text, ok := t.flushText(); ok {
			t.pending = &ev
			return text, nil
		}
		return ev, nil
	}
}

func (t *Tokenizer) flushText() (Event, bool) {
	text := strings.TrimSpace(t.text.String())
	t.text.Reset()
	if text == "" {
		return Event{}, false
	}
	return Event{Kind: EventCharacters, Text: text, Line: t.Line()}, true
}

func convertAttrs(attrs []xml.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, 0, len(attrs))
	for _, a := range attrs {
		if isNamespaceDecl(a.Name) {
			continue
		}
		out = append(out, Attr{Name: qualifiedName(a.Name), Value: a.Value})
	}
	return out
}

func isNamespaceDecl(name xml.Name) bool {
	return name.Space == "xmlns" || (name.Space == "" && name.Local == "xmlns")
}

// qualifiedName renders a raw (untranslated) name as prefix:local.
func qualifiedName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}
