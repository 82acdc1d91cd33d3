// Package xmlschema infers a typed schema from example XML documents.
//
// A document is read as a stream of Start/Characters/End events and folded
// into a tree of structural elements whose childless descendants are demoted
// to leaf items. Repeated siblings are unified by the merge operations in this
// package, promoting fields that are missing on one side to optional.
package xmlschema

import (
	"fmt"
	"sort"
)

// Kind is the inferred primitive type of a piece of leaf text.
type Kind int

const (
	KindUnset Kind = iota
	KindText
	KindInteger
	KindFloat
	KindURL
	KindTimestamp
)

var kindNames = map[Kind]string{
	KindUnset:     "unset",
	KindText:      "text",
	KindInteger:   "integer",
	KindFloat:     "float",
	KindURL:       "url",
	KindTimestamp: "timestamp",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown kind %q", b)
}

// TimestampFormat distinguishes the timestamp layouts recognized by Classify.
type TimestampFormat int

const (
	TimestampNone TimestampFormat = iota
	// TimestampNaive is "2006-01-02 15:04:05" without a zone.
	TimestampNaive
	TimestampRFC3339
	TimestampRFC2822
)

func (f TimestampFormat) String() string {
	switch f {
	case TimestampNaive:
		return "naive"
	case TimestampRFC3339:
		return "rfc3339"
	case TimestampRFC2822:
		return "rfc2822"
	default:
		return ""
	}
}

// MarshalText renders the layout by name.
func (f TimestampFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ValueKind is a Kind plus the timestamp layout when Kind is KindTimestamp.
type ValueKind struct {
	Kind      Kind            `json:"kind" yaml:"kind"`
	Timestamp TimestampFormat `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

func (v ValueKind) String() string {
	if v.Kind == KindTimestamp {
		return v.Kind.String() + "(" + v.Timestamp.String() + ")"
	}
	return v.Kind.String()
}

// Convenience constructors used across the package and its tests.
var (
	Unset   = ValueKind{Kind: KindUnset}
	Text    = ValueKind{Kind: KindText}
	Integer = ValueKind{Kind: KindInteger}
	Float   = ValueKind{Kind: KindFloat}
	URL     = ValueKind{Kind: KindURL}
)

// Timestamp returns the timestamp ValueKind for the given layout.
func Timestamp(f TimestampFormat) ValueKind {
	return ValueKind{Kind: KindTimestamp, Timestamp: f}
}

// Value tags a ValueKind as required or optional.
type Value struct {
	ValueKind
	Optional bool `json:"optional,omitempty" yaml:"optional,omitempty"`
}

// Required wraps k as a required value.
func Required(k ValueKind) Value { return Value{ValueKind: k} }

// Optional wraps k as an optional value.
func Optional(k ValueKind) Value { return Value{ValueKind: k, Optional: true} }

// Absent reports whether v carries no type information. Optional(Unset) and
// Required(Unset) both render as an optional text value.
func (v Value) Absent() bool { return v.Kind == KindUnset }

// AsOptional returns v marked optional.
func (v Value) AsOptional() Value {
	v.Optional = true
	return v
}

func (v Value) String() string {
	if v.Optional {
		return "optional " + v.ValueKind.String()
	}
	return v.ValueKind.String()
}

// Attributes maps attribute names to their inferred values.
type Attributes map[string]Value

// SortedKeys returns the attribute names in ascending order. Every consumer
// that needs a stable field order goes through here.
func (a Attributes) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of a.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// LeafItem is an element without nested child elements: a name, the kind of
// its text and its attributes. Two leaf items are the same field when their
// names are equal, whatever their types.
type LeafItem struct {
	Name       string     `json:"name" yaml:"name"`
	Value      Value      `json:"value" yaml:"value"`
	Attributes Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// Repeated is set when the item occurred more than once inside a single
	// parent instance.
	Repeated bool `json:"repeated,omitempty" yaml:"repeated,omitempty"`
}

// SameField reports whether a and b describe the same field.
func SameField(a, b LeafItem) bool { return a.Name == b.Name }

// Clone returns a deep copy of the item.
func (it LeafItem) Clone() LeafItem {
	it.Attributes = it.Attributes.Clone()
	return it
}

// Element is a structural element: an element that has at least one nested
// child element (the document root is always an Element).
type Element struct {
	Name       string     `json:"name" yaml:"name"`
	Attributes Attributes `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Items      []LeafItem `json:"items,omitempty" yaml:"items,omitempty"`
	// Value is the kind of the element's own text, if it had any.
	Value    Value      `json:"value" yaml:"value"`
	Elements []*Element `json:"elements,omitempty" yaml:"elements,omitempty"`
}

// IsLeaf reports whether e has neither child elements nor leaf items.
func (e *Element) IsLeaf() bool {
	return len(e.Elements) == 0 && len(e.Items) == 0
}

// Leaf converts e into a LeafItem.
func (e *Element) Leaf() LeafItem {
	return LeafItem{
		Name:       e.Name,
		Value:      e.Value,
		Attributes: e.Attributes,
	}
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := &Element{
		Name:       e.Name,
		Attributes: e.Attributes.Clone(),
		Value:      e.Value,
	}
	if len(e.Items) > 0 {
		out.Items = make([]LeafItem, len(e.Items))
		for i, it := range e.Items {
			out.Items[i] = it.Clone()
		}
	}
	if len(e.Elements) > 0 {
		out.Elements = make([]*Element, len(e.Elements))
		for i, c := range e.Elements {
			out.Elements[i] = c.Clone()
		}
	}
	return out
}
