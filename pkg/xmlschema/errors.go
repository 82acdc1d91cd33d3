package xmlschema

import (
	"errors"
	"fmt"
	"strings"
)

// Malformed-document error kinds. A *ParseError matches its kind with
// errors.Is.
var (
	ErrUnexpectedEnd = errors.New("closing tag without open element")
	ErrMismatchedTag = errors.New("closing tag does not match open element")
	ErrUnclosed      = errors.New("element not closed at end of document")
	ErrEmptyDocument = errors.New("document has no root element")
	ErrSyntax        = errors.New("xml syntax error")
)

// ParseError describes a malformed document. Path is the stack of open
// element names (outermost first) at the time the error was detected.
type ParseError struct {
	Kind     error
	Tag      string
	Expected string
	Path     []string
	Line     int
	Cause    error
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	switch {
	case e.Tag != "" && e.Expected != "":
		fmt.Fprintf(&sb, ": </%s> closes <%s>", e.Tag, e.Expected)
	case e.Tag != "":
		fmt.Fprintf(&sb, ": <%s>", e.Tag)
	}
	if len(e.Path) > 0 {
		fmt.Fprintf(&sb, " at /%s", strings.Join(e.Path, "/"))
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, " (line %d)", e.Line)
	}
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *ParseError) Is(target error) bool {
	return target == e.Kind
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
