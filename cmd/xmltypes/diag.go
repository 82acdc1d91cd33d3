package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/usestring/xmltypes/pkg/xmlschema"
)

func (r *runner) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// diagnose reports a sample that could not be parsed. Malformed documents
// show where in the element path the problem was found.
func (r *runner) diagnose(name string, err error) {
	label := r.paint(color.FgRed, color.Bold).Sprint("error")
	fmt.Fprintf(r.errOut, "%s: %s: %v\n", label, name, err)

	var pe *xmlschema.ParseError
	if !errors.As(err, &pe) {
		return
	}
	if len(pe.Path) > 0 {
		path := r.paint(color.FgYellow).Sprint("/" + strings.Join(pe.Path, "/"))
		fmt.Fprintf(r.errOut, "  open elements: %s\n", path)
	}
	if pe.Line > 0 {
		fmt.Fprintf(r.errOut, "  line: %d\n", pe.Line)
	}
}

// warn reports a non-fatal problem with a sample.
func (r *runner) warn(name, message string) {
	label := r.paint(color.FgYellow, color.Bold).Sprint("warning")
	fmt.Fprintf(r.errOut, "%s: %s: %s\n", label, name, message)
}
