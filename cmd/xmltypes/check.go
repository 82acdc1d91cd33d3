package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 2

// check compares generated code with the -o file and prints a line diff on
// drift. A missing file counts as drift.
func (r *runner) check(generated string) error {
	current, err := os.ReadFile(r.cfg.Output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", r.cfg.Output, err)
	}
	if string(current) == generated {
		return nil
	}

	fmt.Fprintf(r.errOut, "--- %s\n+++ generated\n", r.cfg.Output)
	fmt.Fprint(r.errOut, lineDiff(string(current), generated, r.color))
	return errDrift
}

// lineDiff renders a line-oriented diff of from and to, keeping diffContext
// unchanged lines around every change.
func lineDiff(from, to string, colored bool) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)
	if colored {
		del.EnableColor()
		ins.EnableColor()
	} else {
		del.DisableColor()
		ins.DisableColor()
	}

	var sb strings.Builder
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			for _, l := range text {
				sb.WriteString(del.Sprint("-"+l) + "\n")
			}
		case diffpatch.DiffInsert:
			for _, l := range text {
				sb.WriteString(ins.Sprint("+"+l) + "\n")
			}
		case diffpatch.DiffEqual:
			writeContext(&sb, text, i > 0, i < len(diffs)-1)
		}
	}
	return sb.String()
}

// writeContext writes the unchanged lines next to the changes before and
// after them, eliding the rest.
func writeContext(sb *strings.Builder, text []string, afterChange, beforeChange bool) {
	var keep []string
	elided := false
	switch {
	case afterChange && beforeChange && len(text) > 2*diffContext:
		keep = append(keep, text[:diffContext]...)
		keep = append(keep, "")
		keep = append(keep, text[len(text)-diffContext:]...)
		elided = true
	case afterChange && !beforeChange && len(text) > diffContext:
		keep = text[:diffContext]
	case !afterChange && beforeChange && len(text) > diffContext:
		keep = text[len(text)-diffContext:]
	case !afterChange && !beforeChange:
		return
	default:
		keep = text
	}
	for i, l := range keep {
		if elided && i == diffContext {
			sb.WriteString("@@\n")
			continue
		}
		sb.WriteString(" " + l + "\n")
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
