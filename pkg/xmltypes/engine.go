// Package xmltypes is the entry point of the inference pipeline: it parses
// one or more sample documents, merges them into a single schema and renders
// the resulting type declarations.
package xmltypes

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/contenttype"
	"github.com/usestring/xmltypes/pkg/xmlschema"
)

var (
	// ErrNoSamples is returned when no sample document was given.
	ErrNoSamples = errors.New("no sample documents")
	// ErrNotXML is returned for inputs that are not XML documents.
	ErrNotXML = errors.New("input is not an XML document")
)

// Options controls a generation run. The zero value renders serde structs
// with the default merge behavior.
type Options struct {
	// Format is one of codegen.Formats(); empty means codegen.FormatRust.
	Format string
	// XPath selects the subtrees to infer from instead of the whole document.
	// Every match is one sample.
	XPath           string
	Merge           xmlschema.MergeOptions
	SplitChildSlots bool
	GoPackage       string
	// Validate converts every sample into its JSON form and checks it against
	// the inferred JSON Schema.
	Validate bool
}

func (o Options) format() string {
	if o.Format == "" {
		return codegen.FormatRust
	}
	return o.Format
}

// Result is the output of a generation run.
type Result struct {
	Code         string        `json:"code"`
	Format       string        `json:"format"`
	RootType     string        `json:"root_type"`
	Declarations *codegen.File `json:"declarations"`
	// Samples is the number of element trees merged into the schema.
	Samples    int         `json:"samples"`
	Validation *Validation `json:"validation,omitempty"`
}

// Engine runs the pipeline. It holds no state; one Engine may serve
// concurrent calls.
type Engine struct{}

// NewEngine creates a new engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Parse renders serde declarations for a single document with default
// options.
func Parse(xmlText string) (string, error) {
	res, err := NewEngine().Generate([]byte(xmlText), Options{})
	if err != nil {
		return "", err
	}
	return res.Code, nil
}

// Generate infers declarations from a single document.
func (e *Engine) Generate(body []byte, opts Options) (*Result, error) {
	return e.GenerateSamples([][]byte{body}, opts)
}

// GenerateSamples infers declarations from several documents of the same
// format, merged as if they were repeated siblings.
func (e *Engine) GenerateSamples(bodies [][]byte, opts Options) (*Result, error) {
	if len(bodies) == 0 {
		return nil, ErrNoSamples
	}
	renderer, err := e.renderer(opts)
	if err != nil {
		return nil, err
	}

	var roots []*xmlschema.Element
	for i, body := range bodies {
		trees, err := e.ParseSample(body, opts)
		if err != nil {
			return nil, fmt.Errorf("parse sample %d: %w", i, err)
		}
		roots = append(roots, trees...)
	}

	res, err := e.render(renderer, roots, opts)
	if err != nil {
		return nil, err
	}
	if opts.Validate {
		res.Validation, err = ValidateSamples(bodies, res.Declarations, opts.XPath)
		if err != nil {
			return nil, fmt.Errorf("validate samples: %w", err)
		}
	}
	return res, nil
}

// ParseSample parses one document into the element trees it contributes:
// the document element, or every XPath match when opts.XPath is set.
func (e *Engine) ParseSample(body []byte, opts Options) ([]*xmlschema.Element, error) {
	if contenttype.Sniff(body) != contenttype.XML {
		return nil, ErrNotXML
	}
	if opts.XPath != "" {
		return xmlschema.Select(bytes.NewReader(body), opts.XPath, opts.Merge)
	}
	root, err := xmlschema.ParseDocument(bytes.NewReader(body), opts.Merge)
	if err != nil {
		return nil, err
	}
	return []*xmlschema.Element{root}, nil
}

// GenerateTrees renders declarations for already parsed element trees.
func (e *Engine) GenerateTrees(roots []*xmlschema.Element, opts Options) (*Result, error) {
	if len(roots) == 0 {
		return nil, ErrNoSamples
	}
	renderer, err := e.renderer(opts)
	if err != nil {
		return nil, err
	}
	return e.render(renderer, roots, opts)
}

func (e *Engine) renderer(opts Options) (codegen.Renderer, error) {
	return codegen.Lookup(opts.format(), codegen.RenderOptions{GoPackage: opts.GoPackage})
}

func (e *Engine) render(renderer codegen.Renderer, roots []*xmlschema.Element, opts Options) (*Result, error) {
	root := xmlschema.MergeElements(roots, opts.Merge)
	file := codegen.Build(root, codegen.Options{
		Merge:           opts.Merge,
		SplitChildSlots: opts.SplitChildSlots,
	})

	code, err := renderer.Render(file)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", renderer.Name(), err)
	}

	slog.Debug("generated declarations",
		slog.String("format", renderer.Name()),
		slog.String("root", file.Root),
		slog.Int("samples", len(roots)),
		slog.Int("decls", len(file.Decls)),
	)

	return &Result{
		Code:         string(code),
		Format:       renderer.Name(),
		RootType:     file.Root,
		Declarations: file,
		Samples:      len(roots),
	}, nil
}
