package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/xmlschema"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

var (
	errUsage          = errors.New("usage")
	errMalformed      = errors.New("malformed sample")
	errDrift          = errors.New("declarations differ from the checked file")
	errInvalidSamples = errors.New("samples do not match the inferred schema")
)

const stdinName = "-"

type runner struct {
	cfg    Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	color  bool
}

type sample struct {
	name string
	body []byte
}

func (r *runner) options() xmltypes.Options {
	return xmltypes.Options{
		Format: r.cfg.Format,
		XPath:  r.cfg.XPath,
		Merge: xmlschema.MergeOptions{
			StrictKinds:          r.cfg.Strict,
			OptionalMissingItems: r.cfg.OptionalMissing,
		},
		SplitChildSlots: r.cfg.Split,
		GoPackage:       r.cfg.Package,
	}
}

func (r *runner) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: at least one input file (or -) is required", errUsage)
	}
	if r.cfg.Check && r.cfg.Output == "" {
		return fmt.Errorf("%w: -check requires -o", errUsage)
	}
	opts := r.options()
	if _, err := codegen.Lookup(opts.Format, codegen.RenderOptions{GoPackage: opts.GoPackage}); err != nil {
		return err
	}

	samples, err := r.readSamples(args)
	if err != nil {
		return err
	}

	engine := xmltypes.NewEngine()
	roots, err := r.parseSamples(ctx, engine, samples, opts)
	if err != nil {
		return err
	}

	res, err := engine.GenerateTrees(roots, opts)
	if err != nil {
		return err
	}
	slog.Debug("inferred declarations",
		slog.Int("files", len(samples)),
		slog.Int("samples", res.Samples),
		slog.String("root", res.RootType),
	)

	if r.cfg.Validate {
		if err := r.validate(samples, res); err != nil {
			return err
		}
	}

	switch {
	case r.cfg.Check:
		return r.check(res.Code)
	case r.cfg.Output != "":
		if err := os.WriteFile(r.cfg.Output, []byte(res.Code), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", r.cfg.Output, err)
		}
		return nil
	default:
		_, err := io.WriteString(r.out, res.Code)
		return err
	}
}

// readSamples reads every named file; "-" reads standard input once.
func (r *runner) readSamples(args []string) ([]sample, error) {
	out := make([]sample, 0, len(args))
	stdinRead := false
	for _, name := range args {
		var body []byte
		var err error
		if name == stdinName {
			if stdinRead {
				return nil, fmt.Errorf("%w: standard input can only be read once", errUsage)
			}
			stdinRead = true
			body, err = io.ReadAll(r.in)
		} else {
			body, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", displayName(name), err)
		}
		out = append(out, sample{name: name, body: body})
	}
	return out, nil
}

// parseSamples parses the samples concurrently, keeping their order. Every
// malformed sample gets a diagnostic before errMalformed is returned.
func (r *runner) parseSamples(ctx context.Context, engine *xmltypes.Engine, samples []sample, opts xmltypes.Options) ([]*xmlschema.Element, error) {
	trees := make([][]*xmlschema.Element, len(samples))
	errs := make([]error, len(samples))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.cfg.Workers, 1))
	for i, s := range samples {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			trees[i], errs[i] = engine.ParseSample(s.body, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var roots []*xmlschema.Element
	failed := false
	for i, s := range samples {
		if errs[i] != nil {
			r.diagnose(displayName(s.name), errs[i])
			failed = true
			continue
		}
		roots = append(roots, trees[i]...)
	}
	if failed {
		return nil, errMalformed
	}
	return roots, nil
}

func (r *runner) validate(samples []sample, res *xmltypes.Result) error {
	bodies := make([][]byte, len(samples))
	for i, s := range samples {
		bodies[i] = s.body
	}
	v, err := xmltypes.ValidateSamples(bodies, res.Declarations, r.cfg.XPath)
	if err != nil {
		return fmt.Errorf("validate samples: %w", err)
	}
	if v.Valid {
		return nil
	}
	for _, e := range v.Errors {
		r.warn(displayName(samples[e.Sample].name), e.Message)
	}
	return errInvalidSamples
}

func displayName(name string) string {
	if name == stdinName {
		return "<stdin>"
	}
	return name
}
