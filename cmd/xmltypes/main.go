// Command xmltypes infers type declarations from sample XML documents.
//
//	xmltypes [opts] file...
//
// Every file (or - for standard input) is one sample; all samples are merged
// into a single set of declarations. Malformed documents exit with status 2,
// drift found by -check exits with status 1.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/usestring/xmltypes/internal/config"
	"github.com/usestring/xmltypes/internal/logging"
	"github.com/usestring/xmltypes/pkg/codegen"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("xmltypes").
		WithSynopsis("xmltypes [opts] file...").
		WithDescription("Infer type declarations (serde structs, Go structs, JSON Schema) from sample XML documents. Use - to read a sample from standard input.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	Format          string `cli:"name=format desc='output format: rust, go, jsonschema or yaml (default rust)'"`
	XPath           string `cli:"name=xpath desc='infer from the elements matched by this XPath expression instead of whole documents'"`
	Package         string `cli:"name=pkg desc='package name for go output (default model)'"`
	Output          string `cli:"name=o desc='write the declarations to this file instead of stdout'"`
	Check           bool   `cli:"name=check desc='compare the declarations with the -o file, print a diff and fail on drift'"`
	Strict          bool   `cli:"name=strict desc='unify disagreeing value kinds instead of resolving them by sample order'"`
	OptionalMissing bool   `cli:"name=optional-missing desc='mark child values optional when some samples lack them'"`
	Split           bool   `cli:"name=split desc='emit one declaration per distinct child element name'"`
	Validate        bool   `cli:"name=validate desc='validate every sample against the inferred JSON Schema'"`
	Workers         int    `cli:"name=workers desc='number of samples parsed concurrently (default GOMAXPROCS)'"`
	Color           bool   `cli:"name=color desc='color diagnostics even when stderr is not a terminal'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	env := config.Load()
	cleanup, err := logging.Setup(logging.Config{
		Level:  env.LogLevel,
		Format: env.LogFormat,
	})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanup()

	r := &runner{
		cfg:    cfg.resolve(env),
		in:     cc.In,
		out:    cc.Out,
		errOut: os.Stderr,
		color:  cfg.Color || isatty.IsTerminal(os.Stderr.Fd()),
	}
	err = r.run(context.Background(), args)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errMalformed):
		return cli.ExitCodeErr(2)
	case errors.Is(err, errDrift), errors.Is(err, errInvalidSamples):
		return cli.ExitCodeErr(1)
	case errors.Is(err, errUsage), errors.Is(err, codegen.ErrUnknownFormat):
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	default:
		return err
	}
}

// resolve fills unset options from the environment configuration.
func (cfg *Config) resolve(env *config.Config) Config {
	out := *cfg
	if out.Format == "" {
		out.Format = env.Format
	}
	if out.Package == "" {
		out.Package = env.GoPackage
	}
	if out.Workers <= 0 {
		out.Workers = env.Workers
	}
	out.Strict = out.Strict || env.StrictKinds
	out.OptionalMissing = out.OptionalMissing || env.OptionalMissing
	out.Split = out.Split || env.SplitChildSlots
	out.Validate = out.Validate || env.ValidateSamples
	return out
}
