package tools

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/types"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

// GenerateInput is the input for xmltypes_generate.
type GenerateInput struct {
	XML             string   `json:"xml,omitempty" jsonschema:"A single XML document. Either xml or samples is required."`
	Samples         []string `json:"samples,omitempty" jsonschema:"Several XML documents of the same format, merged into one set of declarations"`
	ContentType     string   `json:"content_type,omitempty" jsonschema:"Content-Type the documents were served with (default: sniffed from the bytes)"`
	Format          string   `json:"format,omitempty" jsonschema:"Output format: rust (default), go, jsonschema, or yaml"`
	XPath           string   `json:"xpath,omitempty" jsonschema:"XPath selecting the elements to infer from, e.g. //item. Every match is one sample."`
	GoPackage       string   `json:"go_package,omitempty" jsonschema:"Package name for go output (default: model)"`
	Strict          *bool    `json:"strict,omitempty" jsonschema:"Unify disagreeing value kinds instead of keeping the first one"`
	OptionalMissing *bool    `json:"optional_missing,omitempty" jsonschema:"Mark child values optional when some samples lack them"`
	Split           *bool    `json:"split,omitempty" jsonschema:"Emit one declaration per distinct child element name"`
	Validate        *bool    `json:"validate,omitempty" jsonschema:"Check every sample against the inferred JSON Schema"`
	IncludeDecls    bool     `json:"include_declarations,omitempty" jsonschema:"Include a structured summary of every declaration"`
}

func (in GenerateInput) sampleRequest() sampleRequest {
	return sampleRequest{
		XML:             in.XML,
		Samples:         in.Samples,
		ContentType:     in.ContentType,
		XPath:           in.XPath,
		Strict:          in.Strict,
		OptionalMissing: in.OptionalMissing,
		Split:           in.Split,
		Validate:        in.Validate,
	}
}

// ToolGenerate infers type declarations from XML samples.
func ToolGenerate(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, types.GenerateOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input GenerateInput) (*sdkmcp.CallToolResult, types.GenerateOutput, error) {
		sr := input.sampleRequest()
		bodies, err := d.collectSamples(sr)
		if err != nil {
			return nil, types.GenerateOutput{}, err
		}
		opts := d.options(sr, input.Format, input.GoPackage)

		if d.Config.ToolTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.Config.ToolTimeout)
			defer cancel()
		}

		gen, err := d.Generate(ctx, bodies, opts)
		if err != nil {
			return nil, types.GenerateOutput{}, WrapGenerateError(err)
		}
		res := gen.Result

		slog.Debug("generate tool completed",
			slog.String("format", res.Format),
			slog.Int("samples", res.Samples),
			slog.Bool("cached", gen.Cached),
		)

		output := types.GenerateOutput{
			Code:       res.Code,
			Format:     res.Format,
			RootType:   res.RootType,
			Samples:    res.Samples,
			Validation: res.Validation,
			Cached:     gen.Cached,
			Hint:       generateHint(res, opts),
		}
		if d.Cache != nil {
			output.Resource = &types.ResourceRef{
				URI:  ResultURI(gen.Key),
				MIME: MimeJSON,
				Hint: "Full declaration tree of this result",
			}
		}
		if input.IncludeDecls {
			output.Declarations = types.Summarize(res.Declarations)
		}
		return nil, output, nil
	}
}

func generateHint(res *xmltypes.Result, opts xmltypes.Options) string {
	if res.Validation != nil && !res.Validation.Valid {
		return fmt.Sprintf("%d sample(s) do not fit the inferred types. Retry with strict=true or optional_missing=true, or pass fewer, more uniform samples.", len(res.Validation.Errors))
	}
	if res.Samples == 1 && opts.XPath == "" {
		return "Inferred from a single document. Pass more samples to learn which fields are optional, or use xpath to focus on a repeated element."
	}
	if res.Format != codegen.FormatJSONSchema {
		return "Use xmltypes_infer_schema with validate=true to check the samples against these types."
	}
	return ""
}
