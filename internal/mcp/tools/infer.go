package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/types"
)

// InferSchemaInput is the input for xmltypes_infer_schema.
type InferSchemaInput struct {
	XML             string   `json:"xml,omitempty" jsonschema:"A single XML document. Either xml or samples is required."`
	Samples         []string `json:"samples,omitempty" jsonschema:"Several XML documents of the same format"`
	ContentType     string   `json:"content_type,omitempty" jsonschema:"Content-Type the documents were served with (default: sniffed from the bytes)"`
	XPath           string   `json:"xpath,omitempty" jsonschema:"XPath selecting the elements to infer from. Every match is one sample."`
	Strict          *bool    `json:"strict,omitempty" jsonschema:"Unify disagreeing value kinds instead of keeping the first one"`
	OptionalMissing *bool    `json:"optional_missing,omitempty" jsonschema:"Mark child values optional when some samples lack them"`
	Validate        *bool    `json:"validate,omitempty" jsonschema:"Check every sample against the inferred schema (default: true)"`
}

// ToolInferSchema infers a JSON Schema for the JSON form of XML samples:
// attributes become @name properties, text content becomes #text.
func ToolInferSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferSchemaInput) (*sdkmcp.CallToolResult, types.InferSchemaOutput, error) {
		validate := true
		if input.Validate != nil {
			validate = *input.Validate
		}
		sr := sampleRequest{
			XML:             input.XML,
			Samples:         input.Samples,
			ContentType:     input.ContentType,
			XPath:           input.XPath,
			Strict:          input.Strict,
			OptionalMissing: input.OptionalMissing,
			Validate:        &validate,
		}
		bodies, err := d.collectSamples(sr)
		if err != nil {
			return nil, types.InferSchemaOutput{}, err
		}
		opts := d.options(sr, codegen.FormatJSONSchema, "")

		if d.Config.ToolTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, d.Config.ToolTimeout)
			defer cancel()
		}

		gen, err := d.Generate(ctx, bodies, opts)
		if err != nil {
			return nil, types.InferSchemaOutput{}, WrapGenerateError(err)
		}
		res := gen.Result

		schema, err := types.ToAny(codegen.JSONSchemaRenderer{}.Schema(res.Declarations))
		if err != nil {
			return nil, types.InferSchemaOutput{}, fmt.Errorf("encode schema: %w", err)
		}

		output := types.InferSchemaOutput{
			Schema:     schema,
			RootType:   res.RootType,
			Samples:    res.Samples,
			Validation: res.Validation,
		}
		switch {
		case res.Validation != nil && !res.Validation.Valid:
			output.Hint = "Some samples do not fit the schema. Retry with strict=true or optional_missing=true."
		default:
			output.Hint = "Use xmltypes_generate with format=rust or format=go to emit binding types for this schema."
		}
		return nil, output, nil
	}
}
