package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: xmltypes_generate
	AddTool(srv, &sdkmcp.Tool{
		Name:        "xmltypes_generate",
		Description: "Infer type declarations from one or more sample XML documents. Returns {code, format, root_type, samples, validation, hint}. Formats: rust (serde structs, default), go (encoding/xml structs), jsonschema, yaml (declaration tree). Set xpath to infer from repeated elements such as //item; pass several samples to learn optional fields. Set include_declarations=true for a structured field list.",
	}, ToolGenerate(d))

	// Tool 2: xmltypes_infer_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "xmltypes_infer_schema",
		Description: "Infer a JSON Schema for the JSON form of XML samples (attributes as @name, text as #text) and validate every sample against it. Returns {schema, root_type, samples, validation, hint}. Use this to check whether a set of documents shares one shape before generating code with xmltypes_generate.",
	}, ToolInferSchema(d))
}
