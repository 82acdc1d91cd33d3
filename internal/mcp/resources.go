package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmltypes/internal/mcp/tools"
	"github.com/usestring/xmltypes/pkg/codegen"
)

// Resource URI scheme: xmltypes://
// Supported URIs:
//   xmltypes://formats
//   xmltypes://result/{key}

// formatInfo describes one output format for the formats resource.
type formatInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Types       map[string]string `json:"types"`
}

var formatDescriptions = map[string]formatInfo{
	codegen.FormatRust: {
		Description: "serde Deserialize structs for quick-xml; promoted leaf elements live in a module named after their parent",
		Types: map[string]string{
			"integer": "i64", "float": "f64", "url": "url::Url",
			"timestamp(naive)": "chrono::NaiveDateTime", "timestamp(rfc3339)": "chrono::DateTime<chrono::FixedOffset>",
			"timestamp(rfc2822)": "chrono::DateTime<chrono::FixedOffset>", "text": "String", "unset": "Option<String>",
		},
	},
	codegen.FormatGo: {
		Description: "encoding/xml structs; the root carries XMLName and scoped names are flattened",
		Types: map[string]string{
			"integer": "int64", "float": "float64", "url": "string",
			"timestamp(naive)": "string", "timestamp(rfc3339)": "time.Time",
			"timestamp(rfc2822)": "string", "text": "string", "unset": "*string",
		},
	},
	codegen.FormatJSONSchema: {
		Description: "JSON Schema (draft 2020-12) of the JSON form: attributes as @name, text content as #text",
		Types: map[string]string{
			"integer": "integer", "float": "number", "url": "string (uri)",
			"timestamp(naive)": "string (pattern)", "timestamp(rfc3339)": "string (date-time)",
			"timestamp(rfc2822)": "string", "text": "string", "unset": "string",
		},
	},
	codegen.FormatYAML: {
		Description: "the language-neutral declaration tree, for inspection; kinds are written by name",
		Types:       map[string]string{},
	},
}

// registerResources registers resources and resource templates.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         "xmltypes://formats",
		Name:        "Output Formats",
		Description: "Supported output formats with the type each inferred value kind maps to.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceFormats)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ResultURIPrefix + "{key}",
		Name:        "Generation Result",
		Description: "Full declaration tree of a cached xmltypes_generate result. High context cost - the tool already returns the code. Only fetch when you need every field with its role and kind.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceResult)
}

// Resource handlers

func (s *Server) handleResourceFormats(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	formats := make([]formatInfo, 0, len(formatDescriptions))
	for _, name := range codegen.Formats() {
		info := formatDescriptions[name]
		info.Name = name
		formats = append(formats, info)
	}
	return toResourceResult(req.Params.URI, formats)
}

func (s *Server) handleResourceResult(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	key, err := tools.ResultKey(req.Params.URI)
	if err != nil {
		return nil, err
	}
	if s.deps.Cache == nil {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}

	res, ok := s.deps.Cache.Get(key)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	return toResourceResult(req.Params.URI, res)
}

// Helper functions

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
