package prompts

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleBindXMLFormat walks the assistant through binding an XML format:
// collecting samples, inferring the types and checking them.
func HandleBindXMLFormat(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		format := cfg.DefaultFormat
		element := ""
		source := ""
		if args != nil {
			if v, ok := args["format"]; ok && v != "" {
				format = v
			}
			if v, ok := args["element"]; ok {
				element = v
			}
			if v, ok := args["source"]; ok {
				source = v
			}
		}
		if !slices.Contains(cfg.Formats, format) {
			return nil, fmt.Errorf("unknown format %q, expected one of %s", format, strings.Join(cfg.Formats, ", "))
		}

		var sb strings.Builder

		sb.WriteString("# Bind an XML Format\n\n")
		sb.WriteString("**Objective**: produce ")
		sb.WriteString(formatGoal(format))
		sb.WriteString(" that deserialize every document of this format without loss.\n")
		if source != "" {
			sb.WriteString(fmt.Sprintf("**Source**: %s\n", source))
		}
		if element != "" {
			sb.WriteString(fmt.Sprintf("**Focus**: repeated `<%s>` elements\n", element))
		}

		// --- Samples ---
		sb.WriteString("\n## 1. Collect Samples\n")
		sb.WriteString("- Gather 3-10 real documents. One sample cannot tell which fields are optional.\n")
		sb.WriteString("- Prefer documents that differ: empty lists, missing attributes, error responses.\n")
		sb.WriteString("- Samples must be complete XML documents. JSON or HTML is rejected with INVALID_INPUT.\n")

		// --- Check shape ---
		sb.WriteString("\n## 2. Check the Shape\n")
		sb.WriteString("```\n")
		if element != "" {
			sb.WriteString(fmt.Sprintf("xmltypes_infer_schema(samples: [...], xpath: \"//%s\")\n", element))
		} else {
			sb.WriteString("xmltypes_infer_schema(samples: [...])\n")
		}
		sb.WriteString("```\n")
		sb.WriteString("- `validation.valid: false` means a sample disagrees with the merged shape.\n")
		sb.WriteString("- Disagreeing value kinds are resolved by sample order. Set `strict: true` to widen integer and float to float, anything else to string.\n")
		sb.WriteString("- Set `optional_missing: true` when child values are absent from some samples.\n")

		// --- Generate ---
		sb.WriteString("\n## 3. Generate\n")
		sb.WriteString("```\n")
		call := fmt.Sprintf("xmltypes_generate(samples: [...], format: %q", format)
		if element != "" {
			call += fmt.Sprintf(", xpath: \"//%s\"", element)
		}
		sb.WriteString(call + ", validate: true)\n")
		sb.WriteString("```\n")
		sb.WriteString("- Repeated leaf elements become lists; elements with attributes become their own types.\n")
		sb.WriteString("- Every child element of a structural element is merged into one child type. Set `split: true` to get one type per child element name.\n")
		sb.WriteString("- Empty elements are typed as optional strings. Replace them once a sample with a value exists.\n")

		// --- Review ---
		sb.WriteString("\n## 4. Review\n")
		sb.WriteString("- Field names that clash with keywords or reserved names are renamed and keep their XML name in the tag or rename attribute.\n")
		sb.WriteString("- Timestamps are detected by layout; check that the zone handling fits the consumer.\n")
		sb.WriteString("- Integers are 64-bit. Identifiers with leading zeros should be strings: add a sample with a non-numeric value or edit the field.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for inferring and checking type bindings for an XML format",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

func formatGoal(format string) string {
	switch format {
	case "rust":
		return "serde structs"
	case "go":
		return "Go structs with encoding/xml tags"
	case "jsonschema":
		return "a JSON Schema"
	default:
		return "a declaration tree"
	}
}
