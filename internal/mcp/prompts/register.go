package prompts

import (
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "bind_xml_format",
		Description: "RECOMMENDED: Infer type bindings for an XML format from sample documents. Guides through sample collection, shape checking and code generation.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "format",
				Description: "Output format: " + strings.Join(cfg.Formats, ", "),
				Required:    false,
			},
			{
				Name:        "element",
				Description: "Name of a repeated element to bind instead of the whole document (e.g. 'item', 'entry')",
				Required:    false,
			},
			{
				Name:        "source",
				Description: "Where the documents come from (e.g. 'RSS feed of example.com')",
				Required:    false,
			},
		},
	}, HandleBindXMLFormat(cfg))
}
