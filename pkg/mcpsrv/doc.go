// Package mcpsrv provides an extensible MCP server for xmltypes.
//
// The server exposes the inference engine as the xmltypes_generate and
// xmltypes_infer_schema tools, the bind_xml_format prompt and resources for
// the supported formats and cached results. Hosts can add their own tools,
// prompts and resources with functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Custom tools that need the engine use WithDepsTool:
//
//	mcpsrv.WithDepsTool(
//	    &mcp.Tool{Name: "feed_types", Description: "Types for the feed format"},
//	    func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in FeedInput) (*mcp.CallToolResult, FeedOutput, error) {
//	        return func(ctx context.Context, req *mcp.CallToolRequest, in FeedInput) (*mcp.CallToolResult, FeedOutput, error) {
//	            res, err := d.Engine.Generate([]byte(in.XML), xmltypes.Options{Format: "go"})
//	            if err != nil {
//	                return nil, FeedOutput{}, err
//	            }
//	            return nil, FeedOutput{Code: res.Code}, nil
//	        }
//	    },
//	)
//
// # Configuration
//
// Defaults come from environment variables (see internal/config). Options
// override them:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithFormat("go"),
//	)
package mcpsrv
