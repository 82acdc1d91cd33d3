package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmltypes/internal/cache"
	"github.com/usestring/xmltypes/internal/config"
	"github.com/usestring/xmltypes/internal/mcp/tools"
	"github.com/usestring/xmltypes/pkg/codegen"
	"github.com/usestring/xmltypes/pkg/xmltypes"
)

func connect(t *testing.T, opts ...ServerOption) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	c, err := cache.NewResultCache(8)
	require.NoError(t, err)
	deps := &tools.Deps{
		Config: &config.Config{
			Format:        codegen.FormatRust,
			GoPackage:     codegen.DefaultGoPackage,
			MaxInputBytes: config.DefaultMaxInputBytes,
		},
		Engine: xmltypes.NewEngine(),
		Cache:  c,
	}
	srv, err := NewServer(deps, opts...)
	require.NoError(t, err)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := srv.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)
}

func TestServer_ListTools(t *testing.T) {
	session := connect(t, WithBuiltinTools())

	res, err := session.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"xmltypes_generate", "xmltypes_infer_schema"}, names)
}

func TestServer_GenerateAndReadResult(t *testing.T) {
	session := connect(t, WithBuiltinTools())
	ctx := context.Background()

	res, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name: "xmltypes_generate",
		Arguments: map[string]any{
			"xml":    `<feed><entry id="1"><title>a</title></entry></feed>`,
			"format": "go",
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)

	var out struct {
		Code     string `json:"code"`
		RootType string `json:"root_type"`
		Resource struct {
			URI string `json:"uri"`
		} `json:"resource"`
	}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	assert.Equal(t, "Feed", out.RootType)
	assert.Contains(t, out.Code, "type Feed struct")
	require.True(t, strings.HasPrefix(out.Resource.URI, tools.ResultURIPrefix))

	read, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: out.Resource.URI})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)
	assert.Contains(t, read.Contents[0].Text, `"root": "Feed"`)
}

func TestServer_GenerateErrorIsToolError(t *testing.T) {
	session := connect(t, WithBuiltinTools())

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "xmltypes_generate",
		Arguments: map[string]any{"xml": `<a><b></a>`},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, tools.ErrCodeParseError)
}

func TestServer_FormatsResource(t *testing.T) {
	session := connect(t, WithBuiltinTools())

	read, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "xmltypes://formats"})
	require.NoError(t, err)
	require.Len(t, read.Contents, 1)

	var formats []formatInfo
	require.NoError(t, json.Unmarshal([]byte(read.Contents[0].Text), &formats))
	require.Len(t, formats, len(codegen.Formats()))
	for _, f := range formats {
		assert.NotEmpty(t, f.Description, f.Name)
	}
}

func TestServer_BindXMLFormatPrompt(t *testing.T) {
	session := connect(t, WithBuiltinPrompts())

	res, err := session.GetPrompt(context.Background(), &sdkmcp.GetPromptParams{
		Name:      "bind_xml_format",
		Arguments: map[string]string{"format": "go", "element": "item"},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	text, ok := res.Messages[0].Content.(*sdkmcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `xpath: "//item"`)
	assert.Contains(t, text.Text, "encoding/xml")
}

func TestServer_CustomRegistration(t *testing.T) {
	called := false
	connect(t, WithCustomRegistration(func(*sdkmcp.Server) { called = true }))
	assert.True(t, called)
}
