package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmltypes/internal/mcp/tools"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, rec := range recs {
		if rec["msg"] == msg {
			return rec
		}
	}
	return nil
}

func TestLoggingMiddleware_ToolCallAttrs(t *testing.T) {
	logs := captureLogs(t)
	session := connect(t, WithBuiltinTools())

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "xmltypes_generate",
		Arguments: map[string]any{"xml": `<root><a>1</a></root>`, "format": "yaml"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var call map[string]any
	for _, rec := range logs.records(t) {
		if rec["msg"] == "method call completed" && rec["method"] == "tools/call" {
			call = rec
		}
	}
	require.NotNil(t, call)
	assert.Equal(t, "xmltypes_generate", call["tool"])
	assert.Equal(t, "yaml", call["format"])
}

func TestLoggingMiddleware_ToolErrorCode(t *testing.T) {
	logs := captureLogs(t)
	session := connect(t, WithBuiltinTools())

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{
		Name:      "xmltypes_generate",
		Arguments: map[string]any{"xml": `<a><b></a>`},
	})
	require.NoError(t, err)
	require.True(t, res.IsError)

	recs := logs.records(t)
	rec := findRecord(recs, "tool call returned error")
	require.NotNil(t, rec)
	assert.Equal(t, "xmltypes_generate", rec["tool"])
	assert.Equal(t, tools.ErrCodeParseError, rec["error_code"])
	_, hasFormat := rec["format"]
	assert.False(t, hasFormat)

	failed := findRecord(recs, "tool call failed")
	require.NotNil(t, failed)
	assert.Equal(t, tools.ErrCodeParseError, failed["code"])
}

func TestToolErrorCode(t *testing.T) {
	text := func(s string) *sdkmcp.CallToolResult {
		return &sdkmcp.CallToolResult{IsError: true, Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: s}}}
	}
	assert.Equal(t, "TIMEOUT", toolErrorCode(text("TIMEOUT: generation timed out")))
	assert.Equal(t, "", toolErrorCode(text("open file: no such file")))
	assert.Equal(t, "", toolErrorCode(text("no code here")))
	assert.Equal(t, "", toolErrorCode(&sdkmcp.CallToolResult{IsError: true}))
}
