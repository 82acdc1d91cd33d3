package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// LoggingMiddleware returns middleware that logs all incoming method calls.
// Tool calls also carry the tool name, the requested format and, when the
// tool reported an error, its code.
func LoggingMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()

			result, err := next(ctx, method, req)

			duration := time.Since(start)
			attrs := []slog.Attr{
				slog.String("method", method),
				slog.Int64("duration_ms", duration.Milliseconds()),
			}
			if call, ok := req.(*sdkmcp.CallToolRequest); ok && call.Params != nil {
				attrs = append(attrs, toolAttrs(call.Params)...)
			}

			switch {
			case err != nil:
				attrs = append(attrs, slog.String("error", err.Error()))
				slog.LogAttrs(ctx, slog.LevelError, "method call failed", attrs...)
			case isToolError(result):
				attrs = append(attrs, slog.String("error_code", toolErrorCode(result.(*sdkmcp.CallToolResult))))
				slog.LogAttrs(ctx, slog.LevelWarn, "tool call returned error", attrs...)
			default:
				slog.LogAttrs(ctx, slog.LevelInfo, "method call completed", attrs...)
			}

			return result, err
		}
	}
}

func toolAttrs(p *sdkmcp.CallToolParamsRaw) []slog.Attr {
	attrs := []slog.Attr{slog.String("tool", p.Name)}
	var args struct {
		Format string `json:"format"`
	}
	if len(p.Arguments) > 0 && json.Unmarshal(p.Arguments, &args) == nil && args.Format != "" {
		attrs = append(attrs, slog.String("format", args.Format))
	}
	return attrs
}

func isToolError(result sdkmcp.Result) bool {
	res, ok := result.(*sdkmcp.CallToolResult)
	return ok && res != nil && res.IsError
}

// toolErrorCode extracts the leading "CODE: " of a coded tool error.
func toolErrorCode(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		text, ok := c.(*sdkmcp.TextContent)
		if !ok {
			continue
		}
		code, _, found := strings.Cut(text.Text, ": ")
		if found && code != "" && strings.ToUpper(code) == code && !strings.ContainsAny(code, " \t") {
			return code
		}
		return ""
	}
	return ""
}
