// Package prompts contains MCP prompt implementations for xmltypes.
package prompts

// Config holds configuration needed by prompts.
type Config struct {
	DefaultFormat string
	Formats       []string
}
