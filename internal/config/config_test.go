package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "rust", cfg.Format)
	assert.Equal(t, "model", cfg.GoPackage)
	assert.False(t, cfg.StrictKinds)
	assert.Equal(t, DefaultMaxInputBytes, cfg.MaxInputBytes)
	assert.Equal(t, 30*time.Second, cfg.ToolTimeout)
	assert.Positive(t, cfg.Workers)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("XMLTYPES_FORMAT", "go")
	t.Setenv("XMLTYPES_STRICT_KINDS", "yes")
	t.Setenv("XMLTYPES_VALIDATE", "1")
	t.Setenv("MAX_INPUT_BYTES", "2048")
	t.Setenv("TOOL_TIMEOUT_MS", "500")
	t.Setenv("WORKERS", "not-a-number")

	cfg := Load()
	assert.Equal(t, "go", cfg.Format)
	assert.True(t, cfg.StrictKinds)
	assert.True(t, cfg.ValidateSamples)
	assert.Equal(t, 2048, cfg.MaxInputBytes)
	assert.Equal(t, 500*time.Millisecond, cfg.ToolTimeout)
	assert.Positive(t, cfg.Workers)
}
