// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/usestring/xmltypes/pkg/codegen"
)

// Input and cache defaults
const (
	DefaultMaxInputBytes       = 10 << 20
	DefaultResultCacheMaxItems = 256
	DefaultToolTimeoutMs       = 30000
)

// Config holds the configuration shared by the CLI and the MCP server.
type Config struct {
	// Generation defaults
	Format           string // XMLTYPES_FORMAT, default "rust"
	GoPackage        string // XMLTYPES_GO_PACKAGE, default "model"
	StrictKinds      bool   // XMLTYPES_STRICT_KINDS, default false
	OptionalMissing  bool   // XMLTYPES_OPTIONAL_MISSING, default false
	SplitChildSlots  bool   // XMLTYPES_SPLIT_CHILDREN, default false
	ValidateSamples  bool   // XMLTYPES_VALIDATE, default false
	MaxInputBytes    int    // MAX_INPUT_BYTES, default 10 MiB
	Workers          int    // WORKERS, default GOMAXPROCS
	ResultCacheItems int    // RESULT_CACHE_MAX_ITEMS, default 256

	ToolTimeout time.Duration // TOOL_TIMEOUT_MS, default 30000ms (30s)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Format:           getEnvString("XMLTYPES_FORMAT", codegen.FormatRust),
		GoPackage:        getEnvString("XMLTYPES_GO_PACKAGE", codegen.DefaultGoPackage),
		StrictKinds:      getEnvBool("XMLTYPES_STRICT_KINDS", false),
		OptionalMissing:  getEnvBool("XMLTYPES_OPTIONAL_MISSING", false),
		SplitChildSlots:  getEnvBool("XMLTYPES_SPLIT_CHILDREN", false),
		ValidateSamples:  getEnvBool("XMLTYPES_VALIDATE", false),
		MaxInputBytes:    getEnvInt("MAX_INPUT_BYTES", DefaultMaxInputBytes),
		Workers:          getEnvInt("WORKERS", runtime.GOMAXPROCS(0)),
		ResultCacheItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", DefaultResultCacheMaxItems),

		ToolTimeout: getEnvDurationMs("TOOL_TIMEOUT_MS", DefaultToolTimeoutMs),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
