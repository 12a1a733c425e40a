package slogobs

import (
	"log/slog"
	"os"
	"strings"
)

// Format represents the output format for logs.
type Format string

const (
	// FormatCompact is a single line with JSON attributes:
	//	2026-01-02 10:40:35 DEBUG Span event → {"event":"extract","span":"pipeline.questions"}
	FormatCompact Format = "compact"

	// FormatJSON is one JSON object per record, for log aggregation.
	FormatJSON Format = "json"
)

// LevelTrace is below slog.LevelDebug and is filtered out unless asked for.
const LevelTrace = slog.LevelDebug - 4

// ParseFormat returns the Format named by s, or FormatCompact.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatJSON)) {
		return FormatJSON
	}
	return FormatCompact
}

// ParseLevel parses TRACE, DEBUG, INFO, WARN, WARNING or ERROR, ignoring
// case. Unknown values yield slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FormatFromEnv reads QGEN_LOG_FORMAT, falling back to LOG_FORMAT.
func FormatFromEnv() Format {
	return ParseFormat(envFirst("QGEN_LOG_FORMAT", "LOG_FORMAT"))
}

// LevelFromEnv reads QGEN_LOG_LEVEL, falling back to LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(envFirst("QGEN_LOG_LEVEL", "LOG_LEVEL"))
}

func envFirst(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// String returns the string representation of the Format.
func (f Format) String() string {
	return string(f)
}
