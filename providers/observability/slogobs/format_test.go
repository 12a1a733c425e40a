package slogobs

import (
	"log/slog"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json":    FormatJSON,
		" JSON ":  FormatJSON,
		"compact": FormatCompact,
		"pretty":  FormatCompact,
		"":        FormatCompact,
	}

	for in, want := range tests {
		if got := ParseFormat(in); got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("QGEN_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("QGEN_LOG_LEVEL", "debug")
	t.Setenv("LOG_LEVEL", "error")

	if got := FormatFromEnv(); got != FormatJSON {
		t.Errorf("FormatFromEnv() = %q, want fallback to LOG_FORMAT", got)
	}
	if got := LevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("LevelFromEnv() = %v, want QGEN_LOG_LEVEL to win", got)
	}
}
