package slogobs

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHandler_Compact(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatCompact, Level: slog.LevelDebug, Output: &buf}))

	logger.Info("Questions recovered", "strategy", "direct", "count", 2)

	out := buf.String()
	for _, want := range []string{" INFO Questions recovered", " → ", `"strategy":"direct"`, `"count":2`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("output %q has color codes", out)
	}
}

func TestHandler_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatJSON, Output: &buf}))

	logger.Warn("Nothing recovered", "error", errors.New("no bracket span found"))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if got["level"] != "WARN" || got["msg"] != "Nothing recovered" {
		t.Errorf("got %v", got)
	}
	if got["error"] != "no bracket span found" {
		t.Errorf("error = %v, want the error text", got["error"])
	}
	if _, ok := got["time"]; !ok {
		t.Error("missing time field")
	}
}

func TestHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Level: slog.LevelWarn, Output: &buf}))

	logger.Info("hidden")
	logger.Debug("hidden")
	logger.Error("shown")

	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Format: FormatJSON, Output: &buf}))

	logger.With("request.id", "abc").WithGroup("pipeline").Info("done", "kind", "questions")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output %q is not JSON: %v", buf.String(), err)
	}
	if got["request.id"] != "abc" {
		t.Errorf("request.id = %v", got["request.id"])
	}
	if got["pipeline.kind"] != "questions" {
		t.Errorf("pipeline.kind = %v, want grouped key", got["pipeline.kind"])
	}
}

func TestHandler_GroupQualification(t *testing.T) {
	tests := []struct {
		name string
		log  func(*slog.Logger)
		want map[string]any
	}{
		{
			name: "attrs before group stay top level",
			log: func(l *slog.Logger) {
				l.With("request.id", "abc").WithGroup("pipeline").Info("done", "kind", "questions")
			},
			want: map[string]any{"request.id": "abc", "pipeline.kind": "questions"},
		},
		{
			name: "attrs take the groups open when added",
			log: func(l *slog.Logger) {
				l.WithGroup("pipeline").With("strategy", "direct").WithGroup("extract").Info("done", "records", 3)
			},
			want: map[string]any{"pipeline.strategy": "direct", "pipeline.extract.records": float64(3)},
		},
		{
			name: "group values are flattened",
			log: func(l *slog.Logger) {
				l.Info("done", slog.Group("stage", "name", "extract", "failures", 2))
			},
			want: map[string]any{"stage.name": "extract", "stage.failures": float64(2)},
		},
		{
			name: "empty-keyed group is inlined",
			log: func(l *slog.Logger) {
				l.WithGroup("pipeline").Info("done", slog.Group("", "kind", "lessonplan"))
			},
			want: map[string]any{"pipeline.kind": "lessonplan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandler(&HandlerOptions{Format: FormatJSON, Output: &buf})))

			var got map[string]any
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("output %q is not JSON: %v", buf.String(), err)
			}
			for key, want := range tt.want {
				if got[key] != want {
					t.Errorf("%s = %v, want %v (output %s)", key, got[key], want, buf.String())
				}
			}
			if _, ok := got["stage"]; ok {
				t.Errorf("group value left unflattened: %s", buf.String())
			}
		})
	}
}

func TestHandler_EmptyGroupDropped(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&HandlerOptions{Output: &buf}))

	logger.Info("done", slog.Group("empty"))

	if out := buf.String(); strings.Contains(out, "empty") || strings.Contains(out, " → ") {
		t.Errorf("output = %q, want no attributes", out)
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelInfo, "INFO"},
		{slog.LevelWarn, "WARN"},
		{slog.LevelError, "ERROR"},
		{slog.LevelError + 4, "ERROR"},
	}

	for _, tt := range tests {
		if got := levelString(tt.level); got != tt.want {
			t.Errorf("levelString(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
