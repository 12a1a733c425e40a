package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Handler is a slog.Handler writing the compact or JSON format.
type Handler struct {
	format Format
	level  slog.Level
	output io.Writer
	colors bool
	mu     *sync.Mutex
	// fields holds WithAttrs attributes, already qualified by the groups
	// open when they were added.
	fields []field
	groups []string
}

type field struct {
	key   string
	value any
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	Format Format
	Level  slog.Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Colors applies to the compact format only.
	Colors bool
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	h := &Handler{
		format: opts.Format,
		level:  opts.Level,
		output: opts.Output,
		colors: opts.Colors && opts.Format != FormatJSON,
		mu:     &sync.Mutex{},
	}
	if h.output == nil {
		h.output = os.Stderr
	}
	if h.format == "" {
		h.format = FormatCompact
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats and writes a log record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var line []byte
	var err error
	if h.format == FormatJSON {
		line, err = h.encodeJSON(r)
	} else {
		line, err = h.encodeCompact(r)
	}
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.output.Write(line)
	return err
}

// WithAttrs returns a new Handler with additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.fields = append([]field{}, h.fields...)
	prefix := h.prefix()
	for _, attr := range attrs {
		clone.fields = appendField(clone.fields, prefix, attr)
	}
	return &clone
}

// WithGroup returns a new Handler whose attribute keys are prefixed by name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (h *Handler) encodeCompact(r slog.Record) ([]byte, error) {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')

	level := fmt.Sprintf("%5s", levelString(r.Level))
	if h.colors {
		level = colorForLevel(r.Level) + level + colorReset
	}
	buf = append(buf, level...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	if attrs := h.collectAttrs(r); len(attrs) > 0 {
		encoded, err := json.Marshal(attrs)
		if err != nil {
			return nil, err
		}
		buf = append(buf, " → "...)
		buf = append(buf, encoded...)
	}
	return append(buf, '\n'), nil
}

func (h *Handler) encodeJSON(r slog.Record) ([]byte, error) {
	data := h.collectAttrs(r)
	data["time"] = r.Time.Format("2006-01-02T15:04:05.000Z07:00")
	data["level"] = levelString(r.Level)
	data["msg"] = r.Message

	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(encoded, '\n'), nil
}

// collectAttrs merges handler and record attributes into one map. Record
// attributes are qualified by every open group.
func (h *Handler) collectAttrs(r slog.Record) map[string]any {
	fields := make([]field, 0, len(h.fields)+r.NumAttrs())
	fields = append(fields, h.fields...)
	prefix := h.prefix()
	r.Attrs(func(attr slog.Attr) bool {
		fields = appendField(fields, prefix, attr)
		return true
	})

	attrs := make(map[string]any, len(fields))
	for _, f := range fields {
		attrs[f.key] = f.value
	}
	return attrs
}

func (h *Handler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// appendField flattens attr into dotted keys. Group values contribute one
// field per member; an empty-keyed group is inlined and an empty group is
// dropped.
func appendField(fields []field, prefix string, attr slog.Attr) []field {
	v := attr.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		members := v.Group()
		if len(members) == 0 {
			return fields
		}
		if attr.Key != "" {
			prefix += attr.Key + "."
		}
		for _, m := range members {
			fields = appendField(fields, prefix, m)
		}
		return fields
	}
	if attr.Key == "" && v.Any() == nil {
		return fields
	}

	value := v.Any()
	switch t := value.(type) {
	case error:
		value = t.Error()
	case fmt.Stringer:
		value = t.String()
	}
	return append(fields, field{key: prefix + attr.Key, value: value})
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return "TRACE"
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorForLevel(level slog.Level) string {
	switch {
	case level < slog.LevelDebug:
		return colorGray
	case level < slog.LevelInfo:
		return colorBlue
	case level < slog.LevelWarn:
		return colorGreen
	case level < slog.LevelError:
		return colorYellow
	default:
		return colorRed
	}
}
