package slogobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/providers/observability"
)

// Observer implements observability.Provider on a slog.Logger.
type Observer struct {
	logger *slog.Logger

	mu       sync.Mutex
	counters map[string]*counter
}

var _ observability.Provider = (*Observer)(nil)

// New creates an Observer. Without options the format and level come from
// the environment, and logs go to stderr.
//
//	observer := slogobs.New(
//	    slogobs.WithFormat(slogobs.FormatJSON),
//	    slogobs.WithLevel(slog.LevelDebug),
//	)
func New(opts ...Option) *Observer {
	cfg := applyOptions(opts...)

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(NewHandler(&HandlerOptions{
			Format: cfg.format,
			Level:  cfg.level,
			Output: cfg.output,
			Colors: cfg.colors,
		}))
	}
	return &Observer{
		logger:   logger,
		counters: make(map[string]*counter),
	}
}

// Logger returns the underlying slog.Logger.
func (o *Observer) Logger() *slog.Logger {
	return o.logger
}

// --- TRACING ---

// StartSpan logs the span start at debug level and returns ctx carrying the
// new span.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	s := &span{
		name:   name,
		start:  time.Now(),
		logger: o.logger,
		attrs:  append([]observability.Attribute{}, attrs...),
	}
	o.logger.LogAttrs(ctx, slog.LevelDebug, "Span started", s.logAttrs("span.start", attrs)...)
	return observability.ContextWithSpan(ctx, s), s
}

type span struct {
	name   string
	start  time.Time
	logger *slog.Logger

	mu    sync.Mutex
	attrs []observability.Attribute
}

func (s *span) logAttrs(event string, attrs []observability.Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+2)
	out = append(out, slog.String("span", s.name), slog.String("event", event))
	return append(out, toSlog(attrs)...)
}

// End logs the span end with its duration and accumulated attributes.
func (s *span) End() {
	s.mu.Lock()
	attrs := append([]observability.Attribute{
		observability.Duration(observability.AttrDuration, time.Since(s.start)),
	}, s.attrs...)
	s.mu.Unlock()

	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span ended", s.logAttrs("span.end", attrs)...)
}

func (s *span) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *span) SetStatus(code observability.StatusCode, description string) {
	attrs := []observability.Attribute{observability.String(observability.AttrStatus, code.String())}
	if description != "" {
		attrs = append(attrs, observability.String(observability.AttrStatusDescription, description))
	}
	s.SetAttributes(attrs...)
}

// RecordError attaches err to the span and logs it at error level.
func (s *span) RecordError(err error) {
	if err == nil {
		return
	}
	attr := observability.Error(err)
	s.SetAttributes(attr)
	s.logger.LogAttrs(context.Background(), slog.LevelError, "Span error", s.logAttrs("error", []observability.Attribute{attr})...)
}

// AddEvent logs a named event on the span at debug level.
func (s *span) AddEvent(name string, attrs ...observability.Attribute) {
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "Span event", s.logAttrs(name, attrs)...)
}

// --- METRICS ---

// Counter returns the named counter, creating it on first use.
func (o *Observer) Counter(name string) observability.Counter {
	o.mu.Lock()
	defer o.mu.Unlock()
	c, ok := o.counters[name]
	if !ok {
		c = &counter{name: name, logger: o.logger}
		o.counters[name] = c
	}
	return c
}

// CounterValue returns the running total of the named counter, or zero.
func (o *Observer) CounterValue(name string) int64 {
	o.mu.Lock()
	c, ok := o.counters[name]
	o.mu.Unlock()
	if !ok {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Histogram returns a histogram that logs every observation.
func (o *Observer) Histogram(name string) observability.Histogram {
	return histogram{name: name, logger: o.logger}
}

type counter struct {
	name   string
	logger *slog.Logger

	mu    sync.Mutex
	value int64
}

func (c *counter) Add(ctx context.Context, value int64, attrs ...observability.Attribute) {
	c.mu.Lock()
	c.value += value
	total := c.value
	c.mu.Unlock()

	logAttrs := []slog.Attr{
		slog.String("metric", c.name),
		slog.String("type", "counter"),
		slog.Int64("value", total),
		slog.Int64("delta", value),
	}
	c.logger.LogAttrs(ctx, slog.LevelDebug, "Counter", append(logAttrs, toSlog(attrs)...)...)
}

type histogram struct {
	name   string
	logger *slog.Logger
}

func (h histogram) Record(ctx context.Context, value float64, attrs ...observability.Attribute) {
	logAttrs := []slog.Attr{
		slog.String("metric", h.name),
		slog.String("type", "histogram"),
		slog.Float64("value", value),
	}
	h.logger.LogAttrs(ctx, slog.LevelDebug, "Histogram", append(logAttrs, toSlog(attrs)...)...)
}

// --- LOGGING ---

// Trace logs below debug level; it is only visible with QGEN_LOG_LEVEL=TRACE.
func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, LevelTrace, msg, toSlog(attrs)...)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelDebug, msg, toSlog(attrs)...)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, msg, toSlog(attrs)...)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelWarn, msg, toSlog(attrs)...)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.logger.LogAttrs(ctx, slog.LevelError, msg, toSlog(attrs)...)
}

func toSlog(attrs []observability.Attribute) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, slog.Any(attr.Key, attr.Value))
	}
	return out
}
