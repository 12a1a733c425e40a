// Package observability defines the interfaces used for tracing, metrics and
// structured logging throughout the recovery pipeline.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics]
// and [Logger] into a single injectable dependency. A nil Provider disables
// observation entirely; callers check for nil before recording anything.
// A Provider and the active [Span] can travel through a [context.Context]
// with [ContextWithObserver] and [ContextWithSpan], and are read back with
// [ObserverFromContext] and [SpanFromContext].
//
// semconv.go holds the attribute keys, span names and metric names that
// every component records under.
package observability
