// Package slogobs implements observability.Provider on log/slog.
//
// Spans, counters and histograms are reported as debug-level log records;
// counter totals are also kept in memory and can be read back with
// [Observer.CounterValue]. Output goes through [Handler], which writes
// either a compact single-line format or JSON. Defaults come from the
// QGEN_LOG_FORMAT and QGEN_LOG_LEVEL environment variables and can be
// overridden with [WithFormat], [WithLevel], [WithOutput] and [WithLogger].
package slogobs
