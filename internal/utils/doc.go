// Package utils holds small helpers shared by the pipeline packages: JSON
// rendering of leftover values, truncation of raw model text for logs, and
// a stopwatch for stage timings.
package utils
