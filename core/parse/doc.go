// Package parse recovers structured records from sanitized model output.
// Because language models wrap JSON in narrative prose, leave it truncated,
// or return a single object where a list was asked for, this package runs
// an ordered cascade of decoding attempts and keeps the first one whose
// result has a usable shape:
//
//  1. the whole text decoded as JSON;
//  2. the first greedy [...] or {...} span;
//  3. every balanced bracket span, left to right;
//  4. the text from the first bracket onward, repaired with jsonrepair.
//
// When every attempt fails the result is empty, never an error.
//
// The main entry point is [Extract], which returns question records. [Decode]
// exposes the same cascade with a caller-supplied shape check.
package parse
