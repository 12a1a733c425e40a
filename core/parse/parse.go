package parse

import (
	"errors"
	"fmt"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/question"
)

// Strategy names the cascade attempt that produced a result.
type Strategy string

const (
	StrategyDirect   Strategy = "direct"
	StrategyBracket  Strategy = "bracket_span"
	StrategyBalanced Strategy = "balanced_span"
	StrategyRepair   Strategy = "repair"
	StrategyNone     Strategy = "none"
)

var (
	errEmpty          = errors.New("empty input")
	errNoBracketSpan  = errors.New("no bracket span found")
	errTrailingData   = errors.New("unexpected data after top-level value")
	errUnknownShape   = errors.New("decoded value has no recognizable shape")
	errNoBalancedSpan = errors.New("no balanced span decoded to a recognizable shape")
)

// Outcome describes how a cascade run ended.
type Outcome struct {
	// Strategy is the attempt that succeeded, or StrategyNone.
	Strategy Strategy
	// Candidate is the exact JSON text that was decoded.
	Candidate string
	// Failures holds one error per attempt that did not succeed, in order.
	Failures []error
}

// Accept reports whether a decoded value has a shape the caller can use.
type Accept func(v any) bool

type attempt struct {
	strategy Strategy
	run      func(text string, accept Accept) (any, string, error)
}

// cascade is tried in order; the first attempt that returns no error wins.
var cascade = []attempt{
	{StrategyDirect, decodeDirect},
	{StrategyBracket, decodeBracketSpan},
	{StrategyBalanced, decodeBalancedSpans},
	{StrategyRepair, decodeRepaired},
}

// Decode runs the cascade over text and returns the first decoded value that
// accept approves. ok is false when every attempt failed.
func Decode(text string, accept Accept) (value any, outcome Outcome, ok bool) {
	outcome.Strategy = StrategyNone
	for _, a := range cascade {
		v, candidate, err := a.run(text, accept)
		if err != nil {
			outcome.Failures = append(outcome.Failures, fmt.Errorf("%s: %w", a.strategy, err))
			continue
		}
		outcome.Strategy = a.strategy
		outcome.Candidate = candidate
		return v, outcome, true
	}
	return nil, outcome, false
}

// Extract returns the question records found in sanitized text, or an empty
// slice when nothing usable was recovered.
func Extract(text string) []question.Record {
	records, _ := ExtractWithOutcome(text)
	return records
}

// ExtractWithOutcome is [Extract] plus a report of which attempt won.
func ExtractWithOutcome(text string) ([]question.Record, Outcome) {
	v, outcome, ok := Decode(text, isQuestionShape)
	if !ok {
		return []question.Record{}, outcome
	}
	return toRecords(v), outcome
}

// isQuestionShape accepts an array, an object holding a "questions" array,
// or a single object exposing both "type" and "question".
func isQuestionShape(v any) bool {
	switch t := v.(type) {
	case []any:
		return true
	case map[string]any:
		if _, ok := t["questions"].([]any); ok {
			return true
		}
		rec := question.Record(t)
		return rec.Has("type") && rec.Has("question")
	default:
		return false
	}
}

func toRecords(v any) []question.Record {
	switch t := v.(type) {
	case []any:
		return recordsFromArray(t)
	case map[string]any:
		if qs, ok := t["questions"].([]any); ok {
			return recordsFromArray(qs)
		}
		return []question.Record{unwrapRecord(t)}
	default:
		return []question.Record{}
	}
}

// recordsFromArray keeps the object elements of items. Scalars and nested
// arrays cannot carry question fields and are skipped.
func recordsFromArray(items []any) []question.Record {
	records := make([]question.Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, unwrapRecord(m))
		}
	}
	return records
}

// unwrapRecord unwraps schema-style field values; the record itself is never
// unwrapped because question records legitimately carry a "type" key.
func unwrapRecord(m map[string]any) question.Record {
	rec := make(question.Record, len(m))
	for k, v := range m {
		rec[k] = recursiveUnwrap(v)
	}
	return rec
}
