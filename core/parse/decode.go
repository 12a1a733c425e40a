package parse

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// maxBalancedCandidates caps the spans tried by decodeBalancedSpans so that
// bracket-heavy prose stays linear in practice.
const maxBalancedCandidates = 64

var bracketSpanRE = regexp.MustCompile(`(?s)\[.*\]|\{.*\}`)

// decodeJSON decodes exactly one JSON value from content. Numbers are kept
// as json.Number so their textual form survives normalization.
func decodeJSON(content string) (any, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errEmpty
	}
	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errTrailingData
	}
	return v, nil
}

func accepted(v any, accept Accept) error {
	if accept != nil && !accept(v) {
		return errUnknownShape
	}
	return nil
}

func decodeDirect(text string, accept Accept) (any, string, error) {
	v, err := decodeJSON(text)
	if err != nil {
		return nil, "", err
	}
	if err := accepted(v, accept); err != nil {
		return nil, "", err
	}
	return v, text, nil
}

// decodeBracketSpan decodes the first greedy [...] or {...} substring.
func decodeBracketSpan(text string, accept Accept) (any, string, error) {
	span := bracketSpanRE.FindString(text)
	if span == "" {
		return nil, "", errNoBracketSpan
	}
	v, err := decodeJSON(span)
	if err != nil {
		return nil, "", err
	}
	if err := accepted(v, accept); err != nil {
		return nil, "", err
	}
	return v, span, nil
}

// decodeBalancedSpans walks every opening bracket and decodes the span up to
// its matching close, skipping brackets inside string literals.
func decodeBalancedSpans(text string, accept Accept) (any, string, error) {
	tried := 0
	for start := 0; start < len(text) && tried < maxBalancedCandidates; start++ {
		if text[start] != '[' && text[start] != '{' {
			continue
		}
		end := matchingClose(text, start)
		if end < 0 {
			continue
		}
		tried++
		span := text[start : end+1]
		v, err := decodeJSON(span)
		if err != nil || accepted(v, accept) != nil {
			continue
		}
		return v, span, nil
	}
	return nil, "", errNoBalancedSpan
}

// matchingClose returns the index of the bracket closing the one at start,
// or -1 when the text ends first.
func matchingClose(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// decodeRepaired hands the text from the first bracket onward to jsonrepair,
// which closes truncated arrays, objects and strings. Text without any
// bracket is never repaired: there is nothing structured to recover.
func decodeRepaired(text string, accept Accept) (any, string, error) {
	start := strings.IndexAny(text, "[{")
	if start < 0 {
		return nil, "", errNoBracketSpan
	}
	repaired, err := jsonrepair.JSONRepair(text[start:])
	if err != nil {
		return nil, "", fmt.Errorf("failed to repair JSON: %w", err)
	}
	v, err := decodeJSON(repaired)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode repaired JSON: %w", err)
	}
	if err := accepted(v, accept); err != nil {
		return nil, "", err
	}
	return v, repaired, nil
}

// recursiveUnwrap replaces schema-like {"type": ..., "value": ...} wrappers
// with their value. Models produce these when they confuse a JSON schema
// with the data it describes.
//
// Example input:
//
//	{"text": {"type": "string", "value": "Paris"}}
//
// Example output:
//
//	{"text": "Paris"}
func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if _, hasType := v["type"]; hasType {
			if value, hasValue := v["value"]; hasValue && len(v) == 2 {
				return recursiveUnwrap(value)
			}
		}
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = recursiveUnwrap(val)
		}
		return result

	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = recursiveUnwrap(val)
		}
		return result

	default:
		return data
	}
}
