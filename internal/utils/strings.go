package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// DefaultMaxStringLength is the default maximum length for truncated strings.
const DefaultMaxStringLength = 500

// JSONToString serializes object as JSON, pretty-printed with two-space
// indentation when indent is true. HTML characters are not escaped, so math
// such as "a<b" survives. On failure it returns a JSON-formatted error
// string rather than panicking.
func JSONToString(object any, indent ...bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if len(indent) > 0 && indent[0] {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(object); err != nil {
		return JSONToString(map[string]string{"error": "failed to marshal to JSON: " + err.Error()})
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}

// TruncateString shortens s to at most maxLen bytes without splitting a
// rune, appending a suffix with the original length. A maxLen of zero or
// less means DefaultMaxStringLength.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:cut], len(s))
}
