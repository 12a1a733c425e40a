package display

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/placeholder"
)

// CurrencyEntity replaces a "$" that introduces an amount.
const CurrencyEntity = "&#36;"

var (
	bulletRE      = regexp.MustCompile(`(?m)^[ \t]*(?:[•●◦▪‣∙][ \t]*|[*+][ \t]+)`)
	newlineRunRE  = regexp.MustCompile(`\n+`)
	mathOperandRE = regexp.MustCompile(`[0-9A-Za-z][+\-*/=^_<>]|[+\-*/=^_<>][0-9A-Za-z]`)
)

// Protect normalizes a single text field for rendering. Math and table
// regions are returned untouched; see the package documentation for the
// rewrites applied everywhere else. Empty input is returned as is.
func Protect(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	math := placeholder.New("m")
	text = protectMath(math, text)

	text = strings.ReplaceAll(text, `\n`, "\n")

	tables := placeholder.New("t")
	text = protectTables(tables, text)

	text = convertCurrency(text)
	text = bulletRE.ReplaceAllString(text, "- ")
	text = normalizeBreaks(text)

	// Table blocks may hold math tokens, so they are expanded first.
	text = tables.Restore(text)
	return math.Restore(text)
}

// protectMath swaps display and inline math spans for tokens.
func protectMath(set *placeholder.Set, text string) string {
	if !strings.Contains(text, "$") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); {
		if text[i] != '$' || isEscaped(text, i) {
			b.WriteByte(text[i])
			i++
			continue
		}
		end := displayMathEnd(text, i)
		if end < 0 {
			end = inlineMathEnd(text, i)
		}
		if end < 0 {
			b.WriteByte('$')
			i++
			continue
		}
		b.WriteString(set.Token(text[i:end]))
		i = end
	}
	return b.String()
}

// displayMathEnd returns the index just past the "$$" closing the block that
// opens at i, or -1. Display math may span lines.
func displayMathEnd(text string, i int) int {
	if !strings.HasPrefix(text[i:], "$$") {
		return -1
	}
	j := strings.Index(text[i+2:], "$$")
	if j < 0 {
		return -1
	}
	if strings.TrimSpace(text[i+2:i+2+j]) == "" {
		return -1
	}
	return i + 2 + j + 2
}

// inlineMathEnd returns the index just past the "$" closing the inline span
// that opens at i, or -1. The opener must be followed by a non-space, the
// closer must be on the same line, preceded by a non-space and not followed
// by a digit, which rules out amounts such as "$5 and $10".
func inlineMathEnd(text string, i int) int {
	if i+1 >= len(text) || isSpace(text[i+1]) {
		return -1
	}
	j := strings.IndexAny(text[i+1:], "$\n")
	if j <= 0 {
		return -1
	}
	closer := i + 1 + j
	if text[closer] != '$' || isSpace(text[closer-1]) {
		return -1
	}
	if closer+1 < len(text) && isDigit(text[closer+1]) {
		return -1
	}
	if !looksLikeMath(text[i+1 : closer]) {
		return -1
	}
	return closer + 1
}

// looksLikeMath accepts digit-only content such as "103", and content with a
// letter, a LaTeX command, or an operator touching a digit or letter.
func looksLikeMath(content string) bool {
	digitsOnly := true
	for _, r := range content {
		if unicode.IsLetter(r) {
			return true
		}
		if r < '0' || r > '9' {
			digitsOnly = false
		}
	}
	return digitsOnly || mathOperandRE.MatchString(content)
}

// protectTables swaps every run of two or more consecutive lines containing
// a pipe for a single token.
func protectTables(set *placeholder.Set, text string) string {
	if !strings.Contains(text, "|") {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if !strings.Contains(lines[i], "|") {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && strings.Contains(lines[j], "|") {
			j++
		}
		if j-i >= 2 {
			out = append(out, set.Token(strings.Join(lines[i:j], "\n")))
		} else {
			out = append(out, lines[i])
		}
		i = j
	}
	return strings.Join(out, "\n")
}

// convertCurrency rewrites each unescaped "$" followed by a digit.
func convertCurrency(text string) string {
	if !strings.Contains(text, "$") {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '$' && !isEscaped(text, i) && i+1 < len(text) && isDigit(text[i+1]) {
			b.WriteString(CurrencyEntity)
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// normalizeBreaks trims trailing blanks from every line and turns each run
// of line breaks into exactly one blank line.
func normalizeBreaks(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	text = newlineRunRE.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text)
}

func isEscaped(text string, i int) bool {
	return i > 0 && text[i-1] == '\\'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
