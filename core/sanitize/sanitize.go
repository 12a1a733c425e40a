// Package sanitize repairs raw model output toward syntactically valid JSON.
//
// Models wrap their JSON in code fences, leave continuation backslashes at
// line ends, write LaTeX with single backslashes, and leave trailing commas
// behind. [Sanitize] undoes those habits without ever failing: every repair
// that does not apply is skipped and a string is always returned.
//
// Sanitize is idempotent. The repairs are run to a fixed point, so feeding
// its output back in returns the same text.
package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/placeholder"
)

// maxPasses bounds the fixed-point loop. Each pass only shrinks the text or
// moves escapes into a form later passes leave alone, so two or three passes
// are enough in practice.
const maxPasses = 8

var (
	openFenceRE  = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\r?\n?")
	closeFenceRE = regexp.MustCompile("\r?\n?[ \t]*```$")

	continuationRE      = regexp.MustCompile(`\\+[ \t]*(\r?\n)`)
	trailingBackslashRE = regexp.MustCompile(`\\+$`)

	// validEscapeRE matches escapes that already decode correctly. The
	// alternatives are tried left to right at each position:
	// escaped dollar, an escaped LaTeX command with an optional argument,
	// an escaped backslash, a quote or solidus escape, a unicode escape,
	// and a control escape with the letters glued to it. When those letters
	// spell a LaTeX command (\frac, \times, \nabla) the match is a
	// single-backslash command instead and is filtered out by isValidEscape.
	validEscapeRE = regexp.MustCompile(`\\\\\$|\\\\[A-Za-z]+(?:\{[^{}\\]*\})?|\\\\|\\["/]|\\u[0-9A-Fa-f]{4}|\\[bfnrt][A-Za-z]*`)

	dollarEscapeRE  = regexp.MustCompile(`\\+\$`)
	trailingCommaRE = regexp.MustCompile(`,\s*([}\]])`)

	// interiorQuotesRE finds a quoted value holding exactly one unescaped
	// quoted phrase: "key": "what is "this" here", ...
	interiorQuotesRE = regexp.MustCompile(`(:\s*")((?:[^"\\\n{}\[\]]|\\.)*)"((?:[^"\\\n{}\[\]]|\\.)*)"((?:[^"\\\n{}\[\]]|\\.)*)("\s*[,}\]])`)
)

// Sanitize returns a best-effort repair of raw toward valid JSON.
func Sanitize(raw string) string {
	s := raw
	for i := 0; i < maxPasses; i++ {
		next := pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

func pass(s string) string {
	s = stripWrapping(s)
	s = stripContinuations(s)
	s = RepairEscapes(s)
	s = canonicalizeDollarEscapes(s)
	s = StripTrailingCommas(s)
	s = repairInteriorQuotes(s)
	return s
}

// stripWrapping trims whitespace, code fences and stray quote or backtick
// characters from both ends.
func stripWrapping(s string) string {
	for {
		before := s
		s = strings.TrimSpace(s)
		s = openFenceRE.ReplaceAllString(s, "")
		s = closeFenceRE.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
		if s != before {
			continue
		}
		// Fences are gone; only now drop stray quotes and backticks.
		s = strings.Trim(s, "\"'`")
		if s == before {
			return s
		}
	}
}

func stripContinuations(s string) string {
	s = continuationRE.ReplaceAllString(s, "$1")
	return trailingBackslashRE.ReplaceAllString(s, "")
}

// RepairEscapes doubles every backslash that does not start a valid JSON
// escape, leaving valid escapes and already-escaped LaTeX commands intact.
func RepairEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	set := placeholder.New("E")
	s = set.ProtectFunc(validEscapeRE, s, isValidEscape)
	s = strings.ReplaceAll(s, `\`, `\\`)
	return set.Restore(s)
}

func isValidEscape(m string) bool {
	if len(m) > 2 && strings.ContainsRune("bfnrt", rune(m[1])) {
		return !latexCommands[m[1:]]
	}
	return true
}

// latexCommands lists the LaTeX commands whose names begin with a JSON
// control-escape letter. Only these words turn "\t", "\n" and friends into
// a literal backslash; "Tab\there" keeps its tab.
var latexCommands = map[string]bool{
	// \b
	"backslash": true, "bar": true, "because": true, "begin": true, "beta": true,
	"bf": true, "big": true, "bigcap": true, "bigcup": true, "bigg": true,
	"binom": true, "bmod": true, "bot": true, "boxed": true, "breve": true,
	"bullet": true,
	// \f
	"fbox": true, "flat": true, "forall": true, "frac": true, "frown": true,
	// \n
	"nabla": true, "natural": true, "ne": true, "nearrow": true, "neg": true,
	"neq": true, "newline": true, "ngeq": true, "ni": true, "nleq": true,
	"nmid": true, "noindent": true, "not": true, "notin": true, "nparallel": true,
	"nu": true, "nwarrow": true,
	// \r
	"rangle": true, "rbrace": true, "rceil": true, "rfloor": true, "rho": true,
	"right": true, "rightarrow": true, "rightleftharpoons": true, "rm": true,
	"root": true, "rvert": true,
	// \t
	"tan": true, "tanh": true, "tau": true, "tbinom": true, "text": true,
	"textbf": true, "textit": true, "textrm": true, "texttt": true, "tfrac": true,
	"therefore": true, "theta": true, "tilde": true, "times": true, "to": true,
	"top": true, "triangle": true,
}

// canonicalizeDollarEscapes rewrites any run of backslashes before a dollar
// to exactly two, the JSON spelling of an escaped dollar.
func canonicalizeDollarEscapes(s string) string {
	return dollarEscapeRE.ReplaceAllString(s, `\\$$`)
}

// StripTrailingCommas removes commas that directly precede a closing brace
// or bracket.
func StripTrailingCommas(s string) string {
	for {
		next := trailingCommaRE.ReplaceAllString(s, "$1")
		if next == s {
			return s
		}
		s = next
	}
}

// repairInteriorQuotes escapes an unescaped quoted phrase inside a string
// value. It only runs when the text is not already valid JSON.
func repairInteriorQuotes(s string) string {
	if !strings.Contains(s, `"`) || json.Valid([]byte(s)) {
		return s
	}
	return interiorQuotesRE.ReplaceAllString(s, `$1$2\"$3\"$4$5`)
}
