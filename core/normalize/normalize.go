// Package normalize reshapes raw question records into canonical, render-safe
// [question.Question] values.
//
// Models disagree about field names and shapes from one call to the next:
// options arrive as arrays, as letter-keyed objects or as arrays of option
// objects; answers arrive as strings, arrays or objects. A [Normalizer]
// accepts all of them, drops records that carry neither a question nor an
// answer, and passes every text field through Unicode NFC composition and
// [display.Protect].
package normalize

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/display"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/question"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/utils"
)

// Field names accepted for each canonical field, in priority order.
var (
	questionKeys = []string{"question", "prompt"}
	optionKeys   = []string{"options", "choices"}
	answerKeys   = []string{"correctAnswer", "answer", "correct_answer"}
	requiredKeys = []string{"question", "prompt", "correctAnswer", "answer"}
)

// answerLetterRE matches a standalone leading option letter: "B", "b) 4",
// "C. Paris", "d: none". It does not match the "T" of "True".
var answerLetterRE = regexp.MustCompile(`^([A-Za-z])(?:[).:\s]|$)`)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithHTMLConversion enables converting HTML-looking fields to markdown
// before display protection.
func WithHTMLConversion(enabled bool) Option {
	return func(n *Normalizer) {
		n.convertHTML = enabled
	}
}

// Normalizer converts raw records into canonical questions. The zero value
// is ready to use. A Normalizer holds no mutable state and may be shared.
type Normalizer struct {
	convertHTML bool
}

// New creates a Normalizer with the given options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts records with a default Normalizer.
func Normalize(records []question.Record) []question.Question {
	return New().Normalize(records)
}

// Normalize converts records in order, dropping the unusable ones. The
// result is never nil.
func (n *Normalizer) Normalize(records []question.Record) []question.Question {
	out := make([]question.Question, 0, len(records))
	for _, rec := range records {
		if q, ok := n.Question(rec); ok {
			out = append(out, q)
		}
	}
	return out
}

// Question converts a single record. ok is false when the record has none of
// question, prompt, correctAnswer or answer.
func (n *Normalizer) Question(rec question.Record) (q question.Question, ok bool) {
	if !usable(rec) {
		return question.Question{}, false
	}

	q.Type = string(question.ParseType(Text(rec["type"])))
	if v, found := rec.First(questionKeys...); found {
		q.Question = n.text(Text(v))
	}
	if v, found := rec.First("explanation"); found {
		q.Explanation = n.text(Text(v))
	}

	q.Options = []string{}
	if q.IsMultipleChoice() {
		if v, found := rec.First(optionKeys...); found {
			for _, opt := range options(v) {
				q.Options = append(q.Options, n.text(opt))
			}
		}
	}

	if v, found := rec.First(answerKeys...); found {
		answer, letter := correctAnswer(v)
		q.CorrectAnswer = n.text(answer)
		if q.IsMultipleChoice() {
			q.CorrectAnswerLetter = letter
		}
	}
	return q, true
}

// text prepares a field for display. Decomposed accents are composed (NFC)
// so the same answer always compares equal.
func (n *Normalizer) text(s string) string {
	s = norm.NFC.String(s)
	if n.convertHTML {
		s = display.FromHTML(s)
	}
	return display.Protect(s)
}

func usable(rec question.Record) bool {
	_, ok := rec.First(requiredKeys...)
	return ok
}

// options projects an options value to its string elements. Objects are
// read in key order, so {"A":..., "B":...} keeps its lettering.
func options(v any) []string {
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, optionText(item))
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]string, 0, len(keys))
		for _, k := range keys {
			out = append(out, optionText(t[k]))
		}
		return out
	case string:
		var out []string
		for _, line := range strings.Split(t, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out
	default:
		return nil
	}
}

// optionText reads one option element. Option objects contribute their
// "text" property when it is a string.
func optionText(v any) string {
	if m, ok := v.(map[string]any); ok {
		if s, ok := m["text"].(string); ok {
			return s
		}
		return utils.JSONToString(m)
	}
	return Text(v)
}

// correctAnswer flattens an answer value to one string. Only string answers
// yield an option letter; the caller keeps it for multiple-choice questions.
func correctAnswer(v any) (answer, letter string) {
	switch t := v.(type) {
	case string:
		answer = strings.TrimSpace(t)
		if m := answerLetterRE.FindStringSubmatch(answer); m != nil {
			letter = strings.ToUpper(m[1])
		}
		return answer, letter
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := strings.TrimSpace(Text(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "\n"), ""
	default:
		return strings.TrimSpace(Text(v)), ""
	}
}

// Text renders a decoded JSON value as text. Scalars keep their literal
// form; objects and arrays are serialized.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return utils.JSONToString(t)
	}
}
