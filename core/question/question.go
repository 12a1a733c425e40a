// Package question defines the records that flow through the recovery
// pipeline: the loosely-shaped [Record] decoded from model output and the
// canonical, render-safe [Question] returned to callers.
package question

import "strings"

// Record is a raw question object as decoded from model output. Field values
// keep their JSON shapes (string, json.Number, bool, []any, map[string]any).
type Record map[string]any

// Has reports whether key is present with a non-null value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// First returns the value of the first present key, in order.
func (r Record) First(keys ...string) (any, bool) {
	for _, k := range keys {
		if r.Has(k) {
			return r[k], true
		}
	}
	return nil, false
}

// Question is the canonical question entity.
//
// Options is empty unless Type is [TypeMultipleChoice]. CorrectAnswer is
// always a single string; multi-value answers are joined with newlines.
// CorrectAnswerLetter is set only for multiple-choice questions whose
// CorrectAnswer opens with a standalone option letter such as "B" or
// "b) 4"; a short answer of "x" carries no letter.
type Question struct {
	Type                string   `json:"type"`
	Question            string   `json:"question"`
	Options             []string `json:"options"`
	CorrectAnswer       string   `json:"correctAnswer"`
	CorrectAnswerLetter string   `json:"correctAnswerLetter,omitempty"`
	Explanation         string   `json:"explanation"`
}

// IsMultipleChoice reports whether q carries structured options.
func (q Question) IsMultipleChoice() bool {
	return q.Type == string(TypeMultipleChoice)
}

// Type is a canonical question type tag.
type Type string

const (
	TypeMultipleChoice Type = "multiple-choice"
	TypeTrueFalse      Type = "true-false"
	TypeShortAnswer    Type = "short-answer"
	TypeLongAnswer     Type = "long-answer"
	TypeFillInBlank    Type = "fill-in-the-blank"
)

var typeAliases = map[string]Type{
	"multiple-choice":   TypeMultipleChoice,
	"multiple_choice":   TypeMultipleChoice,
	"multiplechoice":    TypeMultipleChoice,
	"multiple choice":   TypeMultipleChoice,
	"mcq":               TypeMultipleChoice,
	"true-false":        TypeTrueFalse,
	"true_false":        TypeTrueFalse,
	"truefalse":         TypeTrueFalse,
	"true/false":        TypeTrueFalse,
	"true or false":     TypeTrueFalse,
	"tf":                TypeTrueFalse,
	"boolean":           TypeTrueFalse,
	"short-answer":      TypeShortAnswer,
	"short_answer":      TypeShortAnswer,
	"shortanswer":       TypeShortAnswer,
	"short answer":      TypeShortAnswer,
	"long-answer":       TypeLongAnswer,
	"long_answer":       TypeLongAnswer,
	"longanswer":        TypeLongAnswer,
	"long answer":       TypeLongAnswer,
	"essay":             TypeLongAnswer,
	"fill-in-the-blank": TypeFillInBlank,
	"fill_in_the_blank": TypeFillInBlank,
	"fillintheblank":    TypeFillInBlank,
	"fill in the blank": TypeFillInBlank,
	"fill-in-blank":     TypeFillInBlank,
}

// ParseType maps a type tag as written by a model to its canonical form.
// Unknown tags are returned trimmed and lower-cased.
func ParseType(tag string) Type {
	key := strings.ToLower(strings.TrimSpace(tag))
	if t, ok := typeAliases[key]; ok {
		return t
	}
	return Type(key)
}
