// Package lessonplan recovers lesson-plan sections from model output.
//
// Three shapes are understood:
//
//	{"sections": [{"title": "...", "content": "..."}]}
//	[{"title": "...", "content": "..."}]
//	{"Objectives": "...", "Activities": ["...", "..."]}
//
// The flat form keeps the key order of the source text. Content given as an
// array becomes a markdown bullet list. Every title and content string is
// passed through [display.Protect].
package lessonplan

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/display"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/normalize"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/parse"
	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/question"
)

var (
	titleKeys   = []string{"title", "heading", "name"}
	contentKeys = []string{"content", "body", "text", "description"}
)

// Section is one titled block of a lesson plan.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// LessonPlan is an ordered list of sections.
type LessonPlan struct {
	Sections []Section `json:"sections"`
}

// IsEmpty reports whether nothing was recovered.
func (p LessonPlan) IsEmpty() bool {
	return len(p.Sections) == 0
}

// Extract decodes sanitized text into a lesson plan. It never fails:
// unusable input yields an empty plan.
func Extract(text string) LessonPlan {
	plan, _ := ExtractWithOutcome(text)
	return plan
}

// ExtractWithOutcome is [Extract] plus the decoding report.
func ExtractWithOutcome(text string) (LessonPlan, parse.Outcome) {
	plan := LessonPlan{Sections: []Section{}}

	v, outcome, ok := parse.Decode(text, isPlanShape)
	if !ok {
		return plan, outcome
	}

	switch t := v.(type) {
	case []any:
		plan.Sections = fromArray(t)
	case map[string]any:
		if items, ok := t["sections"].([]any); ok {
			plan.Sections = fromArray(items)
			break
		}
		for _, key := range objectKeys(outcome.Candidate, t) {
			plan.Sections = appendSection(plan.Sections, key, t[key])
		}
	}
	return plan, outcome
}

func isPlanShape(v any) bool {
	switch t := v.(type) {
	case []any:
		return true
	case map[string]any:
		return len(t) > 0
	default:
		return false
	}
}

func fromArray(items []any) []Section {
	sections := make([]Section, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rec := question.Record(m)
		title, _ := rec.First(titleKeys...)
		content, _ := rec.First(contentKeys...)
		sections = appendSection(sections, normalize.Text(title), content)
	}
	return sections
}

func appendSection(sections []Section, title string, content any) []Section {
	s := Section{
		Title:   display.Protect(strings.TrimSpace(title)),
		Content: display.Protect(contentText(content)),
	}
	if s.Title == "" && s.Content == "" {
		return sections
	}
	return append(sections, s)
}

// contentText renders section content. Arrays become bullet lists.
func contentText(v any) string {
	items, ok := v.([]any)
	if !ok {
		return strings.TrimSpace(normalize.Text(v))
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(normalize.Text(item)); s != "" {
			lines = append(lines, "- "+s)
		}
	}
	return strings.Join(lines, "\n")
}

// objectKeys returns the keys of the top-level object in candidate in source
// order. When the candidate cannot be tokenized the keys of m are returned
// sorted.
func objectKeys(candidate string, m map[string]any) []string {
	keys, err := sourceOrder(candidate)
	if err != nil || len(keys) != len(m) {
		keys = make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
	}
	return keys
}

func sourceOrder(candidate string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys, nil
}
