package parse

import (
	"encoding/json"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantCount    int
		wantStrategy Strategy
	}{
		{
			name:         "empty input",
			input:        "",
			wantCount:    0,
			wantStrategy: StrategyNone,
		},
		{
			name:         "prose without json",
			input:        "I'm sorry, I can't generate questions about that topic.",
			wantCount:    0,
			wantStrategy: StrategyNone,
		},
		{
			name:         "plain array",
			input:        `[{"type":"short-answer","question":"a"},{"type":"short-answer","question":"b"}]`,
			wantCount:    2,
			wantStrategy: StrategyDirect,
		},
		{
			name:         "empty array",
			input:        `[]`,
			wantCount:    0,
			wantStrategy: StrategyDirect,
		},
		{
			name:         "questions envelope",
			input:        `{"questions":[{"question":"a"}],"meta":{"count":1}}`,
			wantCount:    1,
			wantStrategy: StrategyDirect,
		},
		{
			name:         "single question object",
			input:        `{"type":"true-false","question":"Sky is blue","correctAnswer":"True"}`,
			wantCount:    1,
			wantStrategy: StrategyDirect,
		},
		{
			name:         "array wrapped in prose",
			input:        "Here are your questions:\n\n[{\"type\":\"multiple-choice\",\"question\":\"2+2?\"}]\n\nHope this helps!",
			wantCount:    1,
			wantStrategy: StrategyBracket,
		},
		{
			name:         "object wrapped in prose",
			input:        "Sure! {\"type\":\"short-answer\",\"question\":\"Define force\"} Let me know.",
			wantCount:    1,
			wantStrategy: StrategyBracket,
		},
		{
			name:         "greedy span spoiled by earlier brackets",
			input:        "See {note: draft} below.\n{\"questions\":[{\"question\":\"x\"}]}\nDone.",
			wantCount:    1,
			wantStrategy: StrategyBalanced,
		},
		{
			name:         "truncated output",
			input:        `[{"type":"short-answer","question":"What is inertia?","answer":"Resistance to change`,
			wantCount:    1,
			wantStrategy: StrategyRepair,
		},
		{
			name:         "object without question shape",
			input:        `{"message":"no questions today"}`,
			wantCount:    0,
			wantStrategy: StrategyNone,
		},
		{
			name:         "scalar elements are skipped",
			input:        `[1, "two", {"question":"three"}, [4]]`,
			wantCount:    1,
			wantStrategy: StrategyDirect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, outcome := ExtractWithOutcome(tt.input)
			if got == nil {
				t.Fatal("ExtractWithOutcome() returned nil slice, want empty")
			}
			if len(got) != tt.wantCount {
				t.Errorf("len(records) = %d, want %d", len(got), tt.wantCount)
			}
			if outcome.Strategy != tt.wantStrategy {
				t.Errorf("Strategy = %q, want %q (failures: %v)", outcome.Strategy, tt.wantStrategy, outcome.Failures)
			}
		})
	}
}

func TestExtract_KeepsFieldValues(t *testing.T) {
	records := Extract(`[{"type":"multiple-choice","question":"2+2=?","options":["A) 3","B) 4"],"correctAnswer":"B","points":2.50}]`)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	rec := records[0]

	if rec["question"] != "2+2=?" {
		t.Errorf("question = %v", rec["question"])
	}
	opts, ok := rec["options"].([]any)
	if !ok || len(opts) != 2 || opts[1] != "B) 4" {
		t.Errorf("options = %#v", rec["options"])
	}
	num, ok := rec["points"].(json.Number)
	if !ok || num.String() != "2.50" {
		t.Errorf("points = %#v, want json.Number 2.50", rec["points"])
	}
}

func TestExtract_UnwrapsSchemaValues(t *testing.T) {
	records := Extract(`[{"type":"short-answer","question":{"type":"string","value":"Name a prime"},"answer":{"type":"integer","value":7}}]`)
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
	if records[0]["type"] != "short-answer" {
		t.Errorf("type = %v, record-level type must not be unwrapped", records[0]["type"])
	}
	if records[0]["question"] != "Name a prime" {
		t.Errorf("question = %#v", records[0]["question"])
	}
	if n, ok := records[0]["answer"].(json.Number); !ok || n.String() != "7" {
		t.Errorf("answer = %#v", records[0]["answer"])
	}
}

func TestDecode_CustomAccept(t *testing.T) {
	onlyObjects := func(v any) bool {
		_, ok := v.(map[string]any)
		return ok
	}

	v, outcome, ok := Decode(`noise [1,2] then {"title":"Intro"} end`, onlyObjects)
	if !ok {
		t.Fatalf("Decode() failed: %v", outcome.Failures)
	}
	m, _ := v.(map[string]any)
	if m["title"] != "Intro" {
		t.Errorf("value = %#v", v)
	}
	if outcome.Candidate != `{"title":"Intro"}` {
		t.Errorf("Candidate = %q", outcome.Candidate)
	}
	if len(outcome.Failures) != 2 {
		t.Errorf("Failures = %d, want 2 (direct, bracket)", len(outcome.Failures))
	}
}

func TestMatchingClose(t *testing.T) {
	tests := []struct {
		text  string
		start int
		want  int
	}{
		{`[1,[2],3]`, 0, 8},
		{`{"a":"}"}`, 0, 8},
		{`{"a":"\"}"}`, 0, 10},
		{`[1,2`, 0, -1},
		{`x [] y`, 2, 3},
	}

	for _, tt := range tests {
		if got := matchingClose(tt.text, tt.start); got != tt.want {
			t.Errorf("matchingClose(%q, %d) = %d, want %d", tt.text, tt.start, got, tt.want)
		}
	}
}

func TestIsQuestionShape(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"array", []any{}, true},
		{"questions envelope", map[string]any{"questions": []any{}}, true},
		{"questions not array", map[string]any{"questions": "none"}, false},
		{"type and question", map[string]any{"type": "x", "question": "y"}, true},
		{"question only", map[string]any{"question": "y"}, false},
		{"string", "text", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isQuestionShape(tt.v); got != tt.want {
				t.Errorf("isQuestionShape() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecursiveUnwrap(t *testing.T) {
	in := map[string]any{
		"name":  map[string]any{"type": "string", "value": "John"},
		"tags":  []any{map[string]any{"type": "string", "value": "a"}},
		"inner": map[string]any{"type": "x", "value": 1, "extra": true},
	}

	got, _ := recursiveUnwrap(in).(map[string]any)
	if got["name"] != "John" {
		t.Errorf("name = %#v", got["name"])
	}
	if tags, _ := got["tags"].([]any); len(tags) != 1 || tags[0] != "a" {
		t.Errorf("tags = %#v", got["tags"])
	}
	if _, ok := got["inner"].(map[string]any); !ok {
		t.Errorf("inner with extra keys must stay a map, got %#v", got["inner"])
	}
}
