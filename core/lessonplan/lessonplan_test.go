package lessonplan

import (
	"reflect"
	"testing"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/core/parse"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Section
	}{
		{
			name:  "empty",
			input: "",
			want:  []Section{},
		},
		{
			name:  "prose",
			input: "I could not write a lesson plan.",
			want:  []Section{},
		},
		{
			name:  "sections envelope",
			input: `{"sections":[{"title":"Warm-up","content":"Review $x^2$ quickly."},{"title":"Practice","content":"Costs $5 each."}]}`,
			want: []Section{
				{Title: "Warm-up", Content: "Review $x^2$ quickly."},
				{Title: "Practice", Content: "Costs &#36;5 each."},
			},
		},
		{
			name:  "array of sections with alias keys",
			input: `[{"heading":"Goal","body":"Understand force."},{"note":"no title or content"}]`,
			want: []Section{
				{Title: "Goal", Content: "Understand force."},
			},
		},
		{
			name:  "flat object keeps source order",
			input: `{"Objectives":"Define inertia.","Activities":["Push a cart","Drop a ball"],"Assessment":"Exit ticket."}`,
			want: []Section{
				{Title: "Objectives", Content: "Define inertia."},
				{Title: "Activities", Content: "- Push a cart\n\n- Drop a ball"},
				{Title: "Assessment", Content: "Exit ticket."},
			},
		},
		{
			name:  "wrapped in prose",
			input: "Here is the plan:\n{\"Zeta\":\"last letter\",\"Alpha\":\"first letter\"}\nEnjoy!",
			want: []Section{
				{Title: "Zeta", Content: "last letter"},
				{Title: "Alpha", Content: "first letter"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.input)
			if !reflect.DeepEqual(got.Sections, tt.want) {
				t.Errorf("Sections = %#v\nwant %#v", got.Sections, tt.want)
			}
			if got.IsEmpty() != (len(tt.want) == 0) {
				t.Errorf("IsEmpty() = %v", got.IsEmpty())
			}
		})
	}
}

func TestExtract_Truncated(t *testing.T) {
	plan, outcome := ExtractWithOutcome(`{"sections":[{"title":"Intro","content":"Forces act on`)
	if outcome.Strategy != parse.StrategyRepair {
		t.Errorf("Strategy = %q, want %q", outcome.Strategy, parse.StrategyRepair)
	}
	if len(plan.Sections) != 1 || plan.Sections[0].Title != "Intro" {
		t.Errorf("Sections = %#v", plan.Sections)
	}
}

func TestSourceOrder(t *testing.T) {
	keys, err := sourceOrder(`{"b":1,"a":{"x":[1,2]},"c":"s","b":2}`)
	if err != nil {
		t.Fatalf("sourceOrder() error = %v", err)
	}
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
}
