package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	tax := Default()
	if tax != Default() {
		t.Error("Default() returned a different instance on second call")
	}
	if got := len(tax.Grades()); got != 13 {
		t.Errorf("len(Grades()) = %d, want 13", got)
	}
	levels := tax.BloomLevels()
	if len(levels) != 6 {
		t.Fatalf("len(BloomLevels()) = %d, want 6", len(levels))
	}
	if levels[0].ID != "remember" || levels[0].Order != 1 || levels[5].ID != "create" || levels[5].Order != 6 {
		t.Errorf("unexpected order: %+v", levels)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	tax := Default()

	grades := tax.Grades()
	grades[0].Label = "changed"
	levels := tax.BloomLevels()
	levels[0].Verbs[0] = "changed"

	if tax.Grades()[0].Label == "changed" {
		t.Error("Grades() exposed internal state")
	}
	if tax.BloomLevels()[0].Verbs[0] == "changed" {
		t.Error("BloomLevels() exposed internal state")
	}
}

func TestLookup(t *testing.T) {
	tax := Default()

	tests := []struct {
		name    string
		lookup  func() (string, error)
		want    string
		wantErr error
	}{
		{"grade by id", func() (string, error) { g, err := tax.LookupGrade("7"); return g.Label, err }, "Grade 7", nil},
		{"grade by label", func() (string, error) { g, err := tax.LookupGrade(" kindergarten "); return g.ID, err }, "k", nil},
		{"unknown grade", func() (string, error) { g, err := tax.LookupGrade("13"); return g.ID, err }, "", ErrUnknownGrade},
		{"bloom by id", func() (string, error) { l, err := tax.LookupBloomLevel("APPLY"); return l.Label, err }, "Apply", nil},
		{"unknown bloom", func() (string, error) { l, err := tax.LookupBloomLevel("memorize"); return l.ID, err }, "", ErrUnknownBloomLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.lookup()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"not yaml":        "grades: [",
		"no grades":       "bloom_levels: [{id: a}]",
		"no bloom levels": "grades: [{id: a}]",
		"duplicate grade": "grades: [{id: a}, {id: A}]\nbloom_levels: [{id: b}]",
		"empty bloom id":  "grades: [{id: a}]\nbloom_levels: [{label: B}]",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("Parse() succeeded, want error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	if tax, err := Load(""); err != nil || tax != Default() {
		t.Errorf("Load(\"\") = %v, %v; want Default()", tax, err)
	}

	path := filepath.Join(t.TempDir(), "tax.yaml")
	doc := "grades:\n  - {id: y1, label: Year 1, band: primary}\nbloom_levels:\n  - {id: recall, label: Recall}\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	tax, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if g, err := tax.LookupGrade("year 1"); err != nil || g.ID != "y1" {
		t.Errorf("LookupGrade() = %+v, %v", g, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded, want error")
	}
}
