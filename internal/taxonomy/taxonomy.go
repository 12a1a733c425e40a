// Package taxonomy holds the grade and Bloom's-level lookup tables used to
// label generation requests. The tables are immutable: the embedded default
// is parsed once, and accessors return copies.
package taxonomy

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultYAML []byte

var (
	ErrUnknownGrade      = errors.New("unknown grade")
	ErrUnknownBloomLevel = errors.New("unknown bloom level")
)

// Grade is one school grade.
type Grade struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
	Band  string `yaml:"band" json:"band"`
}

// BloomLevel is one level of Bloom's taxonomy, in increasing order of
// cognitive demand. Order starts at 1.
type BloomLevel struct {
	ID    string   `yaml:"id" json:"id"`
	Label string   `yaml:"label" json:"label"`
	Order int      `yaml:"-" json:"order"`
	Verbs []string `yaml:"verbs" json:"verbs"`
}

// Taxonomy is a loaded pair of tables.
type Taxonomy struct {
	grades []Grade
	levels []BloomLevel
}

type document struct {
	Grades      []Grade      `yaml:"grades"`
	BloomLevels []BloomLevel `yaml:"bloom_levels"`
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the embedded taxonomy. It panics if the embedded table is
// invalid, which only a broken build can cause.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := Parse(defaultYAML)
		if err != nil {
			panic(fmt.Sprintf("taxonomy: embedded table: %v", err))
		}
		defaultTax = t
	})
	return defaultTax
}

// Load reads a taxonomy from a YAML file. An empty path returns Default.
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a taxonomy document. Both tables must be
// non-empty and IDs unique within a table.
func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if len(doc.Grades) == 0 {
		return nil, errors.New("parse taxonomy: no grades")
	}
	if len(doc.BloomLevels) == 0 {
		return nil, errors.New("parse taxonomy: no bloom levels")
	}

	seen := make(map[string]bool)
	for _, g := range doc.Grades {
		key := "grade:" + normalizeKey(g.ID)
		if g.ID == "" || seen[key] {
			return nil, fmt.Errorf("parse taxonomy: empty or duplicate grade id %q", g.ID)
		}
		seen[key] = true
	}
	for i := range doc.BloomLevels {
		l := &doc.BloomLevels[i]
		key := "bloom:" + normalizeKey(l.ID)
		if l.ID == "" || seen[key] {
			return nil, fmt.Errorf("parse taxonomy: empty or duplicate bloom level id %q", l.ID)
		}
		seen[key] = true
		l.Order = i + 1
	}
	return &Taxonomy{grades: doc.Grades, levels: doc.BloomLevels}, nil
}

// Grades returns a copy of the grade table in order.
func (t *Taxonomy) Grades() []Grade {
	out := make([]Grade, len(t.grades))
	copy(out, t.grades)
	return out
}

// BloomLevels returns a copy of the Bloom's table in order.
func (t *Taxonomy) BloomLevels() []BloomLevel {
	out := make([]BloomLevel, len(t.levels))
	for i, l := range t.levels {
		l.Verbs = append([]string(nil), l.Verbs...)
		out[i] = l
	}
	return out
}

// LookupGrade finds a grade by ID or label, ignoring case.
func (t *Taxonomy) LookupGrade(key string) (Grade, error) {
	k := normalizeKey(key)
	for _, g := range t.grades {
		if normalizeKey(g.ID) == k || normalizeKey(g.Label) == k {
			return g, nil
		}
	}
	return Grade{}, fmt.Errorf("%w: %q", ErrUnknownGrade, key)
}

// LookupBloomLevel finds a Bloom's level by ID or label, ignoring case.
func (t *Taxonomy) LookupBloomLevel(key string) (BloomLevel, error) {
	k := normalizeKey(key)
	for _, l := range t.levels {
		if normalizeKey(l.ID) == k || normalizeKey(l.Label) == k {
			l.Verbs = append([]string(nil), l.Verbs...)
			return l, nil
		}
	}
	return BloomLevel{}, fmt.Errorf("%w: %q", ErrUnknownBloomLevel, key)
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
