// Package placeholder shields regions of text from global rewrites.
//
// A [Set] swaps each protected region for an opaque token built from
// private-use runes and a monotonic counter, remembers the (token, original)
// pairs in insertion order, and puts the originals back with [Set.Restore].
// Tokens never contain backslashes, dollars, pipes, quotes or newlines, so
// the rewrites applied between Protect and Restore cannot touch them.
//
// A Set is not safe for concurrent use; create one per transformation.
package placeholder

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// Open and Close delimit every token. Both are Unicode private-use code
	// points that model output does not produce.
	Open  = "\uE000"
	Close = "\uE001"
)

// Pair records a single protected region.
type Pair struct {
	Token    string
	Original string
}

// Set accumulates protected regions for one transformation.
type Set struct {
	kind  string
	next  int
	pairs []Pair
}

// New returns an empty Set whose tokens carry the given kind tag, which keeps
// tokens of different Sets distinct when they are nested.
func New(kind string) *Set {
	return &Set{kind: kind}
}

// Token registers original and returns the token that stands for it.
func (s *Set) Token(original string) string {
	token := Open + s.kind + strconv.Itoa(s.next) + Close
	s.next++
	s.pairs = append(s.pairs, Pair{Token: token, Original: original})
	return token
}

// Protect replaces every match of re in text with a fresh token.
func (s *Set) Protect(re *regexp.Regexp, text string) string {
	return re.ReplaceAllStringFunc(text, s.Token)
}

// ProtectFunc replaces every match of re for which keep returns true.
// Matches rejected by keep are left in place.
func (s *Set) ProtectFunc(re *regexp.Regexp, text string, keep func(match string) bool) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		if !keep(m) {
			return m
		}
		return s.Token(m)
	})
}

// Len reports how many regions are currently protected.
func (s *Set) Len() int {
	return len(s.pairs)
}

// Pairs returns a copy of the recorded pairs in insertion order.
func (s *Set) Pairs() []Pair {
	out := make([]Pair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Restore substitutes every recorded token in text with its original.
// Pairs are restored newest first, so a region protected after (and around)
// older tokens is expanded before the tokens it contains.
func (s *Set) Restore(text string) string {
	for i := len(s.pairs) - 1; i >= 0; i-- {
		p := s.pairs[i]
		text = strings.ReplaceAll(text, p.Token, p.Original)
	}
	return text
}

// Contains reports whether text still holds any token delimiter.
func Contains(text string) bool {
	return strings.Contains(text, Open) || strings.Contains(text, Close)
}
