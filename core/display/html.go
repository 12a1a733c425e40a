package display

import (
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/jainabhishek-dev/ai-question-generator-sub000/internal/placeholder"
)

var htmlTagRE = regexp.MustCompile(`(?i)</?(?:p|br|div|span|ul|ol|li|table|thead|tbody|tr|td|th|strong|em|b|i|u|h[1-6]|code|pre|sup|sub|blockquote)\b[^>]*>`)

// LooksLikeHTML reports whether text contains at least one common HTML tag.
func LooksLikeHTML(text string) bool {
	return strings.Contains(text, "<") && htmlTagRE.MatchString(text)
}

// FromHTML converts an HTML fragment to markdown. Text without HTML tags,
// and text the converter rejects, is returned unchanged. Math spans are
// shielded from the converter so its markdown escaping cannot reach them.
func FromHTML(text string) string {
	if !LooksLikeHTML(text) {
		return text
	}

	math := placeholder.New("h")
	shielded := protectMath(math, text)

	markdown, err := htmltomarkdown.ConvertString(shielded)
	if err != nil {
		return text
	}
	return math.Restore(strings.TrimSpace(markdown))
}
