// Package ingestion derives searchable plain text from submitted job descriptions.
package ingestion

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultExcerptLength is the maximum length of a derived job excerpt.
const DefaultExcerptLength = 280

// ExtractExcerpt derives a plain-text excerpt from a job description
// submitted as HTML. Script and style contents are dropped, whitespace is
// collapsed, and the result is truncated at a word boundary to maxLen runes
// with a trailing ellipsis. A non-positive maxLen uses DefaultExcerptLength.
func ExtractExcerpt(descriptionHTML string, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultExcerptLength
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(descriptionHTML))
	if err != nil {
		return "", err
	}

	doc.Find("script, style, noscript").Remove()

	text := doc.Text()
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= maxLen {
		return text, nil
	}

	// Cut at the last word boundary before the limit
	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…", nil
}
