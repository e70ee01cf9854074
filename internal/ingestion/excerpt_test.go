package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractExcerpt_StripsMarkup(t *testing.T) {
	html := `<h2>Backend Engineer</h2><p>Build <strong>APIs</strong> in Go.</p><script>alert(1)</script>`

	got, err := ExtractExcerpt(html, 0)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer Build APIs in Go.", got)
	assert.NotContains(t, got, "alert")
}

func TestExtractExcerpt_PlainTextPassthrough(t *testing.T) {
	got, err := ExtractExcerpt("Just a plain description.", 0)
	require.NoError(t, err)
	assert.Equal(t, "Just a plain description.", got)
}

func TestExtractExcerpt_CollapsesWhitespace(t *testing.T) {
	got, err := ExtractExcerpt("<p>one</p>\n\n  <p>two\tthree</p>", 0)
	require.NoError(t, err)
	assert.Equal(t, "one two three", got)
}

func TestExtractExcerpt_TruncatesAtWordBoundary(t *testing.T) {
	html := "<p>" + strings.Repeat("word ", 100) + "</p>"

	got, err := ExtractExcerpt(html, 22)
	require.NoError(t, err)
	assert.Equal(t, "word word word word…", got)
	assert.LessOrEqual(t, len([]rune(got)), 23)
}

func TestExtractExcerpt_Empty(t *testing.T) {
	got, err := ExtractExcerpt("", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
