package readability

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleDocument = `<html lang="en"><head>
	<title>Test Article</title>
	<meta name="author" content="Jane Smith">
</head><body>
	<article>
		<p>The first paragraph runs long enough to be scored, with commas, with clauses, and with enough prose to pass the minimum length comfortably in every case.</p>
		<p>The second paragraph also runs long, carries its own commas, and describes the subject in more detail than a navigation block ever would bother to.</p>
		<p>The third paragraph closes the piece, sums up the argument, and leaves the reader with a final, reasonably memorable line of text.</p>
	</article>
</body></html>`

func parseDocument(t *testing.T, input string, options *Options) (*Article, error) {
	t.Helper()
	r, err := NewFromHTML(input, options)
	require.NoError(t, err)
	return r.Parse()
}

func TestParseArticleDocument(t *testing.T) {
	article, err := parseDocument(t, articleDocument, testOptions())
	require.NoError(t, err)

	assert.Equal(t, "Test Article", article.Title)
	assert.Equal(t, "Jane Smith", article.Byline)
	assert.Equal(t, "en", article.Lang)
	assert.Greater(t, article.Length, 100)
	assert.True(t, article.Readerable)
	assert.Contains(t, article.TextContent, "first paragraph")
	assert.Contains(t, article.Content, "<p>")
	assert.NotEmpty(t, article.Excerpt)
}

func TestParseEmptyBody(t *testing.T) {
	_, err := parseDocument(t, `<html><body></body></html>`, testOptions())
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestParseShortParagraph(t *testing.T) {
	_, err := parseDocument(t, `<html><body><p>Short</p></body></html>`, testOptions())
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestParseExcludesSidebar(t *testing.T) {
	input := `<html><body>
		<div class="sidebar">Subscribe to our newsletter today</div>
		<article class="main-content">
			<p>The first paragraph runs long enough to be scored, with commas, with clauses, and with plenty of prose to pass the minimum length comfortably.</p>
			<p>The second paragraph also runs long, carries its own commas, and describes the subject in far more detail than any sidebar would.</p>
			<p>The third paragraph closes the piece, sums up the argument, and leaves the reader with a final, reasonably memorable line.</p>
		</article>
	</body></html>`

	article, err := parseDocument(t, input, testOptions())
	require.NoError(t, err)
	assert.NotContains(t, article.TextContent, "Subscribe to our newsletter")
	assert.Contains(t, article.TextContent, "first paragraph")
}

func TestParseDeterminism(t *testing.T) {
	first, err := parseDocument(t, articleDocument, testOptions())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		again, err := parseDocument(t, articleDocument, testOptions())
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestParseThresholdMonotonicity(t *testing.T) {
	article, err := parseDocument(t, articleDocument, testOptions())
	require.NoError(t, err)

	strict := testOptions()
	strict.CharThreshold = article.Length + 1
	_, err = parseDocument(t, articleDocument, strict)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestParseElementCeiling(t *testing.T) {
	options := testOptions()
	options.MaxElements = 3

	_, err := parseDocument(t, articleDocument, options)
	assert.ErrorIs(t, err, ErrTooManyElements)
}

func TestNewFromHTMLRejectsEmptyInput(t *testing.T) {
	_, err := NewFromHTML("   ", testOptions())
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestParseExcerptFallsBackToFirstParagraph(t *testing.T) {
	article, err := parseDocument(t, articleDocument, testOptions())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(article.Excerpt, "The first paragraph"))
}

func TestParseExcerptPrefersDescription(t *testing.T) {
	input := strings.Replace(articleDocument,
		`<meta name="author" content="Jane Smith">`,
		`<meta name="author" content="Jane Smith"><meta name="description" content="A short summary.">`, 1)

	article, err := parseDocument(t, input, testOptions())
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", article.Excerpt)
}

func TestParseErrorsAreDistinguishable(t *testing.T) {
	options := testOptions()
	options.MaxElements = 1

	_, tooLarge := parseDocument(t, articleDocument, options)
	_, tooSparse := parseDocument(t, `<html><body><p>Short</p></body></html>`, testOptions())

	assert.True(t, errors.Is(tooLarge, ErrTooManyElements))
	assert.False(t, errors.Is(tooLarge, ErrNoContent))
	assert.True(t, errors.Is(tooSparse, ErrNoContent))
	assert.False(t, errors.Is(tooSparse, ErrTooManyElements))
}
