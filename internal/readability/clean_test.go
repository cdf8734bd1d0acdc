package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanFragment(t *testing.T, input string, options *Options) (string, string) {
	t.Helper()
	r, err := NewFromHTML(input, options)
	require.NoError(t, err)
	best := r.doc.Find("#root").First()
	require.Equal(t, 1, best.Length())
	return r.cleanContent(best)
}

func TestCleanRemovesNavLikeElements(t *testing.T) {
	content, text := cleanFragment(t, `<html><body><div id="root">
		<nav>Site navigation</nav>
		<aside>Related links</aside>
		<div class="sidebar-widget">Sidebar text</div>
		<p>The article text that should remain after cleaning.</p>
		<footer>Copyright line</footer>
	</div></body></html>`, testOptions())

	assert.NotContains(t, content, "Site navigation")
	assert.NotContains(t, content, "Related links")
	assert.NotContains(t, content, "Sidebar text")
	assert.NotContains(t, content, "Copyright line")
	assert.Contains(t, text, "article text that should remain")
}

func TestCleanConditionallyDisabled(t *testing.T) {
	options := testOptions()
	options.CleanConditionally = false

	content, _ := cleanFragment(t, `<html><body><div id="root">
		<nav>Site navigation</nav>
		<p>The article text that should remain after cleaning.</p>
	</div></body></html>`, options)

	assert.Contains(t, content, "Site navigation")
}

func TestCleanRemovesShareAndAdElements(t *testing.T) {
	content, _ := cleanFragment(t, `<html><body><div id="root">
		<div class="share-buttons">Tweet this</div>
		<p class="print-link">Print this page</p>
		<div>Advertisement</div>
		<p>Loading...</p>
		<p>The article text that should remain after cleaning.</p>
	</div></body></html>`, testOptions())

	assert.NotContains(t, content, "Tweet this")
	assert.NotContains(t, content, "Print this page")
	assert.NotContains(t, content, "Advertisement")
	assert.NotContains(t, content, "Loading...")
	assert.Contains(t, content, "article text that should remain")
}

func TestCleanKeepsVideoEmbeds(t *testing.T) {
	content, _ := cleanFragment(t, `<html><body><div id="root">
		<iframe src="https://www.youtube.com/embed/abc123"></iframe>
		<iframe src="https://tracker.example.com/pixel"></iframe>
		<p>The article text that should remain after cleaning.</p>
	</div></body></html>`, testOptions())

	assert.Contains(t, content, "youtube.com/embed/abc123")
	assert.NotContains(t, content, "tracker.example.com")
}

func TestCleanStripsClasses(t *testing.T) {
	options := testOptions()
	options.ClassesToPreserve = []string{"page"}

	content, _ := cleanFragment(t, `<html><body><div id="root" class="content page">
		<p class="lede">The opening paragraph of the article text.</p>
	</div></body></html>`, options)

	assert.Contains(t, content, `class="page"`)
	assert.NotContains(t, content, "lede")
	assert.NotContains(t, content, "content page")
}

func TestCleanKeepClassesDisablesStripping(t *testing.T) {
	options := testOptions()
	options.KeepClasses = true

	content, _ := cleanFragment(t, `<html><body><div id="root">
		<p class="lede">The opening paragraph of the article text.</p>
	</div></body></html>`, options)

	assert.Contains(t, content, `class="lede"`)
}

func TestCleanResolvesLinks(t *testing.T) {
	options := testOptions()
	options.BaseURI = "https://example.com/posts/2024/story"

	content, _ := cleanFragment(t, `<html><body><div id="root">
		<p>See <a href="../archive">the archive</a> and <a href="#notes">the notes</a>.</p>
		<p>Also <a href="https://other.example.org/page">an absolute link</a>.</p>
		<img src="images/photo.jpg">
		<img src="data:image/png;base64,iVBORw0KGgo=">
	</div></body></html>`, options)

	assert.Contains(t, content, `href="https://example.com/posts/archive"`)
	assert.Contains(t, content, `href="#notes"`)
	assert.Contains(t, content, `href="https://other.example.org/page"`)
	assert.Contains(t, content, `src="https://example.com/posts/2024/images/photo.jpg"`)
	assert.Contains(t, content, `src="data:image/png;base64,iVBORw0KGgo="`)
}

func TestCleanCollapsesWhitespaceInText(t *testing.T) {
	_, text := cleanFragment(t, `<html><body><div id="root">
		<p>spaced     out

		text</p>
	</div></body></html>`, testOptions())

	assert.Equal(t, "spaced out text", text)
}

func TestCleanCollapsesWhitespaceInContent(t *testing.T) {
	content, _ := cleanFragment(t, `<html><body><div id="root">
		<p>First paragraph with enough real prose inside it.</p>

		<p>Second paragraph also has      internal   runs.</p>
	</div></body></html>`, testOptions())

	assert.NotContains(t, content, "\n")
	assert.NotContains(t, content, "\t")
	assert.NotContains(t, content, "  ")
	assert.Contains(t, content, "internal runs.")
	assert.Equal(t, strings.TrimSpace(content), content)
}

func TestCleanIsIdempotent(t *testing.T) {
	input := `<html><body><div id="root" class="content">
		<nav>Navigation</nav>
		<div class="share-box">Share</div>
		<p>First paragraph of the article, with a comma or two.</p>
		<p>   Second   paragraph with    odd spacing.   </p>
	</div></body></html>`

	first, firstText := cleanFragment(t, input, testOptions())

	r, err := NewFromHTML(first, testOptions())
	require.NoError(t, err)
	best := r.doc.Find("div").First()
	require.Equal(t, 1, best.Length())
	second, secondText := r.cleanContent(best)

	assert.Equal(t, firstText, secondText)
	assert.Equal(t, first, second)
}
