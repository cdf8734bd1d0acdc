package readability

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerable(t *testing.T, input string, options *Options) bool {
	t.Helper()
	r, err := NewFromHTML(input, options)
	require.NoError(t, err)
	return r.IsProbablyReaderable()
}

func TestReaderableSubstantialArticle(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><article>`)
	for i := 0; i < 4; i++ {
		b.WriteString(`<p>` + longProse(160) + `</p>`)
	}
	b.WriteString(`</article></body></html>`)

	assert.True(t, readerable(t, b.String(), testOptions()))
}

func TestReaderableNavOnlyDocument(t *testing.T) {
	input := `<html><body><nav>Menu</nav><footer>Copyright</footer></body></html>`
	assert.False(t, readerable(t, input, testOptions()))
}

func TestReaderableEmptyDocument(t *testing.T) {
	assert.False(t, readerable(t, `<html><body></body></html>`, testOptions()))
}

func TestReaderableSkipsTinyText(t *testing.T) {
	input := `<html><body><p>short</p><p>also</p><p>tiny</p></body></html>`
	assert.False(t, readerable(t, input, testOptions()))
}

func TestReaderableUnlikelyPenalty(t *testing.T) {
	// The same prose hidden behind unlikely class names scores
	// negative and contributes no length.
	input := `<html><body>
		<div class="sidebar-ad">` + longProse(200) + `</div>
		<div class="comment-box">` + longProse(200) + `</div>
	</body></html>`

	assert.False(t, readerable(t, input, testOptions()))
}

func TestReaderableDefaultMinLength(t *testing.T) {
	options := testOptions()
	options.CharThreshold = 0

	// One paragraph of 120 characters clears the lower bar but not the
	// 140-character default.
	input := `<html><body><p>` + longProse(120) + `</p></body></html>`
	assert.False(t, readerable(t, input, options))

	var b strings.Builder
	b.WriteString(`<html><body><article>`)
	for i := 0; i < 4; i++ {
		b.WriteString(`<p>` + longProse(160) + `</p>`)
	}
	b.WriteString(`</article></body></html>`)
	assert.True(t, readerable(t, b.String(), options))
}

func TestReaderableThresholdScaling(t *testing.T) {
	assert.InDelta(t, 8, readerableThreshold(20), 0.001)
	assert.InDelta(t, 20, readerableThreshold(50), 0.001)
	assert.InDelta(t, 30, readerableThreshold(100), 0.001)
	assert.InDelta(t, 40, readerableThreshold(500), 0.001)
}

func TestReaderableContribution(t *testing.T) {
	assert.InDelta(t, 30, readerableContribution("article", 500, 140), 0.001)
	assert.InDelta(t, 15, readerableContribution("p", 50, 140), 0.001)
	assert.InDelta(t, 20, readerableContribution("p", 500, 140), 0.001)
	assert.InDelta(t, 25, readerableContribution("pre", 500, 140), 0.001)

	// Divs need real length under a strict minimum.
	assert.InDelta(t, 0, readerableContribution("div", 60, 140), 0.001)
	assert.InDelta(t, 15, readerableContribution("div", 100, 140), 0.001)

	// Lenient formula under a relaxed minimum.
	assert.InDelta(t, 7.5, readerableContribution("div", 30, 25), 0.001)
	assert.InDelta(t, 0, readerableContribution("div", 15, 25), 0.001)
}

func TestNodeVisibleAgreesWithElementPredicate(t *testing.T) {
	r, err := NewFromHTML(`<html><body>
		<div id="plain">x</div>
		<div id="none" style="display: none">x</div>
		<div id="hidden" hidden>x</div>
		<div id="aria" aria-hidden="true">x</div>
		<div id="fallback" aria-hidden="true" class="fallback-image">x</div>
	</body></html>`, testOptions())
	require.NoError(t, err)

	r.doc.Find("body > div").Each(func(i int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		assert.Equal(t, isProbablyVisible(s), nodeVisible(s.Get(0)), id)
	})
	assert.True(t, nodeVisible(r.doc.Find("#fallback").Get(0)))
}

func TestReaderableHiddenContentIgnored(t *testing.T) {
	input := `<html><body><article style="display:none">` +
		`<p>` + longProse(300) + `</p></article></body></html>`

	options := testOptions()
	r, err := NewFromHTML(input, options)
	require.NoError(t, err)
	assert.False(t, r.IsProbablyReaderable())
}
