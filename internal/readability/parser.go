package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"
)

// Options mirrors the public configuration surface.
type Options struct {
	MaxElements           int
	TopCandidates         int
	CharThreshold         int
	ClassesToPreserve     []string
	KeepClasses           bool
	DisableStructuredData bool
	LinkDensityModifier   float64
	BaseURI               string
	StripUnlikelys        bool
	WeightClasses         bool
	CleanConditionally    bool
	Logger                zerolog.Logger
}

// Article is the extraction result handed back to the public package.
type Article struct {
	Title         string
	Byline        string
	Content       string
	TextContent   string
	Length        int
	Excerpt       string
	SiteName      string
	Lang          string
	Dir           string
	PublishedTime string
	Readerable    bool
}

// Readability drives a single extraction over one document. It is not
// safe for concurrent use; create one per parse.
type Readability struct {
	doc     *goquery.Document
	options *Options

	// index gives every node a stable pre-order position, assigned
	// after preparation. Candidate identity and tie-breaking use it
	// instead of pointer values.
	index nodeIndex

	// jsonLD holds raw structured-data payloads captured before
	// script removal.
	jsonLD []string
}

// NewFromHTML parses the input and returns a Readability instance
// ready to run. Inputs that cannot be interpreted as a document yield
// ErrNoDocument.
func NewFromHTML(input string, options *Options) (*Readability, error) {
	if strings.TrimSpace(input) == "" {
		return nil, wrapError(ErrNoDocument, "empty input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, wrapError(ErrNoDocument, err.Error())
	}
	if doc.Find("html").Length() == 0 {
		return nil, wrapError(ErrNoDocument, "no root element")
	}

	if options == nil {
		options = &Options{
			TopCandidates:       5,
			CharThreshold:       25,
			LinkDensityModifier: 1.0,
			StripUnlikelys:      true,
			WeightClasses:       true,
			CleanConditionally:  true,
			Logger:              zerolog.Nop(),
		}
	}

	return &Readability{doc: doc, options: options}, nil
}

// Parse runs the full pipeline: preparation, metadata extraction,
// scoring, selection and cleaning.
func (r *Readability) Parse() (*Article, error) {
	r.prepareDocument()

	if r.options.MaxElements > 0 {
		if n := countElements(documentRoot(r.doc)); n > r.options.MaxElements {
			return nil, wrapError(ErrTooManyElements, "aborting extraction")
		}
	}

	r.index = buildNodeIndex(documentRoot(r.doc))

	meta := r.extractMetadata()

	candidates := r.scoreCandidates()
	best := r.selectBestCandidate(candidates)
	if best == nil || best.Length() == 0 {
		return nil, wrapError(ErrNoContent, "no candidate selected")
	}

	content, textContent := r.cleanContent(best)
	textContent = norm.NFC.String(textContent)
	if len(textContent) < r.options.CharThreshold {
		return nil, wrapError(ErrNoContent, "extracted text below threshold")
	}

	excerpt := meta.excerpt
	if excerpt == "" {
		if first := best.Find("p").First(); first.Length() > 0 {
			excerpt = getInnerText(first, true)
		}
	}

	return &Article{
		Title:         meta.title,
		Byline:        meta.byline,
		Content:       content,
		TextContent:   textContent,
		Length:        len(textContent),
		Excerpt:       norm.NFC.String(excerpt),
		SiteName:      meta.siteName,
		Lang:          meta.lang,
		Dir:           meta.dir,
		PublishedTime: meta.publishedTime,
		Readerable:    true,
	}, nil
}
