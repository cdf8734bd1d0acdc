package readably

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/mholloway/readably/internal/readability"
)

// Sentinel errors surfaced by Parse. Use errors.Is to distinguish a
// document that could not be interpreted, one that exceeded the
// configured element ceiling, and one that simply held too little
// content.
var (
	ErrNoDocument      = readability.ErrNoDocument
	ErrTooManyElements = readability.ErrTooManyElements
	ErrNoContent       = readability.ErrNoContent
)

// Parser extracts readable articles from HTML documents.
type Parser interface {
	// ParseHTML extracts the article from an HTML string.
	ParseHTML(html string) (*Article, error)

	// Parse extracts the article from an io.Reader.
	Parse(r io.Reader) (*Article, error)
}

// Option mutates Options, following the functional options pattern.
type Option func(*Options)

// WithMaxElements sets a hard ceiling on the number of elements in the
// prepared document. Extraction aborts with ErrTooManyElements beyond
// it. 0 means unlimited.
func WithMaxElements(n int) Option {
	return func(o *Options) { o.MaxElements = n }
}

// WithTopCandidates sets how many ranked candidates the selection
// logic retains.
func WithTopCandidates(n int) Option {
	return func(o *Options) { o.TopCandidates = n }
}

// WithCharThreshold sets the minimum extracted text length required to
// accept an article. The readerable pre-check scales with it too.
func WithCharThreshold(n int) Option {
	return func(o *Options) { o.CharThreshold = n }
}

// WithClassesToPreserve exempts the given class names from
// class-attribute stripping.
func WithClassesToPreserve(classes ...string) Option {
	return func(o *Options) {
		o.ClassesToPreserve = append(o.ClassesToPreserve, classes...)
	}
}

// WithKeepClasses disables class-attribute stripping globally.
func WithKeepClasses(keep bool) Option {
	return func(o *Options) { o.KeepClasses = keep }
}

// WithStructuredData enables or disables JSON-LD metadata extraction.
// It is enabled by default.
func WithStructuredData(enable bool) Option {
	return func(o *Options) { o.DisableStructuredData = !enable }
}

// WithLinkDensityModifier multiplies the computed link density before
// it scales candidate scores. 1.0 leaves the density unchanged.
func WithLinkDensityModifier(m float64) Option {
	return func(o *Options) { o.LinkDensityModifier = m }
}

// WithBaseURI resolves relative links in the extracted content against
// the given URI.
func WithBaseURI(uri string) Option {
	return func(o *Options) { o.BaseURI = uri }
}

// WithStripUnlikelys toggles the unlikely-candidate filter.
func WithStripUnlikelys(enable bool) Option {
	return func(o *Options) { o.StripUnlikelys = enable }
}

// WithWeightClasses toggles class and id weighting during scoring.
func WithWeightClasses(enable bool) Option {
	return func(o *Options) { o.WeightClasses = enable }
}

// WithCleanConditionally toggles conditional pruning of residual
// boilerplate inside the selected content.
func WithCleanConditionally(enable bool) Option {
	return func(o *Options) { o.CleanConditionally = enable }
}

// WithLogger attaches a zerolog logger that receives per-stage debug
// events during extraction.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// New returns a Parser configured with the given options.
//
// Example:
//
//	parser := readably.New(
//	    readably.WithCharThreshold(500),
//	    readably.WithBaseURI("https://example.com/post/1"),
//	)
func New(opts ...Option) Parser {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &parser{options: options}
}

// IsProbablyReaderable reports whether the document looks worth
// extracting, without running the full algorithm. Documents that fail
// to parse are reported as not readerable.
func IsProbablyReaderable(html string, opts ...Option) bool {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	r, err := readability.NewFromHTML(html, internalOptions(options))
	if err != nil {
		return false
	}
	return r.IsProbablyReaderable()
}

type parser struct {
	options Options
}

func (p *parser) ParseHTML(html string) (*Article, error) {
	r, err := readability.NewFromHTML(html, internalOptions(p.options))
	if err != nil {
		return nil, err
	}

	art, err := r.Parse()
	if err != nil {
		return nil, err
	}
	return publicArticle(art), nil
}

func (p *parser) Parse(r io.Reader) (*Article, error) {
	html, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.ParseHTML(string(html))
}

func internalOptions(o Options) *readability.Options {
	return &readability.Options{
		MaxElements:           o.MaxElements,
		TopCandidates:         o.TopCandidates,
		CharThreshold:         o.CharThreshold,
		ClassesToPreserve:     append([]string(nil), o.ClassesToPreserve...),
		KeepClasses:           o.KeepClasses,
		DisableStructuredData: o.DisableStructuredData,
		LinkDensityModifier:   o.LinkDensityModifier,
		BaseURI:               o.BaseURI,
		StripUnlikelys:        o.StripUnlikelys,
		WeightClasses:         o.WeightClasses,
		CleanConditionally:    o.CleanConditionally,
		Logger:                o.Logger,
	}
}

func publicArticle(a *readability.Article) *Article {
	return &Article{
		Title:         a.Title,
		Byline:        a.Byline,
		Content:       a.Content,
		TextContent:   a.TextContent,
		Length:        a.Length,
		Excerpt:       a.Excerpt,
		SiteName:      a.SiteName,
		Lang:          a.Lang,
		Dir:           a.Dir,
		PublishedTime: a.PublishedTime,
		Readerable:    a.Readerable,
	}
}

// compile-time interface check
var _ Parser = (*parser)(nil)
