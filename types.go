package readably

import "github.com/rs/zerolog"

// Article is the result of a successful extraction. Content,
// TextContent and Length are always set together; every other field is
// filled only when the document provided it.
type Article struct {
	Title         string `json:"title,omitempty"`
	Byline        string `json:"byline,omitempty"`
	Content       string `json:"content"`
	TextContent   string `json:"text_content"`
	Length        int    `json:"length"`
	Excerpt       string `json:"excerpt,omitempty"`
	SiteName      string `json:"site_name,omitempty"`
	Lang          string `json:"lang,omitempty"`
	Dir           string `json:"dir,omitempty"`
	PublishedTime string `json:"published_time,omitempty"`
	Readerable    bool   `json:"readerable"`
}

// Options configures the extraction process. The zero value is not
// usable directly; start from DefaultOptions or use New with
// functional options.
type Options struct {
	// MaxElements aborts extraction when the prepared document holds
	// more elements than this ceiling. 0 means no limit.
	MaxElements int

	// TopCandidates is the number of ranked candidates retained for
	// selection logic.
	TopCandidates int

	// CharThreshold is the minimum extracted text length required to
	// accept an article. It also scales the readerable threshold.
	CharThreshold int

	// ClassesToPreserve lists class names exempt from class-attribute
	// stripping.
	ClassesToPreserve []string

	// KeepClasses disables class-attribute stripping entirely.
	KeepClasses bool

	// DisableStructuredData skips JSON-LD metadata extraction.
	DisableStructuredData bool

	// LinkDensityModifier multiplies the computed link density before
	// candidate scores are scaled by it.
	LinkDensityModifier float64

	// BaseURI, when set, resolves relative links inside the extracted
	// content against it.
	BaseURI string

	// Feature toggles for the scoring algorithm. All default to true.
	StripUnlikelys     bool
	WeightClasses      bool
	CleanConditionally bool

	// Logger receives per-stage debug events. Disabled by default.
	Logger zerolog.Logger
}

// DefaultOptions returns the default extraction options: no element
// limit, five top candidates, a 25 character threshold and all
// algorithm features enabled.
func DefaultOptions() Options {
	return Options{
		MaxElements:         0,
		TopCandidates:       5,
		CharThreshold:       25,
		LinkDensityModifier: 1.0,
		StripUnlikelys:      true,
		WeightClasses:       true,
		CleanConditionally:  true,
		Logger:              zerolog.Nop(),
	}
}
