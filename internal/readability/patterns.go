package readability

import (
	"regexp"
	"strings"
	"sync"
)

// patternSet holds every compiled expression the extraction pipeline
// consults. Compilation happens once, on first use.
type patternSet struct {
	unlikelyCandidates *regexp.Regexp
	okMaybeCandidate   *regexp.Regexp
	positive           *regexp.Regexp
	negative           *regexp.Regexp
	extraneous         *regexp.Regexp
	byline             *regexp.Regexp
	normalize          *regexp.Regexp
	videos             *regexp.Regexp
	shareElements      *regexp.Regexp
	whitespace         *regexp.Regexp
	hasContent         *regexp.Regexp
	hashURL            *regexp.Regexp
	b64DataURL         *regexp.Regexp
	commas             *regexp.Regexp
	jsonLdArticleTypes *regexp.Regexp
	adWords            *regexp.Regexp
	loadingWords       *regexp.Regexp
}

var patterns = sync.OnceValue(func() *patternSet {
	return &patternSet{
		unlikelyCandidates: regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`),
		okMaybeCandidate:   regexp.MustCompile(`(?i)and|article|body|column|content|main|mathjax|shadow`),
		positive:           regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`),
		negative:           regexp.MustCompile(`(?i)-ad-|hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|footer|gdpr|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|widget`),
		extraneous:         regexp.MustCompile(`(?i)print|archive|comment|discuss|e[\-]?mail|share|reply|all|login|sign|single|utility`),
		byline:             regexp.MustCompile(`(?i)byline|author|dateline|writtenby|written\s+by|p-author`),
		normalize:          regexp.MustCompile(`\s{2,}`),
		videos:             regexp.MustCompile(`//(www\.)?((dailymotion|youtube|youtube-nocookie|player\.vimeo|v\.qq|bilibili|live\.bilibili)\.com|(archive|upload\.wikimedia)\.org|player\.twitch\.tv)`),
		shareElements:      regexp.MustCompile(`(\b|_)(share|sharedaddy)(\b|_)`),
		whitespace:         regexp.MustCompile(`^\s*$`),
		hasContent:         regexp.MustCompile(`\S$`),
		hashURL:            regexp.MustCompile(`^#.+`),
		b64DataURL:         regexp.MustCompile(`(?i)^data:\s*([^\s;,]+)\s*;\s*base64\s*,`),
		commas:             regexp.MustCompile(`[\x{002C}\x{060C}\x{FE50}\x{FE10}\x{FE11}\x{2E41}\x{2E34}\x{2E32}\x{FF0C}]`),
		jsonLdArticleTypes: regexp.MustCompile(`^Article|AdvertiserContentArticle|NewsArticle|AnalysisNewsArticle|AskPublicNewsArticle|BackgroundNewsArticle|OpinionNewsArticle|ReportageNewsArticle|ReviewNewsArticle|Report|SatiricalArticle|ScholarlyArticle|MedicalScholarlyArticle|SocialMediaPosting|BlogPosting|LiveBlogPosting|DiscussionForumPosting|TechArticle|APIReference$`),
		adWords:            regexp.MustCompile(`(?i)^(ad(vertising|vertisement)?|pub(licité)?|werb(ung)?|广告|Реклама|Anuncio)$`),
		loadingWords:       regexp.MustCompile(`(?i)^((loading|正在加载|Загрузка|chargement|cargando)(…|\.\.\.)?)$`),
	}
})

// isUnlikelyCandidate reports whether a "class id" string matches the
// unlikely vocabulary without also matching the override vocabulary.
func isUnlikelyCandidate(matchString string) bool {
	p := patterns()
	return p.unlikelyCandidates.MatchString(matchString) &&
		!p.okMaybeCandidate.MatchString(matchString)
}

func hasPositiveIndicators(s string) bool {
	return patterns().positive.MatchString(s)
}

func hasNegativeIndicators(s string) bool {
	return patterns().negative.MatchString(s)
}

func isBylineIndicator(s string) bool {
	return patterns().byline.MatchString(s)
}

func isVideoURL(url string) bool {
	return patterns().videos.MatchString(url)
}

func isShareElement(s string) bool {
	return patterns().shareElements.MatchString(s)
}

func isExtraneousContent(s string) bool {
	return patterns().extraneous.MatchString(s)
}

func containsAdWords(s string) bool {
	return patterns().adWords.MatchString(strings.TrimSpace(s))
}

func containsLoadingWords(s string) bool {
	return patterns().loadingWords.MatchString(strings.TrimSpace(s))
}

func isJSONLdArticleType(s string) bool {
	return patterns().jsonLdArticleTypes.MatchString(s)
}

func isHashURL(url string) bool {
	return patterns().hashURL.MatchString(url)
}

func isB64DataURL(url string) bool {
	return patterns().b64DataURL.MatchString(url)
}

func isWhitespaceOnly(s string) bool {
	return patterns().whitespace.MatchString(s)
}

func hasContent(s string) bool {
	return patterns().hasContent.MatchString(s)
}

// normalizeWhitespace collapses runs of two or more whitespace
// characters into a single space.
func normalizeWhitespace(s string) string {
	return patterns().normalize.ReplaceAllString(s, " ")
}

// countCommas counts comma characters across the comma vocabularies of
// several scripts.
func countCommas(s string) int {
	return len(patterns().commas.FindAllStringIndex(s, -1))
}
