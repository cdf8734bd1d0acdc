package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Matched boilerplate is only removed when its text stays under this
// length, so a mislabeled content block survives.
const maxBoilerplateTextLength = 100

// cleanContent prunes residual boilerplate from the winning subtree,
// strips class attributes, resolves links and serializes the result
// with whitespace runs collapsed. Running it on its own output changes
// nothing.
func (r *Readability) cleanContent(best *goquery.Selection) (string, string) {
	if r.options.CleanConditionally {
		r.removeResidualBoilerplate(best)
	}

	if !r.options.KeepClasses {
		r.stripClasses(best)
	}

	if r.options.BaseURI != "" {
		r.absolutizeLinks(best)
	}

	content := ""
	if serialized, err := goquery.OuterHtml(best); err == nil {
		content = strings.TrimSpace(normalizeWhitespace(serialized))
	}

	textContent := strings.TrimSpace(normalizeWhitespace(best.Text()))
	return content, textContent
}

// removeResidualBoilerplate deletes navigation-like subtrees,
// share/extraneous widgets, ad and loading placeholders, non-video
// embeds and empty paragraphs that survived selection.
func (r *Readability) removeResidualBoilerplate(best *goquery.Selection) {
	best.Find(navLikeSelector).Remove()

	best.Find("div, span, ul, li, a, p").Each(func(i int, s *goquery.Selection) {
		ms := matchString(s)
		if ms == "" {
			return
		}
		if !isShareElement(ms) && !isExtraneousContent(ms) {
			return
		}
		if len(getInnerText(s, true)) < maxBoilerplateTextLength {
			s.Remove()
		}
	})

	best.Find("div, span, p").Each(func(i int, s *goquery.Selection) {
		text := getInnerText(s, true)
		if containsAdWords(text) || containsLoadingWords(text) {
			s.Remove()
		}
	})

	best.Find("iframe, embed, object").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if !isVideoURL(src) {
			s.Remove()
		}
	})

	best.Find("p").Each(func(i int, s *goquery.Selection) {
		if isElementWithoutContent(s) && s.Find("img").Length() == 0 {
			s.Remove()
		}
	})
}

// stripClasses drops class attributes except those the caller asked to
// preserve.
func (r *Readability) stripClasses(best *goquery.Selection) {
	preserve := make(map[string]bool, len(r.options.ClassesToPreserve))
	for _, class := range r.options.ClassesToPreserve {
		preserve[class] = true
	}

	apply := func(s *goquery.Selection) {
		class, ok := s.Attr("class")
		if !ok {
			return
		}

		var kept []string
		for _, name := range strings.Fields(class) {
			if preserve[name] {
				kept = append(kept, name)
			}
		}

		if len(kept) == 0 {
			s.RemoveAttr("class")
			return
		}
		s.SetAttr("class", strings.Join(kept, " "))
	}

	apply(best)
	best.Find("[class]").Each(func(i int, s *goquery.Selection) {
		apply(s)
	})
}

// absolutizeLinks resolves href and src attributes against the
// configured base URI. Fragment-only links and inline base64 data stay
// untouched, as does anything that fails to parse.
func (r *Readability) absolutizeLinks(best *goquery.Selection) {
	base, err := url.Parse(r.options.BaseURI)
	if err != nil {
		r.options.Logger.Debug().Err(err).Msg("invalid base URI, skipping link resolution")
		return
	}

	best.Find("[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" || isHashURL(href) {
			return
		}
		if resolved, ok := resolveAgainst(base, href); ok {
			s.SetAttr("href", resolved)
		}
	})

	best.Find("[src]").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		if src == "" || isB64DataURL(src) {
			return
		}
		if resolved, ok := resolveAgainst(base, src); ok {
			s.SetAttr("src", resolved)
		}
	})
}

func resolveAgainst(base *url.URL, ref string) (string, bool) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(parsed).String(), true
}
