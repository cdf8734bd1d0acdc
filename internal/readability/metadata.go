package readability

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metadata collects the article fields gathered outside the content
// subtree.
type metadata struct {
	title         string
	byline        string
	excerpt       string
	siteName      string
	lang          string
	dir           string
	publishedTime string
}

var bylineSelectors = []string{
	".byline", ".author", ".post-author", ".article-author",
	"[rel=author]", ".by-author", ".writer",
}

var bylineLabels = []string{
	"By ", "by ", "BY ", "Author: ", "Written by ",
}

// extractMetadata merges the competing metadata sources in ascending
// precedence: meta[name], then Open Graph properties, then structured
// data, then DOM heuristics. Later sources overwrite earlier ones for
// the same field.
func (r *Readability) extractMetadata() metadata {
	var meta metadata

	r.extractNamedMeta(&meta)
	r.extractPropertyMeta(&meta)
	if !r.options.DisableStructuredData {
		r.extractStructuredData(&meta)
	}
	r.extractDOMMetadata(&meta)

	meta.title = html.UnescapeString(strings.TrimSpace(meta.title))
	meta.byline = html.UnescapeString(strings.TrimSpace(meta.byline))
	meta.excerpt = html.UnescapeString(strings.TrimSpace(meta.excerpt))
	meta.siteName = html.UnescapeString(strings.TrimSpace(meta.siteName))
	return meta
}

func (r *Readability) extractNamedMeta(meta *metadata) {
	r.doc.Find("meta[name]").Each(func(i int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, ok := s.Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			return
		}

		switch strings.ToLower(strings.TrimSpace(name)) {
		case "author":
			meta.byline = content
		case "description":
			meta.excerpt = content
		case "title":
			meta.title = content
		}
	})
}

func (r *Readability) extractPropertyMeta(meta *metadata) {
	r.doc.Find("meta[property]").Each(func(i int, s *goquery.Selection) {
		property, _ := s.Attr("property")
		content, ok := s.Attr("content")
		if !ok || strings.TrimSpace(content) == "" {
			return
		}

		switch strings.ToLower(strings.TrimSpace(property)) {
		case "og:title":
			meta.title = content
		case "og:description":
			meta.excerpt = content
		case "og:site_name":
			meta.siteName = content
		case "article:published_time":
			meta.publishedTime = content
		case "article:author":
			// Some publishers put a URL here; only accept prose.
			if !strings.HasPrefix(content, "http") {
				meta.byline = content
			}
		}
	})
}

// extractStructuredData parses the JSON-LD payloads captured during
// preparation and applies the first object whose type matches the
// article vocabulary.
func (r *Readability) extractStructuredData(meta *metadata) {
	for _, payload := range r.jsonLD {
		var raw any
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			r.options.Logger.Debug().Err(err).Msg("skipping malformed structured data")
			continue
		}

		for _, obj := range structuredDataObjects(raw) {
			if !isArticleObject(obj) {
				continue
			}
			applyStructuredData(obj, meta)
			return
		}
	}
}

// structuredDataObjects flattens a JSON-LD document into candidate
// objects, following top-level arrays and @graph containers.
func structuredDataObjects(raw any) []map[string]any {
	switch v := raw.(type) {
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			var objs []map[string]any
			for _, item := range graph {
				if obj, ok := item.(map[string]any); ok {
					objs = append(objs, obj)
				}
			}
			return objs
		}
		return []map[string]any{v}
	case []any:
		var objs []map[string]any
		for _, item := range v {
			if obj, ok := item.(map[string]any); ok {
				objs = append(objs, obj)
			}
		}
		return objs
	}
	return nil
}

func isArticleObject(obj map[string]any) bool {
	if context, ok := obj["@context"].(string); ok {
		if !strings.Contains(context, "schema.org") {
			return false
		}
	}

	switch t := obj["@type"].(type) {
	case string:
		return isJSONLdArticleType(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && isJSONLdArticleType(s) {
				return true
			}
		}
	}
	return false
}

func applyStructuredData(obj map[string]any, meta *metadata) {
	if name, ok := obj["name"].(string); ok && name != "" {
		meta.title = name
	}
	if headline, ok := obj["headline"].(string); ok && headline != "" {
		meta.title = headline
	}
	if desc, ok := obj["description"].(string); ok && desc != "" {
		meta.excerpt = desc
	}
	if date, ok := obj["datePublished"].(string); ok && date != "" {
		meta.publishedTime = date
	}

	if publisher, ok := obj["publisher"].(map[string]any); ok {
		if name, ok := publisher["name"].(string); ok && name != "" {
			meta.siteName = name
		}
	}

	if author := structuredAuthorName(obj["author"]); author != "" {
		meta.byline = author
	}
}

func structuredAuthorName(author any) string {
	switch v := author.(type) {
	case string:
		return v
	case map[string]any:
		if name, ok := v["name"].(string); ok {
			return name
		}
	case []any:
		var names []string
		for _, item := range v {
			if name := structuredAuthorName(item); name != "" {
				names = append(names, name)
			}
		}
		return strings.Join(names, ", ")
	}
	return ""
}

// extractDOMMetadata applies the highest-precedence heuristics: the
// document title, a substantial leading h1, language and direction
// from the html element, and the byline selector scan when no author
// metadata exists.
func (r *Readability) extractDOMMetadata(meta *metadata) {
	if title := strings.TrimSpace(r.doc.Find("title").First().Text()); title != "" {
		meta.title = title
	}
	r.doc.Find("h1").EachWithBreak(func(i int, s *goquery.Selection) bool {
		text := getInnerText(s, true)
		if len(text) > 10 {
			meta.title = text
			return false
		}
		return true
	})

	htmlElem := r.doc.Find("html").First()
	if lang, ok := htmlElem.Attr("lang"); ok {
		meta.lang = strings.TrimSpace(lang)
	}
	if dir, ok := htmlElem.Attr("dir"); ok {
		meta.dir = strings.TrimSpace(dir)
	}

	if strings.TrimSpace(meta.byline) == "" {
		meta.byline = r.findDOMByline()
	}
}

// findDOMByline returns the first byline-selector match whose text,
// after stripping a leading label, is a plausible name line. When no
// selector matches, elements whose class or id carries the byline
// vocabulary are scanned as a fallback.
func (r *Readability) findDOMByline() string {
	for _, selector := range bylineSelectors {
		byline := ""
		r.doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
			text := stripBylineLabel(getInnerText(s, true))
			if isValidByline(text) {
				byline = text
				return false
			}
			return true
		})
		if byline != "" {
			return byline
		}
	}

	byline := ""
	r.doc.Find("[class], [id], [rel], [itemprop]").EachWithBreak(func(i int, s *goquery.Selection) bool {
		rel, _ := s.Attr("rel")
		itemprop, _ := s.Attr("itemprop")
		if !isBylineIndicator(matchString(s) + " " + rel + " " + itemprop) {
			return true
		}
		text := stripBylineLabel(getInnerText(s, true))
		if isValidByline(text) {
			byline = text
			return false
		}
		return true
	})
	return byline
}

func stripBylineLabel(text string) string {
	for _, label := range bylineLabels {
		if strings.HasPrefix(text, label) {
			return strings.TrimSpace(text[len(label):])
		}
	}
	return strings.TrimSpace(text)
}
