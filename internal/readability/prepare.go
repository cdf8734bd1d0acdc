package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// prepareDocument normalizes the tree before scoring: script/style
// removal, font rewriting, br-run collapsing, single-image unwrapping
// and div-to-paragraph promotion. Each transform keeps the tree
// well-formed and preserves document order.
func (r *Readability) prepareDocument() {
	r.removeScripts()
	r.replaceFontTags()
	r.replaceBrRuns()
	r.unwrapSingleImageWrappers()
	r.promoteDivsToParagraphs()

	r.options.Logger.Debug().
		Int("elements", countElements(documentRoot(r.doc))).
		Msg("document prepared")
}

func (r *Readability) removeScripts() {
	// Structured data rides inside script elements, so capture it
	// before they go.
	if !r.options.DisableStructuredData {
		r.doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
			r.jsonLD = append(r.jsonLD, s.Text())
		})
	}
	r.doc.Find("script, style, noscript").Remove()
}

func (r *Readability) replaceFontTags() {
	r.doc.Find("font").Each(func(i int, s *goquery.Selection) {
		setNodeTag(s, "span")
	})
}

// replaceBrRuns collapses runs of two or more br elements, optionally
// separated by whitespace text, into a paragraph boundary. The
// phrasing content following a collapsed run moves into the new
// paragraph.
func (r *Readability) replaceBrRuns() {
	r.doc.Find("br").Each(func(i int, br *goquery.Selection) {
		node := br.Get(0)
		if node.Parent == nil {
			return
		}

		// Consume the rest of the run.
		replaced := false
		next := nextSignificantSibling(node.NextSibling)
		for next != nil && isBrNode(next) {
			replaced = true
			following := nextSignificantSibling(next.NextSibling)
			next.Parent.RemoveChild(next)
			next = following
		}
		if !replaced {
			return
		}

		parent := node.Parent
		p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
		parent.InsertBefore(p, node)
		parent.RemoveChild(node)

		// Absorb the phrasing content that follows, up to the next br
		// run or block element.
		for child := p.NextSibling; child != nil; {
			if isBrNode(child) || !isPhrasingContent(child) {
				break
			}
			sibling := child.NextSibling
			parent.RemoveChild(child)
			p.AppendChild(child)
			child = sibling
		}

		for p.LastChild != nil && isWhitespaceNode(p.LastChild) {
			p.RemoveChild(p.LastChild)
		}
	})
}

func (r *Readability) unwrapSingleImageWrappers() {
	r.doc.Find("div, span").Each(func(i int, s *goquery.Selection) {
		if s.Get(0).Parent == nil {
			return
		}
		if !isSingleImage(s) || getNodeName(s) == "img" {
			return
		}
		img := s.Find("img").First()
		if img.Length() == 0 {
			return
		}
		s.ReplaceWithSelection(img)
	})
}

// promoteDivsToParagraphs rewrites divs holding only phrasing content
// into paragraphs so the leaf scorer can see them.
func (r *Readability) promoteDivsToParagraphs() {
	r.doc.Find("div").Each(func(i int, div *goquery.Selection) {
		if hasChildBlockElement(div) {
			return
		}
		if isElementWithoutContent(div) {
			div.Remove()
			return
		}
		setNodeTag(div, "p")
	})
}

// nextSignificantSibling skips whitespace-only text nodes.
func nextSignificantSibling(node *html.Node) *html.Node {
	for node != nil && node.Type == html.TextNode && isWhitespaceOnly(node.Data) {
		node = node.NextSibling
	}
	return node
}

func isBrNode(node *html.Node) bool {
	return node != nil && node.Type == html.ElementNode && strings.ToLower(node.Data) == "br"
}

func documentRoot(doc *goquery.Document) *html.Node {
	if doc == nil {
		return nil
	}
	nodes := doc.Selection.Nodes
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}
