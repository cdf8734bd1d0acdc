package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Elements that count as block-level when deciding whether a div can
// be rewritten to a paragraph.
var divToPElems = []string{
	"blockquote", "dl", "div", "img", "ol", "p", "pre", "table", "ul",
}

// Phrasing content per the HTML spec, used when collapsing br runs.
var phrasingElems = []string{
	"abbr", "audio", "b", "bdo", "br", "button", "cite", "code", "data",
	"datalist", "dfn", "em", "embed", "i", "img", "input", "kbd", "label",
	"mark", "math", "meter", "noscript", "object", "output", "progress",
	"q", "ruby", "samp", "select", "small", "span", "strong", "sub",
	"sup", "textarea", "time", "var", "wbr",
}

// ARIA roles treated as unlikely candidates.
var unlikelyRoles = map[string]bool{
	"menu":          true,
	"menubar":       true,
	"complementary": true,
	"navigation":    true,
	"alert":         true,
	"alertdialog":   true,
	"dialog":        true,
}

// Elements the unlikely-candidate filter never removes.
var protectedTags = map[string]bool{
	"body":    true,
	"a":       true,
	"table":   true,
	"tbody":   true,
	"tr":      true,
	"td":      true,
	"th":      true,
	"article": true,
	"section": true,
}

// getInnerText returns the trimmed text of a selection, optionally
// collapsing internal whitespace runs.
func getInnerText(s *goquery.Selection, normalizeSpaces bool) string {
	if s == nil || s.Length() == 0 {
		return ""
	}

	text := strings.TrimSpace(s.Text())
	if normalizeSpaces {
		text = normalizeWhitespace(text)
	}
	return text
}

// getNodeText returns the trimmed text content of an HTML node.
func getNodeText(node *html.Node) string {
	if node == nil {
		return ""
	}

	var text string
	if node.Type == html.TextNode {
		text = node.Data
	} else {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			text += getNodeText(child)
		}
	}
	return strings.TrimSpace(text)
}

// getLinkDensity returns the ratio of anchor text length to total text
// length. A subtree without text has density zero.
func getLinkDensity(s *goquery.Selection) float64 {
	if s == nil || s.Length() == 0 {
		return 0
	}

	textLength := len(getInnerText(s, true))
	if textLength == 0 {
		return 0
	}

	var linkLength int
	s.Find("a").Each(func(i int, link *goquery.Selection) {
		linkLength += len(getInnerText(link, true))
	})

	return float64(linkLength) / float64(textLength)
}

// getClassWeight scores the class and id attributes against the
// positive and negative vocabularies, each contributing ±25.
func getClassWeight(s *goquery.Selection) float64 {
	if s == nil || s.Length() == 0 {
		return 0
	}

	var weight float64

	if class, ok := s.Attr("class"); ok && class != "" {
		if hasNegativeIndicators(class) {
			weight -= 25
		}
		if hasPositiveIndicators(class) {
			weight += 25
		}
	}

	if id, ok := s.Attr("id"); ok && id != "" {
		if hasNegativeIndicators(id) {
			weight -= 25
		}
		if hasPositiveIndicators(id) {
			weight += 25
		}
	}

	return weight
}

// matchString builds the "class id" string the unlikely-candidate
// vocabulary is matched against.
func matchString(s *goquery.Selection) string {
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	return strings.TrimSpace(class + " " + id)
}

// isValidByline checks that a byline candidate is non-empty and short
// enough to plausibly be a name line.
func isValidByline(text string) bool {
	text = strings.TrimSpace(text)
	return text != "" && len(text) < 100
}

// hasChildBlockElement checks the direct children of a selection for
// block-level elements.
func hasChildBlockElement(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return false
	}

	found := false
	s.Children().EachWithBreak(func(i int, child *goquery.Selection) bool {
		name := goquery.NodeName(child)
		for _, elem := range divToPElems {
			if name == elem {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// isPhrasingContent reports whether a node is phrasing content. Anchor,
// del and ins elements qualify only when all their children do.
func isPhrasingContent(node *html.Node) bool {
	if node == nil {
		return false
	}
	if node.Type == html.TextNode {
		return true
	}
	if node.Type != html.ElementNode {
		return false
	}

	tag := strings.ToLower(node.Data)
	for _, elem := range phrasingElems {
		if tag == elem {
			return true
		}
	}

	if tag == "a" || tag == "del" || tag == "ins" {
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			if !isPhrasingContent(child) {
				return false
			}
		}
		return true
	}

	return false
}

// isWhitespaceNode reports whether a node is a whitespace-only text
// node or a br element.
func isWhitespaceNode(node *html.Node) bool {
	if node == nil {
		return true
	}
	if node.Type == html.TextNode {
		return isWhitespaceOnly(node.Data)
	}
	return node.Type == html.ElementNode && strings.ToLower(node.Data) == "br"
}

// isElementWithoutContent reports whether a selection holds no text and
// no children other than br and hr.
func isElementWithoutContent(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return true
	}

	if strings.TrimSpace(s.Text()) != "" {
		return false
	}

	children := s.Children()
	brHrCount := s.Find("br").Length() + s.Find("hr").Length()
	return children.Length() == 0 || children.Length() == brHrCount
}

// getNodeName returns the lowercase tag name of a selection.
func getNodeName(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return goquery.NodeName(s)
}

// setNodeTag renames an element in place, keeping its attributes and
// children intact.
func setNodeTag(s *goquery.Selection, tagName string) *goquery.Selection {
	if s == nil || s.Length() == 0 {
		return s
	}

	node := s.Get(0)
	node.Data = tagName
	node.DataAtom = atom.Lookup([]byte(tagName))
	return s
}

// isProbablyVisible checks the cheap signals that hide an element:
// inline display:none, the hidden attribute, and aria-hidden (with the
// fallback-image class exception).
func isProbablyVisible(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return false
	}

	if style, ok := s.Attr("style"); ok && strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		return false
	}
	if _, hidden := s.Attr("hidden"); hidden {
		return false
	}
	if aria, ok := s.Attr("aria-hidden"); ok && aria == "true" {
		if class, ok := s.Attr("class"); !ok || !strings.Contains(class, "fallback-image") {
			return false
		}
	}
	return true
}

// isSingleImage reports whether a selection is an img or wraps exactly
// one img with no surrounding text.
func isSingleImage(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return false
	}
	if getNodeName(s) == "img" {
		return true
	}
	if s.Children().Length() != 1 || strings.TrimSpace(s.Text()) != "" {
		return false
	}
	return isSingleImage(s.Children())
}

// nodeIndex assigns each node its pre-order position in the document.
// The map gives candidates a stable identity for deterministic
// tie-breaking that does not depend on pointer values.
type nodeIndex map[*html.Node]int

func buildNodeIndex(root *html.Node) nodeIndex {
	idx := make(nodeIndex)
	pos := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		idx[n] = pos
		pos++
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	if root != nil {
		walk(root)
	}
	return idx
}

// countElements counts element nodes under root, root included.
func countElements(root *html.Node) int {
	if root == nil {
		return 0
	}
	count := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			count++
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)
	return count
}

// getNodeAncestors collects the ancestors of a selection, nearest
// first, optionally limited in depth.
func getNodeAncestors(s *goquery.Selection, maxDepth int) []*goquery.Selection {
	var ancestors []*goquery.Selection
	parent := s.Parent()

	for i := 0; parent.Length() > 0; i++ {
		if maxDepth > 0 && i >= maxDepth {
			break
		}
		ancestors = append(ancestors, parent)
		parent = parent.Parent()
	}

	return ancestors
}
