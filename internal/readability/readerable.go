package readability

import (
	"math"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

const defaultReaderableMinLength = 140

// IsProbablyReaderable estimates whether the document holds enough
// article-like text to be worth extracting, without running the full
// pipeline. It scans candidate elements in document order and accepts
// as soon as the accumulated score and text length clear their
// thresholds.
func (r *Readability) IsProbablyReaderable() bool {
	root := documentRoot(r.doc)
	if root == nil {
		return false
	}

	minLength := r.options.CharThreshold
	if minLength <= 0 {
		minLength = defaultReaderableMinLength
	}
	threshold := readerableThreshold(minLength)

	var score float64
	var totalLength int

	nodes := htmlquery.Find(root, "//p|//pre|//article|//div")
	for _, node := range nodes {
		if !nodeVisible(node) {
			continue
		}

		text := strings.TrimSpace(normalizeWhitespace(getNodeText(node)))
		if len(text) < 10 {
			continue
		}

		if r.isUnlikelyNode(node) {
			score -= 5
			continue
		}

		score += readerableContribution(node.Data, len(text), minLength)
		totalLength += len(text)

		if score > threshold && totalLength >= minLength {
			return true
		}
	}

	return score > threshold && totalLength >= minLength
}

// readerableThreshold scales the score bar inversely with the minimum
// length: stricter length minimums demand proportionally more score.
func readerableThreshold(minLength int) float64 {
	switch {
	case minLength <= 20:
		return 8
	case minLength <= 50:
		return 20
	case minLength <= 100:
		return 30
	default:
		return 40
	}
}

// readerableContribution weights an element's text length by tag type
// and caps the result. Divs use a lenient formula under relaxed length
// minimums and a strict one otherwise.
func readerableContribution(tag string, length, minLength int) float64 {
	switch strings.ToLower(tag) {
	case "article":
		return math.Min(float64(length)*0.5, 30)
	case "p":
		return math.Min(float64(length)*0.3, 20)
	case "pre":
		return math.Min(float64(length)*0.4, 25)
	case "div":
		if minLength <= 50 {
			if length > 20 {
				return math.Min(float64(length)*0.25, 15)
			}
			return 0
		}
		if length > 80 {
			return math.Min(float64(length)*0.2, 15)
		}
		return 0
	}
	return 0
}

// isUnlikelyNode is the node-level twin of isUnlikelyElement, for
// traversals that work below the goquery layer.
func (r *Readability) isUnlikelyNode(node *html.Node) bool {
	tag := strings.ToLower(node.Data)
	if protectedTags[tag] {
		return false
	}

	switch tag {
	case "nav", "aside", "header", "footer":
		return true
	}

	var class, id, role string
	for _, attr := range node.Attr {
		switch attr.Key {
		case "class":
			class = attr.Val
		case "id":
			id = attr.Val
		case "role":
			role = attr.Val
		}
	}

	if unlikelyRoles[role] {
		return true
	}

	ms := strings.TrimSpace(class + " " + id)
	return ms != "" && isUnlikelyCandidate(ms) && !hasPositiveIndicators(ms)
}

// nodeVisible mirrors isProbablyVisible for bare nodes, including the
// fallback-image exception for aria-hidden elements.
func nodeVisible(node *html.Node) bool {
	var style, ariaHidden, class string
	hidden := false
	for _, attr := range node.Attr {
		switch attr.Key {
		case "style":
			style = attr.Val
		case "hidden":
			hidden = true
		case "aria-hidden":
			ariaHidden = attr.Val
		case "class":
			class = attr.Val
		}
	}

	if strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		return false
	}
	if hidden {
		return false
	}
	if ariaHidden == "true" && !strings.Contains(class, "fallback-image") {
		return false
	}
	return true
}
