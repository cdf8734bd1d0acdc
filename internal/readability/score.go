package readability

import (
	"math"
	"sort"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Tags whose text nominates ancestors for scoring.
const leafSelector = "p, td, pre"

// minLeafTextLength is the minimum normalized text length for a leaf
// to contribute.
const minLeafTextLength = 25

// Descendants that veto parent promotion and get pruned by the
// cleaner.
const navLikeSelector = "nav, aside, header, footer, [class*='sidebar'], [class*='navigation']"

var fallbackSelectors = []string{
	"article", "main", "#content", ".content", ".entry-content", "body",
}

// candidate accumulates a content score for a node nominated as the
// parent or grandparent of a scored leaf. order is the node's
// pre-order index, used for deterministic tie-breaking.
type candidate struct {
	sel   *goquery.Selection
	score float64
	order int
}

// scoreCandidates walks every content-bearing leaf and propagates its
// content score to parent and grandparent, then scales each candidate
// by link density.
func (r *Readability) scoreCandidates() []*candidate {
	byOrder := make(map[int]*candidate)

	r.doc.Find(leafSelector).Each(func(i int, leaf *goquery.Selection) {
		if !isProbablyVisible(leaf) {
			return
		}

		text := getInnerText(leaf, true)
		if len(text) < minLeafTextLength {
			return
		}

		ancestors := getNodeAncestors(leaf, 2)
		if r.options.StripUnlikelys {
			for _, ancestor := range ancestors {
				if r.isUnlikelyElement(ancestor) {
					return
				}
			}
		}

		contentScore := 1.0 + float64(countCommas(text)) + math.Min(float64(len(text))/100.0, 3.0)

		for level, ancestor := range ancestors {
			node := ancestor.Get(0)
			if node == nil || node.Type != html.ElementNode || getNodeName(ancestor) == "html" {
				continue
			}

			order, ok := r.index[node]
			if !ok {
				continue
			}

			c, ok := byOrder[order]
			if !ok {
				c = &candidate{
					sel:   ancestor,
					score: r.initialScore(ancestor),
					order: order,
				}
				byOrder[order] = c
			}

			c.score += contentScore / ancestorDivisor(level)
		}
	})

	candidates := make([]*candidate, 0, len(byOrder))
	for _, c := range byOrder {
		density := getLinkDensity(c.sel) * r.options.LinkDensityModifier
		c.score *= 1.0 - density
		candidates = append(candidates, c)
	}

	r.options.Logger.Debug().Int("candidates", len(candidates)).Msg("scoring complete")
	return candidates
}

// initialScore seeds a candidate with the base score, the tag-type
// adjustment and the class weight.
func (r *Readability) initialScore(s *goquery.Selection) float64 {
	score := 1.0

	switch getNodeName(s) {
	case "div":
		score += 5
	case "pre", "td", "blockquote":
		score += 3
	case "address", "ol", "ul", "dl", "dd", "dt", "li", "form":
		score -= 3
	case "h1", "h2", "h3", "h4", "h5", "h6", "th":
		score -= 5
	}

	if r.options.WeightClasses {
		score += getClassWeight(s)
	}

	return score
}

// ancestorDivisor dilutes a leaf's contribution by distance: 1 for the
// parent, 2 for the grandparent, and three times the one-based depth
// beyond that. level is zero-based (parent = 0). The deep branch
// applies only if propagation is ever extended past two levels; the
// scoring loop does not walk deeper today.
func ancestorDivisor(level int) float64 {
	switch level {
	case 0:
		return 1.0
	case 1:
		return 2.0
	default:
		return float64(level+1) * 3.0
	}
}

// isUnlikelyElement applies the unlikely-candidate policy to a single
// element: structural nav tags and unlikely ARIA roles are always
// unlikely, a protected set of tags never is, and everything else is
// judged by its "class id" string.
func (r *Readability) isUnlikelyElement(s *goquery.Selection) bool {
	name := getNodeName(s)
	if protectedTags[name] {
		return false
	}

	switch name {
	case "nav", "aside", "header", "footer":
		return true
	}

	if role, ok := s.Attr("role"); ok && unlikelyRoles[role] {
		return true
	}

	ms := matchString(s)
	return ms != "" && isUnlikelyCandidate(ms) && !hasPositiveIndicators(ms)
}

// selectBestCandidate ranks candidates, applies the parent-promotion
// check to the winner and falls back to structural selectors when no
// candidate exists.
func (r *Readability) selectBestCandidate(candidates []*candidate) *goquery.Selection {
	if len(candidates) == 0 {
		return r.fallbackCandidate()
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].order < candidates[j].order
	})

	top := candidates
	if r.options.TopCandidates > 0 && len(top) > r.options.TopCandidates {
		top = top[:r.options.TopCandidates]
	}

	primary := top[0]
	r.options.Logger.Debug().
		Str("tag", getNodeName(primary.sel)).
		Float64("score", primary.score).
		Msg("primary candidate")

	if promoted := r.checkParentPromotion(primary); promoted != nil {
		return promoted
	}
	return primary.sel
}

// checkParentPromotion promotes to the primary candidate's parent when
// the parent holds more than double the text, contains nothing
// navigation-like, and its simplified score beats three quarters of
// the primary score.
func (r *Readability) checkParentPromotion(primary *candidate) *goquery.Selection {
	parent := primary.sel.Parent()
	if parent.Length() == 0 {
		return nil
	}
	switch getNodeName(parent) {
	case "html", "#document", "":
		return nil
	}

	candidateText := getInnerText(primary.sel, true)
	parentText := getInnerText(parent, true)
	if len(parentText) <= 2*len(candidateText) {
		return nil
	}

	if parent.Find(navLikeSelector).Length() > 0 {
		return nil
	}

	parentScore := simpleScore(parentText)
	if parentScore > 0.75*primary.score {
		r.options.Logger.Debug().
			Str("tag", getNodeName(parent)).
			Float64("score", parentScore).
			Msg("promoted to parent")
		return parent
	}
	return nil
}

// simpleScore is the single-node formula used for promotion checks:
// no propagation, no class weight.
func simpleScore(text string) float64 {
	return 1.0 + float64(countCommas(text)) + math.Min(float64(len(text))/100.0, 3.0)
}

// fallbackCandidate returns the first structural selector that matches
// an element with any text.
func (r *Readability) fallbackCandidate() *goquery.Selection {
	for _, selector := range fallbackSelectors {
		s := r.doc.Find(selector).First()
		if s.Length() > 0 && hasContent(getInnerText(s, true)) {
			r.options.Logger.Debug().Str("selector", selector).Msg("fallback candidate")
			return s
		}
	}
	return nil
}
