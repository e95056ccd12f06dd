// insights.go extracts the "Why Your {Theme} Is Unique" insight paragraphs.
package strengths

import (
	"regexp"
	"sort"
	"strings"
)

// insightOpeners matches the rhetorical openers Gallup's generator uses for
// personalized insight paragraphs. The apostrophe class covers both the
// ASCII and typographic forms that PDF export produces.
var insightOpeners = regexp.MustCompile(
	`(?i)(?:Driven by your talents|By nature|Instinctively|Chances are good|It['’]s very likely|Because of your strengths)`)

// selfReference matches a paragraph that talks to the reader directly —
// the fallback signal for insight prose that lost its opener.
var selfReference = regexp.MustCompile(`(?i)\b(?:you|your|yourself)\b`)

const (
	maxInsights        = 5
	insightMinLen      = 30 // opener-matched paragraphs
	insightFallbackMin = 50 // fallback paragraphs need more substance
	insightMaxLen      = 800
)

// extractInsights returns up to five personalized insight paragraphs for
// the theme, in document order, deduplicated.
func extractInsights(window string, theme Theme, cat *Catalog) []string {
	section, ok := headerSection(window, cat.whyHeader, theme, cat)
	if !ok {
		return nil
	}

	type candidate struct {
		pos  int
		text string
	}
	var candidates []candidate

	// Pass 1: opener-anchored spans. Each span runs from its opener to the
	// next opener, the next blank line, or the end of the section.
	starts := insightOpeners.FindAllStringIndex(section, -1)
	for i, loc := range starts {
		end := len(section)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		if blank := blankLine.FindStringIndex(section[loc[0]:end]); blank != nil {
			end = loc[0] + blank[0]
		}
		text := collapseSpace(section[loc[0]:end])
		if len(text) >= insightMinLen && len(text) < insightMaxLen {
			candidates = append(candidates, candidate{pos: loc[0], text: text})
		}
	}

	// Pass 2: fallback — standalone paragraphs addressing the reader that
	// pass 1 missed (template revisions drop or reword the openers).
	pos := 0
	for _, para := range splitParagraphs(section) {
		at := indexFrom(section, para, pos)
		pos = at + len(para)
		if insightOpeners.MatchString(para) {
			continue // already covered by pass 1
		}
		text := collapseSpace(para)
		if !selfReference.MatchString(text) {
			continue
		}
		if len(text) >= insightFallbackMin && len(text) < insightMaxLen {
			candidates = append(candidates, candidate{pos: at, text: text})
		}
	}

	// Document order, then dedup and cap.
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].pos < candidates[j].pos })

	seen := make(map[string]bool, len(candidates))
	var insights []string
	for _, c := range candidates {
		if seen[c.text] {
			continue
		}
		seen[c.text] = true
		insights = append(insights, c.text)
		if len(insights) == maxInsights {
			break
		}
	}
	return insights
}

// indexFrom finds sub in s at or after from; falls back to a global search
// so a repeated paragraph never yields a negative position.
func indexFrom(s, sub string, from int) int {
	if from < len(s) {
		if i := strings.Index(s[from:], sub); i >= 0 {
			return from + i
		}
	}
	if i := strings.Index(s, sub); i >= 0 {
		return i
	}
	return from
}
