// description.go extracts the personalized description paragraph.
package strengths

import (
	"regexp"
	"strings"
)

// Personalized prose in Gallup reports addresses the reader directly, so
// the description is the first paragraph opening with "You".
var youParagraph = regexp.MustCompile(`(?s)(?:\A|\n)[ \t]*(You\b.*?)(?:\n[ \t]*\n|\z)`)

const (
	descriptionMinLen    = 30
	descriptionMaxLen    = 600
	descriptionSentences = 5
)

// extractDescription returns the theme's personalized description, or ""
// when the window holds no acceptable candidate. Absence is a normal
// outcome — not every report tier includes personalization.
func extractDescription(window string, cat *Catalog) string {
	m := youParagraph.FindStringSubmatch(window)
	if m == nil {
		return ""
	}
	para := m[1]

	// Drop anything past a footer marker that leaked into the paragraph.
	for _, fp := range footerPatterns {
		if loc := fp.FindStringIndex(para); loc != nil {
			para = para[:loc[0]]
		}
	}

	sentences := splitSentences(para)
	if len(sentences) > descriptionSentences {
		sentences = sentences[:descriptionSentences]
	}
	desc := collapseSpace(strings.Join(sentences, " "))

	// A theme name stuck to the tail means the next section's header bled in.
	desc = trimTrailingThemeName(desc, cat)

	if len(desc) < descriptionMinLen || len(desc) >= descriptionMaxLen {
		return ""
	}
	return desc
}

// trimTrailingThemeName removes a theme name (with optional glyph) left
// dangling at the end of extracted prose.
func trimTrailingThemeName(s string, cat *Catalog) string {
	if m := cat.trailingName.FindStringSubmatchIndex(s); m != nil {
		if _, ok := cat.Resolve(s[m[2]:m[3]]); ok {
			return strings.TrimSpace(s[:m[0]])
		}
	}
	return s
}
