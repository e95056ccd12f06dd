// sections.go delimits the text window belonging to a located theme.
package strengths

import "regexp"

// Per-extractor window caps. Report sections vary widely in length, so
// each extractor looks at only as much text as its section could occupy.
const (
	descriptionWindow = 1500
	insightsWindow    = 8000
	blendsWindow      = 10000
	applyWindow       = 8000
)

// footerPatterns are fixed boilerplate markers that end a theme's section:
// domain-description paragraphs, copyright lines, and upsell text. Any of
// these inside a window means the theme's own prose has ended.
var footerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Executing themes help`),
	regexp.MustCompile(`(?i)Influencing themes help`),
	regexp.MustCompile(`(?i)Relationship Building themes help`),
	regexp.MustCompile(`(?i)Strategic Thinking themes help`),
	regexp.MustCompile(`(?i)CliftonStrengths[®™]?\s+for`),
	regexp.MustCompile(`(?i)Learn more about`),
	regexp.MustCompile(`(?i)Copyright\s*©?\s*\d{4}`),
	regexp.MustCompile(`(?i)Gallup, Inc\.`),
}

// sectionWindow returns the slice of text owned by the matched theme,
// starting just past its name and truncated at the earliest of: a
// numbered next-theme header ("2. Focus"), a standalone theme-name line,
// a footer marker, or the limit cap.
//
// Windowing is deliberately conservative. Downstream extractors treat
// everything in-window as theme-owned prose, so under-capturing degrades
// to an absent field while over-capturing bleeds one theme's text into
// another's. Hitting the cap without a boundary is not an error.
func sectionWindow(text string, m ThemeMatch, cat *Catalog, limit int) string {
	start := m.End
	if start > len(text) {
		start = len(text)
	}
	end := len(text)
	if start+limit < end {
		end = start + limit
	}
	window := text[start:end]

	cut := len(window)
	if loc := findThemeBoundary(window, cat.numberedBoundary, cat); loc >= 0 && loc < cut {
		cut = loc
	}
	if loc := findThemeBoundary(window, cat.standaloneLine, cat); loc >= 0 && loc < cut {
		cut = loc
	}
	for _, fp := range footerPatterns {
		if loc := fp.FindStringIndex(window); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}

	return window[:cut]
}

// findThemeBoundary returns the offset of the first match whose captured
// name resolves to a catalog theme, or -1. The captured text goes through
// the same normalization as the locator, so glyph and hyphen variants of
// a next-theme header still count as boundaries.
func findThemeBoundary(window string, pattern *regexp.Regexp, cat *Catalog) int {
	for _, idx := range pattern.FindAllStringSubmatchIndex(window, -1) {
		if _, ok := cat.Resolve(window[idx[2]:idx[3]]); ok {
			return idx[0]
		}
	}
	return -1
}
