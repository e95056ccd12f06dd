// text.go holds small text utilities shared by the field extractors.
package strengths

import (
	"regexp"
	"strings"
)

var (
	blankLine   = regexp.MustCompile(`\n[ \t]*\n`)
	sentenceEnd = regexp.MustCompile(`[^.!?]+[.!?]+["”’)]*`)
)

// collapseSpace flattens all whitespace runs (including newlines left over
// from PDF line wrapping) to single spaces and trims the edges.
func collapseSpace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// splitSentences breaks prose into sentences on terminal punctuation.
// Trailing text without a terminator is dropped — a paragraph cut off
// mid-sentence by a window cap is not worth keeping.
func splitSentences(s string) []string {
	parts := sentenceEnd.FindAllString(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitParagraphs splits on blank lines and trims each block.
func splitParagraphs(s string) []string {
	blocks := blankLine.Split(s, -1)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

// headerSection isolates the text between a theme's section header and the
// next known section header. The header match must resolve to the theme we
// are extracting for — a window can legitimately contain another theme's
// header when the segmenter had to fall back to the length cap.
func headerSection(window string, header *regexp.Regexp, theme Theme, cat *Catalog) (string, bool) {
	for _, idx := range header.FindAllStringSubmatchIndex(window, -1) {
		matched, ok := cat.Resolve(window[idx[2]:idx[3]])
		if !ok || matched.Slug != theme.Slug {
			continue
		}
		section := window[idx[1]:]
		if next := cat.anyHeader.FindStringIndex(section); next != nil {
			section = section[:next[0]]
		}
		return section, true
	}
	return "", false
}
