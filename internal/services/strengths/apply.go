// apply.go extracts the "Apply Your {Theme} to Succeed" tagline and actions.
package strengths

import (
	"regexp"
	"strings"
)

// ApplySection holds the motivational tagline and the action items of a
// theme's apply section. Tagline may be empty; ActionItems holds 0–2
// directive sentences.
type ApplySection struct {
	Tagline     string   `json:"tagline,omitempty"`
	ActionItems []string `json:"action_items,omitempty"`
}

// taglinePatterns are tried in priority order; the first match wins.
// Gallup renders the tagline differently across template revisions:
// straight quotes, smart quotes, asterisk emphasis, or a bare line.
var taglinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"([^"\n]{1,220})"`),
	regexp.MustCompile(`'([^'\n]{1,220})'`),
	regexp.MustCompile(`[“‘]([^”’\n]{1,220})[”’]`),
	regexp.MustCompile(`\*([^*\n]{1,220})\*`),
	regexp.MustCompile(`(?m)^[ \t]*([A-Z][^\n]{8,210})[ \t]*$`),
}

// bulletItem matches dash, bullet-glyph, asterisk, and numbered list items.
var bulletItem = regexp.MustCompile(`(?m)^[ \t]*(?:[-–•▪*]|\d{1,2}[.)])[ \t]+(.+)$`)

// actionVerbs are the directive openers of apply-section sentences, used
// when the bullet formatting was lost in PDF export.
var actionVerbs = regexp.MustCompile(
	`(?i)^(?:Look for|Seek out|Consider|Try|Focus on|Make sure|Partner with|Use your|Apply your|Leverage your|Share your)\b`)

const (
	maxActionItems = 2
	taglineMinLen  = 10
	taglineMaxLen  = 200
	actionMinLen   = 10
	actionMaxLen   = 400
)

// extractApply returns the theme's apply section, or nil when neither a
// tagline nor any action item could be found.
func extractApply(window string, theme Theme, cat *Catalog) *ApplySection {
	section, ok := headerSection(window, cat.applyHeader, theme, cat)
	if !ok {
		return nil
	}

	tagline := extractTagline(section)
	items := extractActionItems(section, tagline)

	if tagline == "" && len(items) == 0 {
		return nil
	}
	return &ApplySection{Tagline: tagline, ActionItems: items}
}

func extractTagline(section string) string {
	for _, p := range taglinePatterns {
		m := p.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		tagline := collapseSpace(m[1])
		if len(tagline) >= taglineMinLen && len(tagline) < taglineMaxLen {
			return tagline
		}
	}
	return ""
}

// extractActionItems prefers explicit bullet/numbered/dash items; when
// fewer than two are found it falls back to sentences opening with a known
// action verb. Caps at two, in source order.
func extractActionItems(section, tagline string) []string {
	var items []string

	for _, m := range bulletItem.FindAllStringSubmatch(section, -1) {
		item := collapseSpace(m[1])
		if len(item) < actionMinLen || len(item) >= actionMaxLen || item == tagline {
			continue
		}
		items = append(items, item)
		if len(items) == maxActionItems {
			return items
		}
	}

	if len(items) < maxActionItems {
		for _, sentence := range splitSentences(section) {
			sentence = collapseSpace(sentence)
			if !actionVerbs.MatchString(sentence) {
				continue
			}
			if len(sentence) < actionMinLen || len(sentence) >= actionMaxLen {
				continue
			}
			if sentence == tagline || containsItem(items, sentence) {
				continue
			}
			items = append(items, sentence)
			if len(items) == maxActionItems {
				break
			}
		}
	}

	return items
}

func containsItem(items []string, s string) bool {
	for _, it := range items {
		if strings.EqualFold(it, s) {
			return true
		}
	}
	return false
}
