// name.go extracts the participant's name from the report header.
package strengths

import "regexp"

// namePatterns cover the header phrasings observed across report tiers and
// template revisions, in priority order. Each captures the candidate name.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`Your Signature Themes[ \t]*\n[ \t]*([A-Z][A-Za-z'’.-]+(?:[ \t]+[A-Z][A-Za-z'’.-]+)+)`),
	regexp.MustCompile(`(?i)Prepared for[:\s]+([A-Z][A-Za-z'’.-]+(?:[ \t]+[A-Z][A-Za-z'’.-]+)+)`),
	regexp.MustCompile(`(?i)Report for[:\s]+([A-Z][A-Za-z'’.-]+(?:[ \t]+[A-Z][A-Za-z'’.-]+)+)`),
	regexp.MustCompile(`(?im)^Name[:\s]+([A-Z][A-Za-z'’.-]+(?:[ \t]+[A-Z][A-Za-z'’.-]+)+)[ \t]*$`),
	regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Za-z'’.-]+(?:[ \t]+[A-Z][A-Za-z'’.-]+)+)[ \t]*\|`),
	regexp.MustCompile(`\A[ \t]*([A-Z][A-Za-z'’.-]+(?:[ \t]+[A-Z][A-Za-z'’.-]+)+)[ \t]*\n`),
}

const (
	participantNameMinLen = 4
	participantNameMaxLen = 50
)

// extractParticipantName tries each header pattern against the full text
// and returns the first capture that is not itself a theme name and has a
// plausible length. Returns "" when nothing matches — expected for
// header-less exports, and non-fatal.
func extractParticipantName(text string, cat *Catalog) string {
	for _, p := range namePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		candidate := collapseSpace(m[1])
		if _, isTheme := cat.Resolve(candidate); isTheme {
			continue
		}
		if len(candidate) < participantNameMinLen || len(candidate) >= participantNameMaxLen {
			continue
		}
		return candidate
	}
	return ""
}
