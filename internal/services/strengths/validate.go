// validate.go is the structural post-check over an assembled report.
package strengths

import (
	"fmt"
	"sort"
)

// Validation is the outcome of the post-extraction structural check.
// Errors mean the report is structurally broken (but still returned);
// warnings flag results a human should review before accepting.
type Validation struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// minExpectedThemes is the smallest tier Gallup sells; fewer located
// themes means the extraction probably missed some.
const minExpectedThemes = 5

// reviewConfidence is the threshold below which results should go to a
// human reviewer.
const reviewConfidence = 0.7

// ValidateReport checks the assembled report's structure. It never fails
// hard: callers decide whether to accept, re-prompt, or hand the report to
// an admin for manual correction.
func ValidateReport(r *Report) Validation {
	v := Validation{Errors: []string{}, Warnings: []string{}}

	if len(r.Themes) == 0 {
		v.Errors = append(v.Errors, "No strength themes found.")
	} else if len(r.Themes) < minExpectedThemes {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("Only %d themes found; the smallest report tier has %d.", len(r.Themes), minExpectedThemes))
	}

	// Ranks must form a contiguous 1..N sequence. One error per duplicated
	// rank value, reported in ascending order for stable output.
	rankCount := make(map[int]int, len(r.Themes))
	for _, t := range r.Themes {
		rankCount[t.Rank]++
	}
	var dupes []int
	for rank, n := range rankCount {
		if n > 1 {
			dupes = append(dupes, rank)
		}
	}
	sort.Ints(dupes)
	for _, rank := range dupes {
		v.Errors = append(v.Errors, fmt.Sprintf("Duplicate rank %d assigned to multiple themes.", rank))
	}

	if r.ParticipantName == "" {
		v.Warnings = append(v.Warnings, "Participant name could not be determined.")
	}

	if r.Confidence < reviewConfidence {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("Low extraction confidence (%.2f); manual review recommended.", r.Confidence))
	}

	v.Valid = len(v.Errors) == 0
	return v
}
