// validate_test.go — Unit tests for the structural report check.
package strengths

import (
	"strings"
	"testing"
)

func themesWithRanks(ranks ...int) []ParsedTheme {
	cat := NewCatalog()
	all := cat.Themes()
	out := make([]ParsedTheme, len(ranks))
	for i, r := range ranks {
		th := all[i%len(all)]
		out[i] = ParsedTheme{Name: th.Name, Slug: th.Slug, Domain: th.Domain, Rank: r}
	}
	return out
}

func TestValidateReport(t *testing.T) {
	t.Run("clean top five is valid", func(t *testing.T) {
		r := &Report{
			ParticipantName: "Jordan Rivera",
			Themes:          themesWithRanks(1, 2, 3, 4, 5),
			ReportType:      ReportTypeTop5,
			Confidence:      0.95,
		}
		v := ValidateReport(r)
		if !v.Valid {
			t.Fatalf("expected valid, got errors %v", v.Errors)
		}
		if len(v.Errors) != 0 || len(v.Warnings) != 0 {
			t.Errorf("expected no findings, got errors %v warnings %v", v.Errors, v.Warnings)
		}
	})

	t.Run("no themes is an error", func(t *testing.T) {
		r := &Report{Confidence: 0.95, ParticipantName: "Jordan Rivera"}
		v := ValidateReport(r)
		if v.Valid {
			t.Fatal("expected invalid")
		}
		if len(v.Errors) != 1 || v.Errors[0] != "No strength themes found." {
			t.Errorf("errors = %v", v.Errors)
		}
	})

	t.Run("duplicate ranks reported in ascending order", func(t *testing.T) {
		r := &Report{
			ParticipantName: "Jordan Rivera",
			Themes:          themesWithRanks(1, 3, 3, 2, 2),
			Confidence:      0.95,
		}
		v := ValidateReport(r)
		if v.Valid {
			t.Fatal("expected invalid")
		}
		if len(v.Errors) != 2 {
			t.Fatalf("errors = %v, want 2 duplicate-rank errors", v.Errors)
		}
		if !strings.Contains(v.Errors[0], "rank 2") || !strings.Contains(v.Errors[1], "rank 3") {
			t.Errorf("errors not in ascending rank order: %v", v.Errors)
		}
	})

	t.Run("few themes warns without invalidating", func(t *testing.T) {
		r := &Report{
			ParticipantName: "Jordan Rivera",
			Themes:          themesWithRanks(1, 2, 3),
			Confidence:      0.7,
		}
		v := ValidateReport(r)
		if !v.Valid {
			t.Fatalf("expected valid, got errors %v", v.Errors)
		}
		if len(v.Warnings) != 1 {
			t.Errorf("warnings = %v, want one few-themes warning", v.Warnings)
		}
	})

	t.Run("missing name and low confidence warn", func(t *testing.T) {
		r := &Report{
			Themes:     themesWithRanks(1, 2, 3, 4, 5),
			Confidence: 0.5,
		}
		v := ValidateReport(r)
		if !v.Valid {
			t.Fatalf("expected valid, got errors %v", v.Errors)
		}
		if len(v.Warnings) != 2 {
			t.Errorf("warnings = %v, want name and confidence warnings", v.Warnings)
		}
	})
}
