// export_test.go — Unit tests for the export formatters.
package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
)

func TestBuildMarkdown(t *testing.T) {
	r := &models.StrengthsReport{
		ID:              "rep-1",
		ParticipantName: "Jordan Rivera",
		ReportType:      "TOP_5",
		ThemeCount:      2,
		Confidence:      0.95,
		CreatedAt:       time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
	themes := []strengths.ParsedTheme{
		{
			Name:                    "Achiever",
			Slug:                    "achiever",
			Domain:                  strengths.DomainExecuting,
			Rank:                    1,
			PersonalizedDescription: "You work hard and possess a great deal of stamina.",
			PersonalizedInsights:    []string{"Driven by your talents, you finish what you start."},
			StrengthBlends: []strengths.StrengthBlend{
				{PairedTheme: "Learner", PairedThemeSlug: "learner", Description: "Your drive fuels your appetite for new skills."},
			},
			ApplySection: &strengths.ApplySection{
				Tagline:     "Momentum is your native language.",
				ActionItems: []string{"Keep a running list of wins."},
			},
		},
		{
			Name:   "Learner",
			Slug:   "learner",
			Domain: strengths.DomainStrategic,
			Rank:   2,
		},
	}

	md := buildMarkdown(r, themes)

	for _, want := range []string{
		"# Jordan Rivera",
		"| Report Type | TOP_5 |",
		"| Themes | 2 |",
		"| Confidence | 0.95 |",
		"## 1. Achiever (executing)",
		"You work hard and possess a great deal of stamina.",
		"### Insights",
		"- Driven by your talents, you finish what you start.",
		"### Blends",
		"- **Achiever + Learner** — Your drive fuels your appetite for new skills.",
		"### Apply",
		"> Momentum is your native language.",
		"- Keep a running list of wins.",
		"## 2. Learner (strategic_thinking)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}

	// The bare second theme must not gain empty subsections.
	learnerSection := md[strings.Index(md, "## 2. Learner"):]
	for _, header := range []string{"### Insights", "### Blends", "### Apply"} {
		if strings.Contains(learnerSection, header) {
			t.Errorf("empty theme gained %q section", header)
		}
	}
}

func TestBuildMarkdownFallbackTitle(t *testing.T) {
	r := &models.StrengthsReport{CreatedAt: time.Now()}
	md := buildMarkdown(r, nil)
	if !strings.HasPrefix(md, "# Strengths Profile\n") {
		t.Errorf("markdown = %q, want the fallback title", md[:40])
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "Jordan Rivera", "Jordan Rivera"},
		{"path separators", "a/b\\c", "a-b-c"},
		{"shell specials", `what? "really" <ok>`, "what- -really- -ok-"},
		{"newlines", "line one\nline two", "line one line two"},
		{"collapsed dashes", "a//b", "a-b"},
		{"trimmed", "  padded  ", "padded"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
