// coach_test.go — Unit tests for prompt building and response parsing.
package coach

import (
	"strings"
	"testing"
)

func sampleProfiles() []MemberProfile {
	return []MemberProfile{
		{
			Name: "Jordan Rivera",
			Themes: []ThemeSummary{
				{Rank: 1, Name: "Achiever", Domain: "executing"},
				{Rank: 2, Name: "Learner", Domain: "strategic_thinking"},
			},
		},
		{
			Name: "Maya Lin",
			Themes: []ThemeSummary{
				{Rank: 1, Name: "Empathy", Domain: "relationship_building"},
			},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(sampleProfiles(), Options{Focus: "conflict"})

	for _, want := range []string{
		"### Jordan Rivera",
		"1. Achiever (executing)",
		"2. Learner (strategic_thinking)",
		"### Maya Lin",
		"1. Empathy (relationship_building)",
		"friction points",
		`"suggestions"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q\n%s", want, prompt)
		}
	}
}

func TestBuildPromptUnknownFocusDefaultsToCollaboration(t *testing.T) {
	prompt := buildPrompt(sampleProfiles(), Options{Focus: "astrology"})
	if !strings.Contains(prompt, "divide work and collaborate") {
		t.Errorf("prompt did not fall back to the collaboration question:\n%s", prompt)
	}
}

func TestParseStructuredOutput(t *testing.T) {
	tests := []struct {
		name            string
		content         string
		wantInsight     string
		wantSuggestions int
	}{
		{
			name:            "clean json",
			content:         `{"insight": "Pair the doers with the thinkers.", "suggestions": ["Weekly sync", "Shared board"]}`,
			wantInsight:     "Pair the doers with the thinkers.",
			wantSuggestions: 2,
		},
		{
			name: "json wrapped in markdown",
			content: "Here is my analysis:\n```json\n" +
				`{"insight": "Balance is the team's edge.", "suggestions": ["Rotate facilitation"]}` +
				"\n```\nHope that helps!",
			wantInsight:     "Balance is the team's edge.",
			wantSuggestions: 1,
		},
		{
			name:            "plain prose fallback",
			content:         "This team leans heavily on executing themes.",
			wantInsight:     "This team leans heavily on executing themes.",
			wantSuggestions: 0,
		},
		{
			name:            "malformed braces fallback",
			content:         "The insight is {unbalanced",
			wantInsight:     "The insight is {unbalanced",
			wantSuggestions: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseStructuredOutput(tt.content)
			if got.Insight != tt.wantInsight {
				t.Errorf("insight = %q, want %q", got.Insight, tt.wantInsight)
			}
			if len(got.Suggestions) != tt.wantSuggestions {
				t.Errorf("got %d suggestions, want %d", len(got.Suggestions), tt.wantSuggestions)
			}
		})
	}
}
