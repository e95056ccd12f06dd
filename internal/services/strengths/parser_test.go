// parser_test.go — End-to-end tests for the text extraction pipeline.
package strengths

import (
	"strings"
	"testing"
)

// topFiveText is a minimal Top 5 report layout: signature header, then
// one numbered section per theme with a personalized paragraph.
const topFiveText = `Your Signature Themes
Jordan A. Rivera

Many years of research conducted by Gallup revealed your top themes.

1. Achiever

You work hard and possess a great deal of stamina. You take immense satisfaction in being busy and productive.

2. Learner

You love to learn. The subject matter that interests you most will be determined by your other themes and experiences.

3. Strategic

You create alternative ways to proceed. Faced with any given scenario, you can quickly sort through the clutter and find the best route.

4. Input

You are inquisitive and you collect interesting things you might find useful one day.

5. Responsibility

You take psychological ownership of anything you commit to, whether large or small.
`

func TestParseTextTopFive(t *testing.T) {
	p := NewParser(NewCatalog())

	r := p.ParseText(topFiveText, "", Options{})

	if r.ParticipantName != "Jordan A. Rivera" {
		t.Errorf("participant = %q, want Jordan A. Rivera", r.ParticipantName)
	}
	if r.ReportType != ReportTypeTop5 {
		t.Errorf("report type = %s, want TOP_5", r.ReportType)
	}
	if r.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", r.Confidence)
	}

	wantSlugs := []string{"achiever", "learner", "strategic", "input", "responsibility"}
	if len(r.Themes) != len(wantSlugs) {
		t.Fatalf("got %d themes, want %d: %+v", len(r.Themes), len(wantSlugs), r.Themes)
	}
	for i, want := range wantSlugs {
		th := r.Themes[i]
		if th.Slug != want {
			t.Errorf("theme[%d] slug = %q, want %q", i, th.Slug, want)
		}
		if th.Rank != i+1 {
			t.Errorf("theme[%d] rank = %d, want %d", i, th.Rank, i+1)
		}
		if th.PersonalizedDescription == "" {
			t.Errorf("theme[%d] (%s) has no description", i, th.Slug)
		}
	}

	// Descriptions must not bleed into the next theme's section.
	if desc := r.Themes[0].PersonalizedDescription; strings.Contains(desc, "Learner") || strings.Contains(desc, "2.") {
		t.Errorf("achiever description leaked next section: %q", desc)
	}

	if r.RawText != "" {
		t.Error("raw text attached without being requested")
	}
}

func TestParseTextNameOverride(t *testing.T) {
	p := NewParser(NewCatalog())

	r := p.ParseText(topFiveText, "Alex Chen", Options{})
	if r.ParticipantName != "Alex Chen" {
		t.Errorf("participant = %q, want the explicit override", r.ParticipantName)
	}
}

func TestParseTextIncludeRawText(t *testing.T) {
	p := NewParser(NewCatalog())

	r := p.ParseText(topFiveText, "", Options{IncludeRawText: true})
	if r.RawText != topFiveText {
		t.Error("raw text missing from report despite IncludeRawText")
	}
}

func TestParseTextNoThemes(t *testing.T) {
	p := NewParser(NewCatalog())

	r := p.ParseText("This document is a grocery list, not a strengths report.", "", Options{})
	if len(r.Themes) != 0 {
		t.Fatalf("got %d themes from non-report text", len(r.Themes))
	}
	if r.Confidence != 0 {
		t.Errorf("confidence = %v, want 0", r.Confidence)
	}

	v := ValidateReport(r)
	if v.Valid {
		t.Error("report with no themes should be invalid")
	}
}

// TestParseTextDeterministic guards the pipeline's core contract: the
// same text always produces the same report.
func TestParseTextDeterministic(t *testing.T) {
	p := NewParser(NewCatalog())

	a := p.ParseText(topFiveText, "", Options{})
	b := p.ParseText(topFiveText, "", Options{})

	if len(a.Themes) != len(b.Themes) || a.ParticipantName != b.ParticipantName || a.Confidence != b.Confidence {
		t.Error("repeated parses of identical text diverged")
	}
	for i := range a.Themes {
		if a.Themes[i].Slug != b.Themes[i].Slug || a.Themes[i].PersonalizedDescription != b.Themes[i].PersonalizedDescription {
			t.Errorf("theme[%d] diverged between parses", i)
		}
	}
}
