// insights_test.go — Unit tests for personalized insight extraction.
package strengths

import (
	"strings"
	"testing"
)

const achieverInsightsWindow = `some residual description text here

Why Your Achiever Is Unique

Driven by your talents, you work longer hours than most people do. Chances are good that you push yourself until you reach your goals.

Instinctively, you may produce more than your peers.
`

func TestExtractInsights(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	insights := extractInsights(achieverInsightsWindow, achiever, cat)
	if len(insights) != 3 {
		t.Fatalf("got %d insights, want 3: %v", len(insights), insights)
	}

	wantPrefixes := []string{"Driven by your talents", "Chances are good", "Instinctively"}
	for i, prefix := range wantPrefixes {
		if !strings.HasPrefix(insights[i], prefix) {
			t.Errorf("insight[%d] = %q, want prefix %q", i, insights[i], prefix)
		}
	}

	// Spans split on the next opener, so the first insight must not run
	// into the second.
	if strings.Contains(insights[0], "Chances are good") {
		t.Errorf("insight[0] swallowed its neighbor: %q", insights[0])
	}
}

func TestExtractInsightsFallbackParagraph(t *testing.T) {
	cat := NewCatalog()
	learner, _ := cat.BySlug("learner")

	window := "Why Your Learner Is Unique\n\n" +
		"The steady climb from ignorance to competence energizes you more than mastery itself does.\n"

	insights := extractInsights(window, learner, cat)
	if len(insights) != 1 {
		t.Fatalf("got %d insights, want 1 fallback paragraph: %v", len(insights), insights)
	}
	if !strings.Contains(insights[0], "energizes you") {
		t.Errorf("insight = %q", insights[0])
	}
}

func TestExtractInsightsNoHeader(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "Driven by your talents, you work longer hours than most people do.\n"
	if got := extractInsights(window, achiever, cat); got != nil {
		t.Errorf("expected nil without a section header, got %v", got)
	}
}

// A window can contain another theme's header when the segmenter fell back
// to the length cap; it must not be mistaken for the owner's section.
func TestExtractInsightsWrongThemeHeader(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "Why Your Learner Is Unique\n\n" +
		"Driven by your talents, you absorb new material quickly and happily.\n"
	if got := extractInsights(window, achiever, cat); got != nil {
		t.Errorf("expected nil for a neighbor's header, got %v", got)
	}
}

func TestExtractInsightsDeduplicates(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "Why Your Achiever Is Unique\n\n" +
		"By nature, you measure each day by what you finished before sundown.\n\n" +
		"By nature, you measure each day by what you finished before sundown.\n"

	insights := extractInsights(window, achiever, cat)
	if len(insights) != 1 {
		t.Fatalf("got %d insights, want 1 after dedup: %v", len(insights), insights)
	}
}
