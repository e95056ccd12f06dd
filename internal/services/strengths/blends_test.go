// blends_test.go — Unit tests for strength-blend pairing extraction.
package strengths

import (
	"strings"
	"testing"
)

const achieverBlendsWindow = `How Achiever Blends With Your Other Top Five

Achiever + Learner
Your drive for productivity fuels your appetite for new skills and subjects.

Achiever + Strategic
You turn sorted options into finished work faster than most.

Learner + Ideation
This pairing leaked from another page and must not be attributed here.
`

func TestExtractBlends(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	blends := extractBlends(achieverBlendsWindow, achiever, cat)
	if len(blends) != 2 {
		t.Fatalf("got %d blends, want 2: %+v", len(blends), blends)
	}

	if blends[0].PairedThemeSlug != "learner" || blends[0].PairedTheme != "Learner" {
		t.Errorf("blend[0] paired = %s/%s, want Learner", blends[0].PairedTheme, blends[0].PairedThemeSlug)
	}
	if !strings.Contains(blends[0].Description, "appetite for new skills") {
		t.Errorf("blend[0] description = %q", blends[0].Description)
	}
	if strings.Contains(blends[0].Description, "finished work") {
		t.Errorf("blend[0] description swallowed the next pairing: %q", blends[0].Description)
	}

	if blends[1].PairedThemeSlug != "strategic" {
		t.Errorf("blend[1] paired slug = %s, want strategic", blends[1].PairedThemeSlug)
	}
}

func TestExtractBlendsOwnerOnRight(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "How Achiever Blends With Your Other Top Five\n\n" +
		"Responsibility + Achiever\n" +
		"Your follow-through and your stamina make commitments something others can count on.\n"

	blends := extractBlends(window, achiever, cat)
	if len(blends) != 1 {
		t.Fatalf("got %d blends, want 1: %+v", len(blends), blends)
	}
	if blends[0].PairedThemeSlug != "responsibility" {
		t.Errorf("paired slug = %s, want responsibility", blends[0].PairedThemeSlug)
	}
}

func TestExtractBlendsNoHeader(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "Achiever + Learner\nYour drive fuels your appetite for new material.\n"
	if got := extractBlends(window, achiever, cat); got != nil {
		t.Errorf("expected nil without a section header, got %+v", got)
	}
}

func TestExtractBlendsNoPairings(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "How Achiever Blends With Your Other Top Five\n\nNo pairings survived the page break.\n"
	if got := extractBlends(window, achiever, cat); got != nil {
		t.Errorf("expected nil without pairings, got %+v", got)
	}
}
