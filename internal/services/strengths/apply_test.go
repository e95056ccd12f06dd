// apply_test.go — Unit tests for apply-section extraction.
package strengths

import (
	"testing"
)

const achieverApplyWindow = `Apply Your Achiever to Succeed

"Your stamina is the engine that moves every project forward."

- Keep a running list of wins and review it weekly.
- Partner with people who help you pick what matters most.
`

func TestExtractApply(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	apply := extractApply(achieverApplyWindow, achiever, cat)
	if apply == nil {
		t.Fatal("expected an apply section")
	}

	if apply.Tagline != "Your stamina is the engine that moves every project forward." {
		t.Errorf("tagline = %q", apply.Tagline)
	}
	if len(apply.ActionItems) != 2 {
		t.Fatalf("got %d action items, want 2: %v", len(apply.ActionItems), apply.ActionItems)
	}
	if apply.ActionItems[0] != "Keep a running list of wins and review it weekly." {
		t.Errorf("item[0] = %q", apply.ActionItems[0])
	}
	if apply.ActionItems[1] != "Partner with people who help you pick what matters most." {
		t.Errorf("item[1] = %q", apply.ActionItems[1])
	}
}

// Without bullets, the bare first line becomes the tagline and directive
// sentences become items; a sentence identical to the tagline is skipped.
func TestExtractApplyVerbFallback(t *testing.T) {
	cat := NewCatalog()
	learner, _ := cat.BySlug("learner")

	window := "Apply Your Learner to Succeed\n\n" +
		"Seek out roles that reward steady study.\n" +
		"Consider a monthly goal to track what you master.\n"

	apply := extractApply(window, learner, cat)
	if apply == nil {
		t.Fatal("expected an apply section")
	}
	if apply.Tagline != "Seek out roles that reward steady study." {
		t.Errorf("tagline = %q", apply.Tagline)
	}
	if len(apply.ActionItems) != 1 || apply.ActionItems[0] != "Consider a monthly goal to track what you master." {
		t.Errorf("action items = %v", apply.ActionItems)
	}
}

func TestExtractApplyNoHeader(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "- Keep a running list of wins and review it weekly.\n"
	if got := extractApply(window, achiever, cat); got != nil {
		t.Errorf("expected nil without a section header, got %+v", got)
	}
}

func TestExtractApplyEmptySection(t *testing.T) {
	cat := NewCatalog()
	achiever, _ := cat.BySlug("achiever")

	window := "Apply Your Achiever to Succeed\n"
	if got := extractApply(window, achiever, cat); got != nil {
		t.Errorf("expected nil for an empty section, got %+v", got)
	}
}
