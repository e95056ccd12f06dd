// locator_test.go — Unit tests for theme location and dedup.
package strengths

import (
	"strings"
	"testing"
)

// Theme names recur constantly in body text — blend sections mention other
// themes by name — so each theme must be located exactly once, at its
// first occurrence.
func TestLocateThemesFirstOccurrence(t *testing.T) {
	cat := NewCatalog()

	text := "1. Learner\n\nYou love to learn.\n\n" +
		"How Achiever Blends With Your Other Top Five\n\n" +
		"Achiever + Learner\n" +
		"Your Learner side pairs the drive to finish with the urge to study.\n"

	matches := locateThemes(text, cat)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (learner, achiever): %+v", len(matches), matches)
	}

	learner := matches[0]
	if learner.Theme.Slug != "learner" {
		t.Fatalf("matches[0] = %s, want learner first", learner.Theme.Slug)
	}
	if want := strings.Index(text, "Learner"); learner.Offset != want {
		t.Errorf("learner offset = %d, want first occurrence at %d", learner.Offset, want)
	}
	if learner.End != learner.Offset+len("Learner") {
		t.Errorf("learner end = %d, want %d", learner.End, learner.Offset+len("Learner"))
	}

	if matches[1].Theme.Slug != "achiever" {
		t.Errorf("matches[1] = %s, want achiever", matches[1].Theme.Slug)
	}

	count := 0
	for _, m := range matches {
		if m.Theme.Slug == "learner" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("learner located %d times, want 1", count)
	}
}

// Every catalog name, in the spellings PDF export produces, must come back
// out of the pipeline as the right theme.
func TestParseTextAllCatalogVariants(t *testing.T) {
	cat := NewCatalog()
	p := NewParser(cat)

	for _, th := range cat.Themes() {
		variants := []string{
			th.Name,
			th.Name + "®",
			strings.ToUpper(th.Name) + "™",
			strings.ReplaceAll(th.Name, "-", " "),
		}
		for _, variant := range variants {
			text := "Your Signature Themes\n\n1. " + variant + "\n\nYou lean on this talent daily.\n"

			r := p.ParseText(text, "", Options{})
			if len(r.Themes) != 1 {
				t.Errorf("%q: got %d themes, want 1", variant, len(r.Themes))
				continue
			}
			got := r.Themes[0]
			if got.Slug != th.Slug {
				t.Errorf("%q: slug = %s, want %s", variant, got.Slug, th.Slug)
			}
			if got.Domain != th.Domain {
				t.Errorf("%q: domain = %s, want %s", variant, got.Domain, th.Domain)
			}
			if got.Rank != 1 {
				t.Errorf("%q: rank = %d, want 1", variant, got.Rank)
			}
		}
	}
}
