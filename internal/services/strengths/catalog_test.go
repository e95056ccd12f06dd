// catalog_test.go — Unit tests for the theme catalog and name normalization.
package strengths

import (
	"testing"
)

func TestCatalogThemes(t *testing.T) {
	cat := NewCatalog()

	if got := len(cat.Themes()); got != 34 {
		t.Fatalf("catalog has %d themes, want 34", got)
	}

	wantCounts := map[Domain]int{
		DomainExecuting:    9,
		DomainInfluencing:  8,
		DomainRelationship: 9,
		DomainStrategic:    8,
	}
	counts := make(map[Domain]int)
	for _, th := range cat.Themes() {
		counts[th.Domain]++
	}
	for domain, want := range wantCounts {
		if counts[domain] != want {
			t.Errorf("domain %s has %d themes, want %d", domain, counts[domain], want)
		}
	}
}

func TestResolve(t *testing.T) {
	cat := NewCatalog()

	tests := []struct {
		name     string
		raw      string
		wantSlug string
		wantOK   bool
	}{
		{"canonical name", "Achiever", "achiever", true},
		{"lowercase", "achiever", "achiever", true},
		{"uppercase", "WOO", "woo", true},
		{"trademark glyph", "Woo®", "woo", true},
		{"tm glyph", "Learner™", "learner", true},
		{"hyphenated", "Self-Assurance", "self-assurance", true},
		{"hyphen replaced by space", "Self Assurance", "self-assurance", true},
		{"extra whitespace", "  Strategic  ", "strategic", true},
		{"unknown word", "Leadership", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme, ok := cat.Resolve(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			}
			if ok && theme.Slug != tt.wantSlug {
				t.Errorf("Resolve(%q) slug = %q, want %q", tt.raw, theme.Slug, tt.wantSlug)
			}
		})
	}
}

func TestBySlug(t *testing.T) {
	cat := NewCatalog()

	theme, ok := cat.BySlug("self-assurance")
	if !ok {
		t.Fatal("BySlug(self-assurance) not found")
	}
	if theme.Name != "Self-Assurance" {
		t.Errorf("BySlug name = %q, want Self-Assurance", theme.Name)
	}
	if theme.Domain != DomainInfluencing {
		t.Errorf("BySlug domain = %q, want %q", theme.Domain, DomainInfluencing)
	}

	if _, ok := cat.BySlug("nope"); ok {
		t.Error("BySlug(nope) should not resolve")
	}
}

func TestNormalizeThemeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Achiever", "achiever"},
		{"registered glyph", "Achiever®", "achiever"},
		{"tm glyph", "Woo™", "woo"},
		{"hyphen to space", "Self-Assurance", "self assurance"},
		{"whitespace collapse", "  Self   Assurance ", "self assurance"},
		{"mixed", " SELF-ASSURANCE® ", "self assurance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeThemeName(tt.in); got != tt.want {
				t.Errorf("NormalizeThemeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestNamePatternLongestFirst guards against the alternation settling for
// a shorter name that happens to prefix a longer one in running text.
func TestNamePatternLongestFirst(t *testing.T) {
	cat := NewCatalog()

	m := cat.NamePattern().FindStringSubmatch("Your Self Assurance theme stands out.")
	if m == nil {
		t.Fatal("name pattern found no match")
	}
	theme, ok := cat.Resolve(m[1])
	if !ok || theme.Slug != "self-assurance" {
		t.Errorf("matched %q, want the Self-Assurance theme", m[1])
	}
}
