// Package strengths parses CliftonStrengths PDF report text into structured
// theme rankings, personalized insight paragraphs, strength-blend pairings,
// and apply-section action items (TP-31).
//
// The pipeline is a single synchronous pass: locate theme names, window the
// text per theme, run the four field extractors over each window, then
// classify and validate the assembled report. Every heuristic is tolerant —
// a section that doesn't match any pattern becomes an absent field, never
// an error. Gallup revises the report layout across tiers (Top 5 / Top 10 /
// All 34) and template versions, so the extractors are pattern lists tried
// in priority order rather than one grammar.
package strengths

import (
	"regexp"
	"sort"
	"strings"
)

// Domain is one of the four CliftonStrengths groupings.
type Domain string

const (
	DomainExecuting    Domain = "executing"
	DomainInfluencing  Domain = "influencing"
	DomainRelationship Domain = "relationship_building"
	DomainStrategic    Domain = "strategic_thinking"
)

// Theme is one fixed catalog entry. Immutable reference data.
type Theme struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Domain Domain `json:"domain"`
}

// catalogEntries lists all 34 CliftonStrengths themes with their domains.
var catalogEntries = []Theme{
	// Executing
	{Name: "Achiever", Slug: "achiever", Domain: DomainExecuting},
	{Name: "Arranger", Slug: "arranger", Domain: DomainExecuting},
	{Name: "Belief", Slug: "belief", Domain: DomainExecuting},
	{Name: "Consistency", Slug: "consistency", Domain: DomainExecuting},
	{Name: "Deliberative", Slug: "deliberative", Domain: DomainExecuting},
	{Name: "Discipline", Slug: "discipline", Domain: DomainExecuting},
	{Name: "Focus", Slug: "focus", Domain: DomainExecuting},
	{Name: "Responsibility", Slug: "responsibility", Domain: DomainExecuting},
	{Name: "Restorative", Slug: "restorative", Domain: DomainExecuting},

	// Influencing
	{Name: "Activator", Slug: "activator", Domain: DomainInfluencing},
	{Name: "Command", Slug: "command", Domain: DomainInfluencing},
	{Name: "Communication", Slug: "communication", Domain: DomainInfluencing},
	{Name: "Competition", Slug: "competition", Domain: DomainInfluencing},
	{Name: "Maximizer", Slug: "maximizer", Domain: DomainInfluencing},
	{Name: "Self-Assurance", Slug: "self-assurance", Domain: DomainInfluencing},
	{Name: "Significance", Slug: "significance", Domain: DomainInfluencing},
	{Name: "Woo", Slug: "woo", Domain: DomainInfluencing},

	// Relationship Building
	{Name: "Adaptability", Slug: "adaptability", Domain: DomainRelationship},
	{Name: "Connectedness", Slug: "connectedness", Domain: DomainRelationship},
	{Name: "Developer", Slug: "developer", Domain: DomainRelationship},
	{Name: "Empathy", Slug: "empathy", Domain: DomainRelationship},
	{Name: "Harmony", Slug: "harmony", Domain: DomainRelationship},
	{Name: "Includer", Slug: "includer", Domain: DomainRelationship},
	{Name: "Individualization", Slug: "individualization", Domain: DomainRelationship},
	{Name: "Positivity", Slug: "positivity", Domain: DomainRelationship},
	{Name: "Relator", Slug: "relator", Domain: DomainRelationship},

	// Strategic Thinking
	{Name: "Analytical", Slug: "analytical", Domain: DomainStrategic},
	{Name: "Context", Slug: "context", Domain: DomainStrategic},
	{Name: "Futuristic", Slug: "futuristic", Domain: DomainStrategic},
	{Name: "Ideation", Slug: "ideation", Domain: DomainStrategic},
	{Name: "Input", Slug: "input", Domain: DomainStrategic},
	{Name: "Intellection", Slug: "intellection", Domain: DomainStrategic},
	{Name: "Learner", Slug: "learner", Domain: DomainStrategic},
	{Name: "Strategic", Slug: "strategic", Domain: DomainStrategic},
}

// Catalog is the read-only theme reference data plus the compiled patterns
// derived from it. Build one at startup with NewCatalog and share it —
// it is safe for concurrent use and never mutated after construction.
type Catalog struct {
	themes       []Theme
	byNormalized map[string]Theme
	bySlug       map[string]Theme

	// namePattern matches any theme name, tolerating trademark glyphs,
	// case differences, and hyphen/space swaps.
	namePattern *regexp.Regexp
	// alternation is the raw alternation source, reused by the section
	// segmenter and the blend extractor to build composite patterns.
	alternation string

	// Section-boundary patterns derived from the alternation (see sections.go).
	numberedBoundary *regexp.Regexp
	standaloneLine   *regexp.Regexp

	// Fixed section headers of the personalized report template. Each
	// captures the theme name so extractors can verify the section
	// belongs to the theme they are working on.
	whyHeader    *regexp.Regexp
	blendsHeader *regexp.Regexp
	applyHeader  *regexp.Regexp
	anyHeader    *regexp.Regexp

	// pairPattern matches one "ThemeA + ThemeB" blend pairing.
	pairPattern *regexp.Regexp

	// trailingName matches a theme name dangling at the end of a string.
	trailingName *regexp.Regexp
}

// NewCatalog builds the immutable theme catalog.
func NewCatalog() *Catalog {
	c := &Catalog{
		themes:       catalogEntries,
		byNormalized: make(map[string]Theme, len(catalogEntries)),
		bySlug:       make(map[string]Theme, len(catalogEntries)),
	}

	// Normalization is many-to-one by design: several raw spellings of a
	// name collapse onto one catalog entry. First entry wins on collision
	// (no collisions exist in the 34-name catalog today).
	for _, t := range c.themes {
		key := NormalizeThemeName(t.Name)
		if _, exists := c.byNormalized[key]; !exists {
			c.byNormalized[key] = t
		}
		c.bySlug[t.Slug] = t
	}

	c.alternation = buildAlternation(c.themes)
	c.namePattern = regexp.MustCompile(`(?i)\b(` + c.alternation + `)[®™]?`)
	c.numberedBoundary = regexp.MustCompile(`(?i)\n[ \t]*\d{1,2}\.[ \t]+(` + c.alternation + `)[®™]?`)
	c.standaloneLine = regexp.MustCompile(`(?im)^[ \t]*(` + c.alternation + `)[®™]?[ \t]*$`)

	name := `(` + c.alternation + `)[®™]?`
	c.whyHeader = regexp.MustCompile(`(?i)Why\s+Your\s+` + name + `\s+Is\s+Unique`)
	c.blendsHeader = regexp.MustCompile(`(?i)How\s+` + name + `\s+Blends\s+With\s+Your\s+Other\s+Top\s+Five`)
	c.applyHeader = regexp.MustCompile(`(?i)Apply\s+Your\s+` + name + `\s+to\s+Succeed`)
	c.anyHeader = regexp.MustCompile(
		`(?i)(?:Why\s+Your\s+` + name + `\s+Is\s+Unique` +
			`|How\s+` + name + `\s+Blends\s+With\s+Your\s+Other\s+Top\s+Five` +
			`|Apply\s+Your\s+` + name + `\s+to\s+Succeed)`)
	c.pairPattern = regexp.MustCompile(`(?i)\b` + name + `\s*\+\s*` + name)
	c.trailingName = regexp.MustCompile(`(?i)\s*\b` + name + `\s*$`)

	return c
}

// Themes returns the full ordered catalog.
func (c *Catalog) Themes() []Theme {
	return c.themes
}

// Resolve maps raw matched text (possibly carrying ®/™ glyphs, odd casing,
// or hyphen variants) to its canonical catalog entry.
func (c *Catalog) Resolve(raw string) (Theme, bool) {
	t, ok := c.byNormalized[NormalizeThemeName(raw)]
	return t, ok
}

// BySlug looks up a theme by its stable slug identifier.
func (c *Catalog) BySlug(slug string) (Theme, bool) {
	t, ok := c.bySlug[slug]
	return t, ok
}

// NamePattern returns the compiled alternation over all theme names.
func (c *Catalog) NamePattern() *regexp.Regexp {
	return c.namePattern
}

var (
	trademarkReplacer = strings.NewReplacer("®", "", "™", "")
	whitespaceRun     = regexp.MustCompile(`\s+`)
)

// NormalizeThemeName canonicalizes a theme name as it appears in PDF text:
// trademark glyphs stripped, whitespace collapsed, lowercased, hyphens
// treated as spaces. PDFs export the same theme with inconsistent
// punctuation and casing, so all lookups go through this.
func NormalizeThemeName(s string) string {
	s = trademarkReplacer.Replace(s)
	s = strings.ReplaceAll(s, "-", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// buildAlternation produces a regex alternation over every theme name.
// Longer names come first so the regex engine never settles for a prefix,
// and hyphens match either a hyphen or a space.
func buildAlternation(themes []Theme) string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	parts := make([]string, len(names))
	for i, n := range names {
		escaped := regexp.QuoteMeta(n)
		parts[i] = strings.ReplaceAll(escaped, "-", `[-\s]`)
	}
	return strings.Join(parts, "|")
}
