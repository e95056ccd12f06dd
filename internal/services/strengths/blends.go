// blends.go extracts the "How {Theme} Blends With Your Other Top Five" pairings.
package strengths

// StrengthBlend describes how the owning theme interacts with another of
// the participant's top-five themes. PairedThemeSlug always resolves to a
// catalog theme and never equals the owner's slug.
type StrengthBlend struct {
	PairedTheme     string `json:"paired_theme"`
	PairedThemeSlug string `json:"paired_theme_slug"`
	Description     string `json:"description"`
}

const (
	maxBlends   = 4
	blendMinLen = 20
	blendMaxLen = 600
)

// extractBlends parses the blend section's repeating "ThemeA + ThemeB
// <prose>" runs. Each pairing's prose runs up to the next pairing header
// or the end of the section, so one blend cannot swallow the next.
//
// A blend split across a page break loses its pairing header and is
// silently dropped — an accepted soft miss, not an error.
func extractBlends(window string, owner Theme, cat *Catalog) []StrengthBlend {
	section, ok := headerSection(window, cat.blendsHeader, owner, cat)
	if !ok {
		return nil
	}

	pairs := cat.pairPattern.FindAllStringSubmatchIndex(section, -1)
	if pairs == nil {
		return nil
	}

	var blends []StrengthBlend
	for i, idx := range pairs {
		left, okL := cat.Resolve(section[idx[2]:idx[3]])
		right, okR := cat.Resolve(section[idx[4]:idx[5]])
		if !okL || !okR {
			continue
		}

		// The pairing always involves the owning theme; the other side is
		// the paired theme. A pairing that doesn't mention the owner at
		// all is leaked text from a neighboring section.
		var paired Theme
		switch {
		case left.Slug == owner.Slug && right.Slug != owner.Slug:
			paired = right
		case right.Slug == owner.Slug && left.Slug != owner.Slug:
			paired = left
		default:
			continue
		}

		end := len(section)
		if i+1 < len(pairs) {
			end = pairs[i+1][0]
		}
		prose := collapseSpace(section[idx[1]:end])
		if len(prose) < blendMinLen || len(prose) >= blendMaxLen {
			continue
		}

		blends = append(blends, StrengthBlend{
			PairedTheme:     paired.Name,
			PairedThemeSlug: paired.Slug,
			Description:     prose,
		})
		if len(blends) == maxBlends {
			break
		}
	}
	return blends
}
