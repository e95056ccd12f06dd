// locator.go finds theme-name occurrences in the raw report text.
package strengths

// ThemeMatch is one located theme: the canonical catalog entry plus the
// byte offsets of its first occurrence. Offset order is rank order; End
// marks the position just past the matched name, where the theme's
// section window begins.
type ThemeMatch struct {
	Theme  Theme
	Offset int
	End    int
}

// locateThemes scans the text left to right for theme names and returns
// the first occurrence of each distinct theme, in appearance order.
//
// A report lists each theme once, but names recur in body text — blend
// sections mention other themes by name constantly — so everything after
// the first occurrence of a given theme is ignored.
func locateThemes(text string, cat *Catalog) []ThemeMatch {
	indexes := cat.NamePattern().FindAllStringSubmatchIndex(text, -1)
	if indexes == nil {
		return nil
	}

	seen := make(map[string]bool, len(indexes))
	matches := make([]ThemeMatch, 0, len(indexes))

	for _, idx := range indexes {
		raw := text[idx[2]:idx[3]]
		theme, ok := cat.Resolve(raw)
		if !ok || seen[theme.Slug] {
			continue
		}
		seen[theme.Slug] = true
		matches = append(matches, ThemeMatch{Theme: theme, Offset: idx[0], End: idx[1]})
	}

	return matches
}
