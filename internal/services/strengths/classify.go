// classify.go derives the report tier and a confidence score.
package strengths

// ReportType is the report tier inferred from how many themes were found.
type ReportType string

const (
	ReportTypeTop5  ReportType = "TOP_5"
	ReportTypeTop10 ReportType = "TOP_10"
	ReportTypeAll34 ReportType = "ALL_34"
)

// classifyReport maps the located theme count to a tier plus an advisory
// confidence in [0, 1]. Exact tier sizes score highest; near misses mean
// the locator probably dropped or double-counted a theme; very low counts
// mean the text likely wasn't a strengths report at all.
//
// Confidence is metadata for the caller's review workflow — nothing in the
// pipeline branches on it.
func classifyReport(themeCount int) (ReportType, float64) {
	switch {
	case themeCount >= 30:
		if themeCount == 34 {
			return ReportTypeAll34, 0.98
		}
		return ReportTypeAll34, 0.9
	case themeCount >= 8:
		if themeCount == 10 {
			return ReportTypeTop10, 0.95
		}
		return ReportTypeTop10, 0.85
	case themeCount == 5:
		return ReportTypeTop5, 0.95
	case themeCount >= 4: // 4, 6, 7 — close to a Top 5
		return ReportTypeTop5, 0.85
	case themeCount == 3:
		return ReportTypeTop5, 0.7
	default:
		conf := 0.3 * float64(themeCount)
		if conf > 0.6 {
			conf = 0.6
		}
		return ReportTypeTop5, conf
	}
}
