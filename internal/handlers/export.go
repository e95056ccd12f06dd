// export.go handles report export in multiple formats (TP-36).
//
// Supported formats:
//   - md   — Markdown profile summary, one section per theme
//   - json — Full JSON with all extracted fields
//
// Each export format is its own function; adding a format means one
// more case in the switch and one more formatter.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
)

// ExportReport exports a parsed report in the requested format.
// GET /api/v1/reports/:id/export?format=md|json
//
// Response headers are set for file download.
func (h *Handler) ExportReport(c *gin.Context) {
	id := c.Param("id")
	format := c.DefaultQuery("format", "md")

	validFormats := map[string]bool{"md": true, "json": true}
	if !validFormats[format] {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_format",
			Message: "Supported formats: md, json",
			Code:    http.StatusBadRequest,
		})
		return
	}

	r, err := h.DB.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Report not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	if r.Status != models.StatusCompleted {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_ready",
			Message: "Report is not completed (status: " + string(r.Status) + ")",
			Code:    http.StatusNotFound,
		})
		return
	}

	var themes []strengths.ParsedTheme
	if err := json.Unmarshal(r.Themes, &themes); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "export_error",
			Message: "Stored report data is corrupt",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	filename := sanitizeFilename(r.ParticipantName)
	if filename == "" {
		filename = r.ID
	}

	switch format {
	case "md":
		exportMarkdown(c, r, themes, filename)
	case "json":
		exportJSON(c, r, themes, filename)
	}
}

// exportMarkdown renders the report as a Markdown profile document.
func exportMarkdown(c *gin.Context, r *models.StrengthsReport, themes []strengths.ParsedTheme, filename string) {
	md := buildMarkdown(r, themes)

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.md"`, filename))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(md))
}

// buildMarkdown produces the Markdown body. Split out so it can be
// tested without a gin context.
func buildMarkdown(r *models.StrengthsReport, themes []strengths.ParsedTheme) string {
	var sb strings.Builder

	title := r.ParticipantName
	if title == "" {
		title = "Strengths Profile"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	sb.WriteString("| Field | Value |\n")
	sb.WriteString("|-------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Report Type | %s |\n", r.ReportType))
	sb.WriteString(fmt.Sprintf("| Themes | %d |\n", r.ThemeCount))
	sb.WriteString(fmt.Sprintf("| Confidence | %.2f |\n", r.Confidence))
	sb.WriteString(fmt.Sprintf("| Parsed | %s |\n", r.CreatedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n---\n\n")

	for _, th := range themes {
		sb.WriteString(fmt.Sprintf("## %d. %s (%s)\n\n", th.Rank, th.Name, th.Domain))

		if th.PersonalizedDescription != "" {
			sb.WriteString(th.PersonalizedDescription)
			sb.WriteString("\n\n")
		}

		if len(th.PersonalizedInsights) > 0 {
			sb.WriteString("### Insights\n\n")
			for _, ins := range th.PersonalizedInsights {
				sb.WriteString("- " + ins + "\n")
			}
			sb.WriteString("\n")
		}

		if len(th.StrengthBlends) > 0 {
			sb.WriteString("### Blends\n\n")
			for _, b := range th.StrengthBlends {
				sb.WriteString(fmt.Sprintf("- **%s + %s** — %s\n", th.Name, b.PairedTheme, b.Description))
			}
			sb.WriteString("\n")
		}

		if th.ApplySection != nil {
			sb.WriteString("### Apply\n\n")
			if th.ApplySection.Tagline != "" {
				sb.WriteString(fmt.Sprintf("> %s\n\n", th.ApplySection.Tagline))
			}
			for _, item := range th.ApplySection.ActionItems {
				sb.WriteString("- " + item + "\n")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// exportJSON returns the full report data as JSON.
func exportJSON(c *gin.Context, r *models.StrengthsReport, themes []strengths.ParsedTheme, filename string) {
	exportData := map[string]interface{}{
		"id":               r.ID,
		"participant_name": r.ParticipantName,
		"report_type":      r.ReportType,
		"confidence":       r.Confidence,
		"theme_count":      r.ThemeCount,
		"themes":           themes,
		"page_count":       r.PageCount,
		"word_count":       r.WordCount,
		"created_at":       r.CreatedAt,
		"updated_at":       r.UpdatedAt,
	}

	jsonBytes, err := json.MarshalIndent(exportData, "", "  ")
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "export_error",
			Message: "Failed to generate JSON export",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", jsonBytes)
}

// sanitizeFilename removes characters that aren't safe for filenames.
// This only feeds the Content-Disposition header, so a simple replacer
// is enough.
func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-",
		"|", "-", "\n", " ", "\r", "",
	)
	name = replacer.Replace(name)

	for strings.Contains(name, "  ") {
		name = strings.ReplaceAll(name, "  ", " ")
	}
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}

	name = strings.TrimSpace(name)

	if len(name) > 100 {
		name = name[:100]
	}

	return name
}
