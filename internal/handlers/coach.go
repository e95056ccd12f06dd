// coach.go handles AI team-coaching endpoints (TP-44).
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/coach"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
)

// TeamInsight generates AI coaching guidance for a set of members.
// POST /api/v1/coach/team-insight
//
// Every requested member must exist and have a parsed strengths
// profile; the call is synchronous and can take up to two minutes.
func (h *Handler) TeamInsight(c *gin.Context) {
	var req models.TeamInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "member_ids (1-20) is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	profiles := make([]coach.MemberProfile, 0, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		m, err := h.DB.GetMember(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "Member " + id + " not found",
				Code:    http.StatusNotFound,
			})
			return
		}

		var themes []strengths.ParsedTheme
		if len(m.Themes) > 0 {
			if err := json.Unmarshal(m.Themes, &themes); err != nil {
				log.Printf("⚠️  Corrupt themes for member %s: %v", m.ID, err)
			}
		}
		if len(themes) == 0 {
			c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
				Error:   "no_profile",
				Message: "Member " + m.Name + " has no parsed strengths profile yet",
				Code:    http.StatusUnprocessableEntity,
			})
			return
		}

		profile := coach.MemberProfile{Name: m.Name}
		for _, th := range themes {
			profile.Themes = append(profile.Themes, coach.ThemeSummary{
				Rank:   th.Rank,
				Name:   th.Name,
				Domain: string(th.Domain),
			})
		}
		profiles = append(profiles, profile)
	}

	result, err := h.Coach.TeamInsight(c.Request.Context(), profiles, coach.Options{
		Model: req.Model,
		Focus: req.Focus,
	})
	if err != nil {
		log.Printf("❌ Team insight generation failed: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "coach_error",
			Message: "Insight generation failed: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insight":     result.Insight,
		"suggestions": result.Suggestions,
		"model":       result.Model,
	})
}
