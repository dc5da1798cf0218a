package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type PreferenceHandler struct {
	prefService services.PreferenceService
}

func NewPreferenceHandler(prefService services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{prefService: prefService}
}

// TrackBehavior ingests an explicit positive behavioral event from the
// client (save, share, time-on-page reports and the like).
func (ph *PreferenceHandler) TrackBehavior(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	var req struct {
		Action           string    `json:"action"`
		Resource         string    `json:"resource"`
		ResourceID       uuid.UUID `json:"resource_id"`
		TimeSpentSeconds int       `json:"time_spent_seconds"`
		HighIntensity    bool      `json:"high_intensity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" || req.ResourceID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("action and resource_id are required"))
		return
	}
	err := ph.prefService.LearnFromBehavior(c.Request.Context(), userID, req.Action, req.Resource, req.ResourceID, services.BehaviorContext{
		TimeSpentSeconds: req.TimeSpentSeconds,
		HighIntensity:    req.HighIntensity,
	})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "tracking_failed", err)
		return
	}
	RespondOK(c, gin.H{"tracked": true})
}

// Feedback ingests an explicit rejection (dismiss, skip, dislike, hide).
func (ph *PreferenceHandler) Feedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	var req struct {
		Action     string    `json:"action"`
		Resource   string    `json:"resource"`
		ResourceID uuid.UUID `json:"resource_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" || req.ResourceID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("action and resource_id are required"))
		return
	}
	if err := ph.prefService.LearnFromNegativeFeedback(c.Request.Context(), userID, req.Action, req.Resource, req.ResourceID); err != nil {
		RespondError(c, http.StatusBadRequest, "feedback_failed", err)
		return
	}
	RespondOK(c, gin.H{"recorded": true})
}
