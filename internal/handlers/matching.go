package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/matching"
	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type MatchingHandler struct {
	matchingService services.MatchingService
}

func NewMatchingHandler(matchingService services.MatchingService) *MatchingHandler {
	return &MatchingHandler{matchingService: matchingService}
}

func (mh *MatchingHandler) FindMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	var criteria matching.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	result, err := mh.matchingService.FindMatches(c.Request.Context(), userID, criteria)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "matching_failed", err)
		return
	}
	RespondOK(c, result)
}

func (mh *MatchingHandler) InferPersonality(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	inferred, err := mh.matchingService.InferPersonality(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "inference_failed", err)
		return
	}
	RespondOK(c, gin.H{"personality_type": inferred})
}
