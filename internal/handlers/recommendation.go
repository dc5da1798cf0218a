package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type RecommendationHandler struct {
	recService services.RecommendationService
}

func NewRecommendationHandler(recService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recService: recService}
}

// GetRecommendations serves GET /recommendations. All options ride on the
// query string; weight adjustments use weight_<source>=<value> params.
func (rh *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}

	opts := services.RecommendationOptions{
		Algorithm:      c.DefaultQuery("algorithm", "hybrid"),
		ExcludeSeen:    c.Query("exclude_seen") == "true",
		IncludeReasons: c.DefaultQuery("include_reasons", "true") != "false",
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}
	if raw := c.Query("categories"); raw != "" {
		for _, cat := range strings.Split(raw, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				opts.Categories = append(opts.Categories, cat)
			}
		}
	}
	if raw := c.Query("min_quality"); raw != "" {
		if q, err := strconv.ParseFloat(raw, 64); err == nil {
			opts.MinQuality = q
		}
	}
	if raw := c.Query("seed"); raw != "" {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			opts.Seed = &seed
		}
	}
	for _, source := range []string{"content", "collaborative", "personality", "trending", "quality"} {
		if raw := c.Query("weight_" + source); raw != "" {
			if w, err := strconv.ParseFloat(raw, 64); err == nil {
				if opts.WeightAdjustments == nil {
					opts.WeightAdjustments = map[string]float64{}
				}
				opts.WeightAdjustments[source] = w
			}
		}
	}

	result, err := rh.recService.GetComprehensiveRecommendations(c.Request.Context(), userID, opts)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "recommendation_failed", err)
		return
	}
	RespondOK(c, result)
}
