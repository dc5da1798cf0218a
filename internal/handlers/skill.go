package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type SkillHandler struct {
	skillService services.SkillService
}

func NewSkillHandler(skillService services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

func (sh *SkillHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	var req services.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	skill, err := sh.skillService.Create(c.Request.Context(), userID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	RespondOK(c, skill)
}

// GetSkill loads one skill and counts the view; viewing is the cheapest
// behavioral signal and it fires on every detail fetch.
func (sh *SkillHandler) GetSkill(c *gin.Context) {
	skillID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid skill id"))
		return
	}
	viewerID, _ := currentUserID(c)

	behaviorCtx := services.BehaviorContext{}
	if raw := c.Query("time_spent"); raw != "" {
		if secs, convErr := strconv.Atoi(raw); convErr == nil && secs > 0 {
			behaviorCtx.TimeSpentSeconds = secs
		}
	}

	skill, err := sh.skillService.RecordView(c.Request.Context(), viewerID, skillID, behaviorCtx)
	if err != nil {
		if errors.Is(err, services.ErrSkillNotFound) {
			RespondError(c, http.StatusNotFound, "skill_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "load_failed", err)
		return
	}
	RespondOK(c, skill)
}

func (sh *SkillHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	includeInactive := c.Query("include_inactive") == "true"
	skills, err := sh.skillService.ListByUser(c.Request.Context(), userID, includeInactive)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"skills": skills, "total": len(skills)})
}

func (sh *SkillHandler) ListByUser(c *gin.Context) {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid user id"))
		return
	}
	skills, err := sh.skillService.ListByUser(c.Request.Context(), targetID, false)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"skills": skills, "total": len(skills)})
}

func (sh *SkillHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	skillID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid skill id"))
		return
	}
	var req services.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	skill, err := sh.skillService.Update(c.Request.Context(), userID, skillID, req)
	if err != nil {
		sh.respondSkillError(c, err, "update_failed")
		return
	}
	RespondOK(c, skill)
}

func (sh *SkillHandler) Deactivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	skillID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid skill id"))
		return
	}
	if err := sh.skillService.Deactivate(c.Request.Context(), userID, skillID); err != nil {
		sh.respondSkillError(c, err, "deactivate_failed")
		return
	}
	RespondOK(c, gin.H{"id": skillID, "is_active": false})
}

func (sh *SkillHandler) respondSkillError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrSkillNotFound):
		RespondError(c, http.StatusNotFound, "skill_not_found", err)
	case errors.Is(err, services.ErrNotSkillOwner):
		RespondError(c, http.StatusForbidden, "not_owner", err)
	default:
		RespondError(c, http.StatusBadRequest, code, err)
	}
}
