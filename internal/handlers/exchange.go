package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type ExchangeHandler struct {
	exchangeService services.ExchangeService
}

func NewExchangeHandler(exchangeService services.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

func (eh *ExchangeHandler) Request(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	var req struct {
		SkillID uuid.UUID `json:"skill_id"`
		Message string    `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SkillID == uuid.Nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("skill_id is required"))
		return
	}
	exchange, err := eh.exchangeService.Request(c.Request.Context(), userID, req.SkillID, req.Message)
	if err != nil {
		eh.respondExchangeError(c, err, "request_failed")
		return
	}
	RespondOK(c, exchange)
}

func (eh *ExchangeHandler) GetExchange(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	exchangeID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid exchange id"))
		return
	}
	exchange, err := eh.exchangeService.GetByID(c.Request.Context(), userID, exchangeID)
	if err != nil {
		eh.respondExchangeError(c, err, "load_failed")
		return
	}
	RespondOK(c, exchange)
}

func (eh *ExchangeHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	exchanges, err := eh.exchangeService.ListByUser(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return
	}
	RespondOK(c, gin.H{"exchanges": exchanges, "total": len(exchanges)})
}

func (eh *ExchangeHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	exchangeID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid exchange id"))
		return
	}
	exchange, err := eh.exchangeService.Accept(c.Request.Context(), userID, exchangeID)
	if err != nil {
		eh.respondExchangeError(c, err, "accept_failed")
		return
	}
	RespondOK(c, exchange)
}

func (eh *ExchangeHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	exchangeID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid exchange id"))
		return
	}
	var req struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	exchange, err := eh.exchangeService.Complete(c.Request.Context(), userID, exchangeID, req.Rating, req.Comment)
	if err != nil {
		eh.respondExchangeError(c, err, "complete_failed")
		return
	}
	RespondOK(c, exchange)
}

func (eh *ExchangeHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	exchangeID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid exchange id"))
		return
	}
	exchange, err := eh.exchangeService.Cancel(c.Request.Context(), userID, exchangeID)
	if err != nil {
		eh.respondExchangeError(c, err, "cancel_failed")
		return
	}
	RespondOK(c, exchange)
}

func (eh *ExchangeHandler) ListReviews(c *gin.Context) {
	skillID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid skill id"))
		return
	}
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	reviews, err := eh.exchangeService.ListReviews(c.Request.Context(), skillID, limit)
	if err != nil {
		eh.respondExchangeError(c, err, "list_reviews_failed")
		return
	}
	RespondOK(c, gin.H{"reviews": reviews, "total": len(reviews)})
}

func (eh *ExchangeHandler) respondExchangeError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrExchangeNotFound), errors.Is(err, services.ErrSkillNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrNotExchangeParty):
		RespondError(c, http.StatusForbidden, "not_party", err)
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrSelfExchange), errors.Is(err, services.ErrInvalidRatingValue):
		RespondError(c, http.StatusConflict, code, err)
	default:
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}
