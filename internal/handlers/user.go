package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	user, err := uh.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) GetUser(c *gin.Context) {
	targetID, err := pathUUID(c, "id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", errors.New("invalid user id"))
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), targetID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	RespondOK(c, user)
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("not authenticated"))
		return
	}
	var req services.UserProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("invalid request body"))
		return
	}
	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	RespondOK(c, user)
}
