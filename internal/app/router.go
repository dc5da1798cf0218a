package app

import (
	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:           h.Auth,
		AuthMiddleware:        m.Auth,
		UserHandler:           h.User,
		SkillHandler:          h.Skill,
		ExchangeHandler:       h.Exchange,
		RecommendationHandler: h.Recommendation,
		MatchingHandler:       h.Matching,
		PreferenceHandler:     h.Preference,
		AllowOrigins:          cfg.AllowOrigins,
	})
}
