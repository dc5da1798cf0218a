package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/handlers"
	"github.com/skillbridge/skillbridge-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	UserHandler           *handlers.UserHandler
	SkillHandler          *handlers.SkillHandler
	ExchangeHandler       *handlers.ExchangeHandler
	RecommendationHandler *handlers.RecommendationHandler
	MatchingHandler       *handlers.MatchingHandler
	PreferenceHandler     *handlers.PreferenceHandler
	AllowOrigins          []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	// Skill detail and reviews are readable anonymously; the view signal
	// only fires for authenticated viewers.
	api.GET("/skills/:id", cfg.AuthMiddleware.OptionalAuth(), cfg.SkillHandler.GetSkill)
	api.GET("/skills/:id/reviews", cfg.ExchangeHandler.ListReviews)

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PUT("/user", cfg.UserHandler.UpdateProfile)
	protected.GET("/users/:id", cfg.UserHandler.GetUser)
	protected.GET("/users/:id/skills", cfg.SkillHandler.ListByUser)
	// Skills
	protected.POST("/skills", cfg.SkillHandler.Create)
	protected.GET("/skills", cfg.SkillHandler.ListMine)
	protected.PUT("/skills/:id", cfg.SkillHandler.Update)
	protected.DELETE("/skills/:id", cfg.SkillHandler.Deactivate)
	// Exchanges
	protected.POST("/exchanges", cfg.ExchangeHandler.Request)
	protected.GET("/exchanges", cfg.ExchangeHandler.ListMine)
	protected.GET("/exchanges/:id", cfg.ExchangeHandler.GetExchange)
	protected.POST("/exchanges/:id/accept", cfg.ExchangeHandler.Accept)
	protected.POST("/exchanges/:id/complete", cfg.ExchangeHandler.Complete)
	protected.POST("/exchanges/:id/cancel", cfg.ExchangeHandler.Cancel)
	// Recommendations and matching
	protected.GET("/recommendations", cfg.RecommendationHandler.GetRecommendations)
	protected.POST("/matches", cfg.MatchingHandler.FindMatches)
	protected.POST("/personality/infer", cfg.MatchingHandler.InferPersonality)
	// Preference learning
	protected.POST("/events", cfg.PreferenceHandler.TrackBehavior)
	protected.POST("/feedback", cfg.PreferenceHandler.Feedback)

	return router
}
