package app

import (
	"github.com/skillbridge/skillbridge-backend/internal/handlers"
	"github.com/skillbridge/skillbridge-backend/internal/logger"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Skill          *handlers.SkillHandler
	Exchange       *handlers.ExchangeHandler
	Recommendation *handlers.RecommendationHandler
	Matching       *handlers.MatchingHandler
	Preference     *handlers.PreferenceHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:           handlers.NewAuthHandler(s.Auth),
		User:           handlers.NewUserHandler(s.User),
		Skill:          handlers.NewSkillHandler(s.Skill),
		Exchange:       handlers.NewExchangeHandler(s.Exchange),
		Recommendation: handlers.NewRecommendationHandler(s.Recommendation),
		Matching:       handlers.NewMatchingHandler(s.Matching),
		Preference:     handlers.NewPreferenceHandler(s.Preference),
	}
}
