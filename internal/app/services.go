package app

import (
	"gorm.io/gorm"

	redisclient "github.com/skillbridge/skillbridge-backend/internal/clients/redis"
	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Skill          services.SkillService
	Exchange       services.ExchangeService
	Recommendation services.RecommendationService
	Matching       services.MatchingService
	Preference     services.PreferenceService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")

	cache, err := redisclient.New(log)
	if err != nil {
		log.Warn("Redis unavailable, recommendation caching disabled", "error", err)
		cache = nil
	}

	prefService := services.NewPreferenceService(db, log, r.Preference, r.Event, r.Skill, r.User)

	return Services{
		Auth:           services.NewAuthService(db, log, r.User, r.Token, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:           services.NewUserService(db, log, r.User),
		Skill:          services.NewSkillService(db, log, r.Skill, prefService),
		Exchange:       services.NewExchangeService(db, log, r.Exchange, r.Skill, r.User, r.Review, prefService),
		Recommendation: services.NewRecommendationService(db, log, r.User, r.Skill, r.Exchange, r.Preference, r.Event, cache, cfg.Weights),
		Matching:       services.NewMatchingService(db, log, r.User),
		Preference:     prefService,
	}
}
