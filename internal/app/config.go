package app

import (
	"strings"
	"time"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowOrigins    []string
	DecayInterval   time.Duration
	Weights         recommendation.Weights
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	decayIntervalHours := utils.GetEnvAsInt("PREFERENCE_DECAY_INTERVAL_HOURS", 24, log)

	var origins []string
	for _, origin := range strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "", log), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	weights := recommendation.DefaultWeights
	weights.Content = utils.GetEnvAsFloat("REC_WEIGHT_CONTENT", weights.Content, log)
	weights.Collaborative = utils.GetEnvAsFloat("REC_WEIGHT_COLLABORATIVE", weights.Collaborative, log)
	weights.Personality = utils.GetEnvAsFloat("REC_WEIGHT_PERSONALITY", weights.Personality, log)
	weights.Trending = utils.GetEnvAsFloat("REC_WEIGHT_TRENDING", weights.Trending, log)
	weights.Quality = utils.GetEnvAsFloat("REC_WEIGHT_QUALITY", weights.Quality, log)

	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		AllowOrigins:    origins,
		DecayInterval:   time.Duration(decayIntervalHours) * time.Hour,
		Weights:         weights,
	}
}
