package app

import (
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
)

type Repos struct {
	User       repos.UserRepo
	Token      repos.TokenRepo
	Skill      repos.SkillRepo
	Exchange   repos.ExchangeRepo
	Review     repos.ReviewRepo
	Preference repos.PreferenceRepo
	Event      repos.EventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:       repos.NewUserRepo(db, log),
		Token:      repos.NewTokenRepo(db, log),
		Skill:      repos.NewSkillRepo(db, log),
		Exchange:   repos.NewExchangeRepo(db, log),
		Review:     repos.NewReviewRepo(db, log),
		Preference: repos.NewPreferenceRepo(db, log),
		Event:      repos.NewEventRepo(db, log),
	}
}
