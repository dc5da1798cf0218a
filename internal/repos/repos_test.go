package repos

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.RefreshToken{},
		&types.Skill{},
		&types.SkillExchange{},
		&types.Review{},
		&types.UserPreference{},
		&types.UserEvent{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *types.User {
	t.Helper()
	user := &types.User{
		Email:      name + "@example.com",
		Password:   "irrelevant",
		Name:       name,
		Reputation: 50,
		Level:      1,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedSkill(t *testing.T, db *gorm.DB, owner *types.User, category string) *types.Skill {
	t.Helper()
	skill := &types.Skill{
		UserID:   owner.ID,
		Title:    category + " lessons",
		Category: category,
		IsActive: true,
	}
	if err := db.Create(skill).Error; err != nil {
		t.Fatalf("seed skill: %v", err)
	}
	return skill
}

func testCtx() context.Context { return context.Background() }

func nopLog() *logger.Logger { return logger.NewNop() }
