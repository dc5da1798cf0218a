package repos

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge-backend/internal/types"
)

func TestUserRepoGetByEmailAndNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, nopLog())
	seeded := seedUser(t, db, "alice")

	got, err := repo.GetByEmail(testCtx(), nil, "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("wrong user returned")
	}

	if _, err := repo.GetByEmail(testCtx(), nil, "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing email error = %v, want ErrUserNotFound", err)
	}
	if _, err := repo.GetByID(testCtx(), nil, uuid.New()); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing id error = %v, want ErrUserNotFound", err)
	}
}

func TestUserRepoEmailExists(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, nopLog())
	seedUser(t, db, "alice")

	exists, err := repo.EmailExists(testCtx(), nil, "alice@example.com")
	if err != nil || !exists {
		t.Fatalf("EmailExists = %v, %v; want true", exists, err)
	}
	exists, err = repo.EmailExists(testCtx(), nil, "bob@example.com")
	if err != nil || exists {
		t.Fatalf("EmailExists for absent email = %v, %v; want false", exists, err)
	}
}

func TestUserRepoAddReputationClamps(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	if err := repo.AddReputation(testCtx(), nil, user.ID, 60); err != nil {
		t.Fatalf("AddReputation up: %v", err)
	}
	var row types.User
	if err := db.Where("id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if row.Reputation != 100 {
		t.Fatalf("reputation after +60 from 50 = %v, want clamped 100", row.Reputation)
	}

	if err := repo.AddReputation(testCtx(), nil, user.ID, -250); err != nil {
		t.Fatalf("AddReputation down: %v", err)
	}
	if err := db.Where("id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Reputation != 0 {
		t.Fatalf("reputation after -250 = %v, want clamped 0", row.Reputation)
	}
}

func TestUserRepoGetByIDWithSkillsFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, nopLog())
	user := seedUser(t, db, "alice")
	seedSkill(t, db, user, "Programming")
	inactive := seedSkill(t, db, user, "Music")
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := repo.GetByIDWithSkills(testCtx(), nil, user.ID)
	if err != nil {
		t.Fatalf("GetByIDWithSkills: %v", err)
	}
	if len(got.Skills) != 1 || got.Skills[0].Category != "Programming" {
		t.Fatalf("preloaded skills = %d, want only the active one", len(got.Skills))
	}
}

func TestUserRepoListWithSkillsExcludes(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, nopLog())
	me := seedUser(t, db, "me")
	other := seedUser(t, db, "other")
	seedSkill(t, db, other, "Music")

	got, err := repo.ListWithSkills(testCtx(), nil, me.ID, 10)
	if err != nil {
		t.Fatalf("ListWithSkills: %v", err)
	}
	if len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("list = %d users, want only the other user", len(got))
	}
}

func TestUserRepoTouchActivity(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	at := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.TouchActivity(testCtx(), nil, user.ID, at); err != nil {
		t.Fatalf("TouchActivity: %v", err)
	}
	var row types.User
	if err := db.Where("id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if !row.LastActivity.Equal(at) {
		t.Fatalf("last activity = %v, want %v", row.LastActivity, at)
	}
}
