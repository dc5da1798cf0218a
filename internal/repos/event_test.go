package repos

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge-backend/internal/types"
)

func TestEventRepoCountRecentWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepo(db, nopLog())
	user := seedUser(t, db, "alice")
	skillID := uuid.New()

	now := time.Now()
	events := []*types.UserEvent{
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: skillID, CreatedAt: now.Add(-time.Hour)},
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: skillID, CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: skillID, CreatedAt: now.Add(-48 * time.Hour)},
		{UserID: user.ID, Action: "like", Resource: "skill", ResourceID: skillID, CreatedAt: now.Add(-time.Hour)},
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: uuid.New(), CreatedAt: now.Add(-time.Hour)},
	}
	for _, e := range events {
		if err := repo.Create(testCtx(), nil, e); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	count, err := repo.CountRecent(testCtx(), nil, user.ID, "view", skillID, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("CountRecent: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want the 2 in-window views of this skill", count)
	}
}

func TestEventRepoListRecentResourceIDsDistinct(t *testing.T) {
	db := newTestDB(t)
	repo := NewEventRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	now := time.Now()
	seen := uuid.New()
	other := uuid.New()
	events := []*types.UserEvent{
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: seen, CreatedAt: now.Add(-time.Hour)},
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: seen, CreatedAt: now.Add(-2 * time.Hour)},
		{UserID: user.ID, Action: "like", Resource: "skill", ResourceID: other, CreatedAt: now.Add(-3 * time.Hour)},
		{UserID: user.ID, Action: "view", Resource: "user", ResourceID: uuid.New(), CreatedAt: now.Add(-time.Hour)},
		{UserID: user.ID, Action: "view", Resource: "skill", ResourceID: uuid.New(), CreatedAt: now.Add(-10 * 24 * time.Hour)},
	}
	for _, e := range events {
		if err := repo.Create(testCtx(), nil, e); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	ids, err := repo.ListRecentResourceIDs(testCtx(), nil, user.ID, "skill", now.Add(-7*24*time.Hour), 10)
	if err != nil {
		t.Fatalf("ListRecentResourceIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %d, want 2 distinct skills", len(ids))
	}
	if ids[0] != seen {
		t.Fatalf("most recently touched skill not first: %v", ids)
	}
}
