package repos

import (
	"encoding/json"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/skillbridge/skillbridge-backend/internal/types"
)

func jsonValue(t *testing.T, v interface{}) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return datatypes.JSON(raw)
}

func TestAdjustConfidenceCreatesMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPreferenceRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	got, err := repo.AdjustConfidence(testCtx(), nil, user.ID, "Programming", "interest", jsonValue(t, "Programming"), 0.1, func(current float64) float64 {
		return current + 0.2
	})
	if err != nil {
		t.Fatalf("AdjustConfidence: %v", err)
	}
	if got != 0.1+0.2 {
		t.Fatalf("seeded confidence = %v, want fn(seed)", got)
	}

	var row types.UserPreference
	if err := db.Where("user_id = ? AND category = ? AND preference_key = ?", user.ID, "Programming", "interest").First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.Confidence != got {
		t.Fatalf("stored confidence = %v, want %v", row.Confidence, got)
	}
}

func TestAdjustConfidenceUpdatesExistingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPreferenceRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	bump := func(current float64) float64 { return current + 0.1 }
	for i := 0; i < 3; i++ {
		if _, err := repo.AdjustConfidence(testCtx(), nil, user.ID, "Music", "interest", jsonValue(t, "Music"), 0.1, bump); err != nil {
			t.Fatalf("AdjustConfidence pass %d: %v", i, err)
		}
	}

	var count int64
	if err := db.Model(&types.UserPreference{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("repeated adjusts created %d rows, want 1", count)
	}

	var row types.UserPreference
	if err := db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	// seed 0.1 -> 0.2, then 0.3, then 0.4
	if row.Confidence < 0.39 || row.Confidence > 0.41 {
		t.Fatalf("confidence after three bumps = %v, want ~0.4", row.Confidence)
	}
}

func TestAdjustConfidenceKeepsValueWhenNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewPreferenceRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	if _, err := repo.AdjustConfidence(testCtx(), nil, user.ID, "Cooking", "interest", jsonValue(t, "Cooking"), 0.1, func(c float64) float64 { return c }); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Negative feedback passes no value; the stored one must survive.
	if _, err := repo.AdjustConfidence(testCtx(), nil, user.ID, "Cooking", "interest", nil, 0, func(c float64) float64 { return c - 0.05 }); err != nil {
		t.Fatalf("reduce: %v", err)
	}

	var row types.UserPreference
	if err := db.Where("user_id = ?", user.ID).First(&row).Error; err != nil {
		t.Fatalf("load row: %v", err)
	}
	var stored string
	if err := json.Unmarshal(row.Value, &stored); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if stored != "Cooking" {
		t.Fatalf("value = %q, want original kept", stored)
	}
}

func TestListStaleAndSetConfidence(t *testing.T) {
	db := newTestDB(t)
	repo := NewPreferenceRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	old := &types.UserPreference{
		UserID: user.ID, Category: "Music", PreferenceKey: "interest",
		Confidence: 0.5, UpdatedAt: time.Now().Add(-30 * 24 * time.Hour),
	}
	fresh := &types.UserPreference{
		UserID: user.ID, Category: "Music", PreferenceKey: "mode",
		Confidence: 0.5, UpdatedAt: time.Now(),
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed old: %v", err)
	}
	if err := db.Create(fresh).Error; err != nil {
		t.Fatalf("seed fresh: %v", err)
	}

	stale, err := repo.ListStale(testCtx(), nil, time.Now().Add(-7*24*time.Hour), 10)
	if err != nil {
		t.Fatalf("ListStale: %v", err)
	}
	if len(stale) != 1 || stale[0].ID != old.ID {
		t.Fatalf("ListStale returned %d rows", len(stale))
	}

	if err := repo.SetConfidence(testCtx(), nil, old.ID, 0.25); err != nil {
		t.Fatalf("SetConfidence: %v", err)
	}
	var row types.UserPreference
	if err := db.Where("id = ?", old.ID).First(&row).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if row.Confidence != 0.25 {
		t.Fatalf("confidence = %v, want 0.25", row.Confidence)
	}
}

func TestDeleteBelowFloor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPreferenceRepo(db, nopLog())
	user := seedUser(t, db, "alice")

	rows := []*types.UserPreference{
		{UserID: user.ID, Category: "A", PreferenceKey: "interest", Confidence: 0.05},
		{UserID: user.ID, Category: "B", PreferenceKey: "interest", Confidence: 0.5},
	}
	for _, r := range rows {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	n, err := repo.DeleteBelowFloor(testCtx(), nil, 0.1)
	if err != nil {
		t.Fatalf("DeleteBelowFloor: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1", n)
	}
	prefs, err := repo.ListByUser(testCtx(), nil, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(prefs) != 1 || prefs[0].Category != "B" {
		t.Fatalf("surviving rows wrong: %d", len(prefs))
	}
}
