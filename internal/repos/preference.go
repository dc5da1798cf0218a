package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

// ErrConcurrentUpdate is returned after the optimistic-concurrency retry
// budget is exhausted on a preference row.
var ErrConcurrentUpdate = errors.New("preference row changed concurrently")

const upsertRetries = 3

type PreferenceRepo interface {
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserPreference, error)
	// AdjustConfidence applies fn to the row's current confidence under
	// optimistic concurrency: the update only lands if the confidence it
	// read is still in place, retrying on interleaved writers. A missing
	// row is created seeded at seedConfidence before fn applies.
	AdjustConfidence(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category, key string, value datatypes.JSON, seedConfidence float64, fn func(current float64) float64) (float64, error)
	ListStale(ctx context.Context, tx *gorm.DB, updatedBefore time.Time, limit int) ([]*types.UserPreference, error)
	SetConfidence(ctx context.Context, tx *gorm.DB, prefID uuid.UUID, confidence float64) error
	Delete(ctx context.Context, tx *gorm.DB, prefID uuid.UUID) error
	DeleteBelowFloor(ctx context.Context, tx *gorm.DB, floor float64) (int64, error)
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	return &preferenceRepo{db: db, log: baseLog.With("repo", "PreferenceRepo")}
}

func (pr *preferenceRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return pr.db
}

func (pr *preferenceRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserPreference, error) {
	var prefs []*types.UserPreference
	if err := pr.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("confidence DESC").
		Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (pr *preferenceRepo) AdjustConfidence(ctx context.Context, tx *gorm.DB, userID uuid.UUID, category, key string, value datatypes.JSON, seedConfidence float64, fn func(current float64) float64) (float64, error) {
	conn := pr.conn(tx)
	for attempt := 0; attempt < upsertRetries; attempt++ {
		var pref types.UserPreference
		err := conn.WithContext(ctx).
			Where("user_id = ? AND category = ? AND preference_key = ?", userID, category, key).
			First(&pref).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pref = types.UserPreference{
				UserID:        userID,
				Category:      category,
				PreferenceKey: key,
				Value:         value,
				Confidence:    fn(seedConfidence),
				UpdatedAt:     time.Now(),
			}
			createErr := conn.WithContext(ctx).Create(&pref).Error
			if createErr == nil {
				return pref.Confidence, nil
			}
			// Lost the insert race; loop back around and update instead.
			pr.log.Debug("preference insert raced, retrying as update", "user_id", userID, "category", category, "key", key)
			continue
		case err != nil:
			return 0, fmt.Errorf("load preference: %w", err)
		}

		next := fn(pref.Confidence)
		updates := map[string]interface{}{
			"confidence": next,
			"updated_at": time.Now(),
		}
		if len(value) > 0 {
			updates["value"] = value
		}
		res := conn.WithContext(ctx).
			Model(&types.UserPreference{}).
			Where("id = ? AND confidence = ?", pref.ID, pref.Confidence).
			Updates(updates)
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected > 0 {
			return next, nil
		}
	}
	return 0, ErrConcurrentUpdate
}

func (pr *preferenceRepo) ListStale(ctx context.Context, tx *gorm.DB, updatedBefore time.Time, limit int) ([]*types.UserPreference, error) {
	var prefs []*types.UserPreference
	q := pr.conn(tx).WithContext(ctx).
		Where("updated_at < ?", updatedBefore).
		Order("updated_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

func (pr *preferenceRepo) SetConfidence(ctx context.Context, tx *gorm.DB, prefID uuid.UUID, confidence float64) error {
	return pr.conn(tx).WithContext(ctx).
		Model(&types.UserPreference{}).
		Where("id = ?", prefID).
		Update("confidence", confidence).Error
}

func (pr *preferenceRepo) Delete(ctx context.Context, tx *gorm.DB, prefID uuid.UUID) error {
	return pr.conn(tx).WithContext(ctx).
		Delete(&types.UserPreference{}, "id = ?", prefID).Error
}

func (pr *preferenceRepo) DeleteBelowFloor(ctx context.Context, tx *gorm.DB, floor float64) (int64, error) {
	res := pr.conn(tx).WithContext(ctx).
		Where("confidence < ?", floor).
		Delete(&types.UserPreference{})
	return res.RowsAffected, res.Error
}
