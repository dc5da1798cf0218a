package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

type EventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, event *types.UserEvent) error
	// CountRecent counts matching events within the window, used to detect
	// repeated actions for the learning-strength multiplier.
	CountRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, resourceID uuid.UUID, since time.Time) (int64, error)
	ListRecentResourceIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, resource string, since time.Time, limit int) ([]uuid.UUID, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{db: db, log: baseLog.With("repo", "EventRepo")}
}

func (er *eventRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *eventRepo) Create(ctx context.Context, tx *gorm.DB, event *types.UserEvent) error {
	return er.conn(tx).WithContext(ctx).Create(event).Error
}

func (er *eventRepo) CountRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, resourceID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := er.conn(tx).WithContext(ctx).
		Model(&types.UserEvent{}).
		Where("user_id = ? AND action = ? AND resource_id = ? AND created_at >= ?", userID, action, resourceID, since).
		Count(&count).Error
	return count, err
}

func (er *eventRepo) ListRecentResourceIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, resource string, since time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	q := er.conn(tx).WithContext(ctx).
		Model(&types.UserEvent{}).
		Where("user_id = ? AND resource = ? AND created_at >= ?", userID, resource, since).
		Group("resource_id").
		Order("MAX(created_at) DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Pluck("resource_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
