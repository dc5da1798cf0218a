package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, review *types.Review) error
	ListBySkill(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, limit int) ([]*types.Review, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return &reviewRepo{db: db, log: baseLog.With("repo", "ReviewRepo")}
}

func (rr *reviewRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return rr.db
}

func (rr *reviewRepo) Create(ctx context.Context, tx *gorm.DB, review *types.Review) error {
	return rr.conn(tx).WithContext(ctx).Create(review).Error
}

func (rr *reviewRepo) ListBySkill(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, limit int) ([]*types.Review, error) {
	var reviews []*types.Review
	q := rr.conn(tx).WithContext(ctx).
		Preload("Reviewer").
		Where("skill_id = ?", skillID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
