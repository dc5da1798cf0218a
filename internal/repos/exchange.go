package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

var ErrExchangeNotFound = errors.New("exchange not found")

type ExchangeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, exchange *types.SkillExchange) error
	GetByID(ctx context.Context, tx *gorm.DB, exchangeID uuid.UUID) (*types.SkillExchange, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.SkillExchange, error)
	ListCompletedByRequester(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillExchange, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, exchangeID uuid.UUID, status string, rating float64, completedAt *time.Time) error
}

type exchangeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExchangeRepo(db *gorm.DB, baseLog *logger.Logger) ExchangeRepo {
	return &exchangeRepo{db: db, log: baseLog.With("repo", "ExchangeRepo")}
}

func (er *exchangeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return er.db
}

func (er *exchangeRepo) Create(ctx context.Context, tx *gorm.DB, exchange *types.SkillExchange) error {
	return er.conn(tx).WithContext(ctx).Create(exchange).Error
}

func (er *exchangeRepo) GetByID(ctx context.Context, tx *gorm.DB, exchangeID uuid.UUID) (*types.SkillExchange, error) {
	var exchange types.SkillExchange
	err := er.conn(tx).WithContext(ctx).
		Preload("Skill").
		Where("id = ?", exchangeID).
		First(&exchange).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrExchangeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}

func (er *exchangeRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status string) ([]*types.SkillExchange, error) {
	var exchanges []*types.SkillExchange
	q := er.conn(tx).WithContext(ctx).
		Preload("Skill").
		Where("provider_id = ? OR requester_id = ?", userID, userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("created_at DESC").Find(&exchanges).Error; err != nil {
		return nil, err
	}
	return exchanges, nil
}

func (er *exchangeRepo) ListCompletedByRequester(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.SkillExchange, error) {
	var exchanges []*types.SkillExchange
	if err := er.conn(tx).WithContext(ctx).
		Preload("Skill").
		Where("requester_id = ? AND status = ?", userID, types.ExchangeStatusCompleted).
		Order("completed_at DESC").
		Find(&exchanges).Error; err != nil {
		return nil, err
	}
	return exchanges, nil
}

func (er *exchangeRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, exchangeID uuid.UUID, status string, rating float64, completedAt *time.Time) error {
	updates := map[string]interface{}{"status": status}
	if rating > 0 {
		updates["rating"] = rating
	}
	if completedAt != nil {
		updates["completed_at"] = *completedAt
	}
	return er.conn(tx).WithContext(ctx).
		Model(&types.SkillExchange{}).
		Where("id = ?", exchangeID).
		Updates(updates).Error
}
