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

var ErrTokenNotFound = errors.New("refresh token not found")

type TokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.RefreshToken) error
	GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.RefreshToken, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) error
}

type tokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTokenRepo(db *gorm.DB, baseLog *logger.Logger) TokenRepo {
	return &tokenRepo{db: db, log: baseLog.With("repo", "TokenRepo")}
}

func (tr *tokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return tr.db
}

func (tr *tokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.RefreshToken) error {
	return tr.conn(tx).WithContext(ctx).Create(token).Error
}

func (tr *tokenRepo) GetByToken(ctx context.Context, tx *gorm.DB, token string) (*types.RefreshToken, error) {
	var rt types.RefreshToken
	err := tr.conn(tx).WithContext(ctx).
		Where("token = ?", token).
		First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func (tr *tokenRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return tr.conn(tx).WithContext(ctx).
		Delete(&types.RefreshToken{}, "user_id = ?", userID).Error
}

func (tr *tokenRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) error {
	return tr.conn(tx).WithContext(ctx).
		Delete(&types.RefreshToken{}, "expires_at < ?", now).Error
}
