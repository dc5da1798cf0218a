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

var ErrUserNotFound = errors.New("user not found")

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByIDWithSkills(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, user *types.User) error
	AddReputation(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta float64) error
	TouchActivity(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error
	ListWithSkills(ctx context.Context, tx *gorm.DB, excludeID uuid.UUID, limit int) ([]*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := ur.conn(tx).WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	var user types.User
	err := ur.conn(tx).WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) GetByIDWithSkills(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	var user types.User
	err := ur.conn(tx).WithContext(ctx).
		Preload("Skills", "is_active = ?", true).
		Where("id = ?", userID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	var user types.User
	err := ur.conn(tx).WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ur *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	if err := ur.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) Update(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return ur.conn(tx).WithContext(ctx).Save(user).Error
}

func (ur *userRepo) AddReputation(ctx context.Context, tx *gorm.DB, userID uuid.UUID, delta float64) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("reputation", gorm.Expr(
			"CASE WHEN reputation + ? > 100 THEN 100 WHEN reputation + ? < 0 THEN 0 ELSE reputation + ? END",
			delta, delta, delta,
		)).Error
}

func (ur *userRepo) TouchActivity(ctx context.Context, tx *gorm.DB, userID uuid.UUID, at time.Time) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("last_activity", at).Error
}

func (ur *userRepo) ListWithSkills(ctx context.Context, tx *gorm.DB, excludeID uuid.UUID, limit int) ([]*types.User, error) {
	var users []*types.User
	q := ur.conn(tx).WithContext(ctx).
		Preload("Skills", "is_active = ?", true).
		Order("last_activity DESC")
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
