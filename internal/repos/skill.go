package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

var ErrSkillNotFound = errors.New("skill not found")

// CandidateFilter narrows the candidate pool handed to the recommenders.
type CandidateFilter struct {
	ExcludeOwner uuid.UUID
	Categories   []string
	MinRating    float64
	MinViewCount int
	Limit        int
}

type SkillRepo interface {
	Create(ctx context.Context, tx *gorm.DB, skills []*types.Skill) ([]*types.Skill, error)
	GetByID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) (*types.Skill, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeInactive bool) ([]*types.Skill, error)
	ListCandidates(ctx context.Context, tx *gorm.DB, f CandidateFilter) ([]*types.Skill, error)
	Update(ctx context.Context, tx *gorm.DB, skill *types.Skill) error
	Delete(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) error
	IncrementViewCount(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) error
	IncrementRequestCount(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) error
	ApplyRating(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, rating float64) error
}

type skillRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillRepo(db *gorm.DB, baseLog *logger.Logger) SkillRepo {
	return &skillRepo{db: db, log: baseLog.With("repo", "SkillRepo")}
}

func (sr *skillRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return sr.db
}

func (sr *skillRepo) Create(ctx context.Context, tx *gorm.DB, skills []*types.Skill) ([]*types.Skill, error) {
	if len(skills) == 0 {
		return []*types.Skill{}, nil
	}
	if err := sr.conn(tx).WithContext(ctx).Create(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (sr *skillRepo) GetByID(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) (*types.Skill, error) {
	var skill types.Skill
	err := sr.conn(tx).WithContext(ctx).
		Preload("User").
		Where("id = ?", skillID).
		First(&skill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSkillNotFound
	}
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

func (sr *skillRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeInactive bool) ([]*types.Skill, error) {
	var skills []*types.Skill
	q := sr.conn(tx).WithContext(ctx).Where("user_id = ?", userID)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("created_at DESC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (sr *skillRepo) ListCandidates(ctx context.Context, tx *gorm.DB, f CandidateFilter) ([]*types.Skill, error) {
	var skills []*types.Skill
	q := sr.conn(tx).WithContext(ctx).
		Preload("User").
		Where("is_active = ?", true)
	if f.ExcludeOwner != uuid.Nil {
		q = q.Where("user_id <> ?", f.ExcludeOwner)
	}
	if len(f.Categories) > 0 {
		q = q.Where("category IN ?", f.Categories)
	}
	if f.MinRating > 0 {
		q = q.Where("rating > ?", f.MinRating)
	}
	if f.MinViewCount > 0 {
		q = q.Where("view_count > ?", f.MinViewCount)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if err := q.Order("view_count DESC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (sr *skillRepo) Update(ctx context.Context, tx *gorm.DB, skill *types.Skill) error {
	return sr.conn(tx).WithContext(ctx).Save(skill).Error
}

func (sr *skillRepo) Delete(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) error {
	return sr.conn(tx).WithContext(ctx).Delete(&types.Skill{}, "id = ?", skillID).Error
}

func (sr *skillRepo) IncrementViewCount(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) error {
	return sr.conn(tx).WithContext(ctx).
		Model(&types.Skill{}).
		Where("id = ?", skillID).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (sr *skillRepo) IncrementRequestCount(ctx context.Context, tx *gorm.DB, skillID uuid.UUID) error {
	return sr.conn(tx).WithContext(ctx).
		Model(&types.Skill{}).
		Where("id = ?", skillID).
		Update("request_count", gorm.Expr("request_count + 1")).Error
}

// ApplyRating folds one new rating into the running average.
func (sr *skillRepo) ApplyRating(ctx context.Context, tx *gorm.DB, skillID uuid.UUID, rating float64) error {
	return sr.conn(tx).WithContext(ctx).
		Model(&types.Skill{}).
		Where("id = ?", skillID).
		Updates(map[string]interface{}{
			"rating":       gorm.Expr("(rating * review_count + ?) / (review_count + 1)", rating),
			"review_count": gorm.Expr("review_count + 1"),
		}).Error
}
