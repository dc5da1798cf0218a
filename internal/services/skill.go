package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

var (
	ErrSkillNotFound = repos.ErrSkillNotFound
	ErrNotSkillOwner = errors.New("skill belongs to another user")
)

// SkillInput carries the caller-editable fields of a skill listing.
type SkillInput struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Tags            []string `json:"tags"`
	Difficulty      string   `json:"difficulty"`
	Mode            string   `json:"mode"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           float64  `json:"price"`
}

type SkillService interface {
	Create(ctx context.Context, userID uuid.UUID, input SkillInput) (*types.Skill, error)
	GetByID(ctx context.Context, skillID uuid.UUID) (*types.Skill, error)
	ListByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*types.Skill, error)
	Update(ctx context.Context, userID, skillID uuid.UUID, input SkillInput) (*types.Skill, error)
	Deactivate(ctx context.Context, userID, skillID uuid.UUID) error
	// RecordView bumps the view counter and feeds the behavioral signal
	// into preference learning. Learning failures are logged, not returned.
	RecordView(ctx context.Context, viewerID, skillID uuid.UUID, behaviorCtx BehaviorContext) (*types.Skill, error)
}

type skillService struct {
	db        *gorm.DB
	log       *logger.Logger
	skillRepo repos.SkillRepo
	prefSvc   PreferenceService
}

func NewSkillService(db *gorm.DB, log *logger.Logger, skillRepo repos.SkillRepo, prefSvc PreferenceService) SkillService {
	return &skillService{
		db:        db,
		log:       log.With("service", "SkillService"),
		skillRepo: skillRepo,
		prefSvc:   prefSvc,
	}
}

func (ss *skillService) Create(ctx context.Context, userID uuid.UUID, input SkillInput) (*types.Skill, error) {
	if err := validateSkillInput(&input); err != nil {
		return nil, err
	}
	skill := &types.Skill{
		UserID:          userID,
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Subcategory:     input.Subcategory,
		Tags:            datatypes.JSONSlice[string](input.Tags),
		Difficulty:      input.Difficulty,
		Mode:            input.Mode,
		DurationMinutes: input.DurationMinutes,
		Price:           input.Price,
		IsActive:        true,
	}
	if _, err := ss.skillRepo.Create(ctx, nil, []*types.Skill{skill}); err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return skill, nil
}

func (ss *skillService) GetByID(ctx context.Context, skillID uuid.UUID) (*types.Skill, error) {
	return ss.skillRepo.GetByID(ctx, nil, skillID)
}

func (ss *skillService) ListByUser(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*types.Skill, error) {
	return ss.skillRepo.ListByUser(ctx, nil, userID, includeInactive)
}

func (ss *skillService) Update(ctx context.Context, userID, skillID uuid.UUID, input SkillInput) (*types.Skill, error) {
	skill, err := ss.ownedSkill(ctx, userID, skillID)
	if err != nil {
		return nil, err
	}
	if err := validateSkillInput(&input); err != nil {
		return nil, err
	}
	skill.Title = input.Title
	skill.Description = input.Description
	skill.Category = input.Category
	skill.Subcategory = input.Subcategory
	skill.Tags = datatypes.JSONSlice[string](input.Tags)
	skill.Difficulty = input.Difficulty
	skill.Mode = input.Mode
	skill.DurationMinutes = input.DurationMinutes
	skill.Price = input.Price
	if err := ss.skillRepo.Update(ctx, nil, skill); err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return skill, nil
}

func (ss *skillService) Deactivate(ctx context.Context, userID, skillID uuid.UUID) error {
	skill, err := ss.ownedSkill(ctx, userID, skillID)
	if err != nil {
		return err
	}
	skill.IsActive = false
	if err := ss.skillRepo.Update(ctx, nil, skill); err != nil {
		return fmt.Errorf("deactivate skill: %w", err)
	}
	return nil
}

func (ss *skillService) RecordView(ctx context.Context, viewerID, skillID uuid.UUID, behaviorCtx BehaviorContext) (*types.Skill, error) {
	skill, err := ss.skillRepo.GetByID(ctx, nil, skillID)
	if err != nil {
		return nil, err
	}
	if err := ss.skillRepo.IncrementViewCount(ctx, nil, skillID); err != nil {
		return nil, fmt.Errorf("count view: %w", err)
	}
	skill.ViewCount++

	if viewerID != uuid.Nil && viewerID != skill.UserID {
		if err := ss.prefSvc.LearnFromBehavior(ctx, viewerID, "view", "skill", skillID, behaviorCtx); err != nil {
			ss.log.Warn("learning from view failed", "skill_id", skillID, "error", err)
		}
	}
	return skill, nil
}

func (ss *skillService) ownedSkill(ctx context.Context, userID, skillID uuid.UUID) (*types.Skill, error) {
	skill, err := ss.skillRepo.GetByID(ctx, nil, skillID)
	if err != nil {
		return nil, err
	}
	if skill.UserID != userID {
		return nil, ErrNotSkillOwner
	}
	return skill, nil
}

func validateSkillInput(input *SkillInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Category = strings.TrimSpace(input.Category)
	if input.Title == "" {
		return fmt.Errorf("title is required")
	}
	if input.Category == "" {
		return fmt.Errorf("category is required")
	}
	switch input.Difficulty {
	case "", types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyAdvanced:
	default:
		return fmt.Errorf("unknown difficulty %q", input.Difficulty)
	}
	switch input.Mode {
	case "", types.ModeOnline, types.ModeInPerson, types.ModeHybrid:
	default:
		return fmt.Errorf("unknown mode %q", input.Mode)
	}
	if input.DurationMinutes < 0 {
		return fmt.Errorf("duration cannot be negative")
	}
	if input.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	return nil
}
