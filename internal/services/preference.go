package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/preferences"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

// BehaviorContext carries the optional context fields of a behavioral
// signal; zero values mean "unknown".
type BehaviorContext struct {
	TimeSpentSeconds int  `json:"time_spent_seconds"`
	HighIntensity    bool `json:"high_intensity"`
}

type PreferenceService interface {
	// LearnFromBehavior ingests one positive behavioral signal. Callers
	// treat it as fire-and-forget; errors are for logging, not for
	// failing the originating request.
	LearnFromBehavior(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID, behaviorCtx BehaviorContext) error
	// LearnFromNegativeFeedback ingests an explicit rejection signal.
	LearnFromNegativeFeedback(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID) error
	// DecayPreferences runs one decay sweep over stale records.
	DecayPreferences(ctx context.Context) error
	// StartDecayLoop runs DecayPreferences on the interval until ctx ends.
	StartDecayLoop(ctx context.Context, interval time.Duration)
}

type preferenceService struct {
	db        *gorm.DB
	log       *logger.Logger
	prefRepo  repos.PreferenceRepo
	eventRepo repos.EventRepo
	skillRepo repos.SkillRepo
	userRepo  repos.UserRepo
}

const (
	repeatWindow    = 24 * time.Hour
	decaySweepLimit = 1000
)

func NewPreferenceService(
	db *gorm.DB,
	log *logger.Logger,
	prefRepo repos.PreferenceRepo,
	eventRepo repos.EventRepo,
	skillRepo repos.SkillRepo,
	userRepo repos.UserRepo,
) PreferenceService {
	return &preferenceService{
		db:        db,
		log:       log.With("service", "PreferenceService"),
		prefRepo:  prefRepo,
		eventRepo: eventRepo,
		skillRepo: skillRepo,
		userRepo:  userRepo,
	}
}

func (ps *preferenceService) LearnFromBehavior(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID, behaviorCtx BehaviorContext) error {
	if !preferences.IsPositiveAction(action) {
		return fmt.Errorf("unknown positive action %q", action)
	}

	meta, err := ps.resolveMetadata(ctx, resource, resourceID)
	if err != nil {
		return err
	}
	signals := preferences.Signals(resource, meta)
	if len(signals) == 0 {
		return nil
	}

	repeats, err := ps.eventRepo.CountRecent(ctx, nil, userID, action, resourceID, time.Now().Add(-repeatWindow))
	if err != nil {
		ps.log.Warn("counting repeated actions failed, assuming first occurrence", "error", err)
		repeats = 0
	}

	strength := preferences.Strength(action, preferences.Context{
		TimeSpentSeconds: behaviorCtx.TimeSpentSeconds,
		RepeatCount:      int(repeats) + 1,
		HighIntensity:    behaviorCtx.HighIntensity,
	})

	for _, sig := range signals {
		value, _ := json.Marshal(sig.Value)
		if _, err := ps.prefRepo.AdjustConfidence(ctx, nil, userID, sig.Category, sig.Key, datatypes.JSON(value), preferences.ConfidenceFloor, func(current float64) float64 {
			return preferences.UpdateConfidence(current, strength)
		}); err != nil {
			return fmt.Errorf("update preference %s/%s: %w", sig.Category, sig.Key, err)
		}
	}

	return ps.recordEvent(ctx, userID, action, resource, resourceID, behaviorCtx)
}

func (ps *preferenceService) LearnFromNegativeFeedback(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID) error {
	if !preferences.IsNegativeAction(action) {
		return fmt.Errorf("unknown negative action %q", action)
	}

	meta, err := ps.resolveMetadata(ctx, resource, resourceID)
	if err != nil {
		return err
	}
	for _, sig := range preferences.Signals(resource, meta) {
		if _, err := ps.prefRepo.AdjustConfidence(ctx, nil, userID, sig.Category, sig.Key, nil, 0, func(current float64) float64 {
			return preferences.ApplyNegative(current, action)
		}); err != nil {
			return fmt.Errorf("reduce preference %s/%s: %w", sig.Category, sig.Key, err)
		}
	}

	return ps.recordEvent(ctx, userID, action, resource, resourceID, BehaviorContext{})
}

func (ps *preferenceService) DecayPreferences(ctx context.Context) error {
	now := time.Now()
	stale, err := ps.prefRepo.ListStale(ctx, nil, now.Add(-7*24*time.Hour), decaySweepLimit)
	if err != nil {
		return fmt.Errorf("list stale preferences: %w", err)
	}

	var decayed, pruned int
	for _, pref := range stale {
		next := preferences.Decay(pref.Confidence, pref.UpdatedAt, now)
		if next == pref.Confidence {
			continue
		}
		if next < preferences.ConfidenceFloor {
			if err := ps.prefRepo.Delete(ctx, nil, pref.ID); err != nil {
				return fmt.Errorf("prune preference: %w", err)
			}
			pruned++
			continue
		}
		if err := ps.prefRepo.SetConfidence(ctx, nil, pref.ID, next); err != nil {
			return fmt.Errorf("decay preference: %w", err)
		}
		decayed++
	}
	if decayed > 0 || pruned > 0 {
		ps.log.Info("preference decay sweep finished", "decayed", decayed, "pruned", pruned)
	}
	return nil
}

func (ps *preferenceService) StartDecayLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ps.DecayPreferences(ctx); err != nil {
					ps.log.Error("preference decay sweep failed", "error", err)
				}
			}
		}
	}()
}

// resolveMetadata loads the acted-on resource and fills the dispatch-table
// input from it.
func (ps *preferenceService) resolveMetadata(ctx context.Context, resource string, resourceID uuid.UUID) (preferences.ResourceMetadata, error) {
	var meta preferences.ResourceMetadata
	switch resource {
	case "skill":
		skill, err := ps.skillRepo.GetByID(ctx, nil, resourceID)
		if err != nil {
			return meta, fmt.Errorf("load skill: %w", err)
		}
		meta.SkillCategory = skill.Category
		meta.Difficulty = skill.Difficulty
		meta.Mode = skill.Mode
		meta.DurationMinutes = skill.DurationMinutes
		meta.Price = skill.Price
		meta.PricePresent = true
	case "user":
		user, err := ps.userRepo.GetByID(ctx, nil, resourceID)
		if err != nil {
			return meta, fmt.Errorf("load user: %w", err)
		}
		meta.PersonalityType = user.PersonalityType
	default:
		return meta, fmt.Errorf("unknown resource %q", resource)
	}
	return meta, nil
}

func (ps *preferenceService) recordEvent(ctx context.Context, userID uuid.UUID, action, resource string, resourceID uuid.UUID, behaviorCtx BehaviorContext) error {
	raw, _ := json.Marshal(behaviorCtx)
	event := &types.UserEvent{
		UserID:     userID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   datatypes.JSON(raw),
	}
	if err := ps.eventRepo.Create(ctx, nil, event); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}
