package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/matching"
	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
)

// MatchResult is the outbound envelope for a match request.
type MatchResult struct {
	Matches  []matching.Match  `json:"matches"`
	Total    int               `json:"total"`
	Criteria matching.Criteria `json:"criteria"`
}

type MatchingService interface {
	FindMatches(ctx context.Context, userID uuid.UUID, criteria matching.Criteria) (*MatchResult, error)
	// InferPersonality runs the heuristic fallback for users without a
	// declared type and persists the result.
	InferPersonality(ctx context.Context, userID uuid.UUID) (string, error)
}

type matchingService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewMatchingService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) MatchingService {
	return &matchingService{
		db:       db,
		log:      log.With("service", "MatchingService"),
		userRepo: userRepo,
	}
}

func (ms *matchingService) FindMatches(ctx context.Context, userID uuid.UUID, criteria matching.Criteria) (*MatchResult, error) {
	requesterRow, err := ms.userRepo.GetByIDWithSkills(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load requester: %w", err)
	}
	requester := toUserProfile(requesterRow, nil, nil)

	rows, err := ms.userRepo.ListWithSkills(ctx, nil, userID, neighborPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	pool := make([]*recommendation.UserProfile, 0, len(rows))
	for _, row := range rows {
		pool = append(pool, toUserProfile(row, nil, nil))
	}

	matches := matching.FindMatches(requester, pool, criteria)
	return &MatchResult{
		Matches:  matches,
		Total:    len(matches),
		Criteria: criteria,
	}, nil
}

func (ms *matchingService) InferPersonality(ctx context.Context, userID uuid.UUID) (string, error) {
	userRow, err := ms.userRepo.GetByIDWithSkills(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("load user: %w", err)
	}
	if userRow.PersonalityType != "" {
		return userRow.PersonalityType, nil
	}
	inferred := matching.InferPersonalityType(toUserProfile(userRow, nil, nil))
	if inferred == "" {
		return "", nil
	}
	userRow.PersonalityType = inferred
	if err := ms.userRepo.Update(ctx, nil, userRow); err != nil {
		return "", fmt.Errorf("persist inferred type: %w", err)
	}
	return inferred, nil
}
