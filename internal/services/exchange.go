package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

var (
	ErrExchangeNotFound   = repos.ErrExchangeNotFound
	ErrNotExchangeParty   = errors.New("exchange belongs to other users")
	ErrInvalidTransition  = errors.New("exchange is not in a state that allows this")
	ErrSelfExchange       = errors.New("cannot request an exchange on your own skill")
	ErrInvalidRatingValue = errors.New("rating must be between 1 and 5")
)

// Reputation deltas applied when an exchange completes.
const (
	providerCompletionReputation  = 2.0
	requesterCompletionReputation = 1.0
)

type ExchangeService interface {
	// Request opens a pending exchange on a skill and bumps its request
	// counter.
	Request(ctx context.Context, requesterID, skillID uuid.UUID, message string) (*types.SkillExchange, error)
	GetByID(ctx context.Context, userID, exchangeID uuid.UUID) (*types.SkillExchange, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]*types.SkillExchange, error)
	// Accept moves a pending exchange to accepted; provider only.
	Accept(ctx context.Context, providerID, exchangeID uuid.UUID) (*types.SkillExchange, error)
	// Complete moves an accepted exchange to completed, folds the rating
	// into the skill, records the requester's review, awards reputation,
	// and feeds the completion signal into preference learning. Requester
	// only.
	Complete(ctx context.Context, requesterID, exchangeID uuid.UUID, rating float64, comment string) (*types.SkillExchange, error)
	ListReviews(ctx context.Context, skillID uuid.UUID, limit int) ([]*types.Review, error)
	// Cancel moves a pending or accepted exchange to cancelled; either
	// party may cancel.
	Cancel(ctx context.Context, userID, exchangeID uuid.UUID) (*types.SkillExchange, error)
}

type exchangeService struct {
	db         *gorm.DB
	log        *logger.Logger
	exchRepo   repos.ExchangeRepo
	skillRepo  repos.SkillRepo
	userRepo   repos.UserRepo
	reviewRepo repos.ReviewRepo
	prefSvc    PreferenceService
}

func NewExchangeService(
	db *gorm.DB,
	log *logger.Logger,
	exchRepo repos.ExchangeRepo,
	skillRepo repos.SkillRepo,
	userRepo repos.UserRepo,
	reviewRepo repos.ReviewRepo,
	prefSvc PreferenceService,
) ExchangeService {
	return &exchangeService{
		db:         db,
		log:        log.With("service", "ExchangeService"),
		exchRepo:   exchRepo,
		skillRepo:  skillRepo,
		userRepo:   userRepo,
		reviewRepo: reviewRepo,
		prefSvc:    prefSvc,
	}
}

func (es *exchangeService) Request(ctx context.Context, requesterID, skillID uuid.UUID, message string) (*types.SkillExchange, error) {
	skill, err := es.skillRepo.GetByID(ctx, nil, skillID)
	if err != nil {
		return nil, err
	}
	if skill.UserID == requesterID {
		return nil, ErrSelfExchange
	}
	if !skill.IsActive {
		return nil, fmt.Errorf("skill is no longer offered")
	}

	exchange := &types.SkillExchange{
		SkillID:     skillID,
		ProviderID:  skill.UserID,
		RequesterID: requesterID,
		Status:      types.ExchangeStatusPending,
		Message:     message,
	}
	err = es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := es.exchRepo.Create(ctx, tx, exchange); err != nil {
			return fmt.Errorf("create exchange: %w", err)
		}
		if err := es.skillRepo.IncrementRequestCount(ctx, tx, skillID); err != nil {
			return fmt.Errorf("count request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := es.prefSvc.LearnFromBehavior(ctx, requesterID, "request", "skill", skillID, BehaviorContext{}); err != nil {
		es.log.Warn("learning from request failed", "skill_id", skillID, "error", err)
	}
	return exchange, nil
}

func (es *exchangeService) GetByID(ctx context.Context, userID, exchangeID uuid.UUID) (*types.SkillExchange, error) {
	exchange, err := es.exchRepo.GetByID(ctx, nil, exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange.ProviderID != userID && exchange.RequesterID != userID {
		return nil, ErrNotExchangeParty
	}
	return exchange, nil
}

func (es *exchangeService) ListByUser(ctx context.Context, userID uuid.UUID, status string) ([]*types.SkillExchange, error) {
	return es.exchRepo.ListByUser(ctx, nil, userID, status)
}

func (es *exchangeService) Accept(ctx context.Context, providerID, exchangeID uuid.UUID) (*types.SkillExchange, error) {
	exchange, err := es.exchRepo.GetByID(ctx, nil, exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange.ProviderID != providerID {
		return nil, ErrNotExchangeParty
	}
	if exchange.Status != types.ExchangeStatusPending {
		return nil, ErrInvalidTransition
	}
	if err := es.exchRepo.UpdateStatus(ctx, nil, exchangeID, types.ExchangeStatusAccepted, 0, nil); err != nil {
		return nil, fmt.Errorf("accept exchange: %w", err)
	}
	exchange.Status = types.ExchangeStatusAccepted
	return exchange, nil
}

func (es *exchangeService) Complete(ctx context.Context, requesterID, exchangeID uuid.UUID, rating float64, comment string) (*types.SkillExchange, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRatingValue
	}
	exchange, err := es.exchRepo.GetByID(ctx, nil, exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange.RequesterID != requesterID {
		return nil, ErrNotExchangeParty
	}
	if exchange.Status != types.ExchangeStatusAccepted {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	err = es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := es.exchRepo.UpdateStatus(ctx, tx, exchangeID, types.ExchangeStatusCompleted, rating, &now); err != nil {
			return fmt.Errorf("complete exchange: %w", err)
		}
		if err := es.skillRepo.ApplyRating(ctx, tx, exchange.SkillID, rating); err != nil {
			return fmt.Errorf("apply rating: %w", err)
		}
		review := &types.Review{
			SkillID:    exchange.SkillID,
			ReviewerID: requesterID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := es.reviewRepo.Create(ctx, tx, review); err != nil {
			return fmt.Errorf("record review: %w", err)
		}
		if err := es.userRepo.AddReputation(ctx, tx, exchange.ProviderID, providerCompletionReputation); err != nil {
			return fmt.Errorf("award provider reputation: %w", err)
		}
		if err := es.userRepo.AddReputation(ctx, tx, exchange.RequesterID, requesterCompletionReputation); err != nil {
			return fmt.Errorf("award requester reputation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	exchange.Status = types.ExchangeStatusCompleted
	exchange.Rating = rating
	exchange.CompletedAt = &now

	if err := es.prefSvc.LearnFromBehavior(ctx, requesterID, "complete", "skill", exchange.SkillID, BehaviorContext{}); err != nil {
		es.log.Warn("learning from completion failed", "skill_id", exchange.SkillID, "error", err)
	}
	return exchange, nil
}

func (es *exchangeService) ListReviews(ctx context.Context, skillID uuid.UUID, limit int) ([]*types.Review, error) {
	if _, err := es.skillRepo.GetByID(ctx, nil, skillID); err != nil {
		return nil, err
	}
	return es.reviewRepo.ListBySkill(ctx, nil, skillID, limit)
}

func (es *exchangeService) Cancel(ctx context.Context, userID, exchangeID uuid.UUID) (*types.SkillExchange, error) {
	exchange, err := es.exchRepo.GetByID(ctx, nil, exchangeID)
	if err != nil {
		return nil, err
	}
	if exchange.ProviderID != userID && exchange.RequesterID != userID {
		return nil, ErrNotExchangeParty
	}
	if exchange.Status != types.ExchangeStatusPending && exchange.Status != types.ExchangeStatusAccepted {
		return nil, ErrInvalidTransition
	}
	if err := es.exchRepo.UpdateStatus(ctx, nil, exchangeID, types.ExchangeStatusCancelled, 0, nil); err != nil {
		return nil, fmt.Errorf("cancel exchange: %w", err)
	}
	exchange.Status = types.ExchangeStatusCancelled
	return exchange, nil
}
