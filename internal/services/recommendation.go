package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
	"github.com/skillbridge/skillbridge-backend/internal/repos"
)

// ErrUserNotFound is the one hard failure of the recommendation surface:
// without a base profile the aggregate cannot proceed.
var ErrUserNotFound = repos.ErrUserNotFound

// RecommendationOptions mirror the inbound API options.
type RecommendationOptions struct {
	Limit             int                `json:"limit"`
	Algorithm         string             `json:"algorithm"`
	Categories        []string           `json:"categories"`
	ExcludeSeen       bool               `json:"exclude_seen"`
	IncludeReasons    bool               `json:"include_reasons"`
	MinQuality        float64            `json:"min_quality"`
	WeightAdjustments map[string]float64 `json:"weight_adjustments"`
	// Seed, when non-nil, enables the legacy ranking jitter with a fixed
	// seed so output stays reproducible.
	Seed *int64 `json:"seed"`
}

// UserProfileSummary is the requester slice echoed back in the envelope.
type UserProfileSummary struct {
	PersonalityType string                      `json:"personality_type"`
	SkillLevel      int                         `json:"skill_level"`
	Preferences     []recommendation.Preference `json:"preferences"`
}

// RecommendationResult is the outbound envelope.
type RecommendationResult struct {
	Recommendations []recommendation.ScoredRecommendation `json:"recommendations"`
	Algorithm       string                                `json:"algorithm"`
	TotalConsidered int                                   `json:"total_considered"`
	UserProfile     UserProfileSummary                    `json:"user_profile"`
	Breakdown       map[string]int                        `json:"recommendation_breakdown"`
}

type RecommendationService interface {
	GetComprehensiveRecommendations(ctx context.Context, userID uuid.UUID, opts RecommendationOptions) (*RecommendationResult, error)
}

type recommendationService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	skillRepo  repos.SkillRepo
	exchRepo   repos.ExchangeRepo
	prefRepo   repos.PreferenceRepo
	eventRepo  repos.EventRepo
	aggregator *recommendation.Aggregator
	weights    recommendation.Weights
	cache      *redis.Client
	cacheTTL   time.Duration
}

const (
	candidatePoolLimit = 500
	neighborPoolLimit  = 200
	seenWindow         = 30 * 24 * time.Hour
	defaultCacheTTL    = 5 * time.Minute
)

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	skillRepo repos.SkillRepo,
	exchRepo repos.ExchangeRepo,
	prefRepo repos.PreferenceRepo,
	eventRepo repos.EventRepo,
	cache *redis.Client,
	weights recommendation.Weights,
) RecommendationService {
	serviceLog := log.With("service", "RecommendationService")
	return &recommendationService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		skillRepo:  skillRepo,
		exchRepo:   exchRepo,
		prefRepo:   prefRepo,
		eventRepo:  eventRepo,
		aggregator: recommendation.NewAggregator(serviceLog),
		weights:    weights,
		cache:      cache,
		cacheTTL:   defaultCacheTTL,
	}
}

func (rs *recommendationService) GetComprehensiveRecommendations(ctx context.Context, userID uuid.UUID, opts RecommendationOptions) (*RecommendationResult, error) {
	cacheKey := rs.cacheKey(userID, opts)
	if cached := rs.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	profile, err := rs.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := rs.loadCandidates(ctx, userID, opts.Categories)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	others, err := rs.loadNeighbors(ctx, userID)
	if err != nil {
		// Collaborative signal degrades to empty; the others still run.
		rs.log.Warn("loading neighbor profiles failed, collaborative signal disabled", "error", err)
		others = nil
	}

	aggOpts := recommendation.Options{
		Limit:      opts.Limit,
		Algorithm:  opts.Algorithm,
		Categories: opts.Categories,
		MinQuality: opts.MinQuality,
		Weights:    adjustedWeights(rs.weights, opts.WeightAdjustments),
	}
	if opts.Seed != nil {
		aggOpts.Rand = rand.New(rand.NewSource(*opts.Seed))
	}
	if opts.ExcludeSeen {
		seen, seenErr := rs.eventRepo.ListRecentResourceIDs(ctx, nil, userID, "skill", time.Now().Add(-seenWindow), 0)
		if seenErr != nil {
			rs.log.Warn("loading seen skills failed, skipping exclude-seen filter", "error", seenErr)
		} else if len(seen) > 0 {
			aggOpts.ExcludeIDs = make(map[string]struct{}, len(seen))
			for _, id := range seen {
				aggOpts.ExcludeIDs[id.String()] = struct{}{}
			}
		}
	}

	result, err := rs.aggregator.Recommend(ctx, profile, candidates, others, aggOpts)
	if err != nil {
		return nil, err
	}
	if !opts.IncludeReasons {
		for i := range result.Recommendations {
			result.Recommendations[i].Reasons = nil
		}
	}

	envelope := &RecommendationResult{
		Recommendations: result.Recommendations,
		Algorithm:       result.Algorithm,
		TotalConsidered: result.TotalConsidered,
		Breakdown:       result.Breakdown,
		UserProfile: UserProfileSummary{
			PersonalityType: profile.PersonalityType,
			SkillLevel:      profile.Level,
			Preferences:     topPreferences(profile.Preferences, 5),
		},
	}
	rs.toCache(ctx, cacheKey, envelope)
	return envelope, nil
}

func (rs *recommendationService) loadProfile(ctx context.Context, userID uuid.UUID) (*recommendation.UserProfile, error) {
	user, err := rs.userRepo.GetByIDWithSkills(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, repos.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	exchanges, err := rs.exchRepo.ListCompletedByRequester(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load exchanges: %w", err)
	}
	prefs, err := rs.prefRepo.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return toUserProfile(user, exchanges, prefs), nil
}

func (rs *recommendationService) loadCandidates(ctx context.Context, userID uuid.UUID, categories []string) ([]recommendation.CandidateSkill, error) {
	rows, err := rs.skillRepo.ListCandidates(ctx, nil, repos.CandidateFilter{
		ExcludeOwner: userID,
		Categories:   categories,
		Limit:        candidatePoolLimit,
	})
	if err != nil {
		return nil, err
	}
	candidates := make([]recommendation.CandidateSkill, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, toCandidateSkill(row))
	}
	return candidates, nil
}

func (rs *recommendationService) loadNeighbors(ctx context.Context, userID uuid.UUID) ([]*recommendation.UserProfile, error) {
	rows, err := rs.userRepo.ListWithSkills(ctx, nil, userID, neighborPoolLimit)
	if err != nil {
		return nil, err
	}
	neighbors := make([]*recommendation.UserProfile, 0, len(rows))
	for _, row := range rows {
		neighbors = append(neighbors, toUserProfile(row, nil, nil))
	}
	return neighbors, nil
}

// adjustedWeights merges caller adjustments over the configured base.
// Unknown keys are ignored; negative values are clamped inside the
// aggregator.
func adjustedWeights(base recommendation.Weights, adjustments map[string]float64) *recommendation.Weights {
	if len(adjustments) == 0 {
		if base == recommendation.DefaultWeights {
			return nil
		}
		return &base
	}
	w := base
	if v, ok := adjustments["content"]; ok {
		w.Content = v
	}
	if v, ok := adjustments["collaborative"]; ok {
		w.Collaborative = v
	}
	if v, ok := adjustments["personality"]; ok {
		w.Personality = v
	}
	if v, ok := adjustments["trending"]; ok {
		w.Trending = v
	}
	if v, ok := adjustments["quality"]; ok {
		w.Quality = v
	}
	return &w
}

func topPreferences(prefs []recommendation.Preference, n int) []recommendation.Preference {
	if len(prefs) <= n {
		return prefs
	}
	sorted := make([]recommendation.Preference, len(prefs))
	copy(sorted, prefs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted[:n]
}

func (rs *recommendationService) cacheKey(userID uuid.UUID, opts RecommendationOptions) string {
	raw, _ := json.Marshal(opts)
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("rec:%s:%s", userID, hex.EncodeToString(sum[:8]))
}

func (rs *recommendationService) fromCache(ctx context.Context, key string) *RecommendationResult {
	if rs.cache == nil {
		return nil
	}
	raw, err := rs.cache.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var result RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		rs.log.Warn("dropping malformed cached recommendations", "key", key, "error", err)
		return nil
	}
	return &result
}

func (rs *recommendationService) toCache(ctx context.Context, key string, result *RecommendationResult) {
	if rs.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := rs.cache.Set(ctx, key, raw, rs.cacheTTL).Err(); err != nil {
		rs.log.Warn("caching recommendations failed", "key", key, "error", err)
	}
}
