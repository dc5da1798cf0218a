package recommendation

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(logger.NewNop())
}

// architectScenario builds an INTJ user with a single advanced Programming
// skill and one strong Programming candidate offered by a complementary,
// highly reputed member.
func architectScenario() (*UserProfile, CandidateSkill) {
	user := testUser("INTJ", ProfileSkill{
		Category:        "Programming",
		Tags:            []string{"algorithms"},
		Difficulty:      "advanced",
		Mode:            "online",
		DurationMinutes: 60,
	})
	cand := CandidateSkill{
		ID:              uuid.New(),
		Title:           "Advanced Algorithms",
		Category:        "Programming",
		Tags:            []string{"algorithms"},
		Difficulty:      "advanced",
		Mode:            "online",
		DurationMinutes: 60,
		Rating:          4.5,
		ReviewCount:     12,
		IsVerified:      true,
		ViewCount:       10,
		IsActive:        true,
		CreatedAt:       time.Now(),
		Owner:           OwnerSummary{ID: uuid.New(), Name: "Maya", Reputation: 85, PersonalityType: "ENFP"},
	}
	return user, cand
}

func TestRecommendHybridArchitectScenario(t *testing.T) {
	user, cand := architectScenario()
	agg := newTestAggregator()

	result, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(result.Recommendations))
	}
	rec := result.Recommendations[0]

	if rec.CompositeScore <= 0 {
		t.Fatalf("composite score = %v, want > 0", rec.CompositeScore)
	}
	sources := make(map[string]bool)
	for _, s := range rec.Sources {
		sources[s] = true
	}
	if !sources[SourceContent] || !sources[SourcePersonality] {
		t.Fatalf("sources = %v, want content and personality present", rec.Sources)
	}
	if len(rec.Sources) != len(rec.AlgorithmScores) {
		t.Fatalf("sources %v and algorithm scores %v disagree", rec.Sources, rec.AlgorithmScores)
	}

	wantReasons := []string{
		"Fits your interest in Programming",
		"Matches your learning style and personality",
		"Offered by Maya, a highly reputed member",
	}
	have := make(map[string]bool, len(rec.Reasons))
	for _, r := range rec.Reasons {
		have[r] = true
	}
	for _, reason := range wantReasons {
		if !have[reason] {
			t.Fatalf("missing reason %q in %v", reason, rec.Reasons)
		}
	}
}

func TestRecommendNilProfileIsHardFailure(t *testing.T) {
	agg := newTestAggregator()
	if _, err := agg.Recommend(context.Background(), nil, nil, nil, Options{}); err == nil {
		t.Fatalf("nil profile must fail")
	}
}

func TestRecommendDeterministicWithoutRand(t *testing.T) {
	user, cand := architectScenario()
	agg := newTestAggregator()

	first, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different output without jitter")
	}
}

func TestRecommendSeededJitterReproducible(t *testing.T) {
	user, cand := architectScenario()
	agg := newTestAggregator()

	run := func(seed int64) *Result {
		r, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{
			Rand: rand.New(rand.NewSource(seed)),
		})
		if err != nil {
			t.Fatalf("Recommend: %v", err)
		}
		return r
	}
	if !reflect.DeepEqual(run(42), run(42)) {
		t.Fatalf("same seed produced different rankings")
	}
}

func TestRecommendExcludeIDs(t *testing.T) {
	user, cand := architectScenario()
	agg := newTestAggregator()

	result, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{
		ExcludeIDs: map[string]struct{}{cand.ID.String(): {}},
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Fatalf("excluded candidate leaked through")
	}
}

func TestRecommendAlgorithmSelection(t *testing.T) {
	user, cand := architectScenario()
	agg := newTestAggregator()

	result, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{
		Algorithm: AlgorithmContent,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if result.Algorithm != AlgorithmContent {
		t.Fatalf("echoed algorithm = %q", result.Algorithm)
	}
	if _, ok := result.Breakdown[SourcePersonality]; ok {
		t.Fatalf("personality ran despite content-only selection: %v", result.Breakdown)
	}
	for _, rec := range result.Recommendations {
		if len(rec.Sources) != 1 || rec.Sources[0] != SourceContent {
			t.Fatalf("unexpected sources %v", rec.Sources)
		}
	}
}

func TestRecommendMinQualityFloor(t *testing.T) {
	user, cand := architectScenario()
	cand.Rating = 0
	cand.ReviewCount = 0
	cand.IsVerified = false
	cand.ViewCount = 0
	agg := newTestAggregator()

	result, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	// SkillQuality of a bare skill is ~0, below the default 0.3 floor.
	if len(result.Recommendations) != 0 {
		t.Fatalf("low-quality candidate survived the default quality floor")
	}

	relaxed, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{MinQuality: -1})
	if err != nil {
		t.Fatalf("Recommend relaxed: %v", err)
	}
	if len(relaxed.Recommendations) == 0 {
		t.Fatalf("disabling the floor should readmit the candidate")
	}
}

func TestRecommendClampsNegativeWeights(t *testing.T) {
	user, cand := architectScenario()
	agg := newTestAggregator()

	w := Weights{Content: -1, Collaborative: -1, Personality: -1, Trending: -1, Quality: -1}
	result, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand}, nil, Options{Weights: &w})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.CompositeScore < 0 {
			t.Fatalf("negative composite score %v", rec.CompositeScore)
		}
	}
}

func TestRecommendNeverSurfacesOwnOrNeighborDuplicates(t *testing.T) {
	user, cand := architectScenario()
	own := cand
	own.ID = user.Skills[0].ID
	own.Owner.ID = user.ID
	agg := newTestAggregator()

	result, err := agg.Recommend(context.Background(), user, []CandidateSkill{cand, own}, nil, Options{})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, rec := range result.Recommendations {
		if rec.Skill.Owner.ID == user.ID {
			t.Fatalf("user's own skill surfaced")
		}
	}
	seen := make(map[string]bool)
	for _, rec := range result.Recommendations {
		key := rec.Skill.ID.String()
		if seen[key] {
			t.Fatalf("duplicate skill %s in output", key)
		}
		seen[key] = true
	}
}

func TestRecommendLimitAndTotalConsidered(t *testing.T) {
	user, _ := architectScenario()
	var candidates []CandidateSkill
	for i := 0; i < 15; i++ {
		_, c := architectScenario()
		candidates = append(candidates, c)
	}
	agg := newTestAggregator()

	result, err := agg.Recommend(context.Background(), user, candidates, nil, Options{Limit: 5})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) != 5 {
		t.Fatalf("got %d recommendations, want 5", len(result.Recommendations))
	}
	if result.TotalConsidered < 5 {
		t.Fatalf("TotalConsidered = %d, want >= limit", result.TotalConsidered)
	}
}
