package recommendation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skillbridge/skillbridge-backend/internal/logger"
)

// Algorithm selectors accepted by Options.Algorithm.
const (
	AlgorithmHybrid        = "hybrid"
	AlgorithmContent       = SourceContent
	AlgorithmCollaborative = SourceCollaborative
	AlgorithmPersonality   = SourcePersonality
	AlgorithmTrending      = SourceTrending
)

// Weights are the per-source multipliers for the composite score. Quality
// is always recomputed fresh from SkillQuality, independent of what any
// source contributed.
type Weights struct {
	Content       float64
	Collaborative float64
	Personality   float64
	Trending      float64
	Quality       float64
}

// DefaultWeights per the hybrid algorithm's shipped configuration.
var DefaultWeights = Weights{
	Content:       0.35,
	Collaborative: 0.25,
	Personality:   0.20,
	Trending:      0.10,
	Quality:       0.10,
}

// clamped returns the weights with negative adjustments clamped to zero.
// Degenerate input degrades ranking rather than rejecting the request.
func (w Weights) clamped() Weights {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		return v
	}
	return Weights{
		Content:       clamp(w.Content),
		Collaborative: clamp(w.Collaborative),
		Personality:   clamp(w.Personality),
		Trending:      clamp(w.Trending),
		Quality:       clamp(w.Quality),
	}
}

// Options configure a single aggregation pass.
type Options struct {
	Limit      int
	Algorithm  string
	Categories []string
	// MinQuality drops candidates whose SkillQuality falls below it.
	// Negative disables the floor; zero means the 0.3 default.
	MinQuality float64
	// Weights overrides DefaultWeights when non-nil.
	Weights *Weights
	// ExcludeIDs drops specific candidates (already-seen filtering).
	ExcludeIDs map[string]struct{}
	// Rand, when non-nil, adds a small seeded jitter to personality and
	// trending contributions, replacing the ambient randomness of the
	// legacy ranking path. Nil means fully deterministic output.
	Rand *rand.Rand
	// Now anchors recency checks; zero means time.Now().
	Now time.Time
}

const (
	defaultLimit      = 10
	defaultMinQuality = 0.3
	jitterAmplitude   = 0.05

	highContentScore     = 0.6
	highQualityScore     = 0.7
	highPersonalityScore = 60.0
	highTrendingScore    = 0.5
	highReputation       = 80.0
)

// Result is the aggregate answer for one request.
type Result struct {
	Recommendations []ScoredRecommendation `json:"recommendations"`
	Algorithm       string                 `json:"algorithm"`
	TotalConsidered int                    `json:"total_considered"`
	Breakdown       map[string]int         `json:"breakdown"`
}

// Aggregator fans a request out to the four recommenders, merges and ranks.
type Aggregator struct {
	log *logger.Logger
}

func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{log: log.With("component", "Aggregator")}
}

// Recommend runs the selected recommenders concurrently over the shared
// read-only snapshot, merges their outputs by candidate id and ranks by
// weighted composite score. Each recommender is fail-soft: a panic or empty
// signal contributes nothing and never blocks the others, so partial
// results are the normal case. Only a nil profile is a hard failure.
func (a *Aggregator) Recommend(ctx context.Context, user *UserProfile, candidates []CandidateSkill, others []*UserProfile, opts Options) (*Result, error) {
	if user == nil {
		return nil, fmt.Errorf("recommendation: nil user profile")
	}

	algorithm := opts.Algorithm
	if algorithm == "" {
		algorithm = AlgorithmHybrid
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	minQuality := opts.MinQuality
	if minQuality == 0 {
		minQuality = defaultMinQuality
	}
	weights := DefaultWeights
	if opts.Weights != nil {
		weights = opts.Weights.clamped()
	}

	enabled := func(source string) bool {
		return algorithm == AlgorithmHybrid || algorithm == source
	}

	// Each recommender already ranks internally; a generous per-source
	// limit keeps merge candidates broad before the composite cut.
	perSource := limit * 3
	if perSource < 30 {
		perSource = 30
	}

	var contentOut, collaborativeOut, personalityOut, trendingOut []Scored
	g, _ := errgroup.WithContext(ctx)
	if enabled(SourceContent) {
		g.Go(a.failSoft(SourceContent, func() {
			contentOut = ContentBased(user, candidates, ContentOptions{Categories: opts.Categories, Limit: perSource})
		}))
	}
	if enabled(SourceCollaborative) {
		g.Go(a.failSoft(SourceCollaborative, func() {
			collaborativeOut = Collaborative(user, others, candidates, CollaborativeOptions{Categories: opts.Categories, Limit: perSource})
		}))
	}
	if enabled(SourcePersonality) {
		g.Go(a.failSoft(SourcePersonality, func() {
			personalityOut = PersonalityBased(user, candidates, PersonalityOptions{Categories: opts.Categories, Limit: perSource})
		}))
	}
	if enabled(SourceTrending) {
		g.Go(a.failSoft(SourceTrending, func() {
			trendingOut = Trending(user, candidates, TrendingOptions{Categories: opts.Categories, Limit: perSource, Now: opts.Now})
		}))
	}
	_ = g.Wait()

	owned := make(map[string]struct{}, len(user.Skills))
	for _, s := range user.Skills {
		owned[s.ID.String()] = struct{}{}
	}
	categoryFilter := make(map[string]struct{})
	for _, c := range opts.Categories {
		categoryFilter[c] = struct{}{}
	}

	merged := make(map[string]*ScoredRecommendation)
	order := make([]string, 0)
	breakdown := make(map[string]int)
	mergeSource := func(source string, out []Scored) {
		breakdown[source] = len(out)
		for _, item := range out {
			key := item.Skill.ID.String()
			if _, isOwn := owned[key]; isOwn || item.Skill.Owner.ID == user.ID {
				continue
			}
			if opts.ExcludeIDs != nil {
				if _, skip := opts.ExcludeIDs[key]; skip {
					continue
				}
			}
			if len(categoryFilter) > 0 {
				if _, ok := categoryFilter[item.Skill.Category]; !ok {
					continue
				}
			}
			rec, ok := merged[key]
			if !ok {
				rec = &ScoredRecommendation{
					Skill:           item.Skill,
					AlgorithmScores: make(map[string]float64),
				}
				merged[key] = rec
				order = append(order, key)
			}
			// Scores are kept per source, never overwritten.
			if _, seen := rec.AlgorithmScores[source]; !seen {
				rec.AlgorithmScores[source] = item.Score
				rec.Sources = append(rec.Sources, source)
			}
		}
	}
	mergeSource(SourceContent, contentOut)
	mergeSource(SourceCollaborative, collaborativeOut)
	mergeSource(SourcePersonality, personalityOut)
	mergeSource(SourceTrending, trendingOut)

	userCategories := CategorySet(user.Skills)

	recs := make([]ScoredRecommendation, 0, len(merged))
	for _, key := range order {
		rec := merged[key]
		quality := SkillQuality(rec.Skill)
		if minQuality > 0 && quality < minQuality {
			continue
		}

		composite := rec.AlgorithmScores[SourceContent]*weights.Content +
			rec.AlgorithmScores[SourceCollaborative]*weights.Collaborative +
			rec.AlgorithmScores[SourcePersonality]*weights.Personality +
			rec.AlgorithmScores[SourceTrending]*weights.Trending +
			quality*weights.Quality

		if opts.Rand != nil {
			if _, ok := rec.AlgorithmScores[SourcePersonality]; ok {
				composite += opts.Rand.Float64() * jitterAmplitude
			}
			if _, ok := rec.AlgorithmScores[SourceTrending]; ok {
				composite += opts.Rand.Float64() * jitterAmplitude
			}
		}

		rec.CompositeScore = composite
		rec.Reasons = buildReasons(rec, quality, userCategories)
		recs = append(recs, *rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].CompositeScore != recs[j].CompositeScore {
			return recs[i].CompositeScore > recs[j].CompositeScore
		}
		return recs[i].Skill.ID.String() < recs[j].Skill.ID.String()
	})

	total := len(recs)
	if len(recs) > limit {
		recs = recs[:limit]
	}

	return &Result{
		Recommendations: recs,
		Algorithm:       algorithm,
		TotalConsidered: total,
		Breakdown:       breakdown,
	}, nil
}

// failSoft wraps one recommender pass so a panic degrades to an empty
// contribution instead of failing the request.
func (a *Aggregator) failSoft(source string, fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				a.log.Warn("recommender failed, continuing without it", "source", source, "panic", r)
			}
		}()
		fn()
		return nil
	}
}

func buildReasons(rec *ScoredRecommendation, quality float64, userCategories map[string]struct{}) []string {
	var reasons []string
	if rec.AlgorithmScores[SourceContent] >= highContentScore {
		reasons = append(reasons, "Similar to skills you already offer")
	}
	if quality >= highQualityScore {
		reasons = append(reasons, "Highly rated by other learners")
	}
	if rec.AlgorithmScores[SourcePersonality] >= highPersonalityScore {
		reasons = append(reasons, "Matches your learning style and personality")
	}
	if rec.AlgorithmScores[SourceTrending] >= highTrendingScore {
		reasons = append(reasons, "Popular and trending skill")
	}
	if _, ok := userCategories[rec.Skill.Category]; ok {
		reasons = append(reasons, fmt.Sprintf("Fits your interest in %s", rec.Skill.Category))
	}
	if rec.Skill.Owner.Reputation >= highReputation && rec.Skill.Owner.Name != "" {
		reasons = append(reasons, fmt.Sprintf("Offered by %s, a highly reputed member", rec.Skill.Owner.Name))
	}
	return reasons
}
