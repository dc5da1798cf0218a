package recommendation

import (
	"math"
	"strconv"
	"time"
)

// TrendingOptions control a single trending pass.
type TrendingOptions struct {
	Categories []string
	Limit      int
	// Now anchors the recency window; zero means time.Now(). Injected so
	// that ranking is reproducible in tests.
	Now time.Time
}

const (
	trendingMinRating = 3.5
	trendingMinViews  = 50
	recentWindow      = 30 * 24 * time.Hour
)

// Trending scores candidates by recency and popularity, blended with how
// well each aligns with the requester's learned preferences:
// 0.6*preferenceAlignment + 0.4*trendScore. Only active skills with
// rating > 3.5 and more than 50 views qualify. Unlike the content
// recommender there is no restriction to the user's existing categories, so
// this signal still serves brand-new users.
func Trending(user *UserProfile, candidates []CandidateSkill, opts TrendingOptions) []Scored {
	if user == nil {
		return nil
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	filter := make(map[string]struct{})
	for _, c := range opts.Categories {
		filter[c] = struct{}{}
	}

	prefs := summarizePreferences(user.Preferences)

	var results []Scored
	for _, s := range candidates {
		if !s.IsActive || s.Owner.ID == user.ID {
			continue
		}
		if s.Rating <= trendingMinRating || s.ViewCount <= trendingMinViews {
			continue
		}
		if len(filter) > 0 {
			if _, ok := filter[s.Category]; !ok {
				continue
			}
		}

		trend := math.Min(0.5, float64(s.ViewCount)/1000.0)
		trend += math.Min(0.3, float64(s.RequestCount)/100.0)
		if !s.CreatedAt.IsZero() && now.Sub(s.CreatedAt) <= recentWindow {
			trend += 0.2
		}

		score := 0.6*prefs.alignment(s) + 0.4*trend
		results = append(results, Scored{Skill: s, Score: score})
	}

	sortScored(results)
	return truncate(results, opts.Limit)
}

// preferenceSummary aggregates a user's preference records into the shape
// the alignment blend needs: per-category confidence plus the most
// confident difficulty, mode and duration-bucket values.
type preferenceSummary struct {
	categoryConfidence map[string]float64
	difficulty         valueConfidence
	mode               valueConfidence
	durationBucket     valueConfidence
}

type valueConfidence struct {
	value      string
	confidence float64
}

func summarizePreferences(prefs []Preference) *preferenceSummary {
	s := &preferenceSummary{categoryConfidence: make(map[string]float64)}
	for _, p := range prefs {
		if p.Category != "" && p.Confidence > s.categoryConfidence[p.Category] {
			s.categoryConfidence[p.Category] = p.Confidence
		}
		switch p.Key {
		case "difficulty":
			if p.Confidence > s.difficulty.confidence {
				s.difficulty = valueConfidence{value: p.Value, confidence: p.Confidence}
			}
		case "mode":
			if p.Confidence > s.mode.confidence {
				s.mode = valueConfidence{value: p.Value, confidence: p.Confidence}
			}
		case "duration":
			if p.Confidence > s.durationBucket.confidence {
				s.durationBucket = valueConfidence{value: p.Value, confidence: p.Confidence}
			}
		}
	}
	return s
}

// alignment mirrors ContentSimilarity's adaptive-denominator shape, scored
// against historical preferences instead of the current skill list. With no
// usable preference data it returns the neutral 0.5 so trending results are
// ranked by trend score alone.
func (p *preferenceSummary) alignment(s CandidateSkill) float64 {
	var score, weight float64

	if len(p.categoryConfidence) > 0 {
		weight += 0.4
		score += 0.4 * p.categoryConfidence[s.Category]
	}
	if p.difficulty.value != "" && s.Difficulty != "" {
		weight += 0.2
		if p.difficulty.value == s.Difficulty {
			score += 0.2 * p.difficulty.confidence
		}
	}
	if p.mode.value != "" && s.Mode != "" {
		weight += 0.25
		if p.mode.value == s.Mode {
			score += 0.25 * p.mode.confidence
		}
	}
	if p.durationBucket.value != "" && s.DurationMinutes > 0 {
		weight += 0.15
		if p.durationBucket.value == DurationBucket(s.DurationMinutes) {
			score += 0.15 * p.durationBucket.confidence
		}
	}

	if weight == 0 {
		return 0.5
	}
	return score / weight
}

// DurationBucket groups session lengths: short (<30m), medium (<90m), long.
func DurationBucket(minutes int) string {
	switch {
	case minutes <= 0:
		return ""
	case minutes < 30:
		return "short"
	case minutes < 90:
		return "medium"
	default:
		return "long"
	}
}

// PriceBucket groups prices: free, low (<25), medium (<100), high.
func PriceBucket(price float64) string {
	switch {
	case price <= 0:
		return "free"
	case price < 25:
		return "low"
	case price < 100:
		return "medium"
	default:
		return "high"
	}
}

// FormatPreferenceValue renders a preference payload consistently for the
// snapshot structs (numbers without trailing zeros, everything else as-is).
func FormatPreferenceValue(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}
