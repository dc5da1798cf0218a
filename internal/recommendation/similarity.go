package recommendation

import (
	"math"
)

// ContentSimilarity scores a candidate against the user's skill profile as a
// weighted blend of category match (0.3), tag overlap (0.25), difficulty
// histogram match (0.2), mode histogram match (0.15) and duration closeness
// to the user's average (0.1). Factors with no data on either side are
// skipped and the result is divided by the weight of the factors actually
// evaluated, so a sparse profile is scored on a normalized subset rather
// than penalized to zero.
func ContentSimilarity(p *SkillProfile, s CandidateSkill) float64 {
	if p == nil || p.Total == 0 {
		return 0
	}

	var score, weight float64

	if len(p.Categories) > 0 && s.Category != "" {
		weight += 0.3
		if p.Categories[s.Category] > 0 {
			score += 0.3
		}
	}

	if len(p.Tags) > 0 && len(s.Tags) > 0 {
		weight += 0.25
		matched := 0
		for _, t := range s.Tags {
			if p.Tags[t] > 0 {
				matched++
			}
		}
		score += 0.25 * (float64(matched) / float64(len(s.Tags)))
	}

	if len(p.Difficulties) > 0 && s.Difficulty != "" {
		weight += 0.2
		score += 0.2 * (float64(p.Difficulties[s.Difficulty]) / float64(p.Total))
	}

	if len(p.Modes) > 0 && s.Mode != "" {
		weight += 0.15
		score += 0.15 * (float64(p.Modes[s.Mode]) / float64(p.Total))
	}

	if avg := p.AvgDuration(); avg > 0 && s.DurationMinutes > 0 {
		weight += 0.1
		closeness := 1 - math.Min(1, math.Abs(float64(s.DurationMinutes)-avg)/avg)
		score += 0.1 * closeness
	}

	if weight == 0 {
		return 0
	}
	return score / weight
}

// SkillQuality rates a skill on its own merits, independent of any user:
// rating (0.4), log-scaled review volume (capped 0.3), verification (0.2)
// and log-scaled views (capped 0.1). Clamped to [0,1].
func SkillQuality(s CandidateSkill) float64 {
	score := (s.Rating / 5.0) * 0.4
	score += math.Min(0.3, math.Log10(float64(s.ReviewCount)+1)*0.1)
	if s.IsVerified {
		score += 0.2
	}
	score += math.Min(0.1, math.Log10(float64(s.ViewCount)+1)*0.025)
	return math.Min(1.0, math.Max(0, score))
}

// UserSimilarity compares two users as the mean of three factors: Jaccard
// similarity of skill categories, Jaccard similarity of skill tags (0.8)
// and reputation closeness (0.5). Unlike ContentSimilarity the denominator
// is always 3; an empty-set Jaccard contributes 0 instead of being skipped.
func UserSimilarity(a, b *UserProfile) float64 {
	if a == nil || b == nil {
		return 0
	}

	catA, tagA := skillSets(a.Skills)
	catB, tagB := skillSets(b.Skills)

	catSim := jaccard(catA, catB)
	tagSim := jaccard(tagA, tagB) * 0.8
	repSim := (1 - math.Min(1, math.Abs(a.Reputation-b.Reputation)/100.0)) * 0.5

	return (catSim + tagSim + repSim) / 3.0
}

func skillSets(skills []ProfileSkill) (categories, tags map[string]struct{}) {
	categories = make(map[string]struct{})
	tags = make(map[string]struct{})
	for _, s := range skills {
		if s.Category != "" {
			categories[s.Category] = struct{}{}
		}
		for _, t := range s.Tags {
			if t != "" {
				tags[t] = struct{}{}
			}
		}
	}
	return categories, tags
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// CategorySet returns the set of categories the user already offers.
func CategorySet(skills []ProfileSkill) map[string]struct{} {
	set := make(map[string]struct{})
	for _, s := range skills {
		if s.Category != "" {
			set[s.Category] = struct{}{}
		}
	}
	return set
}
