package recommendation

import (
	"sort"
)

// ContentOptions control a single content-based pass.
type ContentOptions struct {
	// Categories, when set, overrides the default restriction to the
	// categories the user already offers skills in.
	Categories []string
	Limit      int
}

const contentScoreFloor = 0.3

// ContentBased scores candidates by similarity to the user's existing skill
// profile: 0.7 * content similarity + 0.3 * skill quality, keeping scores
// above 0.3.
//
// A user with zero skills and no explicit category filter gets an empty
// result: the category restriction is part of this recommender's contract,
// and brand-new users are served by the trending recommender instead.
func ContentBased(user *UserProfile, candidates []CandidateSkill, opts ContentOptions) []Scored {
	if user == nil {
		return nil
	}

	profile := BuildSkillProfile(user.Skills)

	allowed := make(map[string]struct{})
	if len(opts.Categories) > 0 {
		for _, c := range opts.Categories {
			allowed[c] = struct{}{}
		}
	} else {
		for c := range profile.Categories {
			allowed[c] = struct{}{}
		}
	}
	if len(allowed) == 0 {
		return nil
	}

	var results []Scored
	for _, s := range candidates {
		if !s.IsActive || s.Owner.ID == user.ID {
			continue
		}
		if _, ok := allowed[s.Category]; !ok {
			continue
		}
		score := 0.7*ContentSimilarity(profile, s) + 0.3*SkillQuality(s)
		if score <= contentScoreFloor {
			continue
		}
		results = append(results, Scored{Skill: s, Score: score})
	}

	sortScored(results)
	return truncate(results, opts.Limit)
}

func sortScored(results []Scored) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Skill.ID.String() < results[j].Skill.ID.String()
	})
}

func truncate(results []Scored, limit int) []Scored {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
