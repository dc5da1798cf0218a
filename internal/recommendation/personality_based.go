package recommendation

import (
	"math"
)

// PersonalityOptions control a single personality-based pass.
type PersonalityOptions struct {
	Categories []string
	Limit      int
}

// PersonalityBased scores candidates by fit with the requester's
// personality type. Users without a known type get an empty result, not an
// error. Candidates are restricted to the type's preferred categories and
// scored in points:
//
//	categoryAffinity*40 + difficultyAlignment*20 + learningStyleAlignment*20
//	+ providerCompatibility*15 (when the provider has a type)
//	+ complementaryBonus(5) + rating*2 + verifiedBonus(5)
//	+ log-scaled view bonus (capped at 10)
func PersonalityBased(user *UserProfile, candidates []CandidateSkill, opts PersonalityOptions) []Scored {
	if user == nil {
		return nil
	}
	profile, ok := PersonalityProfiles[user.PersonalityType]
	if !ok {
		return nil
	}

	preferred := make(map[string]struct{}, len(profile.PreferredCategories))
	for _, c := range profile.PreferredCategories {
		preferred[c] = struct{}{}
	}
	filter := make(map[string]struct{})
	for _, c := range opts.Categories {
		filter[c] = struct{}{}
	}

	var results []Scored
	for _, s := range candidates {
		if !s.IsActive || s.Owner.ID == user.ID {
			continue
		}
		if _, ok := preferred[s.Category]; !ok {
			continue
		}
		if len(filter) > 0 {
			if _, ok := filter[s.Category]; !ok {
				continue
			}
		}

		score := CategoryAffinity(profile, s.Category) * 40
		score += DifficultyAlignment(profile.PreferredDifficulty, s.Difficulty) * 20
		score += LearningStyleAlignment(profile.LearningStyle, s.Tags) * 20
		if s.Owner.PersonalityType != "" {
			score += PersonalityCompatibility(user.PersonalityType, s.Owner.PersonalityType) * 15
			if AreComplementary(user.PersonalityType, s.Owner.PersonalityType) {
				score += 5
			}
		}
		score += s.Rating * 2
		if s.IsVerified {
			score += 5
		}
		score += math.Min(10, math.Log10(float64(s.ViewCount)+1)*3)

		results = append(results, Scored{Skill: s, Score: score})
	}

	sortScored(results)
	return truncate(results, opts.Limit)
}
