package recommendation

import (
	"sort"
)

// CollaborativeOptions control a single collaborative pass.
type CollaborativeOptions struct {
	Categories []string
	Limit      int
	// MaxSimilarUsers bounds the neighbor set; 20 when unset.
	MaxSimilarUsers int
}

const (
	collaborativeSimilarityFloor = 0.3
	collaborativeScoreFloor      = 0.3
	defaultMaxSimilarUsers       = 20
)

// Collaborative surfaces skills offered by behaviorally similar users.
// Similarity is purely profile-based (no interaction log): neighbors must
// share at least one skill category with the requester and score above 0.3
// on UserSimilarity. Candidates owned by a neighbor are scored
// 0.4*similarity + 0.4*popularity + 0.2*quality where popularity is the
// fraction of the neighbor set offering the candidate's category.
func Collaborative(user *UserProfile, others []*UserProfile, candidates []CandidateSkill, opts CollaborativeOptions) []Scored {
	if user == nil || len(others) == 0 {
		return nil
	}

	maxUsers := opts.MaxSimilarUsers
	if maxUsers <= 0 {
		maxUsers = defaultMaxSimilarUsers
	}

	userCategories := CategorySet(user.Skills)
	if len(userCategories) == 0 {
		return nil
	}

	type neighbor struct {
		profile    *UserProfile
		similarity float64
	}
	var neighbors []neighbor
	for _, other := range others {
		if other == nil || other.ID == user.ID {
			continue
		}
		if !sharesCategory(userCategories, other.Skills) {
			continue
		}
		sim := UserSimilarity(user, other)
		if sim <= collaborativeSimilarityFloor {
			continue
		}
		neighbors = append(neighbors, neighbor{profile: other, similarity: sim})
	}
	if len(neighbors) == 0 {
		return nil
	}
	sort.SliceStable(neighbors, func(i, j int) bool {
		if neighbors[i].similarity != neighbors[j].similarity {
			return neighbors[i].similarity > neighbors[j].similarity
		}
		return neighbors[i].profile.ID.String() < neighbors[j].profile.ID.String()
	})
	if len(neighbors) > maxUsers {
		neighbors = neighbors[:maxUsers]
	}

	similarityByOwner := make(map[string]float64, len(neighbors))
	categoryOwners := make(map[string]int)
	for _, n := range neighbors {
		similarityByOwner[n.profile.ID.String()] = n.similarity
		for c := range CategorySet(n.profile.Skills) {
			categoryOwners[c]++
		}
	}

	allowed := make(map[string]struct{})
	for _, c := range opts.Categories {
		allowed[c] = struct{}{}
	}

	var results []Scored
	for _, s := range candidates {
		if !s.IsActive || s.Owner.ID == user.ID {
			continue
		}
		sim, fromNeighbor := similarityByOwner[s.Owner.ID.String()]
		if !fromNeighbor {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[s.Category]; !ok {
				continue
			}
		}
		popularity := float64(categoryOwners[s.Category]) / float64(len(neighbors))
		score := 0.4*sim + 0.4*popularity + 0.2*SkillQuality(s)
		if score <= collaborativeScoreFloor {
			continue
		}
		results = append(results, Scored{Skill: s, Score: score})
	}

	sortScored(results)
	return truncate(results, opts.Limit)
}

func sharesCategory(set map[string]struct{}, skills []ProfileSkill) bool {
	for _, s := range skills {
		if _, ok := set[s.Category]; ok {
			return true
		}
	}
	return false
}
