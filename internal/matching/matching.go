// Package matching ranks exchange partners: users who offer what the
// requester wants to learn and could use what the requester offers.
package matching

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
)

// Criteria narrows and ranks the candidate pool for one match request.
type Criteria struct {
	// WantedSkills are categories the requester wants to learn.
	WantedSkills []string
	// OfferedSkills are categories the requester can teach; empty falls
	// back to the requester's own skill categories.
	OfferedSkills []string
	Location      string
	MinMatchScore float64
	// PersonalityTypes restricts candidates to the listed type codes.
	PersonalityTypes []string
	MinReputation    float64
	Limit            int
	// Now anchors the activity factor; zero means time.Now().
	Now time.Time
}

// MatchScore carries the total with its per-factor decomposition.
type MatchScore struct {
	TotalScore float64            `json:"total_score"`
	Factors    map[string]float64 `json:"factors"`
	Breakdown  []string           `json:"breakdown"`
}

// Match is one ranked candidate.
type Match struct {
	User  *recommendation.UserProfile `json:"user"`
	Score MatchScore                  `json:"match_score"`
}

// Factor weights; the total tops out at 100 before bonuses.
const (
	wantedWeight        = 25.0
	offeredWeight       = 15.0
	compatibilityWeight = 20.0
	reputationWeight    = 15.0
	locationWeight      = 15.0
	activityWeight      = 10.0

	defaultMatchLimit = 10
)

// FindMatches scores every candidate against the criteria and returns the
// ranked list. Candidates below MinMatchScore, MinReputation, or outside
// the personality filter are dropped.
func FindMatches(requester *recommendation.UserProfile, candidates []*recommendation.UserProfile, c Criteria) []Match {
	if requester == nil {
		return nil
	}
	now := c.Now
	if now.IsZero() {
		now = time.Now()
	}
	limit := c.Limit
	if limit <= 0 {
		limit = defaultMatchLimit
	}

	wanted := normalizeSet(c.WantedSkills)
	offered := normalizeSet(c.OfferedSkills)
	if len(offered) == 0 {
		for cat := range recommendation.CategorySet(requester.Skills) {
			offered[strings.ToLower(cat)] = struct{}{}
		}
	}
	typeFilter := make(map[string]struct{})
	for _, t := range c.PersonalityTypes {
		typeFilter[t] = struct{}{}
	}

	var matches []Match
	for _, cand := range candidates {
		if cand == nil || cand.ID == requester.ID {
			continue
		}
		if c.MinReputation > 0 && cand.Reputation < c.MinReputation {
			continue
		}
		if len(typeFilter) > 0 {
			if _, ok := typeFilter[cand.PersonalityType]; !ok {
				continue
			}
		}

		score := scoreCandidate(requester, cand, wanted, offered, c.Location, now)
		if score.TotalScore < c.MinMatchScore {
			continue
		}
		matches = append(matches, Match{User: cand, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score.TotalScore != matches[j].Score.TotalScore {
			return matches[i].Score.TotalScore > matches[j].Score.TotalScore
		}
		return matches[i].User.ID.String() < matches[j].User.ID.String()
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func scoreCandidate(requester, cand *recommendation.UserProfile, wanted, offered map[string]struct{}, location string, now time.Time) MatchScore {
	factors := make(map[string]float64)
	var breakdown []string

	candCategories := make(map[string]struct{})
	for cat := range recommendation.CategorySet(cand.Skills) {
		candCategories[strings.ToLower(cat)] = struct{}{}
	}

	// Coverage of what the requester wants to learn.
	wantedScore := 0.0
	if len(wanted) > 0 {
		covered := 0
		for w := range wanted {
			if _, ok := candCategories[w]; ok {
				covered++
			}
		}
		wantedScore = float64(covered) / float64(len(wanted)) * wantedWeight
		if covered > 0 {
			breakdown = append(breakdown, fmt.Sprintf("Teaches %d of %d skills you want to learn", covered, len(wanted)))
		}
	}
	factors["wanted_skills"] = wantedScore

	// How useful the requester's offering is to the candidate: categories
	// the candidate does not already cover.
	offeredScore := 0.0
	if len(offered) > 0 {
		useful := 0
		for o := range offered {
			if _, ok := candCategories[o]; !ok {
				useful++
			}
		}
		offeredScore = float64(useful) / float64(len(offered)) * offeredWeight
		if useful > 0 {
			breakdown = append(breakdown, "Your skills fill gaps in their profile")
		}
	}
	factors["offered_skills"] = offeredScore

	compat := recommendation.PersonalityCompatibility(requester.PersonalityType, cand.PersonalityType)
	compatScore := compat * compatibilityWeight
	factors["compatibility"] = compatScore
	if compat >= 0.8 {
		breakdown = append(breakdown, "Strong personality compatibility")
	}

	repScore := cand.Reputation / 100.0 * reputationWeight
	factors["reputation"] = repScore
	if cand.Reputation >= 80 {
		breakdown = append(breakdown, fmt.Sprintf("%s has an excellent reputation", cand.Name))
	}

	locScore := locationScore(location, requester.Location, cand.Location)
	factors["location"] = locScore
	if locScore >= locationWeight {
		breakdown = append(breakdown, "Located in your area")
	}

	actScore := activityScore(cand.LastActivity, now)
	factors["activity"] = actScore
	if actScore >= activityWeight {
		breakdown = append(breakdown, "Active in the last week")
	}

	total := wantedScore + offeredScore + compatScore + repScore + locScore + actScore
	return MatchScore{TotalScore: total, Factors: factors, Breakdown: breakdown}
}

// locationScore compares free-text locations: exact match earns the full
// weight, a shared token (typically the city) earns roughly half.
func locationScore(criteriaLocation, requesterLocation, candidateLocation string) float64 {
	target := criteriaLocation
	if target == "" {
		target = requesterLocation
	}
	if target == "" || candidateLocation == "" {
		return 0
	}
	if strings.EqualFold(strings.TrimSpace(target), strings.TrimSpace(candidateLocation)) {
		return locationWeight
	}
	targetTokens := locationTokens(target)
	for tok := range locationTokens(candidateLocation) {
		if _, ok := targetTokens[tok]; ok {
			return locationWeight * 0.5
		}
	}
	return 0
}

func locationTokens(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	}) {
		if tok != "" {
			out[tok] = struct{}{}
		}
	}
	return out
}

func activityScore(lastActivity time.Time, now time.Time) float64 {
	if lastActivity.IsZero() {
		return 0
	}
	switch age := now.Sub(lastActivity); {
	case age <= 7*24*time.Hour:
		return activityWeight
	case age <= 30*24*time.Hour:
		return activityWeight * 0.6
	default:
		return activityWeight * 0.2
	}
}

func normalizeSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}
