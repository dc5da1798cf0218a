package matching

import (
	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
)

// Category groupings used only by the inference heuristic below.
var (
	peopleCategories   = map[string]struct{}{"Languages": {}, "Music": {}, "Cooking": {}, "Fitness": {}, "Wellness": {}}
	thinkingCategories = map[string]struct{}{"Programming": {}, "Science": {}, "Finance": {}, "Business": {}}
	concreteCategories = map[string]struct{}{"Cooking": {}, "Crafts": {}, "Fitness": {}, "Photography": {}, "Finance": {}}
)

// InferPersonalityType is a rule-based heuristic fallback for users who
// never set a type: it reads coarse signals off the skill profile (teaching
// mode, category leanings, difficulty spread) and assembles a four-letter
// code. It is deliberately simple and is not a model; callers should prefer
// a user-declared type whenever one exists.
func InferPersonalityType(profile *recommendation.UserProfile) string {
	if profile == nil || len(profile.Skills) == 0 {
		return ""
	}

	var inPerson, concrete, thinking, advanced int
	for _, s := range profile.Skills {
		if s.Mode == "in-person" || s.Mode == "hybrid" {
			inPerson++
		}
		if _, ok := concreteCategories[s.Category]; ok {
			concrete++
		}
		if _, ok := thinkingCategories[s.Category]; ok {
			thinking++
		} else if _, ok := peopleCategories[s.Category]; ok {
			thinking--
		}
		if s.Difficulty == "advanced" || s.Difficulty == "intermediate" {
			advanced++
		}
	}
	total := len(profile.Skills)

	code := make([]byte, 4)
	if inPerson*2 > total {
		code[0] = 'E'
	} else {
		code[0] = 'I'
	}
	if concrete*2 > total {
		code[1] = 'S'
	} else {
		code[1] = 'N'
	}
	if thinking > 0 {
		code[2] = 'T'
	} else {
		code[2] = 'F'
	}
	if advanced*2 > total {
		code[3] = 'J'
	} else {
		code[3] = 'P'
	}

	inferred := string(code)
	if _, ok := recommendation.PersonalityProfiles[inferred]; !ok {
		return ""
	}
	return inferred
}
