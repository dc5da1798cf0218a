package recommendation

import (
	"math"
	"strings"
)

// PersonalityProfile is static reference data for one of the 16 four-letter
// types. Compiled into the process; users only store the type code.
type PersonalityProfile struct {
	Name                string
	Traits              []string
	LearningStyle       string
	PreferredDifficulty string
	PreferredCategories []string
	CollaborationStyle  string
}

// Learning styles referenced by the personality table.
const (
	StyleAnalytical   = "analytical"
	StyleVisual       = "visual"
	StylePractical    = "practical"
	StyleSocial       = "social"
	StyleStructured   = "structured"
	StyleExperimental = "experimental"
	StyleReflective   = "reflective"
	StyleAuditory     = "auditory"
	StyleKinesthetic  = "kinesthetic"
	StyleNarrative    = "narrative"
)

// learningStyleKeywords maps each style to tag keywords that indicate a
// skill teaches in that style. Alignment counts substring matches in the
// candidate's tags, normalized by 3 and capped at 1.
var learningStyleKeywords = map[string][]string{
	StyleAnalytical:   {"logic", "theory", "analysis", "data", "algorithm", "research"},
	StyleVisual:       {"design", "diagram", "video", "illustration", "visual", "sketch"},
	StylePractical:    {"hands-on", "project", "practice", "workshop", "real-world", "exercise"},
	StyleSocial:       {"group", "conversation", "pair", "community", "discussion", "collaborative"},
	StyleStructured:   {"curriculum", "step-by-step", "fundamentals", "course", "structured", "plan"},
	StyleExperimental: {"experiment", "improvisation", "creative", "explore", "prototype", "jam"},
	StyleReflective:   {"journal", "mindfulness", "self-paced", "reading", "reflection", "essay"},
	StyleAuditory:     {"podcast", "listening", "lecture", "music", "audio", "spoken"},
	StyleKinesthetic:  {"movement", "fitness", "dance", "sport", "physical", "drill"},
	StyleNarrative:    {"story", "writing", "history", "case-study", "narrative", "example"},
}

// PersonalityProfiles is the static 16-entry table. Hand-authored
// configuration data, not a derived model.
var PersonalityProfiles = map[string]PersonalityProfile{
	"INTJ": {
		Name:                "Architect",
		Traits:              []string{"strategic", "independent", "decisive"},
		LearningStyle:       StyleAnalytical,
		PreferredDifficulty: "advanced",
		PreferredCategories: []string{"Programming", "Science", "Business", "Finance"},
		CollaborationStyle:  "independent",
	},
	"INTP": {
		Name:                "Logician",
		Traits:              []string{"curious", "abstract", "inventive"},
		LearningStyle:       StyleExperimental,
		PreferredDifficulty: "advanced",
		PreferredCategories: []string{"Science", "Programming", "Philosophy", "Writing"},
		CollaborationStyle:  "independent",
	},
	"ENTJ": {
		Name:                "Commander",
		Traits:              []string{"assertive", "efficient", "organized"},
		LearningStyle:       StyleStructured,
		PreferredDifficulty: "advanced",
		PreferredCategories: []string{"Business", "Finance", "Marketing", "Programming"},
		CollaborationStyle:  "leading",
	},
	"ENTP": {
		Name:                "Debater",
		Traits:              []string{"quick", "original", "outspoken"},
		LearningStyle:       StyleExperimental,
		PreferredDifficulty: "intermediate",
		PreferredCategories: []string{"Business", "Marketing", "Writing", "Science"},
		CollaborationStyle:  "sparring",
	},
	"INFJ": {
		Name:                "Advocate",
		Traits:              []string{"insightful", "principled", "quiet"},
		LearningStyle:       StyleReflective,
		PreferredDifficulty: "intermediate",
		PreferredCategories: []string{"Writing", "Languages", "Wellness", "Music"},
		CollaborationStyle:  "one-on-one",
	},
	"INFP": {
		Name:                "Mediator",
		Traits:              []string{"idealistic", "empathetic", "creative"},
		LearningStyle:       StyleNarrative,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Writing", "Music", "Design", "Languages"},
		CollaborationStyle:  "supportive",
	},
	"ENFJ": {
		Name:                "Protagonist",
		Traits:              []string{"charismatic", "altruistic", "reliable"},
		LearningStyle:       StyleSocial,
		PreferredDifficulty: "intermediate",
		PreferredCategories: []string{"Languages", "Business", "Wellness", "Music"},
		CollaborationStyle:  "mentoring",
	},
	"ENFP": {
		Name:                "Campaigner",
		Traits:              []string{"enthusiastic", "sociable", "spontaneous"},
		LearningStyle:       StyleSocial,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Music", "Design", "Marketing", "Languages"},
		CollaborationStyle:  "energizing",
	},
	"ISTJ": {
		Name:                "Logistician",
		Traits:              []string{"practical", "factual", "dependable"},
		LearningStyle:       StyleStructured,
		PreferredDifficulty: "intermediate",
		PreferredCategories: []string{"Finance", "Programming", "Business", "Crafts"},
		CollaborationStyle:  "methodical",
	},
	"ISFJ": {
		Name:                "Defender",
		Traits:              []string{"warm", "meticulous", "loyal"},
		LearningStyle:       StyleStructured,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Cooking", "Crafts", "Wellness", "Languages"},
		CollaborationStyle:  "supportive",
	},
	"ESTJ": {
		Name:                "Executive",
		Traits:              []string{"organized", "direct", "traditional"},
		LearningStyle:       StylePractical,
		PreferredDifficulty: "intermediate",
		PreferredCategories: []string{"Business", "Finance", "Fitness", "Crafts"},
		CollaborationStyle:  "leading",
	},
	"ESFJ": {
		Name:                "Consul",
		Traits:              []string{"caring", "social", "organized"},
		LearningStyle:       StyleSocial,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Cooking", "Languages", "Wellness", "Music"},
		CollaborationStyle:  "hosting",
	},
	"ISTP": {
		Name:                "Virtuoso",
		Traits:              []string{"bold", "practical", "experimental"},
		LearningStyle:       StyleKinesthetic,
		PreferredDifficulty: "intermediate",
		PreferredCategories: []string{"Crafts", "Fitness", "Programming", "Photography"},
		CollaborationStyle:  "independent",
	},
	"ISFP": {
		Name:                "Adventurer",
		Traits:              []string{"artistic", "charming", "curious"},
		LearningStyle:       StyleVisual,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Design", "Photography", "Music", "Cooking"},
		CollaborationStyle:  "easygoing",
	},
	"ESTP": {
		Name:                "Entrepreneur",
		Traits:              []string{"energetic", "perceptive", "direct"},
		LearningStyle:       StyleKinesthetic,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Fitness", "Business", "Marketing", "Photography"},
		CollaborationStyle:  "energizing",
	},
	"ESFP": {
		Name:                "Entertainer",
		Traits:              []string{"spontaneous", "enthusiastic", "friendly"},
		LearningStyle:       StyleAuditory,
		PreferredDifficulty: "beginner",
		PreferredCategories: []string{"Music", "Cooking", "Fitness", "Design"},
		CollaborationStyle:  "hosting",
	},
}

// complementaryPairs is the fixed list of 8 unordered pairs that earn the
// complementary bonus. Each type appears exactly once.
var complementaryPairs = [][2]string{
	{"INTJ", "ENFP"},
	{"INFJ", "ENTP"},
	{"INTP", "ENTJ"},
	{"INFP", "ENFJ"},
	{"ISTJ", "ESFP"},
	{"ISFJ", "ESTP"},
	{"ISTP", "ESFJ"},
	{"ISFP", "ESTJ"},
}

// AreComplementary reports whether the unordered pair (a, b) is one of the
// eight complementary pairs.
func AreComplementary(a, b string) bool {
	for _, p := range complementaryPairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// personalityCompatibility is hand-authored configuration keyed by ordered
// pair. Entries are mirrored at init so lookups work in either order.
var personalityCompatibility = map[string]map[string]float64{
	"INTJ": {"INTJ": 0.6, "ENFP": 0.9, "ENTP": 0.8, "INFJ": 0.8, "INTP": 0.75, "ENTJ": 0.7, "ESFP": 0.3, "ESFJ": 0.35},
	"INTP": {"INTP": 0.6, "ENTJ": 0.9, "ESTJ": 0.8, "INFJ": 0.75, "ENTP": 0.75, "ESFJ": 0.3},
	"ENTJ": {"ENTJ": 0.55, "INFP": 0.8, "ENFP": 0.7, "ISTP": 0.65, "ISFP": 0.35},
	"ENTP": {"ENTP": 0.55, "INFJ": 0.9, "INFP": 0.8, "ENFJ": 0.7, "ISFJ": 0.3},
	"INFJ": {"INFJ": 0.6, "ENFP": 0.85, "INFP": 0.7, "ESTP": 0.3},
	"INFP": {"INFP": 0.6, "ENFJ": 0.9, "ESFJ": 0.6, "ESTJ": 0.35},
	"ENFJ": {"ENFJ": 0.55, "ISFP": 0.85, "INTP": 0.6, "ISTP": 0.4},
	"ENFP": {"ENFP": 0.55, "ISTJ": 0.6, "ISFJ": 0.6, "ISTP": 0.45},
	"ISTJ": {"ISTJ": 0.6, "ESFP": 0.85, "ESTP": 0.7, "ISFJ": 0.65, "ENFP": 0.6, "INFP": 0.4},
	"ISFJ": {"ISFJ": 0.6, "ESTP": 0.85, "ESFP": 0.7, "ESFJ": 0.65, "ENTP": 0.3},
	"ESTJ": {"ESTJ": 0.55, "ISFP": 0.8, "ISTP": 0.7, "ISTJ": 0.65, "INFP": 0.35},
	"ESFJ": {"ESFJ": 0.55, "ISTP": 0.8, "ISFP": 0.7, "ISFJ": 0.65, "INTJ": 0.35},
	"ISTP": {"ISTP": 0.6, "ESFJ": 0.8, "ESTJ": 0.7, "ESTP": 0.65},
	"ISFP": {"ISFP": 0.6, "ESTJ": 0.8, "ESFJ": 0.7, "ENFJ": 0.85},
	"ESTP": {"ESTP": 0.55, "ISFJ": 0.85, "ISTJ": 0.7, "ESFP": 0.6},
	"ESFP": {"ESFP": 0.55, "ISTJ": 0.85, "ISFJ": 0.7, "ESTP": 0.6},
}

func init() {
	// Mirror so that table[a][b] and table[b][a] agree; the first authored
	// direction wins on conflict.
	for a, row := range personalityCompatibility {
		for b, v := range row {
			if _, ok := personalityCompatibility[b]; !ok {
				personalityCompatibility[b] = make(map[string]float64)
			}
			if _, ok := personalityCompatibility[b][a]; !ok {
				personalityCompatibility[b][a] = v
			}
		}
	}
}

// PersonalityCompatibility looks up the fixed table for the ordered pair
// (a, b). Unknown types and pairs absent from the table score the neutral
// 0.5.
func PersonalityCompatibility(a, b string) float64 {
	if a == "" || b == "" {
		return 0.5
	}
	if _, ok := PersonalityProfiles[a]; !ok {
		return 0.5
	}
	if _, ok := PersonalityProfiles[b]; !ok {
		return 0.5
	}
	if row, ok := personalityCompatibility[a]; ok {
		if v, ok := row[b]; ok {
			return v
		}
	}
	return 0.5
}

var difficultyLevels = map[string]int{
	"beginner":     0,
	"intermediate": 1,
	"advanced":     2,
}

// DifficultyAlignment scores how close a candidate's difficulty sits to a
// preferred one: exact 1.0, adjacent 0.7, two or more apart (or unknown)
// 0.3.
func DifficultyAlignment(preferred, actual string) float64 {
	p, okP := difficultyLevels[preferred]
	a, okA := difficultyLevels[actual]
	if !okP || !okA {
		return 0.3
	}
	switch d := int(math.Abs(float64(p - a))); d {
	case 0:
		return 1.0
	case 1:
		return 0.7
	default:
		return 0.3
	}
}

// LearningStyleAlignment counts how many of the style's keywords appear as
// substrings in the candidate's tags, divides by 3 and caps at 1.0.
func LearningStyleAlignment(style string, tags []string) float64 {
	keywords, ok := learningStyleKeywords[style]
	if !ok || len(tags) == 0 {
		return 0
	}
	matches := 0
	for _, kw := range keywords {
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				matches++
				break
			}
		}
	}
	return math.Min(1.0, float64(matches)/3.0)
}

// CategoryAffinity returns the personality-category affinity weight: 1.0
// for the type's first preferred category, stepping down 0.15 per position,
// 0 when the category is not preferred at all.
func CategoryAffinity(p PersonalityProfile, category string) float64 {
	for i, c := range p.PreferredCategories {
		if c == category {
			return math.Max(0.4, 1.0-0.15*float64(i))
		}
	}
	return 0
}
