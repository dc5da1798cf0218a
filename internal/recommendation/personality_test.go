package recommendation

import (
	"testing"
)

func TestPersonalityProfilesCoverAllSixteenTypes(t *testing.T) {
	if len(PersonalityProfiles) != 16 {
		t.Fatalf("PersonalityProfiles has %d entries, want 16", len(PersonalityProfiles))
	}
	for code, p := range PersonalityProfiles {
		if len(code) != 4 {
			t.Fatalf("type code %q is not four letters", code)
		}
		if _, ok := learningStyleKeywords[p.LearningStyle]; !ok {
			t.Fatalf("%s: learning style %q has no keyword list", code, p.LearningStyle)
		}
		if _, ok := difficultyLevels[p.PreferredDifficulty]; !ok {
			t.Fatalf("%s: unknown preferred difficulty %q", code, p.PreferredDifficulty)
		}
		if len(p.PreferredCategories) == 0 {
			t.Fatalf("%s: no preferred categories", code)
		}
	}
}

func TestComplementaryPairsCoverEveryTypeOnce(t *testing.T) {
	seen := make(map[string]int)
	for _, pair := range complementaryPairs {
		seen[pair[0]]++
		seen[pair[1]]++
	}
	if len(seen) != 16 {
		t.Fatalf("complementary pairs cover %d types, want 16", len(seen))
	}
	for code, n := range seen {
		if n != 1 {
			t.Fatalf("type %s appears %d times in complementary pairs, want 1", code, n)
		}
	}
}

func TestAreComplementaryUnordered(t *testing.T) {
	if !AreComplementary("INTJ", "ENFP") || !AreComplementary("ENFP", "INTJ") {
		t.Fatalf("INTJ/ENFP must be complementary in both orders")
	}
	if AreComplementary("INTJ", "INTJ") {
		t.Fatalf("a type is not complementary with itself")
	}
	if AreComplementary("INTJ", "XXXX") {
		t.Fatalf("unknown types are never complementary")
	}
}

func TestPersonalityCompatibilityTable(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"INTJ", "INTJ", 0.6},
		{"INTJ", "ENFP", 0.9},
		{"ENFP", "INTJ", 0.9}, // mirrored at init
		{"INTJ", "ESFP", 0.3},
		{"", "INTJ", 0.5},
		{"INTJ", "", 0.5},
		{"ABCD", "INTJ", 0.5},
		{"ISFP", "ENFJ", 0.85},
	}
	for _, tc := range cases {
		if got := PersonalityCompatibility(tc.a, tc.b); !almostEqual(got, tc.want) {
			t.Fatalf("PersonalityCompatibility(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestPersonalityCompatibilitySymmetric(t *testing.T) {
	types := make([]string, 0, len(PersonalityProfiles))
	for code := range PersonalityProfiles {
		types = append(types, code)
	}
	for _, a := range types {
		for _, b := range types {
			ab := PersonalityCompatibility(a, b)
			ba := PersonalityCompatibility(b, a)
			if !almostEqual(ab, ba) {
				t.Fatalf("compatibility not symmetric for %s/%s: %v vs %v", a, b, ab, ba)
			}
		}
	}
}

func TestDifficultyAlignment(t *testing.T) {
	cases := []struct {
		preferred, actual string
		want              float64
	}{
		{"advanced", "advanced", 1.0},
		{"advanced", "intermediate", 0.7},
		{"advanced", "beginner", 0.3},
		{"beginner", "intermediate", 0.7},
		{"beginner", "", 0.3},
		{"", "advanced", 0.3},
	}
	for _, tc := range cases {
		if got := DifficultyAlignment(tc.preferred, tc.actual); !almostEqual(got, tc.want) {
			t.Fatalf("DifficultyAlignment(%q, %q) = %v, want %v", tc.preferred, tc.actual, got, tc.want)
		}
	}
}

func TestLearningStyleAlignment(t *testing.T) {
	// Three distinct keyword hits saturate the score.
	got := LearningStyleAlignment(StyleAnalytical, []string{"logic puzzles", "data analysis", "algorithm design"})
	if !almostEqual(got, 1.0) {
		t.Fatalf("saturated alignment = %v, want 1.0", got)
	}
	one := LearningStyleAlignment(StyleAnalytical, []string{"advanced algorithms"})
	if !almostEqual(one, 1.0/3.0) {
		t.Fatalf("single-hit alignment = %v, want 1/3", one)
	}
	if got := LearningStyleAlignment(StyleAnalytical, []string{"watercolor"}); got != 0 {
		t.Fatalf("no-hit alignment = %v, want 0", got)
	}
	if got := LearningStyleAlignment("unknown-style", []string{"logic"}); got != 0 {
		t.Fatalf("unknown style alignment = %v, want 0", got)
	}
	if got := LearningStyleAlignment(StyleAnalytical, nil); got != 0 {
		t.Fatalf("no-tags alignment = %v, want 0", got)
	}
}

func TestCategoryAffinitySteps(t *testing.T) {
	intj := PersonalityProfiles["INTJ"]
	cases := []struct {
		category string
		want     float64
	}{
		{"Programming", 1.0},
		{"Science", 0.85},
		{"Business", 0.7},
		{"Finance", 0.55},
		{"Cooking", 0},
	}
	for _, tc := range cases {
		if got := CategoryAffinity(intj, tc.category); !almostEqual(got, tc.want) {
			t.Fatalf("CategoryAffinity(INTJ, %q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}
