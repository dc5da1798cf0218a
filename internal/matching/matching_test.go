package matching

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
)

func profileWith(personality string, categories ...string) *recommendation.UserProfile {
	p := &recommendation.UserProfile{
		ID:              uuid.New(),
		Name:            "candidate",
		PersonalityType: personality,
		Reputation:      50,
	}
	for _, c := range categories {
		p.Skills = append(p.Skills, recommendation.ProfileSkill{ID: uuid.New(), Category: c})
	}
	return p
}

func TestFindMatchesRanksWantedCoverageFirst(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	requester := profileWith("", "Programming")

	tutor := profileWith("", "Music", "Languages")
	bystander := profileWith("", "Cooking")

	matches := FindMatches(requester, []*recommendation.UserProfile{bystander, tutor}, Criteria{
		WantedSkills: []string{"Music", "Languages"},
		Now:          now,
	})
	if len(matches) == 0 {
		t.Fatalf("no matches")
	}
	if matches[0].User.ID != tutor.ID {
		t.Fatalf("full wanted coverage not ranked first")
	}
	if matches[0].Score.Factors["wanted_skills"] != wantedWeight {
		t.Fatalf("wanted factor = %v, want full %v", matches[0].Score.Factors["wanted_skills"], wantedWeight)
	}
}

func TestFindMatchesExcludesSelfAndFilters(t *testing.T) {
	now := time.Now()
	requester := profileWith("INTJ", "Programming")

	lowRep := profileWith("ENFP", "Music")
	lowRep.Reputation = 20

	wrongType := profileWith("ESFP", "Music")
	wrongType.Reputation = 90

	keeper := profileWith("ENFP", "Music")
	keeper.Reputation = 90

	matches := FindMatches(requester, []*recommendation.UserProfile{requester, lowRep, wrongType, keeper}, Criteria{
		MinReputation:    50,
		PersonalityTypes: []string{"ENFP"},
		Now:              now,
	})
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].User.ID != keeper.ID {
		t.Fatalf("wrong candidate survived the filters")
	}
}

func TestFindMatchesMinScoreFloor(t *testing.T) {
	now := time.Now()
	requester := profileWith("", "Programming")
	weak := profileWith("", "Cooking")
	weak.Reputation = 0

	matches := FindMatches(requester, []*recommendation.UserProfile{weak}, Criteria{
		WantedSkills:  []string{"Music"},
		MinMatchScore: 90,
		Now:           now,
	})
	if len(matches) != 0 {
		t.Fatalf("weak candidate beat a 90-point floor")
	}
}

func TestFindMatchesLocationFactor(t *testing.T) {
	now := time.Now()
	requester := profileWith("", "Programming")
	requester.Location = "Lisbon, Portugal"

	local := profileWith("", "Music")
	local.Location = "Lisbon, Portugal"
	nearby := profileWith("", "Music")
	nearby.Location = "Porto, Portugal"
	remote := profileWith("", "Music")
	remote.Location = "Tokyo, Japan"

	run := func(cand *recommendation.UserProfile) float64 {
		m := FindMatches(requester, []*recommendation.UserProfile{cand}, Criteria{Now: now})
		if len(m) != 1 {
			t.Fatalf("got %d matches", len(m))
		}
		return m[0].Score.Factors["location"]
	}
	if got := run(local); got != locationWeight {
		t.Fatalf("exact location factor = %v, want %v", got, locationWeight)
	}
	if got := run(nearby); got != locationWeight*0.5 {
		t.Fatalf("shared-token location factor = %v, want %v", got, locationWeight*0.5)
	}
	if got := run(remote); got != 0 {
		t.Fatalf("unrelated location factor = %v, want 0", got)
	}
}

func TestFindMatchesActivityFactor(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	requester := profileWith("", "Programming")

	recent := profileWith("", "Music")
	recent.LastActivity = now.Add(-2 * 24 * time.Hour)
	idle := profileWith("", "Music")
	idle.LastActivity = now.Add(-60 * 24 * time.Hour)

	matches := FindMatches(requester, []*recommendation.UserProfile{idle, recent}, Criteria{Now: now})
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].User.ID != recent.ID {
		t.Fatalf("recently active candidate not ranked first")
	}
	if matches[0].Score.Factors["activity"] != activityWeight {
		t.Fatalf("recent activity factor = %v, want full %v", matches[0].Score.Factors["activity"], activityWeight)
	}
}

func TestFindMatchesOfferedFallsBackToOwnSkills(t *testing.T) {
	now := time.Now()
	requester := profileWith("", "Programming")

	// The candidate does not offer Programming, so the requester's own
	// offering fills a gap and scores the full offered factor.
	cand := profileWith("", "Music")
	matches := FindMatches(requester, []*recommendation.UserProfile{cand}, Criteria{Now: now})
	if len(matches) != 1 {
		t.Fatalf("got %d matches", len(matches))
	}
	if matches[0].Score.Factors["offered_skills"] != offeredWeight {
		t.Fatalf("offered factor = %v, want %v", matches[0].Score.Factors["offered_skills"], offeredWeight)
	}
}

func TestFindMatchesCompatibilityBreakdown(t *testing.T) {
	now := time.Now()
	requester := profileWith("INTJ", "Programming")
	cand := profileWith("ENFP", "Music")

	matches := FindMatches(requester, []*recommendation.UserProfile{cand}, Criteria{Now: now})
	if len(matches) != 1 {
		t.Fatalf("got %d matches", len(matches))
	}
	// INTJ/ENFP compatibility is 0.9.
	want := 0.9 * compatibilityWeight
	if got := matches[0].Score.Factors["compatibility"]; got != want {
		t.Fatalf("compatibility factor = %v, want %v", got, want)
	}
	found := false
	for _, line := range matches[0].Score.Breakdown {
		if line == "Strong personality compatibility" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing compatibility breakdown line in %v", matches[0].Score.Breakdown)
	}
}

func TestFindMatchesNilRequester(t *testing.T) {
	if got := FindMatches(nil, []*recommendation.UserProfile{profileWith("", "Music")}, Criteria{}); got != nil {
		t.Fatalf("nil requester produced matches")
	}
}

func TestInferPersonalityType(t *testing.T) {
	cases := []struct {
		name   string
		skills []recommendation.ProfileSkill
		want   string
	}{
		{
			name: "online advanced programmer",
			skills: []recommendation.ProfileSkill{
				{Category: "Programming", Mode: "online", Difficulty: "advanced"},
				{Category: "Science", Mode: "online", Difficulty: "advanced"},
			},
			want: "INTJ",
		},
		{
			name: "in-person beginner cook",
			skills: []recommendation.ProfileSkill{
				{Category: "Cooking", Mode: "in-person", Difficulty: "beginner"},
				{Category: "Fitness", Mode: "in-person", Difficulty: "beginner"},
			},
			want: "ESFP",
		},
		{
			name:   "no skills",
			skills: nil,
			want:   "",
		},
	}
	for _, tc := range cases {
		profile := &recommendation.UserProfile{ID: uuid.New(), Skills: tc.skills}
		if got := InferPersonalityType(profile); got != tc.want {
			t.Fatalf("%s: InferPersonalityType = %q, want %q", tc.name, got, tc.want)
		}
	}
	if got := InferPersonalityType(nil); got != "" {
		t.Fatalf("nil profile inferred %q", got)
	}
}
