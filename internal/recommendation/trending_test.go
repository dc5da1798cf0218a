package recommendation

import (
	"testing"
	"time"
)

func trendingCandidate(rating float64, views, requests int, createdAt time.Time) CandidateSkill {
	c := activeCandidate("Programming")
	c.Rating = rating
	c.ViewCount = views
	c.RequestCount = requests
	c.CreatedAt = createdAt
	return c
}

func TestTrendingQualifiers(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	user := testUser("")

	lowRating := trendingCandidate(3.5, 500, 10, now)
	lowViews := trendingCandidate(4.8, 50, 10, now)
	qualified := trendingCandidate(4.8, 500, 10, now)

	got := Trending(user, []CandidateSkill{lowRating, lowViews, qualified}, TrendingOptions{Now: now})
	if len(got) != 1 {
		t.Fatalf("got %d trending results, want 1", len(got))
	}
	if got[0].Skill.ID != qualified.ID {
		t.Fatalf("wrong candidate qualified")
	}
}

func TestTrendingServesUsersWithoutSkills(t *testing.T) {
	now := time.Now()
	user := testUser("")
	cand := trendingCandidate(4.5, 800, 40, now)
	got := Trending(user, []CandidateSkill{cand}, TrendingOptions{Now: now})
	if len(got) != 1 {
		t.Fatalf("brand-new user got %d trending results, want 1", len(got))
	}
}

func TestTrendingNeutralAlignmentWithoutPreferences(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	user := testUser("")
	cand := trendingCandidate(4.5, 500, 50, now)

	got := Trending(user, []CandidateSkill{cand}, TrendingOptions{Now: now})
	if len(got) != 1 {
		t.Fatalf("got %d results", len(got))
	}
	// trend = min(0.5, 500/1000) + min(0.3, 50/100) + 0.2 recency = 1.0;
	// alignment defaults to the neutral 0.5.
	want := 0.6*0.5 + 0.4*1.0
	if !almostEqual(got[0].Score, want) {
		t.Fatalf("score = %v, want %v", got[0].Score, want)
	}
}

func TestTrendingRecencyBonus(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	user := testUser("")

	fresh := trendingCandidate(4.5, 500, 10, now.Add(-24*time.Hour))
	stale := trendingCandidate(4.5, 500, 10, now.Add(-90*24*time.Hour))

	got := Trending(user, []CandidateSkill{stale, fresh}, TrendingOptions{Now: now})
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Skill.ID != fresh.ID {
		t.Fatalf("fresh skill not ranked first")
	}
	if !almostEqual(got[0].Score-got[1].Score, 0.4*0.2) {
		t.Fatalf("recency delta = %v, want %v", got[0].Score-got[1].Score, 0.4*0.2)
	}
}

func TestTrendingPreferenceAlignment(t *testing.T) {
	now := time.Now()
	user := testUser("")
	user.Preferences = []Preference{
		{Category: "Programming", Key: "interest", Value: "Programming", Confidence: 0.9},
		{Category: "Programming", Key: "difficulty", Value: "advanced", Confidence: 0.8},
	}

	aligned := trendingCandidate(4.5, 500, 10, now)
	aligned.Difficulty = "advanced"

	misaligned := trendingCandidate(4.5, 500, 10, now)
	misaligned.Category = "Cooking"
	misaligned.Difficulty = "beginner"

	got := Trending(user, []CandidateSkill{misaligned, aligned}, TrendingOptions{Now: now})
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Skill.ID != aligned.ID {
		t.Fatalf("preference-aligned skill not ranked first")
	}
}

func TestDurationBucket(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, ""},
		{-5, ""},
		{15, "short"},
		{29, "short"},
		{30, "medium"},
		{89, "medium"},
		{90, "long"},
		{240, "long"},
	}
	for _, tc := range cases {
		if got := DurationBucket(tc.minutes); got != tc.want {
			t.Fatalf("DurationBucket(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestPriceBucket(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{0, "free"},
		{-1, "free"},
		{10, "low"},
		{24.99, "low"},
		{25, "medium"},
		{99.99, "medium"},
		{100, "high"},
	}
	for _, tc := range cases {
		if got := PriceBucket(tc.price); got != tc.want {
			t.Fatalf("PriceBucket(%v) = %q, want %q", tc.price, got, tc.want)
		}
	}
}
