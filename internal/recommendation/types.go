package recommendation

import (
	"time"

	"github.com/google/uuid"
)

// ProfileSkill is a skill the requesting user already offers. It is part of
// the read-only profile snapshot a scoring pass works over.
type ProfileSkill struct {
	ID              uuid.UUID `json:"id"`
	Category        string    `json:"category"`
	Subcategory     string    `json:"subcategory"`
	Tags            []string  `json:"tags"`
	Difficulty      string    `json:"difficulty"`
	Mode            string    `json:"mode"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	Rating          float64   `json:"rating"`
	IsVerified      bool      `json:"is_verified"`
	ViewCount       int       `json:"view_count"`
}

// CompletedExchange is one finished exchange from the user's history.
type CompletedExchange struct {
	SkillID   uuid.UUID `json:"skill_id"`
	Category  string    `json:"category"`
	PartnerID uuid.UUID `json:"partner_id"`
	Rating    float64   `json:"rating"`
}

// Preference is a learned preference signal carried into scoring.
type Preference struct {
	Category   string  `json:"category"`
	Key        string  `json:"key"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

// UserProfile is the full snapshot the aggregator loads once per request.
type UserProfile struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Skills          []ProfileSkill      `json:"skills"`
	Exchanges       []CompletedExchange `json:"exchanges"`
	PersonalityType string              `json:"personality_type"`
	Reputation      float64             `json:"reputation"`
	Level           int                 `json:"level"`
	Location        string              `json:"location"`
	LastActivity    time.Time           `json:"last_activity"`
	Preferences     []Preference        `json:"preferences"`
}

// OwnerSummary is the slice of the owning user a candidate carries along.
type OwnerSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Reputation      float64   `json:"reputation"`
	PersonalityType string    `json:"personality_type"`
}

// CandidateSkill is the item being scored. Read-only per scoring pass.
type CandidateSkill struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Subcategory     string       `json:"subcategory"`
	Tags            []string     `json:"tags"`
	Difficulty      string       `json:"difficulty"`
	Mode            string       `json:"mode"`
	DurationMinutes int          `json:"duration_minutes"`
	Price           float64      `json:"price"`
	Rating          float64      `json:"rating"`
	ReviewCount     int          `json:"review_count"`
	IsVerified      bool         `json:"is_verified"`
	ViewCount       int          `json:"view_count"`
	RequestCount    int          `json:"request_count"`
	IsActive        bool         `json:"is_active"`
	CreatedAt       time.Time    `json:"created_at"`
	Owner           OwnerSummary `json:"owner"`
}

// Scored is a candidate surfaced by a single recommender.
type Scored struct {
	Skill CandidateSkill
	Score float64
}

// ScoredRecommendation is the merged, ranked output item. Ephemeral:
// constructed per request, never persisted.
type ScoredRecommendation struct {
	Skill           CandidateSkill     `json:"skill"`
	CompositeScore  float64            `json:"composite_score"`
	AlgorithmScores map[string]float64 `json:"algorithm_scores"`
	Sources         []string           `json:"sources"`
	Reasons         []string           `json:"reasons"`
}

// Signal source names, as they appear in AlgorithmScores and Sources.
const (
	SourceContent       = "content"
	SourceCollaborative = "collaborative"
	SourcePersonality   = "personality"
	SourceTrending      = "trending"
)
