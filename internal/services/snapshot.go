package services

import (
	"encoding/json"

	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
	"github.com/skillbridge/skillbridge-backend/internal/types"
)

// Snapshot mapping between GORM rows and the read-only structs the scoring
// core works over.

func toProfileSkill(s *types.Skill) recommendation.ProfileSkill {
	return recommendation.ProfileSkill{
		ID:              s.ID,
		Category:        s.Category,
		Subcategory:     s.Subcategory,
		Tags:            []string(s.Tags),
		Difficulty:      s.Difficulty,
		Mode:            s.Mode,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Rating:          s.Rating,
		IsVerified:      s.IsVerified,
		ViewCount:       s.ViewCount,
	}
}

func toCandidateSkill(s *types.Skill) recommendation.CandidateSkill {
	c := recommendation.CandidateSkill{
		ID:              s.ID,
		Title:           s.Title,
		Category:        s.Category,
		Subcategory:     s.Subcategory,
		Tags:            []string(s.Tags),
		Difficulty:      s.Difficulty,
		Mode:            s.Mode,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Rating:          s.Rating,
		ReviewCount:     s.ReviewCount,
		IsVerified:      s.IsVerified,
		ViewCount:       s.ViewCount,
		RequestCount:    s.RequestCount,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
	}
	if s.User != nil {
		c.Owner = recommendation.OwnerSummary{
			ID:              s.User.ID,
			Name:            s.User.Name,
			Reputation:      s.User.Reputation,
			PersonalityType: s.User.PersonalityType,
		}
	} else {
		c.Owner.ID = s.UserID
	}
	return c
}

func toUserProfile(u *types.User, exchanges []*types.SkillExchange, prefs []*types.UserPreference) *recommendation.UserProfile {
	profile := &recommendation.UserProfile{
		ID:              u.ID,
		Name:            u.Name,
		PersonalityType: u.PersonalityType,
		Reputation:      u.Reputation,
		Level:           u.Level,
		Location:        u.Location,
		LastActivity:    u.LastActivity,
	}
	for i := range u.Skills {
		profile.Skills = append(profile.Skills, toProfileSkill(&u.Skills[i]))
	}
	for _, e := range exchanges {
		ce := recommendation.CompletedExchange{
			SkillID:   e.SkillID,
			PartnerID: e.ProviderID,
			Rating:    e.Rating,
		}
		if e.Skill != nil {
			ce.Category = e.Skill.Category
		}
		profile.Exchanges = append(profile.Exchanges, ce)
	}
	for _, p := range prefs {
		profile.Preferences = append(profile.Preferences, recommendation.Preference{
			Category:   p.Category,
			Key:        p.PreferenceKey,
			Value:      decodePreferenceValue(p.Value),
			Confidence: p.Confidence,
		})
	}
	return profile
}

func decodePreferenceValue(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return recommendation.FormatPreferenceValue(v)
}
