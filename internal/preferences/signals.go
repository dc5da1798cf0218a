package preferences

import (
	"github.com/skillbridge/skillbridge-backend/internal/recommendation"
)

// Signal is one (category, key, value) preference emission derived from a
// behavioral event.
type Signal struct {
	Category string
	Key      string
	Value    string
}

// ResourceMetadata is the slice of the acted-on resource the dispatch table
// reads. Callers fill in what they know; empty fields emit no signal.
type ResourceMetadata struct {
	SkillCategory   string
	Difficulty      string
	Mode            string
	DurationMinutes int
	Price           float64
	PricePresent    bool
	PersonalityType string
}

// Signals is the fixed dispatch table mapping (resource, metadata) to the
// preference rows a behavioral event touches.
func Signals(resource string, meta ResourceMetadata) []Signal {
	var out []Signal
	switch resource {
	case "skill":
		if meta.SkillCategory == "" {
			return nil
		}
		out = append(out, Signal{Category: meta.SkillCategory, Key: "interest", Value: meta.SkillCategory})
		if meta.Difficulty != "" {
			out = append(out, Signal{Category: meta.SkillCategory, Key: "difficulty", Value: meta.Difficulty})
		}
		if meta.Mode != "" {
			out = append(out, Signal{Category: meta.SkillCategory, Key: "mode", Value: meta.Mode})
		}
		if bucket := recommendation.DurationBucket(meta.DurationMinutes); bucket != "" {
			out = append(out, Signal{Category: meta.SkillCategory, Key: "duration", Value: bucket})
		}
		if meta.PricePresent {
			out = append(out, Signal{Category: meta.SkillCategory, Key: "price_range", Value: recommendation.PriceBucket(meta.Price)})
		}
	case "user":
		if meta.PersonalityType != "" {
			out = append(out, Signal{Category: "personality", Key: "personality_type", Value: meta.PersonalityType})
		}
	}
	return out
}
