package preferences

import (
	"testing"
)

func signalByKey(signals []Signal, key string) (Signal, bool) {
	for _, s := range signals {
		if s.Key == key {
			return s, true
		}
	}
	return Signal{}, false
}

func TestSignalsFullSkillMetadata(t *testing.T) {
	meta := ResourceMetadata{
		SkillCategory:   "Programming",
		Difficulty:      "advanced",
		Mode:            "online",
		DurationMinutes: 45,
		Price:           19.99,
		PricePresent:    true,
	}
	signals := Signals("skill", meta)
	if len(signals) != 5 {
		t.Fatalf("got %d signals, want 5: %v", len(signals), signals)
	}

	cases := []struct {
		key, value string
	}{
		{"interest", "Programming"},
		{"difficulty", "advanced"},
		{"mode", "online"},
		{"duration", "medium"},
		{"price_range", "low"},
	}
	for _, tc := range cases {
		sig, ok := signalByKey(signals, tc.key)
		if !ok {
			t.Fatalf("missing %q signal", tc.key)
		}
		if sig.Value != tc.value {
			t.Fatalf("%s signal value = %q, want %q", tc.key, sig.Value, tc.value)
		}
		if sig.Category != "Programming" {
			t.Fatalf("%s signal category = %q, want skill category", tc.key, sig.Category)
		}
	}
}

func TestSignalsSparseSkillMetadata(t *testing.T) {
	signals := Signals("skill", ResourceMetadata{SkillCategory: "Music"})
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want only interest: %v", len(signals), signals)
	}
	if signals[0].Key != "interest" || signals[0].Value != "Music" {
		t.Fatalf("unexpected signal %v", signals[0])
	}
}

func TestSignalsNoCategoryNoSignals(t *testing.T) {
	if got := Signals("skill", ResourceMetadata{Difficulty: "advanced"}); got != nil {
		t.Fatalf("skill without category emitted %v", got)
	}
}

func TestSignalsFreeSkillStillEmitsPriceRange(t *testing.T) {
	signals := Signals("skill", ResourceMetadata{SkillCategory: "Cooking", PricePresent: true})
	sig, ok := signalByKey(signals, "price_range")
	if !ok {
		t.Fatalf("price_range signal missing for explicit free skill")
	}
	if sig.Value != "free" {
		t.Fatalf("price_range = %q, want free", sig.Value)
	}
}

func TestSignalsUserResource(t *testing.T) {
	signals := Signals("user", ResourceMetadata{PersonalityType: "ENFP"})
	if len(signals) != 1 {
		t.Fatalf("got %d signals, want 1", len(signals))
	}
	if signals[0].Category != "personality" || signals[0].Key != "personality_type" || signals[0].Value != "ENFP" {
		t.Fatalf("unexpected signal %v", signals[0])
	}
	if got := Signals("user", ResourceMetadata{}); got != nil {
		t.Fatalf("typeless user emitted %v", got)
	}
}

func TestSignalsUnknownResource(t *testing.T) {
	if got := Signals("course", ResourceMetadata{SkillCategory: "Programming"}); got != nil {
		t.Fatalf("unknown resource emitted %v", got)
	}
}
