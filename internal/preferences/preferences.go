// Package preferences holds the math for learned preference signals:
// action strengths, the exponential-approach confidence update, negative
// feedback, and scheduled decay.
package preferences

import (
	"math"
	"time"
)

// ConfidenceFloor seeds fresh records and is the prune threshold for decay.
const ConfidenceFloor = 0.1

// actionBaseValue maps a positive action to the base preference value it
// expresses. Stronger commitment, stronger value.
var actionBaseValue = map[string]float64{
	"view":     0.1,
	"search":   0.2,
	"bookmark": 0.4,
	"message":  0.5,
	"request":  0.6,
	"review":   0.7,
	"complete": 0.9,
}

// actionLearningStrength maps an action to how hard it moves confidence.
var actionLearningStrength = map[string]float64{
	"view":     0.2,
	"search":   0.3,
	"bookmark": 0.5,
	"message":  0.55,
	"request":  0.7,
	"review":   0.8,
	"complete": 1.0,
}

// negativeImpact maps explicit rejection actions to confidence reductions.
var negativeImpact = map[string]float64{
	"dismiss": -0.3,
	"skip":    -0.3,
	"dislike": -0.4,
	"hide":    -0.5,
}

// Context carries the behavioral context that can amplify a signal.
type Context struct {
	TimeSpentSeconds int
	RepeatCount      int
	HighIntensity    bool
}

// BaseValue returns the preference value an action expresses, 0 for
// unknown actions.
func BaseValue(action string) float64 {
	return actionBaseValue[action]
}

// IsPositiveAction reports whether the action feeds positive learning.
func IsPositiveAction(action string) bool {
	_, ok := actionLearningStrength[action]
	return ok
}

// IsNegativeAction reports whether the action expresses rejection.
func IsNegativeAction(action string) bool {
	_, ok := negativeImpact[action]
	return ok
}

// Strength computes the learning strength for an action in context:
// the action's base strength, amplified for long engagement (>5 min,
// x1.2), repetition (x1.1) and high intensity (x1.3), capped at 1.0.
func Strength(action string, ctx Context) float64 {
	s, ok := actionLearningStrength[action]
	if !ok {
		return 0
	}
	if ctx.TimeSpentSeconds > 300 {
		s *= 1.2
	}
	if ctx.RepeatCount > 1 {
		s *= 1.1
	}
	if ctx.HighIntensity {
		s *= 1.3
	}
	return math.Min(1.0, s)
}

// UpdateConfidence applies one positive observation:
//
//	new = 0.1 + 0.9 * (1 - (1 - strength)^(old + 0.1))
//
// The exponential approach is monotonically increasing in both arguments
// and asymptotically approaches 1.0 without reaching it unless strength is
// exactly 1.0. Fresh records pass old = ConfidenceFloor.
func UpdateConfidence(old, strength float64) float64 {
	if strength <= 0 {
		return old
	}
	old = math.Max(0, math.Min(1, old))
	strength = math.Min(1, strength)
	return 0.1 + 0.9*(1-math.Pow(1-strength, old+0.1))
}

// ApplyNegative reduces confidence for a rejection action, clamped at 0.
// Unknown actions leave confidence untouched.
func ApplyNegative(old float64, action string) float64 {
	impact, ok := negativeImpact[action]
	if !ok {
		return old
	}
	return math.Max(0, old+impact)
}

// Decay tiers: a record untouched for at least the threshold decays by the
// factor once per elapsed period.
const (
	weeklyThreshold  = 7 * 24 * time.Hour
	monthlyThreshold = 30 * 24 * time.Hour
	yearlyThreshold  = 365 * 24 * time.Hour

	weeklyFactor  = 0.95
	monthlyFactor = 0.9
	yearlyFactor  = 0.8
)

// Decay returns the confidence after scheduled decay for a record last
// touched at lastUpdated. The applicable tier is chosen by total age and
// the factor is compounded once per elapsed period. Callers should delete
// records whose result falls below ConfidenceFloor.
func Decay(confidence float64, lastUpdated, now time.Time) float64 {
	age := now.Sub(lastUpdated)
	switch {
	case age >= yearlyThreshold:
		periods := int(age / yearlyThreshold)
		return confidence * math.Pow(yearlyFactor, float64(periods))
	case age >= monthlyThreshold:
		periods := int(age / monthlyThreshold)
		return confidence * math.Pow(monthlyFactor, float64(periods))
	case age >= weeklyThreshold:
		periods := int(age / weeklyThreshold)
		return confidence * math.Pow(weeklyFactor, float64(periods))
	default:
		return confidence
	}
}
