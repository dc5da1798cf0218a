package recommendation

// SkillProfile is the histogram view of a user's existing skills that the
// content recommender scores candidates against.
type SkillProfile struct {
	Categories   map[string]int
	Tags         map[string]int
	Difficulties map[string]int
	Modes        map[string]int
	Durations    []int
	Total        int
}

// BuildSkillProfile scans the user's skills into per-category, per-tag,
// per-difficulty and per-mode counts plus the raw duration list. Empty
// string values are skipped so missing fields don't show up as histogram
// buckets.
func BuildSkillProfile(skills []ProfileSkill) *SkillProfile {
	p := &SkillProfile{
		Categories:   make(map[string]int),
		Tags:         make(map[string]int),
		Difficulties: make(map[string]int),
		Modes:        make(map[string]int),
	}
	for _, s := range skills {
		p.Total++
		if s.Category != "" {
			p.Categories[s.Category]++
		}
		for _, t := range s.Tags {
			if t != "" {
				p.Tags[t]++
			}
		}
		if s.Difficulty != "" {
			p.Difficulties[s.Difficulty]++
		}
		if s.Mode != "" {
			p.Modes[s.Mode]++
		}
		if s.DurationMinutes > 0 {
			p.Durations = append(p.Durations, s.DurationMinutes)
		}
	}
	return p
}

// AvgDuration returns the mean of the recorded durations, 0 when none.
func (p *SkillProfile) AvgDuration() float64 {
	if len(p.Durations) == 0 {
		return 0
	}
	sum := 0
	for _, d := range p.Durations {
		sum += d
	}
	return float64(sum) / float64(len(p.Durations))
}
