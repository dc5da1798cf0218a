package recommendation

import (
	"testing"

	"github.com/google/uuid"
)

func TestCollaborativeNeedsNeighbors(t *testing.T) {
	user := testUser("", ProfileSkill{Category: "Programming"})
	cand := activeCandidate("Programming")

	if got := Collaborative(user, nil, []CandidateSkill{cand}, CollaborativeOptions{}); len(got) != 0 {
		t.Fatalf("no neighbor pool but got %d results", len(got))
	}

	// A neighbor with no category overlap never qualifies.
	stranger := testUser("", ProfileSkill{Category: "Cooking"})
	if got := Collaborative(user, []*UserProfile{stranger}, []CandidateSkill{cand}, CollaborativeOptions{}); len(got) != 0 {
		t.Fatalf("non-overlapping neighbor produced %d results", len(got))
	}
}

func TestCollaborativeZeroSkillUserGetsNothing(t *testing.T) {
	user := testUser("")
	neighbor := testUser("", ProfileSkill{Category: "Programming"})
	cand := activeCandidate("Programming")
	if got := Collaborative(user, []*UserProfile{neighbor}, []CandidateSkill{cand}, CollaborativeOptions{}); len(got) != 0 {
		t.Fatalf("zero-skill user got %d collaborative results", len(got))
	}
}

func TestCollaborativeSurfacesNeighborSkills(t *testing.T) {
	shared := ProfileSkill{Category: "Programming", Tags: []string{"go", "backend"}}
	user := testUser("", shared)
	neighbor := testUser("", shared)

	offered := activeCandidate("Programming")
	offered.Owner.ID = neighbor.ID
	offered.Rating = 4.5
	offered.ReviewCount = 40
	offered.IsVerified = true
	offered.ViewCount = 800

	// Same stats but owned by someone outside the neighbor set.
	outsider := offered
	outsider.ID = uuid.New()
	outsider.Owner = OwnerSummary{ID: uuid.New()}

	got := Collaborative(user, []*UserProfile{neighbor}, []CandidateSkill{offered, outsider}, CollaborativeOptions{})
	if len(got) != 1 {
		t.Fatalf("got %d results, want exactly the neighbor-owned skill", len(got))
	}
	if got[0].Skill.ID != offered.ID {
		t.Fatalf("wrong skill surfaced")
	}
	if got[0].Score <= collaborativeScoreFloor {
		t.Fatalf("surfaced score %v is not above the floor", got[0].Score)
	}
}

func TestCollaborativeNeighborCap(t *testing.T) {
	shared := ProfileSkill{Category: "Programming", Tags: []string{"go"}}
	user := testUser("", shared)

	var others []*UserProfile
	for i := 0; i < 30; i++ {
		others = append(others, testUser("", shared))
	}
	cand := activeCandidate("Programming")
	cand.Owner.ID = others[0].ID
	cand.Rating = 4.5
	cand.IsVerified = true

	// MaxSimilarUsers=1 keeps only the best neighbor; whether the single
	// candidate survives depends on its owner making the cut, so the call
	// must not panic and must never return more than the pool offers.
	got := Collaborative(user, others, []CandidateSkill{cand}, CollaborativeOptions{MaxSimilarUsers: 1})
	if len(got) > 1 {
		t.Fatalf("got %d results from a single candidate", len(got))
	}
}
