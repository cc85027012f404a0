package systems

import (
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

type collisionCandidate struct {
	id       ecs.EntityId
	collider *components.ColliderAABB
	bounds   components.Rect
}

// CollisionSystem rebuilds every collider's Contacts from an all-pairs AABB
// test. Pairs are tested only when each side's layer is in the other's mask.
// The pass is O(n²) in the number of enabled colliders; there is no spatial
// partitioning.
type CollisionSystem struct {
	Colliders ecs.Query[struct {
		ID ecs.EntityId
		*components.ColliderAABB
		Transform *components.Transform `ecs:"optional"`
	}]

	candidates []collisionCandidate
	pairs      int
}

// NewCollisionSystem creates a collision system; the scheduler binds its queries
func NewCollisionSystem() *CollisionSystem {
	return &CollisionSystem{}
}

func (s *CollisionSystem) Stage() ecs.Stage { return ecs.StageCollision }

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	clear(s.candidates)
	s.candidates = s.candidates[:0]
	s.pairs = 0

	// every collider starts the frame with no contacts, enabled or not
	for item := range s.Colliders.Values() {
		c := item.ColliderAABB
		c.Contacts = c.Contacts[:0]
		if item.Transform == nil || !c.Enabled() {
			continue
		}
		s.candidates = append(s.candidates, collisionCandidate{
			id:       item.ID,
			collider: c,
			bounds:   c.Bounds(item.Transform),
		})
	}

	n := len(s.candidates)
	for i := 0; i < n; i++ {
		a := &s.candidates[i]
		for j := i + 1; j < n; j++ {
			b := &s.candidates[j]
			if !a.collider.Accepts(b.collider) {
				continue
			}
			if !a.bounds.Overlaps(b.bounds) {
				continue
			}
			a.collider.Contacts = append(a.collider.Contacts, b.id)
			b.collider.Contacts = append(b.collider.Contacts, a.id)
			s.pairs++
		}
	}
}

// Pairs returns the number of overlapping pairs found by the last pass
func (s *CollisionSystem) Pairs() int {
	return s.pairs
}
