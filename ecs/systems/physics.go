package systems

import (
	"math"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

const (
	// StopSpeed is the bounce speed below which vertical velocity snaps to zero
	StopSpeed = 20.0
	// GroundEpsilon is how far a body's bottom may sit from a surface top and still be grounded
	GroundEpsilon = 0.5
	// GroundBounceLimit is the highest restitution a grounded body may have
	GroundBounceLimit = 0.01
)

// PhysicsSystem pushes dynamic bodies out of the static and kinematic bodies
// they overlap, using the minimum translation vector of each contact.
// Dynamic-vs-dynamic contacts and trigger contacts are never resolved.
type PhysicsSystem struct {
	Bodies  ecs.Query[struct{ *components.PhysicsBody }]
	Dynamic ecs.Query[struct {
		*components.Transform
		*components.Motion
		*components.PhysicsBody
		*components.ColliderAABB
	}]

	resolved int
}

// NewPhysicsSystem creates a physics system; the scheduler binds its queries
func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (s *PhysicsSystem) Stage() ecs.Stage { return ecs.StagePhysics }

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	s.resolved = 0

	for item := range s.Bodies.Values() {
		item.PhysicsBody.OnGround = false
	}

	storage := frame.World.Storage()
	for item := range s.Dynamic.Values() {
		body := item.PhysicsBody
		if body.Type != components.BodyDynamic || item.ColliderAABB.Trigger {
			continue
		}

		for _, otherId := range item.ColliderAABB.Contacts {
			otherTransform := ecs.ReadComponent[components.Transform](storage, otherId)
			otherCollider := ecs.ReadComponent[components.ColliderAABB](storage, otherId)
			otherBody := ecs.ReadComponent[components.PhysicsBody](storage, otherId)
			if otherTransform == nil || otherCollider == nil || otherBody == nil {
				continue
			}
			if otherBody.Type == components.BodyDynamic || otherCollider.Trigger {
				continue
			}

			if Resolve(item.Transform, item.Motion, body, item.ColliderAABB, otherTransform, otherCollider) {
				s.resolved++
			}
		}
	}
}

// Resolved returns the number of contacts separated by the last pass
func (s *PhysicsSystem) Resolved() int {
	return s.resolved
}

// Resolve separates the dynamic body described by (t, m, body, c) from the box
// (ot, oc) along the axis of least penetration and applies the velocity
// response. Returns false when the boxes no longer overlap.
func Resolve(t *components.Transform, m *components.Motion, body *components.PhysicsBody, c *components.ColliderAABB,
	ot *components.Transform, oc *components.ColliderAABB) bool {
	a := c.Bounds(t)
	b := oc.Bounds(ot)

	overlapLeft := a.X2 - b.X1
	overlapRight := b.X2 - a.X1
	overlapTop := a.Y2 - b.Y1
	overlapBottom := b.Y2 - a.Y1
	if overlapLeft <= 0 || overlapRight <= 0 || overlapTop <= 0 || overlapBottom <= 0 {
		return false
	}

	sepX := overlapRight
	if overlapLeft < overlapRight {
		sepX = -overlapLeft
	}
	sepY := overlapBottom
	if overlapTop < overlapBottom {
		sepY = -overlapTop
	}

	if math.Abs(sepX) < math.Abs(sepY) {
		t.X += sepX
		if (sepX > 0 && m.VX < 0) || (sepX < 0 && m.VX > 0) {
			m.VX = 0
		}
		return true
	}

	t.Y += sepY
	bounce := body.Restitution()

	// pushed up while falling, or pushed down while rising
	if (sepY < 0 && m.VY > 0) || (sepY > 0 && m.VY < 0) {
		m.VY = bounceVelocity(m.VY, bounce)
	}

	bottom := t.Y + c.OffsetY + c.Height
	if sepY < 0 && bottom <= b.Y1+GroundEpsilon && m.VY >= 0 && bounce <= GroundBounceLimit {
		body.OnGround = true
	}
	return true
}

func bounceVelocity(vy, bounce float64) float64 {
	if bounce <= 0 {
		return 0
	}
	bounced := -vy * bounce
	if math.Abs(bounced) < StopSpeed {
		return 0
	}
	return bounced
}
