// Package systems implements the simulation pipeline: motion integration,
// overlap detection and contact resolution, plus contact event reporting.
package systems

import (
	"math"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

// MotionSystem integrates acceleration into velocity and velocity into position
// with semi-implicit Euler. Entities with a static body are left alone; only
// dynamic bodies receive gravity.
type MotionSystem struct {
	Bodies ecs.Query[struct {
		*components.Transform
		*components.Motion
		Body *components.PhysicsBody `ecs:"optional"`
	}]
	Gravity ecs.Singleton[components.Gravity]
}

// NewMotionSystem creates a motion system; the scheduler binds its queries
func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Stage() ecs.Stage { return ecs.StageMotion }

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := frame.DeltaTime
	if dt <= 0 {
		return
	}

	var gravity components.Gravity
	if g := s.Gravity.Get(); g != nil {
		gravity = *g
	}

	for item := range s.Bodies.Values() {
		if item.Body != nil && item.Body.Type == components.BodyStatic {
			continue
		}
		Integrate(item.Transform, item.Motion, item.Body, gravity, dt)
	}
}

// Integrate advances one entity by dt. body may be nil.
func Integrate(t *components.Transform, m *components.Motion, body *components.PhysicsBody, gravity components.Gravity, dt float64) {
	ax, ay := m.AX, m.AY
	if body != nil && body.Type == components.BodyDynamic {
		ax += gravity.X * body.GravityScale
		ay += gravity.Y * body.GravityScale
	}

	m.VX += ax * dt
	m.VY += ay * dt

	if m.MaxSpeed > 0 {
		speedSq := m.VX*m.VX + m.VY*m.VY
		if speedSq > m.MaxSpeed*m.MaxSpeed {
			k := m.MaxSpeed / math.Sqrt(speedSq)
			m.VX *= k
			m.VY *= k
		}
	}

	if m.Damping > 0 {
		factor := math.Max(0, 1-m.Damping*dt)
		m.VX *= factor
		m.VY *= factor
	}

	if m.Friction > 0 && m.AX == 0 {
		step := m.Friction * dt
		switch {
		case m.VX > step:
			m.VX -= step
		case m.VX < -step:
			m.VX += step
		default:
			m.VX = 0
		}
	}

	t.X += m.VX * dt
	t.Y += m.VY * dt
}
