package systems

import (
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/events"
)

// Pipeline holds the default simulation systems
type Pipeline struct {
	Motion    *MotionSystem
	Collision *CollisionSystem
	Physics   *PhysicsSystem
	Contacts  *ContactEventSystem
}

// Install registers motion, collision, physics and, when bus is non-nil,
// contact events on the world
func Install(world *ecs.World, bus *events.Bus) *Pipeline {
	p := &Pipeline{
		Motion:    NewMotionSystem(),
		Collision: NewCollisionSystem(),
		Physics:   NewPhysicsSystem(),
	}
	world.AddSystem(p.Motion)
	world.AddSystem(p.Collision)
	world.AddSystem(p.Physics)
	if bus != nil {
		p.Contacts = NewContactEventSystem(bus)
		world.AddSystem(p.Contacts)
	}
	return p
}
