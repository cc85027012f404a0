package ecs_test

import (
	"fmt"

	"github.com/plus3/zyra/ecs"
)

// ExampleWorld shows the entity handle API: components are added, read and
// mutated through generic helpers keyed by the component type.
func ExampleWorld() {
	world := ecs.NewWorld(newTestRegistry())

	e := world.CreateEntity()
	ecs.AddComponent(e, Position{X: 1, Y: 2})
	ecs.AddComponent(e, Name{Value: "crate"})

	if pos, ok := ecs.GetComponent[Position](e); ok {
		pos.X += 5
	}

	pos, _ := ecs.GetComponent[Position](e)
	name, _ := ecs.GetComponent[Name](e)
	fmt.Printf("%s at (%.0f, %.0f)\n", name.Value, pos.X, pos.Y)
	fmt.Println("has velocity:", ecs.HasComponent[Velocity](e))

	// Output:
	// crate at (6, 2)
	// has velocity: false
}

// ExampleWorld_DestroyEntity shows two-phase destruction: the entity stays
// readable for the rest of the frame and is swept by the next Update.
func ExampleWorld_DestroyEntity() {
	world := ecs.NewWorld(newTestRegistry())

	e := world.Spawn(Position{X: 4})
	world.DestroyEntity(e.Id())

	_, readable := ecs.GetComponent[Position](e)
	fmt.Println("alive:", e.Alive(), "readable:", readable)

	world.Update(1.0 / 60)

	_, readable = ecs.GetComponent[Position](e)
	fmt.Println("alive:", e.Alive(), "readable:", readable)

	// Output:
	// alive: false readable: true
	// alive: false readable: false
}
