package ecs_test

import (
	"fmt"

	"github.com/plus3/zyra/ecs"
)

// ExampleView demonstrates using Views for flexible entity lookups.
// Views don't require a Scheduler and iterate on demand, which makes them
// a good fit for tools or one-off queries outside of a system.
func ExampleView() {
	world := ecs.NewWorld(newTestRegistry())

	player := world.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	if item := view.Get(player.Id()); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

// ExampleView_Iter shows iterating over every entity matching a view, in
// creation order. An EntityId field receives the id of the visited entity,
// and fields tagged `ecs:"optional"` are nil when the entity lacks them.
func ExampleView_Iter() {
	world := ecs.NewWorld(newTestRegistry())

	world.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	world.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 50, Max: 100})
	world.Spawn(Position{X: 100, Y: 100})

	view := ecs.NewView[struct {
		ID ecs.EntityId
		*Position
		*Velocity
		Health *Health `ecs:"optional"`
	}](world)

	for item := range view.Values() {
		hp := "-"
		if item.Health != nil {
			hp = fmt.Sprint(item.Health.Current)
		}
		fmt.Printf("entity %v at (%.0f, %.0f) hp %s\n", item.ID, item.Position.X, item.Position.Y, hp)
	}

	// Output:
	// entity 1 at (0, 0) hp -
	// entity 2 at (10, 10) hp 50
}
