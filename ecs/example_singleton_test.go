package ecs_test

import (
	"fmt"

	"github.com/plus3/zyra/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
// Singletons are world-wide components not associated with any entity.
func ExampleNewSingleton() {
	world := ecs.NewWorld(ecs.NewComponentRegistry())

	config := ecs.NewSingleton[GameConfig](world, GameConfig{
		MaxPlayers: 4,
		Difficulty: "Normal",
	})

	fmt.Printf("Config: %d players, %s difficulty\n", config.Get().MaxPlayers, config.Get().Difficulty)

	config.Get().Difficulty = "Hard"

	// Another accessor sees the same instance; its initializer is ignored
	sameConfig := ecs.NewSingleton[GameConfig](world, GameConfig{Difficulty: "Easy"})
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	var direct *GameConfig
	if world.ReadSingleton(&direct) {
		fmt.Printf("Read directly: %d players\n", direct.MaxPlayers)
	}

	// Output:
	// Config: 4 players, Normal difficulty
	// Same config: Hard difficulty
	// Read directly: 4 players
}
