package components

import "github.com/plus3/zyra/ecs"

// Register adds every component kind in this package to the registry
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Motion](registry)
	ecs.RegisterComponent[PhysicsBody](registry)
	ecs.RegisterComponent[ColliderAABB](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[TileMap](registry)
}

// NewRegistry returns a registry with every component kind registered
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	Register(registry)
	return registry
}
