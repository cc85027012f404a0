package debugui

import "github.com/plus3/zyra/ecs"

// SpawnDebugUI creates one entity per debug window and the singletons the
// systems read. Pair it with AddSystems.
func SpawnDebugUI(world *ecs.World) {
	world.Spawn(NewEntityBrowserComponent(100))
	world.Spawn(NewComponentInspectorComponent())
	world.Spawn(NewComponentViewerComponent())
	world.Spawn(NewPerformanceStatsComponent(120))
	world.Spawn(NewQueryDebuggerComponent())
	world.AddSingleton(NewFrameTimer())
	world.AddSingleton(ImguiInputState{})
}

// AddSystems registers the window and item systems on world
func AddSystems(world *ecs.World) {
	world.AddSystem(&ImguiSystem{})
	world.AddSystem(&WindowSystem{})
}

func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[EntityBrowserComponent](registry)
	ecs.RegisterComponent[ComponentInspectorComponent](registry)
	ecs.RegisterComponent[ComponentViewerComponent](registry)
	ecs.RegisterComponent[PerformanceStatsComponent](registry)
	ecs.RegisterComponent[QueryDebuggerComponent](registry)
}
