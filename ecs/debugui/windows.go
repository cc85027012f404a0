package debugui

import "github.com/plus3/zyra/ecs"

// WindowSystem draws the debug windows spawned by SpawnDebugUI. Drawing is
// deferred to the end of the frame so the windows show post-physics state.
// The entity browser selection drives the inspector; clicking a kind in the
// component viewer filters the browser.
type WindowSystem struct {
	Browsers   ecs.Query[struct{ *EntityBrowserComponent }]
	Inspectors ecs.Query[struct{ *ComponentInspectorComponent }]
	Viewers    ecs.Query[struct{ *ComponentViewerComponent }]
	Stats      ecs.Query[struct{ *PerformanceStatsComponent }]
	Queries    ecs.Query[struct{ *QueryDebuggerComponent }]
	Timer      ecs.Singleton[FrameTimer]
}

func (s *WindowSystem) Stage() ecs.Stage { return ecs.StageLate }

func (s *WindowSystem) Execute(frame *ecs.UpdateFrame) {
	world := frame.World

	var browser *EntityBrowserComponent
	for item := range s.Browsers.Values() {
		browser = item.EntityBrowserComponent
		break
	}

	var dt float32
	if timer := s.Timer.Get(); timer != nil {
		dt = timer.GetDeltaTime()
	}

	frame.Commands.Defer(func() {
		var selected ecs.EntityId
		if browser != nil {
			browser.Render(world)
			selected = browser.GetSelectedEntity()
		}
		for item := range s.Viewers.Values() {
			if kind := item.Render(world); kind != "" && browser != nil {
				browser.FilterKind(kind)
			}
		}
		for item := range s.Inspectors.Values() {
			item.Render(world, selected)
		}
		for item := range s.Stats.Values() {
			item.Render(world, dt)
		}
		for item := range s.Queries.Values() {
			item.Render(world)
		}
	})
}
