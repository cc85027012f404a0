package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/ecs/debugui/catalog"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	if historyFrames <= 0 {
		historyFrames = 120
	}
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		frameIndex:    0,
	}
}

// Render draws frame timing, world counts, the collision summary and per-stage timings
func (ps *PerformanceStatsComponent) Render(world *ecs.World, deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.frameHistory[ps.frameIndex] = deltaTime * 1000.0
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames

	stats := world.CollectStats()

	imgui.Text(fmt.Sprintf("Frame: %d", world.Frame()))
	imgui.Text(fmt.Sprintf("Live Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Pending Destroy: %d", stats.PendingDestroyCount))
	imgui.Text(fmt.Sprintf("Component Kinds: %d", stats.ComponentKindCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	var avgFrameTime float32
	for _, ft := range ps.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(ps.historyFrames)

	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}

	physics := catalog.Physics(world)
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Colliders: %d (%d disabled, %d triggers)", physics.Colliders, physics.Disabled, physics.Triggers))
	imgui.Text(fmt.Sprintf("Contact Pairs: %d", physics.ContactPairs))
	imgui.Text(fmt.Sprintf("Bodies: %d dynamic, %d static, %d kinematic (%d grounded)",
		physics.Bodies[components.BodyDynamic],
		physics.Bodies[components.BodyStatic],
		physics.Bodies[components.BodyKinematic],
		physics.Grounded))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	for _, total := range catalog.StageTotals(world.Stats()) {
		imgui.BulletText(fmt.Sprintf("%s: %s over %d systems", total.Stage, total.Last, total.Systems))
	}

	if imgui.TreeNodeStr("System Timings") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Stage")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range world.Stats().Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(sys.Stage.String())
				imgui.TableNextColumn()
				imgui.Text(sys.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singleton Details") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between rendered frames
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() FrameTimer {
	return FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
