package catalog

import (
	"time"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

// PhysicsSummary counts the collision state left by the last frame
type PhysicsSummary struct {
	Colliders int
	Disabled  int
	Triggers  int
	// ContactPairs counts each overlapping pair once
	ContactPairs int
	Grounded     int
	Bodies       map[components.BodyType]int
}

// Physics summarizes colliders and bodies of live entities
func Physics(world *ecs.World) PhysicsSummary {
	summary := PhysicsSummary{Bodies: make(map[components.BodyType]int)}
	storage := world.Storage()

	contacts := 0
	for _, id := range world.Entities() {
		if !storage.IsAlive(id) {
			continue
		}
		if c := ecs.ReadComponent[components.ColliderAABB](storage, id); c != nil {
			summary.Colliders++
			if !c.Enabled() {
				summary.Disabled++
			}
			if c.Trigger {
				summary.Triggers++
			}
			contacts += len(c.Contacts)
		}
		if body := ecs.ReadComponent[components.PhysicsBody](storage, id); body != nil {
			summary.Bodies[body.Type]++
			if body.OnGround {
				summary.Grounded++
			}
		}
	}
	summary.ContactPairs = contacts / 2
	return summary
}

// StageTotal is the time spent in one pipeline stage during the last frame
type StageTotal struct {
	Stage   ecs.Stage
	Systems int
	Last    time.Duration
}

// StageTotals groups system timings by stage in execution order
func StageTotals(stats *ecs.SchedulerStats) []StageTotal {
	var totals []StageTotal
	for _, sys := range stats.Systems {
		if n := len(totals); n > 0 && totals[n-1].Stage == sys.Stage {
			totals[n-1].Systems++
			totals[n-1].Last += sys.LastDuration
			continue
		}
		totals = append(totals, StageTotal{Stage: sys.Stage, Systems: 1, Last: sys.LastDuration})
	}
	return totals
}
