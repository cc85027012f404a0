// Package inspect serves live world snapshots over HTTP and websocket for
// debugging tools.
package inspect

import (
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

// Snapshot is the JSON view of a world at one frame
type Snapshot struct {
	Frame    uint64           `json:"frame"`
	Stats    Stats            `json:"stats"`
	Entities []EntitySnapshot `json:"entities"`
}

type Stats struct {
	Entities       int `json:"entities"`
	PendingDestroy int `json:"pending_destroy"`
	ComponentKinds int `json:"component_kinds"`
}

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// EntitySnapshot holds the simulation-facing components of one live entity
type EntitySnapshot struct {
	ID       ecs.EntityId   `json:"id"`
	Tag      string         `json:"tag,omitempty"`
	Position *Vec           `json:"position,omitempty"`
	Velocity *Vec           `json:"velocity,omitempty"`
	Body     string         `json:"body,omitempty"`
	OnGround bool           `json:"on_ground,omitempty"`
	Bounds   *Box           `json:"bounds,omitempty"`
	Trigger  bool           `json:"trigger,omitempty"`
	Contacts []ecs.EntityId `json:"contacts,omitempty"`
}

// Capture copies the live entities of world in id order
func Capture(world *ecs.World, frame uint64) Snapshot {
	storage := world.Storage()
	stats := storage.CollectStats()

	snap := Snapshot{
		Frame: frame,
		Stats: Stats{
			Entities:       stats.TotalEntityCount,
			PendingDestroy: stats.PendingDestroyCount,
			ComponentKinds: stats.ComponentKindCount,
		},
		Entities: make([]EntitySnapshot, 0, world.Len()),
	}

	for _, id := range world.Entities() {
		if !storage.IsAlive(id) {
			continue
		}
		es := EntitySnapshot{ID: id}

		if tag := ecs.ReadComponent[components.Tag](storage, id); tag != nil {
			es.Tag = tag.Name
		}
		tr := ecs.ReadComponent[components.Transform](storage, id)
		if tr != nil {
			es.Position = &Vec{X: tr.X, Y: tr.Y}
		}
		if m := ecs.ReadComponent[components.Motion](storage, id); m != nil {
			es.Velocity = &Vec{X: m.VX, Y: m.VY}
		}
		if body := ecs.ReadComponent[components.PhysicsBody](storage, id); body != nil {
			es.Body = body.Type.String()
			es.OnGround = body.OnGround
		}
		if c := ecs.ReadComponent[components.ColliderAABB](storage, id); c != nil {
			es.Trigger = c.Trigger
			if len(c.Contacts) > 0 {
				es.Contacts = append([]ecs.EntityId(nil), c.Contacts...)
			}
			if tr != nil && c.Enabled() {
				r := c.Bounds(tr)
				es.Bounds = &Box{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
			}
		}
		snap.Entities = append(snap.Entities, es)
	}
	return snap
}
