// Package catalog gathers the world data shown by the debug windows. It has
// no GUI dependency so the windows stay thin.
package catalog

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

// EntityRow describes one entity for the entity browser
type EntityRow struct {
	ID         ecs.EntityId
	Tag        string
	Components []string
	// Alive is false for entities destroyed this frame and not yet swept
	Alive bool
}

// KindRow describes one component column
type KindRow struct {
	Name  string
	Count int
}

// Entities lists every entity in creation order
func Entities(world *ecs.World) []EntityRow {
	storage := world.Storage()
	ids := world.Entities()
	rows := make([]EntityRow, 0, len(ids))

	for _, id := range ids {
		types := storage.ComponentTypes(id)
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}

		row := EntityRow{ID: id, Components: names, Alive: storage.IsAlive(id)}
		if tag := ecs.ReadComponent[components.Tag](storage, id); tag != nil {
			row.Tag = tag.Name
		}
		rows = append(rows, row)
	}
	return rows
}

// Kinds lists the component columns sorted by name
func Kinds(world *ecs.World) []KindRow {
	stats := world.CollectStats()
	rows := make([]KindRow, len(stats.ComponentBreakdown))
	for i, c := range stats.ComponentBreakdown {
		rows[i] = KindRow{Name: c.Name, Count: c.Count}
	}
	return rows
}

// HasAll reports whether the row holds every named component kind
func (r EntityRow) HasAll(kinds []string) bool {
	for _, want := range kinds {
		found := false
		for _, name := range r.Components {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Match returns the rows holding every named component kind. No kinds matches nothing.
func Match(rows []EntityRow, kinds []string) []EntityRow {
	if len(kinds) == 0 {
		return nil
	}
	var out []EntityRow
	for _, row := range rows {
		if row.HasAll(kinds) {
			out = append(out, row)
		}
	}
	return out
}

// Filter keeps rows whose id, tag or component names contain text
// (case-insensitive) and, when kind is set, that hold that kind.
func Filter(rows []EntityRow, text, kind string) []EntityRow {
	if text == "" && kind == "" {
		return rows
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityRow, 0, len(rows))
	for _, row := range rows {
		if kind != "" && !row.HasAll([]string{kind}) {
			continue
		}
		if needle != "" {
			id := fmt.Sprintf("%d", row.ID)
			tag := strings.ToLower(row.Tag)
			comps := strings.ToLower(strings.Join(row.Components, " "))
			if !strings.Contains(id, needle) && !strings.Contains(tag, needle) && !strings.Contains(comps, needle) {
				continue
			}
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// Entity browser columns
const (
	ColumnID = iota
	ColumnTag
	ColumnComponents
	ColumnCount
)

// SortEntities orders rows by a browser column
func SortEntities(rows []EntityRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch column {
		case ColumnTag:
			less = a.Tag < b.Tag
		case ColumnComponents:
			less = strings.Join(a.Components, ",") < strings.Join(b.Components, ",")
		case ColumnCount:
			less = len(a.Components) < len(b.Components)
		default:
			less = a.ID < b.ID
		}
		if !ascending {
			return !less
		}
		return less
	})
}

// SortKinds orders kind rows by name (column 0) or count (column 1)
func SortKinds(rows []KindRow, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		if column == 1 {
			less = a.Count < b.Count
		} else {
			less = a.Name < b.Name
		}
		if !ascending {
			return !less
		}
		return less
	})
}

// Preset is a named set of component kinds
type Preset struct {
	Name  string
	Kinds []string
}

func kindName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// StagePresets lists the joins iterated by the built-in pipeline systems
func StagePresets() []Preset {
	transform := kindName[components.Transform]()
	motion := kindName[components.Motion]()
	collider := kindName[components.ColliderAABB]()
	body := kindName[components.PhysicsBody]()

	presets := []Preset{
		{Name: "Motion", Kinds: []string{transform, motion}},
		{Name: "Collision", Kinds: []string{transform, collider}},
		{Name: "Physics", Kinds: []string{transform, motion, body, collider}},
		{Name: "Tile maps", Kinds: []string{transform, kindName[components.TileMap]()}},
	}
	for _, p := range presets {
		sort.Strings(p.Kinds)
	}
	return presets
}
