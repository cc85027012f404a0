package ecs_test

import (
	"testing"

	"github.com/plus3/zyra/ecs"
)

func TestQuery(t *testing.T) {
	world := newTestWorld()

	world.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
	world.Spawn(Position{X: 3, Y: 4}, Velocity{DX: 1.0, DY: 1.0})
	world.Spawn(Position{X: 5, Y: 6}, Velocity{DX: 1.5, DY: 1.5}, Health{Current: 100, Max: 100})
	world.Spawn(Position{X: 7, Y: 8})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](world)

	t.Run("execute builds cache", func(t *testing.T) {
		query.Execute()

		count := 0
		for range query.Iter() {
			count++
		}

		if count != 3 {
			t.Errorf("expected 3 entities, got %d", count)
		}
		if query.Len() != 3 {
			t.Errorf("expected Len 3, got %d", query.Len())
		}
	})

	t.Run("panics without execute", func(t *testing.T) {
		freshQuery := ecs.NewQuery[struct {
			*Position
			*Velocity
		}](world)

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected panic when calling Iter() before Execute()")
			}
		}()

		for range freshQuery.Iter() {
		}
	})

	t.Run("cache is a snapshot until re-executed", func(t *testing.T) {
		query.Execute()
		initialCount := query.Len()

		world.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 2.0, DY: 2.0})

		if query.Len() != initialCount {
			t.Errorf("cache changed before Execute: %d", query.Len())
		}

		query.Execute()
		if query.Len() != initialCount+1 {
			t.Errorf("expected %d entities after spawn, got %d", initialCount+1, query.Len())
		}
	})

	t.Run("get bypasses cache", func(t *testing.T) {
		e := world.Spawn(Position{X: 11}, Velocity{DX: 1})
		item := query.Get(e.Id())
		if item == nil || item.Position.X != 11 {
			t.Errorf("expected fresh lookup for %v", e.Id())
		}
	})

	t.Run("iter values", func(t *testing.T) {
		query.Execute()

		count := 0
		for item := range query.Values() {
			if item.Position == nil || item.Velocity == nil {
				t.Error("expected non-nil components")
			}
			count++
		}

		if count != 5 {
			t.Errorf("expected 5 entities, got %d", count)
		}
	})
}
