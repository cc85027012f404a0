package ecs_test

import (
	"testing"

	"github.com/plus3/zyra/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	world := newTestWorld()
	e := world.Spawn(&Position{X: 1, Y: 2}, Score(32))

	view := ecs.NewView[struct {
		*Position
		*Score
	}](world)

	item := view.Get(e.Id())
	require.NotNil(t, item)
	assert.Equal(t, Score(32), *item.Score)
	assert.Equal(t, 1.0, item.Position.X)
	assert.Equal(t, 2.0, item.Position.Y)
}

func TestViewMissingComponent(t *testing.T) {
	world := newTestWorld()
	e := world.Spawn(&Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	assert.Nil(t, view.Get(e.Id()))
}

func TestViewFill(t *testing.T) {
	world := newTestWorld()
	e := world.Spawn(&Position{X: 3, Y: 4}, &Health{Current: 50, Max: 100})

	view := ecs.NewView[struct {
		*Position
		*Health
	}](world)

	var result struct {
		*Position
		*Health
	}
	require.True(t, view.Fill(e.Id(), &result))
	assert.Equal(t, 3.0, result.Position.X)
	assert.Equal(t, 50, result.Health.Current)

	assert.False(t, view.Fill(ecs.EntityId(999), &result))
}

func TestViewComponentMutation(t *testing.T) {
	world := newTestWorld()
	e := world.Spawn(&Position{X: 1, Y: 1}, &Velocity{})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	item := view.Get(e.Id())
	require.NotNil(t, item)
	item.Position.X = 100
	item.Velocity.DY = 10

	pos, _ := ecs.GetComponent[Position](e)
	vel, _ := ecs.GetComponent[Velocity](e)
	assert.Equal(t, 100.0, pos.X)
	assert.Equal(t, 10.0, vel.DY)
}

func TestViewIterCreationOrder(t *testing.T) {
	world := newTestWorld()

	var want []ecs.EntityId
	for i := 0; i < 10; i++ {
		e := world.Spawn(Position{X: float64(i)})
		if i%2 == 0 {
			ecs.AddComponent(e, Velocity{DX: 1})
			want = append(want, e.Id())
		}
	}

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	var got []ecs.EntityId
	for id, item := range view.Iter() {
		assert.Equal(t, 1.0, item.Velocity.DX)
		got = append(got, id)
	}
	assert.Equal(t, want, got)
}

func TestViewIterEmpty(t *testing.T) {
	world := newTestWorld()
	world.Spawn(Position{})

	// no entity ever held a Velocity, so the column does not exist
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestViewSeesColumnsCreatedLater(t *testing.T) {
	world := newTestWorld()
	view := ecs.NewView[struct{ *Health }](world)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 0, count)

	world.Spawn(Health{Current: 1})
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 1, count)
}

func TestViewIterEarlyBreak(t *testing.T) {
	world := newTestWorld()
	for i := 0; i < 10; i++ {
		world.Spawn(Position{X: float64(i)})
	}

	view := ecs.NewView[struct{ *Position }](world)
	count := 0
	for range view.Values() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewIterIncludesPendingDestroy(t *testing.T) {
	world := newTestWorld()
	a := world.Spawn(Position{X: 1})
	b := world.Spawn(Position{X: 2})
	a.Destroy()

	view := ecs.NewView[struct{ *Position }](world)

	var ids []ecs.EntityId
	for id := range view.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{a.Id(), b.Id()}, ids)

	world.Update(0)

	ids = ids[:0]
	for id := range view.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{b.Id()}, ids)
}

func TestViewOptionalComponent(t *testing.T) {
	world := newTestWorld()
	with := world.Spawn(Position{X: 1}, Name{Value: "named"})
	without := world.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](world)

	item := view.Get(with.Id())
	require.NotNil(t, item)
	require.NotNil(t, item.Name)
	assert.Equal(t, "named", item.Name.Value)

	item = view.Get(without.Id())
	require.NotNil(t, item)
	assert.Nil(t, item.Name)

	count := 0
	for range view.Iter() {
		count++
	}
	assert.Equal(t, 2, count)
}

func TestViewOptionalColumnMissing(t *testing.T) {
	world := newTestWorld()
	world.Spawn(Position{})

	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](world)

	count := 0
	for _, item := range view.Iter() {
		assert.Nil(t, item.Health)
		count++
	}
	assert.Equal(t, 1, count)
}

func TestViewEntityIdField(t *testing.T) {
	world := newTestWorld()
	e := world.Spawn(Position{X: 4})

	view := ecs.NewView[struct {
		ID ecs.EntityId
		*Position
	}](world)

	item := view.Get(e.Id())
	require.NotNil(t, item)
	assert.Equal(t, e.Id(), item.ID)

	for id, item := range view.Iter() {
		assert.Equal(t, id, item.ID)
	}
}

func TestViewInvalidTypes(t *testing.T) {
	world := newTestWorld()

	assert.Panics(t, func() { ecs.NewView[int](world) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](world)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](world)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A ecs.EntityId
			B ecs.EntityId
		}](world)
	})
}

func TestViewSpawn(t *testing.T) {
	world := newTestWorld()
	view := ecs.NewView[struct {
		*Position
		Health *Health `ecs:"optional"`
	}](world)

	id := view.Spawn(struct {
		*Position
		Health *Health `ecs:"optional"`
	}{Position: &Position{X: 7}})

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, 7.0, item.Position.X)
	assert.Nil(t, item.Health)

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Health *Health `ecs:"optional"`
		}{})
	})
}

func TestViewLargeDataset(t *testing.T) {
	world := newTestWorld()
	for i := 0; i < 1000; i++ {
		world.Spawn(Position{X: float64(i)}, Velocity{DX: 1})
	}

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
	}

	sum := 0.0
	for item := range view.Values() {
		sum += item.Position.X
	}
	assert.Equal(t, float64(999*1000/2+1000), sum)
}
