package catalog_test

import (
	"reflect"
	"testing"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/ecs/debugui/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld() *ecs.World {
	return ecs.NewWorld(components.NewRegistry())
}

func TestEntities(t *testing.T) {
	world := newWorld()
	player := world.Spawn(components.Tag{Name: "player"}, components.NewTransform(0, 0), components.Motion{})
	wall := world.Spawn(components.NewTransform(1, 1), components.NewColliderAABB(1, 1))
	wall.Destroy()

	rows := catalog.Entities(world)
	require.Len(t, rows, 2)

	assert.Equal(t, player.Id(), rows[0].ID)
	assert.Equal(t, "player", rows[0].Tag)
	assert.True(t, rows[0].Alive)
	assert.Len(t, rows[0].Components, 3)
	assert.Contains(t, rows[0].Components, "components.Motion")

	assert.False(t, rows[1].Alive)
}

func TestKinds(t *testing.T) {
	world := newWorld()
	world.Spawn(components.NewTransform(0, 0))
	world.Spawn(components.NewTransform(0, 0), components.Motion{})

	kinds := catalog.Kinds(world)
	assert.Equal(t, []catalog.KindRow{
		{Name: "components.Motion", Count: 1},
		{Name: "components.Transform", Count: 2},
	}, kinds)

	catalog.SortKinds(kinds, 1, false)
	assert.Equal(t, "components.Transform", kinds[0].Name)
}

func TestMatchAndFilter(t *testing.T) {
	rows := []catalog.EntityRow{
		{ID: 1, Tag: "Player", Components: []string{"components.Transform", "components.Motion"}},
		{ID: 2, Tag: "wall", Components: []string{"components.Transform"}},
		{ID: 12, Components: []string{"components.Tag"}},
	}

	assert.Nil(t, catalog.Match(rows, nil))
	matched := catalog.Match(rows, []string{"components.Transform", "components.Motion"})
	require.Len(t, matched, 1)
	assert.Equal(t, ecs.EntityId(1), matched[0].ID)

	assert.Len(t, catalog.Filter(rows, "", ""), 3)
	assert.Len(t, catalog.Filter(rows, "player", ""), 1)
	assert.Len(t, catalog.Filter(rows, "1", ""), 2)
	assert.Len(t, catalog.Filter(rows, "", "components.Transform"), 2)
	assert.Len(t, catalog.Filter(rows, "wall", "components.Motion"), 0)
}

func TestStagePresets(t *testing.T) {
	world := newWorld()
	world.Spawn(components.NewTransform(0, 0), components.Motion{})
	crate := world.Spawn(
		components.NewTransform(0, 0),
		components.Motion{},
		components.NewPhysicsBody(components.BodyDynamic),
		components.NewColliderAABB(1, 1),
	)
	world.Spawn(components.NewTransform(0, 0), components.NewColliderAABB(1, 1))

	counts := map[string]int{}
	for _, preset := range catalog.StagePresets() {
		assert.IsIncreasing(t, preset.Kinds)
		counts[preset.Name] = len(catalog.Match(catalog.Entities(world), preset.Kinds))
	}
	assert.Equal(t, map[string]int{"Motion": 2, "Collision": 2, "Physics": 1, "Tile maps": 0}, counts)

	physics := catalog.StagePresets()[2]
	require.Equal(t, "Physics", physics.Name)
	assert.Equal(t, crate.Id(), catalog.Match(catalog.Entities(world), physics.Kinds)[0].ID)
}

func TestSortEntities(t *testing.T) {
	rows := []catalog.EntityRow{
		{ID: 2, Tag: "b", Components: []string{"x"}},
		{ID: 1, Tag: "c", Components: []string{"x", "y", "z"}},
		{ID: 3, Tag: "a", Components: []string{"x", "y"}},
	}

	catalog.SortEntities(rows, catalog.ColumnID, true)
	assert.Equal(t, ecs.EntityId(1), rows[0].ID)

	catalog.SortEntities(rows, catalog.ColumnTag, true)
	assert.Equal(t, "a", rows[0].Tag)

	catalog.SortEntities(rows, catalog.ColumnCount, false)
	assert.Equal(t, ecs.EntityId(1), rows[0].ID)
}

type inspected struct {
	Count   int32
	Mask    uint8
	Speed   float64
	Enabled bool
	Name    string
	Items   []int
	hidden  int
}

func TestFieldCache(t *testing.T) {
	cache := catalog.NewFieldCache()
	fields := cache.Fields(reflect.TypeOf(inspected{}))
	require.Len(t, fields, 6)
	assert.Equal(t, "Items", fields[5].Name)
	assert.True(t, fields[5].IsSlice)

	assert.Empty(t, cache.Fields(reflect.TypeOf(0)))
}

func TestSetField(t *testing.T) {
	v := &inspected{}

	assert.True(t, catalog.SetField(v, 0, int64(7)))
	assert.True(t, catalog.SetField(v, 1, uint64(3)))
	assert.True(t, catalog.SetField(v, 2, 1.5))
	assert.True(t, catalog.SetField(v, 3, true))
	assert.True(t, catalog.SetField(v, 4, "hi"))
	assert.Equal(t, inspected{Count: 7, Mask: 3, Speed: 1.5, Enabled: true, Name: "hi"}, *v)

	assert.False(t, catalog.SetField(v, 1, uint64(300)), "overflow")
	assert.False(t, catalog.SetField(v, 0, "nope"), "wrong kind")
	assert.False(t, catalog.SetField(v, 5, []int{1}), "unsupported kind")
	assert.False(t, catalog.SetField(v, 6, int64(1)), "unexported")
	assert.False(t, catalog.SetField(v, 9, int64(1)), "out of range")
	assert.False(t, catalog.SetField(*v, 0, int64(1)), "not a pointer")
}
