package scene_test

import (
	"strings"
	"testing"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/ecs/systems"
	"github.com/plus3/zyra/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnMap(world *ecs.World, x, y float64, width int, tiles ...int) ecs.Entity {
	return world.Spawn(
		components.NewTransform(x, y),
		components.TileMap{
			TileWidth:  10,
			TileHeight: 20,
			Width:      width,
			Height:     len(tiles) / width,
			Tiles:      tiles,
			OffsetX:    1,
			OffsetY:    2,
		},
	)
}

func ptr[T any](v T) *T {
	return &v
}

func installPipeline(world *ecs.World) {
	systems.Install(world, nil)
}

type box struct {
	X, Y, W, H float64
}

func boxes(t *testing.T, entities []ecs.Entity) []box {
	t.Helper()
	var out []box
	for _, e := range entities {
		tr, ok := ecs.GetComponent[components.Transform](e)
		require.True(t, ok)
		c, ok := ecs.GetComponent[components.ColliderAABB](e)
		require.True(t, ok)
		out = append(out, box{tr.X, tr.Y, c.Width, c.Height})
	}
	return out
}

func TestBuildTileMapCollidersMerged(t *testing.T) {
	world := newWorld()
	mapEntity := spawnMap(world, 100, 200, 5,
		1, 1, 0, 1, 1,
		0, 1, 1, 1, 0,
	)

	// zero options: static bodies, horizontal runs merged
	created, err := scene.BuildTileMapColliders(world, mapEntity, scene.TileMapColliderOptions{})
	require.NoError(t, err)

	assert.Equal(t, []box{
		{101, 202, 20, 20},
		{131, 202, 20, 20},
		{111, 222, 30, 20},
	}, boxes(t, created))

	for _, e := range created {
		body, ok := ecs.GetComponent[components.PhysicsBody](e)
		require.True(t, ok)
		assert.Equal(t, components.BodyStatic, body.Type)
	}
}

func TestBuildTileMapCollidersDefaultsHoldDynamicBodies(t *testing.T) {
	world := newWorld()
	world.AddSingleton(components.Gravity{Y: 800})
	installPipeline(world)

	mapEntity := spawnMap(world, 0, 100, 3,
		1, 1, 1,
	)
	created, err := scene.BuildTileMapColliders(world, mapEntity, scene.TileMapColliderOptions{})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, []box{{1, 102, 30, 20}}, boxes(t, created))

	crate := world.Spawn(
		components.NewTransform(10, 50),
		components.Motion{},
		components.NewPhysicsBody(components.BodyDynamic),
		components.NewColliderAABB(10, 10),
	)
	for range 120 {
		world.Update(1.0 / 60)
	}

	pos, _ := ecs.GetComponent[components.Transform](crate)
	body, _ := ecs.GetComponent[components.PhysicsBody](crate)
	assert.InDelta(t, 92.0, pos.Y, 1e-9)
	assert.True(t, body.OnGround)
}

func TestBuildTileMapCollidersPerTile(t *testing.T) {
	world := newWorld()
	mapEntity := spawnMap(world, 0, 0, 3,
		1, 2, 3,
	)

	created, err := scene.BuildTileMapColliders(world, mapEntity, scene.TileMapColliderOptions{
		Solid:           []int{1, 3},
		BodyType:        ptr(components.BodyKinematic),
		MergeHorizontal: ptr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, []box{
		{1, 2, 10, 20},
		{21, 2, 10, 20},
	}, boxes(t, created))

	body, _ := ecs.GetComponent[components.PhysicsBody](created[0])
	assert.Equal(t, components.BodyKinematic, body.Type)
}

func TestBuildTileMapCollidersSolidFilterBreaksRuns(t *testing.T) {
	world := newWorld()
	mapEntity := spawnMap(world, 0, 0, 4,
		1, 2, 1, 1,
	)

	created, err := scene.BuildTileMapColliders(world, mapEntity, scene.TileMapColliderOptions{
		Solid: []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, []box{
		{1, 2, 10, 20},
		{21, 2, 20, 20},
	}, boxes(t, created))
}

func TestBuildTileMapCollidersMissingComponents(t *testing.T) {
	world := newWorld()

	noMap := world.Spawn(components.NewTransform(0, 0))
	_, err := scene.BuildTileMapColliders(world, noMap, scene.TileMapColliderOptions{})
	assert.ErrorIs(t, err, scene.ErrMissingTileMap)

	noTransform := world.Spawn(components.TileMap{TileWidth: 1, TileHeight: 1})
	_, err = scene.BuildTileMapColliders(world, noTransform, scene.TileMapColliderOptions{})
	assert.ErrorIs(t, err, scene.ErrMissingTileMap)
}

func TestSceneTileMapOptions(t *testing.T) {
	s, err := scene.Parse(strings.NewReader(`
tilemaps:
  - tile_width: 8
    tile_height: 8
    body_type: kinematic
    merge_horizontal: false
    rows:
      - [1, 1]
`))
	require.NoError(t, err)

	world := newWorld()
	spawned, err := s.Spawn(world)
	require.NoError(t, err)
	require.Len(t, spawned, 3)

	body, ok := ecs.GetComponent[components.PhysicsBody](spawned[1])
	require.True(t, ok)
	assert.Equal(t, components.BodyKinematic, body.Type)
}

func TestSpawnedTileMapStopsFallingBody(t *testing.T) {
	s, err := scene.Parse(strings.NewReader(`
gravity: {x: 0, y: 500}
entities:
  - name: crate
    transform: {x: 4, y: 0}
    motion: {}
    body: {type: dynamic}
    collider: {width: 8, height: 8}
tilemaps:
  - transform: {x: 0, y: 32}
    tile_width: 16
    tile_height: 16
    rows:
      - [1, 1, 1]
`))
	require.NoError(t, err)

	world := newWorld()
	installPipeline(world)
	spawned, err := s.Spawn(world)
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		world.Update(1.0 / 60)
	}

	tr, _ := ecs.GetComponent[components.Transform](spawned[0])
	body, _ := ecs.GetComponent[components.PhysicsBody](spawned[0])
	assert.InDelta(t, 24.0, tr.Y, 1e-6)
	assert.True(t, body.OnGround)
}
