package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

// ErrMissingTileMap is returned when the map entity lacks a TileMap or a Transform
var ErrMissingTileMap = errors.New("entity has no tile map and transform")

// TileMapColliderOptions controls collider generation for a tile map
type TileMapColliderOptions struct {
	// Solid lists the tile indices that collide; empty means every non-zero tile
	Solid []int
	// BodyType is given to every generated collider entity; static when nil
	BodyType *components.BodyType
	// MergeHorizontal emits one collider per run of adjacent solid tiles in a
	// row; on when nil
	MergeHorizontal *bool
}

func (o *TileMapColliderOptions) bodyType() components.BodyType {
	if o.BodyType == nil {
		return components.BodyStatic
	}
	return *o.BodyType
}

func (o *TileMapColliderOptions) merge() bool {
	return o.MergeHorizontal == nil || *o.MergeHorizontal
}

func (o *TileMapColliderOptions) solid(index int) bool {
	if index <= 0 {
		return false
	}
	return len(o.Solid) == 0 || slices.Contains(o.Solid, index)
}

// BuildTileMapColliders spawns collider entities for the solid tiles of the
// map entity, positioned in world space from its Transform and map offset.
func BuildTileMapColliders(world *ecs.World, mapEntity ecs.Entity, opts TileMapColliderOptions) ([]ecs.Entity, error) {
	tm, hasMap := ecs.GetComponent[components.TileMap](mapEntity)
	base, hasTransform := ecs.GetComponent[components.Transform](mapEntity)
	if !hasMap || !hasTransform {
		return nil, fmt.Errorf("scene: build colliders for entity %d: %w", mapEntity.Id(), ErrMissingTileMap)
	}

	originX := base.X + tm.OffsetX
	originY := base.Y + tm.OffsetY
	// copy what we need before spawning; spawning may grow the columns
	tileW, tileH := tm.TileWidth, tm.TileHeight
	width, height := tm.Width, tm.Height
	tiles := slices.Clone(tm.Tiles)
	grid := components.TileMap{Width: width, Height: height, Tiles: tiles}

	bodyType := opts.bodyType()
	merge := opts.merge()

	var created []ecs.Entity
	spawn := func(col, row, span int) {
		collider := components.NewColliderAABB(float64(span)*tileW, tileH)
		created = append(created, world.Spawn(
			components.NewTransform(originX+float64(col)*tileW, originY+float64(row)*tileH),
			collider,
			components.NewPhysicsBody(bodyType),
		))
	}

	for row := 0; row < height; row++ {
		if !merge {
			for col := 0; col < width; col++ {
				if opts.solid(grid.At(col, row)) {
					spawn(col, row, 1)
				}
			}
			continue
		}

		start := -1
		for col := 0; col <= width; col++ {
			if col < width && opts.solid(grid.At(col, row)) {
				if start < 0 {
					start = col
				}
				continue
			}
			if start >= 0 {
				spawn(start, row, col-start)
				start = -1
			}
		}
	}
	return created, nil
}
