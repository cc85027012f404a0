// Package scene loads entity and tile map layouts from YAML and spawns them
// into a World.
package scene

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"gopkg.in/yaml.v3"
)

// Scene is a parsed scene file
type Scene struct {
	Name string `yaml:"name"`
	// Gravity overrides the world gravity when set
	Gravity  *VecSpec      `yaml:"gravity"`
	Entities []EntitySpec  `yaml:"entities"`
	TileMaps []TileMapSpec `yaml:"tilemaps"`
}

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EntitySpec describes one entity; absent blocks add no component
type EntitySpec struct {
	Name      string         `yaml:"name"`
	Transform *TransformSpec `yaml:"transform"`
	Motion    *MotionSpec    `yaml:"motion"`
	Body      *BodySpec      `yaml:"body"`
	Collider  *ColliderSpec  `yaml:"collider"`
}

// TransformSpec places an entity. A zero scale reads as 1.
type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Z        int     `yaml:"z"`
}

type MotionSpec struct {
	VX       float64 `yaml:"vx"`
	VY       float64 `yaml:"vy"`
	AX       float64 `yaml:"ax"`
	AY       float64 `yaml:"ay"`
	MaxSpeed float64 `yaml:"max_speed"`
	Damping  float64 `yaml:"damping"`
	Friction float64 `yaml:"friction"`
}

type BodySpec struct {
	Type          components.BodyType `yaml:"type"`
	GravityScale  *float64            `yaml:"gravity_scale"`
	Bounciness    float64             `yaml:"bounciness"`
	FixedRotation *bool               `yaml:"fixed_rotation"`
}

type ColliderSpec struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Layer   *uint32 `yaml:"layer"`
	Mask    *uint32 `yaml:"mask"`
	Trigger bool    `yaml:"trigger"`
}

// TileMapSpec is a grid of tiles with colliders generated from its solid cells
type TileMapSpec struct {
	Name       string        `yaml:"name"`
	Transform  TransformSpec `yaml:"transform"`
	TileWidth  float64       `yaml:"tile_width"`
	TileHeight float64       `yaml:"tile_height"`
	OffsetX    float64       `yaml:"offset_x"`
	OffsetY    float64       `yaml:"offset_y"`
	Rows       [][]int       `yaml:"rows"`
	// Solid lists the tile indices that collide; empty means every non-zero tile
	Solid []int `yaml:"solid"`
	// BodyType of the generated colliders, static when unset
	BodyType *components.BodyType `yaml:"body_type"`
	// MergeHorizontal joins runs of solid tiles in a row, on when unset
	MergeHorizontal *bool `yaml:"merge_horizontal"`
}

// Parse decodes and validates a scene document
func Parse(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a scene file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scene: %s: %w", path, err)
	}
	return s, nil
}

// Validate checks tile map geometry
func (s *Scene) Validate() error {
	for i := range s.TileMaps {
		m := &s.TileMaps[i]
		if m.TileWidth <= 0 || m.TileHeight <= 0 {
			return fmt.Errorf("scene: tilemap %q: tile size must be positive", m.Name)
		}
		for row, tiles := range m.Rows {
			if len(tiles) != len(m.Rows[0]) {
				return fmt.Errorf("scene: tilemap %q: row %d has %d tiles, want %d",
					m.Name, row, len(tiles), len(m.Rows[0]))
			}
		}
	}
	return nil
}

// Spawn creates every entity and tile map of the scene in world and returns
// them in file order; tile map colliders follow their map entity. The world's
// registry must include the components package. A gravity override replaces
// the world's Gravity singleton.
func (s *Scene) Spawn(world *ecs.World) ([]ecs.Entity, error) {
	if s.Gravity != nil {
		world.AddSingleton(components.Gravity{X: s.Gravity.X, Y: s.Gravity.Y})
	}

	spawned := make([]ecs.Entity, 0, len(s.Entities)+len(s.TileMaps))
	for i := range s.Entities {
		spawned = append(spawned, world.Spawn(s.Entities[i].components()...))
	}

	for i := range s.TileMaps {
		spec := &s.TileMaps[i]
		mapEntity := world.Spawn(spec.components()...)
		spawned = append(spawned, mapEntity)

		colliders, err := BuildTileMapColliders(world, mapEntity, spec.colliderOptions())
		if err != nil {
			return spawned, err
		}
		spawned = append(spawned, colliders...)
	}
	return spawned, nil
}

func (e *EntitySpec) components() []any {
	var out []any
	if e.Name != "" {
		out = append(out, components.Tag{Name: e.Name})
	}
	if e.Transform != nil {
		out = append(out, e.Transform.component())
	}
	if e.Motion != nil {
		out = append(out, components.Motion{
			VX: e.Motion.VX, VY: e.Motion.VY,
			AX: e.Motion.AX, AY: e.Motion.AY,
			MaxSpeed: e.Motion.MaxSpeed,
			Damping:  e.Motion.Damping,
			Friction: e.Motion.Friction,
		})
	}
	if e.Body != nil {
		body := components.NewPhysicsBody(e.Body.Type)
		if e.Body.GravityScale != nil {
			body.GravityScale = *e.Body.GravityScale
		}
		if e.Body.FixedRotation != nil {
			body.FixedRotation = *e.Body.FixedRotation
		}
		body.Bounciness = e.Body.Bounciness
		out = append(out, body)
	}
	if e.Collider != nil {
		c := components.NewColliderAABB(e.Collider.Width, e.Collider.Height)
		c.OffsetX = e.Collider.OffsetX
		c.OffsetY = e.Collider.OffsetY
		c.Trigger = e.Collider.Trigger
		if e.Collider.Layer != nil {
			c.Layer = *e.Collider.Layer
		}
		if e.Collider.Mask != nil {
			c.Mask = *e.Collider.Mask
		}
		out = append(out, c)
	}
	return out
}

func (t TransformSpec) component() components.Transform {
	out := components.NewTransform(t.X, t.Y)
	out.Rotation = t.Rotation
	out.Z = t.Z
	if t.ScaleX != 0 {
		out.ScaleX = t.ScaleX
	}
	if t.ScaleY != 0 {
		out.ScaleY = t.ScaleY
	}
	return out
}

func (m *TileMapSpec) components() []any {
	tm := components.TileMap{
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		Height:     len(m.Rows),
		OffsetX:    m.OffsetX,
		OffsetY:    m.OffsetY,
	}
	if len(m.Rows) > 0 {
		tm.Width = len(m.Rows[0])
	}
	tm.Tiles = make([]int, 0, tm.Width*tm.Height)
	for _, row := range m.Rows {
		tm.Tiles = append(tm.Tiles, row...)
	}

	out := []any{m.Transform.component(), tm}
	if m.Name != "" {
		out = append(out, components.Tag{Name: m.Name})
	}
	return out
}

func (m *TileMapSpec) colliderOptions() TileMapColliderOptions {
	return TileMapColliderOptions{
		Solid:           m.Solid,
		BodyType:        m.BodyType,
		MergeHorizontal: m.MergeHorizontal,
	}
}
