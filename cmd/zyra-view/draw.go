package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
)

var (
	backgroundColor = color.RGBA{24, 24, 32, 255}
	dynamicColor    = color.RGBA{120, 200, 255, 255}
	staticColor     = color.RGBA{160, 160, 160, 255}
	kinematicColor  = color.RGBA{200, 140, 255, 255}
	looseColor      = color.RGBA{255, 255, 255, 255}
	triggerColor    = color.RGBA{255, 220, 90, 255}
	contactColor    = color.RGBA{255, 90, 90, 255}
	groundedColor   = color.RGBA{120, 255, 140, 255}
)

// Camera maps world space to screen space
type Camera struct {
	X, Y float64
	Zoom float64
}

const panSpeed = 8

func (c *Camera) Pan(dx, dy float64) {
	c.X += dx * panSpeed / c.Zoom
	c.Y += dy * panSpeed / c.Zoom
}

func (c *Camera) ZoomBy(f float64) {
	c.Zoom = min(max(c.Zoom*f, 0.1), 10)
}

func (c Camera) ToScreen(x, y float64) (float32, float32) {
	return float32((x - c.X) * c.Zoom), float32((y - c.Y) * c.Zoom)
}

func (c Camera) ToWorld(x, y float64) (float64, float64) {
	return x/c.Zoom + c.X, y/c.Zoom + c.Y
}

type drawable struct {
	*components.Transform
	*components.ColliderAABB
	Body *components.PhysicsBody `ecs:"optional"`
}

func colliderColor(c *components.ColliderAABB, body *components.PhysicsBody) color.RGBA {
	switch {
	case c.Trigger:
		return triggerColor
	case body == nil:
		return looseColor
	case body.Type == components.BodyStatic:
		return staticColor
	case body.Type == components.BodyKinematic:
		return kinematicColor
	default:
		return dynamicColor
	}
}

func drawColliders(screen *ebiten.Image, world *ecs.World, cam Camera) {
	for item := range ecs.NewView[drawable](world).Values() {
		if !item.ColliderAABB.Enabled() {
			continue
		}
		r := item.ColliderAABB.Bounds(item.Transform)
		x, y := cam.ToScreen(r.X1, r.Y1)
		w := float32(r.Width() * cam.Zoom)
		h := float32(r.Height() * cam.Zoom)

		clr := colliderColor(item.ColliderAABB, item.Body)
		fill := clr
		fill.A = 60
		vector.DrawFilledRect(screen, x, y, w, h, fill, false)

		outline := clr
		if len(item.ColliderAABB.Contacts) > 0 {
			outline = contactColor
		}
		vector.StrokeRect(screen, x, y, w, h, 1, outline, false)

		if item.Body != nil && item.Body.OnGround {
			vector.StrokeLine(screen, x, y+h, x+w, y+h, 2, groundedColor, false)
		}
	}
}
