package components

import "github.com/plus3/zyra/ecs"

// AllLayers is a mask that accepts every layer
const AllLayers uint32 = 0xFFFFFFFF

// ColliderAABB is an axis-aligned box relative to the entity's Transform.
// A collider with a non-positive width or height is disabled.
type ColliderAABB struct {
	OffsetX, OffsetY float64
	Width, Height    float64

	// Layer is the set of layers this collider belongs to
	Layer uint32
	// Mask is the set of layers this collider tests against
	Mask uint32
	// Trigger colliders report contacts but are never resolved
	Trigger bool

	// Contacts lists the entities overlapping this collider, rebuilt every frame
	Contacts []ecs.EntityId
}

// NewColliderAABB returns a collider on layer 1 that tests against every layer
func NewColliderAABB(width, height float64) ColliderAABB {
	return ColliderAABB{
		Width:  width,
		Height: height,
		Layer:  1,
		Mask:   AllLayers,
	}
}

// Enabled reports whether the collider has a positive area
func (c *ColliderAABB) Enabled() bool {
	return c.Width > 0 && c.Height > 0
}

// Bounds returns the collider box in world space for the given transform.
// Rotation and scale are ignored.
func (c *ColliderAABB) Bounds(t *Transform) Rect {
	x1 := t.X + c.OffsetX
	y1 := t.Y + c.OffsetY
	return Rect{X1: x1, Y1: y1, X2: x1 + c.Width, Y2: y1 + c.Height}
}

// Accepts reports whether the two colliders want to be tested against each other
func (c *ColliderAABB) Accepts(other *ColliderAABB) bool {
	return c.Layer&other.Mask != 0 && other.Layer&c.Mask != 0
}

// HasContact reports whether id overlapped this collider in the last collision pass
func (c *ColliderAABB) HasContact(id ecs.EntityId) bool {
	for _, contact := range c.Contacts {
		if contact == id {
			return true
		}
	}
	return false
}

// Rect is an axis-aligned box given by its min (X1, Y1) and max (X2, Y2) corners
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Width returns X2 - X1
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns Y2 - Y1
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Overlaps tests the open intervals of both boxes; shared edges don't overlap
func (r Rect) Overlaps(o Rect) bool {
	return r.X1 < o.X2 && r.X2 > o.X1 && r.Y1 < o.Y2 && r.Y2 > o.Y1
}
