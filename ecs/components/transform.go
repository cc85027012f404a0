// Package components holds the data components understood by the simulation
// systems. Every type is a plain value; systems find them through ecs views.
package components

// Transform places an entity in world space. +Y points down.
type Transform struct {
	X, Y     float64
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	// Z orders drawing only; it plays no part in collision
	Z int
}

// NewTransform returns a transform at (x, y) with unit scale
func NewTransform(x, y float64) Transform {
	return Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}
}
