package components

// Gravity is the world-wide acceleration applied to dynamic bodies, stored as
// a singleton. +Y points down.
type Gravity struct {
	X, Y float64
}
