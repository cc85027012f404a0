package components

// Motion carries velocity and acceleration in units per second.
// AX and AY are set by gameplay code and are never cleared by the systems.
type Motion struct {
	VX, VY float64
	AX, AY float64

	// MaxSpeed caps the velocity magnitude; 0 means unlimited
	MaxSpeed float64
	// Damping is the fraction of velocity removed per second
	Damping float64
	// Friction decelerates VX toward zero while AX is zero; 0 disables it
	Friction float64
}

// Speed returns the velocity magnitude
func (m *Motion) Speed() float64 {
	return hypot(m.VX, m.VY)
}
