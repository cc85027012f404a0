package components

import (
	"fmt"
	"math"
)

// BodyType selects how the physics pass treats a body
type BodyType uint8

const (
	// BodyDynamic bodies receive gravity and are pushed out of static and kinematic bodies
	BodyDynamic BodyType = iota
	// BodyStatic bodies never move
	BodyStatic
	// BodyKinematic bodies move only through their Motion and are never pushed
	BodyKinematic
)

func (b BodyType) String() string {
	switch b {
	case BodyDynamic:
		return "dynamic"
	case BodyStatic:
		return "static"
	case BodyKinematic:
		return "kinematic"
	default:
		return fmt.Sprintf("BodyType(%d)", uint8(b))
	}
}

// MarshalText implements encoding.TextMarshaler
func (b BodyType) MarshalText() ([]byte, error) {
	switch b {
	case BodyDynamic, BodyStatic, BodyKinematic:
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("components: unknown body type %d", uint8(b))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value means dynamic.
func (b *BodyType) UnmarshalText(text []byte) error {
	parsed, err := ParseBodyType(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBodyType parses "static", "dynamic" or "kinematic"
func ParseBodyType(s string) (BodyType, error) {
	switch s {
	case "", "dynamic":
		return BodyDynamic, nil
	case "static":
		return BodyStatic, nil
	case "kinematic":
		return BodyKinematic, nil
	default:
		return 0, fmt.Errorf("components: unknown body type %q", s)
	}
}

// PhysicsBody makes an entity take part in contact resolution
type PhysicsBody struct {
	Type         BodyType
	GravityScale float64
	// Bounciness is the restitution on vertical contacts, clamped to [0, 1] when used
	Bounciness float64
	// FixedRotation is informational; there is no rotational physics
	FixedRotation bool

	// OnGround is written by the physics pass every frame
	OnGround bool
}

// NewPhysicsBody returns a body of the given type with unit gravity scale
func NewPhysicsBody(bodyType BodyType) PhysicsBody {
	return PhysicsBody{
		Type:          bodyType,
		GravityScale:  1,
		FixedRotation: true,
	}
}

// Restitution returns Bounciness clamped to [0, 1]; NaN counts as 0
func (p *PhysicsBody) Restitution() float64 {
	if math.IsNaN(p.Bounciness) || p.Bounciness < 0 {
		return 0
	}
	return math.Min(p.Bounciness, 1)
}

func hypot(x, y float64) float64 {
	return math.Sqrt(x*x + y*y)
}
