// Package events is a small synchronous publish/subscribe bus used to report
// simulation facts such as contacts and ground transitions to gameplay code.
package events

import "github.com/plus3/zyra/ecs"

// Kind names a family of events
type Kind string

const (
	// ContactBegin fires the first frame two colliders overlap
	ContactBegin Kind = "contact.begin"
	// ContactEnd fires the first frame a previously overlapping pair separates
	ContactEnd Kind = "contact.end"
	// Grounded fires when a body's OnGround flag turns on
	Grounded Kind = "body.grounded"
	// Airborne fires when a body's OnGround flag turns off
	Airborne Kind = "body.airborne"
)

// Event is delivered to every handler subscribed to its Kind.
// For contact events Entity holds the lower id of the pair.
type Event struct {
	Kind   Kind
	Frame  uint64
	Entity ecs.EntityId
	Other  ecs.EntityId
	// Payload carries user data for custom kinds
	Payload any
}

// Handler receives events
type Handler func(Event)
