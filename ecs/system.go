package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and can include Query and
// Singleton fields, which the Scheduler binds at registration, as well as
// custom state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Stage is a named slot in the frame pipeline. Stages always run in ascending
// order; systems within a stage run in registration order.
type Stage int

const (
	// StageMotion integrates acceleration and velocity into position
	StageMotion Stage = iota
	// StageCollision detects overlaps using post-motion positions
	StageCollision
	// StagePhysics resolves this frame's contacts
	StagePhysics
	// StageLate runs gameplay, events and render-adjacent systems
	StageLate
)

func (s Stage) String() string {
	switch s {
	case StageMotion:
		return "motion"
	case StageCollision:
		return "collision"
	case StagePhysics:
		return "physics"
	case StageLate:
		return "late"
	default:
		return "unknown"
	}
}

// Staged is implemented by systems that must run in a particular stage.
// Systems that don't implement it are placed in StageLate.
type Staged interface {
	Stage() Stage
}

// SystemFunc adapts a plain function to the System interface
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
