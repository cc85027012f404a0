package systems

import (
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/events"
)

type contactPair struct {
	a, b ecs.EntityId
}

func makePair(x, y ecs.EntityId) contactPair {
	if x > y {
		x, y = y, x
	}
	return contactPair{a: x, b: y}
}

// ContactEventSystem turns changes in contacts and ground state into bus
// events. Events are deferred to the end of the frame so handlers observe the
// fully resolved state and may freely spawn or destroy entities.
type ContactEventSystem struct {
	Colliders ecs.Query[struct {
		ID ecs.EntityId
		*components.ColliderAABB
	}]
	Bodies ecs.Query[struct {
		ID ecs.EntityId
		*components.PhysicsBody
	}]

	bus *events.Bus

	pairs      map[contactPair]struct{}
	pairOrder  []contactPair
	nextPairs  map[contactPair]struct{}
	nextOrder  []contactPair
	grounded   map[ecs.EntityId]bool
	nextGround map[ecs.EntityId]bool
}

// NewContactEventSystem creates a system publishing to bus
func NewContactEventSystem(bus *events.Bus) *ContactEventSystem {
	return &ContactEventSystem{
		bus:        bus,
		pairs:      make(map[contactPair]struct{}),
		nextPairs:  make(map[contactPair]struct{}),
		grounded:   make(map[ecs.EntityId]bool),
		nextGround: make(map[ecs.EntityId]bool),
	}
}

func (s *ContactEventSystem) Stage() ecs.Stage { return ecs.StageLate }

func (s *ContactEventSystem) Execute(frame *ecs.UpdateFrame) {
	var pending []events.Event

	for item := range s.Colliders.Values() {
		for _, other := range item.ColliderAABB.Contacts {
			pair := makePair(item.ID, other)
			if _, seen := s.nextPairs[pair]; seen {
				continue
			}
			s.nextPairs[pair] = struct{}{}
			s.nextOrder = append(s.nextOrder, pair)
			if _, existed := s.pairs[pair]; !existed {
				pending = append(pending, events.Event{Kind: events.ContactBegin, Frame: frame.Frame, Entity: pair.a, Other: pair.b})
			}
		}
	}
	for _, pair := range s.pairOrder {
		if _, still := s.nextPairs[pair]; !still {
			pending = append(pending, events.Event{Kind: events.ContactEnd, Frame: frame.Frame, Entity: pair.a, Other: pair.b})
		}
	}

	for item := range s.Bodies.Values() {
		onGround := item.PhysicsBody.OnGround
		s.nextGround[item.ID] = onGround
		was := s.grounded[item.ID]
		switch {
		case onGround && !was:
			pending = append(pending, events.Event{Kind: events.Grounded, Frame: frame.Frame, Entity: item.ID})
		case !onGround && was:
			pending = append(pending, events.Event{Kind: events.Airborne, Frame: frame.Frame, Entity: item.ID})
		}
	}

	// swap generations; entities no longer present are forgotten
	s.pairs, s.nextPairs = s.nextPairs, s.pairs
	s.pairOrder, s.nextOrder = s.nextOrder, s.pairOrder[:0]
	clear(s.nextPairs)
	s.grounded, s.nextGround = s.nextGround, s.grounded
	clear(s.nextGround)

	if s.bus == nil || len(pending) == 0 {
		return
	}
	bus := s.bus
	frame.Commands.Defer(func() {
		for _, ev := range pending {
			bus.Emit(ev)
		}
	})
}

// Reset forgets all tracked contacts and ground state
func (s *ContactEventSystem) Reset() {
	clear(s.pairs)
	clear(s.nextPairs)
	clear(s.grounded)
	clear(s.nextGround)
	s.pairOrder = s.pairOrder[:0]
	s.nextOrder = s.nextOrder[:0]
}
