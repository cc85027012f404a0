package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Subscription identifies a registered handler
type Subscription struct {
	ID   uuid.UUID
	Kind Kind
}

type subscription struct {
	id      uuid.UUID
	handler Handler
	once    bool
}

// Bus dispatches events synchronously on the emitting goroutine.
// It is safe for concurrent use; handlers run without the bus lock held, so
// they may subscribe, unsubscribe or emit.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]*subscription
	logger   *zap.Logger
}

// NewBus creates an empty bus. A nil logger discards handler failures.
func NewBus(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		handlers: make(map[Kind][]*subscription),
		logger:   logger,
	}
}

// Subscribe registers handler for every event of kind
func (b *Bus) Subscribe(kind Kind, handler Handler) Subscription {
	return b.add(kind, handler, false)
}

// Once registers handler for the next event of kind only
func (b *Bus) Once(kind Kind, handler Handler) Subscription {
	return b.add(kind, handler, true)
}

func (b *Bus) add(kind Kind, handler Handler, once bool) Subscription {
	sub := &subscription{id: uuid.New(), handler: handler, once: once}

	b.mu.Lock()
	b.handlers[kind] = append(b.handlers[kind], sub)
	b.mu.Unlock()

	return Subscription{ID: sub.id, Kind: kind}
}

// Unsubscribe removes a handler. Returns false if it was not registered.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.removeLocked(sub.Kind, sub.ID)
}

func (b *Bus) removeLocked(kind Kind, id uuid.UUID) bool {
	subs := b.handlers[kind]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		// copy so in-flight emits keep their snapshot intact
		next := make([]*subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, kind)
		} else {
			b.handlers[kind] = next
		}
		return true
	}
	return false
}

// Off removes every handler of kind
func (b *Bus) Off(kind Kind) {
	b.mu.Lock()
	delete(b.handlers, kind)
	b.mu.Unlock()
}

// Clear removes every handler
func (b *Bus) Clear() {
	b.mu.Lock()
	clear(b.handlers)
	b.mu.Unlock()
}

// Len returns the number of handlers registered for kind
func (b *Bus) Len(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[kind])
}

// Emit delivers ev to the handlers subscribed to its kind, in subscription order.
// A panicking handler is logged and the remaining handlers still run.
func (b *Bus) Emit(ev Event) {
	b.mu.Lock()
	subs := b.handlers[ev.Kind]
	for _, s := range subs {
		if s.once {
			b.removeLocked(ev.Kind, s.id)
		}
	}
	b.mu.Unlock()

	for _, s := range subs {
		b.dispatch(s, ev)
	}
}

func (b *Bus) dispatch(s *subscription, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("kind", string(ev.Kind)),
				zap.Stringer("subscription", s.id),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	s.handler(ev)
}
