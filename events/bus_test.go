package events_test

import (
	"testing"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSubscribeAndEmit(t *testing.T) {
	bus := events.NewBus(nil)

	var got []events.Event
	bus.Subscribe(events.ContactBegin, func(ev events.Event) {
		got = append(got, ev)
	})

	bus.Emit(events.Event{Kind: events.ContactBegin, Entity: 1, Other: 2})
	bus.Emit(events.Event{Kind: events.ContactEnd, Entity: 1, Other: 2})

	require.Len(t, got, 1)
	assert.Equal(t, ecs.EntityId(1), got[0].Entity)
	assert.Equal(t, ecs.EntityId(2), got[0].Other)
}

func TestHandlersRunInSubscriptionOrder(t *testing.T) {
	bus := events.NewBus(nil)

	var order []int
	for i := 0; i < 3; i++ {
		bus.Subscribe(events.Grounded, func(events.Event) { order = append(order, i) })
	}
	bus.Emit(events.Event{Kind: events.Grounded})
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestSubscriptionIdsUnique(t *testing.T) {
	bus := events.NewBus(nil)
	a := bus.Subscribe(events.Grounded, func(events.Event) {})
	b := bus.Subscribe(events.Grounded, func(events.Event) {})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, events.Grounded, a.Kind)
}

func TestOnce(t *testing.T) {
	bus := events.NewBus(nil)

	calls := 0
	bus.Once(events.Airborne, func(events.Event) { calls++ })

	bus.Emit(events.Event{Kind: events.Airborne})
	bus.Emit(events.Event{Kind: events.Airborne})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, bus.Len(events.Airborne))
}

func TestUnsubscribe(t *testing.T) {
	bus := events.NewBus(nil)

	calls := 0
	sub := bus.Subscribe(events.ContactEnd, func(events.Event) { calls++ })
	keep := bus.Subscribe(events.ContactEnd, func(events.Event) { calls += 10 })

	assert.True(t, bus.Unsubscribe(sub))
	assert.False(t, bus.Unsubscribe(sub))

	bus.Emit(events.Event{Kind: events.ContactEnd})
	assert.Equal(t, 10, calls)

	assert.True(t, bus.Unsubscribe(keep))
	assert.Equal(t, 0, bus.Len(events.ContactEnd))
}

func TestUnsubscribeDuringEmit(t *testing.T) {
	bus := events.NewBus(nil)

	calls := 0
	var second events.Subscription
	bus.Subscribe(events.Grounded, func(events.Event) {
		calls++
		bus.Unsubscribe(second)
	})
	second = bus.Subscribe(events.Grounded, func(events.Event) { calls++ })

	// the snapshot taken at emit time still includes the second handler
	bus.Emit(events.Event{Kind: events.Grounded})
	assert.Equal(t, 2, calls)

	bus.Emit(events.Event{Kind: events.Grounded})
	assert.Equal(t, 3, calls)
}

func TestOffAndClear(t *testing.T) {
	bus := events.NewBus(nil)
	bus.Subscribe(events.Grounded, func(events.Event) {})
	bus.Subscribe(events.Airborne, func(events.Event) {})

	bus.Off(events.Grounded)
	assert.Equal(t, 0, bus.Len(events.Grounded))
	assert.Equal(t, 1, bus.Len(events.Airborne))

	bus.Clear()
	assert.Equal(t, 0, bus.Len(events.Airborne))
}

func TestPanickingHandlerIsRecovered(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	bus := events.NewBus(zap.New(core))

	ran := false
	bus.Subscribe(events.ContactBegin, func(events.Event) { panic("boom") })
	bus.Subscribe(events.ContactBegin, func(events.Event) { ran = true })

	assert.NotPanics(t, func() {
		bus.Emit(events.Event{Kind: events.ContactBegin})
	})
	assert.True(t, ran)

	entries := logs.FilterMessage("event handler panicked").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
}
