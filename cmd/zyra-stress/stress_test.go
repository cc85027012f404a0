package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	world := ecs.NewWorld(components.NewRegistry())
	populate(world, options{entities: 50, arena: 512, seed: 3})

	assert.Equal(t, 54, world.Len())

	dynamic := 0
	for item := range ecs.NewView[struct {
		*components.Transform
		*components.PhysicsBody
	}](world).Values() {
		if item.PhysicsBody.Type == components.BodyDynamic {
			dynamic++
			assert.GreaterOrEqual(t, item.Transform.X, 0.0)
			assert.Less(t, item.Transform.X, 512.0)
		}
	}
	assert.Equal(t, 50, dynamic)
}

func TestStress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	rep, err := stress(ctx, options{duration: 100 * time.Millisecond, entities: 100, arena: 512, seed: 1})
	require.NoError(t, err)
	assert.Greater(t, rep.Steps, int64(0))
	assert.Equal(t, uint64(rep.Steps), rep.Frames)

	var out strings.Builder
	require.NoError(t, rep.Generate(&out))
	assert.Contains(t, out.String(), "# Stress Test Report")
	assert.Contains(t, out.String(), "- **Bodies:** 100")
}
