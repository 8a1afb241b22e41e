package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"snejk/internal/game"
)

func TestConstantSteering_Clamps(t *testing.T) {
	assert.Equal(t, 0.5, game.ConstantSteering(0.5).Steer(3))
	assert.Equal(t, 1.0, game.ConstantSteering(4).Steer(0))
	assert.Equal(t, -1.0, game.ConstantSteering(-4).Steer(0))
}

func TestScriptedSteering(t *testing.T) {
	s := game.ScriptedSteering{
		{From: 1, Value: 1},
		{From: 2, Value: -0.5},
		{From: 3, Value: -3},
	}

	assert.Equal(t, 0.0, s.Steer(0.5))
	assert.Equal(t, 1.0, s.Steer(1))
	assert.Equal(t, 1.0, s.Steer(1.99))
	assert.Equal(t, -0.5, s.Steer(2.5))
	assert.Equal(t, -1.0, s.Steer(10))
}

func TestWanderSteering_BoundedAndDeterministic(t *testing.T) {
	a := game.NewWanderSteering(42)
	b := game.NewWanderSteering(42)

	varied := false
	first := a.Steer(0)
	for i := 0; i < 600; i++ {
		tm := float64(i) / 60
		v := a.Steer(tm)
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
		assert.Equal(t, v, b.Steer(tm))
		if v != first {
			varied = true
		}
	}
	assert.True(t, varied)
}

func TestEventBus(t *testing.T) {
	var nilBus *game.EventBus
	assert.NotPanics(t, func() { nilBus.Emit(game.Event{Type: game.EventSpawned}) })

	bus := game.NewEventBus()
	var spawned, all int
	bus.Subscribe(game.EventSpawned, func(game.Event) { spawned++ })
	bus.SubscribeAll(func(game.Event) { all++ })

	bus.Emit(game.Event{Type: game.EventSpawned})
	bus.Emit(game.Event{Type: game.EventDespawned})

	assert.Equal(t, 1, spawned)
	assert.Equal(t, 2, all)
	assert.Equal(t, "sample_evicted", game.EventSampleEvicted.String())
}
