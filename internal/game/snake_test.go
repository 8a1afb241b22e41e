package game_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snejk/internal/game"
)

const eps = 1e-9

func movement(maxSegments int) game.MovementConfig {
	return game.MovementConfig{
		MoveSpeed:       5,
		TurnSpeed:       90,
		SegmentLength:   0.25,
		MaxBodySegments: maxSegments,
	}
}

func TestPathRecorder_SeedsHistory(t *testing.T) {
	pos := mgl64.Vec3{1, 2, 3}
	r := game.NewPathRecorder(movement(10), pos, mgl64.QuatIdent())

	require.Equal(t, 1, r.Len())
	assert.Equal(t, pos, r.History()[0].Position)
	assert.Equal(t, pos, r.LastRecorded())
	assert.Zero(t, r.DistanceSinceLastSample())
}

func TestPathRecorder_StraightLineSpacing(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())

	for i := 0; i < 5; i++ {
		r.Advance(0, 0.1)
	}

	hist := r.History()
	require.Len(t, hist, 11, "seed plus 2.5/0.25 new samples")
	for i, s := range hist {
		want := mgl64.Vec3{0, 0, 0.25 * float64(i)}
		assert.InDelta(t, 0, s.Position.Sub(want).Len(), eps, "sample %d at %v", i, s.Position)
	}
	assert.InDelta(t, 2.5, r.Head().Position.Z(), eps)
}

func TestPathRecorder_VariableFrameTiming(t *testing.T) {
	r := game.NewPathRecorder(movement(1000), mgl64.Vec3{}, mgl64.QuatIdent())

	dts := []float64{0.013, 0.021, 0.051, 0.007, 0.1, 0.033, 0.0166, 0.0833, 0.002, 0.071}
	total := 0.0
	for k := 0; k < 20; k++ {
		for _, dt := range dts {
			r.Advance(0, dt)
			total += 5 * dt
		}
	}

	hist := r.History()
	require.Equal(t, int(math.Floor(total/0.25+eps))+1, len(hist))
	for i := 1; i < len(hist); i++ {
		d := hist[i].Position.Sub(hist[i-1].Position).Len()
		assert.InDelta(t, 0.25, d, 1e-9, "interval %d", i)
	}
	assert.InDelta(t, total-0.25*float64(len(hist)-1), r.DistanceSinceLastSample(), 1e-9)
}

func TestPathRecorder_SamplesNeverOvershootHead(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())

	recorded := r.Advance(0, 0.07) // 0.35 travelled, one crossing at 0.25
	require.Len(t, recorded, 1)
	assert.InDelta(t, 0.25, recorded[0].Position.Z(), eps)
	assert.InDelta(t, 0.35, r.Head().Position.Z(), eps)
	assert.InDelta(t, 0.1, r.DistanceSinceLastSample(), eps)
	assert.Equal(t, recorded[0].Position, r.LastRecorded())
}

func TestPathRecorder_NonPositiveDtIsNoop(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	before := r.Head()

	assert.Nil(t, r.Advance(1, 0))
	assert.Nil(t, r.Advance(1, -0.5))
	assert.Equal(t, before, r.Head())
	assert.Equal(t, 1, r.Len())
}

func TestPathRecorder_ZeroSpeedTurnsInPlace(t *testing.T) {
	cfg := movement(100)
	cfg.MoveSpeed = 0
	r := game.NewPathRecorder(cfg, mgl64.Vec3{}, mgl64.QuatIdent())

	for i := 0; i < 10; i++ {
		assert.Empty(t, r.Advance(1, 0.1))
	}
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, mgl64.Vec3{}, r.Head().Position)
	assert.InDelta(t, 90, r.Head().Heading(), 1e-6, "10 ticks at 90 deg/s * 0.1 s")
}

func TestPathRecorder_SteeringIsClamped(t *testing.T) {
	a := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	b := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())

	a.Advance(7, 0.1)
	b.Advance(1, 0.1)

	assert.InDelta(t, 0, a.Head().Position.Sub(b.Head().Position).Len(), eps)
	assert.InDelta(t, 9, a.Head().Heading(), 1e-6)
}

func TestPathRecorder_TurningStaysOnUnitQuaternion(t *testing.T) {
	r := game.NewPathRecorder(movement(50), mgl64.Vec3{}, mgl64.QuatIdent())

	for i := 0; i < 2000; i++ {
		r.Advance(math.Sin(float64(i)*0.05), 1.0/60)
		require.LessOrEqual(t, r.Len(), 50)
	}
	assert.InDelta(t, 1, r.Head().Orientation.Len(), 1e-9)
	assert.InDelta(t, 0, r.Head().Position.Y(), 1e-9, "yaw-only steering keeps the head on its plane")

	hist := r.History()
	for i := 1; i < len(hist); i++ {
		d := hist[i].Position.Sub(hist[i-1].Position).Len()
		assert.LessOrEqual(t, d, 0.25+1e-9, "chord never exceeds the arc length")
	}
}

func TestPathRecorder_EvictsOldestFirst(t *testing.T) {
	capped := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	full := game.NewPathRecorder(movement(1000), mgl64.Vec3{}, mgl64.QuatIdent())

	var evicted []game.PathSample
	capped.OnEvict = func(s game.PathSample) { evicted = append(evicted, s) }

	// 0.25 per tick: one sample each, 150 samples including the seed.
	for i := 0; i < 149; i++ {
		capped.Advance(0, 0.05)
		full.Advance(0, 0.05)
		require.LessOrEqual(t, capped.Len(), 100)
	}

	all := full.History()
	require.Len(t, all, 150)
	assert.Equal(t, 100, capped.Len())
	assert.Equal(t, all[50:], capped.History())
	assert.Equal(t, all[:50], evicted)
}

func TestPathRecorder_SamplesAppendLiveHead(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	r.Advance(0, 0.07)

	seq := r.Samples()
	require.Len(t, seq, r.Len()+1)
	assert.Equal(t, r.Head().Position, seq[len(seq)-1].Position)
	assert.Equal(t, r.Head().Orientation, seq[len(seq)-1].Orientation)

	// The head sample is transient.
	assert.Equal(t, 2, r.Len())
	assert.NotEqual(t, r.Head().Position, r.History()[r.Len()-1].Position)
}

func TestPathRecorder_InitializeReseeds(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	for i := 0; i < 10; i++ {
		r.Advance(0.3, 0.1)
	}

	pos := mgl64.Vec3{5, 0, 5}
	r.Initialize(pos, mgl64.QuatIdent())

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, pos, r.Head().Position)
	assert.Zero(t, r.DistanceSinceLastSample())
}

func TestPathRecorder_LongTickIsBoundedByCapacity(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	skipped := 0
	r.OnSkip = func(n int) { skipped += n }

	recorded := r.Advance(0, 5e4) // 250000 units, one million crossings
	require.Len(t, recorded, r.Cap())
	assert.Equal(t, 1_000_000-100, skipped)
	assert.Equal(t, 100, r.Len())

	hist := r.History()
	for i := 1; i < len(hist); i++ {
		d := hist[i].Position.Sub(hist[i-1].Position).Len()
		assert.InDelta(t, 0.25, d, 1e-6, "interval %d", i)
	}
	assert.InDelta(t, 250000, hist[len(hist)-1].Position.Z(), 1e-6)
	assert.Equal(t, recorded[len(recorded)-1].Position, r.LastRecorded())
	assert.GreaterOrEqual(t, r.DistanceSinceLastSample(), 0.0)
	assert.Less(t, r.DistanceSinceLastSample(), 0.25)

	// Recording carries on normally afterwards.
	next := r.Advance(0, 0.05)
	require.Len(t, next, 1)
	assert.InDelta(t, 250000.25, next[0].Position.Z(), 1e-6)
}

func TestPathRecorder_NonFiniteDtIsNoop(t *testing.T) {
	r := game.NewPathRecorder(movement(100), mgl64.Vec3{}, mgl64.QuatIdent())
	before := r.Head()

	for _, dt := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.Nil(t, r.Advance(1, dt))
	}
	assert.Equal(t, before, r.Head())
	assert.Zero(t, r.DistanceSinceLastSample())

	recorded := r.Advance(0, 0.1)
	require.Len(t, recorded, 2)
	assert.InDelta(t, 0.5, r.Head().Position.Z(), eps)
	assert.False(t, math.IsNaN(r.DistanceSinceLastSample()))
}
