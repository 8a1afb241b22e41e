package meshio_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snejk/internal/game"
	"snejk/internal/meshio"
)

func straightTube(n, res int, taper bool) game.MeshBuffers {
	samples := make([]game.PathSample, n)
	for i := range samples {
		samples[i] = game.PathSample{
			Position:    mgl64.Vec3{0, 0, float64(i)},
			Orientation: mgl64.QuatIdent(),
		}
	}
	return game.BuildTube(samples, game.TessellationConfig{
		Radius:                 0.5,
		CrossSectionResolution: res,
		EnableTapering:         taper,
		TailRadiusMultiplier:   0.5,
	})
}

func TestNormals_PointOutward(t *testing.T) {
	m := straightTube(4, 16, false)
	normals := meshio.Normals(&m)
	require.Len(t, normals, len(m.Vertices))

	for i, v := range m.Vertices {
		radial := mgl64.Vec3{v.X(), v.Y(), 0}.Normalize()
		assert.InDelta(t, 1, normals[i].Len(), 1e-9)
		if ring := i / 16; ring > 0 && ring < 3 {
			// Interior vertices see a symmetric fan of faces.
			assert.InDelta(t, 1, normals[i].Dot(radial), 1e-9, "vertex %d", i)
		} else {
			assert.Greater(t, normals[i].Dot(radial), 0.99, "vertex %d", i)
		}
	}
}

func TestNormals_TaperedStillOutward(t *testing.T) {
	m := straightTube(6, 8, true)
	for i, n := range meshio.Normals(&m) {
		radial := mgl64.Vec3{m.Vertices[i].X(), m.Vertices[i].Y(), 0}
		assert.Greater(t, n.Dot(radial), 0.0, "vertex %d", i)
	}
}

func TestAppendNormals_ReusesBuffer(t *testing.T) {
	big := straightTube(10, 8, false)
	small := straightTube(2, 8, false)

	buf := meshio.AppendNormals(nil, &big)
	out := meshio.AppendNormals(buf, &small)
	assert.Len(t, out, 16)
	assert.Same(t, &buf[0], &out[0])
	assert.Equal(t, meshio.Normals(&small), out)
}

func TestNormals_SingleRingHasNoFaces(t *testing.T) {
	m := straightTube(1, 6, false)
	for _, n := range meshio.Normals(&m) {
		assert.Equal(t, mgl64.Vec3{}, n)
	}
}

func TestBounds(t *testing.T) {
	_, _, ok := meshio.Bounds(&game.MeshBuffers{})
	assert.False(t, ok)

	m := straightTube(3, 4, false)
	lo, hi, ok := meshio.Bounds(&m)
	require.True(t, ok)
	assert.InDelta(t, 0, lo.Sub(mgl64.Vec3{-0.5, -0.5, 0}).Len(), 1e-9)
	assert.InDelta(t, 0, hi.Sub(mgl64.Vec3{0.5, 0.5, 2}).Len(), 1e-9)
}

func TestNormals_OutwardOnCurvedTube(t *testing.T) {
	r := game.NewPathRecorder(game.MovementConfig{
		MoveSpeed:       5,
		TurnSpeed:       90,
		SegmentLength:   0.25,
		MaxBodySegments: 100,
	}, mgl64.Vec3{}, mgl64.QuatIdent())
	for i := 0; i < 180; i++ {
		r.Advance(0.8, 1.0/60)
	}
	samples := r.History()

	const res = 12
	m := game.BuildTube(samples, game.DefaultConfig().Tube)
	require.Equal(t, res, game.DefaultConfig().Tube.CrossSectionResolution)
	for i, n := range meshio.Normals(&m) {
		centre := samples[i/res].Position
		assert.Greater(t, n.Dot(m.Vertices[i].Sub(centre)), 0.0, "vertex %d", i)
	}
}
