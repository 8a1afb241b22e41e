package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local axes of a head or sample orientation.
var (
	localUp      = mgl64.Vec3{0, 1, 0}
	localForward = mgl64.Vec3{0, 0, 1}
)

// sampleEpsilon absorbs float error when comparing accumulated arc length
// against the segment length.
const sampleEpsilon = 1e-9

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// headingQuat returns the orientation facing headingDeg degrees about +Y.
func headingQuat(headingDeg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(headingDeg), localUp)
}

// yawDegrees recovers the heading about +Y from an orientation.
func yawDegrees(q mgl64.Quat) float64 {
	f := q.Rotate(localForward)
	return mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	seed = splitmix64(seed)
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Int63() int64 {
	return int64(r.NextU64() >> 1)
}

func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) RangeF(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float64()
}
