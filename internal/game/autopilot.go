package game

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// SteeringSource yields a steering value in [-1, 1] for simulation time t.
type SteeringSource interface {
	Steer(t float64) float64
}

type ConstantSteering float64

func (c ConstantSteering) Steer(float64) float64 { return clampF(float64(c), -1, 1) }

// SteeringStep holds Value from time From until the next step starts.
type SteeringStep struct {
	From  float64
	Value float64
}

// ScriptedSteering plays back steps sorted by From. Before the first step
// the steering is zero.
type ScriptedSteering []SteeringStep

func (s ScriptedSteering) Steer(t float64) float64 {
	v := 0.0
	for _, st := range s {
		if st.From > t {
			break
		}
		v = st.Value
	}
	return clampF(v, -1, 1)
}

// WanderSteering meanders using 1D perlin noise.
type WanderSteering struct {
	noise     *perlin.Perlin
	offset    float64
	Frequency float64 // noise samples per second
	Gain      float64
}

func NewWanderSteering(seed uint64) *WanderSteering {
	r := NewRand(seed)
	return &WanderSteering{
		noise:     perlin.NewPerlin(2, 2, 3, r.Int63()),
		offset:    r.RangeF(0, 1000),
		Frequency: 0.35,
		Gain:      2.5,
	}
}

func (w *WanderSteering) Steer(t float64) float64 {
	v := w.noise.Noise1D(w.offset + t*w.Frequency)
	return clampF(math.Tanh(v*w.Gain), -1, 1)
}
