package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MeshBuffers is the geometry of one tube build. Triangles holds flat,
// zero-based index triples into Vertices; UVs has one entry per vertex.
// Normals and bounds are left to the consumer.
type MeshBuffers struct {
	Vertices  []mgl64.Vec3
	Triangles []int
	UVs       []mgl64.Vec2
}

func (m *MeshBuffers) VertexCount() int   { return len(m.Vertices) }
func (m *MeshBuffers) TriangleCount() int { return len(m.Triangles) / 3 }
func (m *MeshBuffers) IsEmpty() bool      { return len(m.Vertices) == 0 }

func (m *MeshBuffers) clear() {
	m.Vertices = m.Vertices[:0]
	m.Triangles = m.Triangles[:0]
	m.UVs = m.UVs[:0]
}

// BuildTube tessellates a tube through samples, tail first.
func BuildTube(samples []PathSample, cfg TessellationConfig) MeshBuffers {
	var m MeshBuffers
	m.Rebuild(samples, cfg)
	return m
}

// Rebuild regenerates m from scratch, reusing its backing arrays.
// cfg.CrossSectionResolution must already be validated (>= 3).
func (m *MeshBuffers) Rebuild(samples []PathSample, cfg TessellationConfig) {
	m.clear()
	n := len(samples)
	if n == 0 {
		return
	}
	res := cfg.CrossSectionResolution

	m.Vertices = grow(m.Vertices, n*res)
	m.UVs = grow(m.UVs, n*res)
	for i, s := range samples {
		r := RingRadius(i, n, cfg)
		v := 0.0
		if n > 1 {
			v = float64(i) / float64(n-1)
		}
		for j := 0; j < res; j++ {
			angle := 2 * math.Pi * float64(j) / float64(res)
			local := mgl64.Vec3{math.Cos(angle) * r, math.Sin(angle) * r, 0}
			// Only this sample's orientation touches its ring.
			m.Vertices = append(m.Vertices, s.Position.Add(s.Orientation.Rotate(local)))
			m.UVs = append(m.UVs, mgl64.Vec2{float64(j) / float64(res), v})
		}
	}

	if n < 2 {
		return
	}
	m.Triangles = grow(m.Triangles, 6*res*(n-1))
	for i := 0; i < n-1; i++ {
		base := i * res
		for j := 0; j < res; j++ {
			a := base + j
			b := base + (j+1)%res
			c := a + res
			d := b + res
			// Counter-clockwise seen from outside the tube.
			m.Triangles = append(m.Triangles,
				a, b, d,
				a, d, c,
			)
		}
	}
}

// RingRadius is the radius of ring i out of n. With tapering the tail ring
// (i = 0) is TailRadiusMultiplier*Radius and the head ring is Radius.
func RingRadius(i, n int, cfg TessellationConfig) float64 {
	if !cfg.EnableTapering || n < 2 {
		return cfg.Radius
	}
	t := float64(i) / float64(n-1)
	return lerp(cfg.TailRadiusMultiplier*cfg.Radius, cfg.Radius, t)
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, 0, n)
	}
	return s[:0]
}
