// Package meshio holds the post-build steps a consumer of tube meshes is
// expected to run: normals, bounds and export.
package meshio

import (
	"github.com/go-gl/mathgl/mgl64"

	"snejk/internal/game"
)

// Normals computes per-vertex normals by summing the unnormalised face
// normals of every triangle touching a vertex, so larger faces weigh more.
// Orientation follows the counter-clockwise winding of the triangles.
func Normals(m *game.MeshBuffers) []mgl64.Vec3 {
	return AppendNormals(nil, m)
}

// AppendNormals is Normals writing into dst's backing array when it fits.
func AppendNormals(dst []mgl64.Vec3, m *game.MeshBuffers) []mgl64.Vec3 {
	n := len(m.Vertices)
	if cap(dst) < n {
		dst = make([]mgl64.Vec3, n)
	}
	dst = dst[:n]
	clear(dst)

	tris := m.Triangles
	for t := 0; t+2 < len(tris); t += 3 {
		ia, ib, ic := tris[t], tris[t+1], tris[t+2]
		a, b, c := m.Vertices[ia], m.Vertices[ib], m.Vertices[ic]
		face := b.Sub(a).Cross(c.Sub(a))
		dst[ia] = dst[ia].Add(face)
		dst[ib] = dst[ib].Add(face)
		dst[ic] = dst[ic].Add(face)
	}
	for i, v := range dst {
		if l := v.Len(); l > 0 {
			dst[i] = v.Mul(1 / l)
		}
	}
	return dst
}

// Bounds returns the axis-aligned box around all vertices.
func Bounds(m *game.MeshBuffers) (lo, hi mgl64.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi, true
}
