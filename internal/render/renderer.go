//go:build !android

package render

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl64"

	"snejk/internal/game"
	"snejk/internal/render/camera"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Interleaved vertex layout: position (3), normal (3), uv (2).
const vertexFloats = 8

type Renderer struct {
	prog uint32
	vao  uint32
	vbo  uint32
	ebo  uint32

	uViewProj  int32
	uLightDir  int32
	uTailColor int32
	uHeadColor int32
	uBands     int32

	indexCount int32

	// Reusable upload buffers to avoid per-frame heap allocations.
	vertBuf  []float32
	indexBuf []uint32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(tubeVertSrc, tubeFragSrc)
	if err != nil {
		return nil, fmt.Errorf("tube program: %w", err)
	}
	r := &Renderer{prog: prog}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	stride := int32(vertexFloats * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aNormal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	// aUV (vec2)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, glOffset(6*4))
	gl.BindVertexArray(0)

	gl.UseProgram(prog)
	r.uViewProj = gl.GetUniformLocation(prog, gl.Str("uViewProj\x00"))
	r.uLightDir = gl.GetUniformLocation(prog, gl.Str("uLightDir\x00"))
	r.uTailColor = gl.GetUniformLocation(prog, gl.Str("uTailColor\x00"))
	r.uHeadColor = gl.GetUniformLocation(prog, gl.Str("uHeadColor\x00"))
	r.uBands = gl.GetUniformLocation(prog, gl.Str("uBands\x00"))
	light := mgl64.Vec3{-0.4, -1, 0.3}.Normalize()
	gl.Uniform3f(r.uLightDir, float32(light[0]), float32(light[1]), float32(light[2]))
	gl.Uniform3f(r.uTailColor, 0.16, 0.38, 0.12)
	gl.Uniform3f(r.uHeadColor, 0.55, 0.86, 0.30)

	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.vbo, r.ebo} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

// Upload streams a mesh and its normals into the GPU buffers.
func (r *Renderer) Upload(m *game.MeshBuffers, normals []mgl64.Vec3) {
	r.vertBuf = r.vertBuf[:0]
	for i, v := range m.Vertices {
		n, uv := normals[i], m.UVs[i]
		r.vertBuf = append(r.vertBuf,
			float32(v[0]), float32(v[1]), float32(v[2]),
			float32(n[0]), float32(n[1]), float32(n[2]),
			float32(uv[0]), float32(uv[1]),
		)
	}
	r.indexBuf = r.indexBuf[:0]
	for _, idx := range m.Triangles {
		r.indexBuf = append(r.indexBuf, uint32(idx))
	}
	r.indexCount = int32(len(r.indexBuf))

	gl.BindVertexArray(r.vao)
	if len(r.vertBuf) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(r.vertBuf)*4, gl.Ptr(r.vertBuf), gl.STREAM_DRAW)
	}
	if len(r.indexBuf) > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(r.indexBuf)*4, gl.Ptr(r.indexBuf), gl.STREAM_DRAW)
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) Draw(cam *camera.Camera, fbW, fbH int, bands float32) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.indexCount == 0 {
		return
	}

	vp := cam.ViewProj(fbW, fbH)
	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.uViewProj, 1, false, &vp[0])
	gl.Uniform1f(r.uBands, bands)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, glOffset(0))
	gl.BindVertexArray(0)
}
