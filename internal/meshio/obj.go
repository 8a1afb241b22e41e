package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"snejk/internal/game"
)

// WriteOBJ writes m as a Wavefront OBJ: v, vt and vn lines per vertex and one
// f line per triangle. normals may be nil, in which case they are computed.
func WriteOBJ(w io.Writer, m *game.MeshBuffers, normals []mgl64.Vec3) error {
	if normals == nil {
		normals = Normals(m)
	}
	if len(normals) != len(m.Vertices) {
		return fmt.Errorf("obj: %d normals for %d vertices", len(normals), len(m.Vertices))
	}
	if len(m.UVs) != len(m.Vertices) {
		return fmt.Errorf("obj: %d uvs for %d vertices", len(m.UVs), len(m.Vertices))
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# snejk tube: %d vertices, %d triangles\n", m.VertexCount(), m.TriangleCount())
	for _, v := range m.Vertices {
		writeFloats(bw, "v", v[:])
	}
	for _, uv := range m.UVs {
		writeFloats(bw, "vt", uv[:])
	}
	for _, n := range normals {
		writeFloats(bw, "vn", n[:])
	}
	for t := 0; t+2 < len(m.Triangles); t += 3 {
		// OBJ indices are 1-based; position, uv and normal share an index.
		a, b, c := m.Triangles[t]+1, m.Triangles[t+1]+1, m.Triangles[t+2]+1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}
	return bw.Flush()
}

func writeFloats(w *bufio.Writer, tag string, vals []float64) {
	w.WriteString(tag)
	for _, f := range vals {
		w.WriteByte(' ')
		w.WriteString(strconv.FormatFloat(f, 'f', 6, 64))
	}
	w.WriteByte('\n')
}

// OBJSink keeps a copy of the latest submitted mesh and writes it to path on
// Close.
type OBJSink struct {
	path string
	last game.MeshBuffers
}

func NewOBJSink(path string) *OBJSink {
	return &OBJSink{path: path}
}

func (s *OBJSink) Submit(m *game.MeshBuffers) error {
	s.last.Vertices = append(s.last.Vertices[:0], m.Vertices...)
	s.last.Triangles = append(s.last.Triangles[:0], m.Triangles...)
	s.last.UVs = append(s.last.UVs[:0], m.UVs...)
	return nil
}

// Last is the most recent mesh submitted.
func (s *OBJSink) Last() *game.MeshBuffers { return &s.last }

func (s *OBJSink) Close() (err error) {
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, f.Close()) }()

	return WriteOBJ(f, &s.last, nil)
}
