//go:build !android

package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"snejk/internal/game"
	"snejk/internal/render/camera"
	"snejk/internal/meshio"
)

// maxFrameDt caps a single tick after stalls (window drags, breakpoints).
const maxFrameDt = 0.1

// Viewer is the desktop rendering collaborator. It recomputes normals and
// bounds for every submitted mesh and draws it behind a chase camera.
// Must be created and run on the main OS thread.
type Viewer struct {
	window *glfw.Window
	rend   *Renderer
	input  *Input
	cam    camera.Camera

	normals []mgl64.Vec3
}

func NewViewer() (*Viewer, error) {
	window, err := initWindow(WindowWidth, WindowHeight, WindowTitle)
	if err != nil {
		return nil, err
	}
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.09, 0.10, 0.12, 1.0)

	rend, err := NewRenderer()
	if err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, err
	}
	return &Viewer{
		window: window,
		rend:   rend,
		input:  NewInput(),
		cam:    camera.New(),
	}, nil
}

// Submit implements game.MeshSink.
func (v *Viewer) Submit(m *game.MeshBuffers) error {
	v.normals = meshio.AppendNormals(v.normals, m)
	if lo, hi, ok := meshio.Bounds(m); ok {
		v.cam.Frame(hi.Sub(lo).Len() * 0.5)
	}
	v.rend.Upload(m, v.normals)
	return nil
}

// Run drives the session once per frame until the window closes or ctx is
// cancelled. The session must have been created with v as its sink.
func (v *Viewer) Run(ctx context.Context, s *game.Session) error {
	if s.State() == game.StateIdle {
		s.Spawn()
	}
	v.resetCamera(s)
	bands := float32(s.Config().Movement.MaxBodySegments)

	last := glfw.GetTime()
	for !v.window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > maxFrameDt {
			dt = maxFrameDt
		}

		glfw.PollEvents()
		if v.window.GetKey(glfw.KeyEscape) == glfw.Press {
			v.window.SetShouldClose(true)
			continue
		}
		if v.input.JustPressed(v.window, glfw.KeyP) {
			if s.State() == game.StatePaused {
				s.Resume()
			} else {
				s.Pause()
			}
		}
		if v.input.JustPressed(v.window, glfw.KeySpace) {
			s.Spawn()
			v.resetCamera(s)
		}

		if _, err := s.Tick(Steering(v.window), dt); err != nil {
			slog.Warn("tick failed", "error", err)
		}
		if r := s.Recorder(); r != nil && s.State() == game.StateRunning {
			head := r.Head()
			v.cam.Follow(head.Position, head.Heading(), dt)
		}
		UpdateZoom(&v.cam, v.window, dt)

		fbW, fbH := v.window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		v.rend.Draw(&v.cam, fbW, fbH, bands)
		v.window.SwapBuffers()
	}
	return nil
}

func (v *Viewer) resetCamera(s *game.Session) {
	if r := s.Recorder(); r != nil {
		head := r.Head()
		v.cam.Reset(head.Position, head.Heading())
	}
}

func (v *Viewer) Destroy() {
	v.rend.Destroy()
	v.window.Destroy()
	glfw.Terminate()
}
