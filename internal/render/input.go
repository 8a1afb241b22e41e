//go:build !android

package render

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"snejk/internal/render/camera"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{
		prevKeys: make(map[glfw.Key]bool),
	}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// Steering maps A/D or the arrow keys to [-1, 1]. Holding both cancels out.
// Positive steering yaws toward +X when facing +Z, which is screen left from
// the chase camera, so left keys give positive values.
func Steering(window *glfw.Window) float64 {
	s := 0.0
	if window.GetKey(glfw.KeyA) == glfw.Press || window.GetKey(glfw.KeyLeft) == glfw.Press {
		s++
	}
	if window.GetKey(glfw.KeyD) == glfw.Press || window.GetKey(glfw.KeyRight) == glfw.Press {
		s--
	}
	return s
}

// UpdateZoom handles E/R zoom.
func UpdateZoom(cam *camera.Camera, window *glfw.Window, dt float64) {
	zoomRate := 1.4
	if window.GetKey(glfw.KeyE) == glfw.Press {
		cam.Zoom(math.Exp(-zoomRate * dt))
	}
	if window.GetKey(glfw.KeyR) == glfw.Press {
		cam.Zoom(math.Exp(zoomRate * dt))
	}
}
