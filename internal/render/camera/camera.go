// Package camera is the chase camera used by the desktop viewer.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera limits.
const (
	DefaultDistance = 14.0
	MinDistance     = 3.0
	MaxDistance     = 80.0
	CameraPitch     = 35.0 // degrees above the horizon
	CameraYawRate   = 2.5  // radians per second chasing the head heading
	CameraLag       = 6.0  // 1/s, exponential follow of the target
)

// Camera chases the head from behind and above.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64 // radians about +Y, 0 looks down +Z
	Distance float64
}

func New() Camera {
	return Camera{Distance: DefaultDistance}
}

// Reset snaps the camera behind a freshly spawned head at the default
// distance, dropping any framing left from a previous body.
func (c *Camera) Reset(head mgl64.Vec3, headingDeg float64) {
	c.Target = head
	c.Yaw = mgl64.DegToRad(headingDeg)
	c.Distance = DefaultDistance
}

// Follow eases the camera toward the head pose.
func (c *Camera) Follow(head mgl64.Vec3, headingDeg, dt float64) {
	k := 1 - math.Exp(-CameraLag*dt)
	c.Target = c.Target.Add(head.Sub(c.Target).Mul(k))
	c.Yaw = approachAngle(c.Yaw, mgl64.DegToRad(headingDeg), CameraYawRate*dt)
}

// Frame makes sure a bounding box of the given half-extent stays in view.
func (c *Camera) Frame(halfExtent float64) {
	if want := halfExtent * 2.2; want > c.Distance {
		c.Distance = math.Min(want, MaxDistance)
	}
}

func (c *Camera) Zoom(factor float64) {
	c.Distance = math.Max(MinDistance, math.Min(MaxDistance, c.Distance*factor))
}

func (c *Camera) Eye() mgl64.Vec3 {
	pitch := mgl64.DegToRad(CameraPitch)
	back := mgl64.Vec3{
		-math.Sin(c.Yaw) * math.Cos(pitch),
		math.Sin(pitch),
		-math.Cos(c.Yaw) * math.Cos(pitch),
	}
	return c.Target.Add(back.Mul(c.Distance))
}

// ViewProj returns the combined view-projection matrix for a framebuffer.
func (c *Camera) ViewProj(fbW, fbH int) mgl32.Mat4 {
	eye := vec32(c.Eye())
	target := vec32(c.Target)
	aspect := float32(fbW) / float32(max(fbH, 1))
	proj := mgl32.Perspective(mgl32.DegToRad(50), aspect, 0.1, 500)
	view := mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func approachAngle(cur, target, maxDelta float64) float64 {
	d := target - cur
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	if math.Abs(d) <= maxDelta {
		return target
	}
	if d > 0 {
		return cur + maxDelta
	}
	return cur - maxDelta
}
