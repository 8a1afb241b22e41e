package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// maxSkipReport bounds the skip count handed to OnSkip.
const maxSkipReport = 1 << 53

// PathSample is the head's pose captured at one arc-length mark.
// Samples are never modified after capture.
type PathSample struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// HeadState is the live kinematic state of the head.
type HeadState struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	MoveSpeed   float64 // units per second
	TurnSpeed   float64 // degrees per second at full steering
}

// Heading returns the yaw about +Y in degrees, 0 facing +Z.
func (h HeadState) Heading() float64 {
	return yawDegrees(h.Orientation)
}

func (h HeadState) sample() PathSample {
	return PathSample{Position: h.Position, Orientation: h.Orientation}
}

// PathRecorder moves the head and keeps a bounded, evenly spaced trail of
// where it has been. Index 0 of the history is the tail.
type PathRecorder struct {
	head    HeadState
	history *PathHistory

	segmentLength     float64
	distanceSinceLast float64
	lastRecorded      mgl64.Vec3

	// OnEvict, when set, receives every sample dropped off the tail.
	OnEvict func(PathSample)
	// OnSkip, when set, receives the number of crossings in one tick that
	// were never placed because a full history of newer ones followed.
	OnSkip func(n int)
}

// NewPathRecorder creates a recorder seeded with the spawn pose.
func NewPathRecorder(cfg MovementConfig, pos mgl64.Vec3, orient mgl64.Quat) *PathRecorder {
	r := &PathRecorder{
		head: HeadState{
			MoveSpeed: cfg.MoveSpeed,
			TurnSpeed: cfg.TurnSpeed,
		},
		history:       NewPathHistory(cfg.MaxBodySegments),
		segmentLength: cfg.SegmentLength,
	}
	r.Initialize(pos, orient)
	return r
}

// Initialize drops all history and re-seeds it with a single sample at the
// given pose.
func (r *PathRecorder) Initialize(pos mgl64.Vec3, orient mgl64.Quat) {
	r.head.Position = pos
	r.head.Orientation = orient.Normalize()
	r.history.Reset()
	r.history.Push(r.head.sample())
	r.distanceSinceLast = 0
	r.lastRecorded = pos
}

// Advance applies one tick of steering and movement and records a sample at
// every segment-length crossing passed during the tick. It returns the
// samples recorded, oldest first, never more than the history capacity.
// Non-positive or non-finite dt is a no-op.
func (r *PathRecorder) Advance(steering, dt float64) []PathSample {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}

	steering = clampF(steering, -1, 1)
	if turn := steering * r.head.TurnSpeed * dt; turn != 0 {
		yaw := mgl64.QuatRotate(mgl64.DegToRad(turn), localUp)
		r.head.Orientation = r.head.Orientation.Mul(yaw).Normalize()
	}

	step := r.head.MoveSpeed * dt
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	dir := r.Forward()
	r.head.Position = r.head.Position.Add(dir.Mul(step))
	r.distanceSinceLast += step

	crossings := math.Floor((r.distanceSinceLast + sampleEpsilon) / r.segmentLength)
	if crossings < 1 {
		return nil
	}
	leftover := r.distanceSinceLast - crossings*r.segmentLength
	if leftover < 0 || leftover >= r.segmentLength {
		leftover = clampF(math.Mod(leftover, r.segmentLength), 0, r.segmentLength)
	}
	r.distanceSinceLast = leftover

	// Crossings older than a full history would be evicted within this
	// same tick, so they are counted and never placed.
	placed := r.history.Cap()
	if crossings < float64(placed) {
		placed = int(crossings)
	} else if skipped := crossings - float64(placed); skipped > 0 && r.OnSkip != nil {
		r.OnSkip(int(min(skipped, maxSkipReport)))
	}

	recorded := make([]PathSample, 0, placed)
	for i := placed - 1; i >= 0; i-- {
		// Place each sample where its threshold was crossed, measured back
		// from the head along this tick's motion.
		back := leftover + float64(i)*r.segmentLength
		s := PathSample{
			Position:    r.head.Position.Sub(dir.Mul(back)),
			Orientation: r.head.Orientation,
		}
		r.record(s)
		recorded = append(recorded, s)
	}
	return recorded
}

func (r *PathRecorder) record(s PathSample) {
	r.lastRecorded = s.Position
	if evicted, ok := r.history.Push(s); ok && r.OnEvict != nil {
		r.OnEvict(evicted)
	}
}

// Samples returns the stored history followed by the live head as a
// transient final sample. The head sample is not stored.
func (r *PathRecorder) Samples() []PathSample {
	return r.AppendSamples(make([]PathSample, 0, r.history.Len()+1))
}

// AppendSamples is Samples appending into dst.
func (r *PathRecorder) AppendSamples(dst []PathSample) []PathSample {
	dst = r.history.AppendTo(dst)
	return append(dst, r.head.sample())
}

// History returns a copy of the stored samples only.
func (r *PathRecorder) History() []PathSample {
	return r.history.AppendTo(make([]PathSample, 0, r.history.Len()))
}

func (r *PathRecorder) Len() int { return r.history.Len() }

func (r *PathRecorder) Cap() int { return r.history.Cap() }

func (r *PathRecorder) Head() HeadState { return r.head }

// Forward is the head's current direction of travel.
func (r *PathRecorder) Forward() mgl64.Vec3 {
	return r.head.Orientation.Rotate(localForward)
}

// LastRecorded is the position of the newest stored sample.
func (r *PathRecorder) LastRecorded() mgl64.Vec3 { return r.lastRecorded }

// DistanceSinceLastSample is the arc length carried toward the next sample.
func (r *PathRecorder) DistanceSinceLastSample() float64 { return r.distanceSinceLast }
