package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

var ErrNotSpawned = errors.New("entity not spawned")

type SessionState int

const (
	StateIdle SessionState = iota // never spawned or despawned
	StateRunning
	StatePaused
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// MeshSink receives the rebuilt mesh after every tick. The buffers are only
// valid until the next tick.
type MeshSink interface {
	Submit(mesh *MeshBuffers) error
}

// Session owns one body entity: its recorder, its mesh and the collaborators
// it reports to. All methods run on the ticking goroutine.
type Session struct {
	cfg     Config
	log     *slog.Logger
	bus     *EventBus
	metrics *Metrics
	sink    MeshSink

	state    SessionState
	entityID uuid.UUID
	recorder *PathRecorder
	samples  []PathSample
	mesh     MeshBuffers
}

type SessionOption func(*Session)

func WithEventBus(bus *EventBus) SessionOption { return func(s *Session) { s.bus = bus } }
func WithMetrics(m *Metrics) SessionOption     { return func(s *Session) { s.metrics = m } }
func WithSink(sink MeshSink) SessionOption     { return func(s *Session) { s.sink = sink } }
func WithLogger(l *slog.Logger) SessionOption  { return func(s *Session) { s.log = l } }

func NewSession(cfg Config, opts ...SessionOption) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg: cfg,
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Spawn places a new entity at the configured spawn pose.
func (s *Session) Spawn() uuid.UUID {
	p := s.cfg.Spawn.Position
	return s.SpawnAt(mgl64.Vec3{p[0], p[1], p[2]}, s.cfg.Spawn.Heading)
}

// SpawnAt places a new entity facing headingDeg about +Y. Any previous
// entity is despawned first.
func (s *Session) SpawnAt(pos mgl64.Vec3, headingDeg float64) uuid.UUID {
	if s.state != StateIdle {
		s.Despawn()
	}
	s.entityID = uuid.New()
	s.recorder = NewPathRecorder(s.cfg.Movement, pos, headingQuat(headingDeg))
	s.recorder.OnEvict = s.onEvict
	s.recorder.OnSkip = s.onSkip
	s.state = StateRunning
	s.rebuild()

	s.log.Info("entity spawned", "id", s.entityID, "position", pos, "heading", headingDeg)
	s.bus.Emit(Event{Type: EventSpawned, EntityID: s.entityID, Position: pos, Data: s.recorder.Len()})
	return s.entityID
}

// Tick runs one simulation step: movement, history upkeep, then a full mesh
// rebuild handed to the sink. While paused the previous mesh is returned
// unchanged.
func (s *Session) Tick(steering, dt float64) (*MeshBuffers, error) {
	switch s.state {
	case StateIdle:
		return nil, ErrNotSpawned
	case StatePaused:
		return &s.mesh, nil
	}

	start := time.Now()
	recorded := s.recorder.Advance(steering, dt)
	for _, smp := range recorded {
		s.bus.Emit(Event{Type: EventSampleRecorded, EntityID: s.entityID, Position: smp.Position, Data: s.recorder.Len()})
	}
	s.metrics.addRecorded(len(recorded))

	build := s.rebuild()
	s.metrics.observeTick(start, build, s.recorder.Len(), &s.mesh)

	if s.sink != nil {
		if err := s.sink.Submit(&s.mesh); err != nil {
			return &s.mesh, fmt.Errorf("submit mesh: %w", err)
		}
	}
	return &s.mesh, nil
}

func (s *Session) rebuild() time.Duration {
	t0 := time.Now()
	s.samples = s.recorder.AppendSamples(s.samples[:0])
	s.mesh.Rebuild(s.samples, s.cfg.Tube)
	return time.Since(t0)
}

func (s *Session) onEvict(smp PathSample) {
	s.metrics.incEvicted()
	s.bus.Emit(Event{Type: EventSampleEvicted, EntityID: s.entityID, Position: smp.Position, Data: s.recorder.Len()})
}

func (s *Session) onSkip(n int) {
	s.metrics.addSkipped(n)
	s.log.Warn("tick outran the body, crossings skipped", "id", s.entityID, "skipped", n)
}

func (s *Session) Pause() {
	if s.state != StateRunning {
		return
	}
	s.state = StatePaused
	s.log.Debug("session paused", "id", s.entityID)
	s.bus.Emit(Event{Type: EventPaused, EntityID: s.entityID, Position: s.recorder.Head().Position, Data: s.recorder.Len()})
}

func (s *Session) Resume() {
	if s.state != StatePaused {
		return
	}
	s.state = StateRunning
	s.log.Debug("session resumed", "id", s.entityID)
	s.bus.Emit(Event{Type: EventResumed, EntityID: s.entityID, Position: s.recorder.Head().Position, Data: s.recorder.Len()})
}

// Despawn discards the entity's history and mesh.
func (s *Session) Despawn() {
	if s.state == StateIdle {
		return
	}
	id, head := s.entityID, s.recorder.Head().Position
	s.state = StateIdle
	s.recorder = nil
	s.samples = s.samples[:0]
	s.mesh.clear()
	s.entityID = uuid.Nil

	s.log.Info("entity despawned", "id", id)
	s.bus.Emit(Event{Type: EventDespawned, EntityID: id, Position: head})
}

func (s *Session) State() SessionState { return s.state }
func (s *Session) EntityID() uuid.UUID { return s.entityID }
func (s *Session) Config() Config      { return s.cfg }

// Recorder is nil while no entity is spawned.
func (s *Session) Recorder() *PathRecorder { return s.recorder }

// Mesh is the most recently built mesh.
func (s *Session) Mesh() *MeshBuffers { return &s.mesh }
