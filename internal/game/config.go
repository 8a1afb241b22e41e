package game

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Head movement defaults.
const (
	DefaultMoveSpeed       = 5.0  // world units per second
	DefaultTurnSpeed       = 90.0 // degrees per second at full steering
	DefaultSegmentLength   = 0.25 // arc length between recorded samples
	DefaultMaxBodySegments = 100
)

// Tube tessellation defaults.
const (
	DefaultRadius               = 0.5
	DefaultCrossSection         = 12
	DefaultTailRadiusMultiplier = 0.35
	MinCrossSection             = 3
)

// ConfigEnv names the environment variable consulted when no config path is given.
const ConfigEnv = "SNEJK_CONFIG"

var ErrConfigViolation = errors.New("configuration violation")

// MovementConfig drives the head and the path history.
type MovementConfig struct {
	MoveSpeed       float64 `yaml:"move_speed"`
	TurnSpeed       float64 `yaml:"turn_speed"` // degrees per second
	SegmentLength   float64 `yaml:"segment_length"`
	MaxBodySegments int     `yaml:"max_body_segments"`
}

// TessellationConfig is supplied per build and never mutated by the builder.
type TessellationConfig struct {
	Radius                 float64 `yaml:"radius"`
	CrossSectionResolution int     `yaml:"cross_section_resolution"`
	EnableTapering         bool    `yaml:"enable_tapering"`
	TailRadiusMultiplier   float64 `yaml:"tail_radius_multiplier"`
}

// SpawnConfig is the pose the head starts from.
type SpawnConfig struct {
	Position [3]float64 `yaml:"position"`
	Heading  float64    `yaml:"heading"` // degrees about +Y, 0 faces +Z
}

type Config struct {
	Movement MovementConfig     `yaml:"movement"`
	Tube     TessellationConfig `yaml:"tube"`
	Spawn    SpawnConfig        `yaml:"spawn"`
}

func DefaultConfig() Config {
	return Config{
		Movement: MovementConfig{
			MoveSpeed:       DefaultMoveSpeed,
			TurnSpeed:       DefaultTurnSpeed,
			SegmentLength:   DefaultSegmentLength,
			MaxBodySegments: DefaultMaxBodySegments,
		},
		Tube: TessellationConfig{
			Radius:                 DefaultRadius,
			CrossSectionResolution: DefaultCrossSection,
			EnableTapering:         true,
			TailRadiusMultiplier:   DefaultTailRadiusMultiplier,
		},
	}
}

// Validate reports every violated field at once. The simulation never
// re-checks these per tick, so configs must pass here first.
func (c Config) Validate() error {
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrConfigViolation}, args...)...))
	}

	m := c.Movement
	if m.MoveSpeed <= 0 {
		violation("move_speed must be > 0, got %g", m.MoveSpeed)
	}
	if m.TurnSpeed < 0 {
		violation("turn_speed must be >= 0, got %g", m.TurnSpeed)
	}
	if m.SegmentLength <= 0 {
		violation("segment_length must be > 0, got %g", m.SegmentLength)
	}
	if m.MaxBodySegments < 1 {
		violation("max_body_segments must be >= 1, got %d", m.MaxBodySegments)
	}

	t := c.Tube
	if t.Radius <= 0 {
		violation("radius must be > 0, got %g", t.Radius)
	}
	if t.CrossSectionResolution < MinCrossSection {
		violation("cross_section_resolution must be >= %d, got %d", MinCrossSection, t.CrossSectionResolution)
	}
	if t.TailRadiusMultiplier <= 0 || t.TailRadiusMultiplier > 1 {
		violation("tail_radius_multiplier must be in (0,1], got %g", t.TailRadiusMultiplier)
	}

	return errors.Join(errs...)
}

// LoadConfig reads a YAML config on top of the defaults.
// An empty path falls back to $SNEJK_CONFIG; with neither set the defaults
// are returned. The result is always validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
