package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/world"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoDuration = oerror.New("scenario duration must be positive")
	ErrNoName     = oerror.New("scenario has no name")
)

// Scenario is a scripted input timeline played against a level.
type Scenario struct {
	Name string `yaml:"name"`
	// Level is the path of a level file, relative to the scenario file. Inline levels take
	// precedence and the reference level is used when neither is set.
	Level       string       `yaml:"level"`
	InlineLevel *world.Level `yaml:"inline_level"`

	Spawn Spawn `yaml:"spawn"`
	// TickRate overrides the simulation tick rate from the settings when positive.
	TickRate int     `yaml:"tick_rate"`
	Duration float32 `yaml:"duration"`

	Timeline []Step `yaml:"timeline"`
}

// Spawn is where the character starts. A zero Z places the character on a floor at height zero.
type Spawn struct {
	X   float32 `yaml:"x"`
	Y   float32 `yaml:"y"`
	Z   float32 `yaml:"z"`
	Yaw float32 `yaml:"yaw"`
}

// Step is an input event due at a point in simulation time.
type Step struct {
	At              float32 `yaml:"at"`
	character.Event `yaml:",inline"`
}

// Load reads a scenario file. A relative level path is resolved against the file's directory.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	if sc.Level != "" && !filepath.IsAbs(sc.Level) {
		sc.Level = filepath.Join(filepath.Dir(path), sc.Level)
	}
	return sc, nil
}

// Parse decodes and validates a scenario. Steps are ordered by time, keeping the file order of
// steps due at the same time.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	slices.SortStableFunc(sc.Timeline, func(a, b Step) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	return sc, nil
}

// Validate checks the scenario for missing fields and unknown events.
func (sc Scenario) Validate() error {
	if sc.Name == "" {
		return ErrNoName
	}
	if sc.Duration <= 0 {
		return ErrNoDuration
	}
	for i, step := range sc.Timeline {
		if !knownEvent(step.Kind) {
			return fmt.Errorf("step %d: %w: %q", i, character.ErrUnknownEvent, step.Kind)
		}
		if step.At < 0 {
			return fmt.Errorf("step %d: negative time %v", i, step.At)
		}
	}
	return nil
}

func knownEvent(kind character.EventKind) bool {
	switch kind {
	case character.EventMove, character.EventLook,
		character.EventSprintStart, character.EventSprintStop,
		character.EventCrouchStart, character.EventCrouchStop,
		character.EventJump, character.EventJumpStart, character.EventJumpStop,
		character.EventParkour:
		return true
	}
	return false
}

// level returns the level the scenario runs in.
func (sc Scenario) level() (world.Level, error) {
	if sc.InlineLevel != nil {
		return *sc.InlineLevel, nil
	}
	if sc.Level != "" {
		return world.LoadLevel(sc.Level)
	}
	return world.DefaultLevel(), nil
}

func (s Spawn) location(floorOffset float32) mgl32.Vec3 {
	if s.Z == 0 {
		return mgl32.Vec3{s.X, s.Y, floorOffset}
	}
	return mgl32.Vec3{s.X, s.Y, s.Z}
}
