package world

import (
	"fmt"
	"os"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Level describes the solids of a scene in a serializable form.
type Level struct {
	Name  string     `yaml:"name"`
	Boxes []BoxDef  `yaml:"boxes"`
	Ramps []RampDef `yaml:"ramps"`
}

// BoxDef is an axis-aligned box given by its minimum and maximum corners.
type BoxDef struct {
	Min  []float32 `yaml:"min"`
	Max  []float32 `yaml:"max"`
	Tags []string  `yaml:"tags"`
}

// RampDef is a ramp given by its XY footprint, base height, rise height and rise direction
// (one of +x, -x, +y, -y).
type RampDef struct {
	Min    []float32 `yaml:"min"`
	Max    []float32 `yaml:"max"`
	Base   float32   `yaml:"base"`
	Height float32   `yaml:"height"`
	Rise   string    `yaml:"rise"`
	Tags   []string  `yaml:"tags"`
}

// LoadLevel reads and parses a level file.
func LoadLevel(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("read level: %w", err)
	}
	return ParseLevel(data)
}

// ParseLevel parses a YAML level.
func ParseLevel(data []byte) (Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Level{}, fmt.Errorf("parse level: %w", err)
	}
	return l, nil
}

// Build validates the level and creates a scene from it.
func (l Level) Build(log *zap.Logger) (*Scene, error) {
	s := NewScene(log)
	for i, def := range l.Boxes {
		bb, err := def.box()
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		s.AddBox(bb, collision.Tags(def.Tags...))
	}
	for i, def := range l.Ramps {
		r, err := def.ramp()
		if err != nil {
			return nil, fmt.Errorf("ramp %d: %w", i, err)
		}
		s.AddRamp(r, collision.Tags(def.Tags...))
	}
	s.log.Info("built level", zap.String("name", l.Name), zap.Int("boxes", len(l.Boxes)), zap.Int("ramps", len(l.Ramps)))
	return s, nil
}

func (def BoxDef) box() (cube.BBox, error) {
	if len(def.Min) != 3 || len(def.Max) != 3 {
		return cube.BBox{}, fmt.Errorf("min and max need 3 components, got %d and %d", len(def.Min), len(def.Max))
	}
	for i := range 3 {
		if def.Max[i] <= def.Min[i] {
			return cube.BBox{}, fmt.Errorf("max %v must exceed min %v", def.Max, def.Min)
		}
	}
	return cube.Box(def.Min[0], def.Min[1], def.Min[2], def.Max[0], def.Max[1], def.Max[2]), nil
}

func (def RampDef) ramp() (Ramp, error) {
	if len(def.Min) != 2 || len(def.Max) != 2 {
		return Ramp{}, fmt.Errorf("min and max need 2 components, got %d and %d", len(def.Min), len(def.Max))
	}
	if def.Max[0] <= def.Min[0] || def.Max[1] <= def.Min[1] {
		return Ramp{}, fmt.Errorf("max %v must exceed min %v", def.Max, def.Min)
	}
	if def.Height <= 0 {
		return Ramp{}, fmt.Errorf("height must be positive, got %v", def.Height)
	}

	r := Ramp{
		Min:    mgl32.Vec2{def.Min[0], def.Min[1]},
		Max:    mgl32.Vec2{def.Max[0], def.Max[1]},
		BaseZ:  def.Base,
		Height: def.Height,
	}
	switch strings.ToLower(def.Rise) {
	case "+x", "x", "":
		r.Rise = RisePosX
	case "-x":
		r.Rise = RiseNegX
	case "+y", "y":
		r.Rise = RisePosY
	case "-y":
		r.Rise = RiseNegY
	default:
		return Ramp{}, fmt.Errorf("unknown rise direction %q", def.Rise)
	}
	return r, nil
}

// DefaultLevel returns the reference course: a ground slab, a low parkourable crate, a
// parkourable ledge, an untagged crate, a wall too tall to traverse and a long downhill ramp.
// Obstacle heights are measured from the capsule center of a character standing on the ground, so
// the crate sits 60 above it, the ledge 110 and the wall well out of reach. The course runs along
// +X with the character spawning at the origin.
func DefaultLevel() Level {
	return Level{
		Name: "reference",
		Boxes: []BoxDef{
			{Min: []float32{-2000, -2000, -100}, Max: []float32{6000, 2000, 0}},
			{Min: []float32{300, -150, 0}, Max: []float32{360, 150, 150}, Tags: []string{game.ParkourableTag}},
			{Min: []float32{900, -150, 0}, Max: []float32{1200, 150, 200}, Tags: []string{game.ParkourableTag}},
			{Min: []float32{300, 400, 0}, Max: []float32{360, 700, 150}},
			{Min: []float32{1600, -150, 0}, Max: []float32{1700, 150, 400}, Tags: []string{game.ParkourableTag}},
		},
		Ramps: []RampDef{
			{Min: []float32{2000, -300}, Max: []float32{4000, 300}, Base: 0, Height: 352, Rise: "-x"},
		},
	}
}
