package parkour

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/timer"
)

// Type is the kind of traversal chosen for an obstacle.
type Type uint8

const (
	TypeNone Type = iota
	TypeVault
	TypeMantle
)

func (t Type) String() string {
	switch t {
	case TypeVault:
		return "vault"
	case TypeMantle:
		return "mantle"
	}
	return "none"
}

// Phase is the segment of the arc being executed.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseToApex
	PhaseToTarget
)

func (p Phase) String() string {
	switch p {
	case PhaseToApex:
		return "to_apex"
	case PhaseToTarget:
		return "to_target"
	}
	return "none"
}

// Outcome is how the last arc ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCompleted
	// OutcomeInterrupted is reported for arcs stopped by an unrecoverable block or the failsafe.
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeInterrupted:
		return "interrupted"
	}
	return "none"
}

// Body is the character the parkour executor drives. It is implemented by *movement.Component.
type Body interface {
	Location() mgl32.Vec3
	Forward() mgl32.Vec3
	Capsule() settings.Capsule

	Query() collision.QueryService
	Filter() collision.Filter

	SafeMove(delta mgl32.Vec3) (collision.Hit, bool)
	Teleport(pos mgl32.Vec3)
	SetVelocity(v mgl32.Vec3)

	LockInput()
	UnlockInput()
	InputLocked() bool
}

// CueSink receives animation cues for arcs. Cues never affect the simulation.
type CueSink interface {
	CueStarted(t Type)
	CueEnded(t Type, outcome Outcome)
}

// Arc is an arc in progress. The executor holds a pointer to the active arc and nil while idle, so
// an arc always has a type and a phase.
type Arc struct {
	Type  Type
	Phase Phase

	Start  mgl32.Vec3
	Apex   mgl32.Vec3
	Target mgl32.Vec3

	// Elapsed and Duration describe the current phase only.
	Elapsed  float32
	Duration float32

	toTarget float32
	failsafe timer.Handle
}

// Alpha returns the progress of the current phase, clamped to [0, 1].
func (a *Arc) Alpha() float32 {
	if a.Duration <= 0 {
		return 1
	}
	return game.ClampFloat(a.Elapsed/a.Duration, 0, 1)
}

// Endpoints returns the positions the current phase interpolates between.
func (a *Arc) Endpoints() (from, to mgl32.Vec3) {
	if a.Phase == PhaseToTarget {
		return a.Apex, a.Target
	}
	return a.Start, a.Apex
}
