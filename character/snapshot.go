package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/parkour"
)

// Snapshot is the read only view of a character handed to animation and UI once per tick.
type Snapshot struct {
	Time float64

	StaminaFraction float32
	Grounded        bool
	InAir           bool
	Sprinting       bool
	Sliding         bool
	Crouched        bool
	JumpRequested   bool

	// SpeedRatio is 0 at rest, 1 at walk speed and 2 at sprint speed.
	SpeedRatio float32
	// Direction is the signed angle in degrees between the horizontal velocity and the facing.
	Direction        float32
	VerticalVelocity float32

	Parkouring  bool
	Vaulting    bool
	Mantling    bool
	LastOutcome parkour.Outcome

	Location mgl32.Vec3
	Velocity mgl32.Vec3
	Mode     movement.Mode
}

// Snapshot captures the presentation state of the character.
func (c *Character) Snapshot() Snapshot {
	m := c.move
	vel := m.Velocity()
	return Snapshot{
		Time:             c.sched.Now(),
		StaminaFraction:  m.StaminaFraction(),
		Grounded:         m.Grounded(),
		InAir:            !m.Grounded(),
		Sprinting:        m.IsSprinting(),
		Sliding:          m.IsSliding(),
		Crouched:         m.IsCrouching(),
		JumpRequested:    c.jumpRequested,
		SpeedRatio:       SpeedRatio(game.HorizontalLen(vel), m.WalkSpeed(), m.SprintSpeed()),
		Direction:        game.ClampFloat(game.CalculateDirection(vel, m.Yaw()), -c.cfg.Presentation.DirectionClampAbs, c.cfg.Presentation.DirectionClampAbs),
		VerticalVelocity: vel.Z(),
		Parkouring:       c.park.Active(),
		Vaulting:         c.park.Vaulting(),
		Mantling:         c.park.Mantling(),
		LastOutcome:      c.park.LastOutcome(),
		Location:         m.Location(),
		Velocity:         vel,
		Mode:             m.Mode(),
	}
}

// SpeedRatio maps a horizontal speed to 0..1 up to the walk speed and 1..2 between the walk and
// sprint speeds.
func SpeedRatio(speed, walk, sprint float32) float32 {
	walk = max(walk, 1)
	sprint = max(sprint, walk+1)
	if speed <= walk {
		return speed / walk
	}
	return 1 + game.ClampFloat((speed-walk)/(sprint-walk), 0, 1)
}
