package settings

import (
	"errors"
	"fmt"

	"github.com/oomph-ac/locomotion/game"
)

// Validate returns an error describing every inconsistent value in the settings.
func (s Settings) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(s.Capsule.Radius > 0, "capsule radius must be positive, got %v", s.Capsule.Radius)
	check(s.Capsule.HalfHeight >= s.Capsule.Radius, "capsule half height %v must be at least the radius %v", s.Capsule.HalfHeight, s.Capsule.Radius)

	m := s.Movement
	check(m.WalkSpeed > 0, "walk speed must be positive, got %v", m.WalkSpeed)
	check(m.SprintSpeed >= m.WalkSpeed, "sprint speed %v must be at least the walk speed %v", m.SprintSpeed, m.WalkSpeed)
	check(m.Stamina.Max > 0, "stamina max must be positive, got %v", m.Stamina.Max)
	check(m.Stamina.RegenPerSec >= 0 && m.Stamina.SprintDrainPerSec >= 0 && m.Stamina.SlideDrainPerSec >= 0, "stamina rates must not be negative")
	check(m.Stamina.MinToSprint >= 0 && m.Stamina.MinToSprint <= m.Stamina.Max, "min stamina to sprint %v must be within [0, %v]", m.Stamina.MinToSprint, m.Stamina.Max)
	check(m.Stamina.MinToSlide >= 0 && m.Stamina.MinToSlide <= m.Stamina.Max, "min stamina to slide %v must be within [0, %v]", m.Stamina.MinToSlide, m.Stamina.Max)
	check(m.Slide.MinSpeedToKeep >= 0 && m.Slide.MinStartSpeed >= m.Slide.MinSpeedToKeep, "slide start speed %v must be at least the keep speed %v", m.Slide.MinStartSpeed, m.Slide.MinSpeedToKeep)
	check(m.Slide.MaxSpeedFlat > 0 && m.Slide.MaxSpeedDownhill > 0, "slide speed caps must be positive")
	check(m.Slide.PostSprintGraceTime >= 0, "post sprint grace time must not be negative, got %v", m.Slide.PostSprintGraceTime)
	check(m.Slide.GraceSpeedFactor > 0 && m.Slide.GraceSpeedFactor <= 1, "grace speed factor must be within (0, 1], got %v", m.Slide.GraceSpeedFactor)
	check(m.Ground.WalkableFloorAngleDeg > 0 && m.Ground.WalkableFloorAngleDeg < 90, "walkable floor angle must be within (0, 90), got %v", m.Ground.WalkableFloorAngleDeg)
	check(m.Ground.FloorSweepDistance > m.Ground.FloorHoverDistance, "floor sweep distance %v must exceed the hover distance %v", m.Ground.FloorSweepDistance, m.Ground.FloorHoverDistance)
	check(m.Ground.GravityScale >= 0, "gravity scale must not be negative, got %v", m.Ground.GravityScale)

	p := s.Parkour
	check(p.Detection.FrontCheckDistance > 0 && p.Detection.FrontCheckRadius > 0, "parkour front check distance and radius must be positive")
	check(p.Detection.TopTraceHeight > 0, "parkour top trace height must be positive, got %v", p.Detection.TopTraceHeight)
	check(p.Detection.VaultMaxObstacleHeight <= p.Detection.MantleMaxObstacleHeight, "vault max height %v must not exceed mantle max height %v", p.Detection.VaultMaxObstacleHeight, p.Detection.MantleMaxObstacleHeight)
	check(p.Detection.Tag != "", "parkour tag must not be empty")
	check(p.Landing.CapsuleInflate >= 0 && p.Landing.TraceUp > 0 && p.Landing.TraceDown > 0, "parkour landing inflation and trace lengths must not be negative")
	check(p.Durations.MinPhase > 0, "minimum phase duration must be positive, got %v", p.Durations.MinPhase)
	check(p.Durations.VaultToApex >= 0 && p.Durations.VaultToTarget >= 0 && p.Durations.MantleToApex >= 0 && p.Durations.MantleToTarget >= 0, "parkour durations must not be negative")
	check(p.Safety.FailSafeExtraTime >= 0 && p.Safety.FailSafeMinDelay > 0, "failsafe timing must be positive")
	check(p.Safety.MoveStepBlockAbortTime >= 0 && p.Safety.MoveStepBlockAbortTime < 1, "move step block abort time must be within [0, 1), got %v", p.Safety.MoveStepBlockAbortTime)

	check(s.Presentation.DirectionClampAbs >= 0, "direction clamp must not be negative, got %v", s.Presentation.DirectionClampAbs)
	check(s.Simulation.TickRate > 0, game.ErrorInvalidTickRate, s.Simulation.TickRate)
	check(s.Simulation.HistorySize >= 0, "history size must not be negative, got %v", s.Simulation.HistorySize)

	return errors.Join(errs...)
}
