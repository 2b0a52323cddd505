package movement

import "github.com/oomph-ac/locomotion/game"

// UpdateStamina drains stamina while sprinting on the ground or sliding and regenerates it
// otherwise. Sprinting is force-stopped once stamina runs out.
func (c *Component) UpdateStamina(dt float32) {
	if dt <= 0 {
		return
	}

	cfg := c.cfg.Stamina
	switch {
	case c.state.Sprinting && c.MovingOnGround() && !c.state.SlideActive:
		c.state.Stamina -= cfg.SprintDrainPerSec * dt
	case c.state.SlideActive:
		c.state.Stamina -= cfg.SlideDrainPerSec * dt
	default:
		c.state.Stamina += cfg.RegenPerSec * dt
	}
	c.state.Stamina = game.ClampFloat(c.state.Stamina, 0, cfg.Max)

	if c.state.Sprinting && c.state.Stamina < game.KindaSmallNumber {
		c.state.Sprinting = false
		c.state.TimeSinceSprintEnded = 0
	}
}

// UpdateMaxSpeed decides whether the character sprints this tick and derives the max walk speed.
func (c *Component) UpdateMaxSpeed() {
	shouldSprint := c.state.SprintRequested &&
		!c.state.SlideActive &&
		c.Grounded() &&
		c.state.Stamina >= c.cfg.Stamina.MinToSprint

	if shouldSprint {
		c.state.Sprinting = true
	} else if c.state.Sprinting {
		c.state.Sprinting = false
		c.state.TimeSinceSprintEnded = 0
	}

	if c.state.Sprinting {
		c.state.MaxWalkSpeed = c.cfg.SprintSpeed
	} else {
		c.state.MaxWalkSpeed = c.cfg.WalkSpeed
	}
}

// CanStartSlide returns true if the character is grounded, not sliding, has enough stamina and is
// either fast enough or fast enough for the relaxed threshold within the post sprint grace window.
func (c *Component) CanStartSlide() bool {
	if c.state.SlideActive || !c.Grounded() {
		return false
	}
	if c.state.Stamina < c.cfg.Stamina.MinToSlide {
		return false
	}

	slide := c.cfg.Slide
	speed := c.HorizontalSpeed()
	hasSpeed := speed >= slide.MinStartSpeed
	inGrace := c.state.TimeSinceSprintEnded <= slide.PostSprintGraceTime && speed >= slide.MinStartSpeed*slide.GraceSpeedFactor
	return hasSpeed || inGrace
}

// StartSlide enters the slide mode if CanStartSlide allows it.
func (c *Component) StartSlide() bool {
	if !c.CanStartSlide() {
		return false
	}
	c.enterSlide()
	return true
}

// StopSlide leaves the slide mode if a slide is active.
func (c *Component) StopSlide() bool {
	if !c.state.SlideActive {
		return false
	}
	c.exitSlide()
	return true
}

func (c *Component) enterSlide() {
	c.state.SlideActive = true

	c.defaultGroundFriction = c.groundFriction
	c.defaultBrakingDeceleration = c.brakingDeceleration
	c.groundFriction = c.cfg.Slide.GroundFriction
	c.brakingDeceleration = 0

	c.setMode(ModeSlide)
}

func (c *Component) exitSlide() {
	c.state.SlideActive = false

	c.groundFriction = c.defaultGroundFriction
	c.brakingDeceleration = c.defaultBrakingDeceleration

	c.setMode(ModeWalking)
}
