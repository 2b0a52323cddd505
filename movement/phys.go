package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/game"
)

const (
	// brakingFrictionFactor scales the ground friction while braking.
	brakingFrictionFactor = float32(2)
	// brakeToStopVelocity is the speed under which braking stops the character outright.
	brakeToStopVelocity = float32(10)
)

// Tick advances the component by dt seconds. Stamina and the max speed are updated before the
// physics of the current mode run.
func (c *Component) Tick(dt float32) {
	if dt <= 0 {
		return
	}

	if !c.state.Sprinting {
		c.state.TimeSinceSprintEnded += dt
	}
	c.UpdateStamina(dt)
	c.UpdateMaxSpeed()

	if dt >= game.MinTickTime {
		switch c.mode {
		case ModeWalking:
			c.physWalking(dt)
		case ModeFalling:
			c.physFalling(dt)
		case ModeSlide:
			c.PhysSlide(dt)
		case ModeFlying:
		default:
			assert.IsTrue(false, game.ErrorUnknownMovementMode, c.mode)
		}
	}
	c.pendingInput = mgl32.Vec3{}
}

// inputAcceleration returns the horizontal acceleration requested by the pending input.
func (c *Component) inputAcceleration() mgl32.Vec3 {
	input := game.ClampLength(game.Horizontal(c.pendingInput), 1)
	return input.Mul(c.cfg.Ground.MaxAcceleration)
}

func (c *Component) physWalking(dt float32) {
	c.calcGroundVelocity(dt)
	c.velocity[2] = 0

	delta := c.groundMoveDelta(c.velocity.Mul(dt))
	if hit, blocked := c.SafeMove(delta); blocked {
		c.SlideAlongSurface(delta, 1-hit.Time, c.walkingSlideNormal(hit.Normal))
	}

	if !c.updateFloor() {
		c.setMode(ModeFalling)
	}
}

// calcGroundVelocity applies input acceleration, turning friction and braking to the horizontal
// velocity.
func (c *Component) calcGroundVelocity(dt float32) {
	maxSpeed := c.state.MaxWalkSpeed
	accel := c.inputAcceleration()
	hasInput := accel != (mgl32.Vec3{})

	vel := game.Horizontal(c.velocity)
	speed := vel.Len()
	overMax := speed > maxSpeed

	if !hasInput || overMax {
		vel = brake(vel, dt, c.groundFriction*brakingFrictionFactor, c.brakingDeceleration)
		if overMax && hasInput && vel.Len() < maxSpeed {
			vel = game.SafeNormal(vel).Mul(maxSpeed)
		}
	}
	if hasInput {
		dir := game.SafeNormal(accel)
		speed = vel.Len()
		vel = vel.Sub(vel.Sub(dir.Mul(speed)).Mul(min(dt*c.groundFriction, 1)))
		if !overMax {
			vel = game.ClampLength(vel.Add(accel.Mul(dt)), maxSpeed)
		}
	}
	c.velocity = mgl32.Vec3{vel[0], vel[1], c.velocity[2]}
}

// brake decelerates the velocity by friction and a constant deceleration without reversing it.
func brake(vel mgl32.Vec3, dt, friction, deceleration float32) mgl32.Vec3 {
	if vel == (mgl32.Vec3{}) {
		return vel
	}
	rev := vel.Mul(-friction).Sub(game.SafeNormal(vel).Mul(deceleration))
	next := vel.Add(rev.Mul(dt))
	if next.Dot(vel) <= 0 || next.Len() < brakeToStopVelocity {
		return mgl32.Vec3{}
	}
	return next
}

// groundMoveDelta keeps a horizontal move on the plane of the current floor.
func (c *Component) groundMoveDelta(delta mgl32.Vec3) mgl32.Vec3 {
	n := c.floor.Normal
	if !c.floor.Walkable || n[2] <= game.KindaSmallNumber || n[2] >= 1-game.KindaSmallNumber {
		return delta
	}
	delta[2] = -(n[0]*delta[0] + n[1]*delta[1]) / n[2]
	return delta
}

// walkingSlideNormal stops walking characters from sliding up walls and down ceilings.
func (c *Component) walkingSlideNormal(n mgl32.Vec3) mgl32.Vec3 {
	if c.isWalkable(n) {
		return n
	}
	if flat := game.SafeNormal(game.Horizontal(n)); flat != (mgl32.Vec3{}) {
		return flat
	}
	return n
}

func (c *Component) physFalling(dt float32) {
	hv := game.Horizontal(c.velocity)
	maxH := max(c.state.MaxWalkSpeed, hv.Len())
	hv = game.ClampLength(hv.Add(c.inputAcceleration().Mul(c.cfg.Ground.AirControl*dt)), maxH)
	c.velocity = mgl32.Vec3{hv[0], hv[1], c.velocity[2] + game.GravityZ*c.gravityScale*dt}

	delta := c.velocity.Mul(dt)
	if hit, blocked := c.SafeMove(delta); blocked {
		if c.velocity[2] <= 0 && c.isWalkable(hit.ImpactNormal) {
			c.land()
			return
		}
		c.SlideAlongSurface(delta, 1-hit.Time, hit.Normal)
		if c.velocity.Dot(hit.Normal) < 0 {
			c.velocity = game.PlaneProject(c.velocity, hit.Normal)
		}
	}

	if c.velocity[2] <= 0 {
		if floor := c.FindFloor(); floor.Walkable && floor.Distance <= c.cfg.Ground.FloorHoverDistance+floorTolerance {
			c.land()
		}
	}
}

func (c *Component) land() {
	c.velocity[2] = 0
	if c.updateFloor() {
		c.setMode(ModeWalking)
	}
}
