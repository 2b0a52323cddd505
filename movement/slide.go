package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"go.uber.org/zap"
)

// PhysSlide integrates one tick of the slide. Velocity is kept on the floor plane: steering input
// always applies, slopes pull the character downhill and brake it when moving uphill, and flat
// floors decay the slide. The slide ends when the floor is lost or the speed drops too low.
func (c *Component) PhysSlide(dt float32) {
	if dt < game.KindaSmallNumber {
		return
	}

	c.floor = c.FindFloor()
	if !c.floor.Blocking || !c.floor.Walkable {
		c.exitSlide()
		c.setMode(ModeFalling)
		c.log.Debug("slide lost floor", zap.Any("location", c.location))
		return
	}

	cfg := c.cfg.Slide
	floorNormal := c.floor.Normal
	slopeAngle := c.floor.SlopeAngle
	onSlope := mgl32.RadToDeg(slopeAngle) >= cfg.SlopeAngleMinDeg
	downhill := game.SafeNormal(game.PlaneProject(game.GravityDir, floorNormal))

	c.velocity = game.PlaneProject(c.velocity, floorNormal)
	if c.velocity.Len() < cfg.MinSpeedToKeep {
		c.exitSlide()
		return
	}

	velDir := game.SafeNormal(c.velocity)
	alongDownhill := velDir.Dot(downhill)

	var accel mgl32.Vec3
	if inputDir := game.SafeNormal(game.PlaneProject(c.pendingInput, floorNormal)); inputDir != (mgl32.Vec3{}) {
		accel = accel.Add(inputDir.Mul(cfg.SteerAccel))
	}
	if onSlope && downhill != (mgl32.Vec3{}) {
		strength := game.ClampFloat(math32.Sin(slopeAngle), 0, 1)
		accel = accel.Add(downhill.Mul(cfg.DownhillAccel * strength))
		if alongDownhill < cfg.UphillAlignment {
			accel = accel.Sub(velDir.Mul(cfg.UphillDecel))
		}
	} else {
		accel = accel.Sub(velDir.Mul(cfg.FlatDecel))
	}

	c.velocity = game.PlaneProject(c.velocity.Add(accel.Mul(dt)), floorNormal)
	maxSpeed := cfg.MaxSpeedFlat
	if onSlope {
		maxSpeed = cfg.MaxSpeedDownhill
	}
	c.velocity = game.ClampLength(c.velocity, maxSpeed)
	if c.velocity.Len() < cfg.MinSpeedToKeep {
		c.exitSlide()
		return
	}

	delta := c.velocity.Mul(dt)
	if hit, blocked := c.SafeMove(delta); blocked {
		c.SlideAlongSurface(delta, 1-hit.Time, hit.Normal)
		c.velocity = game.PlaneProject(c.velocity, hit.Normal)
	}
}
