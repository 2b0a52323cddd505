package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
)

// floorTolerance is how far the floor distance may drift from the hover distance before the
// capsule is snapped back.
const floorTolerance = float32(0.25)

// FloorSample is the result of a floor query below the capsule.
type FloorSample struct {
	Hit collision.Hit
	// Blocking is true if anything was found below the capsule within the sweep distance.
	Blocking bool
	Walkable bool
	// Distance is the gap between the bottom of the capsule and the floor.
	Distance float32
	Normal   mgl32.Vec3
	// SlopeAngle is the floor inclination in radians.
	SlopeAngle float32
}

// SlopeDegrees returns the floor inclination in degrees.
func (f FloorSample) SlopeDegrees() float32 {
	return mgl32.RadToDeg(f.SlopeAngle)
}

// FindFloor sweeps the capsule down from its current location and describes the floor below it.
func (c *Component) FindFloor() FloorSample {
	dist := c.cfg.Ground.FloorSweepDistance
	start := c.location
	hit, ok := c.query.SweepCapsule(start, start.Sub(mgl32.Vec3{0, 0, dist}), c.capsule.Radius, c.capsule.HalfHeight, c.filter)
	if !ok {
		return FloorSample{}
	}

	n := game.SafeNormal(hit.ImpactNormal)
	sample := FloorSample{
		Hit:        hit,
		Blocking:   true,
		Normal:     n,
		SlopeAngle: game.SlopeAngle(n),
		Walkable:   c.isWalkable(n),
	}
	if !hit.StartPenetrating {
		sample.Distance = hit.Time * dist
	}
	return sample
}

// isWalkable returns true if a surface with the normal can be stood on.
func (c *Component) isWalkable(n mgl32.Vec3) bool {
	return n[2] >= math32.Cos(mgl32.DegToRad(c.cfg.Ground.WalkableFloorAngleDeg))-game.KindaSmallNumber
}

// updateFloor resamples the floor and keeps the capsule hovering above it. It returns false if
// there is no walkable floor below the capsule.
func (c *Component) updateFloor() bool {
	c.floor = c.FindFloor()
	if !c.floor.Blocking || !c.floor.Walkable {
		return false
	}

	hover := c.cfg.Ground.FloorHoverDistance
	if c.floor.Hit.StartPenetrating || math32.Abs(c.floor.Distance-hover) > floorTolerance {
		c.SafeMove(mgl32.Vec3{0, 0, hover - c.floor.Distance})
		c.floor.Distance = hover
	}
	return true
}
