package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"go.uber.org/zap"
)

const (
	// moveSkin is the distance kept between the capsule and a surface it was stopped by.
	moveSkin = float32(0.1)
	// penetrationPullback is added to the depth when pushing the capsule out of a body.
	penetrationPullback = float32(0.125)
)

// SafeMove sweeps the capsule by delta and moves it as far as it can go. It returns the blocking
// hit, if any. A capsule that starts inside a body is pushed out first when there is room.
func (c *Component) SafeMove(delta mgl32.Vec3) (collision.Hit, bool) {
	if delta.Len() <= game.SmallNumber {
		return collision.Hit{}, false
	}

	hit, blocked := c.sweep(delta)
	if blocked && hit.StartPenetrating {
		if !c.resolvePenetration(hit) {
			return hit, true
		}
		hit, blocked = c.sweep(delta)
		if blocked && hit.StartPenetrating {
			return hit, true
		}
	}
	if !blocked {
		c.location = c.location.Add(delta)
		return collision.Hit{}, false
	}

	back := math32.Min(moveSkin, delta.Len()*hit.Time)
	c.location = hit.Location.Sub(game.SafeNormal(delta).Mul(back))
	return hit, true
}

func (c *Component) sweep(delta mgl32.Vec3) (collision.Hit, bool) {
	return c.query.SweepCapsule(c.location, c.location.Add(delta), c.capsule.Radius, c.capsule.HalfHeight, c.filter)
}

// resolvePenetration pushes the capsule out of the body described by the hit if the adjusted
// location is free.
func (c *Component) resolvePenetration(hit collision.Hit) bool {
	adjusted := c.location.Add(hit.Normal.Mul(hit.PenetrationDepth + penetrationPullback))
	if !collision.Fits(c.query, adjusted, c.capsule.Radius, c.capsule.HalfHeight, c.filter) {
		c.log.Debug("unable to resolve penetration", zap.Any("location", c.location), zap.Float32("depth", hit.PenetrationDepth))
		return false
	}
	c.location = adjusted
	return true
}

// SlideAlongSurface moves the remaining fraction of delta along the plane of the surface that
// blocked it. When a second surface blocks the slide, the move continues along the crease between
// both planes. It returns the fraction of delta that was applied.
func (c *Component) SlideAlongSurface(delta mgl32.Vec3, remaining float32, normal mgl32.Vec3) float32 {
	if remaining <= 0 {
		return 0
	}
	slideDelta := game.PlaneProject(delta, normal).Mul(remaining)
	if slideDelta.Dot(delta) <= 0 {
		return 0
	}

	hit, blocked := c.SafeMove(slideDelta)
	if !blocked {
		return remaining
	}
	percent := hit.Time * remaining
	if hit.StartPenetrating {
		return percent
	}

	crease := game.SafeNormal(normal.Cross(hit.Normal))
	if crease == (mgl32.Vec3{}) {
		return percent
	}
	creaseDelta := crease.Mul(slideDelta.Dot(crease) * (1 - hit.Time))
	if creaseDelta.Dot(delta) <= 0 {
		return percent
	}
	if hit2, blocked2 := c.SafeMove(creaseDelta); blocked2 {
		return percent + (1-hit.Time)*remaining*hit2.Time
	}
	return percent + (1-hit.Time)*remaining
}
