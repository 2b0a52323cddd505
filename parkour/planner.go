package parkour

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/settings"
)

// Plan is a validated arc ready to be executed.
type Plan struct {
	Type   Type
	Apex   mgl32.Vec3
	Target mgl32.Vec3

	ToApex   float32
	ToTarget float32
}

// Total returns the planned duration of both phases.
func (p Plan) Total() float32 {
	return p.ToApex + p.ToTarget
}

// Durations returns the phase durations for the traversal type.
func Durations(t Type, cfg settings.Durations) (toApex, toTarget float32) {
	if t == TypeVault {
		return cfg.VaultToApex, cfg.VaultToTarget
	}
	return cfg.MantleToApex, cfg.MantleToTarget
}

// NewPlan computes the landing and apex points for the obstacle. It fails if no landing spot
// exists behind the obstacle or if a mantle apex is blocked.
func NewPlan(body Body, o Obstacle, cfg settings.Parkour) (Plan, error) {
	target, err := Landing(body, o.TopPoint, cfg.Landing)
	if err != nil {
		return Plan{}, err
	}
	apex, err := Apex(body, o.Type, o.TopPoint, cfg)
	if err != nil {
		return Plan{}, err
	}

	p := Plan{Type: o.Type, Apex: apex, Target: target}
	p.ToApex, p.ToTarget = Durations(o.Type, cfg.Durations)
	return p, nil
}

// Landing finds where the body comes down past the top point. The ground is traced below a point
// ahead of the obstacle and the capsule, slightly inflated, must fit there or a little further
// ahead.
func Landing(body Body, top mgl32.Vec3, cfg settings.Landing) (mgl32.Vec3, error) {
	q, filter := body.Query(), body.Filter()
	capsule, fwd := body.Capsule(), body.Forward()

	desired := top.Add(fwd.Mul(capsule.Radius + cfg.ForwardOffset + cfg.ForwardExtra))
	ground, ok := q.LineTrace(desired.Add(mgl32.Vec3{0, 0, cfg.TraceUp}), desired.Sub(mgl32.Vec3{0, 0, cfg.TraceDown}), filter)
	if !ok {
		return mgl32.Vec3{}, ErrNoLandingGround
	}

	candidate := ground.ImpactPoint.Add(mgl32.Vec3{0, 0, capsule.HalfHeight + cfg.UpOffset})
	radius := capsule.Radius + cfg.CapsuleInflate
	if collision.Fits(q, candidate, radius, capsule.HalfHeight, filter) {
		return candidate, nil
	}
	candidate = candidate.Add(fwd.Mul(capsule.Radius * cfg.RetryForwardFactor))
	if collision.Fits(q, candidate, radius, capsule.HalfHeight, filter) {
		return candidate, nil
	}
	return mgl32.Vec3{}, ErrLandingBlocked
}

// Apex returns the transition point above the obstacle. Vault apexes are accepted as is, mantle
// apexes must fit the capsule and are raised once if they do not.
func Apex(body Body, t Type, top mgl32.Vec3, cfg settings.Parkour) (mgl32.Vec3, error) {
	capsule := body.Capsule()
	apex := top.Add(body.Forward().Mul(capsule.Radius + cfg.Apex.ForwardExtra))
	apex[2] = top.Z() + capsule.HalfHeight + cfg.Apex.UpExtra
	if t == TypeVault {
		return apex, nil
	}

	q, filter := body.Query(), body.Filter()
	radius := capsule.Radius + cfg.Landing.CapsuleInflate
	if collision.Fits(q, apex, radius, capsule.HalfHeight, filter) {
		return apex, nil
	}
	apex[2] += cfg.Apex.RetryRaise
	if collision.Fits(q, apex, radius, capsule.HalfHeight, filter) {
		return apex, nil
	}
	return mgl32.Vec3{}, ErrApexBlocked
}
