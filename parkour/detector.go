package parkour

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/settings"
)

// topTraceInset moves the top trace off the front face and into the obstacle.
const topTraceInset = float32(1)

// Obstacle is a traversable obstacle found in front of a body.
type Obstacle struct {
	Front collision.Hit
	Top   collision.Hit
	// TopPoint is where the top trace met the obstacle's upper surface.
	TopPoint mgl32.Vec3
	// Height is the height of TopPoint above the body's location.
	Height float32
	Type   Type
}

// Classify picks the traversal type for an obstacle height. Obstacles taller than the mantle limit
// are not traversable.
func Classify(height float32, cfg settings.Detection) Type {
	switch {
	case height <= cfg.VaultMaxObstacleHeight:
		return TypeVault
	case height <= cfg.MantleMaxObstacleHeight:
		return TypeMantle
	}
	return TypeNone
}

// Detect probes for a parkourable obstacle in front of the body. A sphere is swept forward from
// chest height and, if it hits a tagged body, a line is traced down through the hit to find the
// obstacle's top. Detect only reads the scene.
func Detect(body Body, cfg settings.Detection) (Obstacle, error) {
	q, filter := body.Query(), body.Filter()
	loc, fwd := body.Location(), body.Forward()

	start := loc.Add(mgl32.Vec3{0, 0, cfg.ChestHeight})
	front, ok := q.SweepSphere(start, start.Add(fwd.Mul(cfg.FrontCheckDistance)), cfg.FrontCheckRadius, filter)
	if !ok {
		return Obstacle{}, ErrNoObstacle
	}
	if !front.Tags.Has(collision.NewTag(cfg.Tag)) {
		return Obstacle{Front: front}, ErrNotParkourable
	}

	probe := front.ImpactPoint.Sub(game.SafeNormal(game.Horizontal(front.ImpactNormal)).Mul(topTraceInset))
	up := mgl32.Vec3{0, 0, cfg.TopTraceHeight}
	top, ok := q.LineTrace(probe.Add(up), probe.Sub(up), filter)
	if !ok {
		return Obstacle{Front: front}, ErrNoTopSurface
	}

	o := Obstacle{
		Front:    front,
		Top:      top,
		TopPoint: top.ImpactPoint,
		Height:   top.ImpactPoint.Z() - loc.Z(),
	}
	if o.Type = Classify(o.Height, cfg); o.Type == TypeNone {
		return o, ErrObstacleTooTall
	}
	return o, nil
}
