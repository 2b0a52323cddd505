package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
)

// sweepBox sweeps the shape against an axis-aligned box by tracing the shape's center against the
// box grown by the shape's extents.
func sweepBox(bb cube.BBox, start, end mgl32.Vec3, shape collision.Shape) (collision.Hit, bool) {
	inflated := game.InflateBox(bb, shape.Extents().Sub(mgl32.Vec3{contactSlop, contactSlop, contactSlop}))
	if game.PointInsideBox(inflated, start) {
		n, depth := game.BoxFaceNormal(inflated, start)
		return collision.Hit{
			Location:         start,
			ImpactPoint:      game.ClosestPointOnBox(bb, start),
			Normal:           n,
			ImpactNormal:     n,
			PenetrationDepth: depth,
			StartPenetrating: true,
		}, true
	}

	travel := end.Sub(start).Len()
	if travel <= game.SmallNumber {
		return collision.Hit{}, false
	}

	res, ok := trace.BBoxIntercept(inflated, start, end)
	if !ok {
		return collision.Hit{}, false
	}
	pos := res.Position()
	n, _ := game.BoxFaceNormal(inflated, pos)
	return collision.Hit{
		Time:         game.ClampFloat(pos.Sub(start).Len()/travel, 0, 1),
		Location:     pos,
		ImpactPoint:  game.ClosestPointOnBox(bb, pos),
		Normal:       n,
		ImpactNormal: n,
	}, true
}

// sweepPlanes sweeps the shape against a convex solid given as a set of half spaces. Each plane is
// pushed out by the shape's support distance along its normal and the shape's center is clipped
// against the result.
func sweepPlanes(planes []plane, start, end mgl32.Vec3, shape collision.Shape) (collision.Hit, bool) {
	dir := end.Sub(start)
	tEnter, tExit := float32(0), float32(1)

	var (
		enterNormal mgl32.Vec3
		escapeDist  = float32(-math32.MaxFloat32)
		escape      mgl32.Vec3
		inside      = true
	)
	for _, p := range planes {
		d := p.d + shape.Support(p.n) - contactSlop
		dist := p.n.Dot(start) - d
		if dist >= 0 {
			inside = false
		}
		if dist > escapeDist {
			escapeDist, escape = dist, p.n
		}

		denom := p.n.Dot(dir)
		if math32.Abs(denom) <= game.SmallNumber {
			if dist >= 0 {
				return collision.Hit{}, false
			}
			continue
		}
		t := -dist / denom
		if denom < 0 {
			if t > tEnter || (t >= tEnter && enterNormal == (mgl32.Vec3{})) {
				tEnter, enterNormal = t, p.n
			}
		} else if t < tExit {
			tExit = t
		}
		if tEnter > tExit {
			return collision.Hit{}, false
		}
	}

	if inside {
		return collision.Hit{
			Location:         start,
			ImpactPoint:      start.Sub(escape.Mul(shape.Support(escape) + escapeDist)),
			Normal:           escape,
			ImpactNormal:     escape,
			PenetrationDepth: -escapeDist,
			StartPenetrating: true,
		}, true
	}
	if enterNormal == (mgl32.Vec3{}) {
		return collision.Hit{}, false
	}

	loc := start.Add(dir.Mul(tEnter))
	return collision.Hit{
		Time:         tEnter,
		Location:     loc,
		ImpactPoint:  loc.Sub(enterNormal.Mul(shape.Support(enterNormal))),
		Normal:       enterNormal,
		ImpactNormal: enterNormal,
	}, true
}
