package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// AABBFromExtents returns a bounding box centered on pos with the given half extents.
func AABBFromExtents(pos, extents mgl32.Vec3) cube.BBox {
	return cube.Box(
		pos[0]-extents[0], pos[1]-extents[1], pos[2]-extents[2],
		pos[0]+extents[0], pos[1]+extents[1], pos[2]+extents[2],
	)
}

// CapsuleBounds returns the bounding box of an upright capsule centered on pos.
func CapsuleBounds(pos mgl32.Vec3, radius, halfHeight float32) cube.BBox {
	return AABBFromExtents(pos, mgl32.Vec3{radius, radius, halfHeight})
}

// SweptBounds returns the bounding box that contains the shape with the given extents at both
// the start and the end of a sweep.
func SweptBounds(start, end, extents mgl32.Vec3) cube.BBox {
	a, b := AABBFromExtents(start, extents), AABBFromExtents(end, extents)
	return cube.Box(
		math32.Min(a.Min()[0], b.Min()[0]), math32.Min(a.Min()[1], b.Min()[1]), math32.Min(a.Min()[2], b.Min()[2]),
		math32.Max(a.Max()[0], b.Max()[0]), math32.Max(a.Max()[1], b.Max()[1]), math32.Max(a.Max()[2], b.Max()[2]),
	)
}

// InflateBox grows the box by the given extents on every axis. Negative extents shrink it.
func InflateBox(bb cube.BBox, extents mgl32.Vec3) cube.BBox {
	min, max := bb.Min(), bb.Max()
	return cube.Box(
		min[0]-extents[0], min[1]-extents[1], min[2]-extents[2],
		max[0]+extents[0], max[1]+extents[1], max[2]+extents[2],
	)
}

// PointInsideBox returns true if the point lies strictly inside the box.
func PointInsideBox(bb cube.BBox, p mgl32.Vec3) bool {
	min, max := bb.Min(), bb.Max()
	return p[0] > min[0] && p[0] < max[0] &&
		p[1] > min[1] && p[1] < max[1] &&
		p[2] > min[2] && p[2] < max[2]
}

// ClosestPointOnBox returns the point on or inside the box that is closest to p.
func ClosestPointOnBox(bb cube.BBox, p mgl32.Vec3) mgl32.Vec3 {
	min, max := bb.Min(), bb.Max()
	return mgl32.Vec3{
		ClampFloat(p[0], min[0], max[0]),
		ClampFloat(p[1], min[1], max[1]),
		ClampFloat(p[2], min[2], max[2]),
	}
}

// BoxFaceNormal returns the outward normal of the box face closest to p, along with the distance
// from p to that face. For points inside the box the distance is the depth to escape through it.
func BoxFaceNormal(bb cube.BBox, p mgl32.Vec3) (mgl32.Vec3, float32) {
	min, max := bb.Min(), bb.Max()
	candidates := [6]struct {
		n mgl32.Vec3
		d float32
	}{
		{mgl32.Vec3{-1, 0, 0}, math32.Abs(p[0] - min[0])},
		{mgl32.Vec3{1, 0, 0}, math32.Abs(max[0] - p[0])},
		{mgl32.Vec3{0, -1, 0}, math32.Abs(p[1] - min[1])},
		{mgl32.Vec3{0, 1, 0}, math32.Abs(max[1] - p[1])},
		{mgl32.Vec3{0, 0, -1}, math32.Abs(p[2] - min[2])},
		{mgl32.Vec3{0, 0, 1}, math32.Abs(max[2] - p[2])},
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.d < best.d {
			best = c
		}
	}
	return best.n, best.d
}
