package world

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
)

// BodyKind is the kind of solid a body represents.
type BodyKind uint8

const (
	BodyBox BodyKind = iota
	BodyRamp
)

// RampAxis is the horizontal direction in which a ramp rises.
type RampAxis uint8

const (
	RisePosX RampAxis = iota
	RiseNegX
	RisePosY
	RiseNegY
)

// Ramp is a solid wedge: an inclined plane over a rectangular footprint, filled down to its base.
type Ramp struct {
	Min, Max mgl32.Vec2
	BaseZ    float32
	Height   float32
	Rise     RampAxis
}

// Bounds returns the bounding box of the ramp.
func (r Ramp) Bounds() cube.BBox {
	return cube.Box(r.Min[0], r.Min[1], r.BaseZ, r.Max[0], r.Max[1], r.BaseZ+r.Height)
}

// axis returns the unit rise direction along with the coordinate of the low edge along it.
func (r Ramp) axis() (mgl32.Vec3, float32) {
	switch r.Rise {
	case RiseNegX:
		return mgl32.Vec3{-1, 0, 0}, -r.Max[0]
	case RisePosY:
		return mgl32.Vec3{0, 1, 0}, r.Min[1]
	case RiseNegY:
		return mgl32.Vec3{0, -1, 0}, -r.Max[1]
	}
	return mgl32.Vec3{1, 0, 0}, r.Min[0]
}

func (r Ramp) length() float32 {
	if r.Rise == RisePosY || r.Rise == RiseNegY {
		return r.Max[1] - r.Min[1]
	}
	return r.Max[0] - r.Min[0]
}

// SurfaceNormal returns the unit normal of the inclined face.
func (r Ramp) SurfaceNormal() mgl32.Vec3 {
	a, _ := r.axis()
	return game.SafeNormal(a.Mul(-r.Height / r.length()).Add(game.WorldUp))
}

// SlopeDegrees returns the inclination of the ramp in degrees.
func (r Ramp) SlopeDegrees() float32 {
	return mgl32.RadToDeg(math32.Atan2(r.Height, r.length()))
}

// SurfaceZ returns the height of the inclined face at the given XY position, clamped to the
// footprint.
func (r Ramp) SurfaceZ(x, y float32) float32 {
	a, s0 := r.axis()
	p := mgl32.Vec3{
		game.ClampFloat(x, r.Min[0], r.Max[0]),
		game.ClampFloat(y, r.Min[1], r.Max[1]),
		0,
	}
	return r.BaseZ + r.Height*(a.Dot(p)-s0)/r.length()
}

// plane is a half space: points p with n·p <= d are inside.
type plane struct {
	n mgl32.Vec3
	d float32
}

func (r Ramp) planes() []plane {
	a, s0 := r.axis()
	slope := r.Height / r.length()
	n := a.Mul(-slope).Add(game.WorldUp)
	l := n.Len()
	return []plane{
		{mgl32.Vec3{-1, 0, 0}, -r.Min[0]},
		{mgl32.Vec3{1, 0, 0}, r.Max[0]},
		{mgl32.Vec3{0, -1, 0}, -r.Min[1]},
		{mgl32.Vec3{0, 1, 0}, r.Max[1]},
		{mgl32.Vec3{0, 0, -1}, -r.BaseZ},
		{n.Mul(1 / l), (r.BaseZ - slope*s0) / l},
	}
}

// Body is a static solid in the scene.
type Body struct {
	ID   collision.BodyID
	Kind BodyKind
	// Box holds the solid for box bodies and the bounds for ramps.
	Box  cube.BBox
	Ramp Ramp
	Tags collision.TagSet
}

// contactSlop shrinks every solid slightly so that shapes resting exactly on a surface do not
// register as blocked.
const contactSlop = float32(0.01)

func (b *Body) sweep(start, end mgl32.Vec3, shape collision.Shape) (collision.Hit, bool) {
	var (
		hit collision.Hit
		ok  bool
	)
	if b.Kind == BodyRamp {
		hit, ok = sweepPlanes(b.Ramp.planes(), start, end, shape)
	} else {
		hit, ok = sweepBox(b.Box, start, end, shape)
	}
	if ok {
		hit.Body, hit.Tags = b.ID, b.Tags
	}
	return hit, ok
}
