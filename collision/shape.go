package collision

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// ShapeKind is the kind of primitive swept through the scene.
type ShapeKind uint8

const (
	ShapeLine ShapeKind = iota
	ShapeSphere
	ShapeCapsule
)

// Shape is a query primitive centered on the sweep position. Capsules are upright, and their half
// height includes the hemispherical caps.
type Shape struct {
	Kind       ShapeKind
	Radius     float32
	HalfHeight float32
}

// Line returns a zero-extent shape used for line traces.
func Line() Shape {
	return Shape{Kind: ShapeLine}
}

// Sphere returns a sphere shape.
func Sphere(radius float32) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius, HalfHeight: radius}
}

// Capsule returns an upright capsule shape. The half height is raised to the radius if needed.
func Capsule(radius, halfHeight float32) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, HalfHeight: math32.Max(radius, halfHeight)}
}

// Extents returns the half extents of the shape's bounding box.
func (s Shape) Extents() mgl32.Vec3 {
	return mgl32.Vec3{s.Radius, s.Radius, s.HalfHeight}
}

// Support returns how far the shape reaches from its center along the unit direction n.
func (s Shape) Support(n mgl32.Vec3) float32 {
	switch s.Kind {
	case ShapeSphere:
		return s.Radius
	case ShapeCapsule:
		return s.Radius + (s.HalfHeight-s.Radius)*math32.Abs(n[2])
	}
	return 0
}
