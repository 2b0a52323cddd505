package collision

import "github.com/go-gl/mathgl/mgl32"

// BodyID identifies a body in the scene.
type BodyID uint32

// NoBody is never assigned to a scene body.
const NoBody BodyID = 0

// Hit describes the first blocking contact found by a query.
type Hit struct {
	// Time is the fraction of the query segment travelled before contact, in [0, 1].
	Time float32
	// Location is the position of the shape's center at the time of contact.
	Location mgl32.Vec3
	// ImpactPoint is the contact point on the hit body.
	ImpactPoint mgl32.Vec3
	// Normal is the surface normal of the swept shape at the contact, facing away from the body.
	Normal mgl32.Vec3
	// ImpactNormal is the normal of the hit body's surface at the impact point.
	ImpactNormal mgl32.Vec3
	// PenetrationDepth is the distance the shape must move along Normal to stop overlapping. It
	// is only set when StartPenetrating is true.
	PenetrationDepth float32

	Body             BodyID
	Tags             TagSet
	StartPenetrating bool
}

// Filter excludes bodies from a query.
type Filter struct {
	Ignore []BodyID
}

// Ignores returns true if the body should be skipped by the query.
func (f Filter) Ignores(id BodyID) bool {
	for _, ignored := range f.Ignore {
		if ignored == id {
			return true
		}
	}
	return false
}

// QueryService answers synchronous collision queries against a static scene. A sweep whose start
// and end are equal is an overlap test: it reports a hit if the shape overlaps any body there.
type QueryService interface {
	// SweepSphere sweeps a sphere from start to end and returns the first blocking hit.
	SweepSphere(start, end mgl32.Vec3, radius float32, filter Filter) (Hit, bool)
	// SweepCapsule sweeps an upright capsule from start to end and returns the first blocking hit.
	SweepCapsule(start, end mgl32.Vec3, radius, halfHeight float32, filter Filter) (Hit, bool)
	// LineTrace traces a segment from start to end and returns the first blocking hit.
	LineTrace(start, end mgl32.Vec3, filter Filter) (Hit, bool)
}

// Fits returns true if an upright capsule can be placed at pos without overlapping anything.
func Fits(q QueryService, pos mgl32.Vec3, radius, halfHeight float32, filter Filter) bool {
	_, blocked := q.SweepCapsule(pos, pos, radius, halfHeight, filter)
	return !blocked
}
