package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Round32 will round a float32 to a given precision.
func Round32(val float32, precision int) float32 {
	pwr := math32.Pow(10, float32(precision))
	return math32.Round(val*pwr) / pwr
}

// Float32ApproxEq returns true if a and b differ by at most 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// ClampFloat clamps the given value between min and max.
func ClampFloat(num, min, max float32) float32 {
	if num < min {
		return min
	} else if num > max {
		return max
	}
	return num
}

// RoundVec32 will round a 32-bit vector to a given precision.
func RoundVec32(v mgl32.Vec3, p int) mgl32.Vec3 {
	return mgl32.Vec3{Round32(v.X(), p), Round32(v.Y(), p), Round32(v.Z(), p)}
}

// IsNearlyZero returns true if every component of the vector is within KindaSmallNumber of zero.
func IsNearlyZero(v mgl32.Vec3) bool {
	return math32.Abs(v[0]) <= KindaSmallNumber && math32.Abs(v[1]) <= KindaSmallNumber && math32.Abs(v[2]) <= KindaSmallNumber
}

// SafeNormal returns the normalized vector, or a zero vector if the vector is too short to be
// normalized reliably.
func SafeNormal(v mgl32.Vec3) mgl32.Vec3 {
	sq := v.Dot(v)
	if sq <= SmallNumber {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / math32.Sqrt(sq))
}

// PlaneProject removes the component of v along the plane normal n.
func PlaneProject(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// ClampLength scales v down so that its length does not exceed max.
func ClampLength(v mgl32.Vec3, max float32) mgl32.Vec3 {
	l := v.Len()
	if l <= max || l <= SmallNumber {
		return v
	}
	return v.Mul(max / l)
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b mgl32.Vec3, alpha float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(alpha))
}

// Horizontal returns the vector with its Z component removed.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], 0}
}

// HorizontalLen returns the length of the vector on the XY plane.
func HorizontalLen(v mgl32.Vec3) float32 {
	return math32.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// DirectionVector returns the unit forward vector for the given yaw and pitch, in degrees. A yaw
// of zero faces +X and a yaw of 90 faces +Y. Positive pitch looks up.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	m := math32.Cos(pitchRad)

	return mgl32.Vec3{
		m * math32.Cos(yawRad),
		m * math32.Sin(yawRad),
		math32.Sin(pitchRad),
	}
}

// RightVector returns the unit vector pointing to the right of the given yaw.
func RightVector(yaw float32) mgl32.Vec3 {
	yawRad := mgl32.DegToRad(yaw)
	return mgl32.Vec3{-math32.Sin(yawRad), math32.Cos(yawRad), 0}
}

// NormalizeYaw wraps the yaw into (-180, 180].
func NormalizeYaw(yaw float32) float32 {
	yaw = math32.Mod(yaw, 360)
	if yaw > 180 {
		yaw -= 360
	} else if yaw <= -180 {
		yaw += 360
	}
	return yaw
}

// CalculateDirection returns the signed angle in degrees between the horizontal velocity and the
// facing yaw. Positive values mean the velocity points to the right of the facing direction.
func CalculateDirection(velocity mgl32.Vec3, yaw float32) float32 {
	dir := SafeNormal(Horizontal(velocity))
	if dir == (mgl32.Vec3{}) {
		return 0
	}

	forward := DirectionVector(yaw, 0)
	angle := mgl32.RadToDeg(math32.Acos(ClampFloat(forward.Dot(dir), -1, 1)))
	if RightVector(yaw).Dot(dir) < 0 {
		return -angle
	}
	return angle
}

// SlopeAngle returns the angle in radians between the given surface normal and world up.
func SlopeAngle(normal mgl32.Vec3) float32 {
	return math32.Acos(ClampFloat(normal.Dot(WorldUp), -1, 1))
}
