package game

import "github.com/go-gl/mathgl/mgl32"

const (
	// GravityZ is the world gravity acceleration in units per second squared, before the
	// per-character gravity scale is applied.
	GravityZ = float32(-980)

	SmallNumber      = float32(1e-8)
	KindaSmallNumber = float32(1e-4)

	// MinTickTime is the smallest tick duration any integrator will act on.
	MinTickTime = float32(1e-6)

	// ParkourableTag marks scene bodies that the parkour detector is allowed to traverse.
	ParkourableTag = "Parkourable"
)

var (
	WorldUp    = mgl32.Vec3{0, 0, 1}
	GravityDir = mgl32.Vec3{0, 0, -1}
)
