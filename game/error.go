package game

const (
	ErrorInvalidCapsule      = "capsule must have a positive radius and a half height of at least the radius (r=%v hh=%v)"
	ErrorInvalidTickRate     = "tick rate must be positive, got %v"
	ErrorUnknownMovementMode = "unknown movement mode %d"
	ErrorArcWithoutType      = "parkour arc has no type"
	ErrorArcWithoutPhase     = "parkour arc %v has no phase"
)
