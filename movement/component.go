package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/settings"
	"go.uber.org/zap"
)

// Mode is the physics mode the component integrates with.
type Mode uint8

const (
	ModeWalking Mode = iota
	ModeFalling
	// ModeFlying is used while input is locked: gravity is off and only explicit moves apply.
	ModeFlying
	ModeSlide
)

func (m Mode) String() string {
	switch m {
	case ModeWalking:
		return "walking"
	case ModeFalling:
		return "falling"
	case ModeFlying:
		return "flying"
	case ModeSlide:
		return "slide"
	}
	return "unknown"
}

// State is the locomotion state owned by the component. MaxWalkSpeed is derived every tick.
type State struct {
	Stamina float32

	SprintRequested bool
	Sprinting       bool
	CrouchRequested bool
	SlideActive     bool

	// TimeSinceSprintEnded opens the post sprint slide grace window.
	TimeSinceSprintEnded float32
	MaxWalkSpeed         float32
}

// Component simulates a single upright capsule character against a collision query service.
type Component struct {
	query   collision.QueryService
	filter  collision.Filter
	capsule settings.Capsule
	cfg     settings.Movement
	log     *zap.Logger

	state State
	mode  Mode

	location mgl32.Vec3
	velocity mgl32.Vec3
	yaw      float32
	pitch    float32

	pendingInput mgl32.Vec3

	groundFriction             float32
	brakingDeceleration        float32
	defaultGroundFriction      float32
	defaultBrakingDeceleration float32

	gravityScale      float32
	savedGravityScale float32
	inputLocked       bool

	floor FloorSample
}

// NewComponent creates a component with full stamina at the given location. The component starts
// falling unless a walkable floor is directly below it.
func NewComponent(query collision.QueryService, capsule settings.Capsule, cfg settings.Movement, log *zap.Logger) *Component {
	assert.IsTrue(capsule.Radius > 0 && capsule.HalfHeight >= capsule.Radius, game.ErrorInvalidCapsule, capsule.Radius, capsule.HalfHeight)
	if log == nil {
		log = zap.NewNop()
	}

	c := &Component{
		query:   query,
		capsule: capsule,
		cfg:     cfg,
		log:     log.Named("movement"),
		mode:    ModeFalling,

		groundFriction:      cfg.Ground.GroundFriction,
		brakingDeceleration: cfg.Ground.BrakingDeceleration,
		gravityScale:        cfg.Ground.GravityScale,
	}
	c.defaultGroundFriction, c.defaultBrakingDeceleration = c.groundFriction, c.brakingDeceleration
	c.state.Stamina = cfg.Stamina.Max
	c.state.TimeSinceSprintEnded = 999
	c.UpdateMaxSpeed()
	return c
}

// SetFilter sets the filter used for every query the component makes, typically to exclude the
// character's own body.
func (c *Component) SetFilter(filter collision.Filter) {
	c.filter = filter
}

// Filter ...
func (c *Component) Filter() collision.Filter {
	return c.filter
}

// Query ...
func (c *Component) Query() collision.QueryService {
	return c.query
}

// Capsule ...
func (c *Component) Capsule() settings.Capsule {
	return c.capsule
}

// Settings returns the movement tuning the component was created with.
func (c *Component) Settings() settings.Movement {
	return c.cfg
}

// State returns a copy of the locomotion state.
func (c *Component) State() State {
	return c.state
}

// Mode ...
func (c *Component) Mode() Mode {
	return c.mode
}

// Location returns the center of the capsule.
func (c *Component) Location() mgl32.Vec3 {
	return c.location
}

// Feet returns the bottom of the capsule.
func (c *Component) Feet() mgl32.Vec3 {
	return c.location.Sub(mgl32.Vec3{0, 0, c.capsule.HalfHeight})
}

// Velocity ...
func (c *Component) Velocity() mgl32.Vec3 {
	return c.velocity
}

// SetVelocity ...
func (c *Component) SetVelocity(v mgl32.Vec3) {
	c.velocity = v
}

// HorizontalSpeed ...
func (c *Component) HorizontalSpeed() float32 {
	return game.HorizontalLen(c.velocity)
}

// Yaw ...
func (c *Component) Yaw() float32 {
	return c.yaw
}

// Pitch ...
func (c *Component) Pitch() float32 {
	return c.pitch
}

// SetRotation sets the view rotation directly. Pitch is clamped to [-89, 89].
func (c *Component) SetRotation(yaw, pitch float32) {
	c.yaw = game.NormalizeYaw(yaw)
	c.pitch = game.ClampFloat(pitch, -89, 89)
}

// Forward returns the horizontal facing direction.
func (c *Component) Forward() mgl32.Vec3 {
	return game.DirectionVector(c.yaw, 0)
}

// Right returns the horizontal direction to the right of the facing direction.
func (c *Component) Right() mgl32.Vec3 {
	return game.RightVector(c.yaw)
}

// Stamina ...
func (c *Component) Stamina() float32 {
	return c.state.Stamina
}

// StaminaFraction returns the stamina normalized to [0, 1].
func (c *Component) StaminaFraction() float32 {
	if c.cfg.Stamina.Max <= 0 {
		return 0
	}
	return game.ClampFloat(c.state.Stamina/c.cfg.Stamina.Max, 0, 1)
}

// SetStamina sets the stamina, clamped to [0, max].
func (c *Component) SetStamina(stamina float32) {
	c.state.Stamina = game.ClampFloat(stamina, 0, c.cfg.Stamina.Max)
}

// IsSprinting ...
func (c *Component) IsSprinting() bool {
	return c.state.Sprinting
}

// IsSliding ...
func (c *Component) IsSliding() bool {
	return c.state.SlideActive
}

// IsCrouching returns true while crouch is requested.
func (c *Component) IsCrouching() bool {
	return c.state.CrouchRequested
}

// Grounded returns true if the character is walking or sliding on a floor.
func (c *Component) Grounded() bool {
	return c.mode == ModeWalking || c.mode == ModeSlide
}

// MovingOnGround returns true only in the walking mode.
func (c *Component) MovingOnGround() bool {
	return c.mode == ModeWalking
}

// InputLocked ...
func (c *Component) InputLocked() bool {
	return c.inputLocked
}

// GravityScale ...
func (c *Component) GravityScale() float32 {
	return c.gravityScale
}

// GroundFriction returns the ground friction currently in effect.
func (c *Component) GroundFriction() float32 {
	return c.groundFriction
}

// BrakingDeceleration returns the walking braking deceleration currently in effect.
func (c *Component) BrakingDeceleration() float32 {
	return c.brakingDeceleration
}

// Floor returns the last floor sample.
func (c *Component) Floor() FloorSample {
	return c.floor
}

// WalkSpeed ...
func (c *Component) WalkSpeed() float32 {
	return c.cfg.WalkSpeed
}

// SprintSpeed ...
func (c *Component) SprintSpeed() float32 {
	return c.cfg.SprintSpeed
}

// AddInput adds a world space movement input for the next tick. Inputs are ignored while locked.
func (c *Component) AddInput(dir mgl32.Vec3, scale float32) {
	if c.inputLocked {
		return
	}
	c.pendingInput = c.pendingInput.Add(dir.Mul(scale))
}

// Look applies a look delta: x turns the yaw and y, inverted, tilts the pitch.
func (c *Component) Look(dx, dy float32) {
	c.SetRotation(c.yaw+dx, c.pitch-dy)
}

// SetSprintRequested ...
func (c *Component) SetSprintRequested(requested bool) {
	c.state.SprintRequested = requested
}

// SetCrouchRequested ...
func (c *Component) SetCrouchRequested(requested bool) {
	c.state.CrouchRequested = requested
}

// Jump launches the character if it is on the ground and input is not locked. A slide in
// progress is ended first.
func (c *Component) Jump() bool {
	if c.inputLocked || !c.Grounded() {
		return false
	}
	if c.state.SlideActive {
		c.exitSlide()
	}
	c.velocity[2] = c.cfg.Ground.JumpZVelocity
	c.setMode(ModeFalling)
	return true
}

// Teleport moves the capsule without sweeping. Unless input is locked, the floor is resampled to
// pick the walking or falling mode.
func (c *Component) Teleport(pos mgl32.Vec3) {
	c.location = pos
	if c.inputLocked {
		return
	}
	if c.state.SlideActive {
		c.exitSlide()
	}
	c.velocity = mgl32.Vec3{}
	if c.updateFloor() {
		c.setMode(ModeWalking)
	} else {
		c.setMode(ModeFalling)
	}
}

// LockInput disables movement input and gravity and switches to the flying mode. It does nothing
// if input is already locked.
func (c *Component) LockInput() {
	if c.inputLocked {
		return
	}
	if c.state.SlideActive {
		c.exitSlide()
	}
	c.inputLocked = true
	c.savedGravityScale = c.gravityScale
	c.gravityScale = 0
	c.velocity = mgl32.Vec3{}
	c.pendingInput = mgl32.Vec3{}
	c.setMode(ModeFlying)
}

// UnlockInput restores the gravity scale saved by LockInput and switches back to walking. It does
// nothing if input is not locked.
func (c *Component) UnlockInput() {
	if !c.inputLocked {
		return
	}
	c.inputLocked = false
	c.gravityScale = c.savedGravityScale
	c.velocity = mgl32.Vec3{}
	c.setMode(ModeWalking)
}

func (c *Component) setMode(m Mode) {
	if c.mode == m {
		return
	}
	c.log.Debug("movement mode changed", zap.Stringer("from", c.mode), zap.Stringer("to", m))
	c.mode = m
}
