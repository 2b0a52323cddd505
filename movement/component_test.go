package movement

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/world"
)

const dt = float32(1.0 / 60.0)

type emptyQuery struct{}

func (emptyQuery) SweepSphere(start, end mgl32.Vec3, radius float32, filter collision.Filter) (collision.Hit, bool) {
	return collision.Hit{}, false
}

func (emptyQuery) SweepCapsule(start, end mgl32.Vec3, radius, halfHeight float32, filter collision.Filter) (collision.Hit, bool) {
	return collision.Hit{}, false
}

func (emptyQuery) LineTrace(start, end mgl32.Vec3, filter collision.Filter) (collision.Hit, bool) {
	return collision.Hit{}, false
}

func groundScene() *world.Scene {
	s := world.NewScene(nil)
	s.AddBox(cube.Box(-5000, -5000, -100, 5000, 5000, 0), nil)
	return s
}

func newGrounded(t *testing.T, q collision.QueryService) *Component {
	t.Helper()
	s := settings.DefaultSettings()
	c := NewComponent(q, s.Capsule, s.Movement, nil)
	c.Teleport(mgl32.Vec3{0, 0, s.Capsule.HalfHeight + s.Movement.Ground.FloorHoverDistance})
	if c.Mode() != ModeWalking {
		t.Fatalf("expected the component to stand on the ground, got mode %v", c.Mode())
	}
	return c
}

func TestNewComponentDefaults(t *testing.T) {
	s := settings.DefaultSettings()
	c := NewComponent(emptyQuery{}, s.Capsule, s.Movement, nil)
	if c.Stamina() != s.Movement.Stamina.Max || c.StaminaFraction() != 1 {
		t.Fatalf("expected full stamina, got %v", c.Stamina())
	}
	if c.State().MaxWalkSpeed != s.Movement.WalkSpeed {
		t.Fatalf("expected walk speed, got %v", c.State().MaxWalkSpeed)
	}
	if c.State().TimeSinceSprintEnded < s.Movement.Slide.PostSprintGraceTime {
		t.Fatalf("grace window must start closed")
	}
	if c.Mode() != ModeFalling {
		t.Fatalf("expected to start falling, got %v", c.Mode())
	}
}

func TestStaminaStaysInBounds(t *testing.T) {
	c := newGrounded(t, groundScene())
	max := c.Settings().Stamina.Max

	c.SetSprintRequested(true)
	for i := 0; i < 600; i++ {
		c.Tick(dt)
		if c.Stamina() < 0 || c.Stamina() > max {
			t.Fatalf("stamina %v out of bounds at tick %d", c.Stamina(), i)
		}
	}
	if c.Stamina() >= max {
		t.Fatalf("expected sprinting to drain stamina")
	}

	c.SetSprintRequested(false)
	for i := 0; i < 1200; i++ {
		c.UpdateStamina(dt)
		if c.Stamina() < 0 || c.Stamina() > max {
			t.Fatalf("stamina %v out of bounds while regenerating", c.Stamina())
		}
	}
	if c.Stamina() != max {
		t.Fatalf("expected stamina to regenerate to %v, got %v", max, c.Stamina())
	}
}

func TestSprintGating(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.SetSprintRequested(true)

	c.SetStamina(c.Settings().Stamina.MinToSprint - 1)
	c.UpdateMaxSpeed()
	if c.IsSprinting() || c.State().MaxWalkSpeed != c.WalkSpeed() {
		t.Fatalf("sprint must be refused below the stamina threshold")
	}

	c.SetStamina(c.Settings().Stamina.MinToSprint)
	c.UpdateMaxSpeed()
	if !c.IsSprinting() || c.State().MaxWalkSpeed != c.SprintSpeed() {
		t.Fatalf("sprint should be allowed at the stamina threshold")
	}
}

func TestSprintStopsWhenStaminaRunsOut(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.SetSprintRequested(true)
	c.UpdateMaxSpeed()
	c.SetStamina(0.1)
	c.state.TimeSinceSprintEnded = 5

	c.UpdateStamina(1)
	if c.Stamina() != 0 {
		t.Fatalf("expected stamina to bottom out, got %v", c.Stamina())
	}
	if c.IsSprinting() {
		t.Fatalf("sprint should have been force stopped")
	}
	if c.State().TimeSinceSprintEnded != 0 {
		t.Fatalf("grace window should reopen when sprint stops")
	}
}

func TestSprintEndOpensGraceWindow(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.SetSprintRequested(true)
	c.UpdateMaxSpeed()
	c.SetSprintRequested(false)
	c.UpdateMaxSpeed()
	if c.IsSprinting() || c.State().TimeSinceSprintEnded != 0 {
		t.Fatalf("releasing sprint should reset the grace counter")
	}
	c.Tick(0.1)
	if got := c.State().TimeSinceSprintEnded; math32.Abs(got-0.1) > 1e-5 {
		t.Fatalf("expected grace counter to accumulate, got %v", got)
	}
}

func TestCanStartSlide(t *testing.T) {
	s := settings.DefaultSettings().Movement
	start := s.Slide.MinStartSpeed
	grace := s.Slide.PostSprintGraceTime

	tests := []struct {
		name      string
		airborne  bool
		sliding   bool
		stamina   float32
		speed     float32
		sinceEnd  float32
		canSlide  bool
	}{
		{name: "fast enough", stamina: 50, speed: start, sinceEnd: 10, canSlide: true},
		{name: "too slow", stamina: 50, speed: start - 1, sinceEnd: 10},
		{name: "grace window", stamina: 50, speed: start * 0.86, sinceEnd: grace, canSlide: true},
		{name: "grace window too slow", stamina: 50, speed: start * 0.84, sinceEnd: 0},
		{name: "grace window expired", stamina: 50, speed: start * 0.9, sinceEnd: grace + 0.01},
		{name: "low stamina", stamina: s.Stamina.MinToSlide - 0.5, speed: start * 2, sinceEnd: 10},
		{name: "stamina threshold", stamina: s.Stamina.MinToSlide, speed: start * 2, sinceEnd: 10, canSlide: true},
		{name: "airborne", airborne: true, stamina: 50, speed: start * 2, sinceEnd: 10},
		{name: "already sliding", sliding: true, stamina: 50, speed: start * 2, sinceEnd: 10},
	}
	for _, tt := range tests {
		c := newGrounded(t, groundScene())
		c.SetStamina(tt.stamina)
		c.SetVelocity(mgl32.Vec3{tt.speed, 0, 0})
		c.state.TimeSinceSprintEnded = tt.sinceEnd
		if tt.airborne {
			c.setMode(ModeFalling)
		}
		if tt.sliding {
			c.enterSlide()
		}
		if got := c.CanStartSlide(); got != tt.canSlide {
			t.Errorf("%s: CanStartSlide() = %v, want %v", tt.name, got, tt.canSlide)
		}
	}
}

func TestSlideSwapsFriction(t *testing.T) {
	c := newGrounded(t, groundScene())
	ground := c.Settings().Ground
	c.SetVelocity(mgl32.Vec3{600, 0, 0})

	if !c.StartSlide() {
		t.Fatalf("expected the slide to start")
	}
	if c.Mode() != ModeSlide || !c.IsSliding() {
		t.Fatalf("expected slide mode, got %v", c.Mode())
	}
	if c.GroundFriction() != c.Settings().Slide.GroundFriction || c.BrakingDeceleration() != 0 {
		t.Fatalf("slide friction not applied: %v %v", c.GroundFriction(), c.BrakingDeceleration())
	}

	c.SetSprintRequested(true)
	c.UpdateMaxSpeed()
	if c.IsSprinting() {
		t.Fatalf("sliding must suppress sprint")
	}

	if !c.StopSlide() || c.StopSlide() {
		t.Fatalf("stop slide should succeed exactly once")
	}
	if c.Mode() != ModeWalking {
		t.Fatalf("expected walking after the slide, got %v", c.Mode())
	}
	if c.GroundFriction() != ground.GroundFriction || c.BrakingDeceleration() != ground.BrakingDeceleration {
		t.Fatalf("walking friction not restored: %v %v", c.GroundFriction(), c.BrakingDeceleration())
	}
}

func TestLockInputIsIdempotent(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.LockInput()
	c.LockInput()
	if !c.InputLocked() || c.GravityScale() != 0 || c.Mode() != ModeFlying {
		t.Fatalf("unexpected locked state: locked=%v gravity=%v mode=%v", c.InputLocked(), c.GravityScale(), c.Mode())
	}

	before := c.Location()
	c.AddInput(c.Forward(), 1)
	c.Tick(dt)
	if c.Location() != before {
		t.Fatalf("locked character moved from %v to %v", before, c.Location())
	}
	if c.Jump() {
		t.Fatalf("jump must be refused while locked")
	}

	c.UnlockInput()
	c.UnlockInput()
	if c.InputLocked() || c.GravityScale() != 1 || c.Mode() != ModeWalking {
		t.Fatalf("unexpected unlocked state: locked=%v gravity=%v mode=%v", c.InputLocked(), c.GravityScale(), c.Mode())
	}
}

func TestLockInputEndsSlide(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.SetVelocity(mgl32.Vec3{600, 0, 0})
	c.StartSlide()
	c.LockInput()
	if c.IsSliding() || c.GroundFriction() != c.Settings().Ground.GroundFriction {
		t.Fatalf("locking input should end the slide")
	}
}

func TestLookClampsPitch(t *testing.T) {
	c := NewComponent(emptyQuery{}, settings.DefaultSettings().Capsule, settings.DefaultSettings().Movement, nil)
	c.Look(90, -200)
	if c.Yaw() != 90 || c.Pitch() != 89 {
		t.Fatalf("unexpected rotation yaw=%v pitch=%v", c.Yaw(), c.Pitch())
	}
	if f := c.Forward(); math32.Abs(f.Y()-1) > 1e-5 || f.Z() != 0 {
		t.Fatalf("forward must stay horizontal, got %v", f)
	}
}
