package movement

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/world"
)

func TestWalkingReachesWalkSpeed(t *testing.T) {
	c := newGrounded(t, groundScene())
	start := c.Location()
	for i := 0; i < 60; i++ {
		c.AddInput(c.Forward(), 1)
		c.Tick(dt)
	}
	if speed := c.HorizontalSpeed(); math32.Abs(speed-c.WalkSpeed()) > 1 {
		t.Fatalf("expected walk speed %v, got %v", c.WalkSpeed(), speed)
	}
	if c.Location().X()-start.X() < 300 {
		t.Fatalf("expected the character to move forward, moved from %v to %v", start, c.Location())
	}
	if c.Mode() != ModeWalking || math32.Abs(c.Location().Z()-start.Z()) > 0.3 {
		t.Fatalf("expected to stay on flat ground, mode=%v location=%v", c.Mode(), c.Location())
	}

	for i := 0; i < 60; i++ {
		c.Tick(dt)
	}
	if c.Velocity() != (mgl32.Vec3{}) {
		t.Fatalf("expected braking to stop the character, velocity=%v", c.Velocity())
	}
}

func TestSprintReachesSprintSpeed(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.SetSprintRequested(true)
	for i := 0; i < 60; i++ {
		c.AddInput(c.Forward(), 1)
		c.Tick(dt)
	}
	if speed := c.HorizontalSpeed(); math32.Abs(speed-c.SprintSpeed()) > 1 {
		t.Fatalf("expected sprint speed %v, got %v", c.SprintSpeed(), speed)
	}
	if c.Stamina() >= c.Settings().Stamina.Max {
		t.Fatalf("sprinting should drain stamina")
	}
}

func TestFallingLandsOnGround(t *testing.T) {
	s := settings.DefaultSettings()
	c := NewComponent(groundScene(), s.Capsule, s.Movement, nil)
	c.Teleport(mgl32.Vec3{0, 0, 300})
	if c.Mode() != ModeFalling {
		t.Fatalf("expected to fall, got %v", c.Mode())
	}
	for i := 0; i < 120 && c.Mode() == ModeFalling; i++ {
		c.Tick(dt)
	}
	if c.Mode() != ModeWalking {
		t.Fatalf("expected to land, got %v at %v", c.Mode(), c.Location())
	}
	want := s.Capsule.HalfHeight + s.Movement.Ground.FloorHoverDistance
	if math32.Abs(c.Location().Z()-want) > 0.3 {
		t.Fatalf("expected to hover at %v, got %v", want, c.Location().Z())
	}
	if c.Velocity().Z() != 0 {
		t.Fatalf("landing should clear vertical velocity, got %v", c.Velocity())
	}
}

func TestJump(t *testing.T) {
	c := newGrounded(t, groundScene())
	startZ := c.Location().Z()
	if !c.Jump() || c.Mode() != ModeFalling {
		t.Fatalf("expected the jump to launch the character")
	}
	if c.Jump() {
		t.Fatalf("jump must be refused in the air")
	}

	peak := startZ
	for i := 0; i < 120 && c.Mode() != ModeWalking; i++ {
		c.Tick(dt)
		peak = max(peak, c.Location().Z())
	}
	if peak-startZ < 60 {
		t.Fatalf("expected a jump of about 90 units, peaked %v above the ground", peak-startZ)
	}
	if c.Mode() != ModeWalking {
		t.Fatalf("expected to land again, got %v", c.Mode())
	}
}

func TestWalkingStopsAtWall(t *testing.T) {
	s := groundScene()
	s.AddBox(cube.Box(200, -500, 0, 300, 500, 300), nil)
	c := newGrounded(t, s)
	for i := 0; i < 120; i++ {
		c.AddInput(c.Forward(), 1)
		c.Tick(dt)
	}
	x := c.Location().X()
	if x > 200-c.Capsule().Radius || x < 150 {
		t.Fatalf("expected to rest against the wall, got x=%v", x)
	}
	if c.Mode() != ModeWalking {
		t.Fatalf("expected to keep walking, got %v", c.Mode())
	}
}

func TestSlideDecaysOnFlatGround(t *testing.T) {
	c := newGrounded(t, groundScene())
	c.SetVelocity(mgl32.Vec3{600, 0, 0})
	if !c.StartSlide() {
		t.Fatalf("expected the slide to start")
	}

	prev := c.Velocity().Len()
	for i := 0; i < 60 && c.IsSliding(); i++ {
		c.Tick(dt)
		if !c.IsSliding() {
			break
		}
		speed := c.Velocity().Len()
		if speed >= prev {
			t.Fatalf("flat slide should decelerate, %v -> %v", prev, speed)
		}
		prev = speed
	}
	if c.IsSliding() || c.Mode() != ModeWalking {
		t.Fatalf("expected the slide to end below the minimum speed, mode=%v", c.Mode())
	}
	if c.GroundFriction() != c.Settings().Ground.GroundFriction {
		t.Fatalf("walking friction not restored after the slide")
	}
}

// slideDownRamp starts a slide at 600 down a 10 degree ramp that descends along +X.
func slideDownRamp(t *testing.T, cfg settings.Movement) *Component {
	t.Helper()
	s := settings.DefaultSettings()

	angle := mgl32.DegToRad(10)
	ramp := world.Ramp{
		Min:    mgl32.Vec2{0, -500},
		Max:    mgl32.Vec2{8000, 500},
		Height: 8000 * math32.Tan(angle),
		Rise:   world.RiseNegX,
	}
	scene := world.NewScene(nil)
	scene.AddRamp(ramp, nil)

	c := NewComponent(scene, s.Capsule, cfg, nil)
	n := ramp.SurfaceNormal()
	support := s.Capsule.Radius + (s.Capsule.HalfHeight-s.Capsule.Radius)*n.Z()
	c.Teleport(mgl32.Vec3{200, 0, ramp.SurfaceZ(200, 0) + support/n.Z() + cfg.Ground.FloorHoverDistance})
	if c.Mode() != ModeWalking {
		t.Fatalf("expected to stand on the ramp, got %v", c.Mode())
	}
	if deg := c.Floor().SlopeDegrees(); math32.Abs(deg-10) > 0.1 {
		t.Fatalf("expected a 10 degree floor, got %v", deg)
	}

	downhill := mgl32.Vec3{math32.Cos(angle), 0, -math32.Sin(angle)}
	c.SetVelocity(downhill.Mul(600))
	if !c.StartSlide() {
		t.Fatalf("expected the slide to start")
	}
	return c
}

func TestSlideDownhillAccelerates(t *testing.T) {
	cfg := settings.DefaultSettings().Movement
	c := slideDownRamp(t, cfg)

	prev := c.Velocity().Len()
	for i := 0; i < 240; i++ {
		c.Tick(dt)
		if !c.IsSliding() {
			t.Fatalf("slide ended at tick %d in mode %v", i, c.Mode())
		}
		speed := c.Velocity().Len()
		if speed <= prev {
			t.Fatalf("downhill slide did not speed up at tick %d: %v -> %v", i, prev, speed)
		}
		if speed > cfg.Slide.MaxSpeedDownhill {
			t.Fatalf("slide exceeded the downhill cap at tick %d: %v", i, speed)
		}
		prev = speed
	}
	// 900 * sin(10 deg) for four seconds adds about 625.
	if prev < 1100 || prev > 1300 {
		t.Fatalf("expected about 1225 after four seconds, got %v", prev)
	}
}

func TestSlideDownhillReachesCap(t *testing.T) {
	cfg := settings.DefaultSettings().Movement
	cfg.Slide.DownhillAccel = 9000
	c := slideDownRamp(t, cfg)

	prev := c.Velocity().Len()
	for i := 0; i < 150; i++ {
		c.Tick(dt)
		if !c.IsSliding() {
			t.Fatalf("slide ended at tick %d in mode %v", i, c.Mode())
		}
		speed := c.Velocity().Len()
		if speed < prev-0.01 {
			t.Fatalf("downhill slide slowed down at tick %d: %v -> %v", i, prev, speed)
		}
		if speed > cfg.Slide.MaxSpeedDownhill+0.01 {
			t.Fatalf("slide exceeded the downhill cap at tick %d: %v", i, speed)
		}
		prev = speed
	}
	if math32.Abs(prev-cfg.Slide.MaxSpeedDownhill) > 1 {
		t.Fatalf("expected the slide to reach the downhill cap, got %v", prev)
	}
	if c.Location().X() < 2000 {
		t.Fatalf("expected the slide to travel down the ramp, at %v", c.Location())
	}
}

func TestSlideEndsWithoutFloor(t *testing.T) {
	s := settings.DefaultSettings()
	c := NewComponent(emptyQuery{}, s.Capsule, s.Movement, nil)
	c.enterSlide()
	c.SetVelocity(mgl32.Vec3{600, 0, 0})

	c.PhysSlide(dt)
	if c.IsSliding() || c.Mode() != ModeFalling {
		t.Fatalf("expected to fall once the floor is lost, sliding=%v mode=%v", c.IsSliding(), c.Mode())
	}
}
