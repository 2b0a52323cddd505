package character

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/parkour"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/world"
)

const dt = float32(1.0 / 60.0)

func newCharacter(t *testing.T, x, y float32) *Character {
	t.Helper()
	scene, err := world.DefaultLevel().Build(nil)
	if err != nil {
		t.Fatalf("failed to build the reference level: %v", err)
	}
	s := settings.DefaultSettings()
	c := New(scene, s, nil)
	c.Spawn(mgl32.Vec3{x, y, s.Capsule.HalfHeight + s.Movement.Ground.FloorHoverDistance}, 0)
	if c.Movement().Mode() != movement.ModeWalking {
		t.Fatalf("expected to spawn on the ground, got %v", c.Movement().Mode())
	}
	return c
}

func tickFor(c *Character, ticks int) {
	for i := 0; i < ticks; i++ {
		c.Tick(dt)
	}
}

func TestSpeedRatio(t *testing.T) {
	tests := []struct {
		speed, walk, sprint float32
		want                float32
	}{
		{speed: 0, walk: 450, sprint: 750, want: 0},
		{speed: 225, walk: 450, sprint: 750, want: 0.5},
		{speed: 450, walk: 450, sprint: 750, want: 1},
		{speed: 600, walk: 450, sprint: 750, want: 1.5},
		{speed: 750, walk: 450, sprint: 750, want: 2},
		{speed: 2000, walk: 450, sprint: 750, want: 2},
		{speed: 0.5, walk: 0, sprint: 0, want: 0.5},
		{speed: 451, walk: 450, sprint: 100, want: 2},
	}
	for _, tt := range tests {
		if got := SpeedRatio(tt.speed, tt.walk, tt.sprint); math32.Abs(got-tt.want) > 1e-5 {
			t.Errorf("SpeedRatio(%v, %v, %v) = %v, want %v", tt.speed, tt.walk, tt.sprint, got, tt.want)
		}
	}
}

func TestWalkingSnapshot(t *testing.T) {
	c := newCharacter(t, -1000, 0)
	c.SetMoveAxis(0, 1)
	tickFor(c, 60)

	s := c.Snapshot()
	if !s.Grounded || s.InAir || s.Mode != movement.ModeWalking {
		t.Fatalf("expected to walk on the ground: %+v", s)
	}
	if math32.Abs(s.SpeedRatio-1) > 1e-3 || math32.Abs(s.Direction) > 1e-2 {
		t.Fatalf("expected full walk speed straight ahead, ratio=%v direction=%v", s.SpeedRatio, s.Direction)
	}
	if s.StaminaFraction != 1 || s.Time <= 0 {
		t.Fatalf("unexpected stamina %v or time %v", s.StaminaFraction, s.Time)
	}

	c.SetMoveAxis(1, 0)
	tickFor(c, 60)
	if d := c.Snapshot().Direction; math32.Abs(d-90) > 1 {
		t.Fatalf("expected to strafe right at 90 degrees, got %v", d)
	}
}

func TestSprintIntoSlide(t *testing.T) {
	c := newCharacter(t, -1000, 0)
	c.SetMoveAxis(0, 1)
	c.SprintStart()
	tickFor(c, 60)
	if s := c.Snapshot(); !s.Sprinting || math32.Abs(s.SpeedRatio-2) > 1e-3 {
		t.Fatalf("expected to sprint at full speed: %+v", s)
	}

	c.SprintStop()
	c.CrouchStart()
	s := c.Snapshot()
	if !s.Sliding || !s.Crouched || s.Mode != movement.ModeSlide || !s.Grounded {
		t.Fatalf("expected to slide: %+v", s)
	}

	c.CrouchStop()
	if s := c.Snapshot(); s.Sliding || s.Crouched {
		t.Fatalf("expected the slide to end on crouch release: %+v", s)
	}
}

func TestCrouchWithoutSpeed(t *testing.T) {
	c := newCharacter(t, -1000, 0)
	c.CrouchStart()
	if s := c.Snapshot(); s.Sliding || !s.Crouched {
		t.Fatalf("expected a plain crouch: %+v", s)
	}
}

func TestJump(t *testing.T) {
	c := newCharacter(t, -1000, 0)
	c.JumpStart()
	c.Tick(dt)
	s := c.Snapshot()
	if !s.JumpRequested || !s.InAir || s.VerticalVelocity <= 0 {
		t.Fatalf("expected to be jumping: %+v", s)
	}
	c.JumpStop()
	if c.Snapshot().JumpRequested {
		t.Fatalf("jump flag not cleared")
	}
	tickFor(c, 90)
	if !c.Snapshot().Grounded {
		t.Fatalf("expected to land")
	}
}

func TestInputIgnoredDuringParkour(t *testing.T) {
	c := newCharacter(t, 200, 0)
	if err := c.TriggerParkour(); err != nil {
		t.Fatalf("expected the vault to start: %v", err)
	}

	c.SprintStart()
	c.CrouchStart()
	c.JumpStart()
	if st := c.Movement().State(); st.SprintRequested || st.CrouchRequested {
		t.Fatalf("input accepted during the arc: %+v", st)
	}
	s := c.Snapshot()
	if !s.Parkouring || !s.Vaulting || s.Mantling || !s.InAir {
		t.Fatalf("unexpected parkour flags: %+v", s)
	}
	if s.JumpRequested {
		t.Fatalf("jump reported during the arc")
	}

	c.SetMoveAxis(0, 1)
	for i := 0; i < 120 && c.Parkour().Active(); i++ {
		c.Tick(dt)
	}
	s = c.Snapshot()
	if s.Parkouring || s.LastOutcome != parkour.OutcomeCompleted {
		t.Fatalf("expected the vault to complete: %+v", s)
	}
}

func TestEventApply(t *testing.T) {
	c := newCharacter(t, -1000, 0)

	events := []Event{
		{Kind: EventMove, X: 0, Y: 1},
		{Kind: EventLook, X: 90, Y: 0},
		{Kind: EventSprintStart},
	}
	for _, e := range events {
		if err := e.Apply(c); err != nil {
			t.Fatalf("apply %v: %v", e.Kind, err)
		}
	}
	if c.moveAxis != (mgl32.Vec2{0, 1}) || c.Movement().Yaw() != 90 || !c.Movement().State().SprintRequested {
		t.Fatalf("events not applied")
	}

	if err := (Event{Kind: EventParkour}).Apply(c); !errors.Is(err, parkour.ErrNoObstacle) {
		t.Fatalf("expected ErrNoObstacle, got %v", err)
	}
	if err := (Event{Kind: "teleport"}).Apply(c); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
}

func TestSpawnEndsArc(t *testing.T) {
	c := newCharacter(t, 200, 0)
	if err := c.TriggerParkour(); err != nil {
		t.Fatalf("expected the vault to start: %v", err)
	}
	c.Spawn(mgl32.Vec3{-1000, 0, 90.15}, 0)
	if c.Parkour().Active() || c.Movement().InputLocked() || c.Scheduler().Len() != 0 {
		t.Fatalf("spawn did not end the arc")
	}
	if c.Parkour().LastOutcome() != parkour.OutcomeInterrupted {
		t.Fatalf("expected an interrupted outcome, got %v", c.Parkour().LastOutcome())
	}
	if c.Movement().Mode() != movement.ModeWalking {
		t.Fatalf("expected to stand after spawning, got %v", c.Movement().Mode())
	}
}
