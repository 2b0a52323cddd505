package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/movement"
	"github.com/oomph-ac/locomotion/parkour"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/timer"
	"go.uber.org/zap"
)

// Character is a controllable first person character. It owns the movement component, the parkour
// executor and the scheduler that drives the parkour failsafe, and is the only writer of their
// state. A Character is not safe for concurrent use.
type Character struct {
	move  *movement.Component
	park  *parkour.Executor
	sched *timer.Scheduler

	cfg settings.Settings
	log *zap.Logger

	moveAxis      mgl32.Vec2
	jumpRequested bool
}

// New creates a character simulated against the query service. The character is not placed
// anywhere until Spawn is called.
func New(query collision.QueryService, s settings.Settings, log *zap.Logger) *Character {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Character{
		move:  movement.NewComponent(query, s.Capsule, s.Movement, log),
		sched: timer.NewScheduler(),
		cfg:   s,
		log:   log,
	}
	c.park = parkour.NewExecutor(c.move, c.sched, s.Parkour, log)
	return c
}

// Spawn places the character at pos facing yaw, ending any arc in progress.
func (c *Character) Spawn(pos mgl32.Vec3, yaw float32) {
	if c.park.Active() {
		c.park.End(parkour.OutcomeInterrupted, true)
	}
	c.move.SetRotation(yaw, 0)
	c.move.Teleport(pos)
	c.log.Debug("character spawned", zap.Any("location", c.move.Location()), zap.Stringer("mode", c.move.Mode()))
}

// Movement returns the movement component for read access.
func (c *Character) Movement() *movement.Component {
	return c.move
}

// Parkour returns the parkour executor for read access.
func (c *Character) Parkour() *parkour.Executor {
	return c.park
}

// Scheduler ...
func (c *Character) Scheduler() *timer.Scheduler {
	return c.sched
}

// SetCueSink forwards parkour animation cues to sink.
func (c *Character) SetCueSink(sink parkour.CueSink) {
	c.park.SetCueSink(sink)
}

// Now returns the simulation time of the character in seconds.
func (c *Character) Now() float64 {
	return c.sched.Now()
}

// Tick advances the character by dt seconds: movement first, then the parkour arc, then the
// scheduler, so a failsafe due this tick sees the arc after its last step.
func (c *Character) Tick(dt float32) {
	if dt <= 0 {
		return
	}
	if c.canMove() && c.moveAxis != (mgl32.Vec2{}) {
		c.move.AddInput(c.move.Forward(), c.moveAxis.Y())
		c.move.AddInput(c.move.Right(), c.moveAxis.X())
	}
	c.move.Tick(dt)
	c.park.Tick(dt)
	c.sched.Advance(dt)
}

// canMove reports whether movement style input is accepted.
func (c *Character) canMove() bool {
	return !c.move.InputLocked() && !c.park.Active()
}
