package character

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/oerror"
)

// EventKind names a discrete input event.
type EventKind string

const (
	EventMove        EventKind = "move"
	EventLook        EventKind = "look"
	EventSprintStart EventKind = "sprint_start"
	EventSprintStop  EventKind = "sprint_stop"
	EventCrouchStart EventKind = "crouch_start"
	EventCrouchStop  EventKind = "crouch_stop"
	EventJump        EventKind = "jump"
	EventJumpStart   EventKind = "jump_start"
	EventJumpStop    EventKind = "jump_stop"
	EventParkour     EventKind = "parkour"
)

var ErrUnknownEvent = oerror.New("unknown input event")

// Event is a single input event. X and Y are only used by move and look events.
type Event struct {
	Kind EventKind `yaml:"event"`
	X    float32   `yaml:"x"`
	Y    float32   `yaml:"y"`
}

// Apply delivers the event to the character. The error is only non-nil for unknown events and
// rejected parkour triggers.
func (e Event) Apply(c *Character) error {
	switch e.Kind {
	case EventMove:
		c.SetMoveAxis(e.X, e.Y)
	case EventLook:
		c.Look(e.X, e.Y)
	case EventSprintStart:
		c.SprintStart()
	case EventSprintStop:
		c.SprintStop()
	case EventCrouchStart:
		c.CrouchStart()
	case EventCrouchStop:
		c.CrouchStop()
	case EventJump, EventJumpStart:
		c.JumpStart()
	case EventJumpStop:
		c.JumpStop()
	case EventParkour:
		return c.TriggerParkour()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e.Kind)
	}
	return nil
}

// SetMoveAxis sets the held movement axis: x strafes right and y moves forward. The axis is
// applied every tick while input is accepted.
func (c *Character) SetMoveAxis(x, y float32) {
	c.moveAxis = mgl32.Vec2{x, y}
}

// Look turns the view by a look delta.
func (c *Character) Look(dx, dy float32) {
	c.move.Look(dx, dy)
}

// SprintStart requests sprinting. It is ignored while input is locked or an arc is running.
func (c *Character) SprintStart() {
	if !c.canMove() {
		return
	}
	c.move.SetSprintRequested(true)
}

// SprintStop ...
func (c *Character) SprintStop() {
	c.move.SetSprintRequested(false)
}

// CrouchStart crouches, starting a slide if the character is fast enough. It is ignored while
// input is locked or an arc is running.
func (c *Character) CrouchStart() {
	if !c.canMove() {
		return
	}
	if c.move.CanStartSlide() {
		c.move.StartSlide()
	}
	c.move.SetCrouchRequested(true)
}

// CrouchStop stands up, ending any slide.
func (c *Character) CrouchStop() {
	c.move.StopSlide()
	c.move.SetCrouchRequested(false)
}

// JumpStart jumps if the character is on the ground. It is ignored while input is locked or an
// arc is running.
func (c *Character) JumpStart() {
	if !c.canMove() {
		return
	}
	c.jumpRequested = true
	c.move.Jump()
}

// JumpStop ...
func (c *Character) JumpStop() {
	c.jumpRequested = false
}

// TriggerParkour tries to start a vault or mantle over the obstacle in front of the character.
func (c *Character) TriggerParkour() error {
	return c.park.Trigger()
}
