package parkour

import (
	"errors"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/collision"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/internal/logger"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/timer"
	"go.uber.org/zap"
)

// Executor runs parkour arcs for a single body. An arc moves the body from its start to the apex
// and then to the target, with input locked, and always ends through End: on completion, on an
// unrecoverable block or when the failsafe fires.
type Executor struct {
	body  Body
	sched *timer.Scheduler
	cfg   settings.Parkour
	log   *zap.Logger
	cues  CueSink

	arc  *Arc
	last Outcome
}

// NewExecutor creates an idle executor. The scheduler must be advanced by the same simulation that
// ticks the executor.
func NewExecutor(body Body, sched *timer.Scheduler, cfg settings.Parkour, log *zap.Logger) *Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Executor{
		body:  body,
		sched: sched,
		cfg:   cfg,
		log:   log.Named("parkour"),
	}
}

// SetCueSink sets the receiver of animation cues. A nil sink disables cues.
func (e *Executor) SetCueSink(sink CueSink) {
	e.cues = sink
}

// Active returns true while an arc is in progress.
func (e *Executor) Active() bool {
	return e.arc != nil
}

// Vaulting ...
func (e *Executor) Vaulting() bool {
	return e.arc != nil && e.arc.Type == TypeVault
}

// Mantling ...
func (e *Executor) Mantling() bool {
	return e.arc != nil && e.arc.Type == TypeMantle
}

// Arc returns a copy of the arc in progress.
func (e *Executor) Arc() (Arc, bool) {
	if e.arc == nil {
		return Arc{}, false
	}
	return *e.arc, true
}

// LastOutcome returns how the most recent arc ended.
func (e *Executor) LastOutcome() Outcome {
	return e.last
}

// Trigger detects an obstacle in front of the body, plans an arc over it and starts it. Detection
// and planning complete before Trigger returns; on any rejection nothing is changed and the
// returned error tells why.
func (e *Executor) Trigger() error {
	if e.arc != nil || e.body.InputLocked() {
		return ErrBusy
	}

	obstacle, err := Detect(e.body, e.cfg.Detection)
	if err != nil {
		e.reject(err, obstacle)
		return err
	}
	plan, err := NewPlan(e.body, obstacle, e.cfg)
	if err != nil {
		e.reject(err, obstacle)
		return err
	}
	return e.Start(plan)
}

func (e *Executor) reject(err error, o Obstacle) {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("reason", err.Error())
	data.Set("location", e.body.Location())
	if !errors.Is(err, ErrNoObstacle) {
		data.Set("body", o.Front.Body)
	}
	if o.Type != TypeNone || errors.Is(err, ErrObstacleTooTall) {
		data.Set("height", o.Height)
		data.Set("type", o.Type.String())
	}
	e.log.Debug("parkour rejected", logger.Fields(data)...)
}

// Start begins executing a plan from the body's current location. Input is locked for the
// duration of the arc and a failsafe is armed that ends the arc as interrupted if it overruns.
func (e *Executor) Start(plan Plan) error {
	if e.arc != nil || e.body.InputLocked() {
		return ErrBusy
	}
	assert.IsTrue(plan.Type != TypeNone, game.ErrorArcWithoutType)

	arc := &Arc{
		Type:     plan.Type,
		Phase:    PhaseToApex,
		Start:    e.body.Location(),
		Apex:     plan.Apex,
		Target:   plan.Target,
		Duration: plan.ToApex,
		toTarget: plan.ToTarget,
	}
	e.body.LockInput()

	safety := e.cfg.Safety
	delay := max(safety.FailSafeMinDelay, plan.Total()+safety.FailSafeExtraTime)
	arc.failsafe = e.sched.After(delay, func() {
		if e.arc != arc {
			return
		}
		e.log.Warn("parkour failsafe fired", zap.Stringer("type", arc.Type), zap.Stringer("phase", arc.Phase))
		e.End(OutcomeInterrupted, true)
	})
	e.arc = arc

	if e.cues != nil {
		e.cues.CueStarted(arc.Type)
	}
	e.log.Debug("parkour started",
		zap.Stringer("type", arc.Type),
		zap.Any("start", arc.Start),
		zap.Any("apex", arc.Apex),
		zap.Any("target", arc.Target),
		zap.Float32("failsafe", delay),
	)
	return nil
}

// Tick advances the arc in progress by dt seconds.
func (e *Executor) Tick(dt float32) {
	arc := e.arc
	if arc == nil || dt <= 0 {
		return
	}

	switch arc.Phase {
	case PhaseToApex:
		if e.moveStep(arc, dt) && e.arc == arc {
			arc.Phase = PhaseToTarget
			arc.Elapsed = 0
			arc.Duration = arc.toTarget
		}
	case PhaseToTarget:
		if e.moveStep(arc, dt) && e.arc == arc {
			e.End(OutcomeCompleted, true)
		}
	default:
		assert.IsTrue(false, game.ErrorArcWithoutPhase, arc.Type)
	}
}

// End terminates the arc in progress with the given outcome, cancelling the failsafe and unlocking
// input. Without force it does nothing while idle.
func (e *Executor) End(outcome Outcome, force bool) {
	arc := e.arc
	if arc == nil && !force {
		return
	}
	e.arc = nil

	if arc != nil {
		e.sched.Cancel(arc.failsafe)
		e.last = outcome
		if e.cues != nil {
			e.cues.CueEnded(arc.Type, outcome)
		}
		if outcome == OutcomeInterrupted {
			e.log.Warn("parkour interrupted", zap.Stringer("type", arc.Type), zap.Stringer("phase", arc.Phase))
		} else {
			e.log.Debug("parkour ended", zap.Stringer("type", arc.Type), zap.Stringer("outcome", outcome))
		}
	}
	e.body.UnlockInput()
}

// moveStep moves the body toward the interpolated position of the current phase. It returns true
// once the phase is complete or the arc was ended by blocked path recovery.
func (e *Executor) moveStep(arc *Arc, dt float32) bool {
	arc.Duration = max(arc.Duration, e.cfg.Durations.MinPhase)
	arc.Elapsed += dt

	alpha := arc.Alpha()
	from, to := arc.Endpoints()
	before := e.body.Location()
	delta := game.Lerp(from, to, alpha).Sub(before)

	safety := e.cfg.Safety
	if e.trySafeMoveDelta(delta) ||
		e.trySafeMoveDelta(delta.Add(mgl32.Vec3{0, 0, safety.FallbackUp})) ||
		e.trySafeMoveDelta(delta.Add(e.body.Forward().Mul(safety.FallbackForward))) {
		e.body.SetVelocity(e.body.Location().Sub(before).Mul(1 / dt))
		return alpha >= 1
	}

	e.recover(arc)
	return true
}

// trySafeMoveDelta moves the body by delta, sliding along the first surface hit. It returns false
// if the body is hard blocked: the slide is stopped almost immediately, or there is nothing to
// slide along and the first hit came almost immediately.
func (e *Executor) trySafeMoveDelta(delta mgl32.Vec3) bool {
	abort := e.cfg.Safety.MoveStepBlockAbortTime

	hit, blocked := e.body.SafeMove(delta)
	if !blocked {
		return true
	}
	remaining := 1 - hit.Time
	if remaining <= game.KindaSmallNumber {
		return true
	}

	slide := game.PlaneProject(delta, hit.Normal).Mul(remaining)
	if game.IsNearlyZero(slide) {
		return hit.Time >= abort
	}
	hit, blocked = e.body.SafeMove(slide)
	return !blocked || hit.Time >= abort
}

// recover handles a step that could not make progress. A mantle is finished by placing the body at
// its target, or slightly above it, if the capsule fits there. Anything else interrupts the arc.
func (e *Executor) recover(arc *Arc) {
	e.log.Warn("parkour blocked, recovering", zap.Stringer("type", arc.Type), zap.Stringer("phase", arc.Phase), zap.Any("location", e.body.Location()))

	if arc.Type == TypeMantle && arc.Target != (mgl32.Vec3{}) {
		raised := arc.Target.Add(mgl32.Vec3{0, 0, e.cfg.Safety.TeleportRetryRaise})
		for _, pos := range []mgl32.Vec3{arc.Target, raised} {
			if e.fits(pos) {
				e.body.Teleport(pos)
				e.End(OutcomeCompleted, true)
				return
			}
		}
	}
	e.End(OutcomeInterrupted, true)
}

func (e *Executor) fits(pos mgl32.Vec3) bool {
	capsule := e.body.Capsule()
	return collision.Fits(e.body.Query(), pos, capsule.Radius+e.cfg.Landing.CapsuleInflate, capsule.HalfHeight, e.body.Filter())
}
