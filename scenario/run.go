package scenario

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/internal/logger"
	"github.com/oomph-ac/locomotion/parkour"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/utils"
	"go.uber.org/zap"
)

// Run plays the scenario with the given settings and reports what happened. Events due at or
// before a tick's start time are applied before that tick.
func Run(sc Scenario, s settings.Settings, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("scenario", sc.Name))

	lvl, err := sc.level()
	if err != nil {
		return nil, err
	}
	scene, err := lvl.Build(log)
	if err != nil {
		return nil, fmt.Errorf("build level %q: %w", lvl.Name, err)
	}

	rate := sc.TickRate
	if rate <= 0 {
		rate = s.Simulation.TickRate
	}
	if rate <= 0 {
		return nil, fmt.Errorf("scenario %s: "+game.ErrorInvalidTickRate, sc.Name, rate)
	}
	dt := 1 / float32(rate)
	ticks := int(math32.Ceil(sc.Duration * float32(rate)))

	c := character.New(scene, s, log)
	r := newReport(sc.Name, s.Simulation.HistorySize)
	c.SetCueSink(r)
	c.Spawn(sc.Spawn.location(s.Capsule.HalfHeight+s.Movement.Ground.FloorHoverDistance), sc.Spawn.Yaw)

	next := 0
	speeds := make([]float32, 0, ticks)
	for i := 0; i < ticks; i++ {
		now := float32(i) * dt
		for ; next < len(sc.Timeline) && sc.Timeline[next].At <= now; next++ {
			if err := r.apply(c, sc.Timeline[next].Event); err != nil {
				return nil, err
			}
		}

		c.Tick(dt)
		snap := c.Snapshot()
		r.observe(snap)
		speeds = append(speeds, game.HorizontalLen(snap.Velocity))
	}

	r.Ticks = ticks
	r.Duration = float32(ticks) * dt
	if len(speeds) > 0 {
		r.MeanSpeed = game.Mean(speeds)
		r.MedianSpeed = game.Median(speeds)
		r.SpeedStdDev = game.StandardDeviation(speeds)
	}

	log.Info("scenario finished", logger.Fields(r.Summary())...)
	return r, nil
}

// Report is the outcome of a scenario run.
type Report struct {
	Name     string
	Ticks    int
	Duration float32

	Triggers int
	// Started counts started arcs by type and Outcomes counts ended arcs by outcome.
	Started  map[parkour.Type]int
	Outcomes map[parkour.Outcome]int
	// Rejections counts rejected triggers by reason, in the order they first occurred.
	Rejections *orderedmap.OrderedMap[string, int]

	// StaminaMin and StaminaMax are stamina fractions.
	StaminaMin float32
	StaminaMax float32
	MaxSpeed   float32

	MeanSpeed   float32
	MedianSpeed float32
	SpeedStdDev float32

	Final   character.Snapshot
	history *utils.CircularQueue[character.Snapshot]
}

func newReport(name string, historySize int) *Report {
	return &Report{
		Name:       name,
		Started:    make(map[parkour.Type]int),
		Outcomes:   make(map[parkour.Outcome]int),
		Rejections: orderedmap.NewOrderedMap[string, int](),
		StaminaMin: math32.MaxFloat32,
		history:    utils.NewCircularQueue[character.Snapshot](historySize),
	}
}

// History returns the most recent snapshots, oldest first.
func (r *Report) History() []character.Snapshot {
	return r.history.Slice()
}

// Rejected returns how many triggers were rejected with err.
func (r *Report) Rejected(err error) int {
	n, _ := r.Rejections.Get(err.Error())
	return n
}

// CueStarted ...
func (r *Report) CueStarted(t parkour.Type) {
	r.Started[t]++
}

// CueEnded ...
func (r *Report) CueEnded(_ parkour.Type, outcome parkour.Outcome) {
	r.Outcomes[outcome]++
}

// Summary returns the headline numbers of the report as ordered diagnostic data.
func (r *Report) Summary() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("ticks", r.Ticks)
	data.Set("triggers", r.Triggers)
	data.Set("vaults", r.Started[parkour.TypeVault])
	data.Set("mantles", r.Started[parkour.TypeMantle])
	data.Set("completed", r.Outcomes[parkour.OutcomeCompleted])
	data.Set("interrupted", r.Outcomes[parkour.OutcomeInterrupted])
	for _, reason := range r.Rejections.Keys() {
		n, _ := r.Rejections.Get(reason)
		data.Set("rejected: "+reason, n)
	}
	data.Set("stamina_min", game.Round32(r.StaminaMin, 2))
	data.Set("stamina_max", game.Round32(r.StaminaMax, 2))
	data.Set("max_speed", game.Round32(r.MaxSpeed, 2))
	data.Set("mean_speed", game.Round32(r.MeanSpeed, 2))
	data.Set("final_location", game.RoundVec32(r.Final.Location, 2))
	data.Set("final_mode", r.Final.Mode.String())
	return data
}

// String renders the summary on one line.
func (r *Report) String() string {
	return r.Name + " " + logger.String(r.Summary())
}

func (r *Report) apply(c *character.Character, e character.Event) error {
	err := e.Apply(c)
	if e.Kind != character.EventParkour {
		return err
	}

	r.Triggers++
	if err == nil {
		return nil
	}
	if errors.Is(err, character.ErrUnknownEvent) {
		return err
	}
	n, _ := r.Rejections.Get(err.Error())
	r.Rejections.Set(err.Error(), n+1)
	return nil
}

func (r *Report) observe(snap character.Snapshot) {
	stamina := snap.StaminaFraction
	r.StaminaMin = min(r.StaminaMin, stamina)
	r.StaminaMax = max(r.StaminaMax, stamina)
	r.MaxSpeed = max(r.MaxSpeed, game.HorizontalLen(snap.Velocity))
	r.Final = snap
	// A zero history size disables the history.
	if r.history.Cap() > 0 {
		r.history.Append(snap)
	}
}
