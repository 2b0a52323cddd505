package scenario

import "github.com/oomph-ac/locomotion/character"

// Demo returns the built in tour of the reference level: a vault over the crate, a rejected
// trigger at the untraversable wall, a mantle onto the ledge and a sprint into a slide.
func Demo() []Scenario {
	return []Scenario{
		{
			Name:     "vault",
			Spawn:    Spawn{X: 100},
			Duration: 2,
			Timeline: []Step{
				{At: 0, Event: character.Event{Kind: character.EventMove, Y: 1}},
				{At: 0.4, Event: character.Event{Kind: character.EventParkour}},
				{At: 1.2, Event: character.Event{Kind: character.EventMove}},
			},
		},
		{
			Name:     "mantle",
			Spawn:    Spawn{X: 800},
			Duration: 1.5,
			Timeline: []Step{
				{At: 0, Event: character.Event{Kind: character.EventParkour}},
			},
		},
		{
			Name:     "wall",
			Spawn:    Spawn{X: 1500},
			Duration: 0.5,
			Timeline: []Step{
				{At: 0, Event: character.Event{Kind: character.EventParkour}},
			},
		},
		{
			Name:     "sprint slide",
			Spawn:    Spawn{X: -1500, Y: -1000},
			Duration: 4,
			Timeline: []Step{
				{At: 0, Event: character.Event{Kind: character.EventMove, Y: 1}},
				{At: 0, Event: character.Event{Kind: character.EventSprintStart}},
				{At: 2, Event: character.Event{Kind: character.EventSprintStop}},
				{At: 2, Event: character.Event{Kind: character.EventCrouchStart}},
				{At: 3, Event: character.Event{Kind: character.EventCrouchStop}},
				{At: 3, Event: character.Event{Kind: character.EventMove}},
			},
		},
	}
}
