// Package feedback turns user reactions to generated images into token score
// updates. Only the learned and exploratory segments of a generation's prompt
// are scored; core and user tokens carry no learned weight.
package feedback

import (
	"fmt"
	"time"
)

// EventType is a user reaction to a generated image
type EventType string

const (
	TypeSave       EventType = "save"
	TypeShare      EventType = "share"
	TypeRemix      EventType = "remix"
	TypeView       EventType = "view" // resolved to long/short by dwell time
	TypeViewLong   EventType = "view-long"
	TypeViewShort  EventType = "view-short"
	TypeDislike    EventType = "dislike"
	TypeIrrelevant EventType = "irrelevant"
)

// dwell time above which a view counts as engaged
const LongViewThreshold = 5 * time.Second

// fixed reward table; not configurable at runtime
var rewards = map[EventType]float64{
	TypeSave:       1.0,
	TypeShare:      0.9,
	TypeRemix:      0.8,
	TypeViewLong:   0.5,
	TypeViewShort:  0.1,
	TypeDislike:    -0.5,
	TypeIrrelevant: -1.0,
}

// Event is one feedback submission against a persisted generation
type Event struct {
	GenerationID      string    `json:"generation_id"`
	UserID            string    `json:"user_id"`
	Type              EventType `json:"feedback_type"`
	TimeViewedSeconds float64   `json:"time_viewed_seconds,omitempty"`
}

// Delta reports one token's score movement caused by an event
type Delta struct {
	Token       string  `json:"token"`
	Segment     string  `json:"segment"` // "learned" or "exploratory"
	Reward      float64 `json:"reward"`
	NewScore    float64 `json:"new_score"`
	Observation int     `json:"observation_count"`
}

// resolves the event to its reward, folding bare views into long or short by
// dwell time
func (e Event) Reward() (float64, error) {
	t := e.Type

	if t == TypeView {
		if time.Duration(e.TimeViewedSeconds*float64(time.Second)) > LongViewThreshold {
			t = TypeViewLong
		} else {
			t = TypeViewShort
		}
	}

	r, ok := rewards[t]
	if !ok {
		return 0, fmt.Errorf("unknown feedback type %q", e.Type)
	}

	return r, nil
}

// Valid reports whether the event names a known feedback type
func (e Event) Valid() bool {
	if e.Type == TypeView {
		return true
	}

	_, ok := rewards[e.Type]
	return ok
}
