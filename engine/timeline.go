package engine

import (
	"time"

	"github.com/spokedu77-ops/flowrunner/parameter"
)

// SlotKind is the displayed meaning of a timeline slot
type SlotKind int

const (
	SlotLevel SlotKind = iota
	SlotRest
	SlotEnd
)

// Slot is one entry of the level timeline
type Slot struct {
	Kind     SlotKind
	Level    int
	Duration time.Duration // simulated for levels, wall clock for rests
}

// Timeline is the fixed ordered session plan
type Timeline []Slot

// DefaultTimeline plays every level with a rest between, then ends
func DefaultTimeline() Timeline {
	var tl Timeline
	for lvl := 1; lvl <= parameter.LevelCount; lvl++ {
		if lvl > 1 {
			tl = append(tl, Slot{Kind: SlotRest, Duration: parameter.RestDuration})
		}
		tl = append(tl, Slot{
			Kind:     SlotLevel,
			Level:    lvl,
			Duration: time.Duration(parameter.LevelDuration(lvl) * float64(time.Second)),
		})
	}
	return append(tl, Slot{Kind: SlotEnd})
}

// At returns the slot at i, the end slot when out of range
func (tl Timeline) At(i int) Slot {
	if i < 0 || i >= len(tl) {
		return Slot{Kind: SlotEnd}
	}
	return tl[i]
}

// IndexOfLevel returns the slot index of a level, clamped to a playable level
func (tl Timeline) IndexOfLevel(level int) int {
	level = parameter.ClampLevel(level)
	for i, s := range tl {
		if s.Kind == SlotLevel && s.Level == level {
			return i
		}
	}
	return 0
}

// PlayDuration sums every level slot
func (tl Timeline) PlayDuration() time.Duration {
	var d time.Duration
	for _, s := range tl {
		if s.Kind == SlotLevel {
			d += s.Duration
		}
	}
	return d
}

// RestDuration sums every rest slot
func (tl Timeline) RestDuration() time.Duration {
	var d time.Duration
	for _, s := range tl {
		if s.Kind == SlotRest {
			d += s.Duration
		}
	}
	return d
}
