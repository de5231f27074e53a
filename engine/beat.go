package engine

import (
	"math"
	"time"

	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/physics"
)

// Cue is the category of a scheduled beat
type Cue int

const (
	CueListen Cue = iota // sub-beats before ListenBeats, no action expected
	CueAction
	CueAccent // first action beat of a round
)

// CueFor classifies a sub-beat within its round
func CueFor(subBeat int) Cue {
	switch {
	case subBeat < parameter.ListenBeats:
		return CueListen
	case subBeat == parameter.ListenBeats:
		return CueAccent
	default:
		return CueAction
	}
}

func (c Cue) sound() audio.Sound {
	switch c {
	case CueAccent:
		return audio.SoundAccent
	case CueAction:
		return audio.SoundAction
	default:
		return audio.SoundTick
	}
}

// VisualDelay is the wall-clock delay before the visual of a beat scheduled at audio time beatTime
// This is the only place audio clock seconds are converted into a wall-clock duration
func VisualDelay(beatTime, audioNow float64) time.Duration {
	d := beatTime - audioNow
	if d <= 0 || math.IsNaN(d) {
		return 0
	}
	return time.Duration(d * float64(time.Second))
}

// scheduleBeats emits every beat that falls inside the lookahead window of the audio clock
// Beats whose time already passed are skipped. After the audio clock was unavailable the
// schedule re-anchors slightly ahead of now instead of replaying what was missed
func scheduleBeats(b *BeatState, audioNow float64, running bool, emit func(cue Cue, at float64)) int {
	if !running {
		if b.Armed {
			b.Suspended = true
		}
		return 0
	}

	switch {
	case !b.Armed:
		b.Armed = true
		b.Suspended = false
		b.SubBeat = 0
		b.Round = 0
		b.NextNoteTime = audioNow + parameter.BeatAnchorLead
	case b.Suspended:
		b.Suspended = false
		if b.NextNoteTime < audioNow {
			b.NextNoteTime = audioNow + parameter.BeatAnchorLead
		}
	}

	emitted := 0
	horizon := audioNow + parameter.BeatLookahead
	for b.NextNoteTime < horizon {
		if b.NextNoteTime >= audioNow {
			emit(CueFor(b.SubBeat), b.NextNoteTime)
			emitted++
		} else {
			b.Skipped++
		}
		b.NextNoteTime += parameter.BeatStep
		b.SubBeat++
		if b.SubBeat == parameter.BeatsPerRound {
			b.SubBeat = 0
			b.Round++
		}
	}
	return emitted
}

// beatVisual applies the visual half of a beat when its delay expires
func beatVisual(b *BeatState, cue Cue) {
	switch cue {
	case CueAccent:
		b.BeatPulse = math.Max(b.BeatPulse, parameter.AccentPulse)
		b.FlashPulse = math.Min(1, b.FlashPulse+parameter.AccentFlash)
	case CueAction:
		b.BeatPulse = math.Max(b.BeatPulse, 1)
	default:
		b.BeatPulse = math.Max(b.BeatPulse, 0.5)
	}
}

// updatePulse drives the cosmetic gameTime pulse and decays both accumulators
// It keeps the visuals alive when the audio clock is unavailable
func updatePulse(b *BeatState, gameTime, dt float64) (pulses int) {
	for gameTime >= b.NextPulseTime {
		b.FlashPulse = math.Min(1, b.FlashPulse+parameter.AmbientFlash)
		b.NextPulseTime += parameter.PulseStep
		pulses++
	}
	b.BeatPulse *= physics.Decay(parameter.BeatPulseFraction, dt)
	b.FlashPulse *= physics.Decay(parameter.FlashFraction, dt)
	return pulses
}
