package parameter

import "time"

// Audio hardware settings
const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 50 * time.Millisecond
	AudioMasterVolume   = 0.8
	AudioMusicVolume    = 0.7
)

// Beat scheduling
// The scheduler works in audio clock seconds; the ambient pulse works in game seconds
const (
	// BeatStep is the sub-beat length (eighth notes at 120 BPM)
	BeatStep = 0.25

	// BeatsPerRound is the sub-beat count of one round
	BeatsPerRound = 16

	// ListenBeats is the count of leading sub-beats that are listen cues
	ListenBeats = 8

	// BeatLookahead is how far ahead of the audio clock beats are scheduled
	BeatLookahead = 0.1

	// BeatAnchorLead offsets the first beat after arming so it is never in the past
	BeatAnchorLead = 0.05

	// AccentPulse is the beat pulse value of an accented beat, plain beats use 1
	AccentPulse = 1.4

	// BeatPulseFraction decays the beat pulse accumulator
	BeatPulseFraction = 0.1

	// PulseStep is the ambient gameTime pulse period
	PulseStep = 0.5

	// FlashFraction decays the flash accumulator
	FlashFraction = 0.12

	// AmbientFlash is the flash value added by an ambient pulse
	AmbientFlash = 0.15

	// AccentFlash is added to the flash by the accented action beat
	AccentFlash = 0.25

	// PunchFlash is added to the flash when a box is smashed
	PunchFlash = 0.5

	// DrumBPM is the tempo of the generated fallback drum loop
	DrumBPM = 120
)

// LevelDuration returns the slot duration implied by a level's beat rounds
func LevelDuration(level int) float64 {
	return float64(Level(level).Rounds*BeatsPerRound) * BeatStep
}
