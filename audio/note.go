package audio

import "math"

// MIDI note numbers of the effect pitches
const (
	noteE5 = 76
	noteA5 = 81
	noteB5 = 83
	noteE6 = 88
	noteA6 = 93
)

// noteFreq returns the equal-tempered frequency of a MIDI note, A4 (69) = 440Hz
func noteFreq(midi int) float64 {
	if midi < 0 || midi >= 128 {
		return 0
	}
	return 440 * math.Pow(2, float64(midi-69)/12)
}
