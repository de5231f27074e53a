package audio

import (
	"errors"
	"time"

	"github.com/spokedu77-ops/flowrunner/parameter"
)

// Sound identifies a synthesized effect
type Sound int

const (
	SoundTick      Sound = iota // listen beat
	SoundAction                 // action beat
	SoundAccent                 // first action beat of a round
	SoundJump
	SoundLand
	SoundPunch
	SoundCoin
	SoundWhoosh
	SoundCountdown
	SoundGo
	soundCount
)

var soundNames = [soundCount]string{
	"tick", "action", "accent", "jump", "land", "punch", "coin", "whoosh", "countdown", "go",
}

func (s Sound) String() string {
	if s < 0 || s >= soundCount {
		return "unknown"
	}
	return soundNames[s]
}

// Config controls the audio engine
type Config struct {
	Enabled        bool
	SampleRate     int
	BufferDuration time.Duration
	MasterVolume   float64 // 0..1
	MusicVolume    float64 // 0..1, applied on top of master
}

// DefaultConfig returns enabled audio at the default rate and volumes
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		SampleRate:     parameter.AudioSampleRate,
		BufferDuration: parameter.AudioBufferDuration,
		MasterVolume:   parameter.AudioMasterVolume,
		MusicVolume:    parameter.AudioMusicVolume,
	}
}

// Sentinel errors
var (
	ErrDisabled          = errors.New("audio disabled by configuration")
	ErrNoDevice          = errors.New("audio output unavailable")
	ErrAlreadyRunning    = errors.New("audio engine already running")
	ErrNotRunning        = errors.New("audio engine not running")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrEmptyTrack        = errors.New("audio track has no samples")
)
