package audio

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
)

// Engine owns the audio clock, the mixer and the music voice
// The clock is the count of frames the output has pulled; it is never synced to the frame loop
type Engine struct {
	cfg  Config
	out  Output
	rate beep.SampleRate

	mixer *beep.Mixer
	clock *clockStreamer
	ctrl  *beep.Ctrl // master pause, models a suspended device

	music *beep.Ctrl

	running   atomic.Bool
	suspended atomic.Bool

	scheduled atomic.Uint64

	mu sync.Mutex // serializes lifecycle and music changes
}

// NewEngine creates a stopped engine on the given output
func NewEngine(cfg Config, out Output) *Engine {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	if cfg.BufferDuration <= 0 {
		cfg.BufferDuration = DefaultConfig().BufferDuration
	}
	cfg.MasterVolume = clamp01(cfg.MasterVolume)
	cfg.MusicVolume = clamp01(cfg.MusicVolume)

	mixer := &beep.Mixer{}
	clock := &clockStreamer{s: mixer}
	return &Engine{
		cfg:   cfg,
		out:   out,
		rate:  beep.SampleRate(cfg.SampleRate),
		mixer: mixer,
		clock: clock,
		ctrl:  &beep.Ctrl{Streamer: clock},
	}
}

// Start opens the output and begins pulling the mixer
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.cfg.Enabled {
		return ErrDisabled
	}
	if e.running.Load() {
		return ErrAlreadyRunning
	}
	if e.out == nil {
		return ErrNoDevice
	}
	if err := e.out.Init(e.rate, e.rate.N(e.cfg.BufferDuration)); err != nil {
		return fmt.Errorf("%w: %v", ErrNoDevice, err)
	}
	e.out.Play(e.ctrl)
	e.running.Store(true)
	return nil
}

// Stop silences everything and releases the output, idempotent
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.out.Lock()
	e.mixer.Clear()
	e.music = nil
	e.out.Unlock()
	e.out.Close()
}

// Running reports whether sounds are audible and the clock advances
func (e *Engine) Running() bool {
	return e.running.Load() && !e.suspended.Load()
}

// SampleRate returns the engine rate
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Now returns the audio clock in seconds
func (e *Engine) Now() float64 {
	return float64(e.clock.frames()) / float64(e.rate)
}

// Suspend freezes output and the clock, as a blocked device would
func (e *Engine) Suspend() {
	if !e.running.Load() || !e.suspended.CompareAndSwap(false, true) {
		return
	}
	e.out.Lock()
	e.ctrl.Paused = true
	e.out.Unlock()
}

// Resume restarts a suspended engine; the clock continues from where it froze
func (e *Engine) Resume() {
	if !e.running.Load() || !e.suspended.CompareAndSwap(true, false) {
		return
	}
	e.out.Lock()
	e.ctrl.Paused = false
	e.out.Unlock()
}

// Play starts a sound immediately
func (e *Engine) Play(s Sound) bool {
	return e.PlayAt(s, -1)
}

// PlayAt starts a sound at audio clock time when, sample accurate
// Times in the past play immediately
func (e *Engine) PlayAt(s Sound, when float64) bool {
	if !e.Running() {
		return false
	}
	st := synthesize(s, e.rate)
	if st == nil {
		return false
	}
	st = newVolume(st, e.cfg.MasterVolume)

	e.out.Lock()
	delay := 0
	if when >= 0 {
		if d := when - e.Now(); d > 0 {
			delay = e.rate.N(time.Duration(d * float64(time.Second)))
		}
	}
	if delay > 0 {
		st = beep.Seq(beep.Silence(delay), st)
	}
	e.mixer.Add(st)
	e.out.Unlock()

	e.scheduled.Add(1)
	return true
}

// Scheduled returns the total count of sounds handed to the mixer
func (e *Engine) Scheduled() uint64 {
	return e.scheduled.Load()
}

// PlayTrack loops a decoded track as the music voice, replacing any current music
func (e *Engine) PlayTrack(t *Track) error {
	if t == nil {
		return ErrEmptyTrack
	}
	return e.setMusic(t.loop())
}

// PlayDrumLoop starts the generated groove as the music voice
func (e *Engine) PlayDrumLoop(bpm int) error {
	return e.setMusic(newDrumLoop(e.rate, bpm))
}

func (e *Engine) setMusic(s beep.Streamer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.Load() {
		return ErrNotRunning
	}
	ctrl := &beep.Ctrl{Streamer: newVolume(s, e.cfg.MasterVolume*e.cfg.MusicVolume)}

	e.out.Lock()
	if e.music != nil {
		// A nil streamer makes the Ctrl report drained so the mixer drops it
		e.music.Streamer = nil
	}
	e.music = ctrl
	e.mixer.Add(ctrl)
	e.out.Unlock()
	return nil
}

// StopMusic removes the music voice
func (e *Engine) StopMusic() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running.Load() || e.music == nil {
		return
	}
	e.out.Lock()
	e.music.Streamer = nil
	e.music = nil
	e.out.Unlock()
}

// MusicPlaying reports whether a music voice is active
func (e *Engine) MusicPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.music != nil
}

// Voices returns the number of streamers in the mixer
func (e *Engine) Voices() int {
	if e.out == nil {
		return 0
	}
	e.out.Lock()
	defer e.out.Unlock()
	return e.mixer.Len()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
