package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is the device side of the engine
// Lock/Unlock must exclude the device from streaming while the mixer is mutated
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the system device via beep/speaker
type SpeakerOutput struct{}

// NewSpeakerOutput returns the default device output
func NewSpeakerOutput() *SpeakerOutput {
	return &SpeakerOutput{}
}

func (SpeakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}

func (SpeakerOutput) Play(s beep.Streamer) { speaker.Play(s) }
func (SpeakerOutput) Lock()                { speaker.Lock() }
func (SpeakerOutput) Unlock()              { speaker.Unlock() }

func (SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// ManualOutput is pulled by the caller instead of a device
// Headless runs and tests advance the audio clock with Pump
type ManualOutput struct {
	mu        sync.Mutex
	streamers []beep.Streamer
	rate      beep.SampleRate
	initErr   error
	closed    bool
}

// NewManualOutput creates an output; a non-nil initErr makes Init fail
func NewManualOutput(initErr error) *ManualOutput {
	return &ManualOutput{initErr: initErr}
}

func (m *ManualOutput) Init(rate beep.SampleRate, _ int) error {
	if m.initErr != nil {
		return m.initErr
	}
	m.rate = rate
	return nil
}

func (m *ManualOutput) Play(s beep.Streamer) {
	m.mu.Lock()
	m.streamers = append(m.streamers, s)
	m.mu.Unlock()
}

func (m *ManualOutput) Lock()   { m.mu.Lock() }
func (m *ManualOutput) Unlock() { m.mu.Unlock() }

func (m *ManualOutput) Close() {
	m.mu.Lock()
	m.streamers = nil
	m.closed = true
	m.mu.Unlock()
}

// Pump streams n frames from every playing streamer and returns their sum
func (m *ManualOutput) Pump(n int) [][2]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][2]float64, n)
	if m.closed {
		return out
	}
	buf := make([][2]float64, n)
	live := m.streamers[:0]
	for _, s := range m.streamers {
		got, ok := s.Stream(buf)
		for i := 0; i < got; i++ {
			out[i][0] += buf[i][0]
			out[i][1] += buf[i][1]
		}
		if ok {
			live = append(live, s)
		}
	}
	m.streamers = live
	return out
}

// PumpDuration pumps the number of frames covering seconds at the initialized rate
func (m *ManualOutput) PumpDuration(seconds float64) [][2]float64 {
	return m.Pump(int(seconds * float64(m.rate)))
}
