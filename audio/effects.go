package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator is a finite wave with an optional linear frequency sweep
type oscillator struct {
	from, to float64
	phase    float64
	position int
	duration int
	wave     WaveType
	rate     beep.SampleRate
}

// newOscillator generates a constant-pitch wave for duration
func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newSweep(freq, freq, duration, wave, rate)
}

// newSweep glides linearly from one frequency to another over duration
func newSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{from: from, to: to, duration: rate.N(duration), wave: wave, rate: rate}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping and ends the stream at duration
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if remain := e.total - e.position; len(samples) > remain {
		samples = samples[:remain]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.total - e.release
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.release > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; 0 becomes silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is an enveloped constant oscillator
func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// sweepTone is an enveloped sweeping oscillator
func sweepTone(from, to float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return newEnvelope(newSweep(from, to, d, wave, rate), d, attack, release, rate)
}

// synthesize builds a fresh unity-master streamer for a sound, nil for unknown sounds
func synthesize(s Sound, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch s {
	case SoundTick:
		return newVolume(tone(1200, 40*ms, 2*ms, 30*ms, WaveSine, rate), 0.35)
	case SoundAction:
		return newVolume(tone(noteFreq(noteA5), 60*ms, 2*ms, 45*ms, WaveSine, rate), 0.5)
	case SoundAccent:
		return beep.Mix(
			newVolume(tone(noteFreq(noteA5), 90*ms, 2*ms, 70*ms, WaveSine, rate), 0.5),
			newVolume(tone(noteFreq(noteA6), 90*ms, 2*ms, 40*ms, WaveSquare, rate), 0.15),
		)
	case SoundJump:
		return newVolume(sweepTone(300, 700, 120*ms, 5*ms, 60*ms, WaveSaw, rate), 0.25)
	case SoundLand:
		return beep.Mix(
			newVolume(sweepTone(180, 60, 140*ms, 2*ms, 110*ms, WaveSine, rate), 0.6),
			newVolume(tone(0, 60*ms, 1*ms, 50*ms, WaveNoise, rate), 0.12),
		)
	case SoundPunch:
		return beep.Mix(
			newVolume(tone(0, 90*ms, 1*ms, 70*ms, WaveNoise, rate), 0.4),
			newVolume(sweepTone(150, 50, 120*ms, 1*ms, 90*ms, WaveSine, rate), 0.6),
		)
	case SoundCoin:
		return newVolume(beep.Seq(
			tone(noteFreq(noteB5), 80*ms, 5*ms, 40*ms, WaveSquare, rate),
			tone(noteFreq(noteE6), 280*ms, 5*ms, 200*ms, WaveSquare, rate),
		), 0.2)
	case SoundWhoosh:
		return newVolume(tone(0, 300*ms, 150*ms, 150*ms, WaveNoise, rate), 0.3)
	case SoundCountdown:
		sine, err := generators.SineTone(rate, noteFreq(noteE5))
		if err != nil {
			return nil
		}
		return newVolume(newEnvelope(beep.Take(rate.N(120*ms), sine), 120*ms, 3*ms, 60*ms, rate), 0.45)
	case SoundGo:
		return newVolume(tone(noteFreq(noteE6), 250*ms, 3*ms, 180*ms, WaveSine, rate), 0.5)
	default:
		return nil
	}
}
