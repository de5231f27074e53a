package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
)

// drumStep flags which voices hit on an eighth-note step
type drumStep uint8

const (
	hitKick drumStep = 1 << iota
	hitSnare
	hitHat
)

// drumPattern is one bar of eighth notes
var drumPattern = [8]drumStep{
	hitKick | hitHat,
	hitHat,
	hitSnare | hitHat,
	hitHat,
	hitKick | hitHat,
	hitKick | hitHat,
	hitSnare | hitHat,
	hitHat,
}

// drumLoop is an endless procedurally generated kick/snare/hat groove
type drumLoop struct {
	rate      beep.SampleRate
	stepLen   int
	pos       int
	kickPhase float64
	rng       *rand.Rand
}

// newDrumLoop creates a groove at bpm with eighth-note steps
func newDrumLoop(rate beep.SampleRate, bpm int) *drumLoop {
	if bpm <= 0 {
		bpm = 120
	}
	stepLen := int(float64(rate) * 60 / float64(bpm) / 2)
	return &drumLoop{
		rate:    rate,
		stepLen: stepLen,
		rng:     rand.New(rand.NewPCG(uint64(bpm), 0x5eed)),
	}
}

func (d *drumLoop) Stream(samples [][2]float64) (int, bool) {
	sr := float64(d.rate)
	for i := range samples {
		step := drumPattern[(d.pos/d.stepLen)%len(drumPattern)]
		inStep := d.pos % d.stepLen
		if inStep == 0 {
			d.kickPhase = 0
		}
		t := float64(inStep) / sr

		var v float64
		if step&hitKick != 0 {
			// Pitch drops from 150Hz toward 50Hz
			freq := 50 + 100*math.Exp(-t*30)
			d.kickPhase += freq / sr
			v += 0.55 * math.Exp(-t*9) * math.Sin(2*math.Pi*d.kickPhase)
		}
		if step&hitSnare != 0 {
			noise := d.rng.Float64()*2 - 1
			v += 0.25 * math.Exp(-t*18) * noise
		}
		if step&hitHat != 0 {
			noise := d.rng.Float64()*2 - 1
			v += 0.07 * math.Exp(-t*70) * noise
		}

		samples[i][0] = v
		samples[i][1] = v
		d.pos++
	}
	return len(samples), true
}

func (d *drumLoop) Err() error { return nil }
