// Package quality tracks frame pacing and steps visual effect quality down under sustained load
package quality

import "github.com/spokedu77-ops/flowrunner/parameter"

// Tier is a discrete visual quality level
type Tier int

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "high"
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "unknown"
	}
}

// Scale holds per-tier multipliers read by visual effect producers
type Scale struct {
	SpeedLines float64
	Vignette   float64
	Grain      float64
}

var tierScales = [...]Scale{
	TierHigh:   {SpeedLines: 1.0, Vignette: 1.0, Grain: 1.0},
	TierMedium: {SpeedLines: 0.6, Vignette: 0.8, Grain: 0.5},
	TierLow:    {SpeedLines: 0.3, Vignette: 0.6, Grain: 0},
}

// Monitor samples frame durations and downgrades the tier when FPS stays low
// Tiers only move down within a session
type Monitor struct {
	samples [parameter.QualityWindow]float64
	head    int
	count   int
	sum     float64

	tier        Tier
	lowFor      float64 // continuous seconds spent below threshold
	sinceChange float64 // seconds since the last tier change

	threshold float64
	sustain   float64
	cooldown  float64

	// OnChange is invoked after a downgrade
	OnChange func(from, to Tier)
}

// NewMonitor creates a monitor at TierHigh using the default thresholds
func NewMonitor() *Monitor {
	return &Monitor{
		tier:        TierHigh,
		threshold:   parameter.QualityLowFPS,
		sustain:     parameter.QualitySustain,
		cooldown:    parameter.QualityCooldown,
		sinceChange: parameter.QualityCooldown,
	}
}

// Sample records one frame duration in seconds and re-evaluates the tier
func (m *Monitor) Sample(dt float64) {
	if dt <= 0 {
		return
	}

	if m.count == len(m.samples) {
		m.sum -= m.samples[m.head]
	} else {
		m.count++
	}
	m.samples[m.head] = dt
	m.sum += dt
	m.head = (m.head + 1) % len(m.samples)

	m.sinceChange += dt

	if m.FPS() < m.threshold {
		m.lowFor += dt
	} else {
		m.lowFor = 0
	}

	// Epsilon absorbs float accumulation of repeated dt
	if m.lowFor+1e-9 >= m.sustain && m.sinceChange+1e-9 >= m.cooldown && m.tier < TierLow {
		from := m.tier
		m.tier++
		m.lowFor = 0
		m.sinceChange = 0
		if m.OnChange != nil {
			m.OnChange(from, m.tier)
		}
	}
}

// FPS returns the average-derived frame rate over the window, 0 before any sample
func (m *Monitor) FPS() float64 {
	if m.count == 0 || m.sum <= 0 {
		return 0
	}
	return float64(m.count) / m.sum
}

// Tier returns the current quality tier
func (m *Monitor) Tier() Tier {
	return m.tier
}

// Scale returns the multipliers of the current tier
func (m *Monitor) Scale() Scale {
	return tierScales[m.tier]
}

// ScaleFor returns the multipliers of a tier
func ScaleFor(t Tier) Scale {
	if t < TierHigh || t > TierLow {
		t = TierLow
	}
	return tierScales[t]
}
