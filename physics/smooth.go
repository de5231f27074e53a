package physics

import (
	"math"

	"github.com/spokedu77-ops/flowrunner/parameter"
)

// Approach converts a per-reference-frame smoothing fraction into the fraction for dt seconds
// Equivalent to 1-e^(-k*dt) with k = -ln(1-fraction)*60
func Approach(fraction, dt float64) float64 {
	if fraction <= 0 || dt <= 0 {
		return 0
	}
	if fraction >= 1 {
		return 1
	}
	return 1 - math.Pow(1-fraction, dt*parameter.ReferenceFPS)
}

// Decay returns the multiplier that shrinks a value by fraction per reference frame over dt
func Decay(fraction, dt float64) float64 {
	return 1 - Approach(fraction, dt)
}

// Smooth moves current toward target by the dt-scaled fraction
func Smooth(current, target, fraction, dt float64) float64 {
	return current + (target-current)*Approach(fraction, dt)
}

// Lerp interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 bounds t into [0,1]
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
