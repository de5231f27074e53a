package engine

import (
	"math"

	"github.com/spokedu77-ops/flowrunner/parameter"
)

// jumpApex is the share of progress spent rising
const jumpApex = 0.6

// JumpOffset returns the vertical offset at normalized progress t for a jump of height h
// Ease-out rise until the apex, then an ease-in cubic drop back to zero
func JumpOffset(t, h float64) float64 {
	switch {
	case t <= 0 || t >= 1:
		return 0
	case t < jumpApex:
		u := 1 - t/jumpApex
		return h * (1 - u*u)
	default:
		u := (t - jumpApex) / (1 - jumpApex)
		return h * (1 - u*u*u)
	}
}

// startJump begins a jump toward targetLane using the level's height and duration
func startJump(sim *Sim, from *Segment, targetLane int) {
	spec := parameter.Level(sim.Game.Level)
	j := &sim.Jump
	j.Jumping = true
	j.Progress = 0
	j.StartTime = sim.Game.GameTime
	j.Duration = spec.JumpDuration
	j.Height = spec.JumpHeight
	j.TargetLane = targetLane
	j.LaneChange = targetLane != from.Lane
	j.LastJumpBridgeID = from.ID
	j.Jumps++

	sim.Camera.LaneTarget = targetLane
	sim.Camera.Jolt += parameter.JoltJump
}

// updateJump advances progress from GameTime and reports a landing
func updateJump(sim *Sim) (landed bool) {
	j := &sim.Jump
	if !j.Jumping {
		return false
	}
	if j.Duration <= 0 {
		j.Progress = 1
	} else {
		j.Progress = math.Min(1, (sim.Game.GameTime-j.StartTime)/j.Duration)
	}
	if j.Progress < 1 {
		j.Offset = JumpOffset(j.Progress, j.Height)
		return false
	}

	j.Offset = 0
	j.Jumping = false
	j.LaneChange = false

	c := &sim.Camera
	c.ImpactY.ApplyImpulse(parameter.LandingImpulseY)
	c.ImpactZ.ApplyImpulse(parameter.LandingImpulseZ)
	c.Shake += parameter.LandingShake
	c.Stable = parameter.LandingStableDuration
	return true
}
