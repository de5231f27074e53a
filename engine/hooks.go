package engine

import (
	"math"
	"time"

	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/parameter"
)

// hooks returns the callbacks handed to the obstacle manager
// They run inside Obstacles.Update, so mu is already held
func (e *Engine) hooks() Hooks {
	return Hooks{
		OnFlash: func() {
			e.sim.Beat.FlashPulse = math.Min(1, e.sim.Beat.FlashPulse+parameter.PunchFlash)
		},
		OnCameraTilt: func(amount float64) {
			e.sim.Camera.Shake += amount
		},
		OnPunch: func() {
			e.sim.Camera.Jolt += parameter.JoltPunch
			e.audio.Play(audio.SoundPunch)
		},
		OnCoin: func() {
			e.sim.Coins++
			e.audio.Play(audio.SoundCoin)
		},
		OnShowInstruction: func(text, style string, d time.Duration) {
			e.showInstruction(text, style, d)
		},
		OnUfoSpawned: func() {
			e.audio.Play(audio.SoundWhoosh)
		},
		OnUfoDuckStart: func() {
			e.sim.Camera.Ducking = true
		},
		OnUfoPassed: func() {
			e.sim.Camera.Ducking = false
		},
	}
}
