package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/physics"
	"github.com/spokedu77-ops/flowrunner/scene"
)

// cameraInput is what the rig reads from the rest of the simulation
type cameraInput struct {
	Speed        float64
	Moving       bool
	Jumping      bool
	LaneChange   bool
	JumpProgress float64
	JumpOffset   float64
}

func newCameraState() CameraState {
	return CameraState{
		LaneTarget: parameter.CenterLane,
		LaneX:      parameter.LaneX(parameter.CenterLane),
		FOV:        parameter.FOVMin,
	}
}

// followLane aims the lane lag at the active segment; mid-jump the jump target wins
func followLane(c *CameraState, active *Segment, jumping bool) {
	if active != nil && !jumping {
		c.LaneTarget = active.Lane
	}
}

// updateCamera integrates every channel over dt and returns the resulting pose
// All smoothing goes through physics.Approach so results do not depend on frame rate
func updateCamera(c *CameraState, in cameraInput, dt float64) scene.CameraPose {
	targetX := parameter.LaneX(c.LaneTarget)
	c.LaneX = physics.Smooth(c.LaneX, targetX, parameter.LaneLagFraction, dt)

	c.ImpactY.Step(parameter.ImpactStiffness, dt)
	c.ImpactZ.Step(parameter.ImpactStiffness, dt)

	c.Jolt *= physics.Decay(parameter.JoltFraction, dt)

	fovTarget := physics.Lerp(parameter.FOVMin, parameter.FOVMax, parameter.NormalizedSpeed(in.Speed))
	c.FOV = physics.Smooth(c.FOV, fovTarget, parameter.FOVFraction, dt)

	tiltTarget := 0.0
	if in.Jumping && in.LaneChange && in.JumpProgress < parameter.TiltPortion {
		// Roll into the direction of travel
		if targetX > c.LaneX {
			tiltTarget = -parameter.TiltAmount
		} else if targetX < c.LaneX {
			tiltTarget = parameter.TiltAmount
		}
	}
	c.Tilt = physics.Smooth(c.Tilt, tiltTarget, parameter.TiltFraction, dt)

	c.Shake *= physics.Decay(parameter.ShakeFraction, dt)
	c.ShakePhase = math.Mod(c.ShakePhase+parameter.ShakeFrequency*dt, 2*math.Pi)

	duckTarget := 0.0
	if c.Ducking {
		duckTarget = parameter.DuckDepth
	}
	c.Duck = physics.Smooth(c.Duck, duckTarget, parameter.DuckFraction, dt)

	bob := 0.0
	if c.Stable > 0 {
		c.Stable = math.Max(0, c.Stable-dt)
	} else if in.Moving && !in.Jumping {
		c.BobPhase = math.Mod(c.BobPhase+parameter.RunBobFrequency*dt, 2*math.Pi)
		bob = parameter.RunBobAmplitude * math.Abs(math.Sin(c.BobPhase))
	}

	ground := 0.0
	if c.OverPad && !in.Jumping {
		ground = -parameter.PadDrop
	}

	y := parameter.CameraHeight + ground + in.JumpOffset + c.ImpactY.Pos +
		c.Jolt*parameter.JoltYScale + bob - c.Duck
	z := parameter.PlayerZ + parameter.CameraBack + c.ImpactZ.Pos + c.Jolt*parameter.JoltZScale

	return scene.CameraPose{
		Pos:  mgl64.Vec3{c.LaneX, y, z},
		Tilt: c.Tilt + c.Shake*math.Sin(c.ShakePhase),
		FOV:  c.FOV,
	}
}
