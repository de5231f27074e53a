// Package scene is the boundary between simulation decisions and whatever draws them
// The engine only spawns, moves and destroys views; it never reads back from a scene
package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl64"
)

// SegmentView describes a track segment to draw
type SegmentView struct {
	ID       uint64
	Lane     int
	Pos      mgl64.Vec3 // leading edge center
	Length   float64
	PadDepth float64
}

// HazardKind distinguishes hazard visuals
type HazardKind uint8

const (
	HazardBox HazardKind = iota
	HazardUfo
	HazardCoin
)

func (k HazardKind) String() string {
	switch k {
	case HazardBox:
		return "box"
	case HazardUfo:
		return "ufo"
	case HazardCoin:
		return "coin"
	default:
		return "hazard"
	}
}

// HazardView describes a hazard to draw
type HazardView struct {
	ID   uint64
	Kind HazardKind
	Pos  mgl64.Vec3
}

// CameraPose is the camera state produced by the rig each frame
type CameraPose struct {
	Pos  mgl64.Vec3
	Tilt float64 // roll, radians
	FOV  float64 // vertical, degrees
}

// Visuals are full-screen effect intensities
type Visuals struct {
	Flash     float64
	Vignette  float64
	Grain     float64
	BeatPulse float64
}

// Scene is implemented by renderers
type Scene interface {
	SpawnSegment(v SegmentView)
	MoveSegment(id uint64, pos mgl64.Vec3)
	DestroySegment(id uint64)

	SpawnHazard(v HazardView)
	MoveHazard(id uint64, pos mgl64.Vec3)
	DestroyHazard(id uint64)

	SpawnSpeedLine(pos mgl64.Vec3)
	SetPlayer(pos mgl64.Vec3)
	SetCamera(pose CameraPose)
	SetVisuals(v Visuals)
	SetBackground(img image.Image)

	Resize(width, height int)
	Render()
	Dispose()
}
