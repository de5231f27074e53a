package engine

import "github.com/spokedu77-ops/flowrunner/physics"

// Phase is the coarse session state exposed to hosts
type Phase int

const (
	PhaseWaiting Phase = iota
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Segment is one spawned stretch of track
// Z is the leading edge; the body extends to Z-Length and the pad to Z-Length-PadDepth
type Segment struct {
	ID           uint64
	Lane         int
	Z            float64
	Length       float64
	PadDepth     float64
	HasHazard    bool
	Active       bool
	IndexInLevel int // spawn order within the current level, 0-based
}

// Rel returns how far the leading edge has travelled past playerZ
func (s *Segment) Rel(playerZ float64) float64 {
	return s.Z - playerZ
}

// Straddles reports whether the body or pad covers playerZ
func (s *Segment) Straddles(playerZ float64) bool {
	rel := s.Rel(playerZ)
	return rel >= 0 && rel <= s.Length+s.PadDepth
}

// OverPad reports whether playerZ is on the trailing landing pad
func (s *Segment) OverPad(playerZ float64) bool {
	rel := s.Rel(playerZ)
	return rel > s.Length && rel <= s.Length+s.PadDepth
}

// Tail returns the Z of the end of the pad
func (s *Segment) Tail() float64 {
	return s.Z - s.Length - s.PadDepth
}

// GameState is the session-level state
type GameState struct {
	Phase          Phase
	MovementActive bool
	Resting        bool
	GameTime       float64 // simulated seconds while movement is active
	LevelTime      float64 // simulated seconds since the current level slot began
	LevelIndex     int     // index into the timeline
	Level          int     // level number of the most recent level slot, 1-based
	Speed          float64
}

// TrackState is the segment list in spawn order
type TrackState struct {
	Segments       []*Segment
	NextID         uint64
	ActiveID       uint64 // 0 = none
	SpawnedInLevel int
}

// JumpState is the player's jump
type JumpState struct {
	Jumping          bool
	Progress         float64 // 0..1
	StartTime        float64 // GameTime at trigger
	Duration         float64
	Height           float64
	TargetLane       int
	LaneChange       bool
	LastJumpBridgeID uint64
	Offset           float64 // current vertical offset
	Jumps            int
}

// CameraState holds every transient camera channel
type CameraState struct {
	LaneX      float64 // smoothed lateral position
	LaneTarget int
	ImpactY    physics.Spring
	ImpactZ    physics.Spring
	Jolt       float64
	Tilt       float64
	Shake      float64 // residual landing shake amplitude
	ShakePhase float64
	FOV        float64
	Duck       float64
	Ducking    bool
	Stable     float64 // seconds left with run bob suppressed
	BobPhase   float64
	OverPad    bool
}

// BeatState tracks the audio-clock beat scheduler and the cosmetic pulses
type BeatState struct {
	Armed        bool
	Suspended    bool // audio was not running last frame
	NextNoteTime float64
	SubBeat      int
	Round        int
	Skipped      int

	NextPulseTime float64 // gameTime based
	BeatPulse     float64
	FlashPulse    float64
}

// Sim is the whole mutable simulation, owned by Engine and passed to subsystem updates
type Sim struct {
	Game   GameState
	Track  TrackState
	Jump   JumpState
	Camera CameraState
	Beat   BeatState

	Coins        int
	speedLineAcc float64
}
