package parameter

import "time"

// Frame loop
const (
	// FrameInterval is the host frame rate (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// MaxFrameDt clamps a single update step in seconds
	MaxFrameDt = 0.1

	// ReferenceFPS is the frame rate smoothing fractions are expressed against
	ReferenceFPS = 60.0
)

// Session choreography, all wall-clock
const (
	IntroDuration      = 2 * time.Second
	CountdownStep      = 1 * time.Second
	GoDuration         = 600 * time.Millisecond
	IntertitleDuration = 2 * time.Second
	RestDuration       = 10 * time.Second
	RestTick           = 1 * time.Second

	// InstructionDuration is how long a level banner stays visible
	InstructionDuration = 2500 * time.Millisecond
)

// On-screen strings
const (
	IntroTitle  = "FLOW"
	EndTitle    = "COMPLETE"
	EndMessage  = "Great run!"
	GoText      = "GO"
	RestMessage = "Rest"
)

// Visual effects
const (
	// SpeedLinesPerSecond at full speed and High quality
	SpeedLinesPerSecond = 24.0

	// SpeedLineSpread is the lateral half-width of speed line spawns
	SpeedLineSpread = 6.0

	// SpeedLineDistance is how far ahead speed lines spawn
	SpeedLineDistance = 40.0

	// VignetteBase and VignettePulse mix into vignette strength before tier scaling
	VignetteBase  = 0.4
	VignettePulse = 0.3
)
