package parameter

// Camera response
// Fractions are "portion of the remaining distance closed per 60fps frame" and are converted
// to the real frame dt with physics.Approach
const (
	// CameraHeight is the eye height above ground
	CameraHeight = 1.6

	// CameraBack is the camera offset behind PlayerZ
	CameraBack = 4.0

	// LaneLagFraction smooths lateral lane following
	LaneLagFraction = 0.12

	// FOVMin and FOVMax bound the speed-driven field of view in degrees
	FOVMin = 62.0
	FOVMax = 78.0

	// FOVFraction smooths FOV toward its target
	FOVFraction = 0.05

	// ImpactStiffness is the angular frequency of the critically damped landing spring
	ImpactStiffness = 14.0

	// LandingImpulseY is the downward velocity injected on landing
	LandingImpulseY = -3.2

	// LandingImpulseZ is the forward velocity injected on landing
	LandingImpulseZ = 2.4

	// LandingShake is the residual tilt shake amplitude after landing
	LandingShake = 0.03

	// LandingStableDuration suppresses run bob right after landing (seconds)
	LandingStableDuration = 0.18

	// ShakeFraction decays residual shake
	ShakeFraction = 0.08

	// ShakeFrequency is the oscillation of residual shake in rad/s
	ShakeFrequency = 38.0

	// JoltFraction decays the micro-jolt accumulator
	JoltFraction = 0.1

	// JoltJump is added when a jump starts
	JoltJump = 0.15

	// JoltPunch is added when a box is smashed
	JoltPunch = 0.6

	// JoltYScale and JoltZScale map jolt onto camera offsets
	JoltYScale = 0.25
	JoltZScale = 0.4

	// TiltAmount is the roll target in radians during a lane-changing jump
	TiltAmount = 0.12

	// TiltPortion is the share of jump progress during which the tilt target applies
	TiltPortion = 0.5

	// TiltFraction smooths tilt toward its target
	TiltFraction = 0.15

	// DuckDepth lowers the camera while ducking a UFO
	DuckDepth = 0.8

	// DuckFraction smooths the duck offset
	DuckFraction = 0.2

	// RunBobAmplitude and RunBobFrequency shape the running head bob
	RunBobAmplitude = 0.06
	RunBobFrequency = 14.0
)
