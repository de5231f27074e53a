package parameter

// Adaptive quality
const (
	// QualityWindow is the number of frame durations sampled
	QualityWindow = 30

	// QualityLowFPS is the FPS below which frames count as slow
	QualityLowFPS = 40.0

	// QualitySustain is how long FPS must stay low before a downgrade (seconds)
	QualitySustain = 2.0

	// QualityCooldown is the minimum time between tier changes (seconds)
	QualityCooldown = 5.0
)
