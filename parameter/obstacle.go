package parameter

import "time"

// Hazard placement and response
const (
	// UfoMinLevel and BoxMinLevel gate hazard kinds by level
	UfoMinLevel = 4
	BoxMinLevel = 3

	// UfoSafeSegments is the count of leading segments of a level that never carry a UFO
	UfoSafeSegments = 2

	// UfoHeight is the flight altitude above the track
	UfoHeight = 2.4

	// UfoPosition and BoxPosition place hazards along the segment body, as a fraction of its length
	UfoPosition = 0.5
	BoxPosition = 0.4

	// UfoDuckDistance is how far ahead of the player a UFO triggers the duck
	UfoDuckDistance = 14.0

	// UfoRemoveDistance is how far behind the player a passed UFO is removed
	UfoRemoveDistance = 20.0

	// UfoPassTilt is the camera tilt impulse when a UFO passes overhead
	UfoPassTilt = 0.06

	// CoinLifetime is how long a coin from a smashed box stays visible (seconds)
	CoinLifetime = 0.5

	// CoinRise is the coin's upward speed (units per second)
	CoinRise = 3.0

	// HintDuration is how long first-encounter hints stay visible
	HintDuration = 2 * time.Second
)

// First-encounter hint banners
const (
	BoxHint      = "Boxes ahead: punch on the beat"
	BoxHintStyle = "warn"
	UfoHint      = "UFO incoming: duck!"
	UfoHintStyle = "alert"
)
