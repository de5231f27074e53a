package engine

import "time"

// Clock is the wall clock used for human-facing timers (rest, countdown, banners, beat visuals)
// It is never used for simulation or audio decisions
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a pending callback
type Timer interface {
	// Stop prevents the callback from firing, false if it already fired or was stopped
	Stop() bool
}

// WallClock is the real monotonic clock
type WallClock struct{}

// NewWallClock creates a real clock
func NewWallClock() WallClock {
	return WallClock{}
}

// Now returns the current time with monotonic reading
func (WallClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn on its own goroutine after d
func (WallClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
