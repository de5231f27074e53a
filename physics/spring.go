package physics

import "math"

// Spring is a scalar channel pulled back to zero by a critically damped spring
// Zero value is at rest
type Spring struct {
	Pos float64
	Vel float64
}

// ApplyImpulse adds velocity (momentum transfer)
func (s *Spring) ApplyImpulse(v float64) {
	s.Vel += v
}

// Step advances the spring by dt using the closed-form critically damped solution
// x(t) = (x0 + (v0 + w*x0)*t) * e^(-w*t), exact for any dt so results do not depend on frame rate
func (s *Spring) Step(omega, dt float64) {
	if dt <= 0 {
		return
	}
	e := math.Exp(-omega * dt)
	c := s.Vel + omega*s.Pos
	s.Pos = (s.Pos + c*dt) * e
	s.Vel = (s.Vel - omega*c*dt) * e
}

// Reset puts the spring at rest
func (s *Spring) Reset() {
	s.Pos = 0
	s.Vel = 0
}

// Settled reports whether both position and velocity are below eps
func (s *Spring) Settled(eps float64) bool {
	return math.Abs(s.Pos) < eps && math.Abs(s.Vel) < eps
}
