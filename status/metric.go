// Package status holds lock-free telemetry written by the engine and read by the debug line
package status

import (
	"math"
	"sync/atomic"
)

// Float is an atomic float64 stored as bits
// Zero value reads 0
type Float struct {
	bits atomic.Uint64
}

// Set stores v
func (f *Float) Set(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Get loads the value
func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Text is an atomic string capped at MaxTextLen bytes
type Text struct {
	ptr atomic.Pointer[string]
}

// MaxTextLen bounds stored strings so the status line stays short
const MaxTextLen = 24

// Set stores v, truncated
func (s *Text) Set(v string) {
	if len(v) > MaxTextLen {
		v = v[:MaxTextLen]
	}
	s.ptr.Store(&v)
}

// Get loads the value
func (s *Text) Get() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
