package scale

import "math"

// Linear maps a domain interval [D0, D1] onto a pixel range [R0, R1].
//
// When Round is set, mapped values are rounded to the nearest integer pixel.
// A degenerate domain (D0 == D1) maps every input to the range midpoint.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
	Round  bool
}

// Map converts a domain value to pixel space. Inputs outside the domain are
// extrapolated, not clamped.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	var r float64
	if span == 0 || math.IsNaN(span) {
		r = (s.R0 + s.R1) / 2
	} else {
		r = s.R0 + (v-s.D0)/span*(s.R1-s.R0)
	}
	if s.Round {
		r = math.Round(r)
	}
	return r
}

// Invert converts a pixel value back to the domain. An empty range maps to
// the domain midpoint.
func (s Linear) Invert(p float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return (s.D0 + s.D1) / 2
	}
	return s.D0 + (p-s.R0)/span*(s.D1-s.D0)
}

// Domain returns the current domain extents.
func (s Linear) Domain() (float64, float64) { return s.D0, s.D1 }

// Range returns the pixel extents.
func (s Linear) Range() (float64, float64) { return s.R0, s.R1 }
