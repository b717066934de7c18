// Package ifs implements the hyperbolic function systems whose contracting
// generator maps induce the symbolic dynamics of the resonance engine:
// Moebius systems built from half-plane isometries (Schottky surfaces and
// their concrete geometric families) and expanding interval map systems of
// Gauss type. Systems are immutable after construction; construction
// validates the ping-pong condition and fails with a ConfigurationError on
// degenerate input.
package ifs

import "fmt"

// ConfigurationError reports an invalid or degenerate function system. It
// is fatal and raised at construction time only.
type ConfigurationError struct {
	System string
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.System, e.Reason)
}

// Interval is a bounded connected subset of the real line.
type Interval struct {
	Lo, Hi float64
}

// Contains reports closed-interval membership.
func (iv Interval) Contains(x float64) bool {
	return iv.Lo <= x && x <= iv.Hi
}

// Length returns the euclidean length.
func (iv Interval) Length() float64 { return iv.Hi - iv.Lo }

// System is the capability every function system exposes to the symbolic
// and zeta layers: an alphabet with transition structure and the stability
// of the periodic orbit coded by a cyclically admissible word.
type System interface {
	// AlphabetSize returns the number of generator maps.
	AlphabetSize() int
	// Adjacency returns the legal-transition matrix over the alphabet.
	Adjacency() [][]bool
	// Stability returns the derivative of the composed contraction at the
	// periodic point of the word, a number in (0,1) for admissible words.
	Stability(word []byte) float64
}

// MapSystem extends System with the geometric data consumed by orbit
// weight providers: the domains of the maps and the location of periodic
// points on the Poincare section.
type MapSystem interface {
	System
	// FundamentalIntervals returns the domain of each generator map.
	FundamentalIntervals() ([]Interval, error)
	// PeriodicPoints returns the stable and unstable coordinates of the
	// periodic orbit coded by the word.
	PeriodicPoints(word []byte) (xMinus, xPlus float64)
}
