// Package spectral locates zeta resonances: the zeros, with multiplicity,
// of a holomorphic determinant inside a rectangle of the complex plane.
// Zeros are counted by the argument principle on subdivided cells and
// polished by a multiplicity-aware Newton iteration.
package spectral

import (
	"fmt"
	"math"
)

// Function is a holomorphic function together with its s-derivatives.
// Derivatives returns [f, f', ..., f^(dMax)] at s.
type Function interface {
	Derivatives(s complex128, dMax int) []complex128
}

// InvalidDomainError reports a search rectangle that cannot be scanned.
type InvalidDomainError struct {
	Domain Rect
	Reason string
}

func (e InvalidDomainError) Error() string {
	return fmt.Sprintf("invalid search domain %v: %s", e.Domain, e.Reason)
}

// Rect is an axis-aligned closed rectangle in the s-plane.
type Rect struct {
	ReMin, ReMax float64
	ImMin, ImMax float64
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.4g, %.4g] x [%.4g, %.4g]i", r.ReMin, r.ReMax, r.ImMin, r.ImMax)
}

func (r Rect) validate() error {
	for _, v := range []float64{r.ReMin, r.ReMax, r.ImMin, r.ImMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return InvalidDomainError{Domain: r, Reason: "bounds must be finite"}
		}
	}
	if r.ReMin >= r.ReMax || r.ImMin >= r.ImMax {
		return InvalidDomainError{Domain: r, Reason: "empty interior"}
	}
	return nil
}

// Contains reports whether s lies in the closed rectangle.
func (r Rect) Contains(s complex128) bool {
	return real(s) >= r.ReMin && real(s) <= r.ReMax &&
		imag(s) >= r.ImMin && imag(s) <= r.ImMax
}

func (r Rect) center() complex128 {
	return complex((r.ReMin+r.ReMax)/2, (r.ImMin+r.ImMax)/2)
}

func (r Rect) diameter() float64 {
	return math.Hypot(r.ReMax-r.ReMin, r.ImMax-r.ImMin)
}

// grow expands every side by eps, used to move zeros off the boundary.
func (r Rect) grow(eps float64) Rect {
	return Rect{
		ReMin: r.ReMin - eps, ReMax: r.ReMax + eps,
		ImMin: r.ImMin - eps, ImMax: r.ImMax + eps,
	}
}

// union returns the bounding box of two rectangles.
func (r Rect) union(o Rect) Rect {
	return Rect{
		ReMin: math.Min(r.ReMin, o.ReMin), ReMax: math.Max(r.ReMax, o.ReMax),
		ImMin: math.Min(r.ImMin, o.ImMin), ImMax: math.Max(r.ImMax, o.ImMax),
	}
}

// quarters splits the rectangle at its center.
func (r Rect) quarters() [4]Rect {
	cr := (r.ReMin + r.ReMax) / 2
	ci := (r.ImMin + r.ImMax) / 2
	return [4]Rect{
		{r.ReMin, cr, r.ImMin, ci},
		{cr, r.ReMax, r.ImMin, ci},
		{r.ReMin, cr, ci, r.ImMax},
		{cr, r.ReMax, ci, r.ImMax},
	}
}

// split tiles the rectangle into an m x m grid.
func (r Rect) split(m int) []Rect {
	out := make([]Rect, 0, m*m)
	dre := (r.ReMax - r.ReMin) / float64(m)
	dim := (r.ImMax - r.ImMin) / float64(m)
	for i := 0; i < m; i++ {
		for j := 0; j < m; j++ {
			out = append(out, Rect{
				ReMin: r.ReMin + float64(j)*dre,
				ReMax: r.ReMin + float64(j+1)*dre,
				ImMin: r.ImMin + float64(i)*dim,
				ImMax: r.ImMin + float64(i+1)*dim,
			})
		}
	}
	return out
}

// Resonance is one located zero. Domain is the search cell the zero was
// pinned down in; for resonances merged across cells it is the bounding box
// of the contributing cells.
type Resonance struct {
	S            complex128
	Multiplicity int
	Domain       Rect
}

// PartialResultWarning marks a cell whose zeros could not be pinned down.
// The search continues elsewhere; warnings are collected, not thrown.
type PartialResultWarning struct {
	Domain Rect
	Reason string
}

func (w PartialResultWarning) String() string {
	return fmt.Sprintf("%v: %s", w.Domain, w.Reason)
}

// Result carries the located resonances together with any cells that were
// given up on.
type Result struct {
	Resonances []Resonance
	Warnings   []PartialResultWarning
}
