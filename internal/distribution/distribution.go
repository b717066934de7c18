// Package distribution extracts invariant Ruelle distributions: the
// residues, on the weight support grid, of the weighted determinant
// divided by the determinant at each resonance.
package distribution

import (
	"fmt"

	"github.com/skm-lab/zetadyn/internal/spectral"
)

// WeightedFunction is a determinant with an attached weighted companion,
// both s-differentiable. WeightedDerivatives returns one row per support
// grid point.
type WeightedFunction interface {
	Derivatives(s complex128, dMax int) []complex128
	WeightedDerivatives(s complex128, dMax int) ([][]complex128, error)
}

// MissingResonanceDataError reports that a resonance's multiplicity
// demands more derivative orders than were requested.
type MissingResonanceDataError struct {
	Resonance    complex128
	Multiplicity int
	Need         int
	Have         int
}

func (e MissingResonanceDataError) Error() string {
	return fmt.Sprintf("resonance %v has multiplicity %d: need derivatives to order %d, have %d",
		e.Resonance, e.Multiplicity, e.Need, e.Have)
}

// Distribution is the invariant distribution of one resonance, sampled on
// the weight support grid.
type Distribution struct {
	Resonance spectral.Resonance
	Values    []complex128
}

// At computes the distribution at a located resonance by Laurent series
// division: with D vanishing to order m at s0, the residue of D_g/D is
// read off the product of the weighted Taylor coefficients with the
// inverted leading part of D. A multiplicity-m pole needs derivatives of
// D to order 2m-1, so dMax below that fails with
// MissingResonanceDataError.
func At(fn WeightedFunction, res spectral.Resonance, dMax int) (*Distribution, error) {
	m := res.Multiplicity
	if m < 1 {
		return nil, fmt.Errorf("resonance %v has multiplicity %d", res.S, m)
	}
	if need := 2*m - 1; dMax < need {
		return nil, MissingResonanceDataError{
			Resonance:    res.S,
			Multiplicity: m,
			Need:         need,
			Have:         dMax,
		}
	}

	der := fn.Derivatives(res.S, dMax)
	wder, err := fn.WeightedDerivatives(res.S, dMax)
	if err != nil {
		return nil, err
	}

	// Taylor coefficients of the order-m leading part of D
	q := make([]complex128, m)
	for j := 0; j < m; j++ {
		q[j] = der[m+j] / complex(factorial(m+j), 0)
	}
	if q[0] == 0 {
		return nil, fmt.Errorf("determinant does not vanish to exact order %d at %v", m, res.S)
	}
	inv := make([]complex128, m)
	inv[0] = 1 / q[0]
	for j := 1; j < m; j++ {
		var acc complex128
		for i := 1; i <= j; i++ {
			acc += q[i] * inv[j-i]
		}
		inv[j] = -acc / q[0]
	}

	vals := make([]complex128, len(wder))
	for g, row := range wder {
		var residue complex128
		for i := 0; i < m; i++ {
			w := row[i] / complex(factorial(i), 0)
			residue += w * inv[m-1-i]
		}
		vals[g] = residue
	}
	return &Distribution{Resonance: res, Values: vals}, nil
}

// EvalGrid samples the resonance functional D_g(s)/D'(s) on the support
// grid. At a simple resonance it equals the residue computed by At.
func EvalGrid(fn WeightedFunction, s complex128) ([]complex128, error) {
	der := fn.Derivatives(s, 1)
	if der[1] == 0 {
		return nil, fmt.Errorf("determinant derivative vanishes at %v", s)
	}
	wder, err := fn.WeightedDerivatives(s, 0)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, len(wder))
	for g, row := range wder {
		out[g] = row[0] / der[1]
	}
	return out, nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
