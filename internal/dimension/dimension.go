// Package dimension estimates the Hausdorff dimension of a limit set from
// the zeta determinant, either as the topological-pressure zero on the
// real axis or from the leading located resonance.
package dimension

import (
	"fmt"
	"math"

	"github.com/skm-lab/zetadyn/internal/spectral"
)

const scanSteps = 512

// FromPressure returns the largest zero of the determinant on [0, 1],
// which is the dimension of the limit set. The real axis is scanned
// downward from 1 for a sign change, then bisected to tol. An even-order
// zero at 0 (elementary systems) produces no sign change and is caught by
// an endpoint check.
func FromPressure(fn spectral.Function, tol float64) (float64, error) {
	if tol <= 0 {
		return 0, fmt.Errorf("non-positive tolerance %v", tol)
	}
	eval := func(x float64) float64 {
		return real(fn.Derivatives(complex(x, 0), 0)[0])
	}

	prev := eval(1)
	if prev == 0 {
		return 1, nil
	}
	prevX := 1.0
	for k := 1; k <= scanSteps; k++ {
		x := 1 - float64(k)/scanSteps
		v := eval(x)
		if v == 0 {
			return x, nil
		}
		if math.Signbit(v) != math.Signbit(prev) {
			return bisect(eval, x, prevX, tol), nil
		}
		prev, prevX = v, x
	}
	if math.Abs(eval(0)) < 1e-9 {
		return 0, nil
	}
	return 0, fmt.Errorf("no pressure zero on [0, 1]")
}

func bisect(eval func(float64) float64, lo, hi float64, tol float64) float64 {
	flo := eval(lo)
	for hi-lo > tol {
		mid := (lo + hi) / 2
		fm := eval(mid)
		if fm == 0 {
			return mid
		}
		if math.Signbit(fm) == math.Signbit(flo) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// FromResonances returns the real part of the leading resonance, the
// spectral reading of the dimension.
func FromResonances(rs []spectral.Resonance) (float64, error) {
	if len(rs) == 0 {
		return 0, fmt.Errorf("no resonances")
	}
	max := real(rs[0].S)
	for _, r := range rs[1:] {
		if re := real(r.S); re > max {
			max = re
		}
	}
	return max, nil
}

// Report compares the two dimension readings.
type Report struct {
	Pressure  float64
	Resonance float64
	Diff      float64
	Agree     bool
}

// CrossValidate computes the dimension both ways and reports whether they
// agree within tol.
func CrossValidate(fn spectral.Function, rs []spectral.Resonance, tol float64) (Report, error) {
	p, err := FromPressure(fn, tol/10)
	if err != nil {
		return Report{}, err
	}
	r, err := FromResonances(rs)
	if err != nil {
		return Report{}, err
	}
	diff := math.Abs(p - r)
	return Report{Pressure: p, Resonance: r, Diff: diff, Agree: diff <= tol}, nil
}
