package ifs

import (
	"math"
)

// WeightProvider supplies the orbit integrals folded into weighted zeta
// functions: for every periodic word a vector of weights, one entry per
// point of the provider's support grid.
type WeightProvider interface {
	// GridSize returns the number of support points.
	GridSize() int
	// OrbitWeights returns the orbit integral of the word at every support
	// point.
	OrbitWeights(word []byte) []float64
}

// ConstantWeights assigns every orbit the weight 1 on a single support
// point. The resulting weighted determinant is D*log D, which makes this
// provider the canonical consistency check.
type ConstantWeights struct{}

func (ConstantWeights) GridSize() int { return 1 }

func (ConstantWeights) OrbitWeights(word []byte) []float64 { return []float64{1} }

// PoincareWeights integrates Gaussian test functions supported on the
// Poincare section against the periodic orbit of a word: every cyclic shift
// of the word marks one intersection of the orbit with the section, at the
// stable/unstable coordinates of the shifted word.
type PoincareWeights struct {
	sys               MapSystem
	supMinus, supPlus []float64
	sigMinus, sigPlus float64
}

// NewPoincareWeights validates the support grids and Gaussian widths.
func NewPoincareWeights(sys MapSystem, supMinus, supPlus []float64, sigMinus, sigPlus float64) (*PoincareWeights, error) {
	if len(supMinus) == 0 || len(supPlus) == 0 {
		return nil, ConfigurationError{System: "Poincare weights", Reason: "empty support grid"}
	}
	if sigMinus <= 0 || sigPlus <= 0 {
		return nil, ConfigurationError{System: "Poincare weights", Reason: "Gaussian widths must be positive"}
	}
	return &PoincareWeights{
		sys:      sys,
		supMinus: supMinus, supPlus: supPlus,
		sigMinus: sigMinus, sigPlus: sigPlus,
	}, nil
}

// GridSize returns len(supportMinus) * len(supportPlus); weights are laid
// out row-major over (minus, plus) pairs.
func (p *PoincareWeights) GridSize() int { return len(p.supMinus) * len(p.supPlus) }

func (p *PoincareWeights) OrbitWeights(word []byte) []float64 {
	out := make([]float64, p.GridSize())
	shifted := make([]byte, len(word))
	copy(shifted, word)

	dm2 := p.sigMinus * p.sigMinus
	dp2 := p.sigPlus * p.sigPlus
	norm := 1 / (math.Pi * p.sigMinus * p.sigPlus)

	for range word {
		xm, xp := p.sys.PeriodicPoints(shifted)
		for i, m := range p.supMinus {
			em := (m - xm) * (m - xm) / dm2
			for j, pl := range p.supPlus {
				ep := (pl - xp) * (pl - xp) / dp2
				out[i*len(p.supPlus)+j] += math.Exp(-em-ep) * norm
			}
		}
		rotateLeft(shifted)
	}
	return out
}

func rotateLeft(w []byte) {
	if len(w) < 2 {
		return
	}
	first := w[0]
	copy(w, w[1:])
	w[len(w)-1] = first
}

// SupportPoints spreads a total budget of support points over a family of
// intervals, allocating to each interval in proportion to its length.
func SupportPoints(intervals []Interval, total int) []float64 {
	var size float64
	for _, iv := range intervals {
		size += math.Abs(iv.Length())
	}
	if size == 0 || total < 1 {
		return nil
	}
	var pts []float64
	for _, iv := range intervals {
		n := int(math.Ceil(math.Abs(iv.Length()) / size * float64(total)))
		if n < 2 {
			n = 2
		}
		step := iv.Length() / float64(n-1)
		for k := 0; k < n; k++ {
			pts = append(pts, iv.Lo+float64(k)*step)
		}
	}
	return pts
}
