package ifs

import (
	"fmt"
	"math"
)

// Branch is one inverse branch of an expanding interval map, given as a
// real Moebius transformation (normalized to |det| = 1, either sign) that
// contracts its domain interval.
type Branch struct {
	A   [2][2]float64
	Dom Interval
}

// NewBranch normalizes the matrix and validates contraction on the domain.
func NewBranch(a, b, c, d float64, dom Interval) (Branch, error) {
	det := a*d - b*c
	if det == 0 {
		return Branch{}, ConfigurationError{System: "interval branch", Reason: "singular matrix"}
	}
	r := math.Sqrt(math.Abs(det))
	br := Branch{A: [2][2]float64{{a / r, b / r}, {c / r, d / r}}, Dom: dom}
	if dom.Length() <= 0 {
		return Branch{}, ConfigurationError{System: "interval branch", Reason: "empty domain"}
	}
	// |phi'| is monotone on intervals avoiding the pole, so endpoint checks
	// bound the derivative on the whole domain
	for _, x := range []float64{dom.Lo, dom.Hi} {
		if math.Abs(br.deriv(x)) > 1 {
			return Branch{}, ConfigurationError{
				System: "interval branch",
				Reason: fmt.Sprintf("not contracting at x = %.4g", x),
			}
		}
	}
	return br, nil
}

func (br Branch) apply(x float64) float64 {
	return (br.A[0][0]*x + br.A[0][1]) / (br.A[1][0]*x + br.A[1][1])
}

func (br Branch) deriv(x float64) float64 {
	det := br.A[0][0]*br.A[1][1] - br.A[0][1]*br.A[1][0]
	den := br.A[1][0]*x + br.A[1][1]
	return det / (den * den)
}

// IntervalMapSystem is the interval-map variant of a function system: a
// finite family of contracting Moebius branches with explicit domains, e.g.
// the inverse branches of the Gauss map.
type IntervalMapSystem struct {
	branches []Branch
	adj      [][]bool
}

// NewIntervalMap builds a system from validated branches. A nil adjacency
// means the full shift (any branch may follow any).
func NewIntervalMap(branches []Branch, adj [][]bool) (*IntervalMapSystem, error) {
	if len(branches) == 0 {
		return nil, ConfigurationError{System: "interval map system", Reason: "no branches"}
	}
	if adj == nil {
		adj = make([][]bool, len(branches))
		for i := range adj {
			adj[i] = make([]bool, len(branches))
			for j := range adj[i] {
				adj[i][j] = true
			}
		}
	}
	if len(adj) != len(branches) {
		return nil, ConfigurationError{
			System: "interval map system",
			Reason: fmt.Sprintf("adjacency size %d does not match %d branches", len(adj), len(branches)),
		}
	}
	return &IntervalMapSystem{branches: branches, adj: adj}, nil
}

// NewGauss builds the first k inverse branches x -> 1/(x+j), j = 1..k, of
// the Gauss continued-fraction map on [0,1].
func NewGauss(k int) (*IntervalMapSystem, error) {
	if k < 1 {
		return nil, ConfigurationError{System: "Gauss system", Reason: "need at least one branch"}
	}
	branches := make([]Branch, k)
	for j := 1; j <= k; j++ {
		br, err := NewBranch(0, 1, 1, float64(j), Interval{Lo: 0, Hi: 1})
		if err != nil {
			return nil, err
		}
		branches[j-1] = br
	}
	return NewIntervalMap(branches, nil)
}

func (s *IntervalMapSystem) AlphabetSize() int { return len(s.branches) }

func (s *IntervalMapSystem) Adjacency() [][]bool { return s.adj }

// compose multiplies the branch matrices of the word, last letter applied
// first.
func (s *IntervalMapSystem) compose(word []byte) [2][2]float64 {
	m := [2][2]float64{{1, 0}, {0, 1}}
	for _, l := range word {
		b := s.branches[l].A
		m = [2][2]float64{
			{b[0][0]*m[0][0] + b[0][1]*m[1][0], b[0][0]*m[0][1] + b[0][1]*m[1][1]},
			{b[1][0]*m[0][0] + b[1][1]*m[1][0], b[1][0]*m[0][1] + b[1][1]*m[1][1]},
		}
	}
	return m
}

// fixedPoints solves c x^2 + (d-a) x - b = 0 for the two fixed points of
// the composed branch and orders them (attracting, repelling).
func fixedPoints(m [2][2]float64) (att, rep float64) {
	a, b, c, d := m[0][0], m[0][1], m[1][0], m[1][1]
	det := a*d - b*c
	derivAt := func(x float64) float64 {
		den := c*x + d
		return det / (den * den)
	}
	if c == 0 {
		x := b / (d - a)
		return x, math.Inf(1)
	}
	disc := (a-d)*(a-d) + 4*b*c
	if disc < 0 {
		return math.NaN(), math.NaN()
	}
	r := math.Sqrt(disc)
	x1 := (a - d + r) / (2 * c)
	x2 := (a - d - r) / (2 * c)
	if math.Abs(derivAt(x1)) < 1 {
		return x1, x2
	}
	return x2, x1
}

// Stability returns |phi_w'(x*)| at the attracting fixed point x* of the
// composed branch.
func (s *IntervalMapSystem) Stability(word []byte) float64 {
	m := s.compose(word)
	att, _ := fixedPoints(m)
	if math.IsNaN(att) {
		return math.NaN()
	}
	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	den := m[1][0]*att + m[1][1]
	return math.Abs(det / (den * den))
}

// PeriodicPoints returns the repelling and attracting fixed points of the
// composed branch.
func (s *IntervalMapSystem) PeriodicPoints(word []byte) (xMinus, xPlus float64) {
	att, rep := fixedPoints(s.compose(word))
	return rep, att
}

// FundamentalIntervals returns the branch domains.
func (s *IntervalMapSystem) FundamentalIntervals() ([]Interval, error) {
	out := make([]Interval, len(s.branches))
	for i, br := range s.branches {
		out[i] = br.Dom
	}
	return out, nil
}
