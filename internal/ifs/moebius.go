package ifs

import (
	"fmt"
	"math"

	"github.com/skm-lab/zetadyn/internal/geometry"
)

// MoebiusSystem is a function system whose generator maps are half-plane
// isometries. The stability of a periodic orbit is the exponential of the
// negative displacement length of the composed isometry.
type MoebiusSystem struct {
	gens []geometry.SL2R
	adj  [][]bool
}

// NewMoebius validates that every generator is hyperbolic and that the
// generator image discs are pairwise disjoint (the ping-pong condition
// making the induced symbolic dynamics a subshift of finite type).
func NewMoebius(gens []geometry.SL2R, adj [][]bool) (*MoebiusSystem, error) {
	if len(gens) == 0 {
		return nil, ConfigurationError{System: "Moebius system", Reason: "no generators"}
	}
	if len(adj) != len(gens) {
		return nil, ConfigurationError{
			System: "Moebius system",
			Reason: fmt.Sprintf("adjacency size %d does not match %d generators", len(adj), len(gens)),
		}
	}
	for i, g := range gens {
		if !g.IsHyperbolic() {
			return nil, ConfigurationError{
				System: "Moebius system",
				Reason: fmt.Sprintf("generator %d is not contracting (|tr| = %.4g <= 2)", i, math.Abs(g.Trace())),
			}
		}
	}
	if err := checkPingPong(gens); err != nil {
		return nil, err
	}
	return &MoebiusSystem{gens: gens, adj: adj}, nil
}

// checkPingPong requires the image discs of all generators with a finite
// isometric circle to be pairwise disjoint. Generators fixing infinity have
// no finite image disc and are exempt; they can only occur in rank one.
func checkPingPong(gens []geometry.SL2R) error {
	type disc struct {
		letter int
		c, r   float64
	}
	discs := make([]disc, 0, len(gens))
	for i, g := range gens {
		if c, r, ok := g.ImageDisc(); ok {
			discs = append(discs, disc{letter: i, c: c, r: r})
		}
	}
	for i := 0; i < len(discs); i++ {
		for j := i + 1; j < len(discs); j++ {
			gap := math.Abs(discs[i].c-discs[j].c) - discs[i].r - discs[j].r
			if gap <= 0 {
				return ConfigurationError{
					System: "Moebius system",
					Reason: fmt.Sprintf("image discs of generators %d and %d overlap by %.4g",
						discs[i].letter, discs[j].letter, -gap),
				}
			}
		}
	}
	return nil
}

func (m *MoebiusSystem) AlphabetSize() int { return len(m.gens) }

func (m *MoebiusSystem) Adjacency() [][]bool { return m.adj }

// Generator returns the isometry of a single letter.
func (m *MoebiusSystem) Generator(letter int) geometry.SL2R { return m.gens[letter] }

// compose returns the isometry of the full word, last letter applied first.
func (m *MoebiusSystem) compose(word []byte) geometry.SL2R {
	g := geometry.Identity()
	for _, l := range word {
		g = m.gens[l].Mul(g)
	}
	return g
}

// Stability returns exp(-l(w)) with l(w) the displacement length of the
// composed isometry. For words that fail to compose to a hyperbolic element
// (impossible on validated systems) the result is NaN.
func (m *MoebiusSystem) Stability(word []byte) float64 {
	g := m.compose(word)
	if !g.IsHyperbolic() {
		return math.NaN()
	}
	return math.Exp(-g.DisplacementLength())
}

// PeriodicPoints returns the repelling and attracting boundary fixed points
// of the composed isometry, the coordinates of the coded orbit on the
// Poincare section.
func (m *MoebiusSystem) PeriodicPoints(word []byte) (xMinus, xPlus float64) {
	att, rep, ok := m.compose(word).FixedPoints()
	if !ok {
		return math.NaN(), math.NaN()
	}
	return rep, att
}

// FundamentalIntervals returns the real diameter of each generator's image
// disc. Systems containing a generator fixing infinity have no bounded
// fundamental intervals.
func (m *MoebiusSystem) FundamentalIntervals() ([]Interval, error) {
	out := make([]Interval, len(m.gens))
	for i, g := range m.gens {
		c, r, ok := g.ImageDisc()
		if !ok {
			return nil, ConfigurationError{
				System: "Moebius system",
				Reason: fmt.Sprintf("generator %d fixes infinity, no bounded fundamental interval", i),
			}
		}
		out[i] = Interval{Lo: c - r, Hi: c + r}
	}
	return out, nil
}

// NewSchottky completes rank r generators with their inverses (inverses at
// letters 0..r-1, the generators themselves at r..2r-1) and installs the
// Schottky transition rule: a letter may be followed by anything except the
// letter of its inverse map.
func NewSchottky(gens []geometry.SL2R) (*MoebiusSystem, error) {
	rank := len(gens)
	if rank == 0 {
		return nil, ConfigurationError{System: "Schottky system", Reason: "rank zero"}
	}
	full := make([]geometry.SL2R, 2*rank)
	for i, g := range gens {
		full[i] = g.Inv()
		full[rank+i] = g
	}
	return NewMoebius(full, SchottkyAdjacency(rank))
}

// SchottkyAdjacency returns the transition matrix of a rank r Schottky
// system over its 2r-letter alphabet.
func SchottkyAdjacency(rank int) [][]bool {
	n := 2 * rank
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
		for j := range adj[i] {
			adj[i][j] = j != (i+rank)%n
		}
	}
	return adj
}
