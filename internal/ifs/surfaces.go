package ifs

import (
	"fmt"
	"math"

	"github.com/skm-lab/zetadyn/internal/geometry"
	"github.com/skm-lab/zetadyn/internal/symmetry"
)

// NewHyperbolicCylinder builds the unique Schottky surface of rank one,
// determined by the width of its fundamental closed geodesic. The rotated
// variant conjugates the generator away from infinity so that bounded
// fundamental intervals exist (required by orbit weight providers).
func NewHyperbolicCylinder(width float64, rotated bool) (*MoebiusSystem, error) {
	if width <= 0 {
		return nil, ConfigurationError{
			System: "hyperbolic cylinder",
			Reason: fmt.Sprintf("width %.4g not positive", width),
		}
	}
	gen := geometry.Diagonal(width)
	if rotated {
		gen = geometry.Boost(width)
	}
	return NewSchottky([]geometry.SL2R{gen})
}

// NewFunnelTorus builds a torus with one funnel attached from the lengths
// of two intersecting closed geodesics and their intersection angle.
func NewFunnelTorus(outerLen, innerLen, angle float64) (*MoebiusSystem, error) {
	if outerLen <= 0 || innerLen <= 0 {
		return nil, ConfigurationError{
			System: "funnel torus",
			Reason: "geodesic lengths must be positive",
		}
	}
	if angle <= 0 || angle >= math.Pi {
		return nil, ConfigurationError{
			System: "funnel torus",
			Reason: fmt.Sprintf("intersection angle %.4g outside (0, pi)", angle),
		}
	}
	gen1 := geometry.Diagonal(outerLen)
	ch, sh := math.Cosh(innerLen/2), math.Sinh(innerLen/2)
	sin, cos := math.Sin(angle), math.Cos(angle)
	gen2 := geometry.SL2R{A: [2][2]float64{
		{ch - cos*sh, sh * sin * sin},
		{sh, ch + cos*sh},
	}}
	sys, err := NewSchottky([]geometry.SL2R{gen1, gen2})
	if err != nil {
		return nil, ConfigurationError{
			System: "funnel torus",
			Reason: err.Error(),
		}
	}
	return sys, nil
}

// NewGeometricFunnelTorus builds a funneled torus from the more geometric
// parameters outer geodesic length, funnel width and twist.
func NewGeometricFunnelTorus(length, width, twist float64) (*MoebiusSystem, error) {
	if length <= 0 || width <= 0 {
		return nil, ConfigurationError{
			System: "geometric funnel torus",
			Reason: "length and width must be positive",
		}
	}
	gen1 := geometry.Diagonal(length)
	b := math.Sqrt((1+math.Cosh(width/2))/2) / math.Sinh(length/2)
	a := math.Sqrt(1 + b*b)
	et := math.Exp(twist / 2)
	gen2 := geometry.SL2R{A: [2][2]float64{
		{et * a, et * b},
		{b / et, a / et},
	}}
	sys, err := NewSchottky([]geometry.SL2R{gen1, gen2})
	if err != nil {
		return nil, ConfigurationError{
			System: "geometric funnel torus",
			Reason: err.Error(),
		}
	}
	return sys, nil
}

// NFunnelSystem is a rotationally symmetric Schottky system of rank n whose
// generators are conjugates of a common boost by the n-fold rotation about
// the center of the disc. It carries a natural cyclic symmetry permuting
// the funnels.
type NFunnelSystem struct {
	*MoebiusSystem
	n int
}

// NewNFunnel builds the symmetric system with n generators of common
// displacement length width. Small widths make the image discs overlap and
// fail the ping-pong validation.
func NewNFunnel(n int, width float64) (*NFunnelSystem, error) {
	if n < 2 {
		return nil, ConfigurationError{
			System: "n-funnel system",
			Reason: fmt.Sprintf("need at least 2 funnels, got %d", n),
		}
	}
	gens := make([]geometry.SL2R, n)
	for k := 0; k < n; k++ {
		rot := geometry.Rotation(float64(k) * math.Pi / float64(n))
		gens[k] = geometry.Boost(width).Conj(rot)
	}
	sys, err := NewSchottky(gens)
	if err != nil {
		return nil, ConfigurationError{
			System: "n-funnel system",
			Reason: err.Error(),
		}
	}
	return &NFunnelSystem{MoebiusSystem: sys, n: n}, nil
}

// Funnels returns the order of the rotational symmetry.
func (s *NFunnelSystem) Funnels() int { return s.n }

// RotationSymmetry returns the cyclic group generated by the one-step
// funnel rotation, acting on the 2n-letter alphabet (inverse letters first,
// matching the Schottky letter layout).
func (s *NFunnelSystem) RotationSymmetry() (*symmetry.Permutation, error) {
	perm := make([]int, 2*s.n)
	for k := 0; k < s.n; k++ {
		perm[k] = (k + 1) % s.n
		perm[s.n+k] = s.n + (k+1)%s.n
	}
	return symmetry.NewPermutation(perm)
}
