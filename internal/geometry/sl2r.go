// Package geometry provides the isometry primitives of two-dimensional
// hyperbolic space in its two standard models: the upper half-plane with
// isometry group SL(2,R) and the Poincare disc with isometry group SU(1,1).
// All types are immutable values; group operations return new values.
package geometry

import (
	"fmt"
	"math"
)

// Inf marks the boundary point at infinity of the upper half-plane.
var Inf = math.Inf(1)

// SL2R is a real 2x2 matrix of unit determinant acting on the upper
// half-plane by Moebius transformations. Entries are row-major:
// [[A[0][0], A[0][1]], [A[1][0], A[1][1]]]. Matrices that differ only by a
// global sign represent the same isometry.
type SL2R struct {
	A [2][2]float64
}

// NewSL2R normalizes the given matrix to unit determinant. Matrices with
// non-positive determinant cannot represent orientation-preserving isometries
// of the half-plane and are rejected.
func NewSL2R(a, b, c, d float64) (SL2R, error) {
	det := a*d - b*c
	if det <= 0 {
		return SL2R{}, fmt.Errorf("determinant %g not positive", det)
	}
	r := math.Sqrt(det)
	return SL2R{A: [2][2]float64{{a / r, b / r}, {c / r, d / r}}}, nil
}

// MustSL2R is NewSL2R for statically known matrices.
func MustSL2R(a, b, c, d float64) SL2R {
	g, err := NewSL2R(a, b, c, d)
	if err != nil {
		panic(err)
	}
	return g
}

// Identity returns the unit element.
func Identity() SL2R {
	return SL2R{A: [2][2]float64{{1, 0}, {0, 1}}}
}

// Mul returns the group composition g*h (g applied after h).
func (g SL2R) Mul(h SL2R) SL2R {
	var p SL2R
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			p.A[i][j] = g.A[i][0]*h.A[0][j] + g.A[i][1]*h.A[1][j]
		}
	}
	return p
}

// Inv returns the group inverse; for unit determinant this is the adjugate.
func (g SL2R) Inv() SL2R {
	return SL2R{A: [2][2]float64{
		{g.A[1][1], -g.A[0][1]},
		{-g.A[1][0], g.A[0][0]},
	}}
}

// Conj returns h*g*h^{-1}.
func (g SL2R) Conj(h SL2R) SL2R {
	return h.Mul(g).Mul(h.Inv())
}

// Trace returns the matrix trace.
func (g SL2R) Trace() float64 {
	return g.A[0][0] + g.A[1][1]
}

// Det returns the determinant (1 up to rounding for valid elements).
func (g SL2R) Det() float64 {
	return g.A[0][0]*g.A[1][1] - g.A[0][1]*g.A[1][0]
}

// IsHyperbolic reports whether the isometry translates along a geodesic
// axis, i.e. |tr| > 2.
func (g SL2R) IsHyperbolic() bool {
	return math.Abs(g.Trace()) > 2
}

// DisplacementLength returns the translation length along the axis of a
// hyperbolic element, 2*acosh(|tr|/2). It returns 0 for non-hyperbolic
// elements.
func (g SL2R) DisplacementLength() float64 {
	t := math.Abs(g.Trace())
	if t <= 2 {
		return 0
	}
	return 2 * math.Acosh(t/2)
}

// Apply evaluates the Moebius action on a boundary point of the half-plane.
func (g SL2R) Apply(x float64) float64 {
	a, b, c, d := g.A[0][0], g.A[0][1], g.A[1][0], g.A[1][1]
	if math.IsInf(x, 0) {
		if c == 0 {
			return Inf
		}
		return a / c
	}
	den := c*x + d
	if den == 0 {
		return Inf
	}
	return (a*x + b) / den
}

// ApplyC evaluates the Moebius action on an interior point z, Im z > 0.
func (g SL2R) ApplyC(z complex128) complex128 {
	a, b, c, d := g.A[0][0], g.A[0][1], g.A[1][0], g.A[1][1]
	return (complex(a, 0)*z + complex(b, 0)) / (complex(c, 0)*z + complex(d, 0))
}

// Deriv returns the derivative of the Moebius action at a real point x,
// det/(cx+d)^2.
func (g SL2R) Deriv(x float64) float64 {
	den := g.A[1][0]*x + g.A[1][1]
	return g.Det() / (den * den)
}

// FixedPoints returns the boundary fixed points of a hyperbolic element as
// (attracting, repelling). The second return is false for non-hyperbolic
// elements, whose fixed point structure is degenerate.
func (g SL2R) FixedPoints() (attracting, repelling float64, ok bool) {
	if !g.IsHyperbolic() {
		return 0, 0, false
	}
	a, b, c, d := g.A[0][0], g.A[0][1], g.A[1][0], g.A[1][1]
	if c == 0 {
		// one fixed point at infinity, the other at b/(d-a)
		if math.Abs(a) > math.Abs(d) {
			return Inf, b / (d - a), true
		}
		return b / (d - a), Inf, true
	}
	disc := math.Sqrt(g.Trace()*g.Trace() - 4)
	x1 := (a - d + disc) / (2 * c)
	x2 := (a - d - disc) / (2 * c)
	// the attracting fixed point is the one with |derivative| < 1
	if math.Abs(g.Deriv(x1)) < 1 {
		return x1, x2, true
	}
	return x2, x1, true
}

// IsometricCircle returns center and radius of the isometric circle
// {x : |cx+d| = 1}. For c = 0 the circle degenerates (ok = false).
func (g SL2R) IsometricCircle() (center, radius float64, ok bool) {
	c, d := g.A[1][0], g.A[1][1]
	if c == 0 {
		return 0, 0, false
	}
	return -d / c, 1 / math.Abs(c), true
}

// ImageDisc returns the disc that the transformation maps the exterior of
// its isometric circle onto, i.e. the isometric circle of the inverse. For
// Schottky systems these discs are the fundamental domains of the symbols.
func (g SL2R) ImageDisc() (center, radius float64, ok bool) {
	a, c := g.A[0][0], g.A[1][0]
	if c == 0 {
		return 0, 0, false
	}
	return a / c, 1 / math.Abs(c), true
}

// Equal compares two elements up to global sign within tol.
func (g SL2R) Equal(h SL2R, tol float64) bool {
	plus, minus := 0.0, 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			plus = math.Max(plus, math.Abs(g.A[i][j]-h.A[i][j]))
			minus = math.Max(minus, math.Abs(g.A[i][j]+h.A[i][j]))
		}
	}
	return plus < tol || minus < tol
}

// Rotation returns the elliptic element rotating the half-plane about i;
// as an isometry of the disc model it rotates by 2*theta around the origin.
func Rotation(theta float64) SL2R {
	return SL2R{A: [2][2]float64{
		{math.Cos(theta), math.Sin(theta)},
		{-math.Sin(theta), math.Cos(theta)},
	}}
}

// Boost returns the hyperbolic element of displacement length l translating
// along the geodesic between -1 and 1.
func Boost(l float64) SL2R {
	return SL2R{A: [2][2]float64{
		{math.Cosh(l / 2), math.Sinh(l / 2)},
		{math.Sinh(l / 2), math.Cosh(l / 2)},
	}}
}

// Diagonal returns the hyperbolic element of displacement length l fixing 0
// and infinity.
func Diagonal(l float64) SL2R {
	return SL2R{A: [2][2]float64{
		{math.Exp(l / 2), 0},
		{0, math.Exp(-l / 2)},
	}}
}

func (g SL2R) String() string {
	return fmt.Sprintf("SL2R[[%.4g, %.4g], [%.4g, %.4g]]",
		g.A[0][0], g.A[0][1], g.A[1][0], g.A[1][1])
}
