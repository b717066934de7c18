package geometry

import (
	"fmt"
	"math"
	"math/cmplx"
)

// SU11 is a complex 2x2 matrix [[a, b], [conj(b), conj(a)]] with
// |a|^2 - |b|^2 = 1 acting on the Poincare disc by Moebius transformations.
// Matrices differing by a global sign represent the same isometry.
type SU11 struct {
	A complex128 // top-left entry a
	B complex128 // top-right entry b
}

// NewSU11 validates the defining constraint |a|^2 - |b|^2 = 1.
func NewSU11(a, b complex128) (SU11, error) {
	n := real(a)*real(a) + imag(a)*imag(a) - real(b)*real(b) - imag(b)*imag(b)
	if math.Abs(n-1) > 1e-9 {
		return SU11{}, fmt.Errorf("|a|^2 - |b|^2 = %g, want 1", n)
	}
	return SU11{A: a, B: b}, nil
}

// Mul returns the group composition g*h.
func (g SU11) Mul(h SU11) SU11 {
	return SU11{
		A: g.A*h.A + g.B*cmplx.Conj(h.B),
		B: g.A*h.B + g.B*cmplx.Conj(h.A),
	}
}

// Inv returns the group inverse.
func (g SU11) Inv() SU11 {
	return SU11{A: cmplx.Conj(g.A), B: -g.B}
}

// Trace returns the matrix trace a + conj(a) = 2*Re(a).
func (g SU11) Trace() float64 {
	return 2 * real(g.A)
}

// IsHyperbolic reports whether |tr| > 2.
func (g SU11) IsHyperbolic() bool {
	return math.Abs(g.Trace()) > 2
}

// DisplacementLength returns the translation length of a hyperbolic element.
func (g SU11) DisplacementLength() float64 {
	t := math.Abs(g.Trace())
	if t <= 2 {
		return 0
	}
	return 2 * math.Acosh(t/2)
}

// Apply evaluates the Moebius action on a point of the closed disc.
func (g SU11) Apply(z complex128) complex128 {
	return (g.A*z + g.B) / (cmplx.Conj(g.B)*z + cmplx.Conj(g.A))
}

// Equal compares two elements up to global sign within tol.
func (g SU11) Equal(h SU11, tol float64) bool {
	plus := math.Max(cmplx.Abs(g.A-h.A), cmplx.Abs(g.B-h.B))
	minus := math.Max(cmplx.Abs(g.A+h.A), cmplx.Abs(g.B+h.B))
	return plus < tol || minus < tol
}

// cayley is the boundary-normalized Cayley transform z -> (z-i)/(z+i)
// mapping the upper half-plane onto the disc.
var cayley = [2][2]complex128{
	{complex(1, 0), complex(0, -1)},
	{complex(1, 0), complex(0, 1)},
}

// ToDisc conjugates a half-plane isometry into the disc model.
func ToDisc(g SL2R) SU11 {
	// T * g * T^{-1} with T the Cayley matrix, renormalized to det 1.
	m := mulC(cayley, [2][2]complex128{
		{complex(g.A[0][0], 0), complex(g.A[0][1], 0)},
		{complex(g.A[1][0], 0), complex(g.A[1][1], 0)},
	})
	inv := [2][2]complex128{
		{cayley[1][1], -cayley[0][1]},
		{-cayley[1][0], cayley[0][0]},
	}
	m = mulC(m, inv)
	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	r := cmplx.Sqrt(det)
	return SU11{A: m[0][0] / r, B: m[0][1] / r}
}

// ToHalfPlane conjugates a disc isometry back into the half-plane model.
func ToHalfPlane(g SU11) SL2R {
	m := [2][2]complex128{
		{g.A, g.B},
		{cmplx.Conj(g.B), cmplx.Conj(g.A)},
	}
	inv := [2][2]complex128{
		{cayley[1][1], -cayley[0][1]},
		{-cayley[1][0], cayley[0][0]},
	}
	m = mulC(inv, mulC(m, cayley))
	det := m[0][0]*m[1][1] - m[0][1]*m[1][0]
	r := cmplx.Sqrt(det)
	return SL2R{A: [2][2]float64{
		{real(m[0][0] / r), real(m[0][1] / r)},
		{real(m[1][0] / r), real(m[1][1] / r)},
	}}
}

func mulC(x, y [2][2]complex128) [2][2]complex128 {
	var p [2][2]complex128
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			p[i][j] = x[i][0]*y[0][j] + x[i][1]*y[1][j]
		}
	}
	return p
}
