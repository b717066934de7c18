package zeta

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Kind selects the determinant variant.
type Kind int

const (
	// Selberg is the Selberg zeta function, vanishing at the resonances
	// with the full multiplicity structure of the Laplace spectrum.
	Selberg Kind = iota
	// Flow is the Ruelle zeta function of the geodesic flow, with the
	// topological-pressure zero as its leading real zero.
	Flow
)

func (k Kind) String() string {
	switch k {
	case Selberg:
		return "selberg"
	case Flow:
		return "flow"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Zeta is a truncated zeta determinant over fixed cycle data. Evaluations
// are pure and safe for concurrent use.
type Zeta struct {
	data *CycleData
	kind Kind
}

func New(data *CycleData, kind Kind) *Zeta {
	return &Zeta{data: data, kind: kind}
}

func (z *Zeta) Kind() Kind       { return z.kind }
func (z *Zeta) Data() *CycleData { return z.data }

// Eval returns the truncated determinant at s.
func (z *Zeta) Eval(s complex128) complex128 {
	return z.Derivatives(s, 0)[0]
}

// EvalDeriv returns the s-derivative of the determinant at s.
func (z *Zeta) EvalDeriv(s complex128) complex128 {
	return z.Derivatives(s, 1)[1]
}

// term is one orbit's contribution to the log-determinant exponent. Its
// j-th s-derivative is the term times (-length)^j.
func (z *Zeta) term(s complex128, length float64) complex128 {
	t := cmplx.Exp(-s * complex(length, 0))
	if z.kind == Selberg {
		t /= complex(1-math.Exp(-length), 0)
	}
	return t
}

// coeffs returns the exponent series coefficients a[n][j] for n = 1..N and
// derivative orders j = 0..dMax.
func (z *Zeta) coeffs(s complex128, dMax int) [][]complex128 {
	n := z.data.Order()
	a := make([][]complex128, n+1)
	for m := 1; m <= n; m++ {
		a[m] = make([]complex128, dMax+1)
		for _, o := range z.data.Orders[m-1] {
			t := complex(o.Mult, 0) * z.term(s, o.Length)
			for j := 0; j <= dMax; j++ {
				a[m][j] += t
				t *= complex(-o.Length, 0)
			}
		}
		for j := range a[m] {
			a[m][j] *= complex(-1/float64(m), 0)
		}
	}
	return a
}

// Derivatives returns the determinant and its s-derivatives up to order
// dMax, as [Z, Z', ..., Z^(dMax)].
func (z *Zeta) Derivatives(s complex128, dMax int) []complex128 {
	n := z.data.Order()
	a := z.coeffs(s, dMax)
	binom := pascal(dMax)

	// exponential Bell recurrence with the product rule carried through
	// every derivative order
	d := make([][]complex128, n+1)
	d[0] = make([]complex128, dMax+1)
	d[0][0] = 1
	for m := 1; m <= n; m++ {
		d[m] = make([]complex128, dMax+1)
		for k := 1; k <= m; k++ {
			kc := complex(float64(k), 0)
			for j := 0; j <= dMax; j++ {
				for i := 0; i <= j; i++ {
					d[m][j] += complex(binom[j][i], 0) * kc * a[k][i] * d[m-k][j-i]
				}
			}
		}
		for j := range d[m] {
			d[m][j] /= complex(float64(m), 0)
		}
	}

	out := make([]complex128, dMax+1)
	for m := 0; m <= n; m++ {
		for j := 0; j <= dMax; j++ {
			out[j] += d[m][j]
		}
	}
	return out
}

// WeightedDerivatives returns, for every point of the support grid, the
// weighted determinant and its s-derivatives up to order dMax. The row
// for grid point g is [D_g, D_g', ..., D_g^(dMax)]. It fails when the
// cycle data was built without a weight provider.
func (z *Zeta) WeightedDerivatives(s complex128, dMax int) ([][]complex128, error) {
	grid := z.data.GridSize
	if grid == 0 {
		return nil, fmt.Errorf("cycle data carries no orbit weights")
	}
	n := z.data.Order()
	a := z.coeffs(s, dMax)
	binom := pascal(dMax)

	// weighted exponent coefficients b[m][j][g]
	b := make([][][]complex128, n+1)
	for m := 1; m <= n; m++ {
		b[m] = make([][]complex128, dMax+1)
		for j := range b[m] {
			b[m][j] = make([]complex128, grid)
		}
		for _, o := range z.data.Orders[m-1] {
			t := complex(o.Mult, 0) * z.term(s, o.Length)
			for j := 0; j <= dMax; j++ {
				for g := 0; g < grid; g++ {
					b[m][j][g] += complex(o.Weights[g], 0) * t
				}
				t *= complex(-o.Length, 0)
			}
		}
		for j := range b[m] {
			for g := range b[m][j] {
				b[m][j][g] *= complex(-1/float64(m), 0)
			}
		}
	}

	// unweighted Bell component, needed by the cross terms
	d := make([][]complex128, n+1)
	d[0] = make([]complex128, dMax+1)
	d[0][0] = 1
	f := make([][][]complex128, n+1)
	f[0] = make([][]complex128, dMax+1)
	for j := range f[0] {
		f[0][j] = make([]complex128, grid)
	}
	for m := 1; m <= n; m++ {
		d[m] = make([]complex128, dMax+1)
		f[m] = make([][]complex128, dMax+1)
		for j := range f[m] {
			f[m][j] = make([]complex128, grid)
		}
		for k := 1; k <= m; k++ {
			kc := complex(float64(k), 0)
			for j := 0; j <= dMax; j++ {
				for i := 0; i <= j; i++ {
					c := complex(binom[j][i], 0) * kc
					d[m][j] += c * a[k][i] * d[m-k][j-i]
					for g := 0; g < grid; g++ {
						f[m][j][g] += c * (a[k][i]*f[m-k][j-i][g] + b[k][i][g]*d[m-k][j-i])
					}
				}
			}
		}
		inv := complex(1/float64(m), 0)
		for j := 0; j <= dMax; j++ {
			d[m][j] *= inv
			for g := range f[m][j] {
				f[m][j][g] *= inv
			}
		}
	}

	out := make([][]complex128, grid)
	for g := range out {
		out[g] = make([]complex128, dMax+1)
	}
	for m := 0; m <= n; m++ {
		for j := 0; j <= dMax; j++ {
			for g := 0; g < grid; g++ {
				out[g][j] += f[m][j][g]
			}
		}
	}
	return out, nil
}

func pascal(n int) [][]float64 {
	p := make([][]float64, n+1)
	for i := range p {
		p[i] = make([]float64, i+1)
		p[i][0] = 1
		for j := 1; j < i; j++ {
			p[i][j] = p[i-1][j-1] + p[i-1][j]
		}
		p[i][i] = 1
	}
	return p
}
