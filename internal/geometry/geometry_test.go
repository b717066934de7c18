package geometry

import (
	"math"
	"testing"
)

func TestMulInverse(t *testing.T) {
	g := MustSL2R(2, 1, 3, 2)
	id := g.Mul(g.Inv())
	if !id.Equal(Identity(), 1e-12) {
		t.Errorf("g*g^-1 = %v, want identity", id)
	}
}

func TestDisplacementLength(t *testing.T) {
	tests := []struct {
		name string
		g    SL2R
		want float64
	}{
		{"diagonal", Diagonal(3.0), 3.0},
		{"boost", Boost(5.0), 5.0},
		{"rotated boost", Boost(2.5).Conj(Rotation(0.7)), 2.5},
		{"elliptic", Rotation(0.3), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.DisplacementLength(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("displacement = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEqualUpToSign(t *testing.T) {
	g := Boost(1.2)
	neg := SL2R{A: [2][2]float64{
		{-g.A[0][0], -g.A[0][1]},
		{-g.A[1][0], -g.A[1][1]},
	}}
	if !g.Equal(neg, 1e-12) {
		t.Error("g and -g must represent the same isometry")
	}
}

func TestFixedPoints(t *testing.T) {
	g := Boost(2.0)
	att, rep, ok := g.FixedPoints()
	if !ok {
		t.Fatal("boost must be hyperbolic")
	}
	if math.Abs(att-1) > 1e-12 || math.Abs(rep+1) > 1e-12 {
		t.Errorf("fixed points (%v, %v), want (1, -1)", att, rep)
	}
	if d := math.Abs(g.Deriv(att)); d >= 1 {
		t.Errorf("derivative %v at attracting fixed point not contracting", d)
	}

	d := Diagonal(2.0)
	att, rep, _ = d.FixedPoints()
	if !math.IsInf(att, 1) || rep != 0 {
		t.Errorf("diagonal fixed points (%v, %v), want (+inf, 0)", att, rep)
	}
}

func TestCayleyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		g    SL2R
	}{
		{"boost", Boost(1.7)},
		{"diagonal", Diagonal(0.9)},
		{"generic", MustSL2R(3, 2, 4, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := ToHalfPlane(ToDisc(tt.g))
			if !tt.g.Equal(back, 1e-9) {
				t.Errorf("round trip %v -> %v", tt.g, back)
			}
			if math.Abs(ToDisc(tt.g).DisplacementLength()-tt.g.DisplacementLength()) > 1e-9 {
				t.Error("displacement length not preserved by Cayley transform")
			}
		})
	}
}

func TestAxisAndDist(t *testing.T) {
	ax, err := Axis(Boost(2.0))
	if err != nil {
		t.Fatal(err)
	}
	c, r, ok := ax.CenterRadius()
	if !ok || math.Abs(c) > 1e-12 || math.Abs(r-1) > 1e-12 {
		t.Errorf("axis center/radius (%v, %v), want (0, 1)", c, r)
	}

	// distance along the imaginary axis is log of the ratio of heights
	if d := Dist(1i, 5i); math.Abs(d-math.Log(5)) > 1e-12 {
		t.Errorf("Dist(i, 5i) = %v, want log 5", d)
	}
}

func TestImageDisc(t *testing.T) {
	g := Boost(3.0)
	c, r, ok := g.ImageDisc()
	if !ok {
		t.Fatal("boost has nonzero lower-left entry")
	}
	// the image disc must contain the attracting fixed point
	att, _, _ := g.FixedPoints()
	if math.Abs(att-c) >= r {
		t.Errorf("attracting point %v outside image disc (%v, %v)", att, c, r)
	}
}
