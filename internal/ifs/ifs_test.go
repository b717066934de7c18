package ifs

import (
	"errors"
	"math"
	"testing"

	"github.com/skm-lab/zetadyn/internal/geometry"
)

func TestSchottkyLetterLayout(t *testing.T) {
	g := geometry.Boost(4.0)
	sys, err := NewSchottky([]geometry.SL2R{g})
	if err != nil {
		t.Fatal(err)
	}
	if sys.AlphabetSize() != 2 {
		t.Fatalf("alphabet size = %d, want 2", sys.AlphabetSize())
	}
	if !sys.Generator(0).Equal(g.Inv(), 1e-12) {
		t.Error("letter 0 must carry the inverse generator")
	}
	if !sys.Generator(1).Equal(g, 1e-12) {
		t.Error("letter 1 must carry the generator")
	}

	adj := sys.Adjacency()
	// a letter may not be followed by its inverse letter
	if adj[0][1] || adj[1][0] || !adj[0][0] || !adj[1][1] {
		t.Errorf("rank 1 adjacency = %v", adj)
	}
}

func TestCylinderStabilities(t *testing.T) {
	width := 5.0
	sys, err := NewHyperbolicCylinder(width, false)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		word []byte
		want float64
	}{
		{"generator", []byte{1}, math.Exp(-width)},
		{"inverse", []byte{0}, math.Exp(-width)},
		{"square", []byte{1, 1}, math.Exp(-2 * width)},
		{"cube", []byte{0, 0, 0}, math.Exp(-3 * width)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sys.Stability(tt.word); math.Abs(got-tt.want) > 1e-12*tt.want {
				t.Errorf("stability = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() error
	}{
		{"zero generators", func() error {
			_, err := NewSchottky(nil)
			return err
		}},
		{"elliptic generator", func() error {
			_, err := NewSchottky([]geometry.SL2R{geometry.Rotation(0.5)})
			return err
		}},
		{"overlapping funnels", func() error {
			_, err := NewNFunnel(3, 0.1)
			return err
		}},
		{"coinciding axes", func() error {
			// both generators translate along the same geodesic
			_, err := NewSchottky([]geometry.SL2R{geometry.Boost(3), geometry.Boost(4)})
			return err
		}},
		{"negative cylinder width", func() error {
			_, err := NewHyperbolicCylinder(-1, false)
			return err
		}},
		{"flat torus angle", func() error {
			_, err := NewFunnelTorus(6, 6, 0)
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			if err == nil {
				t.Fatal("expected ConfigurationError, got nil")
			}
			var cfgErr ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("got %T (%v), want ConfigurationError", err, err)
			}
		})
	}
}

func TestNFunnelSymmetry(t *testing.T) {
	sys, err := NewNFunnel(3, 6.0)
	if err != nil {
		t.Fatal(err)
	}
	if sys.AlphabetSize() != 6 {
		t.Fatalf("alphabet size = %d, want 6", sys.AlphabetSize())
	}
	rot, err := sys.RotationSymmetry()
	if err != nil {
		t.Fatal(err)
	}
	if rot.Order() != 3 {
		t.Fatalf("symmetry order = %d, want 3", rot.Order())
	}
	// the rotation conjugates generator k into generator k+1
	r := geometry.Rotation(math.Pi / 3)
	for k := 0; k < 3; k++ {
		got := sys.Generator(3 + k).Conj(r)
		want := sys.Generator(3 + (k+1)%3)
		if !got.Equal(want, 1e-9) {
			t.Errorf("rotation does not map generator %d to %d", k, (k+1)%3)
		}
	}
	// stabilities are invariant under the symmetry
	w := []byte{3, 4}
	img := []byte{4, 5}
	if math.Abs(sys.Stability(w)-sys.Stability(img)) > 1e-12 {
		t.Error("symmetry-related words have different stabilities")
	}
}

func TestFunnelTorus(t *testing.T) {
	sys, err := NewFunnelTorus(6, 6, math.Pi/2)
	if err != nil {
		t.Fatal(err)
	}
	if sys.AlphabetSize() != 4 {
		t.Fatalf("alphabet size = %d, want 4", sys.AlphabetSize())
	}
	if got, want := sys.Stability([]byte{2}), math.Exp(-6.0); math.Abs(got-want) > 1e-12*want {
		t.Errorf("outer geodesic stability %v, want %v", got, want)
	}

	geom, err := NewGeometricFunnelTorus(6, 4, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := geom.Stability([]byte{2}), math.Exp(-6.0); math.Abs(got-want) > 1e-12*want {
		t.Errorf("outer geodesic stability %v, want %v", got, want)
	}
}

func TestFundamentalIntervals(t *testing.T) {
	sys, err := NewHyperbolicCylinder(5.0, true)
	if err != nil {
		t.Fatal(err)
	}
	ivs, err := sys.FundamentalIntervals()
	if err != nil {
		t.Fatal(err)
	}
	if len(ivs) != 2 {
		t.Fatalf("got %d intervals, want 2", len(ivs))
	}
	// the attracting fixed point of each letter lies in its interval
	for l, iv := range ivs {
		_, xp := sys.PeriodicPoints([]byte{byte(l)})
		if !iv.Contains(xp) {
			t.Errorf("letter %d: fixed point %v outside %v", l, xp, iv)
		}
	}

	// diagonal generators fix infinity and have no bounded interval
	diag, _ := NewHyperbolicCylinder(5.0, false)
	if _, err := diag.FundamentalIntervals(); err == nil {
		t.Error("expected error for unbounded fundamental intervals")
	}
}

func TestGaussSystem(t *testing.T) {
	sys, err := NewGauss(3)
	if err != nil {
		t.Fatal(err)
	}
	if sys.AlphabetSize() != 3 {
		t.Fatalf("alphabet size = %d, want 3", sys.AlphabetSize())
	}

	// the fixed point of branch 1 is the golden section, stability its square
	golden := (math.Sqrt(5) - 1) / 2
	_, xp := sys.PeriodicPoints([]byte{0})
	if math.Abs(xp-golden) > 1e-12 {
		t.Errorf("branch 1 fixed point %v, want %v", xp, golden)
	}
	want := golden * golden
	if got := sys.Stability([]byte{0}); math.Abs(got-want) > 1e-12 {
		t.Errorf("branch 1 stability %v, want %v", got, want)
	}

	// stability of a word is invariant under cyclic rotation
	w := []byte{0, 1, 2}
	r := []byte{1, 2, 0}
	if math.Abs(sys.Stability(w)-sys.Stability(r)) > 1e-12 {
		t.Error("stability not rotation invariant")
	}
}

func TestConstantWeights(t *testing.T) {
	var w ConstantWeights
	if w.GridSize() != 1 {
		t.Fatalf("grid size = %d, want 1", w.GridSize())
	}
	got := w.OrbitWeights([]byte{0, 1})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("weights = %v, want [1]", got)
	}
}

func TestPoincareWeights(t *testing.T) {
	sys, err := NewHyperbolicCylinder(5.0, true)
	if err != nil {
		t.Fatal(err)
	}
	ivs, _ := sys.FundamentalIntervals()
	sup := SupportPoints(ivs, 16)
	pw, err := NewPoincareWeights(sys, sup, sup, 0.5, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if pw.GridSize() != len(sup)*len(sup) {
		t.Fatalf("grid size = %d, want %d", pw.GridSize(), len(sup)*len(sup))
	}

	weights := pw.OrbitWeights([]byte{1})
	if len(weights) != pw.GridSize() {
		t.Fatalf("got %d weights, want %d", len(weights), pw.GridSize())
	}
	var max float64
	for _, v := range weights {
		if v < 0 {
			t.Fatal("negative orbit integral")
		}
		if v > max {
			max = v
		}
	}
	if max == 0 {
		t.Fatal("orbit integral vanished on the whole support grid")
	}

	// a doubled word crosses the section twice, doubling the integral
	single := pw.OrbitWeights([]byte{1})
	double := pw.OrbitWeights([]byte{1, 1})
	for i := range single {
		if math.Abs(double[i]-2*single[i]) > 1e-9*(1+single[i]) {
			t.Fatal("doubled word does not double the orbit integral")
		}
	}
}
