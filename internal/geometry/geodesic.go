package geometry

import (
	"fmt"
	"math"
)

// Geodesic is an oriented complete geodesic of the upper half-plane, given
// by its two boundary endpoints. For finite endpoints the geodesic is the
// euclidean half-circle over the real line; with one endpoint at infinity it
// is a vertical half-line.
type Geodesic struct {
	U, V float64
}

// NewGeodesic rejects degenerate endpoint pairs.
func NewGeodesic(u, v float64) (Geodesic, error) {
	if u == v {
		return Geodesic{}, fmt.Errorf("coinciding endpoints %g", u)
	}
	return Geodesic{U: u, V: v}, nil
}

// Axis returns the translation axis of a hyperbolic isometry, oriented from
// the repelling towards the attracting fixed point.
func Axis(g SL2R) (Geodesic, error) {
	att, rep, ok := g.FixedPoints()
	if !ok {
		return Geodesic{}, fmt.Errorf("%v is not hyperbolic", g)
	}
	return Geodesic{U: rep, V: att}, nil
}

// Transform maps the geodesic under an isometry.
func (gd Geodesic) Transform(g SL2R) Geodesic {
	return Geodesic{U: g.Apply(gd.U), V: g.Apply(gd.V)}
}

// IsVertical reports whether one endpoint lies at infinity.
func (gd Geodesic) IsVertical() bool {
	return math.IsInf(gd.U, 0) || math.IsInf(gd.V, 0)
}

// CenterRadius returns the euclidean center and radius of the half-circle;
// ok is false for vertical geodesics.
func (gd Geodesic) CenterRadius() (center, radius float64, ok bool) {
	if gd.IsVertical() {
		return 0, 0, false
	}
	return (gd.U + gd.V) / 2, math.Abs(gd.V-gd.U) / 2, true
}

// Dist is the hyperbolic distance between two interior points of the
// half-plane, acosh(1 + |z-w|^2 / (2 Im z Im w)).
func Dist(z, w complex128) float64 {
	dx := real(z) - real(w)
	dy := imag(z) - imag(w)
	return math.Acosh(1 + (dx*dx+dy*dy)/(2*imag(z)*imag(w)))
}
