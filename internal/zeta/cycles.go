// Package zeta evaluates dynamical zeta functions of hyperbolic function
// systems through their cycle expansion. The determinant is truncated at a
// word length N and computed from the stabilities of all symmetry classes
// of cyclic words up to that length via the exponential Bell recurrence.
package zeta

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/skm-lab/zetadyn/internal/ifs"
	"github.com/skm-lab/zetadyn/internal/symbolic"
)

// Orbit is the cycle record of one symmetry class of closed orbits: the
// geodesic length of a representative word, the class multiplicity and,
// when a weight provider is attached, its orbit integrals on the support
// grid.
type Orbit struct {
	Length  float64
	Mult    float64
	Weights []float64
}

// CycleData aggregates orbit records by word length up to the truncation
// order. It is the sole input of the determinant and is safe to share
// between evaluations.
type CycleData struct {
	Orders   [][]Orbit
	GridSize int
}

// Order returns the truncation order.
func (c *CycleData) Order() int { return len(c.Orders) }

// BuildCycleData enumerates the symmetry classes of cyclic words up to the
// given order on the reduced dynamics and evaluates their stabilities on
// the function system, plus orbit integrals when wp is non-nil. Word
// lengths are processed concurrently; within one length the enumeration
// order is kept, so the result is deterministic. workers < 1 means one
// worker per CPU.
func BuildCycleData(ctx context.Context, sys ifs.System, red *symbolic.Reduced, order int, wp ifs.WeightProvider, workers int) (*CycleData, error) {
	if order < 1 {
		return nil, fmt.Errorf("truncation order %d, need at least 1", order)
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	data := &CycleData{Orders: make([][]Orbit, order)}
	if wp != nil {
		data.GridSize = wp.GridSize()
	}
	errs := make([]error, order)

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for n := 1; n <= order; n++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(n int) {
			defer wg.Done()
			defer func() { <-sem }()
			data.Orders[n-1], errs[n-1] = buildOrder(ctx, sys, red, n, wp)
		}(n)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	total := 0
	for _, orbits := range data.Orders {
		total += len(orbits)
	}
	if total == 0 {
		return nil, symbolic.EmptyDynamicsError{
			Reason: fmt.Sprintf("no admissible cyclic words up to length %d", order),
		}
	}
	return data, nil
}

func buildOrder(ctx context.Context, sys ifs.System, red *symbolic.Reduced, n int, wp ifs.WeightProvider) ([]Orbit, error) {
	classes := red.CyclicClasses(n)
	orbits := make([]Orbit, len(classes))
	for i, cl := range classes {
		if i%256 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		stab := sys.Stability(cl.Word)
		if math.IsNaN(stab) || stab <= 0 || stab >= 1 {
			return nil, fmt.Errorf("word %v is not uniformly contracting (stability %v)", cl.Word, stab)
		}
		orbits[i] = Orbit{Length: -math.Log(stab), Mult: float64(cl.Mult)}
		if wp != nil {
			orbits[i].Weights = wp.OrbitWeights(cl.Word)
		}
	}
	return orbits, nil
}
