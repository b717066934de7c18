package spectral

import (
	"context"
	"math"
	"math/cmplx"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
)

// Options tune the resonance search. The zero value is not useful; start
// from DefaultOptions.
type Options struct {
	// RootTolerance is the Newton step size below which a zero counts as
	// converged.
	RootTolerance float64
	// MergeTolerance is the absolute distance below which two located
	// zeros are considered the same resonance.
	MergeTolerance float64
	// LocalizeSize is the cell diameter below which Newton polishing
	// takes over from subdivision.
	LocalizeSize float64
	// MaxIterations is a soft budget on function evaluations. Once it is
	// spent, unfinished cells are reported as warnings instead of being
	// subdivided further.
	MaxIterations int
	// GridSplit is the number of initial cells per axis.
	GridSplit int
	// Workers bounds the number of concurrently scanned cells; < 1 means
	// one per CPU.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		RootTolerance:  1e-10,
		MergeTolerance: 1e-6,
		LocalizeSize:   0.05,
		MaxIterations:  200000,
		GridSplit:      4,
		Workers:        0,
	}
}

const (
	maxCellDepth   = 40
	maxPhaseRefine = 30
	maxNewtonSteps = 64
	boundaryNudges = 3
	phaseStepBound = math.Pi / 2
)

// evalCounter enforces the soft evaluation budget across workers.
type evalCounter struct {
	fn    Function
	used  atomic.Int64
	limit int64
}

func (c *evalCounter) derivatives(s complex128, dMax int) []complex128 {
	c.used.Add(1)
	return c.fn.Derivatives(s, dMax)
}

func (c *evalCounter) exhausted() bool {
	return c.limit > 0 && c.used.Load() >= c.limit
}

// FindResonances locates all zeros of fn inside the domain. The domain is
// tiled into a grid of cells scanned concurrently; each cell's zero count
// comes from the boundary winding number, pinned down by recursive
// quartering and a multiplicity-aware Newton polish. Cells that resist
// (budget spent, zeros stuck on a boundary) are reported in
// Result.Warnings. The output is deterministic for fixed options.
func FindResonances(ctx context.Context, fn Function, domain Rect, opts Options) (*Result, error) {
	if err := domain.validate(); err != nil {
		return nil, err
	}
	if opts.RootTolerance <= 0 || opts.MergeTolerance <= 0 || opts.GridSplit < 1 {
		return nil, InvalidDomainError{Domain: domain, Reason: "non-positive search tolerances"}
	}
	if opts.LocalizeSize <= 0 {
		opts.LocalizeSize = DefaultOptions().LocalizeSize
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	counter := &evalCounter{fn: fn, limit: int64(opts.MaxIterations)}
	cells := domain.split(opts.GridSplit)
	results := make([]Result, len(cells))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, cell := range cells {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, cell Rect) {
			defer wg.Done()
			defer func() { <-sem }()
			searchCell(ctx, counter, cell, opts, 0, &results[i])
		}(i, cell)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var merged Result
	for _, r := range results {
		merged.Resonances = append(merged.Resonances, r.Resonances...)
		merged.Warnings = append(merged.Warnings, r.Warnings...)
	}
	merged.Resonances = Merge(merged.Resonances, opts.MergeTolerance)
	return &merged, nil
}

func searchCell(ctx context.Context, c *evalCounter, cell Rect, opts Options, depth int, out *Result) {
	if ctx.Err() != nil {
		return
	}
	if c.exhausted() {
		out.Warnings = append(out.Warnings, PartialResultWarning{
			Domain: cell, Reason: "evaluation budget spent",
		})
		return
	}

	w, ok := winding(c, cell, opts)
	if !ok {
		out.Warnings = append(out.Warnings, PartialResultWarning{
			Domain: cell, Reason: "boundary phase did not settle",
		})
		return
	}
	if w <= 0 {
		return
	}

	if cell.diameter() > opts.LocalizeSize && depth < maxCellDepth {
		for _, q := range cell.quarters() {
			searchCell(ctx, c, q, opts, depth+1, out)
		}
		return
	}

	s, converged := polish(c, cell.center(), w, opts.RootTolerance)
	if !converged || !cell.grow(cell.diameter()).Contains(s) {
		out.Warnings = append(out.Warnings, PartialResultWarning{
			Domain: cell, Reason: "Newton polish did not converge",
		})
		return
	}
	out.Resonances = append(out.Resonances, Resonance{S: s, Multiplicity: w, Domain: cell})
}

// winding returns the number of zeros (with multiplicity) inside the cell
// by tracking the phase of fn around its boundary. When a zero sits on the
// boundary itself the cell is nudged outward a few times before giving up.
func winding(c *evalCounter, cell Rect, opts Options) (int, bool) {
	nudge := cell.diameter() * 1e-7
	for attempt := 0; attempt <= boundaryNudges; attempt++ {
		w, ok := windingOnce(c, cell)
		if ok {
			return w, true
		}
		if c.exhausted() {
			return 0, false
		}
		cell = cell.grow(nudge)
		nudge *= 16
	}
	return 0, false
}

func windingOnce(c *evalCounter, cell Rect) (int, bool) {
	corners := [5]complex128{
		complex(cell.ReMin, cell.ImMin),
		complex(cell.ReMax, cell.ImMin),
		complex(cell.ReMax, cell.ImMax),
		complex(cell.ReMin, cell.ImMax),
		complex(cell.ReMin, cell.ImMin),
	}
	total := 0.0
	prev := c.derivatives(corners[0], 0)[0]
	if prev == 0 {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		d, next, ok := edgePhase(c, corners[i], corners[i+1], prev, 0)
		if !ok {
			return 0, false
		}
		total += d
		prev = next
	}
	return int(math.Round(total / (2 * math.Pi))), true
}

// edgePhase accumulates the phase change of fn along one segment,
// bisecting until every step turns by less than pi/2.
func edgePhase(c *evalCounter, a, b complex128, fa complex128, depth int) (float64, complex128, bool) {
	fb := c.derivatives(b, 0)[0]
	if fb == 0 {
		return 0, 0, false
	}
	d := cmplx.Phase(fb / fa)
	if math.Abs(d) < phaseStepBound {
		return d, fb, true
	}
	if depth >= maxPhaseRefine || c.exhausted() {
		return 0, 0, false
	}
	mid := (a + b) / 2
	d1, fm, ok := edgePhase(c, a, mid, fa, depth+1)
	if !ok {
		return 0, 0, false
	}
	d2, fb2, ok := edgePhase(c, mid, b, fm, depth+1)
	if !ok {
		return 0, 0, false
	}
	return d1 + d2, fb2, true
}

// polish runs the Newton iteration for a zero of multiplicity m, which
// restores quadratic convergence through the step m f / f'.
func polish(c *evalCounter, s complex128, m int, tol float64) (complex128, bool) {
	mc := complex(float64(m), 0)
	for i := 0; i < maxNewtonSteps; i++ {
		d := c.derivatives(s, 1)
		if d[1] == 0 {
			return s, false
		}
		step := mc * d[0] / d[1]
		s -= step
		if cmplx.Abs(step) < tol {
			return s, true
		}
	}
	return s, false
}

// Merge deduplicates zeros located more than once (typically across cell
// boundaries): after sorting by position, runs closer than tol collapse to
// their multiplicity-weighted mean. Collapsing can move two cluster means
// within tol of each other, so the pass repeats until the list is stable;
// the result has pairwise separation > tol and merging it again is a no-op.
func Merge(rs []Resonance, tol float64) []Resonance {
	if len(rs) == 0 {
		return nil
	}
	out := mergeOnce(rs, tol)
	for len(out) > 1 {
		next := mergeOnce(out, tol)
		if len(next) == len(out) {
			break
		}
		out = next
	}
	return out
}

func mergeOnce(rs []Resonance, tol float64) []Resonance {
	sorted := make([]Resonance, len(rs))
	copy(sorted, rs)
	sort.Slice(sorted, func(i, j int) bool {
		if real(sorted[i].S) != real(sorted[j].S) {
			return real(sorted[i].S) < real(sorted[j].S)
		}
		return imag(sorted[i].S) < imag(sorted[j].S)
	})

	var out []Resonance
	cluster := []Resonance{sorted[0]}
	rep := sorted[0].S
	flush := func() {
		var sum complex128
		var wsum float64
		var dom Rect
		mult := 0
		for _, r := range cluster {
			w := float64(r.Multiplicity)
			sum += r.S * complex(w, 0)
			wsum += w
			if r.Multiplicity > mult {
				mult = r.Multiplicity
			}
			if r.Domain != (Rect{}) {
				if dom == (Rect{}) {
					dom = r.Domain
				} else {
					dom = dom.union(r.Domain)
				}
			}
		}
		out = append(out, Resonance{S: sum / complex(wsum, 0), Multiplicity: mult, Domain: dom})
	}
	for _, r := range sorted[1:] {
		if cmplx.Abs(r.S-rep) <= tol {
			cluster = append(cluster, r)
			continue
		}
		flush()
		cluster = []Resonance{r}
		rep = r.S
	}
	flush()
	return out
}
