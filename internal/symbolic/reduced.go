package symbolic

import (
	"fmt"
	"sort"

	"github.com/skm-lab/zetadyn/internal/symmetry"
)

// OrbitClass is one equivalence class of cyclically admissible words under
// a symmetry group action: a representative word together with the number
// of geometrically distinct but dynamically equivalent words it stands for.
type OrbitClass struct {
	Word []byte
	Mult int
}

// Reduced is a symmetry-reduced symbolic dynamics. It enumerates one
// representative per group orbit of words; the orbit size re-enters the
// cycle expansion as a multiplicity weight.
type Reduced struct {
	dyn   *Dynamics
	group symmetry.Group
}

// NewReduced checks that the group action is compatible with the
// admissibility structure: every group element must map legal transitions
// to legal transitions. Otherwise reduced and full dynamics would disagree.
func NewReduced(d *Dynamics, g symmetry.Group) (*Reduced, error) {
	n := d.AlphabetSize()
	for e := 0; e < g.Order(); e++ {
		for i := 0; i < n; i++ {
			gi := g.Apply(e, i)
			if gi < 0 || gi >= n {
				return nil, fmt.Errorf("group element %d maps letter %d outside the alphabet", e, i)
			}
			for j := 0; j < n; j++ {
				if d.adj[i][j] != d.adj[gi][g.Apply(e, j)] {
					return nil, fmt.Errorf("group element %d does not preserve adjacency at (%d,%d)", e, i, j)
				}
			}
		}
	}
	return &Reduced{dyn: d, group: g}, nil
}

// Dynamics returns the underlying full symbolic dynamics.
func (r *Reduced) Dynamics() *Dynamics { return r.dyn }

// CyclicClasses partitions the cyclically admissible words of the given
// length into group orbits. Representatives are the lexicographically least
// orbit members, listed in enumeration order of their first occurrence.
func (r *Reduced) CyclicClasses(n int) []OrbitClass {
	words := r.dyn.CyclicWords(n)
	seen := make(map[string]bool, len(words))
	classes := make([]OrbitClass, 0, len(words))

	for _, w := range words {
		key := string(w)
		if seen[key] {
			continue
		}
		orbit := r.orbit(w)
		for _, img := range orbit {
			seen[img] = true
		}
		classes = append(classes, OrbitClass{Word: []byte(orbit[0]), Mult: len(orbit)})
	}
	return classes
}

// orbit returns the distinct images of the word, sorted so the first entry
// is the canonical representative.
func (r *Reduced) orbit(w []byte) []string {
	imgs := make(map[string]bool, r.group.Order())
	for e := 0; e < r.group.Order(); e++ {
		imgs[string(symmetry.ApplyWord(r.group, e, w))] = true
	}
	orbit := make([]string, 0, len(imgs))
	for img := range imgs {
		orbit = append(orbit, img)
	}
	sort.Strings(orbit)
	return orbit
}
