// Package symmetry provides finite groups acting on the alphabet of a
// symbolic dynamics. The symbolic layer uses the action to collapse words
// related by a symmetry of the underlying function system into a single
// representative with an orbit-size multiplicity.
package symmetry

import "fmt"

// Group is a finite group together with an action on alphabet letters.
// Elements are indexed 0..Order()-1 with 0 the identity.
type Group interface {
	// Order returns the number of group elements.
	Order() int
	// Compose returns the index of the product of two elements.
	Compose(a, b int) int
	// Inverse returns the index of the inverse element.
	Inverse(a int) int
	// Apply returns the image of a letter under an element's action.
	Apply(elem, letter int) int
}

// ApplyWord maps a word letterwise under the action of elem.
func ApplyWord(g Group, elem int, word []byte) []byte {
	out := make([]byte, len(word))
	for i, l := range word {
		out[i] = byte(g.Apply(elem, int(l)))
	}
	return out
}

// Trivial is the one-element group acting as the identity on any alphabet.
type Trivial struct{}

func (Trivial) Order() int                 { return 1 }
func (Trivial) Compose(a, b int) int       { return 0 }
func (Trivial) Inverse(a int) int          { return 0 }
func (Trivial) Apply(elem, letter int) int { return letter }

// Permutation is the cyclic group generated by a single permutation of the
// alphabet. Element k acts as the k-th power of the generator.
type Permutation struct {
	powers [][]int // powers[k][letter], powers[0] = identity
}

// NewPermutation validates that perm is a permutation of {0,..,len(perm)-1}
// and closes it into the cyclic group it generates.
func NewPermutation(perm []int) (*Permutation, error) {
	n := len(perm)
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return nil, fmt.Errorf("not a permutation of %d letters: %v", n, perm)
		}
		seen[p] = true
	}

	id := make([]int, n)
	for i := range id {
		id[i] = i
	}
	powers := [][]int{id}
	cur := perm
	for !equalPerm(cur, id) {
		powers = append(powers, cur)
		next := make([]int, n)
		for i := range next {
			next[i] = perm[cur[i]]
		}
		cur = next
		if len(powers) > n*n {
			return nil, fmt.Errorf("permutation %v does not close", perm)
		}
	}
	return &Permutation{powers: powers}, nil
}

func equalPerm(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p *Permutation) Order() int { return len(p.powers) }

func (p *Permutation) Compose(a, b int) int {
	return (a + b) % len(p.powers)
}

func (p *Permutation) Inverse(a int) int {
	return (len(p.powers) - a) % len(p.powers)
}

func (p *Permutation) Apply(elem, letter int) int {
	return p.powers[elem][letter]
}

// Letters returns the alphabet size the group acts on.
func (p *Permutation) Letters() int { return len(p.powers[0]) }
