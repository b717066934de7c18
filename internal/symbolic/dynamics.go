// Package symbolic derives the combinatorial encoding of periodic orbits
// from the adjacency structure of a function system: admissible words over
// the generator alphabet, cyclic admissibility, and symmetry reduction of
// words into orbit classes.
package symbolic

import "fmt"

// EmptyDynamicsError reports a degenerate configuration that admits no
// periodic symbolic word at all. It is fatal to any downstream zeta.
type EmptyDynamicsError struct {
	Reason string
}

func (e EmptyDynamicsError) Error() string {
	return "empty symbolic dynamics: " + e.Reason
}

// Dynamics is a subshift of finite type: a finite alphabet with an
// adjacency rule determining which letter may follow which.
type Dynamics struct {
	adj [][]bool
}

// New validates the adjacency matrix and checks that at least one periodic
// word exists, i.e. the transition digraph contains a cycle.
func New(adj [][]bool) (*Dynamics, error) {
	n := len(adj)
	if n == 0 {
		return nil, EmptyDynamicsError{Reason: "alphabet has no symbols"}
	}
	for i, row := range adj {
		if len(row) != n {
			return nil, fmt.Errorf("adjacency row %d has length %d, want %d", i, len(row), n)
		}
	}
	d := &Dynamics{adj: adj}
	if !d.hasCycle() {
		return nil, EmptyDynamicsError{Reason: "transition graph is acyclic"}
	}
	return d, nil
}

// AlphabetSize returns the number of symbols.
func (d *Dynamics) AlphabetSize() int { return len(d.adj) }

// Admissible reports whether consecutive letters of the word form legal
// transitions. The empty word is admissible.
func (d *Dynamics) Admissible(word []byte) bool {
	for i := 1; i < len(word); i++ {
		if !d.adj[word[i-1]][word[i]] {
			return false
		}
	}
	return true
}

// CyclicallyAdmissible additionally requires the wrap-around transition
// from the last letter to the first, so the word describes a closed orbit.
func (d *Dynamics) CyclicallyAdmissible(word []byte) bool {
	if len(word) == 0 {
		return false
	}
	return d.Admissible(word) && d.adj[word[len(word)-1]][word[0]]
}

// hasCycle runs a coloring DFS over the transition digraph.
func (d *Dynamics) hasCycle() bool {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, len(d.adj))
	var visit func(v int) bool
	visit = func(v int) bool {
		color[v] = gray
		for w, ok := range d.adj[v] {
			if !ok {
				continue
			}
			if color[w] == gray {
				return true
			}
			if color[w] == white && visit(w) {
				return true
			}
		}
		color[v] = black
		return false
	}
	for v := range d.adj {
		if color[v] == white && visit(v) {
			return true
		}
	}
	return false
}

// WordsOfLength returns all admissible words of the given length in
// lexicographic enumeration order.
func (d *Dynamics) WordsOfLength(n int) [][]byte {
	if n < 1 {
		return nil
	}
	words := make([][]byte, 0, len(d.adj))
	for l := 0; l < len(d.adj); l++ {
		words = append(words, []byte{byte(l)})
	}
	for length := 1; length < n; length++ {
		words = d.extend(words)
	}
	return words
}

// extend appends every legal letter to every word, preserving order.
func (d *Dynamics) extend(words [][]byte) [][]byte {
	out := make([][]byte, 0, len(words)*len(d.adj))
	for _, w := range words {
		last := w[len(w)-1]
		for l := 0; l < len(d.adj); l++ {
			if d.adj[last][l] {
				ext := make([]byte, len(w)+1)
				copy(ext, w)
				ext[len(w)] = byte(l)
				out = append(out, ext)
			}
		}
	}
	return out
}

// CyclicWords returns all cyclically admissible words of the given length.
func (d *Dynamics) CyclicWords(n int) [][]byte {
	all := d.WordsOfLength(n)
	out := all[:0:0]
	for _, w := range all {
		if d.adj[w[len(w)-1]][w[0]] {
			out = append(out, w)
		}
	}
	return out
}

// Words returns a restartable iterator over batches of cyclically
// admissible words of lengths 1..maxLen.
func (d *Dynamics) Words(maxLen int) *WordIter {
	return &WordIter{dyn: d, maxLen: maxLen}
}

// WordIter yields the cyclically admissible words one length at a time.
// The iterator is finite by construction, bounded by the truncation order
// it was created with.
type WordIter struct {
	dyn    *Dynamics
	maxLen int
	length int
	all    [][]byte // admissible words of the current length
}

// Next returns the cyclically admissible words of the next length. The
// second return is false once the iterator is exhausted.
func (it *WordIter) Next() ([][]byte, bool) {
	if it.length >= it.maxLen {
		return nil, false
	}
	it.length++
	if it.length == 1 {
		it.all = it.dyn.WordsOfLength(1)
	} else {
		it.all = it.dyn.extend(it.all)
	}
	cyc := make([][]byte, 0, len(it.all))
	for _, w := range it.all {
		if it.dyn.adj[w[len(w)-1]][w[0]] {
			cyc = append(cyc, w)
		}
	}
	return cyc, true
}

// Length returns the word length of the batch most recently returned.
func (it *WordIter) Length() int { return it.length }

// Reset rewinds the iterator to the first batch.
func (it *WordIter) Reset() {
	it.length = 0
	it.all = nil
}

// IsPrime reports whether the word is not a proper power of a shorter word.
func IsPrime(word []byte) bool {
	n := len(word)
	for k := 1; k <= n/2; k++ {
		if n%k != 0 {
			continue
		}
		power := true
		for i := k; i < n; i++ {
			if word[i] != word[i-k] {
				power = false
				break
			}
		}
		if power {
			return false
		}
	}
	return true
}
