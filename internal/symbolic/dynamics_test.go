package symbolic

import (
	"testing"

	"github.com/skm-lab/zetadyn/internal/symmetry"
)

// schottkyAdj is the transition rule of a rank r Schottky system: letter i
// may be followed by anything except the letter of its inverse map.
func schottkyAdj(rank int) [][]bool {
	n := 2 * rank
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
		for j := range adj[i] {
			adj[i][j] = j != (i+rank)%n
		}
	}
	return adj
}

func fullAdj(n int) [][]bool {
	adj := make([][]bool, n)
	for i := range adj {
		adj[i] = make([]bool, n)
		for j := range adj[i] {
			adj[i][j] = true
		}
	}
	return adj
}

func TestNewDegenerate(t *testing.T) {
	tests := []struct {
		name string
		adj  [][]bool
	}{
		{"empty alphabet", [][]bool{}},
		{"acyclic", [][]bool{{false, true}, {false, false}}},
		{"no transitions", [][]bool{{false}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.adj)
			if err == nil {
				t.Fatal("expected EmptyDynamicsError, got nil")
			}
			if _, ok := err.(EmptyDynamicsError); !ok {
				t.Fatalf("got %T (%v), want EmptyDynamicsError", err, err)
			}
		})
	}
}

// Cyclic word counts of the rank 2 Schottky shift are the traces of powers
// of the adjacency matrix: 3^n + 2 + (-1)^n.
func TestSchottkyCyclicWordCounts(t *testing.T) {
	d, err := New(schottkyAdj(2))
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 12, 28, 84, 244}
	for n := 1; n <= len(want); n++ {
		got := len(d.CyclicWords(n))
		if got != want[n-1] {
			t.Errorf("length %d: %d cyclic words, want %d", n, got, want[n-1])
		}
	}
}

func TestAdmissibility(t *testing.T) {
	d, _ := New(schottkyAdj(2))
	tests := []struct {
		name   string
		word   []byte
		admis  bool
		cyclic bool
	}{
		{"generator repeat", []byte{2, 2, 2}, true, true},
		{"cancelling pair", []byte{0, 2}, false, false},
		{"open but not closed", []byte{2, 1, 3, 0}, true, false},
		{"closed", []byte{2, 3}, true, true},
		{"empty", nil, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Admissible(tt.word); got != tt.admis {
				t.Errorf("Admissible = %v, want %v", got, tt.admis)
			}
			if got := d.CyclicallyAdmissible(tt.word); got != tt.cyclic {
				t.Errorf("CyclicallyAdmissible = %v, want %v", got, tt.cyclic)
			}
		})
	}
}

func TestWordIterRestart(t *testing.T) {
	d, _ := New(schottkyAdj(2))
	it := d.Words(3)

	var first []int
	for batch, ok := it.Next(); ok; batch, ok = it.Next() {
		first = append(first, len(batch))
	}
	if len(first) != 3 {
		t.Fatalf("iterator yielded %d batches, want 3", len(first))
	}

	it.Reset()
	var second []int
	for batch, ok := it.Next(); ok; batch, ok = it.Next() {
		second = append(second, len(batch))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("restart changed batch sizes: %v vs %v", first, second)
		}
	}
}

func TestIsPrime(t *testing.T) {
	tests := []struct {
		word []byte
		want bool
	}{
		{[]byte{0}, true},
		{[]byte{0, 0}, false},
		{[]byte{0, 1}, true},
		{[]byte{0, 1, 0, 1}, false},
		{[]byte{0, 1, 0}, true},
	}
	for _, tt := range tests {
		if got := IsPrime(tt.word); got != tt.want {
			t.Errorf("IsPrime(%v) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestReducedTrivialGroup(t *testing.T) {
	d, _ := New(schottkyAdj(2))
	r, err := NewReduced(d, symmetry.Trivial{})
	if err != nil {
		t.Fatal(err)
	}
	for n := 1; n <= 4; n++ {
		classes := r.CyclicClasses(n)
		full := d.CyclicWords(n)
		if len(classes) != len(full) {
			t.Errorf("length %d: trivial reduction changed word count %d -> %d",
				n, len(full), len(classes))
		}
		for _, c := range classes {
			if c.Mult != 1 {
				t.Errorf("trivial orbit has multiplicity %d", c.Mult)
			}
		}
	}
}

func TestReducedOrbitCounting(t *testing.T) {
	// swap the two generators (and their inverses) of a rank 2 system
	d, _ := New(schottkyAdj(2))
	g, err := symmetry.NewPermutation([]int{1, 0, 3, 2})
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewReduced(d, g)
	if err != nil {
		t.Fatal(err)
	}

	for n := 1; n <= 5; n++ {
		classes := r.CyclicClasses(n)
		total := 0
		for _, c := range classes {
			if c.Mult < 1 || c.Mult > g.Order() {
				t.Fatalf("orbit size %d outside [1, %d]", c.Mult, g.Order())
			}
			total += c.Mult
		}
		if full := len(d.CyclicWords(n)); total != full {
			t.Errorf("length %d: orbit sizes sum to %d, want %d", n, total, full)
		}
	}
}

func TestReducedRejectsIncompatibleAction(t *testing.T) {
	// full shift on 3 letters is invariant, but a block matrix is not
	adj := fullAdj(3)
	adj[2][0] = false
	d, err := New(adj)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := symmetry.NewPermutation([]int{1, 2, 0})
	if _, err := NewReduced(d, g); err == nil {
		t.Fatal("expected incompatible action to be rejected")
	}
}
