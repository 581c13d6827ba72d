package sim

import "math/rand"

// edge is an undirected pair of node ids; (a,b) and (b,a) are equal.
type edge struct {
	a, b int
}

func (e edge) equals(o edge) bool {
	return (e.a == o.a && e.b == o.b) || (e.a == o.b && e.b == o.a)
}

// edgeSet is an insertion-ordered set of undirected edges, deduplicating
// on undirected equality — the Go analogue of original_source/main.cpp's
// `edges` container.
type edgeSet struct {
	list []edge
}

func (s *edgeSet) add(e edge) {
	for _, existing := range s.list {
		if existing.equals(e) {
			return
		}
	}
	s.list = append(s.list, e)
}

// createEdge samples a destination uniformly from [0, n) other than a, by
// rejection sampling (spec.md §4.5).
func createEdge(rng *rand.Rand, a, n int) edge {
	b := a
	for b == a {
		b = rng.Intn(n)
	}
	return edge{a: a, b: b}
}
