package mesh

type edgeKey struct {
	lo, hi int
}

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// EdgeSet collects undirected edges in first-seen order.
// Adding {b,a} after {a,b} is a no-op, so the first orientation wins.
type EdgeSet struct {
	seen  map[edgeKey]struct{}
	edges []Edge
}

// NewEdgeSet creates an empty edge set
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{seen: make(map[edgeKey]struct{})}
}

// Add records the edge a-b and reports whether it was new
func (s *EdgeSet) Add(a, b int) bool {
	k := keyOf(a, b)
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.edges = append(s.edges, Edge{Vertices: []int{a, b}})
	return true
}

// AddPath records consecutive edges along the given vertex indices.
// When closed is true the last vertex is joined back to the first.
func (s *EdgeSet) AddPath(indices []int, closed bool) {
	for i := 0; i+1 < len(indices); i++ {
		s.Add(indices[i], indices[i+1])
	}
	if closed && len(indices) > 2 {
		s.Add(indices[len(indices)-1], indices[0])
	}
}

// Len returns the number of distinct edges
func (s *EdgeSet) Len() int {
	return len(s.edges)
}

// Edges returns the collected edges in insertion order
func (s *EdgeSet) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}
