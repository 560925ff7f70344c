package mesh

import (
	"errors"
	"fmt"
	"math"
)

// Vertex is a point in 3D space, identified by its position in Mesh.Vertices.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Edge references vertices by their index in Mesh.Vertices.
// A well-formed edge has exactly two indices: endpoint A then endpoint B.
type Edge struct {
	Vertices []int
}

// Mesh is an ordered vertex collection plus an ordered edge collection
type Mesh struct {
	Name     string
	Vertices []Vertex
	Edges    []Edge
}

var (
	// ErrNoMesh is returned when an operation is handed a nil mesh
	ErrNoMesh = errors.New("no mesh")
	// ErrNoVertices is returned when a mesh has edges but no vertex collection
	ErrNoVertices = errors.New("mesh has edges but no vertex collection")
)

// MalformedEdgeError reports an edge that does not reference exactly two vertices
type MalformedEdgeError struct {
	Edge  int
	Count int
}

func (e *MalformedEdgeError) Error() string {
	return fmt.Sprintf("edge %d references %d vertices, want 2", e.Edge, e.Count)
}

// VertexRangeError reports an edge endpoint outside the vertex collection
type VertexRangeError struct {
	Edge   int
	Vertex int
	Count  int
}

func (e *VertexRangeError) Error() string {
	return fmt.Sprintf("edge %d references vertex %d, mesh has %d vertices", e.Edge, e.Vertex, e.Count)
}

// New creates an empty mesh
func New(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]Vertex, 0),
		Edges:    make([]Edge, 0),
	}
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(x, y, z float64) int {
	m.Vertices = append(m.Vertices, Vertex{X: x, Y: y, Z: z})
	return len(m.Vertices) - 1
}

// AddEdge appends an edge from a to b
func (m *Mesh) AddEdge(a, b int) {
	m.Edges = append(m.Edges, Edge{Vertices: []int{a, b}})
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// EdgeCount returns the number of edges in the mesh
func (m *Mesh) EdgeCount() int {
	return len(m.Edges)
}

// Endpoints resolves edge i to its two vertex records, A first.
func (m *Mesh) Endpoints(i int) (Vertex, Vertex, error) {
	edge := m.Edges[i]
	if len(edge.Vertices) != 2 {
		return Vertex{}, Vertex{}, &MalformedEdgeError{Edge: i, Count: len(edge.Vertices)}
	}
	for _, idx := range edge.Vertices {
		if idx < 0 || idx >= len(m.Vertices) {
			return Vertex{}, Vertex{}, &VertexRangeError{Edge: i, Vertex: idx, Count: len(m.Vertices)}
		}
	}
	return m.Vertices[edge.Vertices[0]], m.Vertices[edge.Vertices[1]], nil
}

// Validate checks that the mesh is present and every edge resolves.
// It returns the first failure found in edge order.
func (m *Mesh) Validate() error {
	if m == nil {
		return ErrNoMesh
	}
	if m.Vertices == nil && len(m.Edges) > 0 {
		return ErrNoVertices
	}
	for i := range m.Edges {
		if _, _, err := m.Endpoints(i); err != nil {
			return err
		}
	}
	return nil
}

// Bounds returns the minimum and maximum corners of the vertex collection.
// ok is false for a mesh without vertices.
func (m *Mesh) Bounds() (lo, hi Vertex, ok bool) {
	if len(m.Vertices) == 0 {
		return Vertex{}, Vertex{}, false
	}
	lo = Vertex{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi = Vertex{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, v := range m.Vertices {
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		lo.Z = math.Min(lo.Z, v.Z)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
		hi.Z = math.Max(hi.Z, v.Z)
	}
	return lo, hi, true
}
