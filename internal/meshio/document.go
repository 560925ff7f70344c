package meshio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/DreamCats/meshedges/internal/mesh"
)

// DocumentDecoder reads meshes written as YAML or JSON documents:
//
//	name: quad
//	vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0]]
//	edges: [[0, 1], [1, 2]]
//
// Edges are kept exactly as written so the exporter decides what to do with
// edges that do not have two endpoints.
type DocumentDecoder struct {
	format string
}

// NewYAMLDecoder creates a document decoder for YAML input
func NewYAMLDecoder() *DocumentDecoder {
	return &DocumentDecoder{format: "yaml"}
}

// NewJSONDecoder creates a document decoder for JSON input
func NewJSONDecoder() *DocumentDecoder {
	return &DocumentDecoder{format: "json"}
}

// Format returns the decoder format identifier
func (d *DocumentDecoder) Format() string {
	return d.format
}

type document struct {
	Name     string      `yaml:"name" json:"name"`
	Vertices [][]float64 `yaml:"vertices" json:"vertices"`
	Edges    [][]int     `yaml:"edges" json:"edges"`
}

// Decode parses a single mesh document
func (d *DocumentDecoder) Decode(r io.Reader) (*mesh.Mesh, error) {
	var doc document
	var err error
	if d.format == "json" {
		err = json.NewDecoder(r).Decode(&doc)
	} else {
		err = yaml.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return mesh.New(""), nil
		}
		return nil, fmt.Errorf("failed to parse %s mesh: %w", d.format, err)
	}

	m := mesh.New(doc.Name)
	for i, v := range doc.Vertices {
		if len(v) != 3 {
			return nil, fmt.Errorf("vertex %d has %d coordinates, want 3", i, len(v))
		}
		m.AddVertex(v[0], v[1], v[2])
	}
	for _, e := range doc.Edges {
		m.Edges = append(m.Edges, mesh.Edge{Vertices: e})
	}
	return m, nil
}
