package meshio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/DreamCats/meshedges/internal/mesh"
)

// OBJDecoder reads the geometry part of Wavefront OBJ files.
// Vertices come from "v" statements, edges from "l" polylines and the
// boundaries of "f" faces, deduplicated in first-seen order.
type OBJDecoder struct{}

// NewOBJDecoder creates a new OBJ decoder
func NewOBJDecoder() *OBJDecoder {
	return &OBJDecoder{}
}

// Format returns the decoder format identifier
func (d *OBJDecoder) Format() string {
	return "obj"
}

// Decode parses an OBJ stream
func (d *OBJDecoder) Decode(r io.Reader) (*mesh.Mesh, error) {
	m := mesh.New("")
	edges := mesh.NewEdgeSet()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates, got %d", lineNo, len(fields)-1)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: bad coordinate %q: %w", lineNo, fields[i+1], err)
				}
				c[i] = v
			}
			m.AddVertex(c[0], c[1], c[2])
		case "l", "f":
			indices, err := resolveIndices(fields[1:], len(m.Vertices))
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			edges.AddPath(indices, fields[0] == "f")
		case "o":
			if m.Name == "" && len(fields) > 1 {
				m.Name = strings.Join(fields[1:], " ")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read obj: %w", err)
	}

	m.Edges = edges.Edges()
	return m, nil
}

// resolveIndices converts 1-based (or negative, relative) OBJ references to
// 0-based vertex indices. Only the vertex part of "v/vt/vn" is used.
func resolveIndices(refs []string, vertexCount int) ([]int, error) {
	out := make([]int, 0, len(refs))
	for _, ref := range refs {
		if i := strings.IndexByte(ref, '/'); i >= 0 {
			ref = ref[:i]
		}
		n, err := strconv.Atoi(ref)
		if err != nil {
			return nil, fmt.Errorf("bad vertex reference %q", ref)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n = vertexCount + n
		default:
			return nil, fmt.Errorf("vertex reference 0 is not valid")
		}
		if n < 0 || n >= vertexCount {
			return nil, fmt.Errorf("vertex reference %s out of range (%d vertices)", ref, vertexCount)
		}
		out = append(out, n)
	}
	return out, nil
}
