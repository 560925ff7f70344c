package meshio

import (
	"io"

	"github.com/DreamCats/meshedges/internal/mesh"
)

// Decoder reads a mesh from a stream in one file format
type Decoder interface {
	Decode(r io.Reader) (*mesh.Mesh, error)
	Format() string
}
