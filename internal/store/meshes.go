package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/DreamCats/meshedges/internal/mesh"
)

var (
	// ErrMeshNotFound is returned when the requested mesh is not in the database
	ErrMeshNotFound = errors.New("mesh not found")
	// ErrAmbiguousMesh is returned when no name is given and the database holds several meshes
	ErrAmbiguousMesh = errors.New("database holds several meshes, pick one by name")
)

// MeshInfo describes a stored mesh
type MeshInfo struct {
	ID       int64
	Name     string
	Vertices int
	Edges    int
}

// ListMeshes returns all stored meshes ordered by name
func (db *DB) ListMeshes() ([]MeshInfo, error) {
	rows, err := db.sqlDB.Query(`
		SELECT m.id, m.name,
			(SELECT COUNT(*) FROM vertices v WHERE v.mesh_id = m.id),
			(SELECT COUNT(*) FROM edges e WHERE e.mesh_id = m.id)
		FROM meshes m
		ORDER BY m.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meshes: %w", err)
	}
	defer rows.Close()

	var out []MeshInfo
	for rows.Next() {
		var info MeshInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Vertices, &info.Edges); err != nil {
			return nil, fmt.Errorf("failed to scan mesh: %w", err)
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// LoadMesh reads a mesh by name. An empty name selects the only stored mesh.
func (db *DB) LoadMesh(name string) (*mesh.Mesh, error) {
	info, err := db.resolve(name)
	if err != nil {
		return nil, err
	}

	m := mesh.New(info.Name)
	if err := db.loadVertices(info.ID, m); err != nil {
		return nil, err
	}
	if err := db.loadEdges(info.ID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (db *DB) resolve(name string) (MeshInfo, error) {
	if name != "" {
		var info MeshInfo
		err := db.sqlDB.QueryRow("SELECT id, name FROM meshes WHERE name = ?", name).Scan(&info.ID, &info.Name)
		if err == sql.ErrNoRows {
			return MeshInfo{}, fmt.Errorf("%w: %s", ErrMeshNotFound, name)
		}
		if err != nil {
			return MeshInfo{}, fmt.Errorf("failed to look up mesh: %w", err)
		}
		return info, nil
	}

	meshes, err := db.ListMeshes()
	if err != nil {
		return MeshInfo{}, err
	}
	switch len(meshes) {
	case 0:
		return MeshInfo{}, fmt.Errorf("%w: database is empty", ErrMeshNotFound)
	case 1:
		return meshes[0], nil
	default:
		return MeshInfo{}, ErrAmbiguousMesh
	}
}

func (db *DB) loadVertices(meshID int64, m *mesh.Mesh) error {
	rows, err := db.sqlDB.Query("SELECT idx, x, y, z FROM vertices WHERE mesh_id = ? ORDER BY idx", meshID)
	if err != nil {
		return fmt.Errorf("failed to query vertices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var idx int
		var x, y, z float64
		if err := rows.Scan(&idx, &x, &y, &z); err != nil {
			return fmt.Errorf("failed to scan vertex: %w", err)
		}
		if idx != len(m.Vertices) {
			return fmt.Errorf("mesh %q: vertex indices must be dense from 0, found %d at position %d", m.Name, idx, len(m.Vertices))
		}
		m.AddVertex(x, y, z)
	}
	return rows.Err()
}

func (db *DB) loadEdges(meshID int64, m *mesh.Mesh) error {
	rows, err := db.sqlDB.Query("SELECT a, b FROM edges WHERE mesh_id = ? ORDER BY idx", meshID)
	if err != nil {
		return fmt.Errorf("failed to query edges: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a, b sql.NullInt64
		if err := rows.Scan(&a, &b); err != nil {
			return fmt.Errorf("failed to scan edge: %w", err)
		}
		edge := mesh.Edge{Vertices: make([]int, 0, 2)}
		for _, end := range []sql.NullInt64{a, b} {
			if end.Valid {
				edge.Vertices = append(edge.Vertices, int(end.Int64))
			}
		}
		m.Edges = append(m.Edges, edge)
	}
	return rows.Err()
}
