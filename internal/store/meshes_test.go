package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/google/go-cmp/cmp"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "meshes.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func exec(t *testing.T, db *DB, query string, args ...any) {
	t.Helper()
	if _, err := db.SQLDB().Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func seedPath(t *testing.T, db *DB, name string) {
	t.Helper()
	res, err := db.SQLDB().Exec("INSERT INTO meshes (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("insert mesh: %v", err)
	}
	id, _ := res.LastInsertId()
	// Inserted out of order: loading must sort by idx.
	exec(t, db, "INSERT INTO vertices (mesh_id, idx, x, y, z) VALUES (?, 2, 1, 1, 0.5)", id)
	exec(t, db, "INSERT INTO vertices (mesh_id, idx, x, y, z) VALUES (?, 0, 0, 0, 0)", id)
	exec(t, db, "INSERT INTO vertices (mesh_id, idx, x, y, z) VALUES (?, 1, 1, 0, 0)", id)
	exec(t, db, "INSERT INTO edges (mesh_id, idx, a, b) VALUES (?, 1, 1, 2)", id)
	exec(t, db, "INSERT INTO edges (mesh_id, idx, a, b) VALUES (?, 0, 0, 1)", id)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meshes.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	seedPath(t, db, "path")
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()
	version, err := db.getSchemaVersion()
	if err != nil || version != CurrentSchemaVersion {
		t.Errorf("schema version = %d, %v; want %d", version, err, CurrentSchemaVersion)
	}
	if _, err := db.LoadMesh("path"); err != nil {
		t.Errorf("LoadMesh() after reopen error = %v", err)
	}
}

func TestDB_LoadMesh(t *testing.T) {
	db := openTestDB(t)
	seedPath(t, db, "path")

	got, err := db.LoadMesh("")
	if err != nil {
		t.Fatalf("LoadMesh() error = %v", err)
	}
	want := &mesh.Mesh{
		Name:     "path",
		Vertices: []mesh.Vertex{{}, {X: 1}, {X: 1, Y: 1, Z: 0.5}},
		Edges:    []mesh.Edge{{Vertices: []int{0, 1}}, {Vertices: []int{1, 2}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadMesh() mismatch (-want +got):\n%s", diff)
	}
}

func TestDB_LoadMesh_NullEndpoint(t *testing.T) {
	db := openTestDB(t)
	seedPath(t, db, "path")
	exec(t, db, "INSERT INTO edges (mesh_id, idx, a, b) VALUES (1, 2, 2, NULL)")

	m, err := db.LoadMesh("path")
	if err != nil {
		t.Fatalf("LoadMesh() error = %v", err)
	}
	var malformed *mesh.MalformedEdgeError
	if err := m.Validate(); !errors.As(err, &malformed) || malformed.Edge != 2 {
		t.Errorf("Validate() error = %v, want malformed edge 2", err)
	}
}

func TestDB_LoadMesh_Errors(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.LoadMesh(""); !errors.Is(err, ErrMeshNotFound) {
		t.Errorf("empty database error = %v, want ErrMeshNotFound", err)
	}

	seedPath(t, db, "a")
	seedPath(t, db, "b")
	if _, err := db.LoadMesh(""); !errors.Is(err, ErrAmbiguousMesh) {
		t.Errorf("two meshes error = %v, want ErrAmbiguousMesh", err)
	}
	if _, err := db.LoadMesh("missing"); !errors.Is(err, ErrMeshNotFound) {
		t.Errorf("missing mesh error = %v, want ErrMeshNotFound", err)
	}

	exec(t, db, "INSERT INTO meshes (name) VALUES ('sparse')")
	exec(t, db, "INSERT INTO vertices (mesh_id, idx, x, y, z) VALUES (3, 1, 0, 0, 0)")
	if _, err := db.LoadMesh("sparse"); err == nil {
		t.Error("sparse vertex indices error = nil")
	}
}

func TestDB_ListMeshes(t *testing.T) {
	db := openTestDB(t)
	seedPath(t, db, "zeta")
	seedPath(t, db, "alpha")

	got, err := db.ListMeshes()
	if err != nil {
		t.Fatalf("ListMeshes() error = %v", err)
	}
	want := []MeshInfo{
		{ID: 2, Name: "alpha", Vertices: 3, Edges: 2},
		{ID: 1, Name: "zeta", Vertices: 3, Edges: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListMeshes() mismatch (-want +got):\n%s", diff)
	}
}
