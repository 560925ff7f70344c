package meshio

import (
	"bytes"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DreamCats/meshedges/internal/store"
)

func TestRegistry_DetectFormat(t *testing.T) {
	r := NewRegistry()
	tests := []struct {
		path     string
		override string
		want     string
		wantErr  bool
	}{
		{"cube.obj", "", "obj", false},
		{"CUBE.OBJ", "", "obj", false},
		{"mesh.yml", "", "yaml", false},
		{"mesh.json", "auto", "json", false},
		{"scene.db", "", FormatSQLite, false},
		{"mesh.txt", "yaml", "yaml", false},
		{"mesh.txt", "", "", true},
		{"mesh.obj", "fbx", "", true},
	}
	for _, tt := range tests {
		got, err := r.DetectFormat(tt.path, tt.override)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q, %q) error = %v, wantErr %v", tt.path, tt.override, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("DetectFormat(%q, %q) error = %v, want ErrUnknownFormat", tt.path, tt.override, err)
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q, %q) = %q, want %q", tt.path, tt.override, got, tt.want)
		}
	}
}

func TestRegistry_Load_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := NewRegistry().Load(path, "", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "tri" {
		t.Errorf("Name = %q, want file stem", m.Name)
	}
	if len(m.Edges) != 3 {
		t.Errorf("got %d edges, want 3", len(m.Edges))
	}
}

func TestRegistry_Load_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.db")
	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	for _, q := range []string{
		"INSERT INTO meshes (id, name) VALUES (1, 'edge')",
		"INSERT INTO vertices (mesh_id, idx, x, y, z) VALUES (1, 0, 0, 0, 0)",
		"INSERT INTO vertices (mesh_id, idx, x, y, z) VALUES (1, 1, 1, 2, 3)",
		"INSERT INTO edges (mesh_id, idx, a, b) VALUES (1, 0, 0, 1)",
	} {
		if _, err := db.SQLDB().Exec(q); err != nil {
			t.Fatalf("exec %q: %v", q, err)
		}
	}
	db.Close()

	m, err := NewRegistry().Load(path, "", "edge")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "edge" || len(m.Vertices) != 2 || len(m.Edges) != 1 {
		t.Errorf("Load() = %+v", m)
	}
}

func TestRegistry_Load_Missing(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"missing.obj", "missing.db"} {
		if _, err := NewRegistry().Load(filepath.Join(dir, name), "", ""); err == nil {
			t.Errorf("Load(%s) error = nil", name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "missing.db")); !os.IsNotExist(err) {
		t.Error("Load created a database file for a missing path")
	}
}

func TestRegistry_Load_SQLiteIsReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exported.sqlite")
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	for _, q := range []string{
		"CREATE TABLE meshes (id INTEGER PRIMARY KEY, name TEXT)",
		"CREATE TABLE vertices (mesh_id INTEGER, idx INTEGER, x REAL, y REAL, z REAL)",
		"CREATE TABLE edges (mesh_id INTEGER, idx INTEGER, a INTEGER, b INTEGER)",
		"INSERT INTO meshes VALUES (1, 'edge')",
		"INSERT INTO vertices VALUES (1, 0, 0, 0, 0), (1, 1, 1, 2, 3)",
		"INSERT INTO edges VALUES (1, 0, 0, 1)",
	} {
		if _, err := sqlDB.Exec(q); err != nil {
			t.Fatalf("exec %q: %v", q, err)
		}
	}
	sqlDB.Close()

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewRegistry().Load(path, "", "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(m.Edges) != 1 {
		t.Errorf("got %d edges, want 1", len(m.Edges))
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("input database changed: %d bytes before, %d after", len(before), len(after))
	}
}
