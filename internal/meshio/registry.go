package meshio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/DreamCats/meshedges/internal/store"
)

// FormatSQLite selects the SQLite mesh database source
const FormatSQLite = "sqlite"

// ErrUnknownFormat is returned when no source handles a file
var ErrUnknownFormat = errors.New("unknown mesh format")

// Registry maps format names and file extensions to mesh sources
type Registry struct {
	decoders   map[string]Decoder
	extensions map[string]string
}

// NewRegistry returns a registry with the built-in formats
func NewRegistry() *Registry {
	r := &Registry{
		decoders:   make(map[string]Decoder),
		extensions: make(map[string]string),
	}
	r.Register(NewOBJDecoder(), ".obj")
	r.Register(NewYAMLDecoder(), ".yaml", ".yml")
	r.Register(NewJSONDecoder(), ".json")
	r.extensions[".db"] = FormatSQLite
	r.extensions[".sqlite"] = FormatSQLite
	r.extensions[".sqlite3"] = FormatSQLite
	return r
}

// Register adds a decoder and the extensions it claims
func (r *Registry) Register(d Decoder, extensions ...string) {
	r.decoders[d.Format()] = d
	for _, ext := range extensions {
		r.extensions[strings.ToLower(ext)] = d.Format()
	}
}

// Formats lists the known format names
func (r *Registry) Formats() []string {
	formats := []string{FormatSQLite}
	for name := range r.decoders {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// Extensions lists the file extensions with a known format
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DetectFormat picks the format for path. A non-empty override wins.
func (r *Registry) DetectFormat(path, override string) (string, error) {
	if override != "" && override != "auto" {
		format := strings.ToLower(override)
		if _, ok := r.decoders[format]; !ok && format != FormatSQLite {
			return "", fmt.Errorf("%w: %s", ErrUnknownFormat, override)
		}
		return format, nil
	}
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := r.extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: cannot infer format from %q", ErrUnknownFormat, filepath.Base(path))
	}
	return format, nil
}

// Load reads the mesh stored at path. meshName selects a mesh inside a
// SQLite database and is ignored by single-mesh formats.
func (r *Registry) Load(path, format, meshName string) (*mesh.Mesh, error) {
	format, err := r.DetectFormat(path, format)
	if err != nil {
		return nil, err
	}

	if format == FormatSQLite {
		return loadSQLite(path, meshName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh: %w", err)
	}
	defer f.Close()

	m, err := r.decoders[format].Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return m, nil
}

func loadSQLite(path, meshName string) (*mesh.Mesh, error) {
	db, err := store.OpenReadOnly(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh database: %w", err)
	}
	defer db.Close()
	return db.LoadMesh(meshName)
}
