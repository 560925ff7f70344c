package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/DreamCats/meshedges/internal/mesh"
)

// Row is one decoded output line
type Row struct {
	A, B mesh.Vertex
}

// ParseRow decodes a single Ax,Ay,Az,Bx,By,Bz line
func ParseRow(line string) (Row, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(fields) != 6 {
		return Row{}, fmt.Errorf("row has %d fields, want 6", len(fields))
	}
	return parseFields(fields)
}

func parseFields(fields []string) (Row, error) {
	var c [6]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Row{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		c[i] = v
	}
	return Row{
		A: mesh.Vertex{X: c[0], Y: c[1], Z: c[2]},
		B: mesh.Vertex{X: c[3], Y: c[4], Z: c[5]},
	}, nil
}

// ReadRows decodes every row from r
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 6
	cr.ReuseRecord = true

	var rows []Row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rows: %w", err)
		}
		row, err := parseFields(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
}

// MismatchError reports an exported file that does not match its mesh
type MismatchError struct {
	Row    int
	Reason string
}

func (e *MismatchError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("export mismatch: %s", e.Reason)
	}
	return fmt.Sprintf("export mismatch at row %d: %s", e.Row, e.Reason)
}

// Verify checks rows read from r against the edges of m, using the
// exporter's precision and policy to decide what each row should hold.
func (e *Exporter) Verify(m *mesh.Mesh, r io.Reader) error {
	if m == nil {
		return mesh.ErrNoMesh
	}
	rows, err := ReadRows(r)
	if err != nil {
		return err
	}

	row := 0
	for i := range m.Edges {
		a, b, err := m.Endpoints(i)
		if err != nil {
			var malformed *mesh.MalformedEdgeError
			if e.policy == PolicySkip && errors.As(err, &malformed) {
				continue
			}
			return err
		}
		if row >= len(rows) {
			return &MismatchError{Row: -1, Reason: fmt.Sprintf("file has %d rows, mesh needs more", len(rows))}
		}
		want := Row{A: e.quantize(a), B: e.quantize(b)}
		if !sameRow(want, rows[row]) {
			return &MismatchError{
				Row:    row,
				Reason: fmt.Sprintf("edge %d: want %s, got %s", i, FormatRow(want.A, want.B, -1), FormatRow(rows[row].A, rows[row].B, -1)),
			}
		}
		row++
	}
	if row != len(rows) {
		return &MismatchError{Row: -1, Reason: fmt.Sprintf("file has %d rows, want %d", len(rows), row)}
	}
	return nil
}

// quantize applies the exporter's formatting so fixed precision output compares equal
func (e *Exporter) quantize(v mesh.Vertex) mesh.Vertex {
	if e.precision < 0 {
		return v
	}
	q := func(f float64) float64 {
		out, err := strconv.ParseFloat(FormatFloat(f, e.precision), 64)
		if err != nil {
			return f
		}
		return out
	}
	return mesh.Vertex{X: q(v.X), Y: q(v.Y), Z: q(v.Z)}
}

func sameRow(a, b Row) bool {
	return sameVertex(a.A, b.A) && sameVertex(a.B, b.B)
}

func sameVertex(a, b mesh.Vertex) bool {
	return sameFloat(a.X, b.X) && sameFloat(a.Y, b.Y) && sameFloat(a.Z, b.Z)
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
