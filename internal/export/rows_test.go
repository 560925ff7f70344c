package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/google/go-cmp/cmp"
)

func TestParseRow(t *testing.T) {
	row, err := ParseRow("0.0,0.0,0.0,1.0,2.0,3.0\n")
	if err != nil {
		t.Fatalf("ParseRow() error = %v", err)
	}
	want := Row{A: mesh.Vertex{}, B: mesh.Vertex{X: 1, Y: 2, Z: 3}}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("ParseRow() mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"1,2,3", "1,2,3,4,5,6,7", "1,2,x,4,5,6"} {
		if _, err := ParseRow(bad); err == nil {
			t.Errorf("ParseRow(%q) error = nil", bad)
		}
	}
}

func TestReadRows_RoundTrip(t *testing.T) {
	m := mesh.New("tri")
	m.AddVertex(0.1, -0.2, 0.30000000000000004)
	m.AddVertex(1e-9, 12345.678, -0.0)
	m.AddVertex(3.5, 2.25, 1e20)
	m.AddEdge(0, 1)
	m.AddEdge(1, 2)
	m.AddEdge(2, 0)

	data, _, err := NewExporter().Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	rows, err := ReadRows(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != len(m.Edges) {
		t.Fatalf("got %d rows, want %d", len(rows), len(m.Edges))
	}
	for i, row := range rows {
		a, b, _ := m.Endpoints(i)
		if diff := cmp.Diff(Row{A: a, B: b}, row); diff != "" {
			t.Errorf("row %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestReadRows_FieldCount(t *testing.T) {
	if _, err := ReadRows(strings.NewReader("1,2,3,4,5,6\n1,2,3\n")); err == nil {
		t.Error("ReadRows() error = nil, want field count error")
	}
}

func TestExporter_Verify(t *testing.T) {
	m := pathMesh()

	tests := []struct {
		name     string
		exporter *Exporter
		content  string
		wantErr  bool
	}{
		{
			name:     "exact match",
			exporter: NewExporter(),
			content:  "0.0,0.0,0.0,1.0,0.0,0.0\n1.0,0.0,0.0,1.0,1.0,0.5\n",
		},
		{
			name:     "fixed precision",
			exporter: NewExporter(WithPrecision(2)),
			content:  "0.00,0.00,0.00,1.00,0.00,0.00\n1.00,0.00,0.00,1.00,1.00,0.50\n",
		},
		{
			name:     "swapped endpoints",
			exporter: NewExporter(),
			content:  "1.0,0.0,0.0,0.0,0.0,0.0\n1.0,0.0,0.0,1.0,1.0,0.5\n",
			wantErr:  true,
		},
		{
			name:     "missing row",
			exporter: NewExporter(),
			content:  "0.0,0.0,0.0,1.0,0.0,0.0\n",
			wantErr:  true,
		},
		{
			name:     "extra row",
			exporter: NewExporter(),
			content:  "0.0,0.0,0.0,1.0,0.0,0.0\n1.0,0.0,0.0,1.0,1.0,0.5\n0.0,0.0,0.0,0.0,0.0,0.0\n",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.exporter.Verify(m, strings.NewReader(tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var mismatch *MismatchError
				if !errors.As(err, &mismatch) {
					t.Errorf("Verify() error = %T, want *MismatchError", err)
				}
			}
		})
	}
}

func TestExporter_Verify_SkipPolicy(t *testing.T) {
	m := pathMesh()
	m.Edges = append(m.Edges, mesh.Edge{Vertices: []int{0, 1, 2}})
	e := NewExporter(WithPolicy(PolicySkip))

	data, _, err := e.Encode(m)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := e.Verify(m, bytes.NewReader(data)); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}
