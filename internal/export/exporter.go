package export

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/DreamCats/meshedges/internal/mesh"
	"github.com/DreamCats/meshedges/internal/progress"
)

// Policy decides what happens to an edge that does not have exactly two endpoints
type Policy string

const (
	// PolicyReject aborts the whole export on the first malformed edge
	PolicyReject Policy = "reject"
	// PolicySkip leaves malformed edges out of the output
	PolicySkip Policy = "skip"
)

// ParsePolicy converts a config or flag value into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyReject, "":
		return PolicyReject, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown malformed edge policy %q (want reject or skip)", s)
	}
}

// Result summarizes one export
type Result struct {
	Mesh    string
	Edges   int
	Rows    int
	Skipped int
	Bytes   int
}

// Exporter turns a mesh's edge list into CSV rows
type Exporter struct {
	precision int
	policy    Policy
	progress  progress.Reporter
}

// Option configures the exporter
type Option func(*Exporter)

// WithPrecision sets fixed-point digits; a negative value selects shortest round-trip output
func WithPrecision(precision int) Option {
	return func(e *Exporter) {
		e.precision = precision
	}
}

// WithPolicy sets the malformed edge policy
func WithPolicy(policy Policy) Option {
	return func(e *Exporter) {
		e.policy = policy
	}
}

// WithProgress reports one increment per edge to r
func WithProgress(r progress.Reporter) Option {
	return func(e *Exporter) {
		e.progress = r
	}
}

// NewExporter creates an exporter with shortest formatting and PolicyReject
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		precision: -1,
		policy:    PolicyReject,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Precision returns the configured precision
func (e *Exporter) Precision() int {
	return e.precision
}

// Policy returns the configured malformed edge policy
func (e *Exporter) Policy() Policy {
	return e.policy
}

// Encode builds the full CSV text for m in edge order.
// Nothing is returned on error, so callers never see a partial buffer.
func (e *Exporter) Encode(m *mesh.Mesh) ([]byte, Result, error) {
	if m == nil {
		return nil, Result{}, mesh.ErrNoMesh
	}
	res := Result{Mesh: m.Name, Edges: len(m.Edges)}
	if m.Vertices == nil && len(m.Edges) > 0 {
		return nil, res, fmt.Errorf("export mesh %q: %w", m.Name, mesh.ErrNoVertices)
	}

	if e.progress != nil {
		e.progress.Start(len(m.Edges))
		defer e.progress.Finish()
	}

	var buf bytes.Buffer
	for i := range m.Edges {
		a, b, err := m.Endpoints(i)
		if err != nil {
			var malformed *mesh.MalformedEdgeError
			if e.policy == PolicySkip && errors.As(err, &malformed) {
				log.Printf("Skipping malformed edge: mesh=%s edge=%d vertices=%d", m.Name, malformed.Edge, malformed.Count)
				res.Skipped++
				if e.progress != nil {
					e.progress.Increment()
				}
				continue
			}
			return nil, res, fmt.Errorf("export mesh %q: %w", m.Name, err)
		}
		buf.WriteString(FormatRow(a, b, e.precision))
		buf.WriteByte('\n')
		res.Rows++
		if e.progress != nil {
			e.progress.Increment()
		}
	}

	res.Bytes = buf.Len()
	return buf.Bytes(), res, nil
}

// Export encodes m and writes the result to path in one operation
func (e *Exporter) Export(m *mesh.Mesh, path string) (Result, error) {
	data, res, err := e.Encode(m)
	if err != nil {
		return res, err
	}
	if err := WriteFile(path, data); err != nil {
		return res, err
	}
	return res, nil
}
