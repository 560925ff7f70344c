package export

import (
	"math"
	"strconv"
	"strings"

	"github.com/DreamCats/meshedges/internal/mesh"
)

// FormatFloat renders a coordinate for the CSV output.
//
// With precision < 0 it produces the shortest decimal that parses back to v,
// keeping a trailing ".0" on integral values and switching to exponent form
// outside 1e-4 <= |v| < 1e16, e.g.
//
//	0      -> 0.0
//	1.5    -> 1.5
//	0.0001 -> 0.0001
//	1e-05  -> 1e-05
//	1e16   -> 1e+16
//
// With precision >= 0 it produces fixed-point output with that many digits.
func FormatFloat(v float64, precision int) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if precision >= 0 {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.IndexByte(sci, 'e')
	exp, err := strconv.Atoi(sci[i+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatRow joins the coordinates of both endpoints as Ax,Ay,Az,Bx,By,Bz
func FormatRow(a, b mesh.Vertex, precision int) string {
	fields := [6]string{
		FormatFloat(a.X, precision),
		FormatFloat(a.Y, precision),
		FormatFloat(a.Z, precision),
		FormatFloat(b.X, precision),
		FormatFloat(b.Y, precision),
		FormatFloat(b.Z, precision),
	}
	return strings.Join(fields[:], ",")
}
