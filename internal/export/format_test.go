package export

import (
	"math"
	"strconv"
	"testing"

	"github.com/DreamCats/meshedges/internal/mesh"
)

func TestFormatFloat_Shortest(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{0.10000000149011612, "0.10000000149011612"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{1234567890123456, "1234567890123456.0"},
		{1e16, "1e+16"},
		{2.5e20, "2.5e+20"},
		{1e100, "1e+100"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatFloat(tt.in, -1); got != tt.want {
				t.Errorf("FormatFloat(%v, -1) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFloat_RoundTrip(t *testing.T) {
	values := []float64{0.1, 1.0 / 3, -2.718281828459045, 123.456, 1e-300, 6.02214076e23, math.MaxFloat64, math.SmallestNonzeroFloat64}
	for _, v := range values {
		s := FormatFloat(v, -1)
		got, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("ParseFloat(%q) error = %v", s, err)
		}
		if got != v {
			t.Errorf("round trip of %v via %q = %v", v, s, got)
		}
	}
}

func TestFormatFloat_Fixed(t *testing.T) {
	tests := []struct {
		in        float64
		precision int
		want      string
	}{
		{1, 0, "1"},
		{1, 3, "1.000"},
		{1.23456, 2, "1.23"},
		{-0.5, 1, "-0.5"},
		{1e-7, 4, "0.0000"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in, tt.precision); got != tt.want {
			t.Errorf("FormatFloat(%v, %d) = %q, want %q", tt.in, tt.precision, got, tt.want)
		}
	}
}

func TestFormatRow(t *testing.T) {
	a := mesh.Vertex{X: 0, Y: 0, Z: 0}
	b := mesh.Vertex{X: 1, Y: 2, Z: 3}
	if got, want := FormatRow(a, b, -1), "0.0,0.0,0.0,1.0,2.0,3.0"; got != want {
		t.Errorf("FormatRow() = %q, want %q", got, want)
	}
}
