package scicalc_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func TestFormatResult(t *testing.T) {
	cases := []struct {
		x float64
		s string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-15, "-15"},
		{120, "120"},
		{0.1 + 0.2, "0.30000000000000004"},
		{1.5, "1.5"},
		{1e20, "100000000000000000000"},
		{1e21, "1e+21"},
		{-1.5e300, "-1.5e+300"},
		{1e-6, "0.000001"},
		{1e-7, "1e-7"},
		{1.25e-10, "1.25e-10"},
		{math.Pi, "3.141592653589793"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, c := range cases {
		if s := scicalc.FormatResult(c.x); s != c.s {
			t.Errorf("%g: want %q, got %q", c.x, c.s, s)
		}
	}
}
