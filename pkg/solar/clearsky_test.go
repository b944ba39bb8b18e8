package solar

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestClearSkyEPA(t *testing.T) {
	tests := []struct {
		elevation float64
		expected  float64
	}{
		{-5, 0},
		{0, 0},
		{30, 415.448},
		{90, 1000.008},
	}

	for _, tt := range tests {
		got := ClearSkyEPA(tt.elevation)
		if !scalar.EqualWithinAbs(got, tt.expected, 1e-2) {
			t.Errorf("ClearSkyEPA(%.0f) = %.3f, expected %.3f", tt.elevation, got, tt.expected)
		}
	}
}

func TestClearSkyIneichenPerez(t *testing.T) {
	below := Position{SolarZenithDeg: 95}
	if got := ClearSkyIneichenPerez(below, 172, 0); got != 0 {
		t.Errorf("ClearSkyIneichenPerez with Sun down = %f, expected 0", got)
	}

	overhead := Position{SolarZenithDeg: 10}
	sea := ClearSkyIneichenPerez(overhead, 172, 0)
	high := ClearSkyIneichenPerez(overhead, 172, 3000)
	if high <= sea {
		t.Errorf("irradiance at 3000 m (%.1f) should exceed sea level (%.1f)", high, sea)
	}
	if sea < 800 || sea > 1200 {
		t.Errorf("sea-level irradiance = %.1f, expected between 800 and 1200", sea)
	}
}
