package solar

import (
	"errors"
	"math"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/chrissnell/wxastro/pkg/site"
)

var denver = site.Site{Latitude: 39.7392, Longitude: -104.9903, ElevationFt: 5280, TZOffsetHours: -7}

func TestComputeDenverEquinox(t *testing.T) {
	local := time.Date(2024, time.March, 20, 12, 30, 0, 0, time.UTC)
	p, err := Compute(local, denver)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	checks := []struct {
		name     string
		got      float64
		expected float64
		tol      float64
	}{
		{"julian day", p.JulianDay, 2460390.3125, 1e-6},
		{"declination", p.DeclinationDeg, 0.2705, 1e-3},
		{"right ascension", p.RightAscensionHr, 0.04160, 1e-4},
		{"equation of time", p.EquationOfTimeMin, -7.1978, 1e-3},
		{"zenith", p.SolarZenithDeg, 39.8114, 1e-3},
		{"elevation", p.SolarElevationDeg, 50.1886, 1e-3},
		{"hour angle", p.HourAngleDeg, 5.7103, 1e-3},
		{"azimuth", p.AzimuthDeg, 188.94, 0.01},
		{"solar noon", p.SolarNoon, 0.504972, 1e-5},
		{"sunrise", p.Sunrise, 0.251337, 1e-5},
		{"sunset", p.Sunset, 0.758606, 1e-5},
		{"sunlight", p.SunlightMin, 730.466, 1e-2},
		{"radius vector", p.RadiusVectorAU, 0.996075, 1e-5},
		{"clear sky", p.ClearSkyWm2, 731.376, 1e-2},
	}

	for _, c := range checks {
		if !scalar.EqualWithinAbs(c.got, c.expected, c.tol) {
			t.Errorf("%s = %.6f, expected %.6f (±%g)", c.name, c.got, c.expected, c.tol)
		}
	}

	if !p.SunUp() {
		t.Error("SunUp() = false at 12:30 local, expected true")
	}

	// Ineichen-Perez should land in the same ballpark as the EPA fit.
	if p.ClearSkyIneichenWm2 < 600 || p.ClearSkyIneichenWm2 > 950 {
		t.Errorf("ClearSkyIneichenWm2 = %.1f, expected between 600 and 950", p.ClearSkyIneichenWm2)
	}
}

func TestComputeIgnoresAttachedLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	a, err := Compute(time.Date(2024, 3, 20, 12, 30, 0, 0, time.UTC), denver)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compute(time.Date(2024, 3, 20, 12, 30, 0, 0, ny), denver)
	if err != nil {
		t.Fatal(err)
	}
	if a.JulianDay != b.JulianDay {
		t.Errorf("JulianDay differs by attached location: %f vs %f", a.JulianDay, b.JulianDay)
	}
}

func TestComputePolar(t *testing.T) {
	arctic := site.Site{Latitude: 80, Longitude: 0}

	tests := []struct {
		name        string
		date        time.Time
		sunlight    float64
		expectSunUp bool
	}{
		{"midnight sun", time.Date(2024, time.June, 21, 12, 0, 0, 0, time.UTC), 1440, true},
		{"polar night", time.Date(2024, time.December, 21, 12, 0, 0, 0, time.UTC), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compute(tt.date, arctic)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if p.SunlightMin != tt.sunlight {
				t.Errorf("SunlightMin = %f, expected %f", p.SunlightMin, tt.sunlight)
			}
			if p.SunUp() != tt.expectSunUp {
				t.Errorf("SunUp() = %v, expected %v", p.SunUp(), tt.expectSunUp)
			}
			if !tt.expectSunUp && p.ClearSkyWm2 != 0 {
				t.Errorf("ClearSkyWm2 = %f with the Sun down, expected 0", p.ClearSkyWm2)
			}
		})
	}
}

func TestComputeInvalidSite(t *testing.T) {
	_, err := Compute(time.Now(), site.Site{Latitude: 123})
	if !errors.Is(err, ErrInvalidSite) {
		t.Errorf("Compute() error = %v, expected ErrInvalidSite", err)
	}
}

func TestPositionCheck(t *testing.T) {
	p := Position{DeclinationDeg: math.NaN()}
	if err := p.check(); !errors.Is(err, ErrNumeric) {
		t.Errorf("check() = %v, expected ErrNumeric", err)
	}
	if err := (Position{}).check(); err != nil {
		t.Errorf("check() on zero position = %v, expected nil", err)
	}
}

func TestRangesOverYear(t *testing.T) {
	for doy := 1; doy <= 365; doy += 7 {
		for hour := 0; hour < 24; hour += 3 {
			local := time.Date(2025, time.January, 1, hour, 0, 0, 0, time.UTC).AddDate(0, 0, doy-1)
			p, err := Compute(local, denver)
			if err != nil {
				t.Fatalf("day %d hour %d: %v", doy, hour, err)
			}
			if p.AzimuthDeg < 0 || p.AzimuthDeg >= 360 {
				t.Errorf("day %d hour %d: azimuth %f out of [0,360)", doy, hour, p.AzimuthDeg)
			}
			if p.SolarElevationDeg < -90 || p.SolarElevationDeg > 90 {
				t.Errorf("day %d hour %d: elevation %f out of [-90,90]", doy, hour, p.SolarElevationDeg)
			}
			if math.Abs(p.DeclinationDeg) > 23.5 {
				t.Errorf("day %d: declination %f exceeds obliquity", doy, p.DeclinationDeg)
			}
			if math.Abs(p.EquationOfTimeMin) > 17 {
				t.Errorf("day %d: equation of time %f out of range", doy, p.EquationOfTimeMin)
			}
		}
	}
}

func TestClockTime(t *testing.T) {
	if got := ClockTime(0.5); got != 12*time.Hour {
		t.Errorf("ClockTime(0.5) = %v, expected 12h", got)
	}
}
