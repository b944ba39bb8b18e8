package wxcalc

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/chrissnell/wxastro/pkg/solar"
)

func TestWindChill(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		wind     float64
		expected float64
	}{
		{"warm air returns temperature", 60, 20, 60},
		{"just above 50 returns temperature", 50.1, 30, 50.1},
		{"calm returns temperature", 10, 2.9, 10},
		{"boundary 50F 3mph uses formula", 50, 3, 49.677508},
		{"0F 20mph", 0, 20, -21.995223},
		{"30F 10mph", 30, 10, 21.248293},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindChill(tt.temp, tt.wind)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-5) {
				t.Errorf("WindChill(%.1f, %.1f) = %.6f, expected %.6f", tt.temp, tt.wind, got, tt.expected)
			}
		})
	}
}

func TestWindChillIdentityRegions(t *testing.T) {
	for temp := 50.5; temp < 120; temp += 3.7 {
		for wind := 0.0; wind < 60; wind += 4.3 {
			if got := WindChill(temp, wind); got != temp {
				t.Fatalf("WindChill(%.1f, %.1f) = %f, expected the temperature", temp, wind, got)
			}
		}
	}
	for temp := -40.0; temp < 120; temp += 3.7 {
		for _, wind := range []float64{0, 1, 2.5, 2.999} {
			if got := WindChill(temp, wind); got != temp {
				t.Fatalf("WindChill(%.1f, %.3f) = %f, expected the temperature", temp, wind, got)
			}
		}
	}
}

func TestHeatIndex(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		humidity float64
		expected float64
	}{
		{"simple formula 70F 50%", 70, 50, 69.05},
		{"T=80 uses regression without adjustment", 80, 50, 80.802905},
		{"T=80 low humidity is not adjusted", 80, 12, 78.198950},
		{"T=112 low humidity is not adjusted", 112, 10, 106.750976},
		{"low humidity adjustment", 90, 10, 85.278968},
		{"H=13 is not adjusted", 90, 13, 85.914926},
		{"high humidity adjustment", 85, 90, 101.780804},
		{"H=85 is not adjusted", 85, 85, 99.114032},
		{"T=87 high humidity is not adjusted", 87, 90, 109.183185},
		{"T=86 high humidity adjustment", 86, 90, 105.394365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeatIndex(tt.temp, tt.humidity)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-5) {
				t.Errorf("HeatIndex(%.0f, %.0f) = %.6f, expected %.6f", tt.temp, tt.humidity, got, tt.expected)
			}
		})
	}
}

func TestHeatIndexSimpleFormula(t *testing.T) {
	for temp := 40.0; temp < 80; temp += 1.5 {
		for h := 5.0; h <= 100; h += 5 {
			expected := 0.5 * (temp + 61.0 + (temp-68.0)*1.2 + h*0.094)
			if got := HeatIndex(temp, h); got != expected {
				t.Fatalf("HeatIndex(%.1f, %.0f) = %f, expected %f", temp, h, got, expected)
			}
		}
	}
}

func TestDewPoint(t *testing.T) {
	if got := DewPoint(80, 50); !scalar.EqualWithinAbs(got, 59.665956, 1e-5) {
		t.Errorf("DewPoint(80, 50) = %.6f, expected 59.665956", got)
	}

	// Saturated air: the dew point is the air temperature.
	for _, temp := range []float64{-10, 32, 60, 95} {
		if got := DewPoint(temp, 100); !scalar.EqualWithinAbs(got, temp, 1e-9) {
			t.Errorf("DewPoint(%.0f, 100) = %.9f, expected %.0f", temp, got, temp)
		}
	}

	if got := DewPoint(60, 0); !math.IsInf(got, 0) && !math.IsNaN(got) {
		t.Errorf("DewPoint(60, 0) = %f, expected NaN or Inf", got)
	}
}

func TestWetBulb(t *testing.T) {
	if got := WetBulb(80, 50); !scalar.EqualWithinAbs(got, 66.975899, 1e-5) {
		t.Errorf("WetBulb(80, 50) = %.6f, expected 66.975899", got)
	}

	// Stull's fit is within a few tenths of a degree of saturation at 100%.
	for _, temp := range []float64{40, 60, 80} {
		if got := WetBulb(temp, 100); math.Abs(got-temp) > 0.5 {
			t.Errorf("WetBulb(%.0f, 100) = %.3f, expected within 0.5 of %.0f", temp, got, temp)
		}
	}

	// The wet bulb sits between the dew point and the dry bulb.
	for _, h := range []float64{20, 40, 60, 80} {
		wb := WetBulb(75, h)
		dp := DewPoint(75, h)
		if wb > 75 || wb < dp {
			t.Errorf("WetBulb(75, %.0f) = %.2f, expected between dew point %.2f and 75", h, wb, dp)
		}
	}
}

func TestWindComponent(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		wind     float64
		expected int
	}{
		{"below 50F is unimplemented", 49.9, 40, 0},
		{"50F calm", 50, 0, WindMatrix[0][0]},
		{"temp edge 52.5 stays in band 0", 52.5, 10, WindMatrix[0][2]},
		{"just above 52.5 is band 1", 52.6, 10, WindMatrix[1][2]},
		{"wind edge 2.5 stays in band 0", 70, 2.5, WindMatrix[4][0]},
		{"wind just above 2.5 is band 1", 70, 2.51, WindMatrix[4][1]},
		{"wind edge 37.5 is band 7", 60, 37.5, WindMatrix[2][7]},
		{"very high wind is band 8", 60, 80, WindMatrix[2][8]},
		{"temp edge 127.5 is band 15", 127.5, 40, WindMatrix[15][8]},
		{"very high temp is band 16", 140, 40, WindMatrix[16][8]},
		{"NaN temp", math.NaN(), 5, 0},
		{"NaN wind", 120, math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WindComponent(tt.temp, tt.wind); got != tt.expected {
				t.Errorf("WindComponent(%.2f, %.2f) = %d, expected %d", tt.temp, tt.wind, got, tt.expected)
			}
		})
	}
}

func TestWindMatrixBandZero(t *testing.T) {
	for w := range WindMatrix[0] {
		wind := float64(w) * 5
		if got := WindComponent(52.5, wind); got != WindMatrix[0][w] {
			t.Errorf("WindComponent(52.5, %.0f) = %d, expected WindMatrix[0][%d] = %d", wind, got, w, WindMatrix[0][w])
		}
	}
}

func TestTHW(t *testing.T) {
	if got := THW(90, 10, 50); !scalar.EqualWithinAbs(got, 92.596941, 1e-5) {
		t.Errorf("THW(90, 10, 50) = %.6f, expected 92.596941", got)
	}
	// Below 50F only the heat index remains.
	if got, hi := THW(30, 25, 60), HeatIndex(30, 60); got != hi {
		t.Errorf("THW(30, 25, 60) = %f, expected heat index %f", got, hi)
	}
}

func selfCheckPosition(t *testing.T) solar.Position {
	t.Helper()
	pos, err := solar.Compute(SelfCheckTime, SelfCheckSite)
	if err != nil {
		t.Fatalf("solar.Compute() error: %v", err)
	}
	return pos
}

func TestTHSW(t *testing.T) {
	pos := selfCheckPosition(t)

	tests := []struct {
		name     string
		temp     float64
		wind     float64
		humidity float64
		solar    float64
		expected float64
	}{
		{"hot calm sun", 95, 2, 40, 900, 124.549228},
		{"hot windy sun", 95, 12, 40, 900, 109.223924},
		// 7 mph still uses the light-wind coefficient
		{"at wind split", 95, 7, 40, 900, 113.810042},
		{"just above wind split", 95, 7.0001, 40, 900, 113.853582},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := THSW(tt.temp, tt.wind, tt.humidity, tt.solar, pos)
			if !scalar.EqualWithinAbs(got, tt.expected, 1e-3) {
				t.Errorf("THSW = %.6f, expected %.6f", got, tt.expected)
			}
			if thw := THW(tt.temp, tt.wind, tt.humidity); got <= thw {
				t.Errorf("THSW %.2f should exceed THW %.2f in full sun", got, thw)
			}
		})
	}

	night := pos
	night.SolarElevationDeg = -12
	if got, thw := THSW(95, 2, 40, 900, night), THW(95, 2, 40); got != thw {
		t.Errorf("THSW at night = %f, expected THW %f", got, thw)
	}
	if got, thw := THSW(95, 2, 40, 0, pos), THW(95, 2, 40); got != thw {
		t.Errorf("THSW with no radiation = %f, expected THW %f", got, thw)
	}
}

func TestReferenceET(t *testing.T) {
	pos := selfCheckPosition(t)
	night := pos
	night.SolarElevationDeg = -10
	night.ClearSkyWm2 = 0

	got := ReferenceET(Sample{TempF: 50, Humidity: 60, WindMph: 5, SolarWm2: 0, PressureInHg: 30}, night)
	if !scalar.EqualWithinAbs(got, -0.00110280, 1e-7) {
		t.Errorf("night ReferenceET = %.8f, expected -0.00110280", got)
	}

	// More sun means more evapotranspiration.
	low := ReferenceET(Sample{TempF: 75, Humidity: 40, WindMph: 5, SolarWm2: 200, PressureInHg: 30}, pos)
	high := ReferenceET(Sample{TempF: 75, Humidity: 40, WindMph: 5, SolarWm2: 700, PressureInHg: 30}, pos)
	if high <= low {
		t.Errorf("ReferenceET at 700 W/m² (%.5f) should exceed 200 W/m² (%.5f)", high, low)
	}
}

func TestCloudFraction(t *testing.T) {
	tests := []struct {
		solar, clear, expected float64
	}{
		{500, 0, 0},
		{500, 1000, 0.5},
		{1200, 1000, 0},
		{0, 1000, 1},
	}
	for _, tt := range tests {
		if got := cloudFraction(tt.solar, tt.clear); got != tt.expected {
			t.Errorf("cloudFraction(%.0f, %.0f) = %f, expected %f", tt.solar, tt.clear, got, tt.expected)
		}
	}
}

// TestSelfCheck reproduces the console's embedded reference reading.
func TestSelfCheck(t *testing.T) {
	d := Derive(SelfCheckSample, selfCheckPosition(t))

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"wind chill", d.WindChill, 23.208502561},
		{"heat index", d.HeatIndex, 20.37},
		{"dew point", d.DewPoint, -0.607162103},
		{"wet bulb", d.WetBulb, 20.188160056},
		{"reference ET", d.ReferenceET, 0.007660076},
		{"THW", d.THW, 20.37},
		{"THSW", d.THSW, 33.949835},
	}
	for _, c := range checks {
		if !scalar.EqualWithinAbs(c.got, c.expected, 1e-3) {
			t.Errorf("%s = %.9f, expected %.9f", c.name, c.got, c.expected)
		}
	}
	if d.WindComponent != 0 {
		t.Errorf("WindComponent = %d, expected 0 below 50F", d.WindComponent)
	}

	results, err := SelfCheck()
	if err != nil {
		t.Fatalf("SelfCheck() error: %v", err)
	}
	if len(results) != 7 {
		t.Errorf("SelfCheck() returned %d results, expected 7", len(results))
	}
}

func BenchmarkDerive(b *testing.B) {
	pos, err := solar.Compute(SelfCheckTime, SelfCheckSite)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Derive(SelfCheckSample, pos)
	}
}
