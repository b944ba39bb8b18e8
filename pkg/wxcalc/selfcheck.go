package wxcalc

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/wxastro/pkg/site"
	"github.com/chrissnell/wxastro/pkg/solar"
)

// SelfCheckSample is the reference reading used by the end-to-end self check.
var SelfCheckSample = Sample{
	TempF:        26.6,
	Humidity:     30,
	WindMph:      3.0,
	SolarWm2:     564.453,
	PressureInHg: 29.999,
}

// SelfCheckSite and SelfCheckTime fix the solar position the reference
// values below were computed for: Denver, 12:30 MST on the 2024 March equinox.
var (
	SelfCheckSite = site.Site{Latitude: 39.7392, Longitude: -104.9903, ElevationFt: 5280, TZOffsetHours: -7}
	SelfCheckTime = time.Date(2024, time.March, 20, 12, 30, 0, 0, time.UTC)
)

// selfCheckTolerance is the largest accepted deviation from a reference value.
const selfCheckTolerance = 1e-3

var selfCheckExpected = Derived{
	WindChill:   23.208502561,
	HeatIndex:   20.37,
	DewPoint:    -0.607162103,
	WetBulb:     20.188160056,
	ReferenceET: 0.007660076,
	THW:         20.37,
	THSW:        33.949835,
}

// CheckResult is one quantity compared against its reference value.
type CheckResult struct {
	Name     string  `json:"name"`
	Got      float64 `json:"got"`
	Expected float64 `json:"expected"`
	OK       bool    `json:"ok"`
}

// SelfCheck derives every quantity for SelfCheckSample and compares it with
// the stored reference values. The returned error is non-nil when any
// quantity is out of tolerance or the solar position cannot be computed.
func SelfCheck() ([]CheckResult, error) {
	pos, err := solar.Compute(SelfCheckTime, SelfCheckSite)
	if err != nil {
		return nil, fmt.Errorf("self check solar position: %w", err)
	}
	d := Derive(SelfCheckSample, pos)

	results := []CheckResult{
		{Name: "wind chill", Got: d.WindChill, Expected: selfCheckExpected.WindChill},
		{Name: "heat index", Got: d.HeatIndex, Expected: selfCheckExpected.HeatIndex},
		{Name: "dew point", Got: d.DewPoint, Expected: selfCheckExpected.DewPoint},
		{Name: "wet bulb", Got: d.WetBulb, Expected: selfCheckExpected.WetBulb},
		{Name: "reference ET", Got: d.ReferenceET, Expected: selfCheckExpected.ReferenceET},
		{Name: "THW", Got: d.THW, Expected: selfCheckExpected.THW},
		{Name: "THSW", Got: d.THSW, Expected: selfCheckExpected.THSW},
	}

	failed := 0
	for i := range results {
		r := &results[i]
		r.OK = math.Abs(r.Got-r.Expected) <= selfCheckTolerance
		if !r.OK {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("self check: %d of %d quantities out of tolerance", failed, len(results))
	}
	return results, nil
}
