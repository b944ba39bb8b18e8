// Package wxcalc derives secondary weather quantities (wind chill, heat index,
// dew point, wet bulb, evapotranspiration, THW and THSW) from the instantaneous
// readings reported by a weather console.
//
// Inputs use the console's native units: °F, percent relative humidity, mph,
// W/m² and inHg. None of the functions validate their inputs; out-of-domain
// values (for example zero humidity into DewPoint) propagate as NaN or Inf.
package wxcalc

import (
	"math"

	"github.com/chrissnell/wxastro/pkg/solar"
)

// Sample is a single set of console readings.
type Sample struct {
	TempF        float64 `json:"temp_f"`
	Humidity     float64 `json:"humidity"`
	WindMph      float64 `json:"wind_mph"`
	SolarWm2     float64 `json:"solar_wm2"`
	PressureInHg float64 `json:"pressure_inhg"`
}

// Derived holds every quantity computed from one Sample.
type Derived struct {
	WindChill     float64 `json:"wind_chill"`
	HeatIndex     float64 `json:"heat_index"`
	DewPoint      float64 `json:"dew_point"`
	WetBulb       float64 `json:"wet_bulb"`
	ReferenceET   float64 `json:"reference_et"`
	THW           float64 `json:"thw"`
	THSW          float64 `json:"thsw"`
	WindComponent int     `json:"wind_component"`
}

// Derive computes all derived quantities for s. pos must be the solar
// position for the same instant the sample was taken.
func Derive(s Sample, pos solar.Position) Derived {
	return Derived{
		WindChill:     WindChill(s.TempF, s.WindMph),
		HeatIndex:     HeatIndex(s.TempF, s.Humidity),
		DewPoint:      DewPoint(s.TempF, s.Humidity),
		WetBulb:       WetBulb(s.TempF, s.Humidity),
		ReferenceET:   ReferenceET(s, pos),
		THW:           THW(s.TempF, s.WindMph, s.Humidity),
		THSW:          THSW(s.TempF, s.WindMph, s.Humidity, s.SolarWm2, pos),
		WindComponent: WindComponent(s.TempF, s.WindMph),
	}
}

// WindChill calculates wind chill using the 2001 NWS formula.
// For wind speeds < 3 or temps > 50, wind chill is just the current temperature.
func WindChill(tempF, windMph float64) float64 {
	if tempF > 50 || windMph < 3 {
		return tempF
	}
	v := math.Pow(windMph, 0.16)
	return 35.74 + 0.6215*tempF - 35.75*v + 0.4275*tempF*v
}

// HeatIndex calculates the NWS heat index.
func HeatIndex(tempF, humidity float64) float64 {
	// Below 80° F we use Steadman's simple fit, averaged with the temperature
	if tempF < 80 {
		return 0.5 * (tempF + 61.0 + (tempF-68.0)*1.2 + humidity*0.094)
	}

	const (
		c1 = -42.379
		c2 = 2.04901523
		c3 = 10.14333127
		c4 = -0.22475541
		c5 = -0.00683783
		c6 = -0.05481717
		c7 = 0.00122874
		c8 = 0.00085282
		c9 = -0.00000199
	)

	t, h := tempF, humidity
	hi := c1 + c2*t + c3*h + c4*t*h + c5*t*t + c6*h*h + c7*t*t*h + c8*t*h*h + c9*t*t*h*h

	// The two adjustments cannot both apply; the low-humidity one is checked first.
	if h < 13 && t > 80 && t < 112 {
		hi -= ((13 - h) / 4) * math.Sqrt((17-math.Abs(t-95))/17)
	} else if h > 85 && t > 80 && t < 87 {
		hi += ((h - 85) / 10) * ((87 - t) / 5)
	}
	return hi
}

// DewPoint calculates the dew point with the Magnus-Tetens formula.
// humidity must be > 0.
func DewPoint(tempF, humidity float64) float64 {
	const (
		a = 17.27
		b = 237.7
	)
	tc := FtoC(tempF)
	x := a*tc/(b+tc) + math.Log(humidity/100.0)
	return CtoF(b * x / (a - x))
}

// WetBulb approximates the wet-bulb temperature with Stull's (2011) fit,
// valid for 5%-99% humidity and -20 to 50 °C.
func WetBulb(tempF, humidity float64) float64 {
	tc := FtoC(tempF)
	h := humidity
	tw := tc*math.Atan(0.151977*math.Sqrt(h+8.313659)) +
		math.Atan(tc+h) - math.Atan(h-1.676331) +
		0.00391838*math.Pow(h, 1.5)*math.Atan(0.023101*h) -
		4.686035
	return CtoF(tw)
}
