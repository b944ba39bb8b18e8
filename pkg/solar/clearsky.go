package solar

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
)

const (
	solarConstant = 1361.0 // W/m² at the top of the atmosphere

	// epaScale turns the EPA (1971) polynomial from ly/hr into W/m²
	epaScale = 24 * 0.1314
)

// ClearSkyEPA estimates clear-sky irradiance (W/m²) on a horizontal surface
// from the solar elevation in degrees, using the quartic fit from the EPA
// "Rate of Heat Exchange" (1971) model. It is zero with the Sun down.
func ClearSkyEPA(elevationDeg float64) float64 {
	if elevationDeg <= 0 {
		return 0
	}
	return epaScale * base.Horner(elevationDeg, 0, 2.044, 0.12964, -0.001941, 0.000007591)
}

// ClearSkyIneichenPerez estimates clear-sky global horizontal irradiance
// (W/m²) with a simplified Ineichen-Perez model. Unlike ClearSkyEPA it
// accounts for Earth-Sun distance through the year and for site altitude.
func ClearSkyIneichenPerez(p Position, dayOfYear int, altitudeM float64) float64 {
	thetaZ := p.SolarZenithDeg
	if thetaZ >= 90 {
		return 0
	}
	n := float64(dayOfYear)

	// extraterrestrial irradiance corrected for orbital eccentricity
	g0 := solarConstant * (1 + 0.033*cosD(360.0*(n-3)/365.0))

	const (
		linkeTurbidity = 2.0
		dniNorm        = 0.7
		extinction     = 0.027
	)

	// Kasten-Young air mass
	airMass := 1.0 / (cosD(thetaZ) + 0.50572*math.Pow(96.07995-thetaZ, -1.6364))
	dni := g0 * dniNorm * math.Exp(-extinction*airMass*linkeTurbidity*math.Exp(-altitudeM/8000.0))

	diffuseFrac := 0.1 + 0.05*math.Sin(math.Pi*(n-100)/365.0)
	dhi := diffuseFrac * g0 * cosD(thetaZ)

	return dni*cosD(thetaZ) + dhi
}
