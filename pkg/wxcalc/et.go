package wxcalc

import (
	"math"

	"github.com/chrissnell/wxastro/pkg/solar"
)

const (
	// Stefan-Boltzmann constant per hour, MJ m⁻² K⁻⁴ h⁻¹
	sigmaHourly = 2.043e-10
	// Stefan-Boltzmann constant, W m⁻² K⁻⁴
	sigma = 5.670374419e-8

	albedo = 0.23
)

// ReferenceET returns the hourly reference evapotranspiration in inches,
// following the CIMIS form of the Penman equation. pos must describe the
// Sun at the time s was taken; its clear-sky radiation is used to estimate
// cloud cover for the long-wave balance.
func ReferenceET(s Sample, pos solar.Position) float64 {
	tc := FtoC(s.TempF)
	tk := tc + 273.15
	u2 := MphToMs(s.WindMph)
	rs := WattsToMJHour(s.SolarWm2)
	p := InHgToKPa(s.PressureInHg)

	es := saturationVaporPressure(tc)
	ea := es * s.Humidity / 100
	vpd := es - ea

	delta := 4098 * es / math.Pow(tc+237.3, 2)
	lambda := 2.501 - 0.002361*tc
	gamma := 0.00163 * p / lambda
	w := delta / (delta + gamma)

	rns := (1 - albedo) * rs
	eps := skyEmissivity(tc, s.Humidity, cloudFraction(s.SolarWm2, pos.ClearSkyWm2))
	rnl := sigmaHourly * math.Pow(tk, 4) * (1 - eps)
	rn := rns - rnl

	var fu2 float64
	if s.SolarWm2 > 0 {
		fu2 = 0.030 + 0.0576*u2
	} else {
		fu2 = 0.125 + 0.0439*u2
	}

	etMM := w*rn/lambda + (1-w)*vpd*fu2
	return etMM / 25.4
}

// saturationVaporPressure in kPa for a temperature in °C (Tetens).
func saturationVaporPressure(tc float64) float64 {
	return 0.6108 * math.Exp(17.27*tc/(tc+237.3))
}

// skyEmissivity is the Brutsaert clear-sky emissivity blended toward a
// black overcast sky by cloud fraction (Crawford & Duchon).
func skyEmissivity(tc, humidity, cloud float64) float64 {
	eaHPa := saturationVaporPressure(tc) * humidity / 100 * 10
	tk := tc + 273.15
	clear := 1.24 * math.Pow(eaHPa/tk, 1.0/7.0)
	return clear*(1-0.84*cloud) + 0.84*cloud
}

// cloudFraction estimates cloud cover in [0,1] from measured versus
// clear-sky radiation. Without a clear-sky reference (night) it is 0.
//
// TODO: the EPA clear-sky fit underestimates at low sun angles, which biases
// this toward clear; compare against ClearSkyIneichenWm2 on station history.
func cloudFraction(solarWm2, clearSkyWm2 float64) float64 {
	if clearSkyWm2 <= 0 {
		return 0
	}
	c := 1 - solarWm2/clearSkyWm2
	return math.Max(0, math.Min(1, c))
}
