package wxcalc

import (
	"math"

	"github.com/chrissnell/wxastro/pkg/solar"
)

// THW is the Temperature-Humidity-Wind index: the heat index plus the
// WindMatrix correction for the current wind.
func THW(tempF, windMph, humidity float64) float64 {
	return HeatIndex(tempF, humidity) + float64(WindComponent(tempF, windMph))
}

// THSW adds the solar heat load on a standing person to THW. The load has
// four parts: direct beam, diffuse (indirect) sky light, ground-reflected
// (terrestrial) light, and the long-wave deficit of a sky colder than the
// air. With the Sun down THSW equals THW.
func THSW(tempF, windMph, humidity, solarWm2 float64, pos solar.Position) float64 {
	thw := THW(tempF, windMph, humidity)

	elev := pos.SolarElevationDeg
	if solarWm2 <= 0 || elev <= 0 {
		return thw
	}

	const (
		absorptivity  = 0.7
		groundAlbedo  = 0.2
		viewFactor    = 0.5 // half of the sky (or ground) dome is visible
		minSinElev    = 0.05
		radiativeCoef = 4.7 // linearised radiative exchange, W m⁻² K⁻¹
	)

	tc := FtoC(tempF)
	tk := tc + 273.15
	cloud := cloudFraction(solarWm2, pos.ClearSkyWm2)

	beam := solarWm2 * (1 - cloud)
	diffuse := solarWm2 - beam

	elevRad := elev * math.Pi / 180
	sinElev := math.Max(math.Sin(elevRad), minSinElev)
	// Fanger's projected-area factor for a standing person
	projected := 0.308 * math.Cos((elev*(0.998-elev*elev/50000))*math.Pi/180)

	direct := absorptivity * projected * beam / sinElev
	indirect := absorptivity * viewFactor * diffuse
	terrestrial := absorptivity * viewFactor * groundAlbedo * solarWm2
	sky := viewFactor * sigma * math.Pow(tk, 4) * (skyEmissivity(tc, humidity, cloud) - 1)

	load := direct + indirect + terrestrial + sky

	v := MphToMs(windMph)
	var convective float64
	if windMph <= 7 {
		convective = 5.7 + 3.8*v
	} else {
		convective = 7.2 * math.Pow(v, 0.78)
	}

	return thw + 1.8*load/(radiativeCoef+convective)
}
