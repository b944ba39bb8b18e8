// Package solar computes the Sun's position for a civil time at a site using
// the NOAA low-precision ephemeris (Meeus, Astronomical Algorithms ch. 25),
// plus clear-sky irradiance estimates derived from that position.
//
// Results are good to roughly one arc-minute, which is plenty for weather
// indices but not for precision timekeeping.
package solar

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"

	"github.com/chrissnell/wxastro/pkg/site"
)

var (
	// ErrInvalidSite is returned when the site fails validation.
	ErrInvalidSite = errors.New("invalid site for solar position")
	// ErrNumeric is returned when a step of the ephemeris produced NaN or Inf.
	ErrNumeric = errors.New("solar position calculation failed")
)

// zenith of the Sun's centre at apparent sunrise/sunset, refraction included
const sunriseZenith = 90.833

// Position is the Sun's position for one (time, site) pair.
type Position struct {
	JulianDay         float64 `json:"julian_day"`       // JD (UT) of the instant
	Century           float64 `json:"century"`          // Julian centuries since J2000.0
	DeclinationDeg    float64 `json:"declination"`
	RightAscensionHr  float64 `json:"right_ascension"`  // [0,24)
	EquationOfTimeMin float64 `json:"equation_of_time"`
	HourAngleDeg      float64 `json:"hour_angle"`       // [-180,180), negative before solar noon
	SolarZenithDeg    float64 `json:"zenith"`           // [0,180]
	SolarElevationDeg float64 `json:"elevation"`        // [-90,90], geometric, no refraction
	AzimuthDeg        float64 `json:"azimuth"`          // [0,360) clockwise from north
	SolarNoon         float64 `json:"solar_noon"`       // local standard time, fraction of day
	Sunrise           float64 `json:"sunrise"`          // local standard time, fraction of day
	Sunset            float64 `json:"sunset"`           // local standard time, fraction of day
	SunlightMin       float64 `json:"sunlight_minutes"` // 0 during polar night, 1440 during polar day
	RadiusVectorAU    float64 `json:"radius_vector"`

	// ClearSkyWm2 is the EPA (1971) clear-sky irradiance estimate.
	ClearSkyWm2 float64 `json:"clear_sky"`
	// ClearSkyIneichenWm2 is the Ineichen-Perez estimate, which also
	// accounts for site elevation.
	ClearSkyIneichenWm2 float64 `json:"clear_sky_ineichen"`
}

// Compute returns the solar position for the wall-clock time of local,
// interpreted as local standard time at s (s.TZOffsetHours). The location
// attached to local is ignored; only its calendar date and clock are used.
func Compute(local time.Time, s site.Site) (Position, error) {
	if err := s.Validate(); err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidSite, err)
	}

	y, m, d := local.Date()
	dayFrac := float64(local.Hour()*3600+local.Minute()*60+local.Second())/86400 +
		float64(local.Nanosecond())/86400e9
	tz := float64(s.TZOffsetHours)

	jd := julian.CalendarGregorianToJD(y, int(m), float64(d)+dayFrac) - tz/24
	jc := base.J2000Century(jd)

	geomMeanLong := fixAngle(280.46646 + jc*(36000.76983+jc*0.0003032))
	geomMeanAnom := 357.52911 + jc*(35999.05029-0.0001537*jc)
	eccent := 0.016708634 - jc*(0.000042037+0.0000001267*jc)

	eqOfCenter := sinD(geomMeanAnom)*(1.914602-jc*(0.004817+0.000014*jc)) +
		sinD(2*geomMeanAnom)*(0.019993-0.000101*jc) +
		sinD(3*geomMeanAnom)*0.000289

	trueLong := geomMeanLong + eqOfCenter
	trueAnom := geomMeanAnom + eqOfCenter
	radVector := (1.000001018 * (1 - eccent*eccent)) / (1 + eccent*cosD(trueAnom))

	omega := 125.04 - 1934.136*jc
	appLong := trueLong - 0.00569 - 0.00478*sinD(omega)

	meanObliq := 23 + (26+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813)))/60)/60
	obliqCorr := meanObliq + 0.00256*cosD(omega)

	ra := fixAngle(radToDeg(math.Atan2(cosD(obliqCorr)*sinD(appLong), cosD(appLong))))
	decl := radToDeg(math.Asin(sinD(obliqCorr) * sinD(appLong)))

	varY := math.Pow(math.Tan(degToRad(obliqCorr/2)), 2)
	l0 := degToRad(geomMeanLong)
	mRad := degToRad(geomMeanAnom)
	eqTime := 4 * radToDeg(varY*math.Sin(2*l0)-
		2*eccent*math.Sin(mRad)+
		4*eccent*varY*math.Sin(mRad)*math.Cos(2*l0)-
		0.5*varY*varY*math.Sin(4*l0)-
		1.25*eccent*eccent*math.Sin(2*mRad))

	// Outside [-1,1] the Sun never crosses the horizon that day.
	haArg := cosD(sunriseZenith)/(cosD(s.Latitude)*cosD(decl)) - tanD(s.Latitude)*tanD(decl)
	haSunrise := radToDeg(math.Acos(clamp(haArg, -1, 1)))

	solarNoon := (720 - 4*s.Longitude - eqTime + tz*60) / 1440

	trueSolarTime := math.Mod(dayFrac*1440+eqTime+4*s.Longitude-60*tz, 1440)
	if trueSolarTime < 0 {
		trueSolarTime += 1440
	}
	hourAngle := trueSolarTime/4 - 180

	cosZenith := sinD(s.Latitude)*sinD(decl) + cosD(s.Latitude)*cosD(decl)*cosD(hourAngle)
	zenith := radToDeg(math.Acos(clamp(cosZenith, -1, 1)))
	elevation := 90 - zenith

	// Meeus 13.5, shifted to measure from north.
	azimuth := fixAngle(radToDeg(math.Atan2(sinD(hourAngle),
		cosD(hourAngle)*sinD(s.Latitude)-tanD(decl)*cosD(s.Latitude))) + 180)

	p := Position{
		JulianDay:         jd,
		Century:           jc,
		DeclinationDeg:    decl,
		RightAscensionHr:  ra / 15,
		EquationOfTimeMin: eqTime,
		HourAngleDeg:      hourAngle,
		SolarZenithDeg:    zenith,
		SolarElevationDeg: elevation,
		AzimuthDeg:        azimuth,
		SolarNoon:         solarNoon,
		Sunrise:           solarNoon - haSunrise*4/1440,
		Sunset:            solarNoon + haSunrise*4/1440,
		SunlightMin:       8 * haSunrise,
		RadiusVectorAU:    radVector,
		ClearSkyWm2:       ClearSkyEPA(elevation),
	}
	p.ClearSkyIneichenWm2 = ClearSkyIneichenPerez(p, local.YearDay(), s.ElevationMeters())

	if err := p.check(); err != nil {
		return Position{}, err
	}
	return p, nil
}

// check rejects results containing NaN or Inf so callers never consume a
// partially computed position.
func (p Position) check() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"julian day", p.JulianDay},
		{"declination", p.DeclinationDeg},
		{"right ascension", p.RightAscensionHr},
		{"equation of time", p.EquationOfTimeMin},
		{"hour angle", p.HourAngleDeg},
		{"zenith", p.SolarZenithDeg},
		{"azimuth", p.AzimuthDeg},
		{"solar noon", p.SolarNoon},
		{"sunlight duration", p.SunlightMin},
		{"radius vector", p.RadiusVectorAU},
		{"clear-sky radiation", p.ClearSkyWm2},
		{"Ineichen-Perez radiation", p.ClearSkyIneichenWm2},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %v", ErrNumeric, f.name, f.v)
		}
	}
	return nil
}

// SunUp reports whether the Sun's centre is geometrically above the horizon.
func (p Position) SunUp() bool {
	return p.SolarElevationDeg > 0
}

// ClockTime converts a fraction of a day (as in SolarNoon, Sunrise and
// Sunset) to a duration after local midnight.
func ClockTime(dayFraction float64) time.Duration {
	return time.Duration(math.Round(dayFraction * 86400 * float64(time.Second)))
}
