package riseset

import (
	"math"

	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"github.com/chrissnell/wxastro/pkg/site"
)

const (
	twoPi  = 2 * math.Pi
	arcsec = 206264.8062 // arcseconds per radian

	// obliquity of the ecliptic, J2000
	cosEps = 0.91748
	sinEps = 0.39778
)

// ephemeris returns right ascension (hours) and declination (degrees),
// equinox of date, for t in Julian centuries since J2000.0.
type ephemeris func(t float64) (raHr, decDeg float64)

func frac(x float64) float64 {
	return x - math.Floor(x)
}

// minisun is the Sun's position to about one arc-minute.
func minisun(t float64) (float64, float64) {
	m := twoPi * frac(0.993133+99.997361*t)
	dl := 6893*math.Sin(m) + 72*math.Sin(2*m)
	l := twoPi * frac(0.7859453+m/twoPi+(6191.2*t+dl)/1296000)

	sl := math.Sin(l)
	return equatorial(math.Cos(l), cosEps*sl, sinEps*sl)
}

// minimoon is the Moon's position to a few arc-minutes.
func minimoon(t float64) (float64, float64) {
	l0 := frac(0.606433 + 1336.855225*t)      // mean longitude, revolutions
	l := twoPi * frac(0.374897+1325.552410*t) // mean anomaly
	ls := twoPi * frac(0.993133+99.997361*t)  // Sun's mean anomaly
	d := twoPi * frac(0.827361+1236.853086*t) // elongation
	f := twoPi * frac(0.259086+1342.227825*t) // distance from node

	dl := 22640*math.Sin(l) - 4586*math.Sin(l-2*d) + 2370*math.Sin(2*d) +
		769*math.Sin(2*l) - 668*math.Sin(ls) - 412*math.Sin(2*f) -
		212*math.Sin(2*l-2*d) - 206*math.Sin(l+ls-2*d) + 192*math.Sin(l+2*d) -
		165*math.Sin(ls-2*d) - 125*math.Sin(d) - 110*math.Sin(l+ls) +
		148*math.Sin(l-ls) - 55*math.Sin(2*f-2*d)

	s := f + (dl+412*math.Sin(2*f)+541*math.Sin(ls))/arcsec
	h := f - 2*d
	n := -526*math.Sin(h) + 44*math.Sin(l+h) - 31*math.Sin(-l+h) -
		23*math.Sin(ls+h) + 11*math.Sin(-ls+h) - 25*math.Sin(-2*l+f) +
		21*math.Sin(-l+f)

	lMoon := twoPi * frac(l0+dl/1296000)
	bMoon := (18520*math.Sin(s) + n) / arcsec

	cb := math.Cos(bMoon)
	x := cb * math.Cos(lMoon)
	v := cb * math.Sin(lMoon)
	w := math.Sin(bMoon)
	return equatorial(x, cosEps*v-sinEps*w, sinEps*v+cosEps*w)
}

// equatorial turns a unit vector in equatorial axes into RA hours and
// declination degrees.
func equatorial(x, y, z float64) (float64, float64) {
	rho := math.Sqrt(1 - z*z)
	dec := (360 / twoPi) * math.Atan(z/rho)
	ra := (48 / twoPi) * math.Atan(y/(x+rho))
	if ra < 0 {
		ra += 24
	}
	return ra, dec
}

// sinAltitude returns the sine of the body's geometric altitude at mjd.
func sinAltitude(body ephemeris, mjd float64, s site.Site) float64 {
	jd := mjd + mjdOffset
	ra, dec := body((jd - 2451545) / 36525)

	lst := unit.PMod(sidereal.Mean(jd).Hour()+s.Longitude/15, 24)
	tau := unit.HourAngleFromHour(lst - ra)

	sinLat, cosLat := math.Sincos(s.Latitude * math.Pi / 180)
	sinDec, cosDec := math.Sincos(dec * math.Pi / 180)
	return sinLat*sinDec + cosLat*cosDec*tau.Cos()
}
