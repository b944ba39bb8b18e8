package riseset

import (
	"math"

	"github.com/soniakeys/unit"
)

// quad fits a parabola through (-1,ym), (0,yz), (+1,yp) and returns the
// number of roots in [-1,1], the roots, and the ordinate of the extremum.
// With a single root in range it is always returned as z1.
func quad(ym, yz, yp float64) (nz int, z1, z2, ye float64) {
	a := 0.5*(ym+yp) - yz
	b := 0.5 * (yp - ym)
	c := yz

	xe := -b / (2 * a)
	ye = (a*xe+b)*xe + c
	dis := b*b - 4*a*c
	if dis <= 0 {
		return 0, 0, 0, ye
	}

	dx := 0.5 * math.Sqrt(dis) / math.Abs(a)
	z1 = xe - dx
	z2 = xe + dx
	if math.Abs(z1) <= 1 {
		nz++
	}
	if math.Abs(z2) <= 1 {
		nz++
	}
	if z1 < -1 {
		z1 = z2
	}
	return nz, z1, z2, ye
}

// crossings scans hourly sine-altitudes for the rise and set through the
// altitude threshold alt (degrees). sinAlt must hold samples hours 0..24.
func crossings(sinAlt []float64, alt float64) (rise, set Event) {
	sinH0 := math.Sin(alt * math.Pi / 180)

	var haveRise, haveSet bool
	for hour := 1; hour < len(sinAlt)-1 && !(haveRise && haveSet); hour += 2 {
		ym := sinAlt[hour-1] - sinH0
		yz := sinAlt[hour] - sinH0
		yp := sinAlt[hour+1] - sinH0

		nz, z1, z2, ye := quad(ym, yz, yp)
		h := float64(hour)
		switch nz {
		case 1:
			if ym < 0 {
				rise, haveRise = event(h+z1), true
			} else {
				set, haveSet = event(h+z1), true
			}
		case 2:
			// both in one window: the minimum lies between them when ye < 0
			if ye < 0 {
				rise, set = event(h+z2), event(h+z1)
			} else {
				rise, set = event(h+z1), event(h+z2)
			}
			haveRise, haveSet = true, true
		}
	}

	switch {
	case haveRise && haveSet:
	case haveRise:
		set = Event{Status: NoEvent}
	case haveSet:
		rise = Event{Status: NoEvent}
	case sinAlt[0] > sinH0:
		rise, set = Event{Status: AlwaysUp}, Event{Status: AlwaysUp}
	default:
		rise, set = Event{Status: AlwaysDown}, Event{Status: AlwaysDown}
	}
	return rise, set
}

func event(hour float64) Event {
	return Event{Hour: unit.PMod(hour, 24), Status: Normal}
}
