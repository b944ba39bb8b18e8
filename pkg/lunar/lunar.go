// Package lunar provides moon phase calculations. The phase index is the
// day count into a fixed-length synodic cycle, which is what station
// consoles display; the illuminated fraction comes from the ecliptic
// longitudes of the Sun and Moon and is typically within ~0.5-1%.
package lunar

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/unit"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// synodicSeconds is the cycle length used for the phase index.
const synodicSeconds = 2551443

// referenceNewMoon is the new moon the phase index counts from.
var referenceNewMoon = time.Date(1970, time.January, 7, 20, 35, 0, 0, time.UTC)

// Phase is one of the eight named phases.
type Phase int

const (
	NewMoon Phase = iota
	WaxingCrescent
	FirstQuarter
	WaxingGibbous
	FullMoon
	WaningGibbous
	LastQuarter
	WaningCrescent
)

var phaseNames = [...]string{
	NewMoon:        "New Moon",
	WaxingCrescent: "Waxing Crescent",
	FirstQuarter:   "First Quarter",
	WaxingGibbous:  "Waxing Gibbous",
	FullMoon:       "Full Moon",
	WaningGibbous:  "Waning Gibbous",
	LastQuarter:    "Last Quarter",
	WaningCrescent: "Waning Crescent",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText renders the phase name for JSON and MessagePack output.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (p *Phase) UnmarshalText(b []byte) error {
	for i, name := range phaseNames {
		if name == string(b) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown moon phase %q", b)
}

// MoonPhase contains calculated moon phase information
type MoonPhase struct {
	Index        int     `json:"index"`        // Day of the synodic cycle [0,29]
	Phase        Phase   `json:"phase"`        // Named phase for Index
	Elongation   float64 `json:"elongation"`   // Sun→Moon angle in degrees [0,360)
	Illumination float64 `json:"illumination"` // Illuminated fraction [0,1]: 0=new, 1=full
	AgeDays      float64 `json:"age_days"`     // Days since new moon [0,SynodicMonth)
	IsWaxing     bool    `json:"is_waxing"`    // True when moon is waxing (getting fuller)
}

// PhaseIndex returns the day of the synodic cycle for t, in [0,29].
// Day one begins at the reference new moon; the final partial day of
// each cycle wraps to 0 with the new moon.
func PhaseIndex(t time.Time) int {
	secs := t.Unix() - referenceNewMoon.Unix()
	r := secs % synodicSeconds
	if r < 0 {
		r += synodicSeconds
	}
	idx := int(r/86400) + 1
	if idx == 30 {
		return 0
	}
	return idx
}

// PhaseForIndex maps a cycle day to its named phase. It reports false for
// days outside 0..30.
func PhaseForIndex(i int) (Phase, bool) {
	switch {
	case i == 0 || i == 30:
		return NewMoon, true
	case i >= 1 && i <= 6:
		return WaxingCrescent, true
	case i == 7:
		return FirstQuarter, true
	case i >= 8 && i <= 13:
		return WaxingGibbous, true
	case i == 14:
		return FullMoon, true
	case i >= 15 && i <= 21:
		return WaningGibbous, true
	case i == 22:
		return LastQuarter, true
	case i >= 23 && i <= 29:
		return WaningCrescent, true
	}
	return 0, false
}

// Calculate computes the moon phase for a given timestamp
func Calculate(t time.Time) MoonPhase {
	elongation := elongation(t)
	phase := elongation / 360.0
	idx := PhaseIndex(t)
	name, _ := PhaseForIndex(idx)

	return MoonPhase{
		Index:        idx,
		Phase:        name,
		Elongation:   elongation,
		Illumination: illumination(elongation),
		AgeDays:      phase * SynodicMonth,
		IsWaxing:     elongation < 180,
	}
}

// Illumination returns the illuminated fraction of the Moon's disk at t.
func Illumination(t time.Time) float64 {
	return illumination(elongation(t))
}

func illumination(elongationDeg float64) float64 {
	return (1 - math.Cos(degToRad(elongationDeg))) / 2
}

// elongation is the Moon's ecliptic longitude less the Sun's, [0,360).
func elongation(t time.Time) float64 {
	T := julianCenturies(jdFromTime(t))
	return normalizeAngle(moonEclipticLongitude(T) - sunEclipticLongitude(T))
}

// jdFromTime converts a time to Julian Day
func jdFromTime(t time.Time) float64 {
	return 2440587.5 + float64(t.Unix())/86400.0
}

// julianCenturies returns Julian centuries since J2000.0
func julianCenturies(jd float64) float64 {
	return (jd - 2451545.0) / 36525.0
}

// normalizeAngle wraps an angle to the range [0, 360)
func normalizeAngle(angle float64) float64 {
	return unit.PMod(angle, 360)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// sunEclipticLongitude computes the Sun's ecliptic longitude in degrees
func sunEclipticLongitude(T float64) float64 {
	L0 := 280.46646 + 36000.76983*T + 0.0003032*T*T
	M := degToRad(normalizeAngle(357.52911 + 35999.05029*T - 0.0001537*T*T))

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(M) +
		(0.019993-0.000101*T)*math.Sin(2*M) +
		0.000289*math.Sin(3*M)

	return normalizeAngle(L0 + C)
}

// moonEclipticLongitude computes the Moon's ecliptic longitude in degrees
// from the largest periodic terms of Meeus ch. 47.
func moonEclipticLongitude(T float64) float64 {
	// mean longitude, mean elongation and mean anomaly
	L := 218.3164477 + 481267.88123421*T - 0.0015786*T*T + T*T*T/538841 - T*T*T*T/65194000
	D := 297.8501921 + 445267.1114034*T - 0.0018819*T*T + T*T*T/545868 - T*T*T*T/113065000
	Mp := 134.9633964 + 477198.8675055*T + 0.0087414*T*T + T*T*T/69699 - T*T*T*T/14712000

	d := degToRad(normalizeAngle(D))
	mp := degToRad(normalizeAngle(Mp))

	lambda := L +
		6.289*math.Sin(mp) +
		1.274*math.Sin(2*d-mp) +
		0.658*math.Sin(2*d) +
		0.214*math.Sin(2*mp) +
		0.110*math.Sin(d)

	return normalizeAngle(lambda)
}
