// Package riseset finds Sun and Moon rise/set times and the three twilight
// pairs for a calendar date at a site.
//
// The search follows Montenbruck & Pfleger, Astronomy on the Personal
// Computer: the body's sine-altitude is sampled every hour across the local
// day and a parabola through each group of three samples is solved for
// crossings of the event threshold. Positions come from the low-precision
// minisun/minimoon series, good to about a minute of time.
package riseset

import (
	"errors"
	"fmt"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/floats"

	"github.com/chrissnell/wxastro/pkg/site"
)

var (
	// ErrInvalidSite is returned when the site fails validation.
	ErrInvalidSite = errors.New("invalid site for rise/set")
	// ErrInvalidDate is returned for a calendar date that does not exist.
	ErrInvalidDate = errors.New("invalid calendar date")
)

// Event thresholds, degrees of altitude of the body's centre.
const (
	sunriseAlt      = -0.833
	civilAlt        = -6.0
	nauticalAlt     = -12.0
	astronomicalAlt = -18.0
	moonriseAlt     = 8.0 / 60.0
)

const (
	mjdOffset = 2400000.5
	samples   = 25 // hourly, both midnights included
)

// Status qualifies an Event.
type Status int

const (
	// Normal means Hour holds the local standard time of the event.
	Normal Status = iota
	// AlwaysUp means the body stayed above the threshold all day.
	AlwaysUp
	// AlwaysDown means the body stayed below the threshold all day.
	AlwaysDown
	// NoEvent means the partner event happened but this one did not,
	// e.g. a moonset with no moonrise on the same date.
	NoEvent
)

var statusNames = [...]string{
	Normal:     "normal",
	AlwaysUp:   "always_up",
	AlwaysDown: "always_down",
	NoEvent:    "no_event",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText renders the status name for JSON and MessagePack output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a name produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown rise/set status %q", b)
}

// Event is one rise or set.
type Event struct {
	Hour   float64 `json:"hour"` // local standard time in [0,24), valid when Status is Normal
	Status Status  `json:"status"`
}

// String renders a normal event as " H:MM am/pm" and anything else by status.
func (e Event) String() string {
	switch e.Status {
	case Normal:
		return FormatHour(e.Hour)
	case AlwaysUp:
		return "always up"
	case AlwaysDown:
		return "always down"
	default:
		return "none"
	}
}

// Result holds every event for one date.
type Result struct {
	Sunrise      Event `json:"sunrise"`
	Sunset       Event `json:"sunset"`
	CivilDawn    Event `json:"civil_dawn"`
	CivilDusk    Event `json:"civil_dusk"`
	NauticalDawn Event `json:"nautical_dawn"`
	NauticalDusk Event `json:"nautical_dusk"`
	AstroDawn    Event `json:"astronomical_dawn"`
	AstroDusk    Event `json:"astronomical_dusk"`
	Moonrise     Event `json:"moonrise"`
	Moonset      Event `json:"moonset"`

	DaylightHours float64 `json:"daylight_hours"`
}

// Calculate returns the rise, set and twilight times for the given date.
// Times are local standard time at s (s.TZOffsetHours, no daylight saving).
func Calculate(year, month, day int, s site.Site) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSite, err)
	}
	if d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC); d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return Result{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}

	// MJD of local midnight
	mjd0 := julian.CalendarGregorianToJD(year, month, float64(day)) - mjdOffset - float64(s.TZOffsetHours)/24

	hours := floats.Span(make([]float64, samples), 0, 24)
	sun := make([]float64, samples)
	moon := make([]float64, samples)
	for i, h := range hours {
		mjd := mjd0 + h/24
		sun[i] = sinAltitude(minisun, mjd, s)
		moon[i] = sinAltitude(minimoon, mjd, s)
	}

	var r Result
	r.Sunrise, r.Sunset = crossings(sun, sunriseAlt)
	r.CivilDawn, r.CivilDusk = crossings(sun, civilAlt)
	r.NauticalDawn, r.NauticalDusk = crossings(sun, nauticalAlt)
	r.AstroDawn, r.AstroDusk = crossings(sun, astronomicalAlt)
	r.Moonrise, r.Moonset = crossings(moon, moonriseAlt)
	r.DaylightHours = daylight(r.Sunrise, r.Sunset)

	return r, nil
}

// CalculateDate is Calculate for the calendar date of t's wall clock.
func CalculateDate(t time.Time, s site.Site) (Result, error) {
	y, m, d := t.Date()
	return Calculate(y, int(m), d, s)
}

// daylight is the time between sunrise and sunset. A sunset earlier than
// sunrise belongs to the next day. With only one of the two the day is
// counted from midnight (no sunrise) or to midnight (no sunset).
func daylight(rise, set Event) float64 {
	switch {
	case rise.Status == AlwaysUp:
		return 24
	case rise.Status == AlwaysDown:
		return 0
	case rise.Status == Normal && set.Status == Normal:
		return unit.PMod(set.Hour-rise.Hour, 24)
	case rise.Status == Normal:
		return 24 - rise.Hour
	case set.Status == Normal:
		return set.Hour
	}
	return 0
}
