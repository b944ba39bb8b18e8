package restserver

import (
	"time"

	"github.com/chrissnell/wxastro/pkg/lunar"
	"github.com/chrissnell/wxastro/pkg/riseset"
	"github.com/chrissnell/wxastro/pkg/site"
	"github.com/chrissnell/wxastro/pkg/solar"
	"github.com/chrissnell/wxastro/pkg/wxcalc"
)

// DerivedResponse is returned by /api/v1/derived
type DerivedResponse struct {
	Time    time.Time      `json:"time"`
	Site    site.Site      `json:"site"`
	Sample  wxcalc.Sample  `json:"sample"`
	Derived wxcalc.Derived `json:"derived"`
}

// SolarResponse is returned by /api/v1/solar
type SolarResponse struct {
	Time      time.Time      `json:"time"`
	Site      site.Site      `json:"site"`
	Position  solar.Position `json:"position"`
	SunUp     bool           `json:"sun_up"`
	SolarNoon string         `json:"solar_noon_local"`
	Sunrise   string         `json:"sunrise_local"`
	Sunset    string         `json:"sunset_local"`
}

// RiseSetResponse is returned by /api/v1/riseset. Formatted holds each
// event rendered for display, keyed like the Result fields.
type RiseSetResponse struct {
	Date      string            `json:"date"`
	Site      site.Site         `json:"site"`
	Result    riseset.Result    `json:"result"`
	Formatted map[string]string `json:"formatted"`
}

// MoonResponse is returned by /api/v1/moon
type MoonResponse struct {
	Time time.Time       `json:"time"`
	Moon lunar.MoonPhase `json:"moon"`
}

// HealthResponse is returned by /healthz
type HealthResponse struct {
	Status string    `json:"status"`
	Site   site.Site `json:"site"`
}

func formatRiseSet(r riseset.Result) map[string]string {
	return map[string]string{
		"sunrise":           r.Sunrise.String(),
		"sunset":            r.Sunset.String(),
		"civil_dawn":        r.CivilDawn.String(),
		"civil_dusk":        r.CivilDusk.String(),
		"nautical_dawn":     r.NauticalDawn.String(),
		"nautical_dusk":     r.NauticalDusk.String(),
		"astronomical_dawn": r.AstroDawn.String(),
		"astronomical_dusk": r.AstroDusk.String(),
		"moonrise":          r.Moonrise.String(),
		"moonset":           r.Moonset.String(),
	}
}
