// Package site describes the observing location shared by the solar,
// rise/set and derived-quantity calculations.
package site

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is returned (wrapped) by Validate when a site field is out of range.
var ErrInvalid = errors.New("invalid site")

var validate = validator.New()

// Site is an observing location. Longitude is east-positive (west is negative)
// and TZOffsetHours is the standard-time offset from UTC, e.g. -7 for MST.
type Site struct {
	Latitude      float64 `validate:"gte=-90,lte=90" json:"latitude" yaml:"latitude"`
	Longitude     float64 `validate:"gte=-180,lte=180" json:"longitude" yaml:"longitude"`
	ElevationFt   float64 `validate:"gte=-1500,lte=30000" json:"elevation_ft" yaml:"elevation"`
	TZOffsetHours int     `validate:"gte=-12,lte=14" json:"tz_offset_hours" yaml:"tz-offset"`
}

// Validate checks that every field of s lies in its documented range.
func (s Site) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s=%v fails %s=%s", ErrInvalid, verrs[0].Field(), verrs[0].Value(), verrs[0].Tag(), verrs[0].Param())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// ElevationMeters returns the site elevation in meters.
func (s Site) ElevationMeters() float64 {
	return s.ElevationFt * 0.3048
}

// String renders the site as "lat,lon".
func (s Site) String() string {
	return fmt.Sprintf("%.4f,%.4f", s.Latitude, s.Longitude)
}

// Location is the site's standard-time zone as a fixed offset from UTC.
func (s Site) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", s.TZOffsetHours), s.TZOffsetHours*3600)
}

// LocalTime converts t to local standard time at the site.
func (s Site) LocalTime(t time.Time) time.Time {
	return t.In(s.Location())
}
