package riseset

import (
	"fmt"
	"math"
)

// FormatHour renders a fractional hour as " H:MM am/pm": 12-hour clock,
// hour right-aligned in two columns, minutes rounded. 0 is "12:00 am" and
// 12 is "12:00 pm". Report layouts rely on the fixed width.
func FormatHour(h float64) string {
	mins := int(math.Round(h * 60))
	mins = ((mins % 1440) + 1440) % 1440

	hh, mm := mins/60, mins%60
	suffix := "am"
	if hh >= 12 {
		suffix = "pm"
	}
	hh %= 12
	if hh == 0 {
		hh = 12
	}
	return fmt.Sprintf("%2d:%02d %s", hh, mm, suffix)
}
