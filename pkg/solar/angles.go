package solar

import "math"

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

func sinD(deg float64) float64 { return math.Sin(degToRad(deg)) }
func cosD(deg float64) float64 { return math.Cos(degToRad(deg)) }
func tanD(deg float64) float64 { return math.Tan(degToRad(deg)) }

// fixAngle normalizes an angle to [0, 360)
func fixAngle(a float64) float64 { return a - 360.0*math.Floor(a/360.0) }

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
