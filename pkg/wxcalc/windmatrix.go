package wxcalc

import "math"

// WindMatrix holds the wind correction (°F) applied to the heat index by
// THW. Rows are 5 °F temperature bands centred on 50, 55, ... 130 °F;
// columns are 5 mph wind bands centred on 0, 5, ... 40 mph. Wind cools
// below about 110 °F and heats above it.
var WindMatrix = [17][9]int{
	{0, -3, -6, -8, -11, -14, -17, -20, -23},
	{0, -3, -5, -8, -10, -13, -15, -18, -21},
	{0, -2, -5, -7, -9, -12, -14, -16, -19},
	{0, -2, -4, -6, -8, -11, -13, -15, -17},
	{0, -2, -4, -6, -8, -9, -11, -13, -15},
	{0, -2, -3, -5, -7, -8, -10, -11, -13},
	{0, -1, -3, -4, -6, -7, -8, -10, -11},
	{0, -1, -2, -4, -5, -6, -7, -8, -9},
	{0, -1, -2, -3, -4, -5, -6, -7, -8},
	{0, -1, -1, -2, -3, -4, -4, -5, -6},
	{0, 0, -1, -1, -2, -2, -3, -3, -4},
	{0, 0, 0, -1, -1, -1, -1, -2, -2},
	{0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 1, 2, 2},
	{0, 0, 1, 1, 2, 2, 3, 3, 4},
	{0, 1, 1, 2, 3, 4, 4, 5, 6},
	{0, 1, 2, 3, 4, 5, 6, 7, 8},
}

const (
	windMatrixMinTempF = 50.0
	tempBandEdge0      = 52.5
	windBandEdge0      = 2.5
	bandWidth          = 5.0
)

// WindComponent looks up the THW wind correction for a temperature and
// wind speed. Band upper edges are inclusive (52.5 °F is still band 0).
//
// Below 50 °F the correction is not defined and 0 is returned, so THW
// degrades to the plain heat index there. NaN readings also give 0.
func WindComponent(tempF, windMph float64) int {
	if tempF < windMatrixMinTempF || math.IsNaN(tempF) || math.IsNaN(windMph) {
		return 0
	}
	return WindMatrix[band(tempF, tempBandEdge0, len(WindMatrix))][band(windMph, windBandEdge0, len(WindMatrix[0]))]
}

// band returns the index of the first band whose upper edge is >= x, or the
// last band when x is above every edge.
func band(x, firstEdge float64, n int) int {
	for i := 0; i < n-1; i++ {
		if x <= firstEdge+bandWidth*float64(i) {
			return i
		}
	}
	return n - 1
}
