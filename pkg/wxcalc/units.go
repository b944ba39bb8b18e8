package wxcalc

// FtoC converts Fahrenheit to Celsius.
func FtoC(f float64) float64 { return (f - 32.0) * 5.0 / 9.0 }

// CtoF converts Celsius to Fahrenheit.
func CtoF(c float64) float64 { return c*9.0/5.0 + 32.0 }

// MphToMs converts miles per hour to meters per second.
func MphToMs(mph float64) float64 { return mph * 0.44704 }

// InHgToKPa converts inches of mercury to kilopascals.
func InHgToKPa(inHg float64) float64 { return inHg * 3.38639 }

// WattsToMJHour converts an irradiance in W/m² to MJ/m² over one hour.
func WattsToMJHour(w float64) float64 { return w * 0.0036 }
