package util

import "math"

// RoundTo rounds x half away from zero to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// Percent returns part/whole as a percentage. A zero whole yields 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
