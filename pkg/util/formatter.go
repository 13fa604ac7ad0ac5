package util

import (
	"fmt"
	"math"
	"strings"
)

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%7.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%7.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%7.3f Hz ", freq)
	}
}

// FormatPunchValue writes v the way punch files do, e.g. 5.260000000D+03.
func FormatPunchValue(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("%g", v)
	}
	return strings.Replace(fmt.Sprintf("%.9E", v), "E", "D", 1)
}

func FormatMagnitude(value float64) string {
	abs := math.Abs(value)
	if abs >= 1000 || (abs < 0.001 && value != 0) {
		return fmt.Sprintf("%10.3e", value) // "  1.000e+03" or " -5.430e-05"
	}
	return fmt.Sprintf("%10.4g", value) // "     732.5"
}
