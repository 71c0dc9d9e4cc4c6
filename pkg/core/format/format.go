// Package format renders valuation numbers for dashboards and commentary.
// Every function accepts a nullable value and falls back to "N/A" so
// callers never special-case missing data.
package format

import (
	"fmt"
	"math"
)

const notAvailable = "N/A"

func valid(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

// Currency renders a plain dollar amount, e.g. "$184.37".
func Currency(v *float64) string {
	if !valid(v) {
		return notAvailable
	}
	return fmt.Sprintf("$%.2f", *v)
}

// LargeNumber renders a dollar amount scaled to trillions, billions or
// millions, e.g. "$2.85T", "$12.40B", "$873.10M".
func LargeNumber(v *float64) string {
	if !valid(v) {
		return notAvailable
	}
	abs := math.Abs(*v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.2fT", *v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.2fB", *v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.2fM", *v/1e6)
	default:
		return fmt.Sprintf("$%.2f", *v)
	}
}

// Percent renders a decimal fraction as a percentage, e.g. 0.185 -> "18.50%".
func Percent(v *float64) string {
	if !valid(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

// Ratio renders a valuation multiple, e.g. 24.317 -> "24.32x".
func Ratio(v *float64) string {
	if !valid(v) {
		return notAvailable
	}
	return fmt.Sprintf("%.2fx", *v)
}

// PercentOf is Percent over a plain float, for values known to be present.
func PercentOf(v float64) string {
	return Percent(&v)
}

// RatioOf is Ratio over a plain float, for values known to be present.
func RatioOf(v float64) string {
	return Ratio(&v)
}
