package format_test

import (
	"testing"

	"pitchly/pkg/core/format"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestCurrency(t *testing.T) {
	if got := format.Currency(floatPtr(184.368)); got != "$184.37" {
		t.Errorf("Currency = %q", got)
	}
	if got := format.Currency(nil); got != "N/A" {
		t.Errorf("Currency(nil) = %q", got)
	}
}

func TestLargeNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{2.85e12, "$2.85T"},
		{12.4e9, "$12.40B"},
		{873.1e6, "$873.10M"},
		{-3.2e9, "$-3.20B"},
		{950000, "$950000.00"},
	}
	for _, c := range cases {
		if got := format.LargeNumber(floatPtr(c.in)); got != c.want {
			t.Errorf("LargeNumber(%v) = %q, want %q", c.in, got, c.want)
		}
	}
	if got := format.LargeNumber(nil); got != "N/A" {
		t.Errorf("LargeNumber(nil) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := format.Percent(floatPtr(0.185)); got != "18.50%" {
		t.Errorf("Percent = %q", got)
	}
	if got := format.PercentOf(-1.0); got != "-100.00%" {
		t.Errorf("PercentOf = %q", got)
	}
	if got := format.Percent(nil); got != "N/A" {
		t.Errorf("Percent(nil) = %q", got)
	}
}

func TestRatio(t *testing.T) {
	if got := format.Ratio(floatPtr(24.317)); got != "24.32x" {
		t.Errorf("Ratio = %q", got)
	}
	if got := format.Ratio(nil); got != "N/A" {
		t.Errorf("Ratio(nil) = %q", got)
	}
}
