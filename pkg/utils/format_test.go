package utils

import "testing"

func TestCrores(t *testing.T) {
	cases := []struct {
		amount float64
		want   float64
	}{
		{15_000_000_000, 1500},
		{8_560_000_000, 856},
		{123_456_789, 12.3},
		{0, 0},
	}
	for _, tc := range cases {
		if got := Crores(tc.amount); got != tc.want {
			t.Fatalf("Crores(%v) = %v want %v", tc.amount, got, tc.want)
		}
	}
}

func TestFormatCrores(t *testing.T) {
	if got := FormatCrores(15_000_000_000); got != "₹1500.0Cr" {
		t.Fatalf("unexpected format: %s", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(1, 4); got != "25.0%" {
		t.Fatalf("unexpected percent: %s", got)
	}
	if got := FormatPercent(1, 0); got != "0.0%" {
		t.Fatalf("expected zero guard, got %s", got)
	}
}
