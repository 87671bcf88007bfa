package utils

import (
	"fmt"
	"math"
)

// CroreDivisor converts raw rupee amounts into crores.
const CroreDivisor = 10_000_000

// Crores scales a raw amount to crores rounded to one decimal.
func Crores(amount float64) float64 {
	return math.Round(amount/CroreDivisor*10) / 10
}

// FormatCrores renders a raw amount as "₹<crores>Cr".
func FormatCrores(amount float64) string {
	return fmt.Sprintf("₹%.1fCr", Crores(amount))
}

// FormatPercent renders part/whole as a percentage with one decimal.
func FormatPercent(part, whole float64) string {
	if whole == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", part/whole*100)
}
