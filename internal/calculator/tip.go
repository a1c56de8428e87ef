package calculator

import (
	"math"
	"strconv"
)

const (
	// MinSplit and MaxSplit bound the number of people sharing a bill.
	MinSplit = 1
	MaxSplit = 100
)

// ParseBillAmount parses text as a decimal number.
// Any failure (empty, non-numeric, NaN, infinity) yields 0.
func ParseBillAmount(text string) float64 {
	amount, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}
	return amount
}

// TipPercent converts a slider fraction in [0, 1] to a whole percentage.
func TipPercent(fraction float64) int {
	return int(math.Round(ClampFraction(fraction) * 100))
}

// ClampFraction limits a tip fraction to [0, 1]. NaN becomes 0.
func ClampFraction(fraction float64) float64 {
	switch {
	case math.IsNaN(fraction), fraction < 0:
		return 0
	case fraction > 1:
		return 1
	default:
		return fraction
	}
}

// CalculateTip returns the tip for a bill at a whole-number percentage.
func CalculateTip(billAmount float64, tipPercent int) float64 {
	return billAmount * float64(tipPercent) / 100
}

// CalculateTotalPerPerson computes how much each person owes including tip:
// total_per_person = (bill + bill × tip% / 100) / split
//
// A split below MinSplit is treated as MinSplit so the division is always defined.
func CalculateTotalPerPerson(billAmount float64, splitCount int, tipPercent int) float64 {
	if splitCount < MinSplit {
		splitCount = MinSplit
	}
	tip := CalculateTip(billAmount, tipPercent)
	return (billAmount + tip) / float64(splitCount)
}

// ValidSplit reports whether n people is an allowed split.
func ValidSplit(n int) bool {
	return n >= MinSplit && n <= MaxSplit
}
