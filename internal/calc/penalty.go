package calc

import "math"

// PercentagePenalty accrues a penalty as a monthly percentage of a base
// amount. Any started month counts in full: monthsLate = ceil(days/30).
func PercentagePenalty(base, monthlyRate float64, daysLate int) float64 {
	if daysLate <= 0 || base <= 0 {
		return 0
	}
	monthsLate := math.Ceil(float64(daysLate) / 30)
	return base * monthlyRate * monthsLate
}

// FlatPenalty accrues a fixed daily fine, clamped to maxCap when a cap
// is configured (maxCap <= 0 means uncapped).
func FlatPenalty(dailyRate, maxCap float64, daysLate int) float64 {
	if daysLate <= 0 || dailyRate <= 0 {
		return 0
	}
	penalty := float64(daysLate) * dailyRate
	if maxCap > 0 && penalty > maxCap {
		return maxCap
	}
	return penalty
}
