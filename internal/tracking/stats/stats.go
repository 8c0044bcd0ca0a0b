// Package stats holds the pure aggregate computations over entry logs and
// goals. Nothing here is cached or stored - values are recomputed from the
// current entries on every read, so they can never drift from source data.
package stats

import "math"

// Average returns total/count, 0 for an empty log.
func Average(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// AverageRounded is Average rounded to the nearest integer, as displayed
// for calorie intake.
func AverageRounded(total, count int) int {
	return int(math.Round(Average(float64(total), count)))
}

// ProgressRatio returns total/goal, unclamped: values above 1 are meaningful
// and preserved. Callers clamp for display via Percent. The goal store
// guarantees goal > 0.
func ProgressRatio(total, goal float64) float64 {
	return total / goal
}

// Percent returns the ratio as a percentage clamped to [0, 100] for display.
func Percent(ratio float64) float64 {
	p := ratio * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Remaining returns how much is left to the goal, never negative.
func Remaining(goal, total float64) float64 {
	return math.Max(goal-total, 0)
}

// Minutes converts aggregated workout seconds to whole minutes,
// flooring the division.
func Minutes(totalSeconds int) int {
	return totalSeconds / 60
}
