package tracking

import "math"

// WorkoutType is a catalogue exercise with a fixed calories-per-minute burn rate.
type WorkoutType struct {
	Label          string  `json:"label"`
	Value          string  `json:"value"`
	CaloriesPerMin float64 `json:"caloriesPerMin"`
}

// WorkoutTypes is the fixed exercise catalogue, in presentation order.
var WorkoutTypes = []WorkoutType{
	{Label: "🏃 Running", Value: "Running", CaloriesPerMin: 10},
	{Label: "🏋️ Bench Press", Value: "Bench Press", CaloriesPerMin: 6},
	{Label: "🧘 Yoga", Value: "Yoga", CaloriesPerMin: 4},
	{Label: "🤸 Jump Rope", Value: "Jump Rope", CaloriesPerMin: 12},
	{Label: "🦵 Squats", Value: "Squats", CaloriesPerMin: 8},
	{Label: "🚴 Cycling", Value: "Cycling", CaloriesPerMin: 9},
	{Label: "🏊 Swimming", Value: "Swimming", CaloriesPerMin: 11},
	{Label: "🧍 Plank", Value: "Plank", CaloriesPerMin: 5},
	{Label: "🧎 Lunges", Value: "Lunges", CaloriesPerMin: 7},
	{Label: "🥊 Boxing", Value: "Boxing", CaloriesPerMin: 13},
}

// CaloriesPerMinute returns the burn rate for the given type,
// 0 for an unknown type.
func CaloriesPerMinute(workoutType string) float64 {
	for _, wt := range WorkoutTypes {
		if wt.Value == workoutType {
			return wt.CaloriesPerMin
		}
	}
	return 0
}

func KnownWorkoutType(workoutType string) bool {
	for _, wt := range WorkoutTypes {
		if wt.Value == workoutType {
			return true
		}
	}
	return false
}

// CaloriesBurned computes duration/60 * rate, rounded to 2 decimal places.
func CaloriesBurned(workoutType string, durationSeconds int) float64 {
	calories := float64(durationSeconds) / 60 * CaloriesPerMinute(workoutType)
	return math.Round(calories*100) / 100
}
