package kvstore

import (
	"context"
	"errors"
)

// Storage keys. Entry lists are JSON arrays, goals are decimal strings,
// darkMode is "true"/"false", userProfile is a JSON object.
const (
	KeyCalorieEntries = "calorieEntries"
	KeyCalorieGoal    = "calorieGoal"
	KeyCyclingEntries = "cyclingEntries"
	KeyCyclingGoal    = "cyclingGoal"
	KeyWorkoutHistory = "workoutHistory"
	KeyWorkoutGoal    = "workoutGoal"
	KeyStepGoal       = "stepGoal"
	KeyStepCount      = "stepCount"
	KeyDarkMode       = "darkMode"
	KeyUserProfile    = "userProfile"
	KeyUsername       = "username"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is the persistent key-value collaborator. Values are opaque strings,
// there are no transactional guarantees across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// ResetKeys returns the keys removed by the full-reset operation.
func ResetKeys() []string {
	return []string{
		KeyCalorieEntries,
		KeyCyclingEntries,
		KeyWorkoutHistory,
		KeyCalorieGoal,
		KeyCyclingGoal,
		KeyWorkoutGoal,
		KeyStepGoal,
		KeyStepCount,
		KeyDarkMode,
	}
}
