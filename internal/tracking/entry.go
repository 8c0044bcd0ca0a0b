package tracking

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

var (
	ErrInvalidMeasure = errors.New("invalid measure, must be a positive number")
	ErrInvalidGoal    = errors.New("invalid goal, must be a positive number")
)

// Entry is one recorded activity observation. The ID is opaque, assigned at
// creation and used only for deletion.
type Entry interface {
	EntryID() string
}

type CalorieEntry struct {
	ID     string `json:"id"`
	Date   Day    `json:"date"`
	Amount int    `json:"amount"`
}

func (e CalorieEntry) EntryID() string { return e.ID }

type CyclingEntry struct {
	ID       string  `json:"id"`
	Date     Day     `json:"date"`
	Distance float64 `json:"distance"`
}

func (e CyclingEntry) EntryID() string { return e.ID }

type WorkoutEntry struct {
	ID string `json:"id"`
	// Type is one of the workout catalogue types, see workout_types.go.
	Type string `json:"type"`
	// DurationSeconds is the recorded session length.
	DurationSeconds int `json:"duration"`
	// Calories is derived from duration and the type's burn rate at creation
	// time, stored denormalized and never recomputed.
	Calories float64 `json:"calories"`
	Date     Day     `json:"date"`
}

func (e WorkoutEntry) EntryID() string { return e.ID }

func newCalorieEntry(amount int, day Day) (CalorieEntry, error) {
	if amount <= 0 {
		return CalorieEntry{}, ErrInvalidMeasure
	}
	return CalorieEntry{
		ID:     uuid.NewString(),
		Date:   day,
		Amount: amount,
	}, nil
}

func newCyclingEntry(distance float64, day Day) (CyclingEntry, error) {
	if err := checkDistance(distance); err != nil {
		return CyclingEntry{}, err
	}
	return CyclingEntry{
		ID:       uuid.NewString(),
		Date:     day,
		Distance: distance,
	}, nil
}

func newWorkoutEntry(workoutType string, durationSeconds int, day Day) (WorkoutEntry, error) {
	if durationSeconds < 0 {
		return WorkoutEntry{}, ErrInvalidMeasure
	}
	return WorkoutEntry{
		ID:              uuid.NewString(),
		Type:            workoutType,
		DurationSeconds: durationSeconds,
		Calories:        CaloriesBurned(workoutType, durationSeconds),
		Date:            day,
	}, nil
}

func checkDistance(distance float64) error {
	if distance <= 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return ErrInvalidMeasure
	}
	return nil
}
