package tracking

import (
	"github.com/vstanisic/fittrack/internal/tracking/stats"
)

type CalorieListResponse struct {
	Entries       []CalorieEntry `json:"entries"`
	Total         int            `json:"total"`
	Average       int            `json:"average"`
	Goal          float64        `json:"goal"`
	Remaining     float64        `json:"remaining"`
	ProgressRatio float64        `json:"progressRatio"`
}

type CyclingListResponse struct {
	Entries       []CyclingEntry `json:"entries"`
	Total         float64        `json:"total"`
	Average       float64        `json:"average"`
	Today         float64        `json:"today"`
	Goal          float64        `json:"goal"`
	ProgressRatio float64        `json:"progressRatio"`
}

type WorkoutListResponse struct {
	Entries       []WorkoutEntry `json:"entries"`
	TotalSeconds  int            `json:"totalSeconds"`
	TotalMinutes  int            `json:"totalMinutes"`
	TotalCalories float64        `json:"totalCalories"`
	Goal          float64        `json:"goal"`
	ProgressRatio float64        `json:"progressRatio"`
}

func (handler *Handler) calorieList() CalorieListResponse {
	entries := handler.calories.Entries()
	total := handler.calories.Total()
	goal := handler.goals.Get(KindCalories)
	return CalorieListResponse{
		Entries:       entries,
		Total:         total,
		Average:       stats.AverageRounded(total, len(entries)),
		Goal:          goal,
		Remaining:     stats.Remaining(goal, float64(total)),
		ProgressRatio: stats.ProgressRatio(float64(total), goal),
	}
}

func (handler *Handler) cyclingList() CyclingListResponse {
	entries := handler.cycling.Entries()
	total := handler.cycling.Total()
	today := handler.cycling.TodayDistance()
	goal := handler.goals.Get(KindCycling)
	return CyclingListResponse{
		Entries: entries,
		Total:   total,
		Average: stats.Average(total, len(entries)),
		Today:   today,
		Goal:    goal,
		// the cycling screen tracks progress against today's distance only
		ProgressRatio: stats.ProgressRatio(today, goal),
	}
}

func (handler *Handler) workoutList() WorkoutListResponse {
	entries := handler.workouts.Entries()
	totalSeconds := handler.workouts.TotalSeconds()
	minutes := stats.Minutes(totalSeconds)
	goal := handler.goals.Get(KindWorkout)
	return WorkoutListResponse{
		Entries:       entries,
		TotalSeconds:  totalSeconds,
		TotalMinutes:  minutes,
		TotalCalories: handler.workouts.TotalCalories(),
		Goal:          goal,
		ProgressRatio: stats.ProgressRatio(float64(minutes), goal),
	}
}
