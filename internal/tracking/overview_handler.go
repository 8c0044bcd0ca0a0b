package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/telemetry/tracing"
	"github.com/vstanisic/fittrack/internal/tracking/achievements"
	"github.com/vstanisic/fittrack/internal/tracking/stats"
	"github.com/vstanisic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// OverviewHandler serves the cross-activity screens: overall progress
// with achievements, and the home dashboard.
type OverviewHandler struct {
	calories *CalorieTracker
	cycling  *CyclingTracker
	workouts *WorkoutTracker
	goals    *GoalStore
	store    store
}

func NewOverviewHandler(
	calories *CalorieTracker,
	cycling *CyclingTracker,
	workouts *WorkoutTracker,
	goals *GoalStore,
	store store,
) *OverviewHandler {
	return &OverviewHandler{
		calories: calories,
		cycling:  cycling,
		workouts: workouts,
		goals:    goals,
		store:    store,
	}
}

func (handler *OverviewHandler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/fittrack/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")
	r.HandleFunc("/fittrack/home", handler.HandleHome).Methods("GET", "OPTIONS").Name("home")
}

type ProgressSection struct {
	Total         float64 `json:"total"`
	Goal          float64 `json:"goal"`
	ProgressRatio float64 `json:"progressRatio"`
	Percent       float64 `json:"percent"`
}

type ProgressResponse struct {
	Calories     ProgressSection      `json:"calories"`
	Cycling      ProgressSection      `json:"cycling"`
	Workout      ProgressSection      `json:"workout"`
	Achievements []achievements.Group `json:"achievements"`
}

type HomeResponse struct {
	Username       string  `json:"username"`
	StepCount      int     `json:"stepCount"`
	Calories       int     `json:"calories"`
	CyclingKm      float64 `json:"cyclingKm"`
	WorkoutMinutes int     `json:"workoutMinutes"`
}

func (handler *OverviewHandler) metrics() achievements.Metrics {
	return achievements.Metrics{
		Calories:       handler.calories.Total(),
		CyclingKm:      handler.cycling.Total(),
		WorkoutMinutes: stats.Minutes(handler.workouts.TotalSeconds()),
	}
}

func progressSection(total, goal float64) ProgressSection {
	ratio := stats.ProgressRatio(total, goal)
	return ProgressSection{
		Total:         total,
		Goal:          goal,
		ProgressRatio: ratio,
		Percent:       stats.Percent(ratio),
	}
}

func (handler *OverviewHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.overview.progress")
	defer span.End()

	m := handler.metrics()
	resp := ProgressResponse{
		Calories:     progressSection(float64(m.Calories), handler.goals.Get(KindCalories)),
		Cycling:      progressSection(m.CyclingKm, handler.goals.Get(KindCycling)),
		Workout:      progressSection(float64(m.WorkoutMinutes), handler.goals.Get(KindWorkout)),
		Achievements: achievements.Grouped(m),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal progress response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *OverviewHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.overview.home")
	defer span.End()

	m := handler.metrics()
	resp := HomeResponse{
		Username:       handler.username(ctx),
		StepCount:      handler.stepCount(ctx),
		Calories:       m.Calories,
		CyclingKm:      m.CyclingKm,
		WorkoutMinutes: m.WorkoutMinutes,
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal home response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *OverviewHandler) username(ctx context.Context) string {
	username, err := handler.store.Get(ctx, kvstore.KeyUsername)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("failed to read username: %s", err)
		}
		return ""
	}
	return username
}

func (handler *OverviewHandler) stepCount(ctx context.Context) int {
	raw, err := handler.store.Get(ctx, kvstore.KeyStepCount)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("failed to read step count: %s", err)
		}
		return 0
	}
	steps, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("corrupt step count %q, falling back to 0", raw)
		return 0
	}
	return steps
}
