package tracking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vstanisic/fittrack/internal/telemetry/metrics"
	"github.com/vstanisic/fittrack/internal/telemetry/tracing"
	"github.com/vstanisic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Handler exposes the per-kind entry logs, goals and the workout timer.
type Handler struct {
	calories *CalorieTracker
	cycling  *CyclingTracker
	workouts *WorkoutTracker
	goals    *GoalStore
	timer    *Timer
	metrics  *metrics.Manager
}

func NewHandler(
	calories *CalorieTracker,
	cycling *CyclingTracker,
	workouts *WorkoutTracker,
	goals *GoalStore,
	timer *Timer,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		calories: calories,
		cycling:  cycling,
		workouts: workouts,
		goals:    goals,
		timer:    timer,
		metrics:  metricsManager,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/fittrack/workout/types", handler.HandleWorkoutTypes).Methods("GET", "OPTIONS").Name("workout-types")
	r.HandleFunc("/fittrack/workout/timer/start", handler.HandleTimerStart).Methods("POST", "OPTIONS").Name("timer-start")
	r.HandleFunc("/fittrack/workout/timer/stop", handler.HandleTimerStop).Methods("POST", "OPTIONS").Name("timer-stop")
	r.HandleFunc("/fittrack/workout/timer", handler.HandleTimerState).Methods("GET", "OPTIONS").Name("timer-state")

	r.HandleFunc("/fittrack/{kind}/entries", handler.HandleList).Methods("GET", "OPTIONS").Name("list-entries")
	r.HandleFunc("/fittrack/{kind}/entries", handler.HandleAdd).Methods("POST", "OPTIONS").Name("add-entry")
	r.HandleFunc("/fittrack/{kind}/entries", handler.HandleClear).Methods("DELETE", "OPTIONS").Name("clear-entries")
	r.HandleFunc("/fittrack/{kind}/entries/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-entry")
	r.HandleFunc("/fittrack/{kind}/goal", handler.HandleGetGoal).Methods("GET", "OPTIONS").Name("get-goal")
	r.HandleFunc("/fittrack/{kind}/goal", handler.HandleSetGoal).Methods("PUT", "OPTIONS").Name("set-goal")
}

func kindFromRequest(r *http.Request) (Kind, bool) {
	switch Kind(mux.Vars(r)["kind"]) {
	case KindCalories:
		return KindCalories, true
	case KindCycling:
		return KindCycling, true
	case KindWorkout:
		return KindWorkout, true
	default:
		return "", false
	}
}

type AddCalorieRequest struct {
	Amount int `json:"amount"`
}

type AddCyclingRequest struct {
	Distance float64 `json:"distance"`
}

type AddWorkoutRequest struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
}

type AddCalorieResponse struct {
	CalorieEntry
	Total     int     `json:"total"`
	Remaining float64 `json:"remaining"`
}

type AddCyclingResponse struct {
	CyclingEntry
	Total float64 `json:"total"`
	Today float64 `json:"today"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "unknown activity kind", http.StatusBadRequest)
		return
	}

	var resp any
	var err error
	switch kind {
	case KindCalories:
		var req AddCalorieRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Tracef("add calorie entry, unmarshal json params: %s", err)
			http.Error(w, "add entry failed", http.StatusBadRequest)
			return
		}
		var entry CalorieEntry
		entry, err = handler.calories.Add(ctx, req.Amount)
		if err == nil {
			total := handler.calories.Total()
			resp = AddCalorieResponse{
				CalorieEntry: entry,
				Total:        total,
				Remaining:    remainingCalories(total, handler.goals.Get(KindCalories)),
			}
		}
	case KindCycling:
		var req AddCyclingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Tracef("add cycling entry, unmarshal json params: %s", err)
			http.Error(w, "add entry failed", http.StatusBadRequest)
			return
		}
		var entry CyclingEntry
		entry, err = handler.cycling.Add(ctx, req.Distance)
		if err == nil {
			resp = AddCyclingResponse{
				CyclingEntry: entry,
				Total:        handler.cycling.Total(),
				Today:        handler.cycling.TodayDistance(),
			}
		}
	case KindWorkout:
		var req AddWorkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Tracef("add workout entry, unmarshal json params: %s", err)
			http.Error(w, "add entry failed", http.StatusBadRequest)
			return
		}
		resp, err = handler.workouts.Record(ctx, req.Type, req.Duration)
	}

	if errors.Is(err, ErrInvalidMeasure) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("failed to add %s entry: %s", kind, err)
		http.Error(w, "error, failed to add entry", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal added %s entry: %s", kind, err)
		http.Error(w, "error, failed to add entry", http.StatusInternalServerError)
		return
	}

	log.Debugf("new %s entry added: %s", kind, respJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.list")
	defer span.End()

	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "unknown activity kind", http.StatusBadRequest)
		return
	}

	var resp any
	switch kind {
	case KindCalories:
		resp = handler.calorieList()
	case KindCycling:
		resp = handler.cyclingList()
	case KindWorkout:
		resp = handler.workoutList()
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal %s entries error: %s", kind, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

type DeleteEntryResponse struct {
	DeletedID string `json:"deletedId"`
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.delete")
	defer span.End()

	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "unknown activity kind", http.StatusBadRequest)
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	// removal is idempotent, deleting an absent id is not an error
	switch kind {
	case KindCalories:
		handler.calories.Remove(ctx, id)
	case KindCycling:
		handler.cycling.Remove(ctx, id)
	case KindWorkout:
		handler.workouts.Remove(ctx, id)
	}

	deleteRespJson, err := json.Marshal(DeleteEntryResponse{DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.clear")
	defer span.End()

	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "unknown activity kind", http.StatusBadRequest)
		return
	}

	switch kind {
	case KindCalories:
		handler.calories.Clear(ctx)
	case KindCycling:
		handler.cycling.Clear(ctx)
	case KindWorkout:
		handler.workouts.Clear(ctx)
	}

	log.Debugf("%s history cleared", kind)
	pkg.WriteJSONResponseOK(w, `{"cleared":true}`)
}

type GoalResponse struct {
	Kind Kind    `json:"kind"`
	Goal float64 `json:"goal"`
}

type SetGoalRequest struct {
	Goal float64 `json:"goal"`
}

func (handler *Handler) HandleGetGoal(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.getGoal")
	defer span.End()

	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "unknown activity kind", http.StatusBadRequest)
		return
	}

	respJson, err := json.Marshal(GoalResponse{Kind: kind, Goal: handler.goals.Get(kind)})
	if err != nil {
		log.Errorf("failed to marshal goal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleSetGoal(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.setGoal")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	kind, ok := kindFromRequest(r)
	if !ok {
		http.Error(w, "unknown activity kind", http.StatusBadRequest)
		return
	}

	var req SetGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set %s goal, unmarshal json params: %s", kind, err)
		http.Error(w, "set goal failed", http.StatusBadRequest)
		return
	}

	if err := handler.goals.Set(ctx, kind, req.Goal); err != nil {
		if errors.Is(err, ErrInvalidGoal) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to set %s goal: %s", kind, err)
		http.Error(w, "error, failed to set goal", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(GoalResponse{Kind: kind, Goal: req.Goal})
	if err != nil {
		log.Errorf("failed to marshal goal response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("%s goal set to %v", kind, req.Goal)
	pkg.WriteJSONResponseOK(w, string(respJson))
}

func (handler *Handler) HandleWorkoutTypes(w http.ResponseWriter, r *http.Request) {
	typesJson, err := json.Marshal(WorkoutTypes)
	if err != nil {
		log.Errorf("failed to marshal workout types: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, typesJson, http.StatusOK)
}

func remainingCalories(total int, goal float64) float64 {
	remaining := goal - float64(total)
	if remaining < 0 {
		return 0
	}
	return remaining
}
