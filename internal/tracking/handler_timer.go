package tracking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vstanisic/fittrack/internal/telemetry/tracing"
	"github.com/vstanisic/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

type TimerStartRequest struct {
	Type string `json:"type"`
}

type TimerStateResponse struct {
	Running        bool   `json:"running"`
	ElapsedSeconds int    `json:"elapsedSeconds"`
	WorkoutType    string `json:"workoutType,omitempty"`
}

func (handler *Handler) HandleTimerStart(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.timerStart")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req TimerStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("start timer, unmarshal json params: %s", err)
		http.Error(w, "start timer failed", http.StatusBadRequest)
		return
	}

	if err := handler.timer.Start(req.Type); err != nil {
		if errors.Is(err, ErrUnknownWorkoutType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to start workout timer: %s", err)
		http.Error(w, "error, failed to start timer", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout timer started: %s", req.Type)
	handler.writeTimerState(w)
}

func (handler *Handler) HandleTimerStop(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tracking.timerStop")
	defer span.End()

	entry, err := handler.timer.Stop(ctx)
	if err != nil {
		if errors.Is(err, ErrTimerNotRunning) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		log.Errorf("failed to stop workout timer: %s", err)
		http.Error(w, "error, failed to stop timer", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsRecorded.Inc()

	entryJson, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("failed to marshal recorded workout: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout timer stopped, recorded: %s", entryJson)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entryJson, http.StatusCreated)
}

func (handler *Handler) HandleTimerState(w http.ResponseWriter, r *http.Request) {
	handler.writeTimerState(w)
}

func (handler *Handler) writeTimerState(w http.ResponseWriter) {
	stateJson, err := json.Marshal(TimerStateResponse{
		Running:        handler.timer.Running(),
		ElapsedSeconds: handler.timer.Elapsed(),
		WorkoutType:    handler.timer.WorkoutType(),
	})
	if err != nil {
		log.Errorf("failed to marshal timer state: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, stateJson, http.StatusOK)
}
