package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vstanisic/fittrack/internal/telemetry/tracing"
	"github.com/vstanisic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	// onReset runs after a successful full reset so in-memory state
	// can be reloaded from the wiped store
	onReset func(ctx context.Context)
}

func NewHandler(service *Service, onReset func(ctx context.Context)) *Handler {
	return &Handler{
		service: service,
		onReset: onReset,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/fittrack/settings/darkmode", handler.HandleGetDarkMode).Methods("GET", "OPTIONS").Name("get-dark-mode")
	r.HandleFunc("/fittrack/settings/darkmode", handler.HandleSetDarkMode).Methods("PUT", "OPTIONS").Name("set-dark-mode")
	r.HandleFunc("/fittrack/settings/reset", handler.HandleResetAll).Methods("POST", "OPTIONS").Name("reset-all")
}

type DarkModeResponse struct {
	DarkMode bool `json:"darkMode"`
}

func (handler *Handler) HandleGetDarkMode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.getDarkMode")
	defer span.End()

	respJson, err := json.Marshal(DarkModeResponse{DarkMode: handler.service.DarkMode(ctx)})
	if err != nil {
		log.Errorf("failed to marshal dark mode response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleSetDarkMode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.setDarkMode")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req DarkModeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set dark mode, unmarshal json params: %s", err)
		http.Error(w, "set dark mode failed", http.StatusBadRequest)
		return
	}

	if err := handler.service.SetDarkMode(ctx, req.DarkMode); err != nil {
		log.Errorf("failed to set dark mode: %s", err)
		http.Error(w, "error, failed to set dark mode", http.StatusInternalServerError)
		return
	}

	log.Debugf("dark mode set to %t", req.DarkMode)
	pkg.WriteJSONResponseOK(w, `{"saved":true}`)
}

func (handler *Handler) HandleResetAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.resetAll")
	defer span.End()

	if err := handler.service.ResetAll(ctx); err != nil {
		log.Errorf("failed to reset data: %s", err)
		http.Error(w, "error, failed to reset data", http.StatusInternalServerError)
		return
	}

	if handler.onReset != nil {
		handler.onReset(ctx)
	}

	pkg.WriteJSONResponseOK(w, `{"reset":true}`)
}
