package profile

import (
	"encoding/json"
	"net/http"

	"github.com/vstanisic/fittrack/internal/telemetry/tracing"
	"github.com/vstanisic/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/fittrack/profile", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	r.HandleFunc("/fittrack/profile", handler.HandleSave).Methods("PUT", "OPTIONS").Name("save-profile")
	r.HandleFunc("/fittrack/profile/bmi", handler.HandleBMI).Methods("GET", "OPTIONS").Name("profile-bmi")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	profileJson, err := json.Marshal(handler.repo.Load(ctx))
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusOK)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Tracef("save profile, unmarshal json params: %s", err)
		http.Error(w, "save profile failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Save(ctx, p); err != nil {
		log.Errorf("failed to save profile: %s", err)
		http.Error(w, "error, failed to save profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile saved for %q", p.Username)
	pkg.WriteJSONResponseOK(w, `{"saved":true}`)
}

type BMIResponse struct {
	BMI      float64 `json:"bmi"`
	Category string  `json:"category"`
}

func (handler *Handler) HandleBMI(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.bmi")
	defer span.End()

	p := handler.repo.Load(ctx)
	bmi, ok := p.BMI()
	if !ok {
		http.Error(w, "height and weight not set", http.StatusNotFound)
		return
	}

	respJson, err := json.Marshal(BMIResponse{BMI: bmi, Category: BMICategory(bmi)})
	if err != nil {
		log.Errorf("failed to marshal bmi response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
