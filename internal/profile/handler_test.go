package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vstanisic/fittrack/internal/kvstore"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileTestRouter(t *testing.T) (*mux.Router, *Repo) {
	t.Helper()
	repo := NewRepo(kvstore.NewMemoryStore())
	router := mux.NewRouter()
	NewHandler(repo).SetupRoutes(router)
	return router, repo
}

func TestHandler_SaveAndGet(t *testing.T) {
	router, repo := newProfileTestRouter(t)

	p := Profile{Username: "maya", Height: 170, Weight: 65, UseMetric: true}
	pJson, err := json.Marshal(p)
	require.NoError(t, err)

	req, err := http.NewRequest("PUT", "/fittrack/profile", bytes.NewReader(pJson))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, p, repo.Load(context.Background()))

	req, err = http.NewRequest("GET", "/fittrack/profile", nil)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var loaded Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loaded))
	assert.Equal(t, p, loaded)
}

func TestHandler_SaveRequiresJSONContentType(t *testing.T) {
	router, _ := newProfileTestRouter(t)

	req, err := http.NewRequest("PUT", "/fittrack/profile", bytes.NewBufferString(`{"username":"x"}`))
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BMI(t *testing.T) {
	router, repo := newProfileTestRouter(t)
	require.NoError(t, repo.Save(context.Background(), Profile{
		Username: "maya", Height: 170, Weight: 65, UseMetric: true,
	}))

	req, err := http.NewRequest("GET", "/fittrack/profile/bmi", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp BMIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 22.5, resp.BMI, 0.001)
	assert.Equal(t, CategoryNormal, resp.Category)
}

func TestHandler_BMIWithoutMeasurements(t *testing.T) {
	router, _ := newProfileTestRouter(t)

	req, err := http.NewRequest("GET", "/fittrack/profile/bmi", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
