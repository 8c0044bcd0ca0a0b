package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_DarkMode(t *testing.T) {
	service := NewService(kvstore.NewMemoryStore(), metrics.NewTestManager())
	router := mux.NewRouter()
	NewHandler(service, nil).SetupRoutes(router)

	req, err := http.NewRequest("GET", "/fittrack/settings/darkmode", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DarkModeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.DarkMode)

	req, err = http.NewRequest("PUT", "/fittrack/settings/darkmode", bytes.NewBufferString(`{"darkMode":true}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, service.DarkMode(context.Background()))
}

func TestHandler_ResetAll(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	service := NewService(store, metrics.NewTestManager())

	onResetCalled := false
	router := mux.NewRouter()
	NewHandler(service, func(ctx context.Context) {
		onResetCalled = true
	}).SetupRoutes(router)

	require.NoError(t, store.Set(ctx, kvstore.KeyCalorieEntries, `[]`))
	require.NoError(t, store.Set(ctx, kvstore.KeyCalorieGoal, "2500"))

	req, err := http.NewRequest("POST", "/fittrack/settings/reset", nil)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, onResetCalled)
	assert.Zero(t, store.Len())
}
