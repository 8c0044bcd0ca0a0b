package settings

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/telemetry/metrics"
	"github.com/vstanisic/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// Service keeps the app preferences and owns the full data reset.
type Service struct {
	store   store
	metrics *metrics.Manager
}

func NewService(store store, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:   store,
		metrics: metricsManager,
	}
}

// DarkMode reports whether the dark theme is enabled. Absent or corrupt
// records read as disabled.
func (s *Service) DarkMode(ctx context.Context) bool {
	raw, err := s.store.Get(ctx, kvstore.KeyDarkMode)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("failed to read dark mode setting: %s", err)
		}
		return false
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		log.Warnf("corrupt dark mode record %q, falling back to false", raw)
		return false
	}
	return enabled
}

func (s *Service) SetDarkMode(ctx context.Context, enabled bool) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "settings.setDarkMode")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err = s.store.Set(ctx, kvstore.KeyDarkMode, strconv.FormatBool(enabled)); err != nil {
		return fmt.Errorf("store dark mode: %w", err)
	}
	return nil
}

// ResetAll wipes the tracked activity data, goals and counters.
// Profile and theme preference survive the reset.
func (s *Service) ResetAll(ctx context.Context) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "settings.resetAll")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err = s.store.MultiRemove(ctx, kvstore.ResetKeys()...); err != nil {
		return fmt.Errorf("reset all: %w", err)
	}

	s.metrics.CounterFullResets.Inc()
	log.Warnf("full data reset done")
	return nil
}
