package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=tracking

// store is the slice of the key-value collaborator used by the repos.
type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// entriesRepo persists one entry list as a JSON array under a single key.
type entriesRepo[E Entry] struct {
	key   string
	store store
}

func newEntriesRepo[E Entry](key string, store store) *entriesRepo[E] {
	return &entriesRepo[E]{
		key:   key,
		store: store,
	}
}

// load reads the stored entry list. A missing key or a value that does not
// deserialize is treated as "no stored data" - corrupt records must never
// break startup.
func (r *entriesRepo[E]) load(ctx context.Context) (_ []E, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", r.key))

	stored, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}

	var entries []E
	if err := json.Unmarshal([]byte(stored), &entries); err != nil {
		log.Warnf("stored %s does not deserialize, starting empty: %s", r.key, err)
		return nil, nil
	}
	return entries, nil
}

func (r *entriesRepo[E]) save(ctx context.Context, entries []E) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("key", r.key),
		attribute.Int("entries", len(entries)),
	)

	if entries == nil {
		entries = []E{}
	}
	entriesJson, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", r.key, err)
	}

	if err := r.store.Set(ctx, r.key, string(entriesJson)); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}
