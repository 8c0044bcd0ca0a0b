package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

type Repo struct {
	store store
}

func NewRepo(store store) *Repo {
	return &Repo{store: store}
}

// Load reads the stored profile. An absent or corrupt record yields an
// empty profile rather than an error.
func (r *Repo) Load(ctx context.Context) Profile {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.repo.load")
	defer span.End()

	raw, err := r.store.Get(ctx, kvstore.KeyUserProfile)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			log.Errorf("failed to read user profile: %s", err)
		}
		return Profile{}
	}

	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		log.Warnf("corrupt user profile record, falling back to empty: %s", err)
		return Profile{}
	}
	return p
}

func (r *Repo) Save(ctx context.Context, p Profile) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "profile.repo.save")
	var err error
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profileJson, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	if err = r.store.Set(ctx, kvstore.KeyUserProfile, string(profileJson)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}

	// username is mirrored under its own key for the home screen
	if err = r.store.Set(ctx, kvstore.KeyUsername, p.Username); err != nil {
		return fmt.Errorf("store username: %w", err)
	}

	return nil
}
