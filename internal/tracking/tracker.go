package tracking

import (
	"context"
	"sync"
	"time"

	"github.com/vstanisic/fittrack/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
	"github.com/prometheus/client_golang/prometheus"
)

// tracker owns one activity log and mirrors every mutation to storage.
// All mutations run under one mutex, standing in for the single UI event
// queue the entries originally came from. Writes to storage are
// fire-and-forget: a failed write is logged and counted but never rolls
// back the in-memory change.
type tracker[E Entry] struct {
	mu      sync.Mutex
	log     *Log[E]
	repo    *entriesRepo[E]
	kind    Kind
	metrics *metrics.Manager
	now     func() time.Time
}

// Load replaces in-memory entries with the stored ones; called once on
// startup. A storage read failure leaves the log empty and the service up.
func (t *tracker[E]) Load(ctx context.Context) {
	entries, err := t.repo.load(ctx)
	if err != nil {
		log.Errorf("load %s entries: %s", t.kind, err)
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.log.replace(entries)
}

// Remove deletes the entry with the given id, idempotently.
func (t *tracker[E]) Remove(ctx context.Context, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.log.remove(id) {
		t.persistLocked(ctx)
	}
}

// Clear empties the log unconditionally.
func (t *tracker[E]) Clear(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.log.clear()
	t.persistLocked(ctx)
}

func (t *tracker[E]) Entries() []E {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.all()
}

func (t *tracker[E]) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.len()
}

func (t *tracker[E]) Today() Day {
	return DayOf(t.now())
}

func (t *tracker[E]) persistLocked(ctx context.Context) {
	if err := t.repo.save(ctx, t.log.entries); err != nil {
		log.Errorf("persist %s entries: %s", t.kind, err)
		t.metrics.CounterPersistenceFailures.Inc()
	}
}

func (t *tracker[E]) countEntryAdded() {
	t.metrics.CounterEntriesAdded.With(prometheus.Labels{"kind": string(t.kind)}).Inc()
}

type CalorieTracker struct {
	tracker[CalorieEntry]
	calories CalorieLog
}

func NewCalorieTracker(store store, m *metrics.Manager) *CalorieTracker {
	t := &CalorieTracker{}
	t.tracker = tracker[CalorieEntry]{
		log:     &t.calories.Log,
		repo:    newEntriesRepo[CalorieEntry](KindCalories.entriesKey(), store),
		kind:    KindCalories,
		metrics: m,
		now:     time.Now,
	}
	return t
}

// Add records one calorie intake for today. Same-day intakes stay
// independent entries.
func (t *CalorieTracker) Add(ctx context.Context, amount int) (CalorieEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, err := t.calories.add(amount, t.Today())
	if err != nil {
		return CalorieEntry{}, err
	}

	t.countEntryAdded()
	t.persistLocked(ctx)
	return entry, nil
}

func (t *CalorieTracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calories.total()
}

type CyclingTracker struct {
	tracker[CyclingEntry]
	rides CyclingLog
}

func NewCyclingTracker(store store, m *metrics.Manager) *CyclingTracker {
	t := &CyclingTracker{}
	t.tracker = tracker[CyclingEntry]{
		log:     &t.rides.Log,
		repo:    newEntriesRepo[CyclingEntry](KindCycling.entriesKey(), store),
		kind:    KindCycling,
		metrics: m,
		now:     time.Now,
	}
	return t
}

// Add records ridden kilometers for today. If today already has an entry,
// its distance is incremented in place instead of appending.
func (t *CyclingTracker) Add(ctx context.Context, distance float64) (CyclingEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, err := t.rides.add(distance, t.Today())
	if err != nil {
		return CyclingEntry{}, err
	}

	t.countEntryAdded()
	t.persistLocked(ctx)
	return entry, nil
}

func (t *CyclingTracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rides.total()
}

func (t *CyclingTracker) TodayDistance() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rides.distanceOn(t.Today())
}

type WorkoutTracker struct {
	tracker[WorkoutEntry]
	sessions WorkoutLog
}

func NewWorkoutTracker(store store, m *metrics.Manager) *WorkoutTracker {
	t := &WorkoutTracker{}
	t.tracker = tracker[WorkoutEntry]{
		log:     &t.sessions.Log,
		repo:    newEntriesRepo[WorkoutEntry](KindWorkout.entriesKey(), store),
		kind:    KindWorkout,
		metrics: m,
		now:     time.Now,
	}
	return t
}

// Record stores one finished workout session, newest first. Calories are
// derived from the duration and the type's burn rate at this point and
// never recomputed.
func (t *WorkoutTracker) Record(ctx context.Context, workoutType string, durationSeconds int) (WorkoutEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, err := t.sessions.add(workoutType, durationSeconds, t.Today())
	if err != nil {
		return WorkoutEntry{}, err
	}

	t.countEntryAdded()
	t.persistLocked(ctx)
	return entry, nil
}

func (t *WorkoutTracker) TotalSeconds() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions.totalSeconds()
}

func (t *WorkoutTracker) TotalCalories() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sessions.totalCalories()
}
