package tracking

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/vstanisic/fittrack/internal/kvstore"

	log "github.com/sirupsen/logrus"
)

// Kind is one tracked activity kind.
type Kind string

const (
	KindCalories Kind = "calories"
	KindCycling  Kind = "cycling"
	KindWorkout  Kind = "workout"
)

func Kinds() []Kind {
	return []Kind{KindCalories, KindCycling, KindWorkout}
}

// DefaultGoal is the target used when no stored goal exists or the stored
// value fails to parse: calories in kcal, cycling in km, workout in minutes.
func (k Kind) DefaultGoal() float64 {
	switch k {
	case KindCalories:
		return 2000
	case KindCycling:
		return 10
	case KindWorkout:
		return 30
	default:
		return 0
	}
}

func (k Kind) goalKey() string {
	switch k {
	case KindCalories:
		return kvstore.KeyCalorieGoal
	case KindCycling:
		return kvstore.KeyCyclingGoal
	case KindWorkout:
		return kvstore.KeyWorkoutGoal
	default:
		return ""
	}
}

func (k Kind) entriesKey() string {
	switch k {
	case KindCalories:
		return kvstore.KeyCalorieEntries
	case KindCycling:
		return kvstore.KeyCyclingEntries
	case KindWorkout:
		return kvstore.KeyWorkoutHistory
	default:
		return ""
	}
}

// GoalStore holds one numeric target per activity kind, persisted as its
// decimal-string representation.
type GoalStore struct {
	mu    sync.Mutex
	store store
	goals map[Kind]float64
}

func NewGoalStore(store store) *GoalStore {
	return &GoalStore{
		store: store,
		goals: make(map[Kind]float64),
	}
}

// Load rebuilds the in-memory goals from storage, dropping any previously
// held values; kinds with absent or unparseable records fall back to their
// default. Called on startup and after a full reset.
func (g *GoalStore) Load(ctx context.Context) {
	goals := make(map[Kind]float64)
	for _, kind := range Kinds() {
		stored, err := g.store.Get(ctx, kind.goalKey())
		if err != nil {
			if !errors.Is(err, kvstore.ErrKeyNotFound) {
				log.Errorf("load %s goal: %s", kind, err)
			}
			continue
		}
		goal, err := strconv.ParseFloat(stored, 64)
		if err != nil || goal <= 0 || math.IsInf(goal, 0) {
			log.Warnf("stored %s goal [%s] invalid, using default", kind, stored)
			continue
		}
		goals[kind] = goal
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.goals = goals
}

func (g *GoalStore) Get(kind Kind) float64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	if goal, ok := g.goals[kind]; ok {
		return goal
	}
	return kind.DefaultGoal()
}

// Set replaces the goal for the given kind. The in-memory value is always
// applied; the write to storage is best-effort.
func (g *GoalStore) Set(ctx context.Context, kind Kind, value float64) error {
	if value <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return ErrInvalidGoal
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.goals[kind] = value

	stored := strconv.FormatFloat(value, 'f', -1, 64)
	if err := g.store.Set(ctx, kind.goalKey(), stored); err != nil {
		log.Errorf("persist %s goal: %s", kind, err)
	}
	return nil
}
