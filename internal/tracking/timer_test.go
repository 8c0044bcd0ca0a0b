package tracking

import (
	"context"
	"testing"
	"time"

	"github.com/vstanisic/fittrack/internal/kvstore"
	"github.com/vstanisic/fittrack/internal/telemetry/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestTimer(t *testing.T) (*Timer, *WorkoutTracker) {
	t.Helper()
	workouts := NewWorkoutTracker(kvstore.NewMemoryStore(), metrics.NewTestManager())
	return newTimer(workouts, 5*time.Millisecond), workouts
}

func TestTimer_StartStop(t *testing.T) {
	ctx := context.Background()
	timer, workouts := newTestTimer(t)

	require.NoError(t, timer.Start("Running"))
	assert.True(t, timer.Running())
	assert.Equal(t, "Running", timer.WorkoutType())

	// let a few ticks through
	assert.Eventually(t, func() bool {
		return timer.Elapsed() >= 2
	}, time.Second, time.Millisecond)

	entry, err := timer.Stop(ctx)
	require.NoError(t, err)

	assert.False(t, timer.Running())
	assert.Zero(t, timer.Elapsed())

	assert.Equal(t, "Running", entry.Type)
	assert.GreaterOrEqual(t, entry.DurationSeconds, 2)
	assert.InDelta(t, CaloriesBurned("Running", entry.DurationSeconds), entry.Calories, 0.001)

	require.Equal(t, 1, workouts.Count())
}

func TestTimer_StartUnknownType(t *testing.T) {
	timer, _ := newTestTimer(t)
	assert.ErrorIs(t, timer.Start("Standing Around"), ErrUnknownWorkoutType)
	assert.False(t, timer.Running())
}

func TestTimer_StartWhileRunningIsNoop(t *testing.T) {
	ctx := context.Background()
	timer, _ := newTestTimer(t)

	require.NoError(t, timer.Start("Yoga"))
	// second start does not restart nor switch the type
	require.NoError(t, timer.Start("Boxing"))
	assert.Equal(t, "Yoga", timer.WorkoutType())

	entry, err := timer.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Yoga", entry.Type)
}

func TestTimer_StopWithoutStart(t *testing.T) {
	ctx := context.Background()
	timer, workouts := newTestTimer(t)

	_, err := timer.Stop(ctx)
	assert.ErrorIs(t, err, ErrTimerNotRunning)
	assert.Zero(t, workouts.Count())
}

func TestTimer_CloseDiscardsSession(t *testing.T) {
	timer, workouts := newTestTimer(t)

	require.NoError(t, timer.Start("Squats"))
	timer.Close()

	assert.False(t, timer.Running())
	assert.Zero(t, timer.Elapsed())
	// nothing recorded on teardown
	assert.Zero(t, workouts.Count())

	// closing an idle timer is fine
	timer.Close()
}
