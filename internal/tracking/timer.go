package tracking

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrTimerNotRunning    = errors.New("timer not running")
	ErrUnknownWorkoutType = errors.New("unknown workout type")
)

// Timer counts elapsed seconds for one workout session. Stop records the
// session through the workout tracker and resets the counter. The ticking
// goroutine is stopped on every exit path: explicit stop and Close on
// shutdown.
type Timer struct {
	mu          sync.Mutex
	workouts    *WorkoutTracker
	interval    time.Duration
	running     bool
	seconds     int
	workoutType string
	stop        chan struct{}
	done        chan struct{}
}

func NewTimer(workouts *WorkoutTracker) *Timer {
	return newTimer(workouts, time.Second)
}

func newTimer(workouts *WorkoutTracker, interval time.Duration) *Timer {
	return &Timer{
		workouts: workouts,
		interval: interval,
	}
}

// Start begins counting for the given workout type. Starting an already
// running timer is a no-op: the counter keeps going and the originally
// selected type stays.
func (t *Timer) Start(workoutType string) error {
	if !KnownWorkoutType(workoutType) {
		return ErrUnknownWorkoutType
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return nil
	}

	t.running = true
	t.workoutType = workoutType
	t.stop = make(chan struct{})
	t.done = make(chan struct{})
	go t.run(t.stop, t.done)

	return nil
}

func (t *Timer) run(stop, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.mu.Lock()
			t.seconds++
			t.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Stop halts the counter, records the session and resets to 0.
func (t *Timer) Stop(ctx context.Context) (WorkoutEntry, error) {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return WorkoutEntry{}, ErrTimerNotRunning
	}
	t.running = false
	close(t.stop)
	done := t.done
	t.mu.Unlock()

	<-done

	t.mu.Lock()
	seconds := t.seconds
	workoutType := t.workoutType
	t.seconds = 0
	t.mu.Unlock()

	return t.workouts.Record(ctx, workoutType, seconds)
}

// Close cancels a running session without recording it, for teardown paths
// where there is no one left to show the result to.
func (t *Timer) Close() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	t.seconds = 0
	close(t.stop)
	done := t.done
	t.mu.Unlock()

	<-done
}

func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seconds
}

func (t *Timer) WorkoutType() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.workoutType
}
