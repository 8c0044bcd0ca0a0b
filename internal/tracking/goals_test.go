package tracking

import (
	"context"
	"errors"
	"testing"

	"github.com/vstanisic/fittrack/internal/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGoalStore_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeMock := NewMockstore(ctrl)

	g := NewGoalStore(storeMock)

	assert.Equal(t, 2000.0, g.Get(KindCalories))
	assert.Equal(t, 10.0, g.Get(KindCycling))
	assert.Equal(t, 30.0, g.Get(KindWorkout))
}

func TestGoalStore_Load(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storeMock := NewMockstore(ctrl)

	storeMock.EXPECT().
		Get(gomock.Any(), kvstore.KeyCalorieGoal).
		Return("2200", nil)
	storeMock.EXPECT().
		Get(gomock.Any(), kvstore.KeyCyclingGoal).
		Return("", kvstore.ErrKeyNotFound)
	storeMock.EXPECT().
		Get(gomock.Any(), kvstore.KeyWorkoutGoal).
		Return("not-a-number", nil)

	g := NewGoalStore(storeMock)
	g.Load(ctx)

	assert.Equal(t, 2200.0, g.Get(KindCalories))
	// absent and corrupt values fall back to defaults
	assert.Equal(t, 10.0, g.Get(KindCycling))
	assert.Equal(t, 30.0, g.Get(KindWorkout))
}

func TestGoalStore_ReloadAfterFullReset(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	g := NewGoalStore(store)
	require.NoError(t, g.Set(ctx, KindCalories, 2500))
	require.NoError(t, g.Set(ctx, KindCycling, 20))

	require.NoError(t, store.MultiRemove(ctx, kvstore.ResetKeys()...))
	g.Load(ctx)

	// reloading after a reset drops the previously set goals
	assert.Equal(t, 2000.0, g.Get(KindCalories))
	assert.Equal(t, 10.0, g.Get(KindCycling))
	assert.Equal(t, 30.0, g.Get(KindWorkout))
}

func TestGoalStore_LoadStorageError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storeMock := NewMockstore(ctrl)

	storeMock.EXPECT().
		Get(gomock.Any(), kvstore.KeyCalorieGoal).
		Return("", errors.New("storage down"))
	storeMock.EXPECT().
		Get(gomock.Any(), kvstore.KeyCyclingGoal).
		Return("12", nil)
	storeMock.EXPECT().
		Get(gomock.Any(), kvstore.KeyWorkoutGoal).
		Return("", kvstore.ErrKeyNotFound)

	g := NewGoalStore(storeMock)
	g.Load(ctx)

	assert.Equal(t, 2000.0, g.Get(KindCalories))
	assert.Equal(t, 12.0, g.Get(KindCycling))
	assert.Equal(t, 30.0, g.Get(KindWorkout))
}

func TestGoalStore_Set(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storeMock := NewMockstore(ctrl)

	storeMock.EXPECT().
		Set(gomock.Any(), kvstore.KeyCyclingGoal, "15.5").
		Return(nil)

	g := NewGoalStore(storeMock)
	require.NoError(t, g.Set(ctx, KindCycling, 15.5))
	assert.Equal(t, 15.5, g.Get(KindCycling))
}

func TestGoalStore_SetInvalid(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storeMock := NewMockstore(ctrl)

	g := NewGoalStore(storeMock)

	for _, goal := range []float64{0, -5} {
		assert.ErrorIs(t, g.Set(ctx, KindCalories, goal), ErrInvalidGoal)
	}
	assert.Equal(t, 2000.0, g.Get(KindCalories))
}

func TestGoalStore_SetSurvivesStorageFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storeMock := NewMockstore(ctrl)

	storeMock.EXPECT().
		Set(gomock.Any(), kvstore.KeyWorkoutGoal, "45").
		Return(errors.New("storage down"))

	g := NewGoalStore(storeMock)
	require.NoError(t, g.Set(ctx, KindWorkout, 45))
	// in-memory goal applied even though the write failed
	assert.Equal(t, 45.0, g.Get(KindWorkout))
}
