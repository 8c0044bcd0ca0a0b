package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vstanisic/fittrack/internal/kvstore"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_GetSet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(db)
	ctx := context.Background()

	mock.ExpectSet("fittrack::calorieGoal", "2200", 0).SetVal("OK")
	require.NoError(t, store.Set(ctx, kvstore.KeyCalorieGoal, "2200"))

	mock.ExpectGet("fittrack::calorieGoal").SetVal("2200")
	val, err := store.Get(ctx, kvstore.KeyCalorieGoal)
	require.NoError(t, err)
	assert.Equal(t, "2200", val)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetAbsentKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(db)

	mock.ExpectGet("fittrack::cyclingEntries").RedisNil()

	_, err := store.Get(context.Background(), kvstore.KeyCyclingEntries)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_GetError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(db)

	mock.ExpectGet("fittrack::workoutHistory").SetErr(errors.New("connection lost"))

	_, err := store.Get(context.Background(), kvstore.KeyWorkoutHistory)
	require.Error(t, err)
	assert.NotErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestRedisStore_MultiRemove(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(db)

	resetKeys := kvstore.ResetKeys()
	prefixed := make([]string, 0, len(resetKeys))
	for _, key := range resetKeys {
		prefixed = append(prefixed, "fittrack::"+key)
	}
	mock.ExpectDel(prefixed...).SetVal(int64(len(prefixed)))

	require.NoError(t, store.MultiRemove(context.Background(), resetKeys...))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_MultiRemoveNoKeys(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := kvstore.NewRedisStore(db)

	// no DEL issued for an empty key list
	require.NoError(t, store.MultiRemove(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryStore(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, kvstore.KeyDarkMode)
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, kvstore.KeyDarkMode, "true"))
	val, err := store.Get(ctx, kvstore.KeyDarkMode)
	require.NoError(t, err)
	assert.Equal(t, "true", val)

	require.NoError(t, store.Set(ctx, kvstore.KeyUsername, "mira"))
	assert.Equal(t, 2, store.Len())

	require.NoError(t, store.MultiRemove(ctx, kvstore.KeyDarkMode, kvstore.KeyUsername, "neverStored"))
	assert.Equal(t, 0, store.Len())
}
