package tracking

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_ParseAndString(t *testing.T) {
	day, err := ParseDay("05/01/2026")
	require.NoError(t, err)
	assert.Equal(t, Day{Year: 2026, Month: time.January, Date: 5}, day)
	assert.Equal(t, "05/01/2026", day.String())

	_, err = ParseDay("2026-01-05")
	assert.Error(t, err)
	_, err = ParseDay("32/01/2026")
	assert.Error(t, err)
}

func TestDay_Of(t *testing.T) {
	moment := time.Date(2026, time.August, 31, 23, 59, 59, 0, time.UTC)
	day := DayOf(moment)
	assert.Equal(t, Day{Year: 2026, Month: time.August, Date: 31}, day)
	assert.False(t, day.IsZero())
	assert.True(t, Day{}.IsZero())

	// two moments on the same calendar day key equally
	laterSameDay := time.Date(2026, time.August, 31, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, day, DayOf(laterSameDay))
}

func TestDay_JSON(t *testing.T) {
	day := Day{Year: 2026, Month: time.March, Date: 7}

	dayJson, err := json.Marshal(day)
	require.NoError(t, err)
	assert.Equal(t, `"07/03/2026"`, string(dayJson))

	var parsed Day
	require.NoError(t, json.Unmarshal(dayJson, &parsed))
	assert.Equal(t, day, parsed)

	var invalid Day
	assert.Error(t, json.Unmarshal([]byte(`"not-a-day"`), &invalid))
}
