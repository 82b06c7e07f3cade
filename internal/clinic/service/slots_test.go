package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotTimes(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	starts := slotTimes(day, time.UTC, 9, 20, 45*time.Minute)

	// 09:00 through 19:30 in 45-minute steps.
	require.Len(t, starts, 15)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), starts[0])
	assert.Equal(t, time.Date(2024, 1, 1, 9, 45, 0, 0, time.UTC), starts[1])
	assert.Equal(t, time.Date(2024, 1, 1, 19, 30, 0, 0, time.UTC), starts[len(starts)-1])
}

func TestSlotTimes_Deterministic(t *testing.T) {
	day := time.Date(2024, 6, 15, 13, 37, 0, 0, time.UTC)

	first := slotTimes(day, time.UTC, 9, 20, 45*time.Minute)
	second := slotTimes(day, time.UTC, 9, 20, 45*time.Minute)

	assert.Equal(t, first, second)
}

func TestSlotTimes_WestOfUTCKeepsRequestedDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// A date query parses to midnight UTC; the board must still cover that
	// calendar day, not the prior evening in the display zone.
	day, err := time.Parse("2006-01-02", "2024-01-15")
	require.NoError(t, err)

	starts := slotTimes(day, loc, 9, 20, 45*time.Minute)
	require.Len(t, starts, 15)

	for _, start := range starts {
		y, m, d := start.In(loc).Date()
		assert.Equal(t, 2024, y)
		assert.Equal(t, time.January, m)
		assert.Equal(t, 15, d, "slot %v rendered outside the requested day", start)
	}
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, loc), starts[0])
}

func TestSlotLabelRoundTrip(t *testing.T) {
	locations := []string{"UTC", "America/New_York", "Asia/Kolkata"}

	for _, name := range locations {
		t.Run(name, func(t *testing.T) {
			loc, err := time.LoadLocation(name)
			require.NoError(t, err)

			day := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
			for _, start := range slotTimes(day, loc, 9, 20, 45*time.Minute) {
				label := SlotLabel(start, loc)

				parsed, err := SlotTime(day, label, loc)
				require.NoError(t, err)

				assert.True(t, parsed.Equal(start), "label %q: got %v want %v", label, parsed, start)
				assert.Equal(t, label, SlotLabel(parsed, loc))
			}
		})
	}
}

func TestSlotLabelFormat(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, "09:00 AM", SlotLabel(time.Date(2024, 1, 1, 9, 0, 0, 0, loc), loc))
	assert.Equal(t, "07:30 PM", SlotLabel(time.Date(2024, 1, 1, 19, 30, 0, 0, loc), loc))
}

func TestSlotTime_BadLabel(t *testing.T) {
	_, err := SlotTime(time.Now(), "25:99", time.UTC)
	assert.Error(t, err)
}
