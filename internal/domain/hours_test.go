package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freezeAt pins the package clock for the duration of a test.
func freezeAt(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

var pubHours = OpeningHours{
	"monday": {{Open: "11:00", Close: "23:00"}},
	"friday": {{Open: "11:00", Close: "01:00"}}, // runs past midnight
}

func TestOpenNow_NoStructuredHours(t *testing.T) {
	assert.Nil(t, OpenNow(nil), "free-text-only hours yield no open/closed guess")
	assert.Nil(t, OpenNow(OpeningHours{}))
}

func TestOpenNow_WithinInterval(t *testing.T) {
	// Monday 2026-03-02 14:00.
	freezeAt(t, time.Date(2026, time.March, 2, 14, 0, 0, 0, time.UTC))

	open := OpenNow(pubHours)
	require.NotNil(t, open)
	assert.True(t, *open)
}

func TestOpenNow_OutsideInterval(t *testing.T) {
	// Monday 09:00, before opening.
	freezeAt(t, time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))

	open := OpenNow(pubHours)
	require.NotNil(t, open)
	assert.False(t, *open)
}

func TestOpenNow_ClosedDay(t *testing.T) {
	// Tuesday has no entry at all.
	freezeAt(t, time.Date(2026, time.March, 3, 14, 0, 0, 0, time.UTC))

	open := OpenNow(pubHours)
	require.NotNil(t, open)
	assert.False(t, *open)
}

func TestOpenNow_PastMidnightSpill(t *testing.T) {
	// Saturday 00:30: Friday's 11:00–01:00 interval is still running.
	freezeAt(t, time.Date(2026, time.March, 7, 0, 30, 0, 0, time.UTC))

	open := OpenNow(pubHours)
	require.NotNil(t, open)
	assert.True(t, *open)

	// Saturday 01:30: it has closed.
	freezeAt(t, time.Date(2026, time.March, 7, 1, 30, 0, 0, time.UTC))
	open = OpenNow(pubHours)
	require.NotNil(t, open)
	assert.False(t, *open)
}

func TestOpenNow_MalformedIntervalSkipped(t *testing.T) {
	freezeAt(t, time.Date(2026, time.March, 2, 14, 0, 0, 0, time.UTC))

	hours := OpeningHours{
		"monday": {{Open: "eleven", Close: "23:00"}},
	}
	open := OpenNow(hours)
	require.NotNil(t, open)
	assert.False(t, *open)
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{" 23:59 ", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := parseClock(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}
