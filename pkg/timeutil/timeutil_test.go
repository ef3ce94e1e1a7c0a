package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	loc := time.UTC
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, loc)

	start, next := DayBounds(at, loc)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, loc), next)
}

func TestDayBounds_HalfOpen(t *testing.T) {
	loc := time.UTC

	// Midnight belongs to the day that starts, not the one that ends.
	midnight := time.Date(2025, 3, 15, 0, 0, 0, 0, loc)
	start, next := DayBounds(midnight, loc)

	assert.Equal(t, midnight, start)
	assert.Equal(t, midnight.AddDate(0, 0, 1), next)

	// One nanosecond before midnight still counts to the previous day.
	justBefore := midnight.Add(-time.Nanosecond)
	start, next = DayBounds(justBefore, loc)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, midnight, next)
}

func TestDayBounds_Location(t *testing.T) {
	almaty, err := LoadLocation("Asia/Almaty")
	require.NoError(t, err)

	// 22:00 UTC on March 14 is already March 15 in Almaty (UTC+5).
	at := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	start, _ := DayBounds(at, almaty)

	assert.Equal(t, 15, start.In(almaty).Day())
}

func TestIsSameDay(t *testing.T) {
	loc := time.UTC
	a := time.Date(2025, 3, 14, 0, 0, 1, 0, loc)
	b := time.Date(2025, 3, 14, 23, 59, 59, 0, loc)
	c := time.Date(2025, 3, 15, 0, 0, 0, 0, loc)

	assert.True(t, IsSameDay(a, b, loc))
	assert.False(t, IsSameDay(b, c, loc))
}

func TestStartOfWeek(t *testing.T) {
	loc := time.UTC

	// 2025-03-14 is a Friday; the week starts Monday 2025-03-10.
	friday := time.Date(2025, 3, 14, 13, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), StartOfWeek(friday, loc))

	// Sunday still belongs to the week that started the previous Monday.
	sunday := time.Date(2025, 3, 16, 1, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), StartOfWeek(sunday, loc))
}

func TestParseDateRoundTrip(t *testing.T) {
	loc := time.UTC

	parsed, err := ParseDate("2025-03-14", loc)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", FormatDateStr(parsed, loc))

	_, err = ParseDate("14.03.2025", loc)
	assert.Error(t, err)
}
