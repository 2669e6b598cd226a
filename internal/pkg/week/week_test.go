package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTime(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"mid year", time.Date(2024, 3, 6, 10, 30, 0, 0, time.Local), "2024-W10"},
		{"monday boundary", time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local), "2024-W10"},
		{"sunday boundary", time.Date(2024, 3, 10, 23, 59, 59, 0, time.Local), "2024-W10"},
		// Jan 1 2023 was a Sunday, it belongs to ISO week 52 of 2022
		{"january in previous iso year", time.Date(2023, 1, 1, 0, 0, 0, 0, time.Local), "2022-W52"},
		// Dec 31 2024 was a Tuesday, it belongs to ISO week 1 of 2025
		{"december in next iso year", time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local), "2025-W01"},
		// 2020 had 53 ISO weeks
		{"week 53", time.Date(2020, 12, 31, 0, 0, 0, 0, time.Local), "2020-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromTime(tt.date))
		})
	}
}

func TestDates(t *testing.T) {
	start, end, err := Dates("2024-W10")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), end)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Sunday, end.Weekday())
}

func TestDates_AcceptedFormats(t *testing.T) {
	for _, s := range []string{"2024-W10", "2024-10", "2024-W7", "2024-7"} {
		_, _, err := Dates(s)
		assert.NoError(t, err, s)
	}
}

func TestDates_InvalidFormat(t *testing.T) {
	invalid := []string{"", "2024", "W10-2024", "2024-W00", "2024-W54", "2024-W123", "24-W10", "2024/W10"}
	for _, s := range invalid {
		_, _, err := Dates(s)
		assert.ErrorIs(t, err, ErrInvalidWeekFormat, s)
	}
}

func TestDates_Week53OnlyInLongYears(t *testing.T) {
	// 2020 has 53 ISO weeks, 2021 does not
	_, _, err := Dates("2020-W53")
	assert.NoError(t, err)

	_, _, err = Dates("2021-W53")
	assert.ErrorIs(t, err, ErrInvalidWeekFormat)
}

func TestRoundTrip(t *testing.T) {
	// Every day of a resolved week must encode back to the same week string,
	// including the year-boundary weeks.
	for _, ws := range []string{"2024-W01", "2024-W52", "2022-W52", "2020-W53", "2025-W01"} {
		start, _, err := Dates(ws)
		require.NoError(t, err)
		for d := 0; d < 7; d++ {
			day := start.AddDate(0, 0, d)
			assert.Equal(t, ws, FromTime(day), "day %s of %s", day, ws)
		}
	}
}
