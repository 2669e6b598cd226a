// Package week resolves ISO-8601 week strings ("2024-W10") to concrete date
// ranges and back. Both directions share the same week-numbering algorithm so
// the Dec/Jan boundary weeks cannot drift between encode and decode.
package week

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var ErrInvalidWeekFormat = errors.New("invalid week format, expected YYYY-WNN")

// Accepts "2024-W07", "2024-W7" and "2024-07".
var weekRegex = regexp.MustCompile(`^(\d{4})-W?(\d{1,2})$`)

// FromTime returns the ISO week string ("YYYY-WW") containing t.
// The ISO year can differ from the calendar year around Dec/Jan.
func FromTime(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, wk)
}

// Dates resolves an ISO week string to its Monday and Sunday, both at local
// midnight in t's location semantics (time.Local). Callers that need an
// inclusive end-of-day must add 23:59:59.999 themselves.
func Dates(week string) (start, end time.Time, err error) {
	m := weekRegex.FindStringSubmatch(week)
	if m == nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekFormat, week)
	}

	year, _ := strconv.Atoi(m[1])
	num, _ := strconv.Atoi(m[2])
	if num < 1 || num > weeksInYear(year) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidWeekFormat, week)
	}

	// Jan 4 is always inside ISO week 1 (Thursday rule).
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.Local)
	week1Monday := mondayOf(jan4)

	start = week1Monday.AddDate(0, 0, (num-1)*7)
	end = startOfDay(start.AddDate(0, 0, 6))
	return start, end, nil
}

// weeksInYear returns 52 or 53 per ISO-8601: Dec 28 is always in the last
// week of its ISO year.
func weeksInYear(year int) int {
	_, wk := time.Date(year, time.December, 28, 0, 0, 0, 0, time.Local).ISOWeek()
	return wk
}

func mondayOf(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	return startOfDay(t.AddDate(0, 0, 1-wd))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
