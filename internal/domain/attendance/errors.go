package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDayValue    = errors.New("day_value must be between 0 and 3")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
)
