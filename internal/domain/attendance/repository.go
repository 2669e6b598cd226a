package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Upsert creates or replaces the record for (workerID, date). Re-marking
	// a day is an explicit overwrite, never an append.
	Upsert(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByWorkerAndDate retrieves the record for a specific worker on a
	// specific (normalized) date, nil if none exists.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*Attendance, error)

	// ListByWorkerAndRange retrieves all records for (workerID, projectID)
	// within the closed interval [start, end], sorted by ascending date.
	// Duplicate days are returned as-is; callers reconcile them.
	ListByWorkerAndRange(ctx context.Context, workerID, projectID string, start, end time.Time) ([]Attendance, error)

	// ListByProjectAndDate retrieves all records for a project on one day.
	ListByProjectAndDate(ctx context.Context, projectID string, date time.Time) ([]Attendance, error)
}
