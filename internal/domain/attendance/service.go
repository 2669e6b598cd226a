package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Mark records or replaces a worker's attendance for one calendar day
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// Aggregate collapses records in [start, end] into one value per
	// calendar day and a dayValue-weighted total
	Aggregate(ctx context.Context, workerID, projectID string, start, end time.Time) (Summary, error)

	// ListByProjectAndDate retrieves a project's records for one day
	ListByProjectAndDate(ctx context.Context, projectID string, date time.Time) ([]AttendanceResponse, error)
}
