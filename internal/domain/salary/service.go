package salary

import "context"

// SalaryService defines business logic for weekly salary computation
type SalaryService interface {
	// ComputeWeekly returns the snapshot for (workerID, week), computing and
	// persisting it on first call. Later calls return the stored record
	// unchanged regardless of attendance edits.
	ComputeWeekly(ctx context.Context, req ComputeWeeklyRequest) (SalaryRecordResponse, error)

	// ListWeekly computes (or fetches) the snapshot for every active worker
	// of a project for one week.
	ListWeekly(ctx context.Context, projectID, week string) ([]SalaryRecordResponse, error)

	// Approve transitions a record pending -> approved, one way
	Approve(ctx context.Context, recordID string) (SalaryRecordResponse, error)
}
