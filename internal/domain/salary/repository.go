package salary

import "context"

// SalaryRepository defines data access methods for salary records.
type SalaryRepository interface {
	// Create inserts a record; a (workerID, week) uniqueness violation maps
	// to ErrSalaryRecordExists so concurrent first computations collapse to
	// a single snapshot.
	Create(ctx context.Context, record SalaryRecord) (SalaryRecord, error)

	GetByID(ctx context.Context, id string) (SalaryRecord, error)

	// GetByWorkerAndWeek returns ErrSalaryRecordNotFound when no snapshot
	// exists yet.
	GetByWorkerAndWeek(ctx context.Context, workerID, week string) (SalaryRecord, error)

	ListByProjectAndWeek(ctx context.Context, projectID, week string) ([]SalaryRecord, error)

	// Approve transitions pending -> approved. Approving an approved record
	// returns ErrAlreadyApproved.
	Approve(ctx context.Context, id, approvedBy string) (SalaryRecord, error)
}
