package worker

import "context"

// WorkerService defines business logic for the worker roster.
type WorkerService interface {
	Create(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetByID(ctx context.Context, id string) (WorkerResponse, error)
	ListByProject(ctx context.Context, projectID string, activeOnly bool) ([]WorkerResponse, error)
	Update(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	// Deactivate soft-deletes; the worker's attendance and salary history
	// stays intact.
	Deactivate(ctx context.Context, id string) error
}
