package worker

import "context"

type WorkerRepository interface {
	Create(ctx context.Context, w Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByProjectID(ctx context.Context, projectID string, activeOnly bool) ([]Worker, error)
	Update(ctx context.Context, w Worker) (Worker, error)
	// Deactivate soft-deletes a worker; records are never hard-deleted.
	Deactivate(ctx context.Context, id string) error
}
