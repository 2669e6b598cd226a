package worker

import "errors"

var (
	ErrWorkerNotFound        = errors.New("worker not found")
	ErrWorkerInactive        = errors.New("worker is inactive")
	ErrWorkerAlreadyInactive = errors.New("worker is already inactive")
	ErrSupervisorNotFound    = errors.New("supervisor not found")
)
