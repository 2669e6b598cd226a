package worker

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"

	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
)

type WorkerServiceImpl struct {
	workerRepo worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{workerRepo: workerRepo}
}

// Helper to get user_id from JWT context
func getClaimsFromContext(ctx context.Context) (userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

func (s *WorkerServiceImpl) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	createdBy, err := getClaimsFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.SupervisorID != nil {
		if _, err := s.workerRepo.GetByID(ctx, *req.SupervisorID); err != nil {
			return worker.WorkerResponse{}, worker.ErrSupervisorNotFound
		}
	}

	created, err := s.workerRepo.Create(ctx, worker.Worker{
		ProjectID:    req.ProjectID,
		FullName:     req.FullName,
		PhoneNumber:  req.PhoneNumber,
		Trade:        req.Trade,
		DailySalary:  req.DailySalary,
		Active:       true,
		SupervisorID: req.SupervisorID,
		CreatedBy:    createdBy,
	})
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return mapToResponse(created), nil
}

func (s *WorkerServiceImpl) GetByID(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return mapToResponse(w), nil
}

func (s *WorkerServiceImpl) ListByProject(ctx context.Context, projectID string, activeOnly bool) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.GetByProjectID(ctx, projectID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	result := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		result = append(result, mapToResponse(w))
	}
	return result, nil
}

func (s *WorkerServiceImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.FullName != nil {
		w.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		w.PhoneNumber = req.PhoneNumber
	}
	if req.Trade != nil {
		w.Trade = req.Trade
	}
	if req.DailySalary != nil {
		// Rate changes apply to future computations only; stored weekly
		// snapshots keep the rate they were computed with.
		w.DailySalary = *req.DailySalary
	}
	if req.SupervisorID != nil {
		if _, err := s.workerRepo.GetByID(ctx, *req.SupervisorID); err != nil {
			return worker.WorkerResponse{}, worker.ErrSupervisorNotFound
		}
		w.SupervisorID = req.SupervisorID
	}

	updated, err := s.workerRepo.Update(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}

	return mapToResponse(updated), nil
}

func (s *WorkerServiceImpl) Deactivate(ctx context.Context, id string) error {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !w.Active {
		return worker.ErrWorkerAlreadyInactive
	}

	return s.workerRepo.Deactivate(ctx, id)
}

func mapToResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:           w.ID,
		ProjectID:    w.ProjectID,
		FullName:     w.FullName,
		PhoneNumber:  w.PhoneNumber,
		Trade:        w.Trade,
		DailySalary:  w.DailySalary,
		Active:       w.Active,
		SupervisorID: w.SupervisorID,
	}
}
