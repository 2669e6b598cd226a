package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
)

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
	nextID  int
}

func newFakeWorkerRepo() *fakeWorkerRepo {
	return &fakeWorkerRepo{workers: make(map[string]worker.Worker)}
}

func (f *fakeWorkerRepo) Create(_ context.Context, w worker.Worker) (worker.Worker, error) {
	f.nextID++
	w.ID = fmt.Sprintf("w-%d", f.nextID)
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) GetByProjectID(_ context.Context, projectID string, activeOnly bool) ([]worker.Worker, error) {
	var result []worker.Worker
	for _, w := range f.workers {
		if w.ProjectID != projectID {
			continue
		}
		if activeOnly && !w.Active {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

func (f *fakeWorkerRepo) Update(_ context.Context, w worker.Worker) (worker.Worker, error) {
	if _, ok := f.workers[w.ID]; !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	f.workers[w.ID] = w
	return w, nil
}

func (f *fakeWorkerRepo) Deactivate(_ context.Context, id string) error {
	w, ok := f.workers[id]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	w.Active = false
	f.workers[id] = w
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := ja.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	token, err := ja.Decode(tokenString)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestCreateWorker(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)
	ctx := authedContext(t, "admin-1")

	resp, err := svc.Create(ctx, worker.CreateWorkerRequest{
		ProjectID:   "p1",
		FullName:    "Budi Santoso",
		DailySalary: decimal.RequireFromString("45"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Active)

	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", stored.CreatedBy)
}

func TestCreateWorker_SupervisorMustExist(t *testing.T) {
	svc := NewWorkerService(newFakeWorkerRepo())
	ctx := authedContext(t, "admin-1")

	supervisor := "missing"
	_, err := svc.Create(ctx, worker.CreateWorkerRequest{
		ProjectID:    "p1",
		FullName:     "Budi Santoso",
		DailySalary:  decimal.RequireFromString("45"),
		SupervisorID: &supervisor,
	})
	assert.ErrorIs(t, err, worker.ErrSupervisorNotFound)
}

func TestDeactivateWorker_IsIdempotentGuarded(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)
	ctx := authedContext(t, "admin-1")

	resp, err := svc.Create(ctx, worker.CreateWorkerRequest{
		ProjectID: "p1", FullName: "Budi Santoso", DailySalary: decimal.RequireFromString("45"),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, resp.ID))
	err = svc.Deactivate(ctx, resp.ID)
	assert.ErrorIs(t, err, worker.ErrWorkerAlreadyInactive)

	// Soft delete keeps the record readable.
	got, err := svc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestListByProject_ActiveOnly(t *testing.T) {
	repo := newFakeWorkerRepo()
	svc := NewWorkerService(repo)
	ctx := authedContext(t, "admin-1")

	a, _ := svc.Create(ctx, worker.CreateWorkerRequest{ProjectID: "p1", FullName: "A", DailySalary: decimal.RequireFromString("40")})
	_, _ = svc.Create(ctx, worker.CreateWorkerRequest{ProjectID: "p1", FullName: "B", DailySalary: decimal.RequireFromString("40")})
	_, _ = svc.Create(ctx, worker.CreateWorkerRequest{ProjectID: "p2", FullName: "C", DailySalary: decimal.RequireFromString("40")})

	require.NoError(t, svc.Deactivate(ctx, a.ID))

	active, err := svc.ListByProject(ctx, "p1", true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := svc.ListByProject(ctx, "p1", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
