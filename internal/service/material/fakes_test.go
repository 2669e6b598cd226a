package material

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
)

// ===== in-memory fakes =====

func sameLocation(a, b material.Location) bool {
	if a.IsDepot() || b.IsDepot() {
		return a.IsDepot() == b.IsDepot()
	}
	pa, _ := a.Project()
	pb, _ := b.Project()
	return pa == pb
}

type fakeMaterialRepo struct {
	materials map[string]material.Material
	nextID    int
}

func newFakeMaterialRepo() *fakeMaterialRepo {
	return &fakeMaterialRepo{materials: make(map[string]material.Material)}
}

func (f *fakeMaterialRepo) Create(_ context.Context, m material.Material) (material.Material, error) {
	f.nextID++
	m.ID = fmt.Sprintf("mat-%d", f.nextID)
	m.CreatedAt = time.Now()
	f.materials[m.ID] = m
	return m, nil
}

func (f *fakeMaterialRepo) GetByID(_ context.Context, id string) (material.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return material.Material{}, material.ErrMaterialNotFound
	}
	return m, nil
}

func (f *fakeMaterialRepo) GetByIDForUpdate(ctx context.Context, id string) (material.Material, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeMaterialRepo) GetByLocationAndName(_ context.Context, loc material.Location, name string) (material.Material, error) {
	for _, m := range f.materials {
		if sameLocation(m.Location, loc) && m.Name == name {
			return m, nil
		}
	}
	return material.Material{}, material.ErrMaterialNotFound
}

func (f *fakeMaterialRepo) GetByLocationNameForUpdate(ctx context.Context, loc material.Location, name string) (material.Material, error) {
	return f.GetByLocationAndName(ctx, loc, name)
}

func (f *fakeMaterialRepo) GetByLocationNameUnitForUpdate(_ context.Context, loc material.Location, name, unit string) (material.Material, error) {
	for _, m := range f.materials {
		if sameLocation(m.Location, loc) && m.Name == name && m.Unit == unit {
			return m, nil
		}
	}
	return material.Material{}, material.ErrMaterialNotFound
}

func (f *fakeMaterialRepo) ListByLocation(_ context.Context, loc material.Location) ([]material.Material, error) {
	var result []material.Material
	for _, m := range f.materials {
		if sameLocation(m.Location, loc) {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeMaterialRepo) UpdateStock(_ context.Context, id string, stock decimal.Decimal) error {
	m, ok := f.materials[id]
	if !ok {
		return material.ErrMaterialNotFound
	}
	m.StockQuantity = stock
	f.materials[id] = m
	return nil
}

type fakeLogRepo struct {
	logs   []material.MaterialLog
	nextID int
}

func (f *fakeLogRepo) Create(_ context.Context, l material.MaterialLog) (material.MaterialLog, error) {
	f.nextID++
	l.ID = fmt.Sprintf("log-%d", f.nextID)
	l.CreatedAt = time.Now()
	f.logs = append(f.logs, l)
	return l, nil
}

func (f *fakeLogRepo) GetByID(_ context.Context, id string) (material.MaterialLog, error) {
	for _, l := range f.logs {
		if l.ID == id {
			return l, nil
		}
	}
	return material.MaterialLog{}, material.ErrLogNotFound
}

func (f *fakeLogRepo) Update(_ context.Context, l material.MaterialLog) (material.MaterialLog, error) {
	for i := range f.logs {
		if f.logs[i].ID == l.ID {
			f.logs[i] = l
			return l, nil
		}
	}
	return material.MaterialLog{}, material.ErrLogNotFound
}

func (f *fakeLogRepo) Delete(_ context.Context, id string) error {
	for i := range f.logs {
		if f.logs[i].ID == id {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return material.ErrLogNotFound
}

func (f *fakeLogRepo) ListByMaterial(_ context.Context, materialID string, from, to *time.Time) ([]material.MaterialLog, error) {
	var result []material.MaterialLog
	for _, l := range f.logs {
		if l.MaterialID != materialID {
			continue
		}
		if from != nil && l.Date.Before(*from) {
			continue
		}
		if to != nil && l.Date.After(*to) {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (f *fakeLogRepo) Summarize(ctx context.Context, materialID string, from, to *time.Time) (material.LogSummary, error) {
	logs, _ := f.ListByMaterial(ctx, materialID, from, to)
	summary := material.LogSummary{MaterialID: materialID}
	for _, l := range logs {
		if l.Type == material.MovementIn {
			summary.TotalIn = summary.TotalIn.Add(l.Quantity)
		} else {
			summary.TotalOut = summary.TotalOut.Add(l.Quantity)
		}
		summary.EntryCount++
	}
	return summary, nil
}

type fakeRequestRepo struct {
	requests map[string]material.MaterialRequest
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]material.MaterialRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, r material.MaterialRequest) (material.MaterialRequest, error) {
	f.nextID++
	r.ID = fmt.Sprintf("req-%d", f.nextID)
	r.CreatedAt = time.Now()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (material.MaterialRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return material.MaterialRequest{}, material.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (material.MaterialRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRequestRepo) Update(_ context.Context, r material.MaterialRequest) (material.MaterialRequest, error) {
	if _, ok := f.requests[r.ID]; !ok {
		return material.MaterialRequest{}, material.ErrRequestNotFound
	}
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) ListByProject(_ context.Context, projectID string, status *material.RequestStatus) ([]material.MaterialRequest, error) {
	var result []material.MaterialRequest
	for _, r := range f.requests {
		if r.ProjectID != projectID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// ===== helpers =====

func newTestService(materialRepo *fakeMaterialRepo, logRepo *fakeLogRepo, requestRepo *fakeRequestRepo) *MaterialServiceImpl {
	return &MaterialServiceImpl{
		materialRepo: materialRepo,
		logRepo:      logRepo,
		requestRepo:  requestRepo,
		withTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		},
	}
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

func seedMaterial(t *testing.T, repo *fakeMaterialRepo, name, unit string, loc material.Location, stock string) material.Material {
	t.Helper()
	m, err := repo.Create(context.Background(), material.Material{
		Name:          name,
		Unit:          unit,
		Price:         decimal.RequireFromString("10"),
		Location:      loc,
		StockQuantity: decimal.RequireFromString(stock),
		CreatedBy:     "seed",
	})
	require.NoError(t, err)
	return m
}
