package postgresql_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
	"github.com/siteworks/siteops-backend-go/internal/repository/postgresql"
)

func TestWorkerRepository_CRUD(t *testing.T) {
	setup := requireTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, setup.TruncateAllTables(ctx))

	repo := postgresql.NewWorkerRepository(setup.DB)

	trade := "mason"
	created, err := repo.Create(ctx, worker.Worker{
		ProjectID:   "project-1",
		FullName:    "Budi Santoso",
		Trade:       &trade,
		DailySalary: decimal.RequireFromString("150000"),
		Active:      true,
		CreatedBy:   "admin-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", fetched.FullName)
	assert.True(t, fetched.DailySalary.Equal(decimal.RequireFromString("150000")))
	require.NotNil(t, fetched.Trade)
	assert.Equal(t, "mason", *fetched.Trade)

	fetched.FullName = "Budi S."
	updated, err := repo.Update(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, "Budi S.", updated.FullName)

	require.NoError(t, repo.Deactivate(ctx, created.ID))

	// Soft delete: the row stays readable but is excluded from active lists.
	deactivated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	active, err := repo.GetByProjectID(ctx, "project-1", true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := repo.GetByProjectID(ctx, "project-1", false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWorkerRepository_GetByID_NotFound(t *testing.T) {
	setup := requireTestDatabase(t)
	ctx := context.Background()

	repo := postgresql.NewWorkerRepository(setup.DB)

	_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}
