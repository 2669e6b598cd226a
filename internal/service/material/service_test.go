package material

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteworks/siteops-backend-go/internal/domain/material"
)

func decStr(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAppendLog_InIncrementsStock(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Cement", "sacks", material.AtProject("p1"), "10")

	resp, err := svc.AppendLog(ctx, material.AppendLogRequest{
		MaterialID: m.ID, Type: "IN", Quantity: decStr("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, "IN", resp.Type)
	assert.Equal(t, "user-1", resp.LoggedBy)

	stored, err := materialRepo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.StockQuantity.Equal(decStr("15")), "stock = %s", stored.StockQuantity)
}

func TestAppendLog_OutClampsAtZero(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Cement", "sacks", material.AtProject("p1"), "10")

	// Physical usage beyond the recorded balance is still logged in full;
	// only the cached balance is floored.
	resp, err := svc.AppendLog(ctx, material.AppendLogRequest{
		MaterialID: m.ID, Type: "OUT", Quantity: decStr("15"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Quantity.Equal(decStr("15")))

	stored, _ := materialRepo.GetByID(ctx, m.ID)
	assert.True(t, stored.StockQuantity.IsZero(), "stock = %s", stored.StockQuantity)

	require.Len(t, logRepo.logs, 1)
	assert.True(t, logRepo.logs[0].Quantity.Equal(decStr("15")))
}

func TestAppendLog_MaterialNotFound(t *testing.T) {
	svc := newTestService(newFakeMaterialRepo(), &fakeLogRepo{}, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	_, err := svc.AppendLog(ctx, material.AppendLogRequest{
		MaterialID: "missing", Type: "IN", Quantity: decStr("1"),
	})
	assert.ErrorIs(t, err, material.ErrMaterialNotFound)
}

func TestUpdateLog_AppliesQuantityDelta(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Rebar", "kg", material.AtProject("p1"), "0")

	inLog, err := svc.AppendLog(ctx, material.AppendLogRequest{
		MaterialID: m.ID, Type: "IN", Quantity: decStr("10"),
	})
	require.NoError(t, err)

	// Correcting 10 down to 4 removes the overstated 6 from the balance.
	qty := decStr("4")
	updated, err := svc.UpdateLog(ctx, material.UpdateLogRequest{LogID: inLog.ID, Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.Equal(decStr("4")))

	stored, _ := materialRepo.GetByID(ctx, m.ID)
	assert.True(t, stored.StockQuantity.Equal(decStr("4")), "stock = %s", stored.StockQuantity)
}

func TestUpdateLog_OutDeltaIsNegated(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Rebar", "kg", material.AtProject("p1"), "20")

	outLog, err := svc.AppendLog(ctx, material.AppendLogRequest{
		MaterialID: m.ID, Type: "OUT", Quantity: decStr("5"),
	})
	require.NoError(t, err)

	// An OUT corrected from 5 to 8 consumes 3 more.
	qty := decStr("8")
	_, err = svc.UpdateLog(ctx, material.UpdateLogRequest{LogID: outLog.ID, Quantity: &qty})
	require.NoError(t, err)

	stored, _ := materialRepo.GetByID(ctx, m.ID)
	assert.True(t, stored.StockQuantity.Equal(decStr("12")), "stock = %s", stored.StockQuantity)
}

func TestDeleteLog_ReversesEntry(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Sand", "m3", material.AtProject("p1"), "0")

	_, err := svc.AppendLog(ctx, material.AppendLogRequest{MaterialID: m.ID, Type: "IN", Quantity: decStr("10")})
	require.NoError(t, err)
	outLog, err := svc.AppendLog(ctx, material.AppendLogRequest{MaterialID: m.ID, Type: "OUT", Quantity: decStr("3")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLog(ctx, outLog.ID))

	stored, _ := materialRepo.GetByID(ctx, m.ID)
	assert.True(t, stored.StockQuantity.Equal(decStr("10")), "stock = %s", stored.StockQuantity)
	assert.Len(t, logRepo.logs, 1)
}

func TestDeleteLog_ReversalClampsAtZero(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Sand", "m3", material.AtProject("p1"), "0")

	inLog, err := svc.AppendLog(ctx, material.AppendLogRequest{MaterialID: m.ID, Type: "IN", Quantity: decStr("10")})
	require.NoError(t, err)
	_, err = svc.AppendLog(ctx, material.AppendLogRequest{MaterialID: m.ID, Type: "OUT", Quantity: decStr("8")})
	require.NoError(t, err)

	// Removing the IN would leave -8; the balance floors at zero instead.
	require.NoError(t, svc.DeleteLog(ctx, inLog.ID))

	stored, _ := materialRepo.GetByID(ctx, m.ID)
	assert.True(t, stored.StockQuantity.IsZero(), "stock = %s", stored.StockQuantity)
}

func TestLedgerSequence_StockNeverNegative(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	svc := newTestService(materialRepo, &fakeLogRepo{}, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Gravel", "m3", material.AtProject("p1"), "0")

	steps := []struct {
		typ  string
		qty  string
		want string
	}{
		{"OUT", "5", "0"},
		{"IN", "12", "12"},
		{"OUT", "7.5", "4.5"},
		{"OUT", "10", "0"},
		{"IN", "2", "2"},
	}
	for _, step := range steps {
		_, err := svc.AppendLog(ctx, material.AppendLogRequest{
			MaterialID: m.ID, Type: step.typ, Quantity: decStr(step.qty),
		})
		require.NoError(t, err)

		stored, _ := materialRepo.GetByID(ctx, m.ID)
		assert.True(t, stored.StockQuantity.Equal(decStr(step.want)),
			"after %s %s: stock = %s, want %s", step.typ, step.qty, stored.StockQuantity, step.want)
		assert.False(t, stored.StockQuantity.IsNegative())
	}
}

func TestSummarize_RecomputesFromWindow(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	logRepo := &fakeLogRepo{}
	svc := newTestService(materialRepo, logRepo, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	m := seedMaterial(t, materialRepo, "Cement", "sacks", material.AtProject("p1"), "0")

	for _, entry := range []struct {
		typ  string
		qty  string
		date string
	}{
		{"IN", "100", "2024-03-01"},
		{"OUT", "30", "2024-03-05"},
		{"OUT", "20", "2024-03-20"},
		{"IN", "50", "2024-04-02"},
	} {
		date := entry.date
		_, err := svc.AppendLog(ctx, material.AppendLogRequest{
			MaterialID: m.ID, Type: entry.typ, Quantity: decStr(entry.qty), Date: &date,
		})
		require.NoError(t, err)
	}

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local)
	summary, err := svc.Summarize(ctx, m.ID, &from, &to)
	require.NoError(t, err)

	assert.True(t, summary.TotalIn.Equal(decStr("100")), "total in = %s", summary.TotalIn)
	assert.True(t, summary.TotalOut.Equal(decStr("50")), "total out = %s", summary.TotalOut)
	assert.Equal(t, 3, summary.EntryCount)

	// The lifetime balance includes April and must not equal the window's net.
	stored, _ := materialRepo.GetByID(ctx, m.ID)
	assert.True(t, stored.StockQuantity.Equal(decStr("100")))
}

func TestSummarize_MaterialNotFound(t *testing.T) {
	svc := newTestService(newFakeMaterialRepo(), &fakeLogRepo{}, newFakeRequestRepo())
	ctx := authedContext(t, "user-1")

	_, err := svc.Summarize(ctx, "missing", nil, nil)
	assert.ErrorIs(t, err, material.ErrMaterialNotFound)
}

func TestCreateMaterial_DefaultsToDepot(t *testing.T) {
	materialRepo := newFakeMaterialRepo()
	svc := newTestService(materialRepo, &fakeLogRepo{}, newFakeRequestRepo())
	ctx := authedContext(t, "admin-1")

	resp, err := svc.CreateMaterial(ctx, material.CreateMaterialRequest{
		Name: "Cement", Unit: "sacks", Price: decStr("75000"),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.ProjectID)
	assert.True(t, resp.StockQuantity.IsZero())

	stored, err := materialRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, stored.Location.IsDepot())
	assert.Equal(t, "admin-1", stored.CreatedBy)
}
