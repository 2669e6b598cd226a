package material

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MaterialRepository defines data access methods for materials. Stock reads
// used inside mutating flows take a row lock (GetByIDForUpdate) so the
// read-modify-write of the cached balance is serialized per material.
type MaterialRepository interface {
	Create(ctx context.Context, m Material) (Material, error)
	GetByID(ctx context.Context, id string) (Material, error)
	// GetByIDForUpdate locks the material row for the current transaction.
	GetByIDForUpdate(ctx context.Context, id string) (Material, error)
	// GetByLocationAndName locks nothing; the ForUpdate variant is used on
	// mutating paths. Name matching is exact.
	GetByLocationAndName(ctx context.Context, loc Location, name string) (Material, error)
	GetByLocationNameForUpdate(ctx context.Context, loc Location, name string) (Material, error)
	// GetByLocationNameUnit is the find-or-create key used at reception.
	GetByLocationNameUnitForUpdate(ctx context.Context, loc Location, name, unit string) (Material, error)
	ListByLocation(ctx context.Context, loc Location) ([]Material, error)
	// UpdateStock writes a new cached balance. Callers compute the value
	// through the stock policy functions while holding the row lock.
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
}

// MaterialLogRepository defines data access for ledger entries.
type MaterialLogRepository interface {
	Create(ctx context.Context, l MaterialLog) (MaterialLog, error)
	GetByID(ctx context.Context, id string) (MaterialLog, error)
	Update(ctx context.Context, l MaterialLog) (MaterialLog, error)
	Delete(ctx context.Context, id string) error
	ListByMaterial(ctx context.Context, materialID string, from, to *time.Time) ([]MaterialLog, error)
	// Summarize recomputes period totals from entries, never from the
	// cached material balance.
	Summarize(ctx context.Context, materialID string, from, to *time.Time) (LogSummary, error)
}

// MaterialRequestRepository defines data access for request workflow rows.
type MaterialRequestRepository interface {
	Create(ctx context.Context, r MaterialRequest) (MaterialRequest, error)
	GetByID(ctx context.Context, id string) (MaterialRequest, error)
	GetByIDForUpdate(ctx context.Context, id string) (MaterialRequest, error)
	Update(ctx context.Context, r MaterialRequest) (MaterialRequest, error)
	ListByProject(ctx context.Context, projectID string, status *RequestStatus) ([]MaterialRequest, error)
}
