package material

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location tags where a material's stock lives: the central depot pool or a
// specific project. Modeled as a closed type instead of a nullable project id
// so every piece of stock logic has to handle both cases explicitly.
type Location struct {
	projectID *string
}

// Depot is the unassigned central pool.
func Depot() Location {
	return Location{}
}

func AtProject(projectID string) Location {
	return Location{projectID: &projectID}
}

func (l Location) IsDepot() bool {
	return l.projectID == nil
}

// Project returns the project id and whether the material is project-local.
func (l Location) Project() (string, bool) {
	if l.projectID == nil {
		return "", false
	}
	return *l.projectID, true
}

type Material struct {
	ID       string
	Name     string
	Unit     string
	Price    decimal.Decimal
	Location Location
	// StockQuantity caches the clamped signed sum of this material's logs
	// (IN positive, OUT negative) for O(1) reads. Every mutating ledger
	// operation keeps it consistent; period reports recompute from logs.
	StockQuantity decimal.Decimal
	Category      *string
	Supplier      *string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// MovementType enum
type MovementType string

const (
	MovementIn  MovementType = "IN"
	MovementOut MovementType = "OUT"
)

// MaterialLog is one append-only ledger entry. Updating or deleting an entry
// reverse-applies its stock delta to the owning material in the same
// transaction.
type MaterialLog struct {
	ID          string
	MaterialID  string
	Type        MovementType
	Quantity    decimal.Decimal // always positive; sign comes from Type
	Date        time.Time
	LoggedBy    string
	Cost        *decimal.Decimal
	Supplier    *string
	DeliveredBy *string
	PhotoURLs   []string
	TaskID      *string
	WorkerID    *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Delta is the signed stock contribution of this entry.
func (l MaterialLog) Delta() decimal.Decimal {
	if l.Type == MovementOut {
		return l.Quantity.Neg()
	}
	return l.Quantity
}

// RequestStatus enum
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusReceived RequestStatus = "received"
)

// MaterialRequest is a field request for stock, moving through
// pending -> approved -> received, or pending -> rejected.
// Approval of a depot-linked request consumes depot stock immediately;
// reception books the physically received quantity into the project.
type MaterialRequest struct {
	ID          string
	RequesterID string
	ProjectID   string
	// MaterialID links a depot material; nil means a custom (free-form)
	// request described only by MaterialName/Unit.
	MaterialID       *string
	MaterialName     string
	Unit             string
	Quantity         decimal.Decimal
	Status           RequestStatus
	AdminNotes       *string
	ReceivedQuantity *decimal.Decimal
	ReceivedCost     *decimal.Decimal
	Source           *string
	DeliveredBy      *string
	ReceivedAt       *time.Time
	DeliveryProofURL *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LogSummary is a period report recomputed from ledger entries; it must not
// be derived from the cached StockQuantity, which reflects lifetime balance.
type LogSummary struct {
	MaterialID string
	TotalIn    decimal.Decimal
	TotalOut   decimal.Decimal
	EntryCount int
}
