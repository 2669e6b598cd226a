package material

import (
	"context"
	"time"

	"github.com/siteworks/siteops-backend-go/internal/domain/event"
)

// MaterialService defines business logic for the stock ledger, transfers and
// the request workflow. Operations that used to fan out notifications return
// an event outbox instead; callers drain it after the operation succeeds.
type MaterialService interface {
	// Materials
	CreateMaterial(ctx context.Context, req CreateMaterialRequest) (MaterialResponse, error)
	GetMaterial(ctx context.Context, id string) (MaterialResponse, error)
	ListMaterials(ctx context.Context, projectID *string) ([]MaterialResponse, error)

	// Ledger
	AppendLog(ctx context.Context, req AppendLogRequest) (MaterialLogResponse, error)
	UpdateLog(ctx context.Context, req UpdateLogRequest) (MaterialLogResponse, error)
	DeleteLog(ctx context.Context, logID string) error
	ListLogs(ctx context.Context, materialID string, from, to *time.Time) ([]MaterialLogResponse, error)
	Summarize(ctx context.Context, materialID string, from, to *time.Time) (LogSummaryResponse, error)

	// Transfer moves stock between two projects' materials, creating the
	// destination material when it does not exist yet
	Transfer(ctx context.Context, req TransferRequest) (TransferResponse, error)

	// Request workflow
	CreateRequest(ctx context.Context, req CreateRequestRequest) (MaterialRequestResponse, []event.Event, error)
	UpdateRequestStatus(ctx context.Context, req UpdateRequestStatusRequest) (MaterialRequestResponse, []event.Event, error)
	ReceiveRequest(ctx context.Context, req ReceiveRequestRequest) (ReceiveResponse, []event.Event, error)
	ListRequests(ctx context.Context, projectID string, status *RequestStatus) ([]MaterialRequestResponse, error)
}
