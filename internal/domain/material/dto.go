package material

import (
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/pkg/validator"
)

// ========== MATERIAL DTOs ==========

type CreateMaterialRequest struct {
	Name      string          `json:"material_name"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	ProjectID *string         `json:"project_id,omitempty"` // nil = depot
	Category  *string         `json:"category,omitempty"`
	Supplier  *string         `json:"supplier,omitempty"`
}

func (r *CreateMaterialRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "material_name",
			Message: "material_name is required",
		})
	}
	if validator.IsEmpty(r.Unit) {
		errs = append(errs, validator.ValidationError{
			Field:   "unit",
			Message: "unit is required",
		})
	}
	if r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	if r.ProjectID != nil && validator.IsEmpty(*r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id must not be empty, omit it for depot materials",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MaterialResponse struct {
	ID            string          `json:"material_id"`
	Name          string          `json:"material_name"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	ProjectID     *string         `json:"project_id,omitempty"` // nil = depot
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	Category      *string         `json:"category,omitempty"`
	Supplier      *string         `json:"supplier,omitempty"`
}

// ========== LEDGER DTOs ==========

type AppendLogRequest struct {
	MaterialID  string           `json:"material_id"`
	Type        string           `json:"type"` // "IN" or "OUT"
	Quantity    decimal.Decimal  `json:"quantity"`
	Date        *string          `json:"date,omitempty"` // "YYYY-MM-DD", defaults to today
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	DeliveredBy *string          `json:"delivered_by,omitempty"`
	PhotoURLs   []string         `json:"photo_urls,omitempty"`
	TaskID      *string          `json:"task_id,omitempty"`
	WorkerID    *string          `json:"worker_id,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *AppendLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.MaterialID) {
		errs = append(errs, validator.ValidationError{
			Field:   "material_id",
			Message: "material_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, []string{string(MovementIn), string(MovementOut)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if !validator.IsPositive(r.Quantity) {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Cost != nil && r.Cost.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "cost",
			Message: "cost must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLogRequest struct {
	LogID       string           `json:"log_id"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	DeliveredBy *string          `json:"delivered_by,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

func (r *UpdateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LogID) {
		errs = append(errs, validator.ValidationError{
			Field:   "log_id",
			Message: "log_id is required",
		})
	}

	if r.Quantity != nil && !validator.IsPositive(*r.Quantity) {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}

	if r.Cost != nil && r.Cost.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "cost",
			Message: "cost must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MaterialLogResponse struct {
	ID          string           `json:"log_id"`
	MaterialID  string           `json:"material_id"`
	Type        string           `json:"type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Date        string           `json:"date"`
	LoggedBy    string           `json:"logged_by"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Supplier    *string          `json:"supplier,omitempty"`
	DeliveredBy *string          `json:"delivered_by,omitempty"`
	PhotoURLs   []string         `json:"photo_urls,omitempty"`
	TaskID      *string          `json:"task_id,omitempty"`
	WorkerID    *string          `json:"worker_id,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

type LogSummaryResponse struct {
	MaterialID string          `json:"material_id"`
	TotalIn    decimal.Decimal `json:"total_in"`
	TotalOut   decimal.Decimal `json:"total_out"`
	EntryCount int             `json:"entry_count"`
	From       *string         `json:"from,omitempty"`
	To         *string         `json:"to,omitempty"`
}

// ========== TRANSFER DTOs ==========

type TransferRequest struct {
	SourceProjectID string          `json:"source_project_id"`
	TargetProjectID string          `json:"target_project_id"`
	MaterialName    string          `json:"material_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Notes           *string         `json:"notes,omitempty"`
}

func (r *TransferRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SourceProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "source_project_id",
			Message: "source_project_id is required",
		})
	}
	if validator.IsEmpty(r.TargetProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "target_project_id",
			Message: "target_project_id is required",
		})
	}
	if validator.IsEmpty(r.MaterialName) {
		errs = append(errs, validator.ValidationError{
			Field:   "material_name",
			Message: "material_name is required",
		})
	}
	if !validator.IsPositive(r.Quantity) {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TransferResponse struct {
	SourceMaterial MaterialResponse    `json:"source_material"`
	TargetMaterial MaterialResponse    `json:"target_material"`
	SourceLog      MaterialLogResponse `json:"source_log"`
	TargetLog      MaterialLogResponse `json:"target_log"`
}

// ========== REQUEST WORKFLOW DTOs ==========

type CreateRequestRequest struct {
	ProjectID string `json:"project_id"`
	// MaterialID selects a depot material; leave nil and fill MaterialName
	// and Unit for a custom request.
	MaterialID   *string         `json:"material_id,omitempty"`
	MaterialName string          `json:"material_name,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
}

func (r *CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	if r.MaterialID == nil {
		if validator.IsEmpty(r.MaterialName) {
			errs = append(errs, validator.ValidationError{
				Field:   "material_name",
				Message: "material_name is required for custom requests",
			})
		}
		if validator.IsEmpty(r.Unit) {
			errs = append(errs, validator.ValidationError{
				Field:   "unit",
				Message: "unit is required for custom requests",
			})
		}
	} else if validator.IsEmpty(*r.MaterialID) {
		errs = append(errs, validator.ValidationError{
			Field:   "material_id",
			Message: "material_id must not be empty",
		})
	}

	if !validator.IsPositive(r.Quantity) {
		errs = append(errs, validator.ValidationError{
			Field:   "quantity",
			Message: "quantity must be greater than zero",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRequestStatusRequest struct {
	RequestID  string  `json:"request_id"`
	Status     string  `json:"status"` // "approved" or "rejected"
	AdminNotes *string `json:"admin_notes,omitempty"`
}

func (r *UpdateRequestStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}

	if !validator.IsInSlice(r.Status, []string{string(RequestStatusApproved), string(RequestStatusRejected)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReceiveRequestRequest struct {
	RequestID string `json:"request_id"`
	// ReceivedQuantity may differ from the originally requested quantity.
	ReceivedQuantity decimal.Decimal  `json:"received_quantity"`
	ReceivedCost     *decimal.Decimal `json:"received_cost,omitempty"`
	Source           *string          `json:"source,omitempty"`
	DeliveredBy      *string          `json:"delivered_by,omitempty"`
	DeliveryProofURL *string          `json:"delivery_proof_url,omitempty"`
}

func (r *ReceiveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request_id is required",
		})
	}
	if !validator.IsPositive(r.ReceivedQuantity) {
		errs = append(errs, validator.ValidationError{
			Field:   "received_quantity",
			Message: "received_quantity must be greater than zero",
		})
	}
	if r.ReceivedCost != nil && r.ReceivedCost.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "received_cost",
			Message: "received_cost must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type MaterialRequestResponse struct {
	ID               string           `json:"request_id"`
	RequesterID      string           `json:"requester_id"`
	ProjectID        string           `json:"project_id"`
	MaterialID       *string          `json:"material_id,omitempty"`
	MaterialName     string           `json:"material_name"`
	Unit             string           `json:"unit"`
	Quantity         decimal.Decimal  `json:"quantity"`
	Status           string           `json:"status"`
	AdminNotes       *string          `json:"admin_notes,omitempty"`
	ReceivedQuantity *decimal.Decimal `json:"received_quantity,omitempty"`
	ReceivedCost     *decimal.Decimal `json:"received_cost,omitempty"`
	Source           *string          `json:"source,omitempty"`
	DeliveredBy      *string          `json:"delivered_by,omitempty"`
	ReceivedAt       *string          `json:"received_at,omitempty"`
	DeliveryProofURL *string          `json:"delivery_proof_url,omitempty"`
}

type ReceiveResponse struct {
	Request  MaterialRequestResponse `json:"request"`
	Material MaterialResponse        `json:"material"`
	Log      MaterialLogResponse     `json:"log"`
}
