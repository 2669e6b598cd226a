package worker

import (
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	ProjectID    string          `json:"project_id"`
	FullName     string          `json:"full_name"`
	PhoneNumber  *string         `json:"phone_number,omitempty"`
	Trade        *string         `json:"trade,omitempty"`
	DailySalary  decimal.Decimal `json:"daily_salary"`
	SupervisorID *string         `json:"supervisor_id,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if validator.IsNegative(r.DailySalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_salary",
			Message: "daily_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	ID           string           `json:"worker_id"`
	FullName     *string          `json:"full_name,omitempty"`
	PhoneNumber  *string          `json:"phone_number,omitempty"`
	Trade        *string          `json:"trade,omitempty"`
	DailySalary  *decimal.Decimal `json:"daily_salary,omitempty"`
	SupervisorID *string          `json:"supervisor_id,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.DailySalary != nil && validator.IsNegative(*r.DailySalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "daily_salary",
			Message: "daily_salary must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerResponse struct {
	ID           string          `json:"worker_id"`
	ProjectID    string          `json:"project_id"`
	FullName     string          `json:"full_name"`
	PhoneNumber  *string         `json:"phone_number,omitempty"`
	Trade        *string         `json:"trade,omitempty"`
	DailySalary  decimal.Decimal `json:"daily_salary"`
	Active       bool            `json:"active"`
	SupervisorID *string         `json:"supervisor_id,omitempty"`
}
