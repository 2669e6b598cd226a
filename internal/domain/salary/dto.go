package salary

import (
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/pkg/validator"
)

type ComputeWeeklyRequest struct {
	WorkerID  string `json:"worker_id"`
	ProjectID string `json:"project_id"`
	Week      string `json:"week"` // "YYYY-WNN"
}

func (r *ComputeWeeklyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}
	if validator.IsEmpty(r.ProjectID) {
		errs = append(errs, validator.ValidationError{
			Field:   "project_id",
			Message: "project_id is required",
		})
	}
	if validator.IsEmpty(r.Week) {
		errs = append(errs, validator.ValidationError{
			Field:   "week",
			Message: "week is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BreakdownResponse struct {
	BaseSalary    decimal.Decimal `json:"base_salary"`
	Overtime      decimal.Decimal `json:"overtime"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Bonus         decimal.Decimal `json:"bonus"`
	Penalty       decimal.Decimal `json:"penalty"`
	DaysWorked    int             `json:"days_worked"`
}

type SalaryRecordResponse struct {
	ID          string            `json:"salary_record_id"`
	WorkerID    string            `json:"worker_id"`
	ProjectID   string            `json:"project_id"`
	Week        string            `json:"week"`
	Breakdown   BreakdownResponse `json:"breakdown"`
	TotalSalary decimal.Decimal   `json:"total_salary"`
	Status      string            `json:"status"`
	ApprovedBy  *string           `json:"approved_by,omitempty"`
	ApprovedAt  *string           `json:"approved_at,omitempty"`

	// Joined fields
	WorkerName *string `json:"worker_name,omitempty"`
}
