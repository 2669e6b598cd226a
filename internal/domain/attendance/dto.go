package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	WorkerID      string           `json:"worker_id"`
	ProjectID     string           `json:"project_id"`
	Date          string           `json:"date"` // "YYYY-MM-DD"
	Present       bool             `json:"present"`
	DayValue      *decimal.Decimal `json:"day_value,omitempty"` // defaults to 1
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Bonus         *decimal.Decimal `json:"bonus,omitempty"`
	Penalty       *decimal.Decimal `json:"penalty,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
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

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if r.DayValue != nil {
		if r.DayValue.IsNegative() || r.DayValue.GreaterThan(decimal.NewFromInt(3)) {
			errs = append(errs, validator.ValidationError{
				Field:   "day_value",
				Message: "day_value must be between 0 and 3",
			})
		}
	}

	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_hours",
			Message: "overtime_hours must not be negative",
		})
	}
	if r.Bonus != nil && r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "bonus",
			Message: "bonus must not be negative",
		})
	}
	if r.Penalty != nil && r.Penalty.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "penalty",
			Message: "penalty must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID            string          `json:"attendance_id"`
	WorkerID      string          `json:"worker_id"`
	ProjectID     string          `json:"project_id"`
	Date          string          `json:"date"`
	Present       bool            `json:"present"`
	DayValue      decimal.Decimal `json:"day_value"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Bonus         decimal.Decimal `json:"bonus"`
	Penalty       decimal.Decimal `json:"penalty"`
	Notes         *string         `json:"notes,omitempty"`
	MarkedBy      string          `json:"marked_by"`
}

// Summary is the aggregated view over a date interval, one contribution per
// calendar day.
type Summary struct {
	DaysWorked decimal.Decimal            `json:"days_worked"`
	ByDate     map[string]decimal.Decimal `json:"by_date"`
}
