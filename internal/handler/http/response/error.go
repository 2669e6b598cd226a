package response

import (
	"errors"
	"net/http"

	"github.com/siteworks/siteops-backend-go/internal/domain/attendance"
	"github.com/siteworks/siteops-backend-go/internal/domain/material"
	"github.com/siteworks/siteops-backend-go/internal/domain/salary"
	"github.com/siteworks/siteops-backend-go/internal/domain/worker"
	"github.com/siteworks/siteops-backend-go/internal/pkg/validator"
	"github.com/siteworks/siteops-backend-go/internal/pkg/week"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrSupervisorNotFound):
		NotFound(w, "Supervisor not found")
	case errors.Is(err, worker.ErrWorkerInactive):
		Conflict(w, "Worker is inactive")
	case errors.Is(err, worker.ErrWorkerAlreadyInactive):
		Conflict(w, "Worker is already inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidDayValue):
		BadRequest(w, "day_value must be between 0 and 3", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)

	// Salary domain errors
	case errors.Is(err, week.ErrInvalidWeekFormat):
		BadRequest(w, "Week must be in ISO format, e.g. 2024-W10", nil)
	case errors.Is(err, salary.ErrSalaryRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrAlreadyApproved):
		Conflict(w, "Salary record already approved")

	// Material domain errors
	case errors.Is(err, material.ErrMaterialNotFound):
		NotFound(w, "Material not found")
	case errors.Is(err, material.ErrLogNotFound):
		NotFound(w, "Material log not found")
	case errors.Is(err, material.ErrRequestNotFound):
		NotFound(w, "Material request not found")
	case errors.Is(err, material.ErrInsufficientStock):
		Conflict(w, err.Error())
	case errors.Is(err, material.ErrInvalidStateTransition):
		Conflict(w, err.Error())
	case errors.Is(err, material.ErrSameProjectTransfer):
		BadRequest(w, "Source and target project must differ", nil)
	case errors.Is(err, material.ErrInvalidMovementType):
		BadRequest(w, "Movement type must be IN or OUT", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
