package salary

import "errors"

var (
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrSalaryRecordExists   = errors.New("salary record already exists for this worker and week")
	ErrAlreadyApproved      = errors.New("salary record is already approved")
)
