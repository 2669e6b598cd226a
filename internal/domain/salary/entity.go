package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusPending  SalaryStatus = "pending"
	SalaryStatusApproved SalaryStatus = "approved"
)

// Breakdown is the reproducible decomposition of one worker-week.
type Breakdown struct {
	BaseSalary    decimal.Decimal
	Overtime      decimal.Decimal
	OvertimeHours decimal.Decimal
	Bonus         decimal.Decimal
	Penalty       decimal.Decimal
	DaysWorked    int
}

// Total is baseSalary + overtimePay + bonus - penalty. Not clamped: a week
// where penalties exceed earnings totals negative.
func (b Breakdown) Total() decimal.Decimal {
	return b.BaseSalary.Add(b.Overtime).Add(b.Bonus).Sub(b.Penalty)
}

// SalaryRecord is the persisted snapshot of one worker-week. At most one
// record exists per (workerID, week); once written it never recomputes, even
// if the underlying attendance is edited later. Only the status may change,
// pending to approved, one way.
type SalaryRecord struct {
	ID         string
	WorkerID   string
	ProjectID  string
	Week       string // ISO week string, "2024-W10"
	Breakdown  Breakdown
	Total      decimal.Decimal
	Status     SalaryStatus
	ApprovedBy *string
	ApprovedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
