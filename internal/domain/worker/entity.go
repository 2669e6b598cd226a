package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type Worker struct {
	ID           string
	ProjectID    string
	FullName     string
	PhoneNumber  *string
	Trade        *string
	DailySalary  decimal.Decimal
	Active       bool
	SupervisorID *string
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HourlyRate derives the overtime base rate from the daily salary on the
// assumed 8-hour working day.
func (w Worker) HourlyRate() decimal.Decimal {
	return w.DailySalary.Div(decimal.NewFromInt(8))
}
