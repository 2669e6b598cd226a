package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one marking of a worker for one calendar day. Marking the
// same day again replaces the previous record (upsert by worker and date),
// but historical duplicates from the field app may still exist and are
// reconciled at aggregation time, last record wins.
type Attendance struct {
	ID        string
	WorkerID  string
	ProjectID string
	// Date is truncated to local midnight.
	Date          time.Time
	Present       bool
	DayValue      decimal.Decimal // fractional day multiplier: 0.5 half day, 2 double shift
	OvertimeHours decimal.Decimal
	Bonus         decimal.Decimal
	Penalty       decimal.Decimal
	Notes         *string
	MarkedBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NormalizeDay truncates t to local midnight. Aggregation keys on the local
// calendar day, not the UTC instant, so a late-evening mark cannot double
// count against the next day.
func NormalizeDay(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}

// DayKey formats a normalized day for map keys and API payloads.
func DayKey(t time.Time) string {
	return NormalizeDay(t).Format("2006-01-02")
}
