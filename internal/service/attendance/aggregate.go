package attendance

import (
	"github.com/shopspring/decimal"

	"github.com/siteworks/siteops-backend-go/internal/domain/attendance"
)

// SumDayValue collapses records into one contribution per local calendar day
// and returns the dayValue-weighted total plus the per-day map. Records must
// be sorted by ascending date; when a day appears more than once the last
// record encountered wins and earlier same-day entries are discarded.
// Only present records contribute. A zero dayValue counts as a full day, the
// field is optional in older records.
func SumDayValue(records []attendance.Attendance) (decimal.Decimal, map[string]decimal.Decimal) {
	byDate := make(map[string]decimal.Decimal)
	for _, rec := range records {
		if !rec.Present {
			continue
		}
		byDate[attendance.DayKey(rec.Date)] = effectiveDayValue(rec)
	}

	total := decimal.Zero
	for _, v := range byDate {
		total = total.Add(v)
	}
	return total, byDate
}

// CountPresentDays counts present records without same-day deduplication.
// This is the convention the salary breakdown uses for base pay; it is a
// deliberately different measure from SumDayValue and the two must stay
// separate code paths.
func CountPresentDays(records []attendance.Attendance) int {
	count := 0
	for _, rec := range records {
		if rec.Present {
			count++
		}
	}
	return count
}

func effectiveDayValue(rec attendance.Attendance) decimal.Decimal {
	if rec.DayValue.IsZero() {
		return decimal.NewFromInt(1)
	}
	return rec.DayValue
}
