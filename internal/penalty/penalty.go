// Package penalty computes the advisory late-return charge for a rented
// garment. The result is display data until staff finalize the return, at
// which point the realized amount is persisted on the order item.
package penalty

import (
	"math"
	"time"
)

// DefaultDailyRate is the per-day charge once the due date has passed.
const DefaultDailyRate = 100

type Classification string

const (
	Overdue  Classification = "overdue"
	DueToday Classification = "due_today"
	DueSoon  Classification = "due_soon"
	OnTrack  Classification = "on_track"
)

// dueSoonWindowDays is how far ahead of the due date an item is flagged
// as needing attention.
const dueSoonWindowDays = 3

type Assessment struct {
	Classification Classification `json:"classification"`
	PenaltyAmount  int64          `json:"penalty_amount"`
	DaysOverdue    int            `json:"days_overdue"`
}

// Assess evaluates the due date against asOf at the given daily rate.
// A rental due yesterday is one day overdue; an item due today carries no
// penalty until the next day.
func Assess(dueDate, asOf time.Time, dailyRate int64) Assessment {
	diffDays := int(math.Ceil(dueDate.Sub(asOf).Hours() / 24))

	switch {
	case diffDays < 0:
		days := -diffDays
		return Assessment{
			Classification: Overdue,
			PenaltyAmount:  int64(days) * dailyRate,
			DaysOverdue:    days,
		}
	case diffDays == 0:
		return Assessment{Classification: DueToday}
	case diffDays <= dueSoonWindowDays:
		return Assessment{Classification: DueSoon}
	default:
		return Assessment{Classification: OnTrack}
	}
}
