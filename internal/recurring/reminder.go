package recurring

import (
	"math"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
)

// DefaultLookaheadDays is the reminder window used when the host does not
// override it.
const DefaultLookaheadDays = 7

// ProjectReminders shapes the series due within the lookahead window into
// reminder events. Strictly overdue series and series beyond the window are
// excluded, not flagged. Output order matches input order, which Detect
// already sorts ascending by due date.
func ProjectReminders(series []domain.RecurringSeries, lookaheadDays int, today time.Time) []domain.ReminderEvent {
	events := make([]domain.ReminderEvent, 0, len(series))
	for _, s := range series {
		days := daysUntil(s.NextDueDate, today)
		if days < 0 || days > lookaheadDays {
			continue
		}
		events = append(events, domain.ReminderEvent{
			Type:          domain.ReminderEventType,
			Merchant:      s.Merchant,
			AverageAmount: s.AverageAmount,
			Cadence:       s.Cadence,
			DueDate:       s.NextDueDate,
			DaysUntilDue:  days,
		})
	}
	return events
}

// daysUntil is the ceiling of (due - today) in days, so a due date later
// today counts as 0 and tomorrow as 1 regardless of clock time.
func daysUntil(due, today time.Time) int {
	return int(math.Ceil(due.Sub(dateOnly(today)).Hours() / 24))
}
