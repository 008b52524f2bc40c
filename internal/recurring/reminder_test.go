package recurring_test

import (
	"testing"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/recurring"
)

func monthlySeries(merchant string, amount float64, due time.Time) domain.RecurringSeries {
	return domain.RecurringSeries{
		Merchant:      merchant,
		AverageAmount: amount,
		Cadence:       domain.CadenceMonthly,
		LastDate:      due.AddDate(0, 0, -30),
		NextDueDate:   due,
		Occurrences:   3,
	}
}

func TestProjectReminders_Window(t *testing.T) {
	today := day(2025, time.September, 1)
	series := []domain.RecurringSeries{
		monthlySeries("Netflix", 15.49, today.AddDate(0, 0, 3)),
		monthlySeries("Gym Total", 49.90, today.AddDate(0, 0, 10)),
	}

	events := recurring.ProjectReminders(series, 7, today)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Merchant != "Netflix" {
		t.Errorf("expected Netflix event, got '%s'", events[0].Merchant)
	}
	if events[0].DaysUntilDue != 3 {
		t.Errorf("expected 3 days until due, got %d", events[0].DaysUntilDue)
	}
	if events[0].Type != domain.ReminderEventType {
		t.Errorf("expected type '%s', got '%s'", domain.ReminderEventType, events[0].Type)
	}
}

func TestProjectReminders_BoundsInclusive(t *testing.T) {
	today := day(2025, time.September, 1)
	series := []domain.RecurringSeries{
		monthlySeries("due today", 10, today),
		monthlySeries("due at window edge", 10, today.AddDate(0, 0, 7)),
		monthlySeries("overdue", 10, today.AddDate(0, 0, -1)),
		monthlySeries("past window", 10, today.AddDate(0, 0, 8)),
	}

	events := recurring.ProjectReminders(series, 7, today)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].DaysUntilDue != 0 {
		t.Errorf("expected 0 days for a due-today series, got %d", events[0].DaysUntilDue)
	}
	if events[1].DaysUntilDue != 7 {
		t.Errorf("expected 7 days at the window edge, got %d", events[1].DaysUntilDue)
	}
	for _, e := range events {
		if e.DaysUntilDue < 0 || e.DaysUntilDue > 7 {
			t.Errorf("event %s outside window: %d days", e.Merchant, e.DaysUntilDue)
		}
	}
}

func TestProjectReminders_PreservesInputOrder(t *testing.T) {
	today := day(2025, time.September, 1)
	series := []domain.RecurringSeries{
		monthlySeries("first", 10, today.AddDate(0, 0, 1)),
		monthlySeries("second", 10, today.AddDate(0, 0, 2)),
		monthlySeries("third", 10, today.AddDate(0, 0, 5)),
	}

	events := recurring.ProjectReminders(series, 7, today)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"first", "second", "third"} {
		if events[i].Merchant != want {
			t.Errorf("position %d: expected '%s', got '%s'", i, want, events[i].Merchant)
		}
	}
}

func TestProjectReminders_ClockTimeIgnored(t *testing.T) {
	// "Today" arrives with wall-clock time attached; day counting must not
	// shift because of it.
	today := time.Date(2025, time.September, 1, 14, 30, 12, 0, time.UTC)
	series := []domain.RecurringSeries{
		monthlySeries("tomorrow", 10, day(2025, time.September, 2)),
	}

	events := recurring.ProjectReminders(series, 7, today)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].DaysUntilDue != 1 {
		t.Errorf("expected 1 day until due, got %d", events[0].DaysUntilDue)
	}
}

func TestProjectReminders_EmptyInput(t *testing.T) {
	events := recurring.ProjectReminders(nil, 7, day(2025, time.September, 1))
	if len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}
