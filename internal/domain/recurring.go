package domain

import "time"

// ============================================================
// Cadence
// ============================================================

// Cadence tags the recurring time pattern of a detected series.
// Only monthly is recognized today; new cadences are added as new
// classifier entries, never inferred from the monthly bounds.
type Cadence string

// CadenceMonthly is the only cadence currently emitted by the detector.
const CadenceMonthly Cadence = "monthly"

// ============================================================
// Detection configuration
// ============================================================

// DetectionConfig holds the tunables for recurring-charge detection.
// Values are assumed valid (positive, MonthlyMinDays <= MonthlyMaxDays);
// validating them is the host's responsibility.
type DetectionConfig struct {
	// MinOccurrences is how many same-price charges a merchant needs
	// before a series is emitted.
	MinOccurrences int `json:"min_occurrences"`

	// MonthlyMinDays and MonthlyMaxDays bound the day interval between
	// consecutive charges for the monthly cadence.
	MonthlyMinDays int `json:"monthly_min_days"`
	MonthlyMaxDays int `json:"monthly_max_days"`

	// AmountTolerancePct and AmountToleranceAbs define the effective
	// amount tolerance: the larger of pct*clusterMean and abs, per
	// comparison. Forgiving for cheap charges, strict for expensive ones.
	AmountTolerancePct float64 `json:"amount_tolerance_pct"`
	AmountToleranceAbs float64 `json:"amount_tolerance_abs"`

	// DropInvalidDates silently excludes transactions with a zero date
	// during filtering instead of letting them corrupt interval math.
	// Hosts that pre-validate their store can turn this off.
	DropInvalidDates bool `json:"drop_invalid_dates"`
}

// DefaultDetectionConfig returns the shipped tunables: at least 3
// occurrences, a 25-35 day monthly window, and a 10% or $5 tolerance,
// whichever is larger.
func DefaultDetectionConfig() DetectionConfig {
	return DetectionConfig{
		MinOccurrences:     3,
		MonthlyMinDays:     25,
		MonthlyMaxDays:     35,
		AmountTolerancePct: 0.10,
		AmountToleranceAbs: 5.00,
		DropInvalidDates:   true,
	}
}

// ============================================================
// Detector / projector output
// ============================================================

// RecurringSeries is one inferred recurring charge. Built fresh on every
// detection run and never mutated afterwards; two runs over the same input
// (and the same "today") produce deep-equal values.
type RecurringSeries struct {
	Merchant      string    `json:"merchant"`
	AverageAmount float64   `json:"average_amount"`
	Cadence       Cadence   `json:"cadence"`
	LastDate      time.Time `json:"last_date"`
	NextDueDate   time.Time `json:"next_due_date"` // today or later, never past
	Occurrences   int       `json:"occurrences"`
}

// ReminderEventType is the fixed discriminator carried by every ReminderEvent.
const ReminderEventType = "upcoming_bill"

// ReminderEvent is a series surfaced inside the lookahead window, shaped for
// the notification layer. DaysUntilDue is always in [0, lookaheadDays].
type ReminderEvent struct {
	Type          string    `json:"type"`
	Merchant      string    `json:"merchant"`
	AverageAmount float64   `json:"average_amount"`
	Cadence       Cadence   `json:"cadence"`
	DueDate       time.Time `json:"due_date"`
	DaysUntilDue  int       `json:"days_until_due"`
}
