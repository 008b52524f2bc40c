// Package recurring implements the recurring-charge detection engine: it
// infers which bank transactions represent the same recurring charge,
// establishes its cadence, and projects when it will next occur. Everything
// here is a pure function over in-memory data — no I/O, no ambient clock —
// so repeated runs over the same input and "today" are bit-identical.
package recurring

import (
	"math"
	"sort"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
)

// amountCluster is a growing group of same-merchant transactions believed to
// share one price point, plus a running arithmetic mean of their amounts.
// It only lives for the duration of one merchant group's detection.
type amountCluster struct {
	transactions []domain.Transaction
	sum          float64
}

func (c *amountCluster) mean() float64 {
	return c.sum / float64(len(c.transactions))
}

func (c *amountCluster) add(tx domain.Transaction) {
	c.transactions = append(c.transactions, tx)
	c.sum += tx.Amount
}

// effectiveTolerance is the larger of the absolute tolerance and the
// percentage of the cluster's current mean, evaluated per comparison.
func effectiveTolerance(mean float64, cfg domain.DetectionConfig) float64 {
	return math.Max(cfg.AmountToleranceAbs, cfg.AmountTolerancePct*mean)
}

// Detect infers recurring series from raw transactions. The today parameter
// anchors due-date projection; callers pass it explicitly so detection stays
// reproducible. Output is sorted ascending by projected due date — downstream
// reminder prioritization depends on that order.
func Detect(transactions []domain.Transaction, cfg domain.DetectionConfig, today time.Time) []domain.RecurringSeries {
	today = dateOnly(today)

	// Steps 1-2: keep expenses with usable dates, group by merchant key.
	// Empty keys are discarded; they cannot be grouped with anything.
	groups := make(map[string][]domain.Transaction)
	for _, tx := range transactions {
		if tx.Amount <= 0 {
			continue
		}
		if cfg.DropInvalidDates && tx.Date.IsZero() {
			continue
		}
		key := MerchantKey(tx.DisplayName())
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	var series []domain.RecurringSeries
	for _, group := range groups {
		series = append(series, detectGroup(group, cfg, today)...)
	}

	// Step 9: soonest due first. Ties broken on merchant and amount so the
	// order never depends on map iteration.
	sort.Slice(series, func(i, j int) bool {
		if !series[i].NextDueDate.Equal(series[j].NextDueDate) {
			return series[i].NextDueDate.Before(series[j].NextDueDate)
		}
		if series[i].Merchant != series[j].Merchant {
			return series[i].Merchant < series[j].Merchant
		}
		return series[i].AverageAmount < series[j].AverageAmount
	})

	return series
}

// detectGroup runs steps 3-8 for one merchant group.
func detectGroup(group []domain.Transaction, cfg domain.DetectionConfig, today time.Time) []domain.RecurringSeries {
	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Date.Before(group[j].Date)
	})

	// Step 4: greedy first-fit clustering in chronological order. Each
	// transaction joins the first existing cluster whose running mean is
	// within the effective tolerance, or seeds a new one. First-fit keeps
	// the walk linear and deterministic; it is part of the contract.
	var clusters []*amountCluster
	for _, tx := range group {
		placed := false
		for _, c := range clusters {
			if math.Abs(tx.Amount-c.mean()) < effectiveTolerance(c.mean(), cfg) {
				c.add(tx)
				placed = true
				break
			}
		}
		if !placed {
			clusters = append(clusters, &amountCluster{
				transactions: []domain.Transaction{tx},
				sum:          tx.Amount,
			})
		}
	}

	var series []domain.RecurringSeries
	for _, c := range clusters {
		// Step 5: no partial or weak series are ever emitted.
		if len(c.transactions) < cfg.MinOccurrences {
			continue
		}

		// Step 6: day intervals between consecutive charges. The whole
		// cluster qualifies only if every interval fits a supported
		// cadence; one stray interval produces no series at all.
		intervals := make([]int, 0, len(c.transactions)-1)
		for i := 1; i < len(c.transactions); i++ {
			intervals = append(intervals, daysBetween(c.transactions[i-1].Date, c.transactions[i].Date))
		}
		cadence, ok := classifyCadence(intervals, cfg)
		if !ok {
			continue
		}

		// Step 7: cadence length = mean interval rounded to whole days,
		// then roll the due date forward until it is not before today.
		// Keeps projections fresh even when the charge was last seen
		// months ago.
		cadenceDays := roundedMean(intervals)
		last := c.transactions[len(c.transactions)-1]
		due := dateOnly(last.Date)
		for due.Before(today) {
			due = due.AddDate(0, 0, cadenceDays)
		}

		series = append(series, domain.RecurringSeries{
			Merchant:      last.DisplayName(),
			AverageAmount: c.mean(),
			Cadence:       cadence,
			LastDate:      dateOnly(last.Date),
			NextDueDate:   due,
			Occurrences:   len(c.transactions),
		})
	}
	return series
}

func roundedMean(intervals []int) int {
	total := 0
	for _, d := range intervals {
		total += d
	}
	return int(math.Round(float64(total) / float64(len(intervals))))
}

// dateOnly truncates to a calendar date in UTC; the engine has no use for
// clock time.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
