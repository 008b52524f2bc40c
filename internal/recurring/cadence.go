package recurring

import "github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"

// cadenceClassifier matches a cluster's interval pattern against one cadence.
// A classifier matches only if every consecutive-charge interval falls inside
// its day bounds; a single out-of-range interval rejects the whole cluster.
type cadenceClassifier struct {
	cadence domain.Cadence
	minDays int
	maxDays int
}

func (c cadenceClassifier) matches(intervals []int) bool {
	for _, d := range intervals {
		if d < c.minDays || d > c.maxDays {
			return false
		}
	}
	return true
}

// classifiers returns the cadence classifiers in priority order. Monthly is
// the only entry today; weekly, biweekly and annual slot in here with their
// own bounds when they are supported.
func classifiers(cfg domain.DetectionConfig) []cadenceClassifier {
	return []cadenceClassifier{
		{cadence: domain.CadenceMonthly, minDays: cfg.MonthlyMinDays, maxDays: cfg.MonthlyMaxDays},
	}
}

// classifyCadence resolves a cluster's intervals to a cadence, or reports
// that no supported cadence fits. Clusters with no intervals never classify.
func classifyCadence(intervals []int, cfg domain.DetectionConfig) (domain.Cadence, bool) {
	if len(intervals) == 0 {
		return "", false
	}
	for _, c := range classifiers(cfg) {
		if c.matches(intervals) {
			return c.cadence, true
		}
	}
	return "", false
}
