package domain

// DetectionMetrics is the operational snapshot returned by
// GET /v1/metrics/detection.
type DetectionMetrics struct {
	TotalRuns    int64   `json:"total_runs"`
	ErrorRate    float64 `json:"error_rate"`
	CacheHitRate float64 `json:"cache_hit_rate"`
	Period       string  `json:"period"`
}
