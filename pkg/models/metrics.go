package models

// Metrics is the SOC-wide aggregate reported by the metrics source.
// Trend fields are human-readable percentages such as "-12.3%".
type Metrics struct {
	TotalAlerts          int     `json:"total_alerts"`
	CriticalAlerts       int     `json:"critical_alerts"`
	ActiveInvestigations int     `json:"active_investigations"`
	ResolvedIncidents    int     `json:"resolved_incidents"`
	MeanTimeToDetect     float64 `json:"mean_time_to_detect"`  // minutes
	MeanTimeToResolve    float64 `json:"mean_time_to_resolve"` // minutes
	FalsePositiveRate    float64 `json:"false_positive_rate"`  // percent
	ThreatScore          int     `json:"threat_score"`

	AlertsTrend         string `json:"alerts_trend,omitempty"`
	CriticalTrend       string `json:"critical_trend,omitempty"`
	InvestigationsTrend string `json:"investigations_trend,omitempty"`
	ResolvedTrend       string `json:"resolved_trend,omitempty"`
	MTTDTrend           string `json:"mttd_trend,omitempty"`
	MTTRTrend           string `json:"mttr_trend,omitempty"`
}
