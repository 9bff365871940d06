package views

import "socdash/internal/store"

// Dashboard bundles every derived view of one snapshot.
type Dashboard struct {
	Calculated Calculated `json:"calculated_metrics"`
	Trends     []Trend    `json:"trends"`
	KPIs       Summary    `json:"kpis"`
}

// Build computes the full derived view of s.
func Build(s store.State) Dashboard {
	c := Calculate(s)
	return Dashboard{
		Calculated: c,
		Trends:     Trends(s.Metrics),
		KPIs:       KPISummary(s.Metrics, c),
	}
}
