// Package views computes read-only aggregates over a store snapshot.
// Every function here is pure: the same snapshot always yields equal results.
package views

import (
	"socdash/internal/store"
	"socdash/pkg/models"
)

// Calculated holds counts and rates derived from the entity collections.
type Calculated struct {
	TotalAlerts    int `json:"total_alerts"`
	CriticalAlerts int `json:"critical_alerts"`
	HighAlerts     int `json:"high_alerts"`
	OpenAlerts     int `json:"open_alerts"`
	ResolvedAlerts int `json:"resolved_alerts"`

	TotalInvestigations     int `json:"total_investigations"`
	ActiveInvestigations    int `json:"active_investigations"`
	CompletedInvestigations int `json:"completed_investigations"`

	ActiveIncidents   int `json:"active_incidents"`
	ResolvedIncidents int `json:"resolved_incidents"`

	ConnectedIntegrations int `json:"connected_integrations"`
	OnlineAnalysts        int `json:"online_analysts"`

	AlertResolutionRate         float64 `json:"alert_resolution_rate"`
	InvestigationCompletionRate float64 `json:"investigation_completion_rate"`
}

// Calculate derives counts and rates from s.
func Calculate(s store.State) Calculated {
	var c Calculated

	c.TotalAlerts = len(s.Alerts)
	for _, a := range s.Alerts {
		switch a.Severity {
		case models.SeverityCritical:
			c.CriticalAlerts++
		case models.SeverityHigh:
			c.HighAlerts++
		}
		switch a.Status {
		case models.AlertResolved:
			c.ResolvedAlerts++
		case models.AlertOpen:
			c.OpenAlerts++
		}
	}

	c.TotalInvestigations = len(s.Investigations)
	for _, inv := range s.Investigations {
		switch inv.Status {
		case models.InvestigationActive:
			c.ActiveInvestigations++
		case models.InvestigationCompleted:
			c.CompletedInvestigations++
		}
	}

	for _, inc := range s.Incidents {
		if inc.Status == models.IncidentResolved {
			c.ResolvedIncidents++
		} else {
			c.ActiveIncidents++
		}
	}

	for _, in := range s.Integrations {
		if in.Status == models.IntegrationConnected {
			c.ConnectedIntegrations++
		}
	}
	for _, m := range s.Team {
		if m.Status == models.MemberOnline {
			c.OnlineAnalysts++
		}
	}

	c.AlertResolutionRate = Rate(c.ResolvedAlerts, c.TotalAlerts)
	c.InvestigationCompletionRate = Rate(c.CompletedInvestigations, c.TotalInvestigations)
	return c
}

// Rate returns part/total as a percentage, or 0 when total is 0.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
