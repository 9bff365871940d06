package models

import "time"

// AlertStatus is the triage state of an alert.
type AlertStatus string

const (
	AlertOpen          AlertStatus = "Open"
	AlertInvestigating AlertStatus = "Investigating"
	AlertResolved      AlertStatus = "Resolved"
	AlertFalsePositive AlertStatus = "False Positive"
)

// Alert is a detection raised by one of the connected sources.
type Alert struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Severity       Severity    `json:"severity"`
	Status         AlertStatus `json:"status"`
	Source         string      `json:"source,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	AssignedTo     string      `json:"assigned_to,omitempty"`
	AffectedAssets []string    `json:"affected_assets,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
}

// AlertPatch carries the fields of an Alert to overwrite. Nil fields are kept.
type AlertPatch struct {
	Title          *string      `json:"title,omitempty"`
	Description    *string      `json:"description,omitempty"`
	Severity       *Severity    `json:"severity,omitempty"`
	Status         *AlertStatus `json:"status,omitempty"`
	Source         *string      `json:"source,omitempty"`
	AssignedTo     *string      `json:"assigned_to,omitempty"`
	AffectedAssets *[]string    `json:"affected_assets,omitempty"`
	Tags           *[]string    `json:"tags,omitempty"`
}

// Apply returns a copy of a with the patch fields merged in.
func (p AlertPatch) Apply(a Alert) Alert {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Severity != nil {
		a.Severity = *p.Severity
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Source != nil {
		a.Source = *p.Source
	}
	if p.AssignedTo != nil {
		a.AssignedTo = *p.AssignedTo
	}
	if p.AffectedAssets != nil {
		a.AffectedAssets = *p.AffectedAssets
	}
	if p.Tags != nil {
		a.Tags = *p.Tags
	}
	return a
}
