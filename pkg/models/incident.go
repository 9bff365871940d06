package models

import "time"

// IncidentStatus tracks incident response progress.
type IncidentStatus string

const (
	IncidentOpen          IncidentStatus = "Open"
	IncidentInvestigating IncidentStatus = "Investigating"
	IncidentContained     IncidentStatus = "Contained"
	IncidentResolved      IncidentStatus = "Resolved"
)

// Incident is a confirmed security event under response.
type Incident struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Severity        Severity       `json:"severity"`
	Status          IncidentStatus `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
	Assignee        string         `json:"assignee,omitempty"`
	AffectedSystems []string       `json:"affected_systems,omitempty"`
	Timeline        []string       `json:"timeline,omitempty"`
}

// IncidentPatch carries the fields of an Incident to overwrite.
type IncidentPatch struct {
	Title           *string         `json:"title,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Severity        *Severity       `json:"severity,omitempty"`
	Status          *IncidentStatus `json:"status,omitempty"`
	ResolvedAt      *time.Time      `json:"resolved_at,omitempty"`
	Assignee        *string         `json:"assignee,omitempty"`
	AffectedSystems *[]string       `json:"affected_systems,omitempty"`
	Timeline        *[]string       `json:"timeline,omitempty"`
}

// Apply returns a copy of inc with the patch fields merged in.
func (p IncidentPatch) Apply(inc Incident) Incident {
	if p.Title != nil {
		inc.Title = *p.Title
	}
	if p.Description != nil {
		inc.Description = *p.Description
	}
	if p.Severity != nil {
		inc.Severity = *p.Severity
	}
	if p.Status != nil {
		inc.Status = *p.Status
	}
	if p.ResolvedAt != nil {
		t := *p.ResolvedAt
		inc.ResolvedAt = &t
	}
	if p.Assignee != nil {
		inc.Assignee = *p.Assignee
	}
	if p.AffectedSystems != nil {
		inc.AffectedSystems = *p.AffectedSystems
	}
	if p.Timeline != nil {
		inc.Timeline = *p.Timeline
	}
	return inc
}
