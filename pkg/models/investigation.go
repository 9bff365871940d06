package models

import "time"

// InvestigationStatus tracks an investigation through its lifecycle.
type InvestigationStatus string

const (
	InvestigationActive    InvestigationStatus = "Active"
	InvestigationPending   InvestigationStatus = "Pending"
	InvestigationCompleted InvestigationStatus = "Completed"
	InvestigationClosed    InvestigationStatus = "Closed"
)

// Priority orders analyst work.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Investigation groups alerts under an analyst-owned case.
type Investigation struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Status      InvestigationStatus `json:"status"`
	Priority    Priority            `json:"priority"`
	AssignedTo  string              `json:"assigned_to,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	AlertIDs    []string            `json:"alert_ids,omitempty"`
	Findings    []string            `json:"findings,omitempty"`
	Progress    int                 `json:"progress"`
}

// InvestigationPatch carries the fields of an Investigation to overwrite.
type InvestigationPatch struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Status      *InvestigationStatus `json:"status,omitempty"`
	Priority    *Priority            `json:"priority,omitempty"`
	AssignedTo  *string              `json:"assigned_to,omitempty"`
	UpdatedAt   *time.Time           `json:"updated_at,omitempty"`
	AlertIDs    *[]string            `json:"alert_ids,omitempty"`
	Findings    *[]string            `json:"findings,omitempty"`
	Progress    *int                 `json:"progress,omitempty"`
}

// Apply returns a copy of inv with the patch fields merged in.
func (p InvestigationPatch) Apply(inv Investigation) Investigation {
	if p.Title != nil {
		inv.Title = *p.Title
	}
	if p.Description != nil {
		inv.Description = *p.Description
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Priority != nil {
		inv.Priority = *p.Priority
	}
	if p.AssignedTo != nil {
		inv.AssignedTo = *p.AssignedTo
	}
	if p.UpdatedAt != nil {
		inv.UpdatedAt = *p.UpdatedAt
	}
	if p.AlertIDs != nil {
		inv.AlertIDs = *p.AlertIDs
	}
	if p.Findings != nil {
		inv.Findings = *p.Findings
	}
	if p.Progress != nil {
		inv.Progress = *p.Progress
	}
	return inv
}
