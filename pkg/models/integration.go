package models

import "time"

// IntegrationStatus is the connection state of a data source.
type IntegrationStatus string

const (
	IntegrationConnected    IntegrationStatus = "Connected"
	IntegrationDisconnected IntegrationStatus = "Disconnected"
	IntegrationError        IntegrationStatus = "Error"
	IntegrationSyncing      IntegrationStatus = "Syncing"
)

// Integration is a connected telemetry or tooling source (SIEM, EDR, IdP).
type Integration struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Status       IntegrationStatus `json:"status"`
	LastSync     time.Time         `json:"last_sync"`
	EventsPerDay int64             `json:"events_per_day"`
	Health       int               `json:"health"`
}

// IntegrationPatch carries the fields of an Integration to overwrite.
type IntegrationPatch struct {
	Name         *string            `json:"name,omitempty"`
	Type         *string            `json:"type,omitempty"`
	Status       *IntegrationStatus `json:"status,omitempty"`
	LastSync     *time.Time         `json:"last_sync,omitempty"`
	EventsPerDay *int64             `json:"events_per_day,omitempty"`
	Health       *int               `json:"health,omitempty"`
}

// Apply returns a copy of in with the patch fields merged in.
func (p IntegrationPatch) Apply(in Integration) Integration {
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Type != nil {
		in.Type = *p.Type
	}
	if p.Status != nil {
		in.Status = *p.Status
	}
	if p.LastSync != nil {
		in.LastSync = *p.LastSync
	}
	if p.EventsPerDay != nil {
		in.EventsPerDay = *p.EventsPerDay
	}
	if p.Health != nil {
		in.Health = *p.Health
	}
	return in
}
