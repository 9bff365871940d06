package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"socdash/internal/store"
	"socdash/pkg/models"
)

// Snapshot is a full dashboard export, one collection per domain.
type Snapshot struct {
	Alerts         []models.Alert         `json:"alerts"`
	Investigations []models.Investigation `json:"investigations"`
	Integrations   []models.Integration   `json:"integrations"`
	Team           []models.TeamMember    `json:"soc_team"`
	Incidents      []models.Incident      `json:"incidents"`
	Metrics        models.Metrics         `json:"metrics"`
}

// ReadSnapshot decodes a snapshot from r.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// Actions returns the Set actions that load every collection of the snapshot.
func (s *Snapshot) Actions() []store.Action {
	return []store.Action{
		store.SetAlerts{Alerts: orEmpty(s.Alerts)},
		store.SetInvestigations{Investigations: orEmpty(s.Investigations)},
		store.SetIntegrations{Integrations: orEmpty(s.Integrations)},
		store.SetTeam{Team: orEmpty(s.Team)},
		store.SetIncidents{Incidents: orEmpty(s.Incidents)},
		store.SetMetrics{Metrics: s.Metrics},
	}
}
