// Package feed turns domain refresh messages into store actions.
package feed

import (
	"encoding/json"
	"fmt"

	"socdash/internal/store"
	"socdash/pkg/models"
)

// TeamDomain names roster refreshes. The roster has no loading or error slot.
const TeamDomain = "soc_team"

// Envelope is one refresh message for a single domain.
//
//	{"domain":"alerts","loading":true}
//	{"domain":"alerts","alerts":[...]}
//	{"domain":"metrics","error":"upstream timeout"}
type Envelope struct {
	Domain  string `json:"domain"`
	Loading bool   `json:"loading,omitempty"`
	Error   string `json:"error,omitempty"`

	Alerts         []models.Alert         `json:"alerts,omitempty"`
	Investigations []models.Investigation `json:"investigations,omitempty"`
	Integrations   []models.Integration   `json:"integrations,omitempty"`
	Incidents      []models.Incident      `json:"incidents,omitempty"`
	Metrics        *models.Metrics        `json:"metrics,omitempty"`
	Team           []models.TeamMember    `json:"soc_team,omitempty"`
}

// Decode parses one envelope and checks its domain.
func Decode(data []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, fmt.Errorf("failed to decode feed envelope: %w", err)
	}
	if env.Domain != TeamDomain && !store.Domain(env.Domain).Valid() {
		return Envelope{}, fmt.Errorf("unknown feed domain %q", env.Domain)
	}
	return env, nil
}

// Actions maps the envelope onto the actions a data fetch would dispatch.
//
// A loading envelope only raises the domain's loading flag. Otherwise the
// domain either receives its payload with the error cleared, or records the
// error; in both cases loading is lowered last.
func (e Envelope) Actions() []store.Action {
	if e.Domain == TeamDomain {
		if e.Loading || e.Error != "" {
			return nil
		}
		return []store.Action{store.SetTeam{Team: orEmpty(e.Team)}}
	}

	d := store.Domain(e.Domain)
	if e.Loading {
		return []store.Action{store.SetLoading{Domain: d, Value: true}}
	}
	if e.Error != "" {
		return []store.Action{
			store.SetError{Domain: d, Message: e.Error},
			store.SetLoading{Domain: d, Value: false},
		}
	}

	var set store.Action
	switch d {
	case store.DomainAlerts:
		set = store.SetAlerts{Alerts: orEmpty(e.Alerts)}
	case store.DomainInvestigations:
		set = store.SetInvestigations{Investigations: orEmpty(e.Investigations)}
	case store.DomainIntegrations:
		set = store.SetIntegrations{Integrations: orEmpty(e.Integrations)}
	case store.DomainIncidents:
		set = store.SetIncidents{Incidents: orEmpty(e.Incidents)}
	case store.DomainMetrics:
		var m models.Metrics
		if e.Metrics != nil {
			m = *e.Metrics
		}
		set = store.SetMetrics{Metrics: m}
	}
	return []store.Action{
		set,
		store.SetError{Domain: d},
		store.SetLoading{Domain: d, Value: false},
	}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
