package store

import (
	"encoding/json"

	"socdash/pkg/models"
)

// Domain is a data category with its own loading and error tracking.
type Domain string

const (
	DomainAlerts         Domain = "alerts"
	DomainInvestigations Domain = "investigations"
	DomainIntegrations   Domain = "integrations"
	DomainMetrics        Domain = "metrics"
	DomainIncidents      Domain = "incidents"
)

// Domains lists every tracked domain in display order.
var Domains = []Domain{
	DomainAlerts,
	DomainInvestigations,
	DomainIntegrations,
	DomainMetrics,
	DomainIncidents,
}

// Valid reports whether d is one of the tracked domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainAlerts, DomainInvestigations, DomainIntegrations, DomainMetrics, DomainIncidents:
		return true
	}
	return false
}

// Section identifies the dashboard page in focus.
type Section string

const (
	SectionDashboard      Section = "dashboard"
	SectionAlerts         Section = "alerts"
	SectionInvestigations Section = "investigations"
	SectionHunting        Section = "hunting"
	SectionIncidents      Section = "incidents"
	SectionAnalytics      Section = "analytics"
	SectionIntegrations   Section = "integrations"
)

// Loading holds one in-flight flag per domain. Every domain always has a value.
type Loading struct {
	Alerts         bool `json:"alerts"`
	Investigations bool `json:"investigations"`
	Integrations   bool `json:"integrations"`
	Metrics        bool `json:"metrics"`
	Incidents      bool `json:"incidents"`
}

// Get returns the flag for d; unknown domains report false.
func (l Loading) Get(d Domain) bool {
	if p := l.field(d); p != nil {
		return *p
	}
	return false
}

// With returns a copy of l with only d's flag replaced.
func (l Loading) With(d Domain, v bool) Loading {
	if p := l.field(d); p != nil {
		*p = v
	}
	return l
}

// Map returns the flags keyed by domain.
func (l Loading) Map() map[Domain]bool {
	out := make(map[Domain]bool, len(Domains))
	for _, d := range Domains {
		out[d] = l.Get(d)
	}
	return out
}

func (l *Loading) field(d Domain) *bool {
	switch d {
	case DomainAlerts:
		return &l.Alerts
	case DomainInvestigations:
		return &l.Investigations
	case DomainIntegrations:
		return &l.Integrations
	case DomainMetrics:
		return &l.Metrics
	case DomainIncidents:
		return &l.Incidents
	}
	return nil
}

// Errors holds the last fetch failure per domain. An empty message means no error.
type Errors struct {
	Alerts         string `json:"alerts"`
	Investigations string `json:"investigations"`
	Integrations   string `json:"integrations"`
	Metrics        string `json:"metrics"`
	Incidents      string `json:"incidents"`
}

// Get returns the message recorded for d and whether one is set.
func (e Errors) Get(d Domain) (string, bool) {
	if p := e.field(d); p != nil && *p != "" {
		return *p, true
	}
	return "", false
}

// With returns a copy of e with only d's message replaced. An empty msg clears it.
func (e Errors) With(d Domain, msg string) Errors {
	if p := e.field(d); p != nil {
		*p = msg
	}
	return e
}

// Map returns the messages keyed by domain; absent errors map to nil.
func (e Errors) Map() map[Domain]*string {
	out := make(map[Domain]*string, len(Domains))
	for _, d := range Domains {
		if msg, ok := e.Get(d); ok {
			out[d] = &msg
		} else {
			out[d] = nil
		}
	}
	return out
}

// MarshalJSON writes every domain key; absent errors are null.
func (e Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Map())
}

// UnmarshalJSON reads the form written by MarshalJSON. Unknown keys are ignored.
func (e *Errors) UnmarshalJSON(data []byte) error {
	var raw map[Domain]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = Errors{}
	for d, msg := range raw {
		if p := e.field(d); p != nil && msg != nil {
			*p = *msg
		}
	}
	return nil
}

func (e *Errors) field(d Domain) *string {
	switch d {
	case DomainAlerts:
		return &e.Alerts
	case DomainInvestigations:
		return &e.Investigations
	case DomainIntegrations:
		return &e.Integrations
	case DomainMetrics:
		return &e.Metrics
	case DomainIncidents:
		return &e.Incidents
	}
	return nil
}

// State is one immutable snapshot of dashboard data and UI status.
// Snapshots handed out by the Store must not be modified by callers.
type State struct {
	Alerts         []models.Alert         `json:"alerts"`
	Investigations []models.Investigation `json:"investigations"`
	Integrations   []models.Integration   `json:"integrations"`
	Team           []models.TeamMember    `json:"soc_team"`
	Incidents      []models.Incident      `json:"incidents"`
	Metrics        models.Metrics         `json:"metrics"`

	CurrentSection        Section `json:"current_section"`
	SelectedAlert         string  `json:"selected_alert,omitempty"`
	SelectedInvestigation string  `json:"selected_investigation,omitempty"`

	Loading Loading `json:"loading"`
	Errors  Errors  `json:"errors"`
}

// InitialState is the snapshot a new session starts from.
func InitialState() State {
	return State{
		Alerts:         []models.Alert{},
		Investigations: []models.Investigation{},
		Integrations:   []models.Integration{},
		Team:           []models.TeamMember{},
		Incidents:      []models.Incident{},
		CurrentSection: SectionDashboard,
	}
}
