package store

import "socdash/pkg/models"

// ActionType names the intent of an Action.
type ActionType string

const (
	TypeSetSection          ActionType = "SET_CURRENT_SECTION"
	TypeSelectAlert         ActionType = "SET_SELECTED_ALERT"
	TypeSelectInvestigation ActionType = "SET_SELECTED_INVESTIGATION"
	TypeSetAlerts           ActionType = "SET_ALERTS"
	TypeSetInvestigations   ActionType = "SET_INVESTIGATIONS"
	TypeSetIntegrations     ActionType = "SET_INTEGRATIONS"
	TypeSetTeam             ActionType = "SET_SOC_TEAM"
	TypeSetIncidents        ActionType = "SET_INCIDENTS"
	TypeSetMetrics          ActionType = "SET_METRICS"
	TypeAddAlert            ActionType = "ADD_ALERT"
	TypeAddInvestigation    ActionType = "ADD_INVESTIGATION"
	TypeAddIncident         ActionType = "ADD_INCIDENT"
	TypeUpdateAlert         ActionType = "UPDATE_ALERT"
	TypeUpdateInvestigation ActionType = "UPDATE_INVESTIGATION"
	TypeUpdateIntegration   ActionType = "UPDATE_INTEGRATION"
	TypeUpdateTeamMember    ActionType = "UPDATE_TEAM_MEMBER"
	TypeUpdateIncident      ActionType = "UPDATE_INCIDENT"
	TypeSetLoading          ActionType = "SET_LOADING"
	TypeSetError            ActionType = "SET_ERROR"
)

// Action is a message describing one mutation of State.
// The set of actions is closed: only types in this package implement it.
type Action interface {
	Type() ActionType
	action()
}

// SetSection switches the page in focus.
type SetSection struct{ Section Section }

// SelectAlert selects an alert by id. An empty id clears the selection.
type SelectAlert struct{ ID string }

// SelectInvestigation selects an investigation by id. An empty id clears the selection.
type SelectInvestigation struct{ ID string }

// SetAlerts replaces the alert collection.
type SetAlerts struct{ Alerts []models.Alert }

// SetInvestigations replaces the investigation collection.
type SetInvestigations struct{ Investigations []models.Investigation }

// SetIntegrations replaces the integration collection.
type SetIntegrations struct{ Integrations []models.Integration }

// SetTeam replaces the analyst roster.
type SetTeam struct{ Team []models.TeamMember }

// SetIncidents replaces the incident collection.
type SetIncidents struct{ Incidents []models.Incident }

// SetMetrics replaces the aggregate metrics record.
type SetMetrics struct{ Metrics models.Metrics }

// AddAlert prepends one alert.
type AddAlert struct{ Alert models.Alert }

// AddInvestigation prepends one investigation.
type AddInvestigation struct{ Investigation models.Investigation }

// AddIncident prepends one incident.
type AddIncident struct{ Incident models.Incident }

// UpdateAlert patches the alert with the given id.
type UpdateAlert struct {
	ID    string
	Patch models.AlertPatch
}

// UpdateInvestigation patches the investigation with the given id.
type UpdateInvestigation struct {
	ID    string
	Patch models.InvestigationPatch
}

// UpdateIntegration patches the integration with the given id.
type UpdateIntegration struct {
	ID    string
	Patch models.IntegrationPatch
}

// UpdateTeamMember patches the roster entry with the given id.
type UpdateTeamMember struct {
	ID    string
	Patch models.TeamMemberPatch
}

// UpdateIncident patches the incident with the given id.
type UpdateIncident struct {
	ID    string
	Patch models.IncidentPatch
}

// SetLoading sets the in-flight flag of one domain.
type SetLoading struct {
	Domain Domain
	Value  bool
}

// SetError records (or, with an empty message, clears) one domain's fetch failure.
type SetError struct {
	Domain  Domain
	Message string
}

func (SetSection) Type() ActionType          { return TypeSetSection }
func (SelectAlert) Type() ActionType         { return TypeSelectAlert }
func (SelectInvestigation) Type() ActionType { return TypeSelectInvestigation }
func (SetAlerts) Type() ActionType           { return TypeSetAlerts }
func (SetInvestigations) Type() ActionType   { return TypeSetInvestigations }
func (SetIntegrations) Type() ActionType     { return TypeSetIntegrations }
func (SetTeam) Type() ActionType             { return TypeSetTeam }
func (SetIncidents) Type() ActionType        { return TypeSetIncidents }
func (SetMetrics) Type() ActionType          { return TypeSetMetrics }
func (AddAlert) Type() ActionType            { return TypeAddAlert }
func (AddInvestigation) Type() ActionType    { return TypeAddInvestigation }
func (AddIncident) Type() ActionType         { return TypeAddIncident }
func (UpdateAlert) Type() ActionType         { return TypeUpdateAlert }
func (UpdateInvestigation) Type() ActionType { return TypeUpdateInvestigation }
func (UpdateIntegration) Type() ActionType   { return TypeUpdateIntegration }
func (UpdateTeamMember) Type() ActionType    { return TypeUpdateTeamMember }
func (UpdateIncident) Type() ActionType      { return TypeUpdateIncident }
func (SetLoading) Type() ActionType          { return TypeSetLoading }
func (SetError) Type() ActionType            { return TypeSetError }

func (SetSection) action()          {}
func (SelectAlert) action()         {}
func (SelectInvestigation) action() {}
func (SetAlerts) action()           {}
func (SetInvestigations) action()   {}
func (SetIntegrations) action()     {}
func (SetTeam) action()             {}
func (SetIncidents) action()        {}
func (SetMetrics) action()          {}
func (AddAlert) action()            {}
func (AddInvestigation) action()    {}
func (AddIncident) action()         {}
func (UpdateAlert) action()         {}
func (UpdateInvestigation) action() {}
func (UpdateIntegration) action()   {}
func (UpdateTeamMember) action()    {}
func (UpdateIncident) action()      {}
func (SetLoading) action()          {}
func (SetError) action()            {}
