package store

import "socdash/pkg/models"

// Reduce applies a to s and returns the next snapshot.
// It never mutates s: any collection or status table it changes is copied first.
// Actions that reference unknown ids or domains return the state unchanged.
func Reduce(s State, a Action) State {
	next, _ := reduce(s, a)
	return next
}

// reduce also reports whether a matched a known action variant.
func reduce(s State, a Action) (State, bool) {
	switch act := a.(type) {
	case SetSection:
		s.CurrentSection = act.Section
	case SelectAlert:
		s.SelectedAlert = act.ID
	case SelectInvestigation:
		s.SelectedInvestigation = act.ID

	case SetAlerts:
		s.Alerts = act.Alerts
	case SetInvestigations:
		s.Investigations = act.Investigations
	case SetIntegrations:
		s.Integrations = act.Integrations
	case SetTeam:
		s.Team = act.Team
	case SetIncidents:
		s.Incidents = act.Incidents
	case SetMetrics:
		s.Metrics = act.Metrics

	case AddAlert:
		s.Alerts = prepend(s.Alerts, act.Alert)
	case AddInvestigation:
		s.Investigations = prepend(s.Investigations, act.Investigation)
	case AddIncident:
		s.Incidents = prepend(s.Incidents, act.Incident)

	case UpdateAlert:
		s.Alerts = patchByID(s.Alerts, act.ID,
			func(a models.Alert) string { return a.ID }, act.Patch.Apply)
	case UpdateInvestigation:
		s.Investigations = patchByID(s.Investigations, act.ID,
			func(i models.Investigation) string { return i.ID }, act.Patch.Apply)
	case UpdateIntegration:
		s.Integrations = patchByID(s.Integrations, act.ID,
			func(i models.Integration) string { return i.ID }, act.Patch.Apply)
	case UpdateTeamMember:
		s.Team = patchByID(s.Team, act.ID,
			func(m models.TeamMember) string { return m.ID }, act.Patch.Apply)
	case UpdateIncident:
		s.Incidents = patchByID(s.Incidents, act.ID,
			func(i models.Incident) string { return i.ID }, act.Patch.Apply)

	case SetLoading:
		s.Loading = s.Loading.With(act.Domain, act.Value)
	case SetError:
		s.Errors = s.Errors.With(act.Domain, act.Message)

	default:
		return s, false
	}
	return s, true
}

// prepend keeps the newest entity first.
func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

// patchByID replaces the first element whose id matches with apply(element).
// The input slice is returned as-is when nothing matches.
func patchByID[T any](items []T, id string, idOf func(T) string, apply func(T) T) []T {
	for i, item := range items {
		if idOf(item) != id {
			continue
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = apply(item)
		return out
	}
	return items
}
