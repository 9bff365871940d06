package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socdash/pkg/models"
)

func ptr[T any](v T) *T { return &v }

func sampleAlerts() []models.Alert {
	ts := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []models.Alert{
		{ID: "a1", Title: "Brute force", Severity: models.SeverityCritical, Status: models.AlertOpen, Timestamp: ts},
		{ID: "a2", Title: "Port scan", Severity: models.SeverityHigh, Status: models.AlertInvestigating, Timestamp: ts},
		{ID: "a3", Title: "Beacon", Severity: models.SeverityMedium, Status: models.AlertResolved, Timestamp: ts},
	}
}

func TestInitialStateDefaults(t *testing.T) {
	s := InitialState()
	assert.Equal(t, SectionDashboard, s.CurrentSection)
	assert.Empty(t, s.Alerts)
	for _, d := range Domains {
		assert.False(t, s.Loading.Get(d), d)
		_, ok := s.Errors.Get(d)
		assert.False(t, ok, d)
	}
}

func TestSetErrorThenSetLoadingLeavesOtherKeysAtDefaults(t *testing.T) {
	s := InitialState()
	s = Reduce(s, SetError{Domain: DomainMetrics, Message: "timeout"})
	s = Reduce(s, SetLoading{Domain: DomainMetrics, Value: false})

	msg, ok := s.Errors.Get(DomainMetrics)
	require.True(t, ok)
	assert.Equal(t, "timeout", msg)
	assert.False(t, s.Loading.Metrics)

	for _, d := range Domains {
		if d == DomainMetrics {
			continue
		}
		assert.False(t, s.Loading.Get(d), d)
		_, ok := s.Errors.Get(d)
		assert.False(t, ok, d)
	}
}

func TestSetLoadingChangesOnlyOneKey(t *testing.T) {
	before := InitialState()
	before.Loading = Loading{Investigations: true, Incidents: true}
	before.Errors = Errors{Integrations: "unreachable"}

	after := Reduce(before, SetLoading{Domain: DomainAlerts, Value: true})

	want := before.Loading
	want.Alerts = true
	assert.Equal(t, want, after.Loading)
	assert.Equal(t, before.Errors, after.Errors)
}

func TestStatusTablesAlwaysHaveEveryDomain(t *testing.T) {
	actions := []Action{
		SetLoading{Domain: DomainAlerts, Value: true},
		SetError{Domain: DomainIncidents, Message: "boom"},
		SetLoading{Domain: Domain("bogus"), Value: true},
		SetError{Domain: Domain(""), Message: "ignored"},
		SetAlerts{Alerts: sampleAlerts()},
		SetError{Domain: DomainIncidents, Message: ""},
		SetLoading{Domain: DomainAlerts, Value: false},
	}

	s := InitialState()
	for _, a := range actions {
		s = Reduce(s, a)
		loading := s.Loading.Map()
		errs := s.Errors.Map()
		require.Len(t, loading, len(Domains))
		require.Len(t, errs, len(Domains))
		for _, d := range Domains {
			_, ok := loading[d]
			assert.True(t, ok, "loading missing %s after %s", d, a.Type())
			_, ok = errs[d]
			assert.True(t, ok, "errors missing %s after %s", d, a.Type())
		}
	}
}

func TestSnapshotJSONKeepsEveryStatusKey(t *testing.T) {
	s := Reduce(InitialState(), SetError{Domain: DomainMetrics, Message: "timeout"})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw struct {
		Loading map[string]bool            `json:"loading"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Loading, len(Domains))
	require.Len(t, raw.Errors, len(Domains))
	for _, d := range Domains {
		want := "null"
		if d == DomainMetrics {
			want = `"timeout"`
		}
		assert.JSONEq(t, want, string(raw.Errors[string(d)]), "errors.%s", d)
	}

	var back State
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s.Errors, back.Errors)
}

func TestUnknownDomainIsNoop(t *testing.T) {
	s := InitialState()
	after := Reduce(s, SetLoading{Domain: "team", Value: true})
	assert.Equal(t, s.Loading, after.Loading)
}

func TestAddPrependsNewestFirst(t *testing.T) {
	s := Reduce(InitialState(), SetAlerts{Alerts: sampleAlerts()})
	s = Reduce(s, AddAlert{Alert: models.Alert{ID: "a4", Title: "New"}})

	require.Len(t, s.Alerts, 4)
	assert.Equal(t, "a4", s.Alerts[0].ID)
	assert.Equal(t, "a1", s.Alerts[1].ID)

	s = Reduce(s, AddIncident{Incident: models.Incident{ID: "i1"}})
	s = Reduce(s, AddIncident{Incident: models.Incident{ID: "i2"}})
	assert.Equal(t, "i2", s.Incidents[0].ID)

	s = Reduce(s, AddInvestigation{Investigation: models.Investigation{ID: "v1"}})
	assert.Equal(t, "v1", s.Investigations[0].ID)
}

func TestUpdatePatchesInPlaceAndPreservesOrder(t *testing.T) {
	s := Reduce(InitialState(), SetAlerts{Alerts: sampleAlerts()})
	status := models.AlertResolved
	s = Reduce(s, UpdateAlert{ID: "a2", Patch: models.AlertPatch{Status: &status, AssignedTo: ptr("sam")}})

	require.Len(t, s.Alerts, 3)
	assert.Equal(t, []string{"a1", "a2", "a3"}, []string{s.Alerts[0].ID, s.Alerts[1].ID, s.Alerts[2].ID})
	assert.Equal(t, models.AlertResolved, s.Alerts[1].Status)
	assert.Equal(t, "sam", s.Alerts[1].AssignedTo)
	assert.Equal(t, "Port scan", s.Alerts[1].Title)
}

func TestUpdateOnlyTouchesFirstMatch(t *testing.T) {
	dup := []models.TeamMember{{ID: "m1", Name: "A"}, {ID: "m1", Name: "B"}}
	s := Reduce(InitialState(), SetTeam{Team: dup})
	s = Reduce(s, UpdateTeamMember{ID: "m1", Patch: models.TeamMemberPatch{Name: ptr("C")}})

	assert.Equal(t, "C", s.Team[0].Name)
	assert.Equal(t, "B", s.Team[1].Name)
}

func TestPatchIsIdempotent(t *testing.T) {
	base := Reduce(InitialState(), SetIncidents{Incidents: []models.Incident{
		{ID: "inc-1", Title: "Ransomware", Status: models.IncidentOpen, Severity: models.SeverityCritical},
		{ID: "inc-2", Title: "Phishing", Status: models.IncidentContained, Severity: models.SeverityHigh},
	}})
	resolved := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	status := models.IncidentResolved
	patch := UpdateIncident{ID: "inc-1", Patch: models.IncidentPatch{Status: &status, ResolvedAt: &resolved}}

	once := Reduce(base, patch)
	twice := Reduce(once, patch)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second patch changed state (-once +twice):\n%s", diff)
	}
}

func TestUnknownIDIsNoop(t *testing.T) {
	base := Reduce(InitialState(), SetAlerts{Alerts: sampleAlerts()})
	base = Reduce(base, SetIntegrations{Integrations: []models.Integration{{ID: "splunk", Name: "Splunk"}}})

	after := Reduce(base, UpdateAlert{ID: "missing", Patch: models.AlertPatch{Title: ptr("x")}})
	after = Reduce(after, UpdateIntegration{ID: "missing", Patch: models.IntegrationPatch{Health: ptr(1)}})
	after = Reduce(after, UpdateInvestigation{ID: "missing", Patch: models.InvestigationPatch{Progress: ptr(50)}})

	if diff := cmp.Diff(base, after); diff != "" {
		t.Fatalf("unknown id changed state (-want +got):\n%s", diff)
	}
}

func TestSelectionOfUnknownIDIsAccepted(t *testing.T) {
	base := Reduce(InitialState(), SetAlerts{Alerts: sampleAlerts()})
	s := Reduce(base, SelectAlert{ID: "not-loaded-yet"})
	s = Reduce(s, SelectInvestigation{ID: "inv-9"})
	s = Reduce(s, SetSection{Section: SectionHunting})

	assert.Equal(t, "not-loaded-yet", s.SelectedAlert)
	assert.Equal(t, "inv-9", s.SelectedInvestigation)
	assert.Equal(t, SectionHunting, s.CurrentSection)
	assert.Equal(t, base.Alerts, s.Alerts)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	base := Reduce(InitialState(), SetAlerts{Alerts: sampleAlerts()})
	snapshot := append([]models.Alert(nil), base.Alerts...)

	_ = Reduce(base, UpdateAlert{ID: "a1", Patch: models.AlertPatch{Title: ptr("changed")}})
	_ = Reduce(base, AddAlert{Alert: models.Alert{ID: "a0"}})
	_ = Reduce(base, SetLoading{Domain: DomainAlerts, Value: true})

	assert.Equal(t, snapshot, base.Alerts)
	assert.False(t, base.Loading.Alerts)
}

func TestSetMetricsReplacesRecord(t *testing.T) {
	m := models.Metrics{TotalAlerts: 42, AlertsTrend: "-12.3%"}
	s := Reduce(InitialState(), SetMetrics{Metrics: m})
	assert.Equal(t, m, s.Metrics)
}
