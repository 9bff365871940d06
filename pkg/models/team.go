package models

// MemberStatus is an analyst's presence.
type MemberStatus string

const (
	MemberOnline  MemberStatus = "online"
	MemberAway    MemberStatus = "away"
	MemberOffline MemberStatus = "offline"
)

// TeamMember is one analyst on the SOC roster.
type TeamMember struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Role        string       `json:"role"`
	Email       string       `json:"email,omitempty"`
	Status      MemberStatus `json:"status"`
	ActiveCases int          `json:"active_cases"`
}

// TeamMemberPatch carries the fields of a TeamMember to overwrite.
type TeamMemberPatch struct {
	Name        *string       `json:"name,omitempty"`
	Role        *string       `json:"role,omitempty"`
	Email       *string       `json:"email,omitempty"`
	Status      *MemberStatus `json:"status,omitempty"`
	ActiveCases *int          `json:"active_cases,omitempty"`
}

// Apply returns a copy of m with the patch fields merged in.
func (p TeamMemberPatch) Apply(m TeamMember) TeamMember {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Role != nil {
		m.Role = *p.Role
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.ActiveCases != nil {
		m.ActiveCases = *p.ActiveCases
	}
	return m
}
