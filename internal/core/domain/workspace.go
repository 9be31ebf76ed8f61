package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkspaceStatus indicates whether a workspace is open for new entries.
type WorkspaceStatus string

const (
	WorkspaceActive   WorkspaceStatus = "ACTIVE"
	WorkspaceArchived WorkspaceStatus = "ARCHIVED"
	WorkspaceClosed   WorkspaceStatus = "CLOSED"
)

// Workspace is a bounded operating period inside an organization. Entries
// must occur within its [StartDate, EndDate] window, and its remittance rate
// is the default percentage applied to team obligations.
type Workspace struct {
	WorkspaceID    string           `json:"workspaceID"` // Primary Key (e.g., UUID)
	OrganizationID string           `json:"organizationID"`
	AdminMemberID  *string          `json:"adminMemberID,omitempty"` // Assigned later when null
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Status         WorkspaceStatus  `json:"status"`
	RemittanceRate *decimal.Decimal `json:"remittanceRate,omitempty"` // Percentage 0-100, default 90
	StartDate      time.Time        `json:"startDate"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
	AuditFields
}

// ContainsDate reports whether d falls within the workspace's active window.
// A nil EndDate leaves the window open-ended.
func (w Workspace) ContainsDate(d time.Time) bool {
	day := d.Truncate(24 * time.Hour)
	if day.Before(w.StartDate.Truncate(24 * time.Hour)) {
		return false
	}
	if w.EndDate != nil && day.After(w.EndDate.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// Team is an organization-level group that submits entries into workspaces.
type Team struct {
	TeamID               string           `json:"teamID"`
	OrganizationID       string           `json:"organizationID"`
	Title                string           `json:"title"`
	Description          string           `json:"description"`
	CoordinatorMemberID  *string          `json:"coordinatorMemberID,omitempty"`
	CustomRemittanceRate *decimal.Decimal `json:"customRemittanceRate,omitempty"` // Overrides workspace rate when set, 0-100
	AuditFields
}

// TeamRole defines the possible roles within a team.
type TeamRole string

const (
	TeamRoleSubmitter TeamRole = "SUBMITTER"
	TeamRoleAuditor   TeamRole = "AUDITOR"
)

// TeamMember represents the membership of an organization member in a team.
type TeamMember struct {
	TeamMemberID string    `json:"teamMemberID"`
	TeamID       string    `json:"teamID"`
	MemberID     string    `json:"memberID"` // FK -> OrganizationMember
	Role         TeamRole  `json:"role"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// WorkspaceTeam joins a team into a workspace. Remittance obligations are
// tracked per workspace-team.
type WorkspaceTeam struct {
	WorkspaceTeamID string `json:"workspaceTeamID"`
	WorkspaceID     string `json:"workspaceID"`
	TeamID          string `json:"teamID"`
	AuditFields
}

// EffectiveRemittanceRate picks the rate applied to this workspace-team's
// approved entries: team custom rate first, then the workspace default, then
// the organization-wide fallback.
func EffectiveRemittanceRate(team Team, workspace Workspace, orgDefault decimal.Decimal) decimal.Decimal {
	if team.CustomRemittanceRate != nil {
		return *team.CustomRemittanceRate
	}
	if workspace.RemittanceRate != nil {
		return *workspace.RemittanceRate
	}
	return orgDefault
}
