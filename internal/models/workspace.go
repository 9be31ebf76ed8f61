package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkspaceStatus mirrors the workspace status enum in the database.
type WorkspaceStatus string

// TeamRole mirrors the team role enum in the database.
type TeamRole string

// Workspace represents a row in the workspaces table.
type Workspace struct {
	WorkspaceID    string           `db:"workspace_id"`
	OrganizationID string           `db:"organization_id"`
	AdminMemberID  *string          `db:"admin_member_id"`
	Title          string           `db:"title"`
	Description    string           `db:"description"`
	Status         WorkspaceStatus  `db:"status"`
	RemittanceRate *decimal.Decimal `db:"remittance_rate"` // NULL falls back to the org default
	StartDate      time.Time        `db:"start_date"`
	EndDate        *time.Time       `db:"end_date"`
	AuditFields
}

// Team represents a row in the teams table.
type Team struct {
	TeamID               string           `db:"team_id"`
	OrganizationID       string           `db:"organization_id"`
	Title                string           `db:"title"`
	Description          string           `db:"description"`
	CoordinatorMemberID  *string          `db:"coordinator_member_id"`
	CustomRemittanceRate *decimal.Decimal `db:"custom_remittance_rate"`
	AuditFields
}

// TeamMember represents a row in the team_members table.
type TeamMember struct {
	TeamMemberID string    `db:"team_member_id"`
	TeamID       string    `db:"team_id"`
	MemberID     string    `db:"member_id"`
	Role         TeamRole  `db:"role"`
	JoinedAt     time.Time `db:"joined_at"`
}

// WorkspaceTeam represents a row in the workspace_teams join table.
type WorkspaceTeam struct {
	WorkspaceTeamID string `db:"workspace_team_id"`
	WorkspaceID     string `db:"workspace_id"`
	TeamID          string `db:"team_id"`
	AuditFields
}
