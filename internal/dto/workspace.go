package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWorkspaceRequest defines the structure for creating a workspace.
type CreateWorkspaceRequest struct {
	Title          string           `json:"title" binding:"required"`
	Description    string           `json:"description"`
	AdminMemberID  *string          `json:"adminMemberID,omitempty"`
	RemittanceRate *decimal.Decimal `json:"remittanceRate,omitempty"` // 0-100, defaults to 90 when nil
	StartDate      time.Time        `json:"startDate" binding:"required"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
}

// UpdateWorkspaceRequest defines mutable workspace fields. Nil fields are
// left unchanged.
type UpdateWorkspaceRequest struct {
	Title          *string                 `json:"title,omitempty"`
	Description    *string                 `json:"description,omitempty"`
	Status         *domain.WorkspaceStatus `json:"status,omitempty"`
	AdminMemberID  *string                 `json:"adminMemberID,omitempty"`
	RemittanceRate *decimal.Decimal        `json:"remittanceRate,omitempty"`
	EndDate        *time.Time              `json:"endDate,omitempty"`
}

// CreateTeamRequest defines the structure for creating a team.
type CreateTeamRequest struct {
	Title               string  `json:"title" binding:"required"`
	Description         string  `json:"description"`
	CoordinatorMemberID *string `json:"coordinatorMemberID,omitempty"`
}

// AddTeamMemberRequest adds an organization member to a team.
type AddTeamMemberRequest struct {
	MemberID string          `json:"memberID" binding:"required"`
	Role     domain.TeamRole `json:"role" binding:"required"`
}

// AddTeamToWorkspaceRequest attaches an existing team to a workspace.
type AddTeamToWorkspaceRequest struct {
	TeamID string `json:"teamID" binding:"required"`
}

// SetTeamRateRequest sets or clears a team's custom remittance rate.
type SetTeamRateRequest struct {
	CustomRemittanceRate *decimal.Decimal `json:"customRemittanceRate"` // nil clears the override
}

// WorkspaceResponse defines the API shape of a workspace.
type WorkspaceResponse struct {
	WorkspaceID    string                 `json:"workspaceID"`
	OrganizationID string                 `json:"organizationID"`
	AdminMemberID  *string                `json:"adminMemberID,omitempty"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description,omitempty"`
	Status         domain.WorkspaceStatus `json:"status"`
	RemittanceRate *decimal.Decimal       `json:"remittanceRate,omitempty"`
	StartDate      time.Time              `json:"startDate"`
	EndDate        *time.Time             `json:"endDate,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// TeamResponse defines the API shape of a team.
type TeamResponse struct {
	TeamID               string           `json:"teamID"`
	OrganizationID       string           `json:"organizationID"`
	Title                string           `json:"title"`
	Description          string           `json:"description,omitempty"`
	CoordinatorMemberID  *string          `json:"coordinatorMemberID,omitempty"`
	CustomRemittanceRate *decimal.Decimal `json:"customRemittanceRate,omitempty"`
}

// WorkspaceTeamResponse defines the API shape of a workspace-team join.
type WorkspaceTeamResponse struct {
	WorkspaceTeamID string `json:"workspaceTeamID"`
	WorkspaceID     string `json:"workspaceID"`
	TeamID          string `json:"teamID"`
}

// ToWorkspaceResponse converts a domain.Workspace to WorkspaceResponse DTO
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:    w.WorkspaceID,
		OrganizationID: w.OrganizationID,
		AdminMemberID:  w.AdminMemberID,
		Title:          w.Title,
		Description:    w.Description,
		Status:         w.Status,
		RemittanceRate: w.RemittanceRate,
		StartDate:      w.StartDate,
		EndDate:        w.EndDate,
		CreatedAt:      w.CreatedAt,
	}
}

// ToTeamResponse converts a domain.Team to TeamResponse DTO
func ToTeamResponse(t *domain.Team) TeamResponse {
	return TeamResponse{
		TeamID:               t.TeamID,
		OrganizationID:       t.OrganizationID,
		Title:                t.Title,
		Description:          t.Description,
		CoordinatorMemberID:  t.CoordinatorMemberID,
		CustomRemittanceRate: t.CustomRemittanceRate,
	}
}

// ToWorkspaceTeamResponse converts a domain.WorkspaceTeam to its DTO.
func ToWorkspaceTeamResponse(wt *domain.WorkspaceTeam) WorkspaceTeamResponse {
	return WorkspaceTeamResponse{
		WorkspaceTeamID: wt.WorkspaceTeamID,
		WorkspaceID:     wt.WorkspaceID,
		TeamID:          wt.TeamID,
	}
}

// ToWorkspaceResponses converts a slice of domain workspaces to DTOs.
func ToWorkspaceResponses(workspaces []domain.Workspace) []WorkspaceResponse {
	responses := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		responses[i] = ToWorkspaceResponse(&workspaces[i])
	}
	return responses
}
