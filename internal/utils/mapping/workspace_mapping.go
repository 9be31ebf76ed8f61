package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelWorkspace converts a domain Workspace to a model Workspace
func ToModelWorkspace(d domain.Workspace) models.Workspace {
	return models.Workspace{
		WorkspaceID:    d.WorkspaceID,
		OrganizationID: d.OrganizationID,
		AdminMemberID:  d.AdminMemberID,
		Title:          d.Title,
		Description:    d.Description,
		Status:         models.WorkspaceStatus(d.Status),
		RemittanceRate: d.RemittanceRate,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkspace converts a model Workspace to a domain Workspace
func ToDomainWorkspace(m models.Workspace) domain.Workspace {
	return domain.Workspace{
		WorkspaceID:    m.WorkspaceID,
		OrganizationID: m.OrganizationID,
		AdminMemberID:  m.AdminMemberID,
		Title:          m.Title,
		Description:    m.Description,
		Status:         domain.WorkspaceStatus(m.Status),
		RemittanceRate: m.RemittanceRate,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTeam converts a domain Team to a model Team
func ToModelTeam(d domain.Team) models.Team {
	return models.Team{
		TeamID:               d.TeamID,
		OrganizationID:       d.OrganizationID,
		Title:                d.Title,
		Description:          d.Description,
		CoordinatorMemberID:  d.CoordinatorMemberID,
		CustomRemittanceRate: d.CustomRemittanceRate,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTeam converts a model Team to a domain Team
func ToDomainTeam(m models.Team) domain.Team {
	return domain.Team{
		TeamID:               m.TeamID,
		OrganizationID:       m.OrganizationID,
		Title:                m.Title,
		Description:          m.Description,
		CoordinatorMemberID:  m.CoordinatorMemberID,
		CustomRemittanceRate: m.CustomRemittanceRate,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTeamMember converts a domain TeamMember to a model TeamMember
func ToModelTeamMember(d domain.TeamMember) models.TeamMember {
	return models.TeamMember{
		TeamMemberID: d.TeamMemberID,
		TeamID:       d.TeamID,
		MemberID:     d.MemberID,
		Role:         models.TeamRole(d.Role),
		JoinedAt:     d.JoinedAt,
	}
}

// ToDomainTeamMember converts a model TeamMember to a domain TeamMember
func ToDomainTeamMember(m models.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		TeamMemberID: m.TeamMemberID,
		TeamID:       m.TeamID,
		MemberID:     m.MemberID,
		Role:         domain.TeamRole(m.Role),
		JoinedAt:     m.JoinedAt,
	}
}

// ToModelWorkspaceTeam converts a domain WorkspaceTeam to a model WorkspaceTeam
func ToModelWorkspaceTeam(d domain.WorkspaceTeam) models.WorkspaceTeam {
	return models.WorkspaceTeam{
		WorkspaceTeamID: d.WorkspaceTeamID,
		WorkspaceID:     d.WorkspaceID,
		TeamID:          d.TeamID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkspaceTeam converts a model WorkspaceTeam to a domain WorkspaceTeam
func ToDomainWorkspaceTeam(m models.WorkspaceTeam) domain.WorkspaceTeam {
	return domain.WorkspaceTeam{
		WorkspaceTeamID: m.WorkspaceTeamID,
		WorkspaceID:     m.WorkspaceID,
		TeamID:          m.TeamID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainWorkspaceSlice converts a slice of model Workspaces
func ToDomainWorkspaceSlice(ms []models.Workspace) []domain.Workspace {
	ds := make([]domain.Workspace, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkspace(m)
	}
	return ds
}

// ToDomainTeamSlice converts a slice of model Teams
func ToDomainTeamSlice(ms []models.Team) []domain.Team {
	ds := make([]domain.Team, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTeam(m)
	}
	return ds
}

// ToDomainTeamMemberSlice converts a slice of model TeamMembers
func ToDomainTeamMemberSlice(ms []models.TeamMember) []domain.TeamMember {
	ds := make([]domain.TeamMember, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTeamMember(m)
	}
	return ds
}
