package repositories

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// WorkspaceReader defines read operations for workspaces, teams and their join rows.
type WorkspaceReader interface {
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)
	ListWorkspacesByOrganization(ctx context.Context, organizationID string) ([]domain.Workspace, error)

	FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error)
	ListTeamsByOrganization(ctx context.Context, organizationID string) ([]domain.Team, error)

	FindWorkspaceTeamByID(ctx context.Context, workspaceTeamID string) (*domain.WorkspaceTeam, error)
	// FindWorkspaceTeam resolves the join row for a (workspace, team) pair.
	FindWorkspaceTeam(ctx context.Context, workspaceID, teamID string) (*domain.WorkspaceTeam, error)

	// FindTeamMember resolves the membership of an org member in a team.
	FindTeamMember(ctx context.Context, teamID, memberID string) (*domain.TeamMember, error)
	FindTeamMemberByID(ctx context.Context, teamMemberID string) (*domain.TeamMember, error)
}

// WorkspaceWriter defines write operations for workspaces, teams and memberships.
type WorkspaceWriter interface {
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error

	SaveTeam(ctx context.Context, team domain.Team) error
	UpdateTeam(ctx context.Context, team domain.Team) error

	SaveWorkspaceTeam(ctx context.Context, workspaceTeam domain.WorkspaceTeam) error
	SaveTeamMember(ctx context.Context, teamMember domain.TeamMember) error
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
}
