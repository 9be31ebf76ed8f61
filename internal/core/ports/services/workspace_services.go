package services

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// AuthorizerSvc is the single entry point for capability checks. Services
// never inspect roles directly; they ask whether an actor holds a capability
// within a scope.
type AuthorizerSvc interface {
	// ResolveActor loads the actor's memberships relevant to the scope.
	ResolveActor(ctx context.Context, userID string, scope domain.AuthScope) (*domain.Actor, error)

	// Can reports whether the actor holds the capability within the scope.
	Can(ctx context.Context, actor domain.Actor, capability domain.Capability, scope domain.AuthScope) (bool, error)

	// Authorize combines ResolveActor and Can, returning
	// apperrors.ErrForbidden when the capability is missing.
	Authorize(ctx context.Context, userID string, capability domain.Capability, scope domain.AuthScope) (*domain.Actor, error)
}

// WorkspaceReaderSvc defines read operations for workspaces and teams.
type WorkspaceReaderSvc interface {
	GetWorkspaceByID(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error)
	ListWorkspaces(ctx context.Context, organizationID, requestingUserID string) ([]domain.Workspace, error)
	GetTeamByID(ctx context.Context, teamID, requestingUserID string) (*domain.Team, error)
}

// WorkspaceWriterSvc defines write operations for workspaces and teams.
type WorkspaceWriterSvc interface {
	CreateWorkspace(ctx context.Context, organizationID string, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, actorUserID string) (*domain.Workspace, error)

	CreateTeam(ctx context.Context, organizationID string, req dto.CreateTeamRequest, creatorUserID string) (*domain.Team, error)
	AddTeamMember(ctx context.Context, teamID string, req dto.AddTeamMemberRequest, actorUserID string) (*domain.TeamMember, error)

	// AddTeamToWorkspace creates the workspace-team join row.
	AddTeamToWorkspace(ctx context.Context, workspaceID, teamID, actorUserID string) (*domain.WorkspaceTeam, error)

	// SetTeamRemittanceRate sets or clears a team's custom rate. A custom
	// rate equal to the workspace default normalizes to null.
	SetTeamRemittanceRate(ctx context.Context, workspaceID, teamID string, req dto.SetTeamRateRequest, actorUserID string) (*domain.Team, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
type WorkspaceSvcFacade interface {
	AuthorizerSvc
	WorkspaceReaderSvc
	WorkspaceWriterSvc
}
