package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
)

type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	orgRepo       portsrepo.OrganizationRepositoryFacade
	auditSvc      portssvc.AuditRecorderSvc
}

// NewWorkspaceService creates the workspace service, which also serves as
// the capability authorizer for the rest of the service layer.
func NewWorkspaceService(
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	orgRepo portsrepo.OrganizationRepositoryFacade,
	auditSvc portssvc.AuditRecorderSvc,
) portssvc.WorkspaceSvcFacade {
	return &workspaceService{
		workspaceRepo: workspaceRepo,
		orgRepo:       orgRepo,
		auditSvc:      auditSvc,
	}
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// ResolveActor loads the memberships a capability check needs: the org
// membership always, plus team/workspace refinements when the scope names
// them. A user with no active membership in the scoped organization is not
// an actor at all.
func (s *workspaceService) ResolveActor(ctx context.Context, userID string, scope domain.AuthScope) (*domain.Actor, error) {
	if scope.OrganizationID == "" {
		return nil, fmt.Errorf("%w: authorization scope requires an organization", apperrors.ErrValidation)
	}

	membership, err := s.orgRepo.FindMembership(ctx, userID, scope.OrganizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to resolve organization membership",
			slog.String("user_id", userID),
			slog.String("organization_id", scope.OrganizationID))
		return nil, err
	}
	if !membership.IsActive {
		return nil, apperrors.ErrForbidden
	}

	actor := domain.Actor{
		UserID:   userID,
		MemberID: membership.MemberID,
		OrgRole:  membership.Role,
	}
	actor.IsOperationsReviewer = membership.Role == domain.OrgRoleOwner || membership.Role == domain.OrgRoleAdmin

	teamID := scope.TeamID
	if scope.WorkspaceTeamID != "" {
		workspaceTeam, err := s.workspaceRepo.FindWorkspaceTeamByID(ctx, scope.WorkspaceTeamID)
		if err != nil {
			return nil, err
		}
		teamID = workspaceTeam.TeamID
		if scope.WorkspaceID == "" {
			scope.WorkspaceID = workspaceTeam.WorkspaceID
		}
	}

	if scope.WorkspaceID != "" {
		workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, scope.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if workspace.OrganizationID != scope.OrganizationID {
			return nil, apperrors.ErrForbidden
		}
		if workspace.AdminMemberID != nil && *workspace.AdminMemberID == membership.MemberID {
			actor.IsWorkspaceAdmin = true
			actor.IsOperationsReviewer = true
		}
	}

	if teamID != "" {
		team, err := s.workspaceRepo.FindTeamByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		if team.CoordinatorMemberID != nil && *team.CoordinatorMemberID == membership.MemberID {
			actor.IsTeamCoordinator = true
		}
		teamMember, err := s.workspaceRepo.FindTeamMember(ctx, teamID, membership.MemberID)
		if err == nil {
			actor.TeamMemberID = teamMember.TeamMemberID
			actor.TeamRole = teamMember.Role
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return &actor, nil
}

// Can maps capabilities to the memberships an actor holds. This is the only
// place roles are interpreted.
func (s *workspaceService) Can(ctx context.Context, actor domain.Actor, capability domain.Capability, scope domain.AuthScope) (bool, error) {
	orgAdmin := actor.OrgRole == domain.OrgRoleOwner || actor.OrgRole == domain.OrgRoleAdmin

	switch capability {
	case domain.CapEntryRead:
		// Any active org member reads within their organization.
		return true, nil
	case domain.CapEntrySubmit:
		if scope.WorkspaceTeamID != "" || scope.TeamID != "" {
			return actor.TeamRole == domain.TeamRoleSubmitter || actor.IsTeamCoordinator, nil
		}
		if scope.WorkspaceID != "" {
			// Workspace expenses belong to that workspace's admin alone.
			return actor.IsWorkspaceAdmin, nil
		}
		// Org expenses belong to the owner alone.
		return actor.OrgRole == domain.OrgRoleOwner, nil
	case domain.CapEntryReview:
		if actor.IsOperationsReviewer {
			return true, nil
		}
		return actor.TeamRole == domain.TeamRoleAuditor, nil
	case domain.CapEntryResubmit, domain.CapEntryDelete:
		if scope.WorkspaceTeamID != "" || scope.TeamID != "" {
			return actor.TeamRole == domain.TeamRoleSubmitter || actor.IsTeamCoordinator || orgAdmin, nil
		}
		return orgAdmin || actor.IsWorkspaceAdmin, nil
	case domain.CapRateManage:
		return orgAdmin || actor.IsWorkspaceAdmin, nil
	case domain.CapRateApprove:
		return actor.IsOperationsReviewer, nil
	case domain.CapRemittanceRecordPayment:
		return actor.IsTeamCoordinator || actor.IsWorkspaceAdmin || orgAdmin, nil
	case domain.CapRemittanceConfirm:
		return actor.IsWorkspaceAdmin || orgAdmin, nil
	case domain.CapRemittanceCancel:
		return orgAdmin, nil
	case domain.CapWorkspaceManage:
		return actor.IsWorkspaceAdmin || orgAdmin, nil
	case domain.CapOrgManage:
		return orgAdmin, nil
	default:
		return false, fmt.Errorf("%w: unknown capability %s", apperrors.ErrValidation, capability)
	}
}

// Authorize resolves the actor and checks the capability, recording denied
// attempts in the audit trail.
func (s *workspaceService) Authorize(ctx context.Context, userID string, capability domain.Capability, scope domain.AuthScope) (*domain.Actor, error) {
	actor, err := s.ResolveActor(ctx, userID, scope)
	if err != nil {
		return nil, err
	}
	allowed, err := s.Can(ctx, *actor, capability, scope)
	if err != nil {
		return nil, err
	}
	if !allowed {
		s.auditSvc.Record(ctx, domain.AuditEvent{
			ActionType:  domain.AuditPermissionDenied,
			ActorUserID: userID,
			TargetType:  domain.AuditTargetWorkspace,
			TargetID:    scope.WorkspaceID,
			Metadata: map[string]string{
				"capability":      string(capability),
				"organization_id": scope.OrganizationID,
			},
		})
		s.LogDebug(ctx, "Capability denied",
			slog.String("user_id", userID),
			slog.String("capability", string(capability)))
		return nil, apperrors.ErrForbidden
	}
	return actor, nil
}

func (s *workspaceService) GetWorkspaceByID(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find workspace",
				slog.String("workspace_id", workspaceID))
		}
		return nil, err
	}
	if _, err := s.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: workspace.OrganizationID}); err != nil {
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) ListWorkspaces(ctx context.Context, organizationID, requestingUserID string) ([]domain.Workspace, error) {
	if _, err := s.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}
	workspaces, err := s.workspaceRepo.ListWorkspacesByOrganization(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if workspaces == nil {
		return []domain.Workspace{}, nil
	}
	return workspaces, nil
}

func (s *workspaceService) GetTeamByID(ctx context.Context, teamID, requestingUserID string) (*domain.Team, error) {
	team, err := s.workspaceRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: team.OrganizationID}); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *workspaceService) CreateWorkspace(ctx context.Context, organizationID string, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	if _, err := s.Authorize(ctx, creatorUserID, domain.CapOrgManage, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}
	if req.RemittanceRate != nil {
		if err := validateRatePercent(*req.RemittanceRate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: workspace end date before start date", apperrors.ErrValidation)
	}

	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID:    uuid.NewString(),
		OrganizationID: organizationID,
		AdminMemberID:  req.AdminMemberID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         domain.WorkspaceActive,
		RemittanceRate: req.RemittanceRate,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace); err != nil {
		s.LogError(ctx, err, "Failed to save workspace",
			slog.String("workspace_id", workspace.WorkspaceID))
		return nil, err
	}

	s.LogInfo(ctx, "Workspace created",
		slog.String("workspace_id", workspace.WorkspaceID),
		slog.String("creator_id", creatorUserID))
	return &workspace, nil
}

func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, actorUserID string) (*domain.Workspace, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorize(ctx, actorUserID, domain.CapWorkspaceManage, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	}); err != nil {
		return nil, err
	}

	if req.Title != nil {
		workspace.Title = *req.Title
	}
	if req.Description != nil {
		workspace.Description = *req.Description
	}
	if req.Status != nil {
		workspace.Status = *req.Status
	}
	if req.AdminMemberID != nil {
		workspace.AdminMemberID = req.AdminMemberID
	}
	if req.RemittanceRate != nil {
		if err := validateRatePercent(*req.RemittanceRate); err != nil {
			return nil, err
		}
		workspace.RemittanceRate = req.RemittanceRate
	}
	if req.EndDate != nil {
		if req.EndDate.Before(workspace.StartDate) {
			return nil, fmt.Errorf("%w: workspace end date before start date", apperrors.ErrValidation)
		}
		workspace.EndDate = req.EndDate
	}
	workspace.LastUpdatedAt = time.Now()
	workspace.LastUpdatedBy = actorUserID

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *workspace); err != nil {
		s.LogError(ctx, err, "Failed to update workspace",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return workspace, nil
}

func (s *workspaceService) CreateTeam(ctx context.Context, organizationID string, req dto.CreateTeamRequest, creatorUserID string) (*domain.Team, error) {
	if _, err := s.Authorize(ctx, creatorUserID, domain.CapOrgManage, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}

	now := time.Now()
	team := domain.Team{
		TeamID:              uuid.NewString(),
		OrganizationID:      organizationID,
		Title:               req.Title,
		Description:         req.Description,
		CoordinatorMemberID: req.CoordinatorMemberID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.workspaceRepo.SaveTeam(ctx, team); err != nil {
		s.LogError(ctx, err, "Failed to save team",
			slog.String("team_id", team.TeamID))
		return nil, err
	}

	s.LogInfo(ctx, "Team created",
		slog.String("team_id", team.TeamID),
		slog.String("organization_id", organizationID))
	return &team, nil
}

func (s *workspaceService) AddTeamMember(ctx context.Context, teamID string, req dto.AddTeamMemberRequest, actorUserID string) (*domain.TeamMember, error) {
	team, err := s.workspaceRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorize(ctx, actorUserID, domain.CapOrgManage, domain.AuthScope{OrganizationID: team.OrganizationID}); err != nil {
		return nil, err
	}

	member, err := s.orgRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if member.OrganizationID != team.OrganizationID {
		return nil, fmt.Errorf("%w: member belongs to a different organization", apperrors.ErrValidation)
	}
	if req.Role != domain.TeamRoleSubmitter && req.Role != domain.TeamRoleAuditor {
		return nil, fmt.Errorf("%w: unknown team role %s", apperrors.ErrValidation, req.Role)
	}

	teamMember := domain.TeamMember{
		TeamMemberID: uuid.NewString(),
		TeamID:       teamID,
		MemberID:     req.MemberID,
		Role:         req.Role,
		JoinedAt:     time.Now(),
	}

	if err := s.workspaceRepo.SaveTeamMember(ctx, teamMember); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save team member",
				slog.String("team_id", teamID),
				slog.String("member_id", req.MemberID))
		}
		return nil, err
	}
	return &teamMember, nil
}

func (s *workspaceService) AddTeamToWorkspace(ctx context.Context, workspaceID, teamID, actorUserID string) (*domain.WorkspaceTeam, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorize(ctx, actorUserID, domain.CapWorkspaceManage, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	}); err != nil {
		return nil, err
	}
	team, err := s.workspaceRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.OrganizationID != workspace.OrganizationID {
		return nil, fmt.Errorf("%w: team belongs to a different organization", apperrors.ErrValidation)
	}

	now := time.Now()
	workspaceTeam := domain.WorkspaceTeam{
		WorkspaceTeamID: uuid.NewString(),
		WorkspaceID:     workspaceID,
		TeamID:          teamID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.workspaceRepo.SaveWorkspaceTeam(ctx, workspaceTeam); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to add team to workspace",
				slog.String("workspace_id", workspaceID),
				slog.String("team_id", teamID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Team added to workspace",
		slog.String("workspace_team_id", workspaceTeam.WorkspaceTeamID))
	return &workspaceTeam, nil
}

// SetTeamRemittanceRate sets or clears a team's custom rate. A custom rate
// equal to the workspace's own rate carries no information, so it normalizes
// to null and the fallback chain applies.
func (s *workspaceService) SetTeamRemittanceRate(ctx context.Context, workspaceID, teamID string, req dto.SetTeamRateRequest, actorUserID string) (*domain.Team, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Authorize(ctx, actorUserID, domain.CapWorkspaceManage, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	}); err != nil {
		return nil, err
	}
	team, err := s.workspaceRepo.FindTeamByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaceRepo.FindWorkspaceTeam(ctx, workspaceID, teamID); err != nil {
		return nil, err
	}

	newRate := req.CustomRemittanceRate
	if newRate != nil {
		if err := validateRatePercent(*newRate); err != nil {
			return nil, err
		}
		if workspace.RemittanceRate != nil && newRate.Equal(*workspace.RemittanceRate) {
			newRate = nil
		}
	}

	team.CustomRemittanceRate = newRate
	team.LastUpdatedAt = time.Now()
	team.LastUpdatedBy = actorUserID

	if err := s.workspaceRepo.UpdateTeam(ctx, *team); err != nil {
		s.LogError(ctx, err, "Failed to update team rate",
			slog.String("team_id", teamID))
		return nil, err
	}
	return team, nil
}

func validateRatePercent(rate decimal.Decimal) error {
	if rate.LessThan(decimal.Zero) || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: remittance rate must be between 0 and 100", apperrors.ErrValidation)
	}
	return nil
}
