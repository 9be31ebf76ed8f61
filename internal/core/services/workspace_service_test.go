package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/core/services"
)

type WorkspaceServiceTestSuite struct {
	suite.Suite
	mockWorkspaceRepo *MockWorkspaceRepository
	mockOrgRepo       *MockOrganizationRepository
	mockAuditSvc      *MockAuditRecorder
	service           portssvc.WorkspaceSvcFacade

	orgID string
}

func (suite *WorkspaceServiceTestSuite) SetupTest() {
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockAuditSvc = new(MockAuditRecorder)
	suite.service = services.NewWorkspaceService(suite.mockWorkspaceRepo, suite.mockOrgRepo, suite.mockAuditSvc)

	suite.orgID = uuid.NewString()
}

func (suite *WorkspaceServiceTestSuite) TestCan_EntrySubmitMapping() {
	ctx := context.Background()
	orgScope := domain.AuthScope{OrganizationID: suite.orgID}
	wsScope := domain.AuthScope{OrganizationID: suite.orgID, WorkspaceID: uuid.NewString()}
	teamScope := domain.AuthScope{OrganizationID: suite.orgID, WorkspaceTeamID: uuid.NewString()}

	tests := []struct {
		name  string
		actor domain.Actor
		scope domain.AuthScope
		want  bool
	}{
		{"team submitter in team scope", domain.Actor{TeamMemberID: "tm", TeamRole: domain.TeamRoleSubmitter}, teamScope, true},
		{"team coordinator in team scope", domain.Actor{IsTeamCoordinator: true}, teamScope, true},
		{"team auditor cannot submit", domain.Actor{TeamMemberID: "tm", TeamRole: domain.TeamRoleAuditor}, teamScope, false},
		{"org owner without team role cannot submit team entries", domain.Actor{OrgRole: domain.OrgRoleOwner}, teamScope, false},
		{"workspace admin submits workspace expenses", domain.Actor{OrgRole: domain.OrgRoleMember, IsWorkspaceAdmin: true}, wsScope, true},
		{"org owner who is not workspace admin cannot submit workspace expenses", domain.Actor{OrgRole: domain.OrgRoleOwner}, wsScope, false},
		{"org admin who is not workspace admin cannot submit workspace expenses", domain.Actor{OrgRole: domain.OrgRoleAdmin}, wsScope, false},
		{"org owner submits org expenses", domain.Actor{OrgRole: domain.OrgRoleOwner}, orgScope, true},
		{"org admin cannot submit org expenses", domain.Actor{OrgRole: domain.OrgRoleAdmin}, orgScope, false},
		{"workspace admin cannot submit org expenses", domain.Actor{OrgRole: domain.OrgRoleMember, IsWorkspaceAdmin: true}, orgScope, false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.service.Can(ctx, tt.actor, domain.CapEntrySubmit, tt.scope)
			suite.NoError(err)
			suite.Equal(tt.want, got)
		})
	}
}

func (suite *WorkspaceServiceTestSuite) TestCan_CapabilityMapping() {
	ctx := context.Background()
	scope := domain.AuthScope{OrganizationID: suite.orgID}

	owner := domain.Actor{OrgRole: domain.OrgRoleOwner, IsOperationsReviewer: true}
	admin := domain.Actor{OrgRole: domain.OrgRoleAdmin, IsOperationsReviewer: true}
	member := domain.Actor{OrgRole: domain.OrgRoleMember}
	wsAdmin := domain.Actor{OrgRole: domain.OrgRoleMember, IsWorkspaceAdmin: true, IsOperationsReviewer: true}
	coordinator := domain.Actor{OrgRole: domain.OrgRoleMember, IsTeamCoordinator: true}
	auditor := domain.Actor{OrgRole: domain.OrgRoleMember, TeamMemberID: "tm", TeamRole: domain.TeamRoleAuditor}

	tests := []struct {
		name       string
		actor      domain.Actor
		capability domain.Capability
		want       bool
	}{
		{"any member reads", member, domain.CapEntryRead, true},
		{"operations reviewer reviews", admin, domain.CapEntryReview, true},
		{"team auditor reviews", auditor, domain.CapEntryReview, true},
		{"plain member cannot review", member, domain.CapEntryReview, false},
		{"workspace admin manages rates", wsAdmin, domain.CapRateManage, true},
		{"plain member cannot manage rates", member, domain.CapRateManage, false},
		{"operations reviewer approves rates", wsAdmin, domain.CapRateApprove, true},
		{"coordinator records payments", coordinator, domain.CapRemittanceRecordPayment, true},
		{"plain member cannot record payments", member, domain.CapRemittanceRecordPayment, false},
		{"workspace admin confirms remittances", wsAdmin, domain.CapRemittanceConfirm, true},
		{"coordinator cannot confirm remittances", coordinator, domain.CapRemittanceConfirm, false},
		{"owner cancels remittances", owner, domain.CapRemittanceCancel, true},
		{"workspace admin cannot cancel remittances", wsAdmin, domain.CapRemittanceCancel, false},
		{"workspace admin manages workspace", wsAdmin, domain.CapWorkspaceManage, true},
		{"admin manages org", admin, domain.CapOrgManage, true},
		{"member cannot manage org", member, domain.CapOrgManage, false},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.service.Can(ctx, tt.actor, tt.capability, scope)
			suite.NoError(err)
			suite.Equal(tt.want, got)
		})
	}
}

func (suite *WorkspaceServiceTestSuite) TestCan_UnknownCapability() {
	got, err := suite.service.Can(context.Background(), domain.Actor{OrgRole: domain.OrgRoleOwner},
		domain.Capability("entry:frobnicate"), domain.AuthScope{OrganizationID: suite.orgID})

	suite.False(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WorkspaceServiceTestSuite) TestAuthorize_DenialRecordsAudit() {
	ctx := context.Background()
	userID := uuid.NewString()
	memberID := uuid.NewString()

	suite.mockOrgRepo.On("FindMembership", ctx, userID, suite.orgID).Return(&domain.OrganizationMember{
		MemberID:       memberID,
		OrganizationID: suite.orgID,
		UserID:         userID,
		Role:           domain.OrgRoleAdmin,
		IsActive:       true,
	}, nil).Once()

	suite.mockAuditSvc.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditPermissionDenied &&
			e.ActorUserID == userID &&
			e.Metadata["capability"] == string(domain.CapEntrySubmit) &&
			e.Metadata["organization_id"] == suite.orgID
	})).Once()

	actor, err := suite.service.Authorize(ctx, userID, domain.CapEntrySubmit, domain.AuthScope{OrganizationID: suite.orgID})

	suite.Nil(actor)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *WorkspaceServiceTestSuite) TestAuthorize_AllowedSkipsAudit() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockOrgRepo.On("FindMembership", ctx, userID, suite.orgID).Return(&domain.OrganizationMember{
		MemberID:       uuid.NewString(),
		OrganizationID: suite.orgID,
		UserID:         userID,
		Role:           domain.OrgRoleOwner,
		IsActive:       true,
	}, nil).Once()

	actor, err := suite.service.Authorize(ctx, userID, domain.CapEntrySubmit, domain.AuthScope{OrganizationID: suite.orgID})

	suite.NoError(err)
	suite.NotNil(actor)
	suite.mockAuditSvc.AssertNotCalled(suite.T(), "Record")
}

func (suite *WorkspaceServiceTestSuite) TestAuthorize_InactiveMembershipForbidden() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockOrgRepo.On("FindMembership", ctx, userID, suite.orgID).Return(&domain.OrganizationMember{
		MemberID:       uuid.NewString(),
		OrganizationID: suite.orgID,
		UserID:         userID,
		Role:           domain.OrgRoleOwner,
		IsActive:       false,
	}, nil).Once()

	actor, err := suite.service.Authorize(ctx, userID, domain.CapEntryRead, domain.AuthScope{OrganizationID: suite.orgID})

	suite.Nil(actor)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestWorkspaceService(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}
