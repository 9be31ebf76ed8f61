package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/core/services"
	"github.com/orgfin/org_finance_app/internal/dto"
)

type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencyRepo *MockCurrencyRepository
	mockWorkspaceSvc *MockWorkspaceService
	mockAuditSvc     *MockAuditRecorder
	service          portssvc.RateSvcFacade

	orgID       string
	workspaceID string
	occurredAt  time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockWorkspaceSvc = new(MockWorkspaceService)
	suite.mockAuditSvc = new(MockAuditRecorder)
	suite.service = services.NewRateService(suite.mockRateRepo, suite.mockCurrencyRepo, suite.mockWorkspaceSvc, suite.mockAuditSvc)

	suite.orgID = uuid.NewString()
	suite.workspaceID = uuid.NewString()
	suite.occurredAt = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *RateServiceTestSuite) TestResolveRate_WorkspaceRateWins() {
	ctx := context.Background()
	wsRate := &domain.WorkspaceExchangeRate{
		ExchangeRateID: uuid.NewString(),
		WorkspaceID:    suite.workspaceID,
		CurrencyCode:   "EUR",
		Rate:           decimal.RequireFromString("1.10"),
		EffectiveDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		IsApproved:     true,
	}
	suite.mockRateRepo.On("FindLatestWorkspaceRate", ctx, suite.workspaceID, "EUR", suite.occurredAt).
		Return(wsRate, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "EUR", suite.orgID, &suite.workspaceID, suite.occurredAt)

	suite.Require().NoError(err)
	suite.Equal(domain.ScopeWorkspace, resolved.Scope)
	suite.Equal(wsRate.ExchangeRateID, resolved.ExchangeRateID)
	suite.True(resolved.Rate.Equal(decimal.RequireFromString("1.10")))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestOrgRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestResolveRate_FallsBackToOrgRate() {
	ctx := context.Background()
	orgRate := &domain.OrgExchangeRate{
		ExchangeRateID: uuid.NewString(),
		OrganizationID: suite.orgID,
		CurrencyCode:   "EUR",
		Rate:           decimal.RequireFromString("1.08"),
		EffectiveDate:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRateRepo.On("FindLatestWorkspaceRate", ctx, suite.workspaceID, "EUR", suite.occurredAt).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestOrgRate", ctx, suite.orgID, "EUR", suite.occurredAt).
		Return(orgRate, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "EUR", suite.orgID, &suite.workspaceID, suite.occurredAt)

	suite.Require().NoError(err)
	suite.Equal(domain.ScopeOrganization, resolved.Scope)
	suite.Equal(orgRate.ExchangeRateID, resolved.ExchangeRateID)
	suite.True(resolved.Rate.Equal(decimal.RequireFromString("1.08")))
}

func (suite *RateServiceTestSuite) TestResolveRate_NoWorkspaceSkipsWorkspaceLookup() {
	ctx := context.Background()
	orgRate := &domain.OrgExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Rate:           decimal.RequireFromString("150.25"),
		EffectiveDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRateRepo.On("FindLatestOrgRate", ctx, suite.orgID, "JPY", suite.occurredAt).
		Return(orgRate, nil).Once()

	resolved, err := suite.service.ResolveRate(ctx, "JPY", suite.orgID, nil, suite.occurredAt)

	suite.Require().NoError(err)
	suite.Equal(domain.ScopeOrganization, resolved.Scope)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestWorkspaceRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestResolveRate_NoRateAnywhere() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindLatestWorkspaceRate", ctx, suite.workspaceID, "CHF", suite.occurredAt).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindLatestOrgRate", ctx, suite.orgID, "CHF", suite.occurredAt).
		Return(nil, apperrors.ErrNotFound).Once()

	resolved, err := suite.service.ResolveRate(ctx, "CHF", suite.orgID, &suite.workspaceID, suite.occurredAt)

	suite.Require().Error(err)
	suite.Nil(resolved)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
}

func (suite *RateServiceTestSuite) TestCreateOrgRate_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: creatorUserID, MemberID: uuid.NewString(), OrgRole: domain.OrgRoleAdmin}
	req := dto.CreateOrgRateRequest{
		CurrencyCode:  "EUR",
		Rate:          decimal.RequireFromString("1.09"),
		EffectiveDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.mockWorkspaceSvc.On("Authorize", ctx, creatorUserID, domain.CapRateManage, domain.AuthScope{OrganizationID: suite.orgID}).
		Return(actor, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", Precision: 2}, nil).Once()
	suite.mockRateRepo.On("SaveOrgRate", ctx, mock.MatchedBy(func(r domain.OrgExchangeRate) bool {
		return r.OrganizationID == suite.orgID && r.CurrencyCode == "EUR" && r.AddedBy == actor.MemberID
	})).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditRateCreated && e.ActorUserID == creatorUserID
	})).Once()

	rate, err := suite.service.CreateOrgRate(ctx, suite.orgID, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Equal("EUR", rate.CurrencyCode)
	suite.Equal(actor.MemberID, rate.AddedBy)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestCreateOrgRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: creatorUserID, MemberID: uuid.NewString(), OrgRole: domain.OrgRoleAdmin}
	req := dto.CreateOrgRateRequest{
		CurrencyCode:  "EUR",
		Rate:          decimal.Zero,
		EffectiveDate: suite.occurredAt,
	}

	suite.mockWorkspaceSvc.On("Authorize", ctx, creatorUserID, domain.CapRateManage, mock.Anything).
		Return(actor, nil).Once()

	rate, err := suite.service.CreateOrgRate(ctx, suite.orgID, req, creatorUserID)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveOrgRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestApproveWorkspaceRate_Success() {
	ctx := context.Background()
	approverUserID := uuid.NewString()
	approver := &domain.Actor{UserID: approverUserID, MemberID: uuid.NewString(), IsOperationsReviewer: true}
	rateID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: suite.workspaceID, OrganizationID: suite.orgID}
	rate := &domain.WorkspaceExchangeRate{
		ExchangeRateID: rateID,
		WorkspaceID:    suite.workspaceID,
		CurrencyCode:   "EUR",
		Rate:           decimal.RequireFromString("1.12"),
		AddedBy:        uuid.NewString(),
	}

	suite.mockWorkspaceSvc.On("GetWorkspaceByID", ctx, suite.workspaceID, approverUserID).Return(workspace, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, approverUserID, domain.CapRateApprove, mock.Anything).Return(approver, nil).Once()
	suite.mockRateRepo.On("FindWorkspaceRateByID", ctx, rateID).Return(rate, nil).Once()
	suite.mockRateRepo.On("ApproveWorkspaceRate", ctx, rateID, approver.MemberID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditRateApproved && e.TargetID == rateID
	})).Once()

	approved, err := suite.service.ApproveWorkspaceRate(ctx, suite.workspaceID, rateID, approverUserID)

	suite.Require().NoError(err)
	suite.True(approved.IsApproved)
	suite.Require().NotNil(approved.ApprovedBy)
	suite.Equal(approver.MemberID, *approved.ApprovedBy)
}

func (suite *RateServiceTestSuite) TestApproveWorkspaceRate_CreatorCannotApprove() {
	ctx := context.Background()
	approverUserID := uuid.NewString()
	memberID := uuid.NewString()
	approver := &domain.Actor{UserID: approverUserID, MemberID: memberID, IsOperationsReviewer: true}
	rateID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: suite.workspaceID, OrganizationID: suite.orgID}
	rate := &domain.WorkspaceExchangeRate{
		ExchangeRateID: rateID,
		WorkspaceID:    suite.workspaceID,
		AddedBy:        memberID,
	}

	suite.mockWorkspaceSvc.On("GetWorkspaceByID", ctx, suite.workspaceID, approverUserID).Return(workspace, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, approverUserID, domain.CapRateApprove, mock.Anything).Return(approver, nil).Once()
	suite.mockRateRepo.On("FindWorkspaceRateByID", ctx, rateID).Return(rate, nil).Once()

	approved, err := suite.service.ApproveWorkspaceRate(ctx, suite.workspaceID, rateID, approverUserID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "ApproveWorkspaceRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestApproveWorkspaceRate_WrongWorkspace() {
	ctx := context.Background()
	approverUserID := uuid.NewString()
	approver := &domain.Actor{UserID: approverUserID, MemberID: uuid.NewString(), IsOperationsReviewer: true}
	rateID := uuid.NewString()
	workspace := &domain.Workspace{WorkspaceID: suite.workspaceID, OrganizationID: suite.orgID}
	rate := &domain.WorkspaceExchangeRate{
		ExchangeRateID: rateID,
		WorkspaceID:    uuid.NewString(),
		AddedBy:        uuid.NewString(),
	}

	suite.mockWorkspaceSvc.On("GetWorkspaceByID", ctx, suite.workspaceID, approverUserID).Return(workspace, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, approverUserID, domain.CapRateApprove, mock.Anything).Return(approver, nil).Once()
	suite.mockRateRepo.On("FindWorkspaceRateByID", ctx, rateID).Return(rate, nil).Once()

	approved, err := suite.service.ApproveWorkspaceRate(ctx, suite.workspaceID, rateID, approverUserID)

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
