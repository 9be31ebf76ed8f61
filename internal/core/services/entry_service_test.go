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

type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo     *MockEntryRepository
	mockOrgRepo       *MockOrganizationRepository
	mockWorkspaceRepo *MockWorkspaceRepository
	mockCurrencyRepo  *MockCurrencyRepository
	mockRateSvc       *MockRateResolver
	mockWorkspaceSvc  *MockWorkspaceService
	mockRemittanceSvc *MockRemittanceApplier
	mockAuditSvc      *MockAuditRecorder
	mockNotifierSvc   *MockNotifier
	mockAttachmentSvc *MockAttachmentCounter
	service           portssvc.EntrySvcFacade

	orgID           string
	workspaceID     string
	workspaceTeamID string
	occurredAt      time.Time
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockRateSvc = new(MockRateResolver)
	suite.mockWorkspaceSvc = new(MockWorkspaceService)
	suite.mockRemittanceSvc = new(MockRemittanceApplier)
	suite.mockAuditSvc = new(MockAuditRecorder)
	suite.mockNotifierSvc = new(MockNotifier)
	suite.mockAttachmentSvc = new(MockAttachmentCounter)
	suite.service = suite.newService(false)

	suite.orgID = uuid.NewString()
	suite.workspaceID = uuid.NewString()
	suite.workspaceTeamID = uuid.NewString()
	suite.occurredAt = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *EntryServiceTestSuite) newService(resubmitRevalue bool) portssvc.EntrySvcFacade {
	return services.NewEntryService(
		suite.mockEntryRepo,
		suite.mockOrgRepo,
		suite.mockWorkspaceRepo,
		suite.mockCurrencyRepo,
		suite.mockRateSvc,
		suite.mockWorkspaceSvc,
		suite.mockRemittanceSvc,
		suite.mockAuditSvc,
		suite.mockNotifierSvc,
		suite.mockAttachmentSvc,
		resubmitRevalue,
	)
}

func (suite *EntryServiceTestSuite) activeWorkspace() *domain.Workspace {
	return &domain.Workspace{
		WorkspaceID:    suite.workspaceID,
		OrganizationID: suite.orgID,
		Status:         domain.WorkspaceActive,
		StartDate:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *EntryServiceTestSuite) expectOrgWithBase(ctx context.Context, baseCode string, precision int) {
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).
		Return(&domain.Organization{OrganizationID: suite.orgID, BaseCurrencyCode: baseCode}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, baseCode).
		Return(&domain.Currency{CurrencyCode: baseCode, Precision: precision}, nil)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_TeamScopedWithConversion() {
	ctx := context.Background()
	submitterUserID := uuid.NewString()
	teamMemberID := uuid.NewString()
	actor := &domain.Actor{UserID: submitterUserID, MemberID: uuid.NewString(), TeamMemberID: teamMemberID, TeamRole: domain.TeamRoleSubmitter}
	req := dto.CreateEntryRequest{
		OrganizationID:  suite.orgID,
		WorkspaceTeamID: &suite.workspaceTeamID,
		EntryType:       domain.EntryDisbursement,
		Amount:          decimal.RequireFromString("10.05"),
		CurrencyCode:    "EUR",
		Description:     "Supplies",
		OccurredAt:      suite.occurredAt,
	}

	suite.mockWorkspaceRepo.On("FindWorkspaceTeamByID", ctx, suite.workspaceTeamID).
		Return(&domain.WorkspaceTeam{WorkspaceTeamID: suite.workspaceTeamID, WorkspaceID: suite.workspaceID}, nil).Once()
	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, suite.workspaceID).
		Return(suite.activeWorkspace(), nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, submitterUserID, domain.CapEntrySubmit, mock.MatchedBy(func(s domain.AuthScope) bool {
		return s.OrganizationID == suite.orgID && s.WorkspaceTeamID == suite.workspaceTeamID
	})).Return(actor, nil).Once()
	suite.expectOrgWithBase(ctx, "USD", 2)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").
		Return(&domain.Currency{CurrencyCode: "EUR", Precision: 2}, nil).Once()
	rateID := uuid.NewString()
	suite.mockRateSvc.On("ResolveRate", ctx, "EUR", suite.orgID, &suite.workspaceID, suite.occurredAt).
		Return(&domain.ResolvedRate{Rate: decimal.RequireFromString("0.5"), Scope: domain.ScopeWorkspace, ExchangeRateID: rateID}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.Entry")).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditEntryCreated
	})).Once()

	entry, err := suite.service.CreateEntry(ctx, req, submitterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPending, entry.Status)
	// 10.05 * 0.5 = 5.025, banker's rounding at 2 digits gives 5.02
	suite.Equal("5.02", entry.ConvertedAmount.String())
	suite.Equal(rateID, entry.ExchangeRateID)
	suite.Equal(domain.ScopeWorkspace, entry.RateScope)
	suite.True(entry.IsFlagged) // no attachments yet
	suite.Require().NotNil(entry.SubmittedByTeamMemberID)
	suite.Equal(teamMemberID, *entry.SubmittedByTeamMemberID)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_BaseCurrencySkipsResolver() {
	ctx := context.Background()
	submitterUserID := uuid.NewString()
	actor := &domain.Actor{UserID: submitterUserID, MemberID: uuid.NewString(), OrgRole: domain.OrgRoleAdmin}
	req := dto.CreateEntryRequest{
		OrganizationID: suite.orgID,
		EntryType:      domain.EntryOrgExp,
		Amount:         decimal.RequireFromString("250.00"),
		CurrencyCode:   "USD",
		Description:    "Licenses",
		OccurredAt:     suite.occurredAt,
	}

	suite.mockWorkspaceSvc.On("Authorize", ctx, submitterUserID, domain.CapEntrySubmit, domain.AuthScope{OrganizationID: suite.orgID}).
		Return(actor, nil).Once()
	suite.expectOrgWithBase(ctx, "USD", 2)
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.Entry")).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.Anything).Once()

	entry, err := suite.service.CreateEntry(ctx, req, submitterUserID)

	suite.Require().NoError(err)
	suite.True(entry.ExchangeRateUsed.Equal(decimal.NewFromInt(1)))
	suite.Equal("", entry.ExchangeRateID)
	suite.Equal("250", entry.ConvertedAmount.String())
	suite.Require().NotNil(entry.SubmittedByOrgMemberID)
	suite.Equal(actor.MemberID, *entry.SubmittedByOrgMemberID)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "ResolveRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		OrganizationID: suite.orgID,
		EntryType:      domain.EntryOrgExp,
		Amount:         decimal.Zero,
		CurrencyCode:   "USD",
		OccurredAt:     suite.occurredAt,
	}

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_TeamScopedWithoutTeam() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		OrganizationID: suite.orgID,
		EntryType:      domain.EntryRemittance,
		Amount:         decimal.RequireFromString("100.00"),
		CurrencyCode:   "USD",
		OccurredAt:     suite.occurredAt,
	}

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_OutsideWorkspaceWindow() {
	ctx := context.Background()
	workspace := suite.activeWorkspace()
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
	workspace.EndDate = &end
	req := dto.CreateEntryRequest{
		OrganizationID:  suite.orgID,
		WorkspaceTeamID: &suite.workspaceTeamID,
		EntryType:       domain.EntryDisbursement,
		Amount:          decimal.RequireFromString("100.00"),
		CurrencyCode:    "USD",
		OccurredAt:      suite.occurredAt, // March, window closed end of February
	}

	suite.mockWorkspaceRepo.On("FindWorkspaceTeamByID", ctx, suite.workspaceTeamID).
		Return(&domain.WorkspaceTeam{WorkspaceTeamID: suite.workspaceTeamID, WorkspaceID: suite.workspaceID}, nil).Once()
	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, suite.workspaceID).
		Return(workspace, nil).Once()

	entry, err := suite.service.CreateEntry(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkspaceSvc.AssertNotCalled(suite.T(), "Authorize", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_RateNotFoundBlocksCreation() {
	ctx := context.Background()
	submitterUserID := uuid.NewString()
	actor := &domain.Actor{UserID: submitterUserID, MemberID: uuid.NewString(), OrgRole: domain.OrgRoleAdmin}
	req := dto.CreateEntryRequest{
		OrganizationID: suite.orgID,
		EntryType:      domain.EntryOrgExp,
		Amount:         decimal.RequireFromString("100.00"),
		CurrencyCode:   "CHF",
		Description:    "Travel",
		OccurredAt:     suite.occurredAt,
	}

	suite.mockWorkspaceSvc.On("Authorize", ctx, submitterUserID, domain.CapEntrySubmit, mock.Anything).
		Return(actor, nil).Once()
	suite.expectOrgWithBase(ctx, "USD", 2)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "CHF").
		Return(&domain.Currency{CurrencyCode: "CHF", Precision: 2}, nil).Once()
	suite.mockRateSvc.On("ResolveRate", ctx, "CHF", suite.orgID, (*string)(nil), suite.occurredAt).
		Return(nil, apperrors.ErrRateNotFound).Once()

	entry, err := suite.service.CreateEntry(ctx, req, submitterUserID)

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrRateNotFound)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_FrozenValuation() {
	ctx := context.Background()
	entryID := uuid.NewString()
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).
		Return(&domain.Entry{EntryID: entryID, Status: domain.EntryApproved}, nil).Once()

	amount := decimal.RequireFromString("99.00")
	updated, err := suite.service.UpdateEntry(ctx, entryID, dto.UpdateEntryRequest{Amount: &amount}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *EntryServiceTestSuite) pendingDisbursement(entryID, submitterTeamMemberID string) *domain.Entry {
	return &domain.Entry{
		EntryID:                 entryID,
		OrganizationID:          suite.orgID,
		WorkspaceID:             &suite.workspaceID,
		WorkspaceTeamID:         &suite.workspaceTeamID,
		EntryType:               domain.EntryDisbursement,
		Amount:                  decimal.RequireFromString("100.00"),
		CurrencyCode:            "USD",
		ConvertedAmount:         decimal.RequireFromString("100.00"),
		OccurredAt:              suite.occurredAt,
		Status:                  domain.EntryPending,
		SubmittedByTeamMemberID: &submitterTeamMemberID,
	}
}

func (suite *EntryServiceTestSuite) TestTransitionEntry_ApproveFeedsRemittance() {
	ctx := context.Background()
	entryID := uuid.NewString()
	submitterTeamMemberID := uuid.NewString()
	reviewerUserID := uuid.NewString()
	reviewer := &domain.Actor{UserID: reviewerUserID, MemberID: uuid.NewString(), IsOperationsReviewer: true}
	entry := suite.pendingDisbursement(entryID, submitterTeamMemberID)
	submitterMemberID := uuid.NewString()
	submitterUserID := uuid.NewString()

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, reviewerUserID, domain.CapEntryReview, mock.Anything).Return(reviewer, nil).Once()
	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(entry, nil).Once()
	suite.mockEntryRepo.On("UpdateEntryStatus", ctx, mock.Anything, entryID, domain.EntryPending, domain.EntryApproved, "ok", entry.IsFlagged, reviewerUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRemittanceSvc.On("ApplyApprovedEntryTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.Entry) bool {
		return e.EntryID == entryID
	}), reviewerUserID).Return(nil).Once()
	suite.mockAuditSvc.On("RecordTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditStatusChanged && e.Metadata["to"] == string(domain.EntryApproved)
	})).Return(nil).Once()
	suite.mockWorkspaceRepo.On("FindTeamMemberByID", ctx, submitterTeamMemberID).
		Return(&domain.TeamMember{TeamMemberID: submitterTeamMemberID, MemberID: submitterMemberID}, nil).Once()
	suite.mockOrgRepo.On("FindMemberByID", ctx, submitterMemberID).
		Return(&domain.OrganizationMember{MemberID: submitterMemberID, UserID: submitterUserID}, nil).Once()
	suite.mockNotifierSvc.On("NotifyTx", ctx, mock.Anything, submitterUserID, mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()
	suite.mockEntryRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	approved := *entry
	approved.Status = domain.EntryApproved
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(&approved, nil).Once()

	updated, err := suite.service.TransitionEntry(ctx, entryID, domain.EntryApproved, "ok", reviewerUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryApproved, updated.Status)
	suite.mockRemittanceSvc.AssertExpectations(suite.T())
	suite.mockAuditSvc.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestTransitionEntry_IllegalTransition() {
	ctx := context.Background()
	entryID := uuid.NewString()
	entry := suite.pendingDisbursement(entryID, uuid.NewString())
	entry.Status = domain.EntryApproved

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	updated, err := suite.service.TransitionEntry(ctx, entryID, domain.EntryPending, "", uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbiddenTransition)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestTransitionEntry_SubmitterCannotReview() {
	ctx := context.Background()
	entryID := uuid.NewString()
	submitterTeamMemberID := uuid.NewString()
	submitterUserID := uuid.NewString()
	entry := suite.pendingDisbursement(entryID, submitterTeamMemberID)
	actor := &domain.Actor{UserID: submitterUserID, MemberID: uuid.NewString(), TeamMemberID: submitterTeamMemberID, IsOperationsReviewer: true}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, submitterUserID, domain.CapEntryReview, mock.Anything).Return(actor, nil).Once()

	updated, err := suite.service.TransitionEntry(ctx, entryID, domain.EntryApproved, "", submitterUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestTransitionEntry_MissingCapabilityIsForbiddenTransition() {
	ctx := context.Background()
	entryID := uuid.NewString()
	actorUserID := uuid.NewString()
	entry := suite.pendingDisbursement(entryID, uuid.NewString())

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapEntryReview, mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	updated, err := suite.service.TransitionEntry(ctx, entryID, domain.EntryApproved, "", actorUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbiddenTransition)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *EntryServiceTestSuite) TestTransitionEntry_ResubmitRechecksAttachments() {
	ctx := context.Background()
	entryID := uuid.NewString()
	submitterTeamMemberID := uuid.NewString()
	submitterUserID := uuid.NewString()
	entry := suite.pendingDisbursement(entryID, submitterTeamMemberID)
	entry.Status = domain.EntryRejected
	entry.IsFlagged = false
	actor := &domain.Actor{UserID: submitterUserID, MemberID: uuid.NewString(), TeamMemberID: submitterTeamMemberID, TeamRole: domain.TeamRoleSubmitter}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, submitterUserID, domain.CapEntryResubmit, mock.Anything).Return(actor, nil).Once()
	suite.mockAttachmentSvc.On("AttachmentCount", ctx, entryID).Return(0, nil).Once()
	suite.mockEntryRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockEntryRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockEntryRepo.On("FindEntryByIDForUpdate", ctx, mock.Anything, entryID).Return(entry, nil).Once()
	// Disbursement without attachments comes back flagged
	suite.mockEntryRepo.On("UpdateEntryStatus", ctx, mock.Anything, entryID, domain.EntryRejected, domain.EntryPending, "fixed", true, submitterUserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAuditSvc.On("RecordTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockEntryRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	resubmitted := *entry
	resubmitted.Status = domain.EntryPending
	resubmitted.IsFlagged = true
	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(&resubmitted, nil).Once()

	updated, err := suite.service.TransitionEntry(ctx, entryID, domain.EntryPending, "fixed", submitterUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.EntryPending, updated.Status)
	suite.True(updated.IsFlagged)
	// Resubmissions do not notify anyone
	suite.mockNotifierSvc.AssertNotCalled(suite.T(), "NotifyTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	// Approval-path remittance hook must not fire
	suite.mockRemittanceSvc.AssertNotCalled(suite.T(), "ApplyApprovedEntryTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_OnlyNeverReviewedPending() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reviewedAt := time.Now()
	entry := suite.pendingDisbursement(entryID, uuid.NewString())
	entry.StatusLastUpdatedAt = &reviewedAt

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()

	err := suite.service.DeleteEntry(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	submitterTeamMemberID := uuid.NewString()
	actorUserID := uuid.NewString()
	entry := suite.pendingDisbursement(entryID, submitterTeamMemberID)
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), TeamMemberID: submitterTeamMemberID}

	suite.mockEntryRepo.On("FindEntryByID", ctx, entryID).Return(entry, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapEntryDelete, mock.Anything).Return(actor, nil).Once()
	suite.mockEntryRepo.On("DeleteEntry", ctx, entryID).Return(nil).Once()
	suite.mockAuditSvc.On("Record", ctx, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditEntryDeleted && e.TargetID == entryID
	})).Once()

	err := suite.service.DeleteEntry(ctx, entryID, actorUserID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
