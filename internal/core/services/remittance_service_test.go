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
)

type RemittanceServiceTestSuite struct {
	suite.Suite
	mockRemittanceRepo *MockRemittanceRepository
	mockEntryRepo      *MockEntryRepository
	mockWorkspaceRepo  *MockWorkspaceRepository
	mockOrgRepo        *MockOrganizationRepository
	mockCurrencyRepo   *MockCurrencyRepository
	mockWorkspaceSvc   *MockWorkspaceService
	mockAuditSvc       *MockAuditRecorder
	mockNotifierSvc    *MockNotifier
	service            portssvc.RemittanceSvcFacade

	orgID           string
	workspaceID     string
	teamID          string
	workspaceTeamID string
	periodID        string
	dueDate         time.Time
}

func (suite *RemittanceServiceTestSuite) SetupTest() {
	suite.mockRemittanceRepo = new(MockRemittanceRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockWorkspaceRepo = new(MockWorkspaceRepository)
	suite.mockOrgRepo = new(MockOrganizationRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockWorkspaceSvc = new(MockWorkspaceService)
	suite.mockAuditSvc = new(MockAuditRecorder)
	suite.mockNotifierSvc = new(MockNotifier)
	suite.service = services.NewRemittanceService(
		suite.mockRemittanceRepo,
		suite.mockEntryRepo,
		suite.mockWorkspaceRepo,
		suite.mockOrgRepo,
		suite.mockCurrencyRepo,
		suite.mockWorkspaceSvc,
		suite.mockAuditSvc,
		suite.mockNotifierSvc,
	)

	suite.orgID = uuid.NewString()
	suite.workspaceID = uuid.NewString()
	suite.teamID = uuid.NewString()
	suite.workspaceTeamID = uuid.NewString()
	suite.periodID = "2025-03"
	suite.dueDate = time.Now().Add(30 * 24 * time.Hour).Truncate(time.Second)
}

// expectScope wires the workspace-team to workspace/team/org lookups the
// recompute and authorization paths walk.
func (suite *RemittanceServiceTestSuite) expectScope(ctx context.Context, teamRate *decimal.Decimal) {
	suite.mockWorkspaceRepo.On("FindWorkspaceTeamByID", ctx, suite.workspaceTeamID).
		Return(&domain.WorkspaceTeam{WorkspaceTeamID: suite.workspaceTeamID, WorkspaceID: suite.workspaceID, TeamID: suite.teamID}, nil)
	suite.mockWorkspaceRepo.On("FindWorkspaceByID", ctx, suite.workspaceID).
		Return(&domain.Workspace{
			WorkspaceID:    suite.workspaceID,
			OrganizationID: suite.orgID,
			Status:         domain.WorkspaceActive,
			EndDate:        &suite.dueDate,
		}, nil)
	suite.mockWorkspaceRepo.On("FindTeamByID", ctx, suite.teamID).
		Return(&domain.Team{TeamID: suite.teamID, OrganizationID: suite.orgID, CustomRemittanceRate: teamRate}, nil)
	suite.mockOrgRepo.On("FindOrganizationByID", ctx, suite.orgID).
		Return(&domain.Organization{
			OrganizationID:        suite.orgID,
			BaseCurrencyCode:      "USD",
			DefaultRemittanceRate: decimal.NewFromInt(90),
		}, nil)
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Precision: 2}, nil)
}

func (suite *RemittanceServiceTestSuite) pendingRemittance() *domain.Remittance {
	return &domain.Remittance{
		RemittanceID:    uuid.NewString(),
		WorkspaceTeamID: suite.workspaceTeamID,
		PeriodID:        suite.periodID,
		DueAmount:       decimal.RequireFromString("850.00"),
		PaidAmount:      decimal.Zero,
		Status:          domain.RemittancePending,
		DueDate:         &suite.dueDate,
	}
}

func (suite *RemittanceServiceTestSuite) TestApplyApprovedEntryTx_RecomputesDue() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	teamRate := decimal.RequireFromString("50")
	suite.expectScope(ctx, &teamRate)

	remittance := suite.pendingRemittance()
	remittance.DueAmount = decimal.Zero
	entry := domain.Entry{
		EntryID:         uuid.NewString(),
		OrganizationID:  suite.orgID,
		WorkspaceTeamID: &suite.workspaceTeamID,
		EntryType:       domain.EntryDisbursement,
		OccurredAt:      time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	suite.mockRemittanceRepo.On("GetOrCreateForUpdate", ctx, mock.Anything, suite.workspaceTeamID, "2025-03", actorUserID).
		Return(remittance, nil).Once()
	suite.mockEntryRepo.On("SumApprovedConverted", ctx, mock.Anything, suite.workspaceTeamID, "2025-03",
		[]domain.EntryType{domain.EntryDisbursement, domain.EntryRemittance}).
		Return(decimal.RequireFromString("33.35"), nil).Once()
	// 33.35 * 50% = 16.675, banker's rounding gives 16.68
	suite.mockRemittanceRepo.On("UpdateRemittance", ctx, mock.Anything, mock.MatchedBy(func(r domain.Remittance) bool {
		return r.DueAmount.Equal(decimal.RequireFromString("16.68")) && r.Status == domain.RemittancePending
	})).Return(nil).Once()

	err := suite.service.ApplyApprovedEntryTx(ctx, nil, entry, actorUserID)

	suite.Require().NoError(err)
	suite.mockRemittanceRepo.AssertExpectations(suite.T())
}

func (suite *RemittanceServiceTestSuite) TestApplyApprovedEntryTx_RequiresWorkspaceTeam() {
	ctx := context.Background()
	entry := domain.Entry{EntryID: uuid.NewString(), EntryType: domain.EntryDisbursement}

	err := suite.service.ApplyApprovedEntryTx(ctx, nil, entry, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RemittanceServiceTestSuite) TestRecomputeRemittance_FallsBackToWorkspaceThenOrgRate() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsWorkspaceAdmin: true}
	suite.expectScope(ctx, nil) // no team custom rate, workspace has none either

	remittance := suite.pendingRemittance()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapWorkspaceManage, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("GetOrCreateForUpdate", ctx, mock.Anything, suite.workspaceTeamID, suite.periodID, actorUserID).
		Return(remittance, nil).Once()
	suite.mockEntryRepo.On("SumApprovedConverted", ctx, mock.Anything, suite.workspaceTeamID, suite.periodID, mock.Anything).
		Return(decimal.RequireFromString("100.00"), nil).Once()
	// Org default of 90% applies when neither team nor workspace set a rate
	suite.mockRemittanceRepo.On("UpdateRemittance", ctx, mock.Anything, mock.MatchedBy(func(r domain.Remittance) bool {
		return r.DueAmount.Equal(decimal.RequireFromString("90.00"))
	})).Return(nil).Once()
	suite.mockRemittanceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RecomputeRemittance(ctx, suite.workspaceTeamID, suite.periodID, actorUserID)

	suite.Require().NoError(err)
	suite.True(result.DueAmount.Equal(decimal.RequireFromString("90.00")))
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_PartialPayment() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsTeamCoordinator: true}
	remittance := suite.pendingRemittance()
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceRecordPayment, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockRemittanceRepo.On("UpdateRemittance", ctx, mock.Anything, mock.MatchedBy(func(r domain.Remittance) bool {
		return r.PaidAmount.Equal(decimal.RequireFromString("500.00")) && r.Status == domain.RemittancePartiallyPaid
	})).Return(nil).Once()
	suite.mockAuditSvc.On("RecordTx", ctx, mock.Anything, mock.MatchedBy(func(e domain.AuditEvent) bool {
		return e.ActionType == domain.AuditPaymentRecorded && e.TargetID == remittance.RemittanceID
	})).Return(nil).Once()
	suite.mockRemittanceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, decimal.RequireFromString("500.00"), false, actorUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RemittancePartiallyPaid, updated.Status)
	suite.True(updated.PaidAmount.Equal(decimal.RequireFromString("500.00")))
	// No coordinator on the team, so nobody gets notified
	suite.mockNotifierSvc.AssertNotCalled(suite.T(), "NotifyTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_OverpaymentRejected() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsWorkspaceAdmin: true}
	remittance := suite.pendingRemittance()
	remittance.PaidAmount = decimal.RequireFromString("800.00")
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceRecordPayment, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil).Once()

	updated, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, decimal.RequireFromString("100.00"), false, actorUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrOverpayment)
	suite.mockRemittanceRepo.AssertNotCalled(suite.T(), "UpdateRemittance", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_OverpaymentOverride() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsWorkspaceAdmin: true}
	remittance := suite.pendingRemittance()
	remittance.PaidAmount = decimal.RequireFromString("800.00")
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceRecordPayment, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockRemittanceRepo.On("UpdateRemittance", ctx, mock.Anything, mock.MatchedBy(func(r domain.Remittance) bool {
		return r.PaidAmount.Equal(decimal.RequireFromString("900.00")) && r.Status == domain.RemittancePaid
	})).Return(nil).Once()
	suite.mockAuditSvc.On("RecordTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, decimal.RequireFromString("100.00"), true, actorUserID)

	suite.Require().NoError(err)
	suite.True(updated.PaidAmount.Equal(decimal.RequireFromString("900.00")))
	// Settled above the due amount still derives PAID, so confirmation
	// stays reachable.
	suite.Equal(domain.RemittancePaid, updated.Status)
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_CanceledIsSticky() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsWorkspaceAdmin: true}
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittanceCanceled
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceRecordPayment, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil).Once()

	updated, err := suite.service.RecordPayment(ctx, remittance.RemittanceID, decimal.RequireFromString("50.00"), false, actorUserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *RemittanceServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	ctx := context.Background()

	updated, err := suite.service.RecordPayment(ctx, uuid.NewString(), decimal.Zero, false, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RemittanceServiceTestSuite) TestConfirmRemittance_RequiresFullyPaid() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsWorkspaceAdmin: true}
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittancePartiallyPaid
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceConfirm, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil).Once()

	confirmed, err := suite.service.ConfirmRemittance(ctx, remittance.RemittanceID, actorUserID)

	suite.Require().Error(err)
	suite.Nil(confirmed)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *RemittanceServiceTestSuite) TestConfirmRemittance_Success() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), IsWorkspaceAdmin: true}
	remittance := suite.pendingRemittance()
	remittance.Status = domain.RemittancePaid
	remittance.PaidAmount = remittance.DueAmount
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceConfirm, mock.Anything).Return(actor, nil).Once()
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil).Once()
	suite.mockRemittanceRepo.On("UpdateRemittance", ctx, mock.Anything, mock.MatchedBy(func(r domain.Remittance) bool {
		return r.ConfirmedBy != nil && *r.ConfirmedBy == actor.MemberID && r.ConfirmedAt != nil
	})).Return(nil).Once()
	suite.mockRemittanceRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	confirmed, err := suite.service.ConfirmRemittance(ctx, remittance.RemittanceID, actorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(confirmed.ConfirmedBy)
	suite.Equal(actor.MemberID, *confirmed.ConfirmedBy)
}

func (suite *RemittanceServiceTestSuite) TestCancelAndReopen() {
	ctx := context.Background()
	actorUserID := uuid.NewString()
	actor := &domain.Actor{UserID: actorUserID, MemberID: uuid.NewString(), OrgRole: domain.OrgRoleOwner}
	remittance := suite.pendingRemittance()
	remittance.PaidAmount = remittance.DueAmount // fully paid before the cancel
	suite.expectScope(ctx, nil)

	suite.mockRemittanceRepo.On("FindRemittanceByID", ctx, remittance.RemittanceID).Return(remittance, nil)
	suite.mockWorkspaceSvc.On("Authorize", ctx, actorUserID, domain.CapRemittanceCancel, mock.Anything).Return(actor, nil)
	suite.mockRemittanceRepo.On("Begin", ctx).Return(nil, nil)
	suite.mockRemittanceRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockRemittanceRepo.On("FindRemittanceByIDForUpdate", ctx, mock.Anything, remittance.RemittanceID).Return(remittance, nil)
	suite.mockRemittanceRepo.On("UpdateRemittance", ctx, mock.Anything, mock.Anything).Return(nil)
	suite.mockRemittanceRepo.On("Commit", ctx, mock.Anything).Return(nil)

	canceled, err := suite.service.CancelRemittance(ctx, remittance.RemittanceID, actorUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.RemittanceCanceled, canceled.Status)

	// The shared pointer now carries CANCELED, so reopen re-derives from amounts
	reopened, err := suite.service.ReopenRemittance(ctx, remittance.RemittanceID, actorUserID)
	suite.Require().NoError(err)
	suite.Equal(domain.RemittancePaid, reopened.Status)
}

func TestRemittanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RemittanceServiceTestSuite))
}
