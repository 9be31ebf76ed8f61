package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// --- Mock CurrencyRepository ---

type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindLatestWorkspaceRate(ctx context.Context, workspaceID, currencyCode string, onOrBefore time.Time) (*domain.WorkspaceExchangeRate, error) {
	args := m.Called(ctx, workspaceID, currencyCode, onOrBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestOrgRate(ctx context.Context, organizationID, currencyCode string, onOrBefore time.Time) (*domain.OrgExchangeRate, error) {
	args := m.Called(ctx, organizationID, currencyCode, onOrBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindWorkspaceRateByID(ctx context.Context, rateID string) (*domain.WorkspaceExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListOrgRates(ctx context.Context, organizationID string) ([]domain.OrgExchangeRate, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrgExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListWorkspaceRates(ctx context.Context, workspaceID string) ([]domain.WorkspaceExchangeRate, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkspaceExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveOrgRate(ctx context.Context, rate domain.OrgExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) SaveWorkspaceRate(ctx context.Context, rate domain.WorkspaceExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) ApproveWorkspaceRate(ctx context.Context, rateID, approverMemberID string, at time.Time) error {
	args := m.Called(ctx, rateID, approverMemberID, at)
	return args.Error(0)
}

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var entries []domain.Entry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.Entry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryRepository) SumApprovedConverted(ctx context.Context, tx pgx.Tx, workspaceTeamID, periodID string, types []domain.EntryType) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, workspaceTeamID, periodID, types)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryUserFields(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, tx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) UpdateEntryStatus(ctx context.Context, tx pgx.Tx, entryID string, from, to domain.EntryStatus, statusNote string, isFlagged bool, modifiedBy string, at time.Time) error {
	args := m.Called(ctx, tx, entryID, from, to, statusNote, isFlagged, modifiedBy, at)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock RemittanceRepository ---

type MockRemittanceRepository struct {
	mock.Mock
}

func (m *MockRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	args := m.Called(ctx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) ListRemittancesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Remittance, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, workspaceTeamID, periodID string, creatorUserID string) (*domain.Remittance, error) {
	args := m.Called(ctx, tx, workspaceTeamID, periodID, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) FindRemittanceByIDForUpdate(ctx context.Context, tx pgx.Tx, remittanceID string) (*domain.Remittance, error) {
	args := m.Called(ctx, tx, remittanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Remittance), args.Error(1)
}

func (m *MockRemittanceRepository) UpdateRemittance(ctx context.Context, tx pgx.Tx, remittance domain.Remittance) error {
	args := m.Called(ctx, tx, remittance)
	return args.Error(0)
}

func (m *MockRemittanceRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockRemittanceRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockRemittanceRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock WorkspaceRepository ---

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByOrganization(ctx context.Context, organizationID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockWorkspaceRepository) ListTeamsByOrganization(ctx context.Context, organizationID string) ([]domain.Team, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Team), args.Error(1)
}

func (m *MockWorkspaceRepository) FindWorkspaceTeamByID(ctx context.Context, workspaceTeamID string) (*domain.WorkspaceTeam, error) {
	args := m.Called(ctx, workspaceTeamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceTeam), args.Error(1)
}

func (m *MockWorkspaceRepository) FindWorkspaceTeam(ctx context.Context, workspaceID, teamID string) (*domain.WorkspaceTeam, error) {
	args := m.Called(ctx, workspaceID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceTeam), args.Error(1)
}

func (m *MockWorkspaceRepository) FindTeamMember(ctx context.Context, teamID, memberID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockWorkspaceRepository) FindTeamMemberByID(ctx context.Context, teamMemberID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamMemberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) SaveWorkspaceTeam(ctx context.Context, workspaceTeam domain.WorkspaceTeam) error {
	args := m.Called(ctx, workspaceTeam)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) SaveTeamMember(ctx context.Context, teamMember domain.TeamMember) error {
	args := m.Called(ctx, teamMember)
	return args.Error(0)
}

// --- Mock OrganizationRepository ---

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.OrganizationMember, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationMember), args.Error(1)
}

func (m *MockOrganizationRepository) FindMembership(ctx context.Context, userID, organizationID string) (*domain.OrganizationMember, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizationMember), args.Error(1)
}

func (m *MockOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationMember), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SaveMember(ctx context.Context, member domain.OrganizationMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateMember(ctx context.Context, member domain.OrganizationMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// --- Mock WorkspaceService (full facade, doubles as the authorizer) ---

type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) ResolveActor(ctx context.Context, userID string, scope domain.AuthScope) (*domain.Actor, error) {
	args := m.Called(ctx, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockWorkspaceService) Can(ctx context.Context, actor domain.Actor, capability domain.Capability, scope domain.AuthScope) (bool, error) {
	args := m.Called(ctx, actor, capability, scope)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) Authorize(ctx context.Context, userID string, capability domain.Capability, scope domain.AuthScope) (*domain.Actor, error) {
	args := m.Called(ctx, userID, capability, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

func (m *MockWorkspaceService) GetWorkspaceByID(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) ListWorkspaces(ctx context.Context, organizationID, requestingUserID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, organizationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) GetTeamByID(ctx context.Context, teamID, requestingUserID string) (*domain.Team, error) {
	args := m.Called(ctx, teamID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockWorkspaceService) CreateWorkspace(ctx context.Context, organizationID string, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, actorUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceService) CreateTeam(ctx context.Context, organizationID string, req dto.CreateTeamRequest, creatorUserID string) (*domain.Team, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

func (m *MockWorkspaceService) AddTeamMember(ctx context.Context, teamID string, req dto.AddTeamMemberRequest, actorUserID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, teamID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockWorkspaceService) AddTeamToWorkspace(ctx context.Context, workspaceID, teamID, actorUserID string) (*domain.WorkspaceTeam, error) {
	args := m.Called(ctx, workspaceID, teamID, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceTeam), args.Error(1)
}

func (m *MockWorkspaceService) SetTeamRemittanceRate(ctx context.Context, workspaceID, teamID string, req dto.SetTeamRateRequest, actorUserID string) (*domain.Team, error) {
	args := m.Called(ctx, workspaceID, teamID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}

// --- Mock RateResolver ---

type MockRateResolver struct {
	mock.Mock
}

func (m *MockRateResolver) ResolveRate(ctx context.Context, currencyCode, organizationID string, workspaceID *string, occurredAt time.Time) (*domain.ResolvedRate, error) {
	args := m.Called(ctx, currencyCode, organizationID, workspaceID, occurredAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedRate), args.Error(1)
}

// --- Mock RemittanceApplier ---

type MockRemittanceApplier struct {
	mock.Mock
}

func (m *MockRemittanceApplier) ApplyApprovedEntryTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, actorUserID string) error {
	args := m.Called(ctx, tx, entry, actorUserID)
	return args.Error(0)
}

// --- Mock AuditRecorder ---

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) RecordTx(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockAuditRecorder) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

// --- Mock Notifier ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyTx(ctx context.Context, tx pgx.Tx, recipientUserID, template string, templateCtx map[string]string) error {
	args := m.Called(ctx, tx, recipientUserID, template, templateCtx)
	return args.Error(0)
}

// --- Mock AttachmentCounter ---

type MockAttachmentCounter struct {
	mock.Mock
}

func (m *MockAttachmentCounter) AttachmentCount(ctx context.Context, entryID string) (int, error) {
	args := m.Called(ctx, entryID)
	return args.Int(0), args.Error(1)
}
