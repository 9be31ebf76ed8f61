package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/utils/valuation"
	"github.com/orgfin/org_finance_app/internal/workers"
)

// remittancePeriodFormat keys one remittance row per calendar month of entry
// occurrence.
const remittancePeriodFormat = "2006-01"

// PeriodIDFor returns the remittance period an entry occurrence date falls in.
func PeriodIDFor(occurredAt time.Time) string {
	return occurredAt.Format(remittancePeriodFormat)
}

// contributingTypes are the entry types whose approved converted amounts
// feed the due amount.
var contributingTypes = []domain.EntryType{domain.EntryDisbursement, domain.EntryRemittance}

type remittanceService struct {
	BaseService
	remittanceRepo portsrepo.RemittanceRepositoryWithTx
	entryRepo      portsrepo.EntryReader
	workspaceRepo  portsrepo.WorkspaceReader
	orgRepo        portsrepo.OrganizationReader
	currencyRepo   portsrepo.CurrencyReader
	workspaceSvc   portssvc.AuthorizerSvc
	auditSvc       portssvc.AuditRecorderSvc
	notifierSvc    portssvc.NotifierSvc
}

// NewRemittanceService creates the remittance calculation service.
func NewRemittanceService(
	remittanceRepo portsrepo.RemittanceRepositoryWithTx,
	entryRepo portsrepo.EntryReader,
	workspaceRepo portsrepo.WorkspaceReader,
	orgRepo portsrepo.OrganizationReader,
	currencyRepo portsrepo.CurrencyReader,
	workspaceSvc portssvc.AuthorizerSvc,
	auditSvc portssvc.AuditRecorderSvc,
	notifierSvc portssvc.NotifierSvc,
) portssvc.RemittanceSvcFacade {
	return &remittanceService{
		remittanceRepo: remittanceRepo,
		entryRepo:      entryRepo,
		workspaceRepo:  workspaceRepo,
		orgRepo:        orgRepo,
		currencyRepo:   currencyRepo,
		workspaceSvc:   workspaceSvc,
		auditSvc:       auditSvc,
		notifierSvc:    notifierSvc,
	}
}

var _ portssvc.RemittanceSvcFacade = (*remittanceService)(nil)

func (s *remittanceService) GetRemittanceByID(ctx context.Context, remittanceID, requestingUserID string) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find remittance",
				slog.String("remittance_id", remittanceID))
		}
		return nil, err
	}
	if _, err := s.authorizeForRemittance(ctx, requestingUserID, domain.CapEntryRead, remittance); err != nil {
		return nil, err
	}
	return remittance, nil
}

func (s *remittanceService) ListRemittancesByWorkspace(ctx context.Context, workspaceID, requestingUserID string) ([]domain.Remittance, error) {
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	}); err != nil {
		return nil, err
	}
	remittances, err := s.remittanceRepo.ListRemittancesByWorkspace(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list remittances",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if remittances == nil {
		return []domain.Remittance{}, nil
	}
	return remittances, nil
}

// ApplyApprovedEntryTx folds a freshly approved entry into the workspace-team
// obligation. The remittance row is locked, then the due amount is re-derived
// from the full approved set inside the same transaction, so the result is
// identical whether contributions arrive one at a time or get recomputed.
func (s *remittanceService) ApplyApprovedEntryTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, actorUserID string) error {
	if entry.WorkspaceTeamID == nil {
		return fmt.Errorf("%w: entry has no workspace team", apperrors.ErrValidation)
	}
	periodID := PeriodIDFor(entry.OccurredAt)

	remittance, err := s.remittanceRepo.GetOrCreateForUpdate(ctx, tx, *entry.WorkspaceTeamID, periodID, actorUserID)
	if err != nil {
		return err
	}
	return s.recomputeLocked(ctx, tx, remittance, actorUserID)
}

// RecomputeRemittance re-derives a remittance from scratch. The result must
// match the incrementally maintained value; running it is always safe.
func (s *remittanceService) RecomputeRemittance(ctx context.Context, workspaceTeamID, periodID, actorUserID string) (*domain.Remittance, error) {
	workspaceTeam, err := s.workspaceRepo.FindWorkspaceTeamByID(ctx, workspaceTeamID)
	if err != nil {
		return nil, err
	}
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceTeam.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaceSvc.Authorize(ctx, actorUserID, domain.CapWorkspaceManage, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspace.WorkspaceID,
	}); err != nil {
		return nil, err
	}

	tx, err := s.remittanceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.remittanceRepo.Rollback(ctx, tx)

	remittance, err := s.remittanceRepo.GetOrCreateForUpdate(ctx, tx, workspaceTeamID, periodID, actorUserID)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeLocked(ctx, tx, remittance, actorUserID); err != nil {
		return nil, err
	}
	if err := s.remittanceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Remittance recomputed",
		slog.String("remittance_id", remittance.RemittanceID),
		slog.String("due_amount", remittance.DueAmount.String()))
	return remittance, nil
}

// recomputeLocked rebuilds the due amount of an already-locked remittance
// row and derives the resulting status. remittance is updated in place.
func (s *remittanceService) recomputeLocked(ctx context.Context, tx pgx.Tx, remittance *domain.Remittance, actorUserID string) error {
	workspaceTeam, err := s.workspaceRepo.FindWorkspaceTeamByID(ctx, remittance.WorkspaceTeamID)
	if err != nil {
		return err
	}
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceTeam.WorkspaceID)
	if err != nil {
		return err
	}
	team, err := s.workspaceRepo.FindTeamByID(ctx, workspaceTeam.TeamID)
	if err != nil {
		return err
	}
	org, err := s.orgRepo.FindOrganizationByID(ctx, workspace.OrganizationID)
	if err != nil {
		return err
	}
	baseCurrency, err := s.currencyRepo.FindCurrencyByCode(ctx, org.BaseCurrencyCode)
	if err != nil {
		return err
	}

	sum, err := s.entryRepo.SumApprovedConverted(ctx, tx, remittance.WorkspaceTeamID, remittance.PeriodID, contributingTypes)
	if err != nil {
		return err
	}

	ratePercent := domain.EffectiveRemittanceRate(*team, *workspace, org.DefaultRemittanceRate)
	due, err := valuation.ComputeDueAmount(sum, ratePercent, baseCurrency.Precision)
	if err != nil {
		return err
	}

	now := time.Now()
	remittance.DueAmount = due
	remittance.DueDate = workspace.EndDate
	remittance.Status = domain.DeriveRemittanceStatus(remittance.Status, due, remittance.PaidAmount, remittance.DueDate, now)
	remittance.LastUpdatedAt = now
	remittance.LastUpdatedBy = actorUserID

	return s.remittanceRepo.UpdateRemittance(ctx, tx, *remittance)
}

// RecordPayment applies a payment to the obligation. Payments above the due
// amount are rejected unless the override flag is set.
func (s *remittanceService) RecordPayment(ctx context.Context, remittanceID string, amount decimal.Decimal, allowOverpayment bool, actorUserID string) (*domain.Remittance, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeForRemittance(ctx, actorUserID, domain.CapRemittanceRecordPayment, remittance); err != nil {
		return nil, err
	}

	tx, err := s.remittanceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.remittanceRepo.Rollback(ctx, tx)

	locked, err := s.remittanceRepo.FindRemittanceByIDForUpdate(ctx, tx, remittanceID)
	if err != nil {
		return nil, err
	}
	if locked.Status == domain.RemittanceCanceled {
		return nil, fmt.Errorf("%w: remittance is canceled", apperrors.ErrConflict)
	}

	newPaid := locked.PaidAmount.Add(amount)
	if newPaid.GreaterThan(locked.DueAmount) && !allowOverpayment {
		return nil, fmt.Errorf("%w: payment of %s exceeds remaining due %s",
			apperrors.ErrOverpayment, amount.String(), locked.DueAmount.Sub(locked.PaidAmount).String())
	}

	now := time.Now()
	locked.PaidAmount = newPaid
	locked.Status = domain.DeriveRemittanceStatus(locked.Status, locked.DueAmount, newPaid, locked.DueDate, now)
	locked.LastUpdatedAt = now
	locked.LastUpdatedBy = actorUserID

	if err := s.remittanceRepo.UpdateRemittance(ctx, tx, *locked); err != nil {
		return nil, err
	}

	if err := s.auditSvc.RecordTx(ctx, tx, domain.AuditEvent{
		ActionType:  domain.AuditPaymentRecorded,
		ActorUserID: actorUserID,
		TargetType:  domain.AuditTargetRemittance,
		TargetID:    remittanceID,
		Metadata: map[string]string{
			"amount":      amount.String(),
			"paid_amount": newPaid.String(),
			"due_amount":  locked.DueAmount.String(),
			"status":      string(locked.Status),
		},
	}); err != nil {
		return nil, err
	}

	if recipient, err := s.coordinatorUserID(ctx, locked.WorkspaceTeamID); err == nil && recipient != "" && recipient != actorUserID {
		if err := s.notifierSvc.NotifyTx(ctx, tx, recipient, workers.TemplatePaymentRecorded, map[string]string{
			"remittance_id": remittanceID,
			"amount":        amount.String(),
		}); err != nil {
			return nil, err
		}
	}

	if err := s.remittanceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("remittance_id", remittanceID),
		slog.String("amount", amount.String()),
		slog.String("status", string(locked.Status)))
	return locked, nil
}

// ConfirmRemittance marks a fully paid obligation as confirmed.
func (s *remittanceService) ConfirmRemittance(ctx context.Context, remittanceID, actorUserID string) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, err
	}
	actor, err := s.authorizeForRemittance(ctx, actorUserID, domain.CapRemittanceConfirm, remittance)
	if err != nil {
		return nil, err
	}

	tx, err := s.remittanceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.remittanceRepo.Rollback(ctx, tx)

	locked, err := s.remittanceRepo.FindRemittanceByIDForUpdate(ctx, tx, remittanceID)
	if err != nil {
		return nil, err
	}
	if locked.Status != domain.RemittancePaid {
		return nil, fmt.Errorf("%w: only fully paid remittances can be confirmed", apperrors.ErrConflict)
	}
	if locked.ConfirmedAt != nil {
		return nil, fmt.Errorf("%w: remittance already confirmed", apperrors.ErrConflict)
	}

	now := time.Now()
	locked.ConfirmedBy = &actor.MemberID
	locked.ConfirmedAt = &now
	locked.LastUpdatedAt = now
	locked.LastUpdatedBy = actorUserID

	if err := s.remittanceRepo.UpdateRemittance(ctx, tx, *locked); err != nil {
		return nil, err
	}
	if err := s.remittanceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Remittance confirmed",
		slog.String("remittance_id", remittanceID),
		slog.String("confirmed_by", actor.MemberID))
	return locked, nil
}

// CancelRemittance applies the sticky administrative override.
func (s *remittanceService) CancelRemittance(ctx context.Context, remittanceID, actorUserID string) (*domain.Remittance, error) {
	return s.setCanceled(ctx, remittanceID, actorUserID, true)
}

// ReopenRemittance lifts the override; the status re-derives from amounts.
func (s *remittanceService) ReopenRemittance(ctx context.Context, remittanceID, actorUserID string) (*domain.Remittance, error) {
	return s.setCanceled(ctx, remittanceID, actorUserID, false)
}

func (s *remittanceService) setCanceled(ctx context.Context, remittanceID, actorUserID string, cancel bool) (*domain.Remittance, error) {
	remittance, err := s.remittanceRepo.FindRemittanceByID(ctx, remittanceID)
	if err != nil {
		return nil, err
	}
	if _, err := s.authorizeForRemittance(ctx, actorUserID, domain.CapRemittanceCancel, remittance); err != nil {
		return nil, err
	}

	tx, err := s.remittanceRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.remittanceRepo.Rollback(ctx, tx)

	locked, err := s.remittanceRepo.FindRemittanceByIDForUpdate(ctx, tx, remittanceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if cancel {
		if locked.Status == domain.RemittanceCanceled {
			return nil, fmt.Errorf("%w: remittance already canceled", apperrors.ErrConflict)
		}
		locked.Status = domain.RemittanceCanceled
	} else {
		if locked.Status != domain.RemittanceCanceled {
			return nil, fmt.Errorf("%w: remittance is not canceled", apperrors.ErrConflict)
		}
		// Derive fresh, ignoring the sticky override.
		locked.Status = domain.DeriveRemittanceStatus(domain.RemittancePending, locked.DueAmount, locked.PaidAmount, locked.DueDate, now)
	}
	locked.LastUpdatedAt = now
	locked.LastUpdatedBy = actorUserID

	if err := s.remittanceRepo.UpdateRemittance(ctx, tx, *locked); err != nil {
		return nil, err
	}
	if err := s.remittanceRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Remittance override changed",
		slog.String("remittance_id", remittanceID),
		slog.String("status", string(locked.Status)))
	return locked, nil
}

// authorizeForRemittance builds the scope from the remittance's workspace
// team and runs the capability check.
func (s *remittanceService) authorizeForRemittance(ctx context.Context, userID string, capability domain.Capability, remittance *domain.Remittance) (*domain.Actor, error) {
	workspaceTeam, err := s.workspaceRepo.FindWorkspaceTeamByID(ctx, remittance.WorkspaceTeamID)
	if err != nil {
		return nil, err
	}
	workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceTeam.WorkspaceID)
	if err != nil {
		return nil, err
	}
	return s.workspaceSvc.Authorize(ctx, userID, capability, domain.AuthScope{
		OrganizationID:  workspace.OrganizationID,
		WorkspaceID:     workspace.WorkspaceID,
		WorkspaceTeamID: remittance.WorkspaceTeamID,
	})
}

// coordinatorUserID resolves the team coordinator for payment notifications.
func (s *remittanceService) coordinatorUserID(ctx context.Context, workspaceTeamID string) (string, error) {
	workspaceTeam, err := s.workspaceRepo.FindWorkspaceTeamByID(ctx, workspaceTeamID)
	if err != nil {
		return "", err
	}
	team, err := s.workspaceRepo.FindTeamByID(ctx, workspaceTeam.TeamID)
	if err != nil {
		return "", err
	}
	if team.CoordinatorMemberID == nil {
		return "", nil
	}
	member, err := s.orgRepo.FindMemberByID(ctx, *team.CoordinatorMemberID)
	if err != nil {
		return "", err
	}
	return member.UserID, nil
}
