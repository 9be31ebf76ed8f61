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
	"github.com/orgfin/org_finance_app/internal/utils/valuation"
	"github.com/orgfin/org_finance_app/internal/workers"
)

type entryService struct {
	BaseService
	entryRepo       portsrepo.EntryRepositoryWithTx
	orgRepo         portsrepo.OrganizationReader
	workspaceRepo   portsrepo.WorkspaceReader
	currencyRepo    portsrepo.CurrencyReader
	rateSvc         portssvc.RateResolverSvc
	workspaceSvc    portssvc.AuthorizerSvc
	remittanceSvc   portssvc.RemittanceApplierSvc
	auditSvc        portssvc.AuditRecorderSvc
	notifierSvc     portssvc.NotifierSvc
	attachmentSvc   portssvc.AttachmentCounterSvc
	resubmitRevalue bool
}

// NewEntryService creates the entry lifecycle service. resubmitRevalue
// controls whether a rejected entry returning to pending gets a fresh
// valuation against current rate data.
func NewEntryService(
	entryRepo portsrepo.EntryRepositoryWithTx,
	orgRepo portsrepo.OrganizationReader,
	workspaceRepo portsrepo.WorkspaceReader,
	currencyRepo portsrepo.CurrencyReader,
	rateSvc portssvc.RateResolverSvc,
	workspaceSvc portssvc.AuthorizerSvc,
	remittanceSvc portssvc.RemittanceApplierSvc,
	auditSvc portssvc.AuditRecorderSvc,
	notifierSvc portssvc.NotifierSvc,
	attachmentSvc portssvc.AttachmentCounterSvc,
	resubmitRevalue bool,
) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:       entryRepo,
		orgRepo:         orgRepo,
		workspaceRepo:   workspaceRepo,
		currencyRepo:    currencyRepo,
		rateSvc:         rateSvc,
		workspaceSvc:    workspaceSvc,
		remittanceSvc:   remittanceSvc,
		auditSvc:        auditSvc,
		notifierSvc:     notifierSvc,
		attachmentSvc:   attachmentSvc,
		resubmitRevalue: resubmitRevalue,
	}
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) GetEntryByID(ctx context.Context, entryID, requestingUserID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, entryScope(entry)); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *entryService) ListEntries(ctx context.Context, organizationID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	filter := portsrepo.ListEntriesFilter{
		OrganizationID:  organizationID,
		WorkspaceID:     params.WorkspaceID,
		WorkspaceTeamID: params.WorkspaceTeamID,
		EntryType:       params.EntryType,
		Status:          params.Status,
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries",
			slog.String("organization_id", organizationID))
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CreateEntry validates the submission, values it through the rate resolver
// and persists a new pending entry.
func (s *entryService) CreateEntry(ctx context.Context, req dto.CreateEntryRequest, submitterUserID string) (*domain.Entry, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
	}

	entry := domain.Entry{
		EntryID:        uuid.NewString(),
		OrganizationID: req.OrganizationID,
		EntryType:      req.EntryType,
		Amount:         req.Amount,
		CurrencyCode:   req.CurrencyCode,
		Description:    req.Description,
		OccurredAt:     req.OccurredAt,
		Status:         domain.EntryPending,
	}

	scope := domain.AuthScope{OrganizationID: req.OrganizationID}

	switch {
	case req.EntryType.IsTeamScoped():
		if req.WorkspaceTeamID == nil {
			return nil, fmt.Errorf("%w: %s entries require a workspace team", apperrors.ErrValidation, req.EntryType)
		}
		workspaceTeam, err := s.workspaceRepo.FindWorkspaceTeamByID(ctx, *req.WorkspaceTeamID)
		if err != nil {
			return nil, err
		}
		entry.WorkspaceTeamID = req.WorkspaceTeamID
		entry.WorkspaceID = &workspaceTeam.WorkspaceID
		scope.WorkspaceID = workspaceTeam.WorkspaceID
		scope.WorkspaceTeamID = *req.WorkspaceTeamID
	case req.EntryType == domain.EntryWorkspaceExp:
		if req.WorkspaceID == nil {
			return nil, fmt.Errorf("%w: workspace expenses require a workspace", apperrors.ErrValidation)
		}
		entry.WorkspaceID = req.WorkspaceID
		scope.WorkspaceID = *req.WorkspaceID
	case req.EntryType == domain.EntryOrgExp:
		// Organization scope only.
	default:
		return nil, fmt.Errorf("%w: unknown entry type %s", apperrors.ErrValidation, req.EntryType)
	}

	if entry.WorkspaceID != nil {
		workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, *entry.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if workspace.OrganizationID != req.OrganizationID {
			return nil, apperrors.ErrForbidden
		}
		if workspace.Status != domain.WorkspaceActive {
			return nil, fmt.Errorf("%w: workspace is not accepting entries", apperrors.ErrConflict)
		}
		if !workspace.ContainsDate(req.OccurredAt) {
			return nil, fmt.Errorf("%w: occurrence date outside the workspace window", apperrors.ErrValidation)
		}
	}

	actor, err := s.workspaceSvc.Authorize(ctx, submitterUserID, domain.CapEntrySubmit, scope)
	if err != nil {
		return nil, err
	}
	if req.EntryType.IsTeamScoped() {
		if actor.TeamMemberID == "" {
			return nil, apperrors.ErrForbidden
		}
		entry.SubmittedByTeamMemberID = &actor.TeamMemberID
	} else {
		entry.SubmittedByOrgMemberID = &actor.MemberID
	}

	if err := s.applyValuation(ctx, &entry); err != nil {
		return nil, err
	}

	// New entries have no attachments yet; types that require supporting
	// documents start out flagged until one is registered.
	entry.IsFlagged = req.EntryType.RequiresAttachments()

	now := time.Now()
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     submitterUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: submitterUserID,
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditEntryCreated,
		ActorUserID: submitterUserID,
		TargetType:  domain.AuditTargetEntry,
		TargetID:    entry.EntryID,
		Metadata: map[string]string{
			"entry_type":       string(entry.EntryType),
			"amount":           entry.Amount.String(),
			"currency_code":    entry.CurrencyCode,
			"converted_amount": entry.ConvertedAmount.String(),
		},
	})

	s.LogInfo(ctx, "Entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_type", string(entry.EntryType)),
		slog.String("converted_amount", entry.ConvertedAmount.String()))
	return &entry, nil
}

// UpdateEntry edits submitter fields while the entry is pending. Changing
// the amount, currency or occurrence date re-runs the valuation; the frozen
// valuation of a reviewed entry is untouchable.
func (s *entryService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorUserID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.ValuationFrozen() {
		return nil, fmt.Errorf("%w: entry is no longer pending", apperrors.ErrConflict)
	}

	actor, err := s.workspaceSvc.Authorize(ctx, actorUserID, domain.CapEntrySubmit, entryScope(entry))
	if err != nil {
		return nil, err
	}
	if !s.isSubmitter(entry, actor) {
		return nil, apperrors.ErrForbidden
	}

	revalue := false
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
		}
		entry.Amount = *req.Amount
		revalue = true
	}
	if req.CurrencyCode != nil {
		entry.CurrencyCode = *req.CurrencyCode
		revalue = true
	}
	if req.OccurredAt != nil {
		entry.OccurredAt = *req.OccurredAt
		revalue = true
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}

	if req.OccurredAt != nil && entry.WorkspaceID != nil {
		workspace, err := s.workspaceRepo.FindWorkspaceByID(ctx, *entry.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if !workspace.ContainsDate(entry.OccurredAt) {
			return nil, fmt.Errorf("%w: occurrence date outside the workspace window", apperrors.ErrValidation)
		}
	}

	if revalue {
		if err := s.applyValuation(ctx, entry); err != nil {
			return nil, err
		}
	}

	if err := s.refreshFlag(ctx, entry); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorUserID

	if err := s.entryRepo.UpdateEntryUserFields(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditEntryUpdated,
		ActorUserID: actorUserID,
		TargetType:  domain.AuditTargetEntry,
		TargetID:    entryID,
	})
	return entry, nil
}

// TransitionEntry moves an entry through the review state machine. The
// status flip, remittance contribution and side-effect enqueues commit in
// one transaction; a concurrent reviewer loses the compare-and-set and gets
// apperrors.ErrConflict.
func (s *entryService) TransitionEntry(ctx context.Context, entryID string, target domain.EntryStatus, note string, actorUserID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	required, legal := domain.RequiredCapability(entry.Status, target)
	if !legal {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrForbiddenTransition, entry.Status, target)
	}

	actor, err := s.workspaceSvc.Authorize(ctx, actorUserID, required, entryScope(entry))
	if err != nil {
		// A capability the actor lacks makes the transition itself
		// forbidden, not just the actor.
		if errors.Is(err, apperrors.ErrForbidden) {
			return nil, fmt.Errorf("%w: %s -> %s requires %s", apperrors.ErrForbiddenTransition, entry.Status, target, required)
		}
		return nil, err
	}
	if required == domain.CapEntryReview && s.isSubmitter(entry, actor) {
		return nil, fmt.Errorf("%w: submitter cannot review their own entry", apperrors.ErrForbidden)
	}
	if required == domain.CapEntryResubmit && !s.isSubmitter(entry, actor) {
		return nil, fmt.Errorf("%w: only the submitter can resubmit", apperrors.ErrForbidden)
	}

	isFlagged := entry.IsFlagged
	if target == domain.EntryFlagged {
		isFlagged = true
	} else if target == domain.EntryPending {
		// Returning to pending re-checks the attachment rule.
		count, err := s.attachmentSvc.AttachmentCount(ctx, entryID)
		if err != nil {
			return nil, err
		}
		isFlagged = entry.EntryType.RequiresAttachments() && count == 0
	}

	tx, err := s.entryRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.entryRepo.Rollback(ctx, tx)

	locked, err := s.entryRepo.FindEntryByIDForUpdate(ctx, tx, entryID)
	if err != nil {
		return nil, err
	}
	if locked.Status != entry.Status {
		return nil, fmt.Errorf("%w: entry status changed concurrently", apperrors.ErrConflict)
	}

	now := time.Now()
	if err := s.entryRepo.UpdateEntryStatus(ctx, tx, entryID, locked.Status, target, note, isFlagged, actorUserID, now); err != nil {
		return nil, err
	}

	if target == domain.EntryApproved && entry.EntryType.ContributesToRemittance() {
		if err := s.remittanceSvc.ApplyApprovedEntryTx(ctx, tx, *locked, actorUserID); err != nil {
			return nil, err
		}
	}

	if err := s.auditSvc.RecordTx(ctx, tx, domain.AuditEvent{
		ActionType:  domain.AuditStatusChanged,
		ActorUserID: actorUserID,
		TargetType:  domain.AuditTargetEntry,
		TargetID:    entryID,
		Metadata: map[string]string{
			"from": string(locked.Status),
			"to":   string(target),
			"note": note,
		},
	}); err != nil {
		return nil, err
	}

	if template := transitionTemplate(target); template != "" {
		recipient, err := s.submitterUserID(ctx, locked)
		if err == nil && recipient != actorUserID {
			if err := s.notifierSvc.NotifyTx(ctx, tx, recipient, template, map[string]string{
				"entry_id": entryID,
				"note":     note,
			}); err != nil {
				return nil, err
			}
		}
	}

	if err := s.entryRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	// Re-value a resubmitted entry against current rate data when the
	// policy says so. The entry is pending again, so its valuation is
	// mutable until the next review.
	if target == domain.EntryPending && locked.Status == domain.EntryRejected && s.resubmitRevalue {
		if err := s.revalueAfterResubmit(ctx, entryID, actorUserID); err != nil {
			s.LogError(ctx, err, "Failed to re-value resubmitted entry",
				slog.String("entry_id", entryID))
		}
	}

	updated, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Entry transitioned",
		slog.String("entry_id", entryID),
		slog.String("from", string(locked.Status)),
		slog.String("to", string(target)))
	return updated, nil
}

// DeleteEntry removes a pending entry that has never been reviewed.
func (s *entryService) DeleteEntry(ctx context.Context, entryID, actorUserID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryPending || entry.StatusLastUpdatedAt != nil {
		return fmt.Errorf("%w: only never-reviewed pending entries can be deleted", apperrors.ErrConflict)
	}

	actor, err := s.workspaceSvc.Authorize(ctx, actorUserID, domain.CapEntryDelete, entryScope(entry))
	if err != nil {
		return err
	}
	orgAdmin := actor.OrgRole == domain.OrgRoleOwner || actor.OrgRole == domain.OrgRoleAdmin
	if !s.isSubmitter(entry, actor) && !orgAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete entry", slog.String("entry_id", entryID))
		return err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditEntryDeleted,
		ActorUserID: actorUserID,
		TargetType:  domain.AuditTargetEntry,
		TargetID:    entryID,
	})
	return nil
}

// applyValuation resolves the applicable rate and computes the converted
// amount at the base currency's precision. An entry already in the base
// currency values at rate 1 with no rate record.
func (s *entryService) applyValuation(ctx context.Context, entry *domain.Entry) error {
	org, err := s.orgRepo.FindOrganizationByID(ctx, entry.OrganizationID)
	if err != nil {
		return err
	}
	baseCurrency, err := s.currencyRepo.FindCurrencyByCode(ctx, org.BaseCurrencyCode)
	if err != nil {
		return err
	}

	if entry.CurrencyCode == org.BaseCurrencyCode {
		entry.ExchangeRateUsed = decimal.NewFromInt(1)
		entry.RateScope = domain.ScopeOrganization
		entry.ExchangeRateID = ""
		entry.ConvertedAmount = entry.Amount.RoundBank(int32(baseCurrency.Precision))
		return nil
	}

	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, entry.CurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, entry.CurrencyCode)
		}
		return err
	}

	resolved, err := s.rateSvc.ResolveRate(ctx, entry.CurrencyCode, entry.OrganizationID, entry.WorkspaceID, entry.OccurredAt)
	if err != nil {
		return err
	}

	converted, err := valuation.ConvertAmount(entry.Amount, resolved.Rate, baseCurrency.Precision)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	entry.ExchangeRateUsed = resolved.Rate
	entry.RateScope = resolved.Scope
	entry.ExchangeRateID = resolved.ExchangeRateID
	entry.ConvertedAmount = converted
	return nil
}

// refreshFlag recomputes the missing-attachment warning from the current
// attachment count.
func (s *entryService) refreshFlag(ctx context.Context, entry *domain.Entry) error {
	if !entry.EntryType.RequiresAttachments() {
		entry.IsFlagged = false
		return nil
	}
	count, err := s.attachmentSvc.AttachmentCount(ctx, entry.EntryID)
	if err != nil {
		return err
	}
	entry.IsFlagged = count == 0
	return nil
}

func (s *entryService) revalueAfterResubmit(ctx context.Context, entryID, actorUserID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.Status != domain.EntryPending {
		return nil
	}
	if err := s.applyValuation(ctx, entry); err != nil {
		return err
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorUserID
	return s.entryRepo.UpdateEntryUserFields(ctx, *entry)
}

// isSubmitter reports whether the actor is the entry's original submitter.
func (s *entryService) isSubmitter(entry *domain.Entry, actor *domain.Actor) bool {
	if entry.SubmittedByTeamMemberID != nil {
		return actor.TeamMemberID == *entry.SubmittedByTeamMemberID
	}
	if entry.SubmittedByOrgMemberID != nil {
		return actor.MemberID == *entry.SubmittedByOrgMemberID
	}
	return false
}

// submitterUserID resolves the submitter reference back to a user.
func (s *entryService) submitterUserID(ctx context.Context, entry *domain.Entry) (string, error) {
	memberID := ""
	if entry.SubmittedByTeamMemberID != nil {
		teamMember, err := s.workspaceRepo.FindTeamMemberByID(ctx, *entry.SubmittedByTeamMemberID)
		if err != nil {
			return "", err
		}
		memberID = teamMember.MemberID
	} else if entry.SubmittedByOrgMemberID != nil {
		memberID = *entry.SubmittedByOrgMemberID
	} else {
		return "", apperrors.ErrNotFound
	}
	member, err := s.orgRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		return "", err
	}
	return member.UserID, nil
}

// transitionTemplate names the notification sent to the submitter for a
// review outcome. Resubmissions notify nobody.
func transitionTemplate(target domain.EntryStatus) string {
	switch target {
	case domain.EntryApproved:
		return workers.TemplateEntryApproved
	case domain.EntryRejected:
		return workers.TemplateEntryRejected
	case domain.EntryFlagged:
		return workers.TemplateEntryFlagged
	default:
		return ""
	}
}
