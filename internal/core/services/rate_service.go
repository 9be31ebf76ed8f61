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

type rateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	workspaceSvc portssvc.WorkspaceSvcFacade
	auditSvc     portssvc.AuditRecorderSvc
}

// NewRateService creates the exchange rate service.
func NewRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	workspaceSvc portssvc.WorkspaceSvcFacade,
	auditSvc portssvc.AuditRecorderSvc,
) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		workspaceSvc: workspaceSvc,
		auditSvc:     auditSvc,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// ResolveRate returns the one rate that values a currency at a date. The
// approved workspace-level rate wins when the entry sits in a workspace;
// otherwise the organization-level rate applies. Both lookups pick the
// greatest effective date on or before occurredAt, so the result only
// changes when the rate data itself changes.
func (s *rateService) ResolveRate(ctx context.Context, currencyCode, organizationID string, workspaceID *string, occurredAt time.Time) (*domain.ResolvedRate, error) {
	if workspaceID != nil {
		wsRate, err := s.rateRepo.FindLatestWorkspaceRate(ctx, *workspaceID, currencyCode, occurredAt)
		if err == nil {
			return &domain.ResolvedRate{
				Rate:           wsRate.Rate,
				Scope:          domain.ScopeWorkspace,
				ExchangeRateID: wsRate.ExchangeRateID,
				EffectiveDate:  wsRate.EffectiveDate,
			}, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up workspace rate",
				slog.String("workspace_id", *workspaceID),
				slog.String("currency_code", currencyCode))
			return nil, err
		}
	}

	orgRate, err := s.rateRepo.FindLatestOrgRate(ctx, organizationID, currencyCode, occurredAt)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no rate for %s in organization %s effective on or before %s",
				apperrors.ErrRateNotFound, currencyCode, organizationID, occurredAt.Format(time.DateOnly))
		}
		s.LogError(ctx, err, "Failed to look up organization rate",
			slog.String("organization_id", organizationID),
			slog.String("currency_code", currencyCode))
		return nil, err
	}

	return &domain.ResolvedRate{
		Rate:           orgRate.Rate,
		Scope:          domain.ScopeOrganization,
		ExchangeRateID: orgRate.ExchangeRateID,
		EffectiveDate:  orgRate.EffectiveDate,
	}, nil
}

func (s *rateService) ListOrgRates(ctx context.Context, organizationID, requestingUserID string) ([]domain.OrgExchangeRate, error) {
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListOrgRates(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization rates",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if rates == nil {
		return []domain.OrgExchangeRate{}, nil
	}
	return rates, nil
}

func (s *rateService) ListWorkspaceRates(ctx context.Context, workspaceID, requestingUserID string) ([]domain.WorkspaceExchangeRate, error) {
	workspace, err := s.workspaceSvc.GetWorkspaceByID(ctx, workspaceID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	}); err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.ListWorkspaceRates(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace rates",
			slog.String("workspace_id", workspaceID))
		return nil, err
	}
	if rates == nil {
		return []domain.WorkspaceExchangeRate{}, nil
	}
	return rates, nil
}

func (s *rateService) CreateOrgRate(ctx context.Context, organizationID string, req dto.CreateOrgRateRequest, creatorUserID string) (*domain.OrgExchangeRate, error) {
	actor, err := s.workspaceSvc.Authorize(ctx, creatorUserID, domain.CapRateManage, domain.AuthScope{OrganizationID: organizationID})
	if err != nil {
		return nil, err
	}
	if err := s.validateRate(ctx, req.CurrencyCode, req.Rate); err != nil {
		return nil, err
	}

	now := time.Now()
	rate := domain.OrgExchangeRate{
		ExchangeRateID: uuid.NewString(),
		OrganizationID: organizationID,
		CurrencyCode:   req.CurrencyCode,
		Rate:           req.Rate,
		EffectiveDate:  req.EffectiveDate,
		Note:           req.Note,
		AddedBy:        actor.MemberID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveOrgRate(ctx, rate); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save organization rate",
				slog.String("organization_id", organizationID),
				slog.String("currency_code", req.CurrencyCode))
		}
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditRateCreated,
		ActorUserID: creatorUserID,
		TargetType:  domain.AuditTargetRate,
		TargetID:    rate.ExchangeRateID,
		Metadata: map[string]string{
			"scope":          string(domain.ScopeOrganization),
			"currency_code":  rate.CurrencyCode,
			"rate":           rate.Rate.String(),
			"effective_date": rate.EffectiveDate.Format(time.DateOnly),
		},
	})

	s.LogInfo(ctx, "Organization rate created",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("currency_code", rate.CurrencyCode))
	return &rate, nil
}

func (s *rateService) CreateWorkspaceRate(ctx context.Context, workspaceID string, req dto.CreateWorkspaceRateRequest, creatorUserID string) (*domain.WorkspaceExchangeRate, error) {
	workspace, err := s.workspaceSvc.GetWorkspaceByID(ctx, workspaceID, creatorUserID)
	if err != nil {
		return nil, err
	}
	actor, err := s.workspaceSvc.Authorize(ctx, creatorUserID, domain.CapRateManage, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.validateRate(ctx, req.CurrencyCode, req.Rate); err != nil {
		return nil, err
	}

	now := time.Now()
	rate := domain.WorkspaceExchangeRate{
		ExchangeRateID: uuid.NewString(),
		WorkspaceID:    workspaceID,
		CurrencyCode:   req.CurrencyCode,
		Rate:           req.Rate,
		EffectiveDate:  req.EffectiveDate,
		Note:           req.Note,
		AddedBy:        actor.MemberID,
		IsApproved:     false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveWorkspaceRate(ctx, rate); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save workspace rate",
				slog.String("workspace_id", workspaceID),
				slog.String("currency_code", req.CurrencyCode))
		}
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditRateCreated,
		ActorUserID: creatorUserID,
		TargetType:  domain.AuditTargetRate,
		TargetID:    rate.ExchangeRateID,
		Metadata: map[string]string{
			"scope":          string(domain.ScopeWorkspace),
			"currency_code":  rate.CurrencyCode,
			"rate":           rate.Rate.String(),
			"effective_date": rate.EffectiveDate.Format(time.DateOnly),
		},
	})

	s.LogInfo(ctx, "Workspace rate created, pending approval",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("workspace_id", workspaceID))
	return &rate, nil
}

// ApproveWorkspaceRate makes a workspace rate visible to the resolver. The
// rate's creator cannot approve their own submission.
func (s *rateService) ApproveWorkspaceRate(ctx context.Context, workspaceID, rateID, approverUserID string) (*domain.WorkspaceExchangeRate, error) {
	workspace, err := s.workspaceSvc.GetWorkspaceByID(ctx, workspaceID, approverUserID)
	if err != nil {
		return nil, err
	}
	actor, err := s.workspaceSvc.Authorize(ctx, approverUserID, domain.CapRateApprove, domain.AuthScope{
		OrganizationID: workspace.OrganizationID,
		WorkspaceID:    workspaceID,
	})
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindWorkspaceRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}
	if rate.WorkspaceID != workspaceID {
		return nil, apperrors.ErrNotFound
	}
	if rate.AddedBy == actor.MemberID {
		return nil, fmt.Errorf("%w: rate creator cannot approve their own rate", apperrors.ErrForbidden)
	}

	now := time.Now()
	if err := s.rateRepo.ApproveWorkspaceRate(ctx, rateID, actor.MemberID, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to approve workspace rate",
				slog.String("exchange_rate_id", rateID))
		}
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActionType:  domain.AuditRateApproved,
		ActorUserID: approverUserID,
		TargetType:  domain.AuditTargetRate,
		TargetID:    rateID,
		Metadata: map[string]string{
			"workspace_id":  workspaceID,
			"currency_code": rate.CurrencyCode,
		},
	})

	rate.IsApproved = true
	rate.ApprovedBy = &actor.MemberID
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = approverUserID

	s.LogInfo(ctx, "Workspace rate approved",
		slog.String("exchange_rate_id", rateID),
		slog.String("approver_member_id", actor.MemberID))
	return rate, nil
}

// validateRate checks the currency exists and the rate is positive.
func (s *rateService) validateRate(ctx context.Context, currencyCode string, rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, currencyCode)
		}
		return err
	}
	return nil
}
