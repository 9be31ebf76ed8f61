package services

import (
	"context"
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// RateResolverSvc is the exchange rate lookup used by entry valuation.
type RateResolverSvc interface {
	// ResolveRate returns the single applicable rate for a currency at a
	// date: the latest approved workspace-level rate when workspaceID is
	// non-nil and one exists, otherwise the latest organization-level rate.
	// Fails with apperrors.ErrRateNotFound when neither scope has a rate
	// effective on or before occurredAt. Deterministic for unchanged rate
	// data: the result is persisted into entries and must be reproducible.
	ResolveRate(ctx context.Context, currencyCode, organizationID string, workspaceID *string, occurredAt time.Time) (*domain.ResolvedRate, error)
}

// RateReaderSvc defines read operations for exchange rates.
type RateReaderSvc interface {
	ListOrgRates(ctx context.Context, organizationID, requestingUserID string) ([]domain.OrgExchangeRate, error)
	ListWorkspaceRates(ctx context.Context, workspaceID, requestingUserID string) ([]domain.WorkspaceExchangeRate, error)
}

// RateWriterSvc defines write operations for exchange rates.
type RateWriterSvc interface {
	CreateOrgRate(ctx context.Context, organizationID string, req dto.CreateOrgRateRequest, creatorUserID string) (*domain.OrgExchangeRate, error)
	CreateWorkspaceRate(ctx context.Context, workspaceID string, req dto.CreateWorkspaceRateRequest, creatorUserID string) (*domain.WorkspaceExchangeRate, error)

	// ApproveWorkspaceRate makes a workspace rate selectable by the resolver.
	ApproveWorkspaceRate(ctx context.Context, workspaceID, rateID, approverUserID string) (*domain.WorkspaceExchangeRate, error)
}

// RateSvcFacade combines all exchange rate-related service interfaces
type RateSvcFacade interface {
	RateResolverSvc
	RateReaderSvc
	RateWriterSvc
}
