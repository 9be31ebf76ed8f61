package repositories

import (
	"context"
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindLatestWorkspaceRate returns the approved workspace-level rate for
	// the currency with the greatest effective date on or before the given
	// date. Ties on effective date break to the most recently created row.
	// Returns apperrors.ErrNotFound when no approved rate qualifies.
	FindLatestWorkspaceRate(ctx context.Context, workspaceID, currencyCode string, onOrBefore time.Time) (*domain.WorkspaceExchangeRate, error)

	// FindLatestOrgRate is the organization-level counterpart of
	// FindLatestWorkspaceRate. Org rates need no approval.
	FindLatestOrgRate(ctx context.Context, organizationID, currencyCode string, onOrBefore time.Time) (*domain.OrgExchangeRate, error)

	// FindWorkspaceRateByID retrieves a workspace rate by its ID.
	FindWorkspaceRateByID(ctx context.Context, rateID string) (*domain.WorkspaceExchangeRate, error)

	// ListOrgRates lists organization-level rates, newest effective first.
	ListOrgRates(ctx context.Context, organizationID string) ([]domain.OrgExchangeRate, error)

	// ListWorkspaceRates lists workspace-level rates, newest effective first.
	ListWorkspaceRates(ctx context.Context, workspaceID string) ([]domain.WorkspaceExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveOrgRate persists a new organization-level rate. Returns
	// apperrors.ErrDuplicate when (org, currency, effectiveDate) exists.
	SaveOrgRate(ctx context.Context, rate domain.OrgExchangeRate) error

	// SaveWorkspaceRate persists a new workspace-level rate (unapproved).
	SaveWorkspaceRate(ctx context.Context, rate domain.WorkspaceExchangeRate) error

	// ApproveWorkspaceRate marks a workspace rate approved. Returns
	// apperrors.ErrConflict when the rate is already approved.
	ApproveWorkspaceRate(ctx context.Context, rateID, approverMemberID string, at time.Time) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
