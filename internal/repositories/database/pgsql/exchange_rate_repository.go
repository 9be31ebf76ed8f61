package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/models"
	"github.com/orgfin/org_finance_app/internal/utils/mapping"
)

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate data.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const orgRateColumns = `exchange_rate_id, organization_id, currency_code, rate, effective_date, note, added_by, created_at, created_by, last_updated_at, last_updated_by`

const workspaceRateColumns = `exchange_rate_id, workspace_id, currency_code, rate, effective_date, note, added_by, is_approved, approved_by, created_at, created_by, last_updated_at, last_updated_by`

func scanOrgRate(row pgx.Row) (models.OrgExchangeRate, error) {
	var rate models.OrgExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.OrganizationID,
		&rate.CurrencyCode,
		&rate.Rate,
		&rate.EffectiveDate,
		&rate.Note,
		&rate.AddedBy,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	return rate, err
}

func scanWorkspaceRate(row pgx.Row) (models.WorkspaceExchangeRate, error) {
	var rate models.WorkspaceExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.WorkspaceID,
		&rate.CurrencyCode,
		&rate.Rate,
		&rate.EffectiveDate,
		&rate.Note,
		&rate.AddedBy,
		&rate.IsApproved,
		&rate.ApprovedBy,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	return rate, err
}

// FindLatestWorkspaceRate returns the approved workspace rate with the
// greatest effective date on or before the given date. Ties break to the
// most recently created row, so repeated lookups against unchanged data
// always pick the same record.
func (r *PgxExchangeRateRepository) FindLatestWorkspaceRate(ctx context.Context, workspaceID, currencyCode string, onOrBefore time.Time) (*domain.WorkspaceExchangeRate, error) {
	query := `
		SELECT ` + workspaceRateColumns + `
		FROM workspace_exchange_rates
		WHERE workspace_id = $1 AND currency_code = $2 AND effective_date <= $3 AND is_approved
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1;
	`
	modelRate, err := scanWorkspaceRate(r.Pool.QueryRow(ctx, query, workspaceID, currencyCode, onOrBefore))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace rate for %s: %w", currencyCode, err)
	}
	domainRate := mapping.ToDomainWorkspaceExchangeRate(modelRate)
	return &domainRate, nil
}

// FindLatestOrgRate is the organization-level counterpart of
// FindLatestWorkspaceRate. Organization rates need no approval.
func (r *PgxExchangeRateRepository) FindLatestOrgRate(ctx context.Context, organizationID, currencyCode string, onOrBefore time.Time) (*domain.OrgExchangeRate, error) {
	query := `
		SELECT ` + orgRateColumns + `
		FROM org_exchange_rates
		WHERE organization_id = $1 AND currency_code = $2 AND effective_date <= $3
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1;
	`
	modelRate, err := scanOrgRate(r.Pool.QueryRow(ctx, query, organizationID, currencyCode, onOrBefore))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization rate for %s: %w", currencyCode, err)
	}
	domainRate := mapping.ToDomainOrgExchangeRate(modelRate)
	return &domainRate, nil
}

// FindWorkspaceRateByID retrieves a workspace rate regardless of approval.
func (r *PgxExchangeRateRepository) FindWorkspaceRateByID(ctx context.Context, rateID string) (*domain.WorkspaceExchangeRate, error) {
	query := `SELECT ` + workspaceRateColumns + ` FROM workspace_exchange_rates WHERE exchange_rate_id = $1;`
	modelRate, err := scanWorkspaceRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace rate %s: %w", rateID, err)
	}
	domainRate := mapping.ToDomainWorkspaceExchangeRate(modelRate)
	return &domainRate, nil
}

// ListOrgRates lists organization-level rates, newest effective first.
func (r *PgxExchangeRateRepository) ListOrgRates(ctx context.Context, organizationID string) ([]domain.OrgExchangeRate, error) {
	query := `
		SELECT ` + orgRateColumns + `
		FROM org_exchange_rates
		WHERE organization_id = $1
		ORDER BY effective_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organization rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OrgExchangeRate, error) {
		return scanOrgRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect organization rates: %w", err)
	}
	return mapping.ToDomainOrgExchangeRateSlice(modelRates), nil
}

// ListWorkspaceRates lists workspace-level rates, newest effective first.
func (r *PgxExchangeRateRepository) ListWorkspaceRates(ctx context.Context, workspaceID string) ([]domain.WorkspaceExchangeRate, error) {
	query := `
		SELECT ` + workspaceRateColumns + `
		FROM workspace_exchange_rates
		WHERE workspace_id = $1
		ORDER BY effective_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspace rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.WorkspaceExchangeRate, error) {
		return scanWorkspaceRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect workspace rates: %w", err)
	}
	return mapping.ToDomainWorkspaceExchangeRateSlice(modelRates), nil
}

// SaveOrgRate persists a new organization-level rate.
func (r *PgxExchangeRateRepository) SaveOrgRate(ctx context.Context, rate domain.OrgExchangeRate) error {
	modelRate := mapping.ToModelOrgExchangeRate(rate)
	query := `
		INSERT INTO org_exchange_rates (` + orgRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.OrganizationID,
		modelRate.CurrencyCode,
		modelRate.Rate,
		modelRate.EffectiveDate,
		modelRate.Note,
		modelRate.AddedBy,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save organization rate: %w", err)
	}
	return nil
}

// SaveWorkspaceRate persists a new workspace-level rate, unapproved.
func (r *PgxExchangeRateRepository) SaveWorkspaceRate(ctx context.Context, rate domain.WorkspaceExchangeRate) error {
	modelRate := mapping.ToModelWorkspaceExchangeRate(rate)
	query := `
		INSERT INTO workspace_exchange_rates (` + workspaceRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.WorkspaceID,
		modelRate.CurrencyCode,
		modelRate.Rate,
		modelRate.EffectiveDate,
		modelRate.Note,
		modelRate.AddedBy,
		modelRate.IsApproved,
		modelRate.ApprovedBy,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save workspace rate: %w", err)
	}
	return nil
}

// ApproveWorkspaceRate marks a workspace rate approved. Approving an
// already-approved rate is a conflict, not a no-op, so a second approver
// learns the first one got there before them.
func (r *PgxExchangeRateRepository) ApproveWorkspaceRate(ctx context.Context, rateID, approverMemberID string, at time.Time) error {
	query := `
		UPDATE workspace_exchange_rates
		SET is_approved = TRUE, approved_by = $2, last_updated_at = $3, last_updated_by = $2
		WHERE exchange_rate_id = $1 AND NOT is_approved;
	`
	tag, err := r.Pool.Exec(ctx, query, rateID, approverMemberID, at)
	if err != nil {
		return fmt.Errorf("failed to approve workspace rate %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the rate does not exist or it is already approved.
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workspace_exchange_rates WHERE exchange_rate_id = $1)`, rateID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check workspace rate %s: %w", rateID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}
