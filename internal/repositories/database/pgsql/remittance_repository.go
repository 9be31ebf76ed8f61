package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/models"
	"github.com/orgfin/org_finance_app/internal/utils/mapping"
)

type PgxRemittanceRepository struct {
	BaseRepository
}

// newPgxRemittanceRepository creates a new repository for remittance data with
// transaction support.
func newPgxRemittanceRepository(pool *pgxpool.Pool) portsrepo.RemittanceRepositoryWithTx {
	return &PgxRemittanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RemittanceRepositoryWithTx = (*PgxRemittanceRepository)(nil)

const remittanceColumns = `remittance_id, workspace_team_id, period_id, due_amount, paid_amount, status, due_date, confirmed_by, confirmed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanRemittance(row pgx.Row) (models.Remittance, error) {
	var rem models.Remittance
	err := row.Scan(
		&rem.RemittanceID,
		&rem.WorkspaceTeamID,
		&rem.PeriodID,
		&rem.DueAmount,
		&rem.PaidAmount,
		&rem.Status,
		&rem.DueDate,
		&rem.ConfirmedBy,
		&rem.ConfirmedAt,
		&rem.CreatedAt,
		&rem.CreatedBy,
		&rem.LastUpdatedAt,
		&rem.LastUpdatedBy,
	)
	return rem, err
}

// FindRemittanceByID retrieves a remittance by its ID.
func (r *PgxRemittanceRepository) FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE remittance_id = $1;`
	modelRem, err := scanRemittance(r.Pool.QueryRow(ctx, query, remittanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find remittance %s: %w", remittanceID, err)
	}
	domainRem := mapping.ToDomainRemittance(modelRem)
	return &domainRem, nil
}

// ListRemittancesByWorkspace lists remittances for all teams of a workspace.
func (r *PgxRemittanceRepository) ListRemittancesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Remittance, error) {
	query := `
		SELECT r.remittance_id, r.workspace_team_id, r.period_id, r.due_amount, r.paid_amount, r.status,
			r.due_date, r.confirmed_by, r.confirmed_at, r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
		FROM remittances r
		JOIN workspace_teams wt ON wt.workspace_team_id = r.workspace_team_id
		WHERE wt.workspace_id = $1
		ORDER BY r.period_id DESC, r.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query remittances for workspace %s: %w", workspaceID, err)
	}
	defer rows.Close()

	modelRems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Remittance, error) {
		return scanRemittance(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect remittances: %w", err)
	}
	return mapping.ToDomainRemittanceSlice(modelRems), nil
}

// GetOrCreateForUpdate finds the remittance row for (workspaceTeam, period),
// creating a zero-amount pending one when absent, then locks it inside tx.
// The insert-then-lock pair makes the row the serialization point for all
// due amount updates of the pair.
func (r *PgxRemittanceRepository) GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, workspaceTeamID, periodID string, creatorUserID string) (*domain.Remittance, error) {
	insertQuery := `
		INSERT INTO remittances (remittance_id, workspace_team_id, period_id, due_amount, paid_amount, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 0, 0, $4, now(), $5, now(), $5)
		ON CONFLICT (workspace_team_id, period_id) DO NOTHING;
	`
	_, err := tx.Exec(ctx, insertQuery, uuid.NewString(), workspaceTeamID, periodID, string(domain.RemittancePending), creatorUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure remittance for workspace team %s period %s: %w", workspaceTeamID, periodID, err)
	}

	lockQuery := `SELECT ` + remittanceColumns + ` FROM remittances WHERE workspace_team_id = $1 AND period_id = $2 FOR UPDATE;`
	modelRem, err := scanRemittance(tx.QueryRow(ctx, lockQuery, workspaceTeamID, periodID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock remittance for workspace team %s period %s: %w", workspaceTeamID, periodID, err)
	}
	domainRem := mapping.ToDomainRemittance(modelRem)
	return &domainRem, nil
}

// FindRemittanceByIDForUpdate locks a remittance row inside tx.
func (r *PgxRemittanceRepository) FindRemittanceByIDForUpdate(ctx context.Context, tx pgx.Tx, remittanceID string) (*domain.Remittance, error) {
	query := `SELECT ` + remittanceColumns + ` FROM remittances WHERE remittance_id = $1 FOR UPDATE;`
	modelRem, err := scanRemittance(tx.QueryRow(ctx, query, remittanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock remittance %s: %w", remittanceID, err)
	}
	domainRem := mapping.ToDomainRemittance(modelRem)
	return &domainRem, nil
}

// UpdateRemittance persists amounts, status and confirmation inside tx.
func (r *PgxRemittanceRepository) UpdateRemittance(ctx context.Context, tx pgx.Tx, remittance domain.Remittance) error {
	modelRem := mapping.ToModelRemittance(remittance)
	query := `
		UPDATE remittances
		SET due_amount = $2, paid_amount = $3, status = $4, due_date = $5,
			confirmed_by = $6, confirmed_at = $7, last_updated_at = $8, last_updated_by = $9
		WHERE remittance_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelRem.RemittanceID,
		modelRem.DueAmount,
		modelRem.PaidAmount,
		modelRem.Status,
		modelRem.DueDate,
		modelRem.ConfirmedBy,
		modelRem.ConfirmedAt,
		modelRem.LastUpdatedAt,
		modelRem.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update remittance %s: %w", modelRem.RemittanceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
