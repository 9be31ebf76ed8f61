package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/models"
	"github.com/orgfin/org_finance_app/internal/utils/mapping"
	"github.com/orgfin/org_finance_app/internal/utils/pagination"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for entry data with
// transaction support.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

const entryColumns = `entry_id, organization_id, workspace_id, workspace_team_id, entry_type, amount, currency_code, description, occurred_at, exchange_rate_used, rate_scope, exchange_rate_id, converted_amount, status, is_flagged, status_note, submitted_by_team_member_id, submitted_by_org_member_id, last_status_modified_by, status_last_updated_at, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.Entry, error) {
	var e models.Entry
	err := row.Scan(
		&e.EntryID,
		&e.OrganizationID,
		&e.WorkspaceID,
		&e.WorkspaceTeamID,
		&e.EntryType,
		&e.Amount,
		&e.CurrencyCode,
		&e.Description,
		&e.OccurredAt,
		&e.ExchangeRateUsed,
		&e.RateScope,
		&e.ExchangeRateID,
		&e.ConvertedAmount,
		&e.Status,
		&e.IsFlagged,
		&e.StatusNote,
		&e.SubmittedByTeamMemberID,
		&e.SubmittedByOrgMemberID,
		&e.LastStatusModifiedBy,
		&e.StatusLastUpdatedAt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// FindEntryByID retrieves an entry by its ID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`
	modelEntry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	domainEntry := mapping.ToDomainEntry(modelEntry)
	return &domainEntry, nil
}

// ListEntries retrieves entries matching the filter, newest occurrence first,
// with (occurred_at, created_at) keyset pagination.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE organization_id = $1`
	args := []interface{}{filter.OrganizationID}

	if filter.WorkspaceID != nil {
		args = append(args, *filter.WorkspaceID)
		query += fmt.Sprintf(" AND workspace_id = $%d", len(args))
	}
	if filter.WorkspaceTeamID != nil {
		args = append(args, *filter.WorkspaceTeamID)
		query += fmt.Sprintf(" AND workspace_team_id = $%d", len(args))
	}
	if filter.EntryType != nil {
		args = append(args, string(*filter.EntryType))
		query += fmt.Sprintf(" AND entry_type = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		occurredAt, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.ErrValidation
		}
		args = append(args, occurredAt, createdAt)
		query += fmt.Sprintf(" AND (occurred_at, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY occurred_at DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Entry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to collect entries: %w", err)
	}

	var token *string
	if len(modelEntries) > limit {
		modelEntries = modelEntries[:limit]
		last := modelEntries[len(modelEntries)-1]
		encoded := pagination.EncodeToken(last.OccurredAt, last.CreatedAt)
		token = &encoded
	}
	return mapping.ToDomainEntrySlice(modelEntries), token, nil
}

// SumApprovedConverted sums converted amounts of approved entries of the given
// types within a workspace-team period. When tx is non-nil the aggregate runs
// on the transaction so it sees rows changed earlier in the same transaction.
func (r *PgxEntryRepository) SumApprovedConverted(ctx context.Context, tx pgx.Tx, workspaceTeamID, periodID string, types []domain.EntryType) (decimal.Decimal, error) {
	typeStrs := make([]string, len(types))
	for i, t := range types {
		typeStrs[i] = string(t)
	}
	query := `
		SELECT COALESCE(SUM(converted_amount), 0)
		FROM entries
		WHERE workspace_team_id = $1
			AND to_char(occurred_at, 'YYYY-MM') = $2
			AND status = 'APPROVED'
			AND entry_type = ANY($3);
	`
	row := r.Pool.QueryRow(ctx, query, workspaceTeamID, periodID, typeStrs)
	if tx != nil {
		row = tx.QueryRow(ctx, query, workspaceTeamID, periodID, typeStrs)
	}
	var sum decimal.Decimal
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved entries for workspace team %s period %s: %w", workspaceTeamID, periodID, err)
	}
	return sum, nil
}

// SaveEntry persists a new entry.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	modelEntry := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.OrganizationID,
		modelEntry.WorkspaceID,
		modelEntry.WorkspaceTeamID,
		modelEntry.EntryType,
		modelEntry.Amount,
		modelEntry.CurrencyCode,
		modelEntry.Description,
		modelEntry.OccurredAt,
		modelEntry.ExchangeRateUsed,
		modelEntry.RateScope,
		modelEntry.ExchangeRateID,
		modelEntry.ConvertedAmount,
		modelEntry.Status,
		modelEntry.IsFlagged,
		modelEntry.StatusNote,
		modelEntry.SubmittedByTeamMemberID,
		modelEntry.SubmittedByOrgMemberID,
		modelEntry.LastStatusModifiedBy,
		modelEntry.StatusLastUpdatedAt,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save entry %s: %w", modelEntry.EntryID, err)
	}
	return nil
}

// UpdateEntryUserFields updates submitter-editable fields and the valuation.
// Only pending entries are updated; the status guard keeps frozen valuations
// immutable even under concurrent review.
func (r *PgxEntryRepository) UpdateEntryUserFields(ctx context.Context, entry domain.Entry) error {
	modelEntry := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries
		SET entry_type = $2, amount = $3, currency_code = $4, description = $5, occurred_at = $6,
			exchange_rate_used = $7, rate_scope = $8, exchange_rate_id = $9, converted_amount = $10,
			is_flagged = $11, last_updated_at = $12, last_updated_by = $13
		WHERE entry_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.EntryType,
		modelEntry.Amount,
		modelEntry.CurrencyCode,
		modelEntry.Description,
		modelEntry.OccurredAt,
		modelEntry.ExchangeRateUsed,
		modelEntry.RateScope,
		modelEntry.ExchangeRateID,
		modelEntry.ConvertedAmount,
		modelEntry.IsFlagged,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", modelEntry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// FindEntryByIDForUpdate locks the entry row inside tx and returns it.
func (r *PgxEntryRepository) FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1 FOR UPDATE;`
	modelEntry, err := scanEntry(tx.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}
	domainEntry := mapping.ToDomainEntry(modelEntry)
	return &domainEntry, nil
}

// UpdateEntryStatus performs a compare-and-set status transition inside tx.
func (r *PgxEntryRepository) UpdateEntryStatus(ctx context.Context, tx pgx.Tx, entryID string, from, to domain.EntryStatus, statusNote string, isFlagged bool, modifiedBy string, at time.Time) error {
	query := `
		UPDATE entries
		SET status = $3, status_note = $4, is_flagged = $5,
			last_status_modified_by = $6, status_last_updated_at = $7,
			last_updated_at = $7, last_updated_by = $6
		WHERE entry_id = $1 AND status = $2;
	`
	tag, err := tx.Exec(ctx, query, entryID, string(from), string(to), statusNote, isFlagged, modifiedBy, at)
	if err != nil {
		return fmt.Errorf("failed to update status of entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Row gone or status moved under us.
		return apperrors.ErrConflict
	}
	return nil
}

// DeleteEntry removes a pending entry.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM entries WHERE entry_id = $1 AND status = 'PENDING';`
	tag, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
