package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/models"
	"github.com/orgfin/org_finance_app/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit events.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// SaveAuditEvent persists an audit event. A replayed event ID is a no-op so
// the background worker can retry inserts safely.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	modelEvent := mapping.ToModelAuditEvent(event)
	query := `
		INSERT INTO audit_events (audit_id, action_type, actor_user_id, target_type, target_id, metadata, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (audit_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEvent.AuditID,
		modelEvent.ActionType,
		modelEvent.ActorUserID,
		modelEvent.TargetType,
		modelEvent.TargetID,
		modelEvent.Metadata,
		modelEvent.CreatedAt,
		modelEvent.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save audit event %s: %w", modelEvent.AuditID, err)
	}
	return nil
}

// PurgeExpired deletes events of the given action type created before the
// cutoff and reports how many rows were removed.
func (r *PgxAuditRepository) PurgeExpired(ctx context.Context, actionType domain.AuditActionType, before time.Time) (int64, error) {
	query := `DELETE FROM audit_events WHERE action_type = $1 AND created_at < $2;`
	tag, err := r.Pool.Exec(ctx, query, string(actionType), before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit events of type %s: %w", actionType, err)
	}
	return tag.RowsAffected(), nil
}

// ListAuditEventsByTarget lists the newest events for a target.
func (r *PgxAuditRepository) ListAuditEventsByTarget(ctx context.Context, targetType domain.AuditTargetType, targetID string, limit int) ([]domain.AuditEvent, error) {
	query := `
		SELECT audit_id, action_type, actor_user_id, target_type, target_id, metadata, created_at, expires_at
		FROM audit_events
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(targetType), targetID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	defer rows.Close()

	modelEvents, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditEvent, error) {
		var e models.AuditEvent
		err := row.Scan(
			&e.AuditID,
			&e.ActionType,
			&e.ActorUserID,
			&e.TargetType,
			&e.TargetID,
			&e.Metadata,
			&e.CreatedAt,
			&e.ExpiresAt,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect audit events: %w", err)
	}
	return mapping.ToDomainAuditEventSlice(modelEvents), nil
}
