package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/models"
	"github.com/orgfin/org_finance_app/internal/utils/mapping"
)

type PgxAttachmentRepository struct {
	BaseRepository
}

// newPgxAttachmentRepository creates a new repository for entry attachments.
func newPgxAttachmentRepository(pool *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

const attachmentColumns = `attachment_id, entry_id, file_name, content_type, size_bytes, storage_key, created_at, created_by, last_updated_at, last_updated_by`

func scanAttachment(row pgx.Row) (models.Attachment, error) {
	var a models.Attachment
	err := row.Scan(
		&a.AttachmentID,
		&a.EntryID,
		&a.FileName,
		&a.ContentType,
		&a.SizeBytes,
		&a.StorageKey,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	return a, err
}

// CountAttachmentsByEntry returns how many attachments an entry carries.
func (r *PgxAttachmentRepository) CountAttachmentsByEntry(ctx context.Context, entryID string) (int, error) {
	query := `SELECT COUNT(*) FROM entry_attachments WHERE entry_id = $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, entryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attachments for entry %s: %w", entryID, err)
	}
	return count, nil
}

// ListAttachmentsByEntry lists an entry's attachments, oldest first.
func (r *PgxAttachmentRepository) ListAttachmentsByEntry(ctx context.Context, entryID string) ([]domain.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM entry_attachments
		WHERE entry_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelAttachments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Attachment, error) {
		return scanAttachment(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect attachments: %w", err)
	}
	return mapping.ToDomainAttachmentSlice(modelAttachments), nil
}

// SaveAttachment persists a new attachment.
func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	modelAttachment := mapping.ToModelAttachment(attachment)
	query := `
		INSERT INTO entry_attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAttachment.AttachmentID,
		modelAttachment.EntryID,
		modelAttachment.FileName,
		modelAttachment.ContentType,
		modelAttachment.SizeBytes,
		modelAttachment.StorageKey,
		modelAttachment.CreatedAt,
		modelAttachment.CreatedBy,
		modelAttachment.LastUpdatedAt,
		modelAttachment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save attachment %s: %w", modelAttachment.AttachmentID, err)
	}
	return nil
}

// DeleteAttachment removes an attachment.
func (r *PgxAttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	query := `DELETE FROM entry_attachments WHERE attachment_id = $1;`
	tag, err := r.Pool.Exec(ctx, query, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", attachmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
