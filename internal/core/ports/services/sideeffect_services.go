package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// AuditRecorderSvc is the fire-and-forget audit sink. RecordTx enqueues the
// event on the caller's transaction so the enqueue commits atomically with
// the mutation; the actual row is written by a background worker with
// at-least-once semantics.
type AuditRecorderSvc interface {
	RecordTx(ctx context.Context, tx pgx.Tx, event domain.AuditEvent) error

	// Record enqueues outside a transaction, for events with no primary
	// mutation (e.g. denied permission checks). Errors are logged, never
	// propagated into the caller's path.
	Record(ctx context.Context, event domain.AuditEvent)
}

// NotifierSvc is the fire-and-forget notification sink.
type NotifierSvc interface {
	NotifyTx(ctx context.Context, tx pgx.Tx, recipientUserID, template string, templateCtx map[string]string) error
}

// AttachmentCounterSvc exposes the attachment store as an opaque count. The
// flagged rule only needs to know whether an entry has supporting documents.
type AttachmentCounterSvc interface {
	AttachmentCount(ctx context.Context, entryID string) (int, error)
}

// AttachmentSvcFacade manages supporting-document metadata for entries.
type AttachmentSvcFacade interface {
	AttachmentCounterSvc

	RegisterAttachment(ctx context.Context, attachment domain.Attachment, actorUserID string) (*domain.Attachment, error)
	ListAttachments(ctx context.Context, entryID, requestingUserID string) ([]domain.Attachment, error)
}
