package repositories

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// AttachmentReader defines read operations for entry attachments.
type AttachmentReader interface {
	// CountAttachmentsByEntry returns how many supporting documents an entry
	// carries. The flag rule only consumes the count.
	CountAttachmentsByEntry(ctx context.Context, entryID string) (int, error)

	ListAttachmentsByEntry(ctx context.Context, entryID string) ([]domain.Attachment, error)
}

// AttachmentWriter defines write operations for entry attachments.
type AttachmentWriter interface {
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

// AttachmentRepositoryFacade combines all attachment-related repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
