package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelAttachment converts a domain Attachment to a model Attachment
func ToModelAttachment(d domain.Attachment) models.Attachment {
	return models.Attachment{
		AttachmentID: d.AttachmentID,
		EntryID:      d.EntryID,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		StorageKey:   d.StorageKey,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAttachment converts a model Attachment to a domain Attachment
func ToDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID: m.AttachmentID,
		EntryID:      m.EntryID,
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		StorageKey:   m.StorageKey,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAttachmentSlice converts a slice of model Attachments
func ToDomainAttachmentSlice(ms []models.Attachment) []domain.Attachment {
	ds := make([]domain.Attachment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttachment(m)
	}
	return ds
}
