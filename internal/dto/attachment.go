package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// RegisterAttachmentRequest registers metadata for an uploaded supporting
// document. The file itself lives in object storage under StorageKey.
type RegisterAttachmentRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes" binding:"min=0"`
	StorageKey  string `json:"storageKey" binding:"required"`
}

// AttachmentResponse defines the API shape of an attachment.
type AttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	EntryID      string    `json:"entryID"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType,omitempty"`
	SizeBytes    int64     `json:"sizeBytes"`
	StorageKey   string    `json:"storageKey"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToAttachmentResponse converts a domain.Attachment to its DTO.
func ToAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		EntryID:      a.EntryID,
		FileName:     a.FileName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		StorageKey:   a.StorageKey,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAttachmentResponses converts a slice of domain attachments to DTOs.
func ToAttachmentResponses(attachments []domain.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = ToAttachmentResponse(&attachments[i])
	}
	return responses
}
