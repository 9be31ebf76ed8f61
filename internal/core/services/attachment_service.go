package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
)

type attachmentService struct {
	BaseService
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	entryRepo      portsrepo.EntryReader
	workspaceSvc   portssvc.AuthorizerSvc
}

// NewAttachmentService creates the attachment metadata service.
func NewAttachmentService(
	attachmentRepo portsrepo.AttachmentRepositoryFacade,
	entryRepo portsrepo.EntryReader,
	workspaceSvc portssvc.AuthorizerSvc,
) portssvc.AttachmentSvcFacade {
	return &attachmentService{
		attachmentRepo: attachmentRepo,
		entryRepo:      entryRepo,
		workspaceSvc:   workspaceSvc,
	}
}

var _ portssvc.AttachmentSvcFacade = (*attachmentService)(nil)

func (s *attachmentService) AttachmentCount(ctx context.Context, entryID string) (int, error) {
	return s.attachmentRepo.CountAttachmentsByEntry(ctx, entryID)
}

func (s *attachmentService) RegisterAttachment(ctx context.Context, attachment domain.Attachment, actorUserID string) (*domain.Attachment, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, attachment.EntryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaceSvc.Authorize(ctx, actorUserID, domain.CapEntrySubmit, entryScope(entry)); err != nil {
		return nil, err
	}
	if attachment.FileName == "" || attachment.StorageKey == "" {
		return nil, fmt.Errorf("%w: attachment requires a file name and storage key", apperrors.ErrValidation)
	}

	now := time.Now()
	attachment.AttachmentID = uuid.NewString()
	attachment.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}

	if err := s.attachmentRepo.SaveAttachment(ctx, attachment); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save attachment",
				slog.String("entry_id", attachment.EntryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Attachment registered",
		slog.String("attachment_id", attachment.AttachmentID),
		slog.String("entry_id", attachment.EntryID))
	return &attachment, nil
}

func (s *attachmentService) ListAttachments(ctx context.Context, entryID, requestingUserID string) ([]domain.Attachment, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, entryScope(entry)); err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.ListAttachmentsByEntry(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list attachments",
			slog.String("entry_id", entryID))
		return nil, err
	}
	if attachments == nil {
		return []domain.Attachment{}, nil
	}
	return attachments, nil
}

// entryScope builds the authorization scope an entry lives in.
func entryScope(entry *domain.Entry) domain.AuthScope {
	scope := domain.AuthScope{OrganizationID: entry.OrganizationID}
	if entry.WorkspaceID != nil {
		scope.WorkspaceID = *entry.WorkspaceID
	}
	if entry.WorkspaceTeamID != nil {
		scope.WorkspaceTeamID = *entry.WorkspaceTeamID
	}
	return scope
}
