package services

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// EntryReaderSvc defines read operations for entries.
type EntryReaderSvc interface {
	GetEntryByID(ctx context.Context, entryID, requestingUserID string) (*domain.Entry, error)
	ListEntries(ctx context.Context, organizationID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines the entry lifecycle operations.
type EntryWriterSvc interface {
	// CreateEntry validates, resolves the exchange rate, computes the
	// converted amount and persists a new pending entry.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest, submitterUserID string) (*domain.Entry, error)

	// UpdateEntry edits submitter fields while the entry is pending,
	// re-resolving the rate when currency or occurrence date change.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateEntryRequest, actorUserID string) (*domain.Entry, error)

	// TransitionEntry moves an entry through the review state machine. The
	// status check-and-set, valuation freeze, remittance contribution and
	// side-effect enqueue commit atomically; a disallowed transition fails
	// with apperrors.ErrForbiddenTransition and changes nothing.
	TransitionEntry(ctx context.Context, entryID string, target domain.EntryStatus, note string, actorUserID string) (*domain.Entry, error)

	// DeleteEntry removes a pending, never-reviewed entry.
	DeleteEntry(ctx context.Context, entryID, actorUserID string) error
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
}
