package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesFilter narrows an entry listing.
type ListEntriesFilter struct {
	OrganizationID  string
	WorkspaceID     *string
	WorkspaceTeamID *string
	EntryType       *domain.EntryType
	Status          *domain.EntryStatus
}

// EntryReader defines read operations for entry data.
type EntryReader interface {
	// FindEntryByID retrieves an entry by its ID.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries retrieves entries matching the filter with token pagination.
	ListEntries(ctx context.Context, filter ListEntriesFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)

	// SumApprovedConverted sums converted amounts of approved entries of the
	// given types for a workspace-team/period. Runs inside tx when non-nil so
	// a full recompute sees the same snapshot as the row it updates.
	SumApprovedConverted(ctx context.Context, tx pgx.Tx, workspaceTeamID, periodID string, types []domain.EntryType) (decimal.Decimal, error)
}

// EntryWriter defines write operations for entry data.
type EntryWriter interface {
	// SaveEntry persists a new entry.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// UpdateEntryUserFields updates submitter-editable fields plus the
	// valuation while the entry is pending.
	UpdateEntryUserFields(ctx context.Context, entry domain.Entry) error

	// FindEntryByIDForUpdate locks the entry row inside tx and returns it.
	FindEntryByIDForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (*domain.Entry, error)

	// UpdateEntryStatus performs a compare-and-set of the entry status inside
	// tx. The update only applies when the current status still equals from;
	// otherwise apperrors.ErrConflict is returned and nothing changes.
	UpdateEntryStatus(ctx context.Context, tx pgx.Tx, entryID string, from, to domain.EntryStatus, statusNote string, isFlagged bool, modifiedBy string, at time.Time) error

	// DeleteEntry removes a pending entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
