package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// RemittanceReader defines read operations for remittance data.
type RemittanceReader interface {
	// FindRemittanceByID retrieves a remittance by its ID.
	FindRemittanceByID(ctx context.Context, remittanceID string) (*domain.Remittance, error)

	// ListRemittancesByWorkspace lists remittances for all teams in a workspace.
	ListRemittancesByWorkspace(ctx context.Context, workspaceID string) ([]domain.Remittance, error)
}

// RemittanceWriter defines write operations for remittance data.
type RemittanceWriter interface {
	// GetOrCreateForUpdate finds the remittance row for (workspaceTeam,
	// period), creating a zero-amount pending one when absent, and locks it
	// inside tx. This is the per-workspace-team serialization point for due
	// amount updates.
	GetOrCreateForUpdate(ctx context.Context, tx pgx.Tx, workspaceTeamID, periodID string, creatorUserID string) (*domain.Remittance, error)

	// FindRemittanceByIDForUpdate locks a remittance row inside tx.
	FindRemittanceByIDForUpdate(ctx context.Context, tx pgx.Tx, remittanceID string) (*domain.Remittance, error)

	// UpdateRemittance persists amounts/status/confirmation inside tx.
	UpdateRemittance(ctx context.Context, tx pgx.Tx, remittance domain.Remittance) error
}

// RemittanceRepositoryFacade combines all remittance-related repository interfaces
type RemittanceRepositoryFacade interface {
	RemittanceReader
	RemittanceWriter
}

// RemittanceRepositoryWithTx extends RemittanceRepositoryFacade with transaction capabilities
type RemittanceRepositoryWithTx interface {
	RemittanceRepositoryFacade
	TransactionManager
}
