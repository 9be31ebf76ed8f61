package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RemittanceApplierSvc receives approved entry contributions from the entry
// state machine, inside the approval transaction.
type RemittanceApplierSvc interface {
	// ApplyApprovedEntryTx adds an approved entry's contribution to the
	// workspace-team remittance for the period, locking the remittance row.
	ApplyApprovedEntryTx(ctx context.Context, tx pgx.Tx, entry domain.Entry, actorUserID string) error
}

// RemittanceReaderSvc defines read operations for remittances.
type RemittanceReaderSvc interface {
	GetRemittanceByID(ctx context.Context, remittanceID, requestingUserID string) (*domain.Remittance, error)
	ListRemittancesByWorkspace(ctx context.Context, workspaceID, requestingUserID string) ([]domain.Remittance, error)
}

// RemittanceWriterSvc defines the remittance lifecycle operations.
type RemittanceWriterSvc interface {
	// RecomputeRemittance re-derives the due amount from the approved entry
	// set. Idempotent; must equal the incrementally maintained value.
	RecomputeRemittance(ctx context.Context, workspaceTeamID, periodID, actorUserID string) (*domain.Remittance, error)

	// RecordPayment applies a payment. Fails with apperrors.ErrOverpayment
	// when the payment would exceed the due amount, unless allowOverpayment
	// is set by an actor holding the payment capability.
	RecordPayment(ctx context.Context, remittanceID string, amount decimal.Decimal, allowOverpayment bool, actorUserID string) (*domain.Remittance, error)

	// ConfirmRemittance marks a fully paid remittance as confirmed.
	ConfirmRemittance(ctx context.Context, remittanceID, actorUserID string) (*domain.Remittance, error)

	// CancelRemittance / ReopenRemittance toggle the administrative canceled
	// override.
	CancelRemittance(ctx context.Context, remittanceID, actorUserID string) (*domain.Remittance, error)
	ReopenRemittance(ctx context.Context, remittanceID, actorUserID string) (*domain.Remittance, error)
}

// RemittanceSvcFacade combines all remittance-related service interfaces
type RemittanceSvcFacade interface {
	RemittanceApplierSvc
	RemittanceReaderSvc
	RemittanceWriterSvc
}
