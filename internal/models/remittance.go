package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceStatus mirrors the remittance status enum in the database.
type RemittanceStatus string

// Remittance represents a row in the remittances table. One row per
// (workspace_team_id, period_id) pair, enforced by a unique constraint.
type Remittance struct {
	RemittanceID    string           `db:"remittance_id"`
	WorkspaceTeamID string           `db:"workspace_team_id"`
	PeriodID        string           `db:"period_id"`
	DueAmount       decimal.Decimal  `db:"due_amount"`
	PaidAmount      decimal.Decimal  `db:"paid_amount"`
	Status          RemittanceStatus `db:"status"`
	DueDate         *time.Time       `db:"due_date"`
	ConfirmedBy     *string          `db:"confirmed_by"`
	ConfirmedAt     *time.Time       `db:"confirmed_at"`
	AuditFields
}
