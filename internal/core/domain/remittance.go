package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RemittanceStatus is the payment state of a workspace-team obligation.
type RemittanceStatus string

const (
	RemittancePending       RemittanceStatus = "PENDING"
	RemittancePartiallyPaid RemittanceStatus = "PARTIALLY_PAID"
	RemittancePaid          RemittanceStatus = "PAID"
	RemittanceOverdue       RemittanceStatus = "OVERDUE"
	RemittanceCanceled      RemittanceStatus = "CANCELED"
)

// Remittance is the computed amount a workspace-team owes its workspace for
// a period, derived from approved disbursement/remittance entries and the
// effective remittance rate. DueAmount is never set directly by callers.
type Remittance struct {
	RemittanceID    string           `json:"remittanceID"` // Primary Key (e.g., UUID)
	WorkspaceTeamID string           `json:"workspaceTeamID"`
	PeriodID        string           `json:"periodID"` // e.g. "2024-03" or the workspace window key
	DueAmount       decimal.Decimal  `json:"dueAmount"`
	PaidAmount      decimal.Decimal  `json:"paidAmount"`
	Status          RemittanceStatus `json:"status"`
	DueDate         *time.Time       `json:"dueDate,omitempty"` // Workspace end date
	ConfirmedBy     *string          `json:"confirmedBy,omitempty"`
	ConfirmedAt     *time.Time       `json:"confirmedAt,omitempty"`
	AuditFields
}

// DeriveRemittanceStatus computes the status as a pure function of amounts
// and the current date. Canceled is sticky: it overrides everything until an
// explicit reopen, so callers pass the current status to preserve it.
func DeriveRemittanceStatus(current RemittanceStatus, dueAmount, paidAmount decimal.Decimal, dueDate *time.Time, now time.Time) RemittanceStatus {
	if current == RemittanceCanceled {
		return RemittanceCanceled
	}
	switch {
	case paidAmount.GreaterThanOrEqual(dueAmount) && dueAmount.GreaterThan(decimal.Zero):
		// Overpayment still settles the obligation.
		return RemittancePaid
	case paidAmount.GreaterThan(decimal.Zero) && paidAmount.LessThan(dueAmount):
		if dueDate != nil && now.After(*dueDate) {
			return RemittanceOverdue
		}
		return RemittancePartiallyPaid
	case paidAmount.LessThan(dueAmount) && dueDate != nil && now.After(*dueDate):
		return RemittanceOverdue
	default:
		return RemittancePending
	}
}
