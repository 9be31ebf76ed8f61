package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the structure for recording a payment against
// a remittance. AllowOverpayment is the explicit override for payments that
// exceed the due amount.
type RecordPaymentRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	AllowOverpayment bool            `json:"allowOverpayment"`
}

// RemittanceResponse defines the API shape of a remittance.
type RemittanceResponse struct {
	RemittanceID    string                  `json:"remittanceID"`
	WorkspaceTeamID string                  `json:"workspaceTeamID"`
	PeriodID        string                  `json:"periodID"`
	DueAmount       decimal.Decimal         `json:"dueAmount"`
	PaidAmount      decimal.Decimal         `json:"paidAmount"`
	Status          domain.RemittanceStatus `json:"status"`
	DueDate         *time.Time              `json:"dueDate,omitempty"`
	ConfirmedBy     *string                 `json:"confirmedBy,omitempty"`
	ConfirmedAt     *time.Time              `json:"confirmedAt,omitempty"`
	LastUpdatedAt   time.Time               `json:"lastUpdatedAt"`
}

// ToRemittanceResponse converts a domain.Remittance to RemittanceResponse DTO
func ToRemittanceResponse(r *domain.Remittance) RemittanceResponse {
	return RemittanceResponse{
		RemittanceID:    r.RemittanceID,
		WorkspaceTeamID: r.WorkspaceTeamID,
		PeriodID:        r.PeriodID,
		DueAmount:       r.DueAmount,
		PaidAmount:      r.PaidAmount,
		Status:          r.Status,
		DueDate:         r.DueDate,
		ConfirmedBy:     r.ConfirmedBy,
		ConfirmedAt:     r.ConfirmedAt,
		LastUpdatedAt:   r.LastUpdatedAt,
	}
}

// ToRemittanceResponses converts a slice of domain remittances to DTOs.
func ToRemittanceResponses(remittances []domain.Remittance) []RemittanceResponse {
	responses := make([]RemittanceResponse, len(remittances))
	for i := range remittances {
		responses[i] = ToRemittanceResponse(&remittances[i])
	}
	return responses
}
