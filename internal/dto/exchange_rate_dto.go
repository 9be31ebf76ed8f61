package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrgRateRequest defines the structure for creating an organization-level rate.
type CreateOrgRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required"`
	Note          string          `json:"note"`
}

// CreateWorkspaceRateRequest defines the structure for creating a workspace-level rate.
type CreateWorkspaceRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,len=3,uppercase"`
	Rate          decimal.Decimal `json:"rate" binding:"required"`
	EffectiveDate time.Time       `json:"effectiveDate" binding:"required"`
	Note          string          `json:"note"`
}

// OrgRateResponse defines the API shape of an organization-level rate.
type OrgRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	OrganizationID string          `json:"organizationID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Note           string          `json:"note,omitempty"`
	AddedBy        string          `json:"addedBy"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// WorkspaceRateResponse defines the API shape of a workspace-level rate.
type WorkspaceRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	WorkspaceID    string          `json:"workspaceID"`
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Note           string          `json:"note,omitempty"`
	AddedBy        string          `json:"addedBy"`
	IsApproved     bool            `json:"isApproved"`
	ApprovedBy     *string         `json:"approvedBy,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToOrgRateResponse converts a domain.OrgExchangeRate to its DTO.
func ToOrgRateResponse(r *domain.OrgExchangeRate) OrgRateResponse {
	return OrgRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		OrganizationID: r.OrganizationID,
		CurrencyCode:   r.CurrencyCode,
		Rate:           r.Rate,
		EffectiveDate:  r.EffectiveDate,
		Note:           r.Note,
		AddedBy:        r.AddedBy,
		CreatedAt:      r.CreatedAt,
	}
}

// ToWorkspaceRateResponse converts a domain.WorkspaceExchangeRate to its DTO.
func ToWorkspaceRateResponse(r *domain.WorkspaceExchangeRate) WorkspaceRateResponse {
	return WorkspaceRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		WorkspaceID:    r.WorkspaceID,
		CurrencyCode:   r.CurrencyCode,
		Rate:           r.Rate,
		EffectiveDate:  r.EffectiveDate,
		Note:           r.Note,
		AddedBy:        r.AddedBy,
		IsApproved:     r.IsApproved,
		ApprovedBy:     r.ApprovedBy,
		CreatedAt:      r.CreatedAt,
	}
}

// ToOrgRateResponses converts a slice of org rates to DTOs.
func ToOrgRateResponses(rates []domain.OrgExchangeRate) []OrgRateResponse {
	responses := make([]OrgRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToOrgRateResponse(&rates[i])
	}
	return responses
}

// ToWorkspaceRateResponses converts a slice of workspace rates to DTOs.
func ToWorkspaceRateResponses(rates []domain.WorkspaceExchangeRate) []WorkspaceRateResponse {
	responses := make([]WorkspaceRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToWorkspaceRateResponse(&rates[i])
	}
	return responses
}
