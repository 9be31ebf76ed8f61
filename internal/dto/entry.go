package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the structure for submitting a new entry.
type CreateEntryRequest struct {
	OrganizationID  string           `json:"organizationID" binding:"required"`
	WorkspaceID     *string          `json:"workspaceID,omitempty"`
	WorkspaceTeamID *string          `json:"workspaceTeamID,omitempty"`
	EntryType       domain.EntryType `json:"entryType" binding:"required,entrytype"`
	Amount          decimal.Decimal  `json:"amount" binding:"required"`
	CurrencyCode    string           `json:"currencyCode" binding:"required,len=3,uppercase"`
	Description     string           `json:"description" binding:"required"`
	OccurredAt      time.Time        `json:"occurredAt" binding:"required"`
}

// UpdateEntryRequest defines submitter-editable fields while an entry is
// pending. Nil fields are left unchanged.
type UpdateEntryRequest struct {
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CurrencyCode *string          `json:"currencyCode,omitempty" binding:"omitempty,len=3,uppercase"`
	Description  *string          `json:"description,omitempty"`
	OccurredAt   *time.Time       `json:"occurredAt,omitempty"`
}

// TransitionEntryRequest defines the structure for a review decision.
type TransitionEntryRequest struct {
	TargetStatus domain.EntryStatus `json:"targetStatus" binding:"required,entrystatus"`
	Note         string             `json:"note"`
}

// ListEntriesParams holds parameters for listing entries.
type ListEntriesParams struct {
	WorkspaceID     *string             `form:"workspaceID"`
	WorkspaceTeamID *string             `form:"workspaceTeamID"`
	EntryType       *domain.EntryType   `form:"entryType"`
	Status          *domain.EntryStatus `form:"status"`
	Limit           int                 `form:"limit"`
	NextToken       *string             `form:"nextToken"`
}

// EntryResponse defines the API shape of an entry.
type EntryResponse struct {
	EntryID          string             `json:"entryID"`
	OrganizationID   string             `json:"organizationID"`
	WorkspaceID      *string            `json:"workspaceID,omitempty"`
	WorkspaceTeamID  *string            `json:"workspaceTeamID,omitempty"`
	EntryType        domain.EntryType   `json:"entryType"`
	Amount           decimal.Decimal    `json:"amount"`
	CurrencyCode     string             `json:"currencyCode"`
	Description      string             `json:"description"`
	OccurredAt       time.Time          `json:"occurredAt"`
	ExchangeRateUsed decimal.Decimal    `json:"exchangeRateUsed"`
	RateScope        domain.RateScope   `json:"rateScope"`
	ConvertedAmount  decimal.Decimal    `json:"convertedAmount"`
	Status           domain.EntryStatus `json:"status"`
	IsFlagged        bool               `json:"isFlagged"`
	StatusNote       string             `json:"statusNote,omitempty"`
	SubmittedBy      string             `json:"submittedBy"`
	CreatedAt        time.Time          `json:"createdAt"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
}

// ListEntriesResponse wraps a page of entries with the pagination token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.Entry to EntryResponse DTO
func ToEntryResponse(e *domain.Entry) EntryResponse {
	submittedBy := ""
	if e.SubmittedByTeamMemberID != nil {
		submittedBy = *e.SubmittedByTeamMemberID
	} else if e.SubmittedByOrgMemberID != nil {
		submittedBy = *e.SubmittedByOrgMemberID
	}
	return EntryResponse{
		EntryID:          e.EntryID,
		OrganizationID:   e.OrganizationID,
		WorkspaceID:      e.WorkspaceID,
		WorkspaceTeamID:  e.WorkspaceTeamID,
		EntryType:        e.EntryType,
		Amount:           e.Amount,
		CurrencyCode:     e.CurrencyCode,
		Description:      e.Description,
		OccurredAt:       e.OccurredAt,
		ExchangeRateUsed: e.ExchangeRateUsed,
		RateScope:        e.RateScope,
		ConvertedAmount:  e.ConvertedAmount,
		Status:           e.Status,
		IsFlagged:        e.IsFlagged,
		StatusNote:       e.StatusNote,
		SubmittedBy:      submittedBy,
		CreatedAt:        e.CreatedAt,
		LastUpdatedAt:    e.LastUpdatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries to DTOs.
func ToEntryResponses(entries []domain.Entry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}
