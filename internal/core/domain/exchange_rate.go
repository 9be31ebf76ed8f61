package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateScope identifies which level of the hierarchy a rate was defined at.
type RateScope string

const (
	ScopeOrganization RateScope = "ORGANIZATION"
	ScopeWorkspace    RateScope = "WORKSPACE"
)

// OrgExchangeRate is an organization-level default conversion rate for a
// currency into the organization's base currency, effective from a date.
type OrgExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"` // FK -> Organization
	CurrencyCode   string          `json:"currencyCode"`   // FK -> Currency.currencyCode
	Rate           decimal.Decimal `json:"rate"`           // > 0
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Note           string          `json:"note"`
	AddedBy        string          `json:"addedBy"` // OrganizationMember reference
	AuditFields
}

// WorkspaceExchangeRate overrides the organization rate for a single
// workspace. It must be approved before the resolver will select it.
type WorkspaceExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	WorkspaceID    string          `json:"workspaceID"` // FK -> Workspace
	CurrencyCode   string          `json:"currencyCode"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	Note           string          `json:"note"`
	AddedBy        string          `json:"addedBy"`
	IsApproved     bool            `json:"isApproved"`
	ApprovedBy     *string         `json:"approvedBy,omitempty"`
	AuditFields
}

// ResolvedRate is the outcome of a rate lookup: the decimal actually applied
// to an entry plus the record it came from, kept for audit immutability.
type ResolvedRate struct {
	Rate           decimal.Decimal `json:"rate"`
	Scope          RateScope       `json:"scope"`
	ExchangeRateID string          `json:"exchangeRateID"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
}
