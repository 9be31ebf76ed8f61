package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrgExchangeRate is an organization-level rate row.
type OrgExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	OrganizationID string          `db:"organization_id"`
	CurrencyCode   string          `db:"currency_code"`
	Rate           decimal.Decimal `db:"rate"`
	EffectiveDate  time.Time       `db:"effective_date"`
	Note           string          `db:"note"`
	AddedBy        string          `db:"added_by"`
	AuditFields
}

// WorkspaceExchangeRate is a workspace-level rate row. Unapproved rows are
// invisible to the resolver.
type WorkspaceExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	WorkspaceID    string          `db:"workspace_id"`
	CurrencyCode   string          `db:"currency_code"`
	Rate           decimal.Decimal `db:"rate"`
	EffectiveDate  time.Time       `db:"effective_date"`
	Note           string          `db:"note"`
	AddedBy        string          `db:"added_by"`
	IsApproved     bool            `db:"is_approved"`
	ApprovedBy     *string         `db:"approved_by"`
	AuditFields
}
