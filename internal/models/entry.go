package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType mirrors the entry type enum in the database.
type EntryType string

// EntryStatus mirrors the entry status enum in the database.
type EntryStatus string

// RateScope mirrors the rate scope enum in the database.
type RateScope string

// Entry represents a row in the entries table.
type Entry struct {
	EntryID         string          `db:"entry_id"`
	OrganizationID  string          `db:"organization_id"`
	WorkspaceID     *string         `db:"workspace_id"`
	WorkspaceTeamID *string         `db:"workspace_team_id"`
	EntryType       EntryType       `db:"entry_type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Description     string          `db:"description"`
	OccurredAt      time.Time       `db:"occurred_at"`

	ExchangeRateUsed decimal.Decimal `db:"exchange_rate_used"`
	RateScope        RateScope       `db:"rate_scope"`
	ExchangeRateID   string          `db:"exchange_rate_id"`
	ConvertedAmount  decimal.Decimal `db:"converted_amount"`

	Status     EntryStatus `db:"status"`
	IsFlagged  bool        `db:"is_flagged"`
	StatusNote string      `db:"status_note"`

	SubmittedByTeamMemberID *string `db:"submitted_by_team_member_id"`
	SubmittedByOrgMemberID  *string `db:"submitted_by_org_member_id"`

	LastStatusModifiedBy *string    `db:"last_status_modified_by"`
	StatusLastUpdatedAt  *time.Time `db:"status_last_updated_at"`
	AuditFields
}
