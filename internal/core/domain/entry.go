package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies a financial entry.
type EntryType string

const (
	EntryIncome       EntryType = "INCOME"
	EntryDisbursement EntryType = "DISBURSEMENT"
	EntryRemittance   EntryType = "REMITTANCE"
	EntryWorkspaceExp EntryType = "WORKSPACE_EXPENSE"
	EntryOrgExp       EntryType = "ORG_EXPENSE"
)

// IsTeamScoped reports whether entries of this type must be submitted against
// a workspace-team.
func (t EntryType) IsTeamScoped() bool {
	switch t {
	case EntryIncome, EntryDisbursement, EntryRemittance:
		return true
	}
	return false
}

// RequiresAttachments reports whether entries of this type are flagged when
// submitted without supporting documents.
func (t EntryType) RequiresAttachments() bool {
	switch t {
	case EntryDisbursement, EntryRemittance, EntryWorkspaceExp, EntryOrgExp:
		return true
	}
	return false
}

// ContributesToRemittance reports whether an approval of this entry type
// feeds the workspace-team remittance obligation.
func (t EntryType) ContributesToRemittance() bool {
	return t == EntryDisbursement || t == EntryRemittance
}

// EntryStatus is the primary review state of an entry.
type EntryStatus string

const (
	EntryPending  EntryStatus = "PENDING"
	EntryApproved EntryStatus = "APPROVED"
	EntryRejected EntryStatus = "REJECTED"
	EntryFlagged  EntryStatus = "FLAGGED"
)

// Entry represents a single financial transaction record moving through
// review. While pending, the valuation (ExchangeRateUsed, ConvertedAmount)
// follows amount/currency/date edits; once the entry leaves pending the
// valuation is frozen and never recomputed.
type Entry struct {
	EntryID         string          `json:"entryID"` // Primary Key (e.g., UUID)
	OrganizationID  string          `json:"organizationID"`
	WorkspaceID     *string         `json:"workspaceID,omitempty"`
	WorkspaceTeamID *string         `json:"workspaceTeamID,omitempty"`
	EntryType       EntryType       `json:"entryType"`
	Amount          decimal.Decimal `json:"amount"` // Positive, in CurrencyCode units
	CurrencyCode    string          `json:"currencyCode"`
	Description     string          `json:"description"`
	OccurredAt      time.Time       `json:"occurredAt"` // Date, within the workspace window

	ExchangeRateUsed decimal.Decimal `json:"exchangeRateUsed"` // Frozen once status leaves PENDING
	RateScope        RateScope       `json:"rateScope"`
	ExchangeRateID   string          `json:"exchangeRateID"` // The rate record the valuation came from
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`

	Status     EntryStatus `json:"status"`
	IsFlagged  bool        `json:"isFlagged"` // Missing-attachment warning, orthogonal to Status
	StatusNote string      `json:"statusNote"`

	// Exactly one of the submitter references is set.
	SubmittedByTeamMemberID *string `json:"submittedByTeamMemberID,omitempty"`
	SubmittedByOrgMemberID  *string `json:"submittedByOrgMemberID,omitempty"`

	LastStatusModifiedBy *string    `json:"lastStatusModifiedBy,omitempty"`
	StatusLastUpdatedAt  *time.Time `json:"statusLastUpdatedAt,omitempty"`
	AuditFields
}

// transition pairs a target status with the capability required to reach it.
type transition struct {
	To       EntryStatus
	Requires Capability
}

// entryTransitions is the full transition table. APPROVED is terminal:
// reversal goes through an out-of-band correction path, never this table.
var entryTransitions = map[EntryStatus][]transition{
	EntryPending: {
		{To: EntryApproved, Requires: CapEntryReview},
		{To: EntryRejected, Requires: CapEntryReview},
		{To: EntryFlagged, Requires: CapEntryReview},
	},
	EntryFlagged: {
		{To: EntryPending, Requires: CapEntryResubmit},
	},
	EntryRejected: {
		{To: EntryPending, Requires: CapEntryResubmit},
	},
}

// RequiredCapability returns the capability needed to move an entry from one
// status to another, or false when the transition is not legal at all.
func RequiredCapability(from, to EntryStatus) (Capability, bool) {
	for _, t := range entryTransitions[from] {
		if t.To == to {
			return t.Requires, true
		}
	}
	return "", false
}

// CanTransition reports whether the state machine permits from -> to,
// ignoring the actor.
func CanTransition(from, to EntryStatus) bool {
	_, ok := RequiredCapability(from, to)
	return ok
}

// ValuationFrozen reports whether the entry's exchange rate and converted
// amount may no longer change.
func (e Entry) ValuationFrozen() bool {
	return e.Status != EntryPending
}
