package domain_test

import (
	"testing"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRequiredCapability(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.EntryStatus
		to      domain.EntryStatus
		wantCap domain.Capability
		wantOK  bool
	}{
		{"pending to approved", domain.EntryPending, domain.EntryApproved, domain.CapEntryReview, true},
		{"pending to rejected", domain.EntryPending, domain.EntryRejected, domain.CapEntryReview, true},
		{"pending to flagged", domain.EntryPending, domain.EntryFlagged, domain.CapEntryReview, true},
		{"flagged back to pending", domain.EntryFlagged, domain.EntryPending, domain.CapEntryResubmit, true},
		{"rejected resubmission", domain.EntryRejected, domain.EntryPending, domain.CapEntryResubmit, true},
		{"approved is terminal (to rejected)", domain.EntryApproved, domain.EntryRejected, "", false},
		{"approved is terminal (to pending)", domain.EntryApproved, domain.EntryPending, "", false},
		{"rejected cannot jump to approved", domain.EntryRejected, domain.EntryApproved, "", false},
		{"flagged cannot jump to approved", domain.EntryFlagged, domain.EntryApproved, "", false},
		{"no self transition", domain.EntryPending, domain.EntryPending, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := domain.RequiredCapability(tt.from, tt.to)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCap, got)
			}
		})
	}
}

func TestValuationFrozen(t *testing.T) {
	assert.False(t, domain.Entry{Status: domain.EntryPending}.ValuationFrozen())
	assert.True(t, domain.Entry{Status: domain.EntryApproved}.ValuationFrozen())
	assert.True(t, domain.Entry{Status: domain.EntryRejected}.ValuationFrozen())
	assert.True(t, domain.Entry{Status: domain.EntryFlagged}.ValuationFrozen())
}

func TestEntryTypeClassification(t *testing.T) {
	assert.True(t, domain.EntryDisbursement.ContributesToRemittance())
	assert.True(t, domain.EntryRemittance.ContributesToRemittance())
	assert.False(t, domain.EntryIncome.ContributesToRemittance())
	assert.False(t, domain.EntryWorkspaceExp.ContributesToRemittance())

	assert.True(t, domain.EntryIncome.IsTeamScoped())
	assert.False(t, domain.EntryOrgExp.IsTeamScoped())

	assert.True(t, domain.EntryDisbursement.RequiresAttachments())
	assert.False(t, domain.EntryIncome.RequiresAttachments())
}
