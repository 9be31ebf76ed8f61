package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		WorkspaceID:     d.WorkspaceID,
		WorkspaceTeamID: d.WorkspaceTeamID,
		EntryType:       models.EntryType(d.EntryType),
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		Description:     d.Description,
		OccurredAt:      d.OccurredAt,

		ExchangeRateUsed: d.ExchangeRateUsed,
		RateScope:        models.RateScope(d.RateScope),
		ExchangeRateID:   d.ExchangeRateID,
		ConvertedAmount:  d.ConvertedAmount,

		Status:     models.EntryStatus(d.Status),
		IsFlagged:  d.IsFlagged,
		StatusNote: d.StatusNote,

		SubmittedByTeamMemberID: d.SubmittedByTeamMemberID,
		SubmittedByOrgMemberID:  d.SubmittedByOrgMemberID,

		LastStatusModifiedBy: d.LastStatusModifiedBy,
		StatusLastUpdatedAt:  d.StatusLastUpdatedAt,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		WorkspaceID:     m.WorkspaceID,
		WorkspaceTeamID: m.WorkspaceTeamID,
		EntryType:       domain.EntryType(m.EntryType),
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Description:     m.Description,
		OccurredAt:      m.OccurredAt,

		ExchangeRateUsed: m.ExchangeRateUsed,
		RateScope:        domain.RateScope(m.RateScope),
		ExchangeRateID:   m.ExchangeRateID,
		ConvertedAmount:  m.ConvertedAmount,

		Status:     domain.EntryStatus(m.Status),
		IsFlagged:  m.IsFlagged,
		StatusNote: m.StatusNote,

		SubmittedByTeamMemberID: m.SubmittedByTeamMemberID,
		SubmittedByOrgMemberID:  m.SubmittedByOrgMemberID,

		LastStatusModifiedBy: m.LastStatusModifiedBy,
		StatusLastUpdatedAt:  m.StatusLastUpdatedAt,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainEntrySlice converts a slice of model Entries to domain Entries
func ToDomainEntrySlice(ms []models.Entry) []domain.Entry {
	ds := make([]domain.Entry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntry(m)
	}
	return ds
}
