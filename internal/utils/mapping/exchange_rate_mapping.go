package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelOrgExchangeRate converts a domain OrgExchangeRate to its model
func ToModelOrgExchangeRate(d domain.OrgExchangeRate) models.OrgExchangeRate {
	return models.OrgExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		OrganizationID: d.OrganizationID,
		CurrencyCode:   d.CurrencyCode,
		Rate:           d.Rate,
		EffectiveDate:  d.EffectiveDate,
		Note:           d.Note,
		AddedBy:        d.AddedBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrgExchangeRate converts a model OrgExchangeRate to its domain form
func ToDomainOrgExchangeRate(m models.OrgExchangeRate) domain.OrgExchangeRate {
	return domain.OrgExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		OrganizationID: m.OrganizationID,
		CurrencyCode:   m.CurrencyCode,
		Rate:           m.Rate,
		EffectiveDate:  m.EffectiveDate,
		Note:           m.Note,
		AddedBy:        m.AddedBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelWorkspaceExchangeRate converts a domain WorkspaceExchangeRate to its model
func ToModelWorkspaceExchangeRate(d domain.WorkspaceExchangeRate) models.WorkspaceExchangeRate {
	return models.WorkspaceExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		WorkspaceID:    d.WorkspaceID,
		CurrencyCode:   d.CurrencyCode,
		Rate:           d.Rate,
		EffectiveDate:  d.EffectiveDate,
		Note:           d.Note,
		AddedBy:        d.AddedBy,
		IsApproved:     d.IsApproved,
		ApprovedBy:     d.ApprovedBy,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWorkspaceExchangeRate converts a model WorkspaceExchangeRate to its domain form
func ToDomainWorkspaceExchangeRate(m models.WorkspaceExchangeRate) domain.WorkspaceExchangeRate {
	return domain.WorkspaceExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		WorkspaceID:    m.WorkspaceID,
		CurrencyCode:   m.CurrencyCode,
		Rate:           m.Rate,
		EffectiveDate:  m.EffectiveDate,
		Note:           m.Note,
		AddedBy:        m.AddedBy,
		IsApproved:     m.IsApproved,
		ApprovedBy:     m.ApprovedBy,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrgExchangeRateSlice converts a slice of model org rates
func ToDomainOrgExchangeRateSlice(ms []models.OrgExchangeRate) []domain.OrgExchangeRate {
	ds := make([]domain.OrgExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrgExchangeRate(m)
	}
	return ds
}

// ToDomainWorkspaceExchangeRateSlice converts a slice of model workspace rates
func ToDomainWorkspaceExchangeRateSlice(ms []models.WorkspaceExchangeRate) []domain.WorkspaceExchangeRate {
	ds := make([]domain.WorkspaceExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkspaceExchangeRate(m)
	}
	return ds
}
