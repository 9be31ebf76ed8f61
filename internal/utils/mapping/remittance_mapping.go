package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelRemittance converts a domain Remittance to a model Remittance
func ToModelRemittance(d domain.Remittance) models.Remittance {
	return models.Remittance{
		RemittanceID:    d.RemittanceID,
		WorkspaceTeamID: d.WorkspaceTeamID,
		PeriodID:        d.PeriodID,
		DueAmount:       d.DueAmount,
		PaidAmount:      d.PaidAmount,
		Status:          models.RemittanceStatus(d.Status),
		DueDate:         d.DueDate,
		ConfirmedBy:     d.ConfirmedBy,
		ConfirmedAt:     d.ConfirmedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRemittance converts a model Remittance to a domain Remittance
func ToDomainRemittance(m models.Remittance) domain.Remittance {
	return domain.Remittance{
		RemittanceID:    m.RemittanceID,
		WorkspaceTeamID: m.WorkspaceTeamID,
		PeriodID:        m.PeriodID,
		DueAmount:       m.DueAmount,
		PaidAmount:      m.PaidAmount,
		Status:          domain.RemittanceStatus(m.Status),
		DueDate:         m.DueDate,
		ConfirmedBy:     m.ConfirmedBy,
		ConfirmedAt:     m.ConfirmedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainRemittanceSlice converts a slice of model Remittances
func ToDomainRemittanceSlice(ms []models.Remittance) []domain.Remittance {
	ds := make([]domain.Remittance, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRemittance(m)
	}
	return ds
}
