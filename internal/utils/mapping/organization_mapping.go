package mapping

import (
	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/models"
)

// ToModelOrganization converts a domain Organization to a model Organization
func ToModelOrganization(d domain.Organization) models.Organization {
	return models.Organization{
		OrganizationID:        d.OrganizationID,
		Title:                 d.Title,
		Description:           d.Description,
		OwnerMemberID:         d.OwnerMemberID,
		BaseCurrencyCode:      d.BaseCurrencyCode,
		DefaultRemittanceRate: d.DefaultRemittanceRate,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganization converts a model Organization to a domain Organization
func ToDomainOrganization(m models.Organization) domain.Organization {
	return domain.Organization{
		OrganizationID:        m.OrganizationID,
		Title:                 m.Title,
		Description:           m.Description,
		OwnerMemberID:         m.OwnerMemberID,
		BaseCurrencyCode:      m.BaseCurrencyCode,
		DefaultRemittanceRate: m.DefaultRemittanceRate,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelOrganizationMember converts a domain OrganizationMember to its model
func ToModelOrganizationMember(d domain.OrganizationMember) models.OrganizationMember {
	return models.OrganizationMember{
		MemberID:       d.MemberID,
		OrganizationID: d.OrganizationID,
		UserID:         d.UserID,
		UserName:       d.UserName,
		Role:           models.OrgRole(d.Role),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrganizationMember converts a model OrganizationMember to its domain form
func ToDomainOrganizationMember(m models.OrganizationMember) domain.OrganizationMember {
	return domain.OrganizationMember{
		MemberID:       m.MemberID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		UserName:       m.UserName,
		Role:           domain.OrgRole(m.Role),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOrganizationSlice converts a slice of model Organizations
func ToDomainOrganizationSlice(ms []models.Organization) []domain.Organization {
	ds := make([]domain.Organization, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganization(m)
	}
	return ds
}

// ToDomainOrganizationMemberSlice converts a slice of model OrganizationMembers
func ToDomainOrganizationMemberSlice(ms []models.OrganizationMember) []domain.OrganizationMember {
	ds := make([]domain.OrganizationMember, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainOrganizationMember(m)
	}
	return ds
}
