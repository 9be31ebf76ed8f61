package dto

import (
	"time"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrganizationRequest defines the structure for creating an organization.
type CreateOrganizationRequest struct {
	Title                 string           `json:"title" binding:"required"`
	Description           string           `json:"description"`
	BaseCurrencyCode      string           `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
	DefaultRemittanceRate *decimal.Decimal `json:"defaultRemittanceRate,omitempty"`
}

// AddMemberRequest adds a user to an organization with a role.
type AddMemberRequest struct {
	UserID string         `json:"userID" binding:"required"`
	Role   domain.OrgRole `json:"role" binding:"required"`
}

// OrganizationResponse defines the API shape of an organization.
type OrganizationResponse struct {
	OrganizationID        string          `json:"organizationID"`
	Title                 string          `json:"title"`
	Description           string          `json:"description,omitempty"`
	OwnerMemberID         string          `json:"ownerMemberID"`
	BaseCurrencyCode      string          `json:"baseCurrencyCode"`
	DefaultRemittanceRate decimal.Decimal `json:"defaultRemittanceRate"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// OrganizationMemberResponse defines the API shape of a membership.
type OrganizationMemberResponse struct {
	MemberID       string         `json:"memberID"`
	OrganizationID string         `json:"organizationID"`
	UserID         string         `json:"userID"`
	UserName       string         `json:"userName,omitempty"`
	Role           domain.OrgRole `json:"role"`
	IsActive       bool           `json:"isActive"`
	CreatedAt      time.Time      `json:"createdAt"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO
func ToOrganizationResponse(o *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:        o.OrganizationID,
		Title:                 o.Title,
		Description:           o.Description,
		OwnerMemberID:         o.OwnerMemberID,
		BaseCurrencyCode:      o.BaseCurrencyCode,
		DefaultRemittanceRate: o.DefaultRemittanceRate,
		CreatedAt:             o.CreatedAt,
	}
}

// ToOrganizationMemberResponse converts a domain.OrganizationMember to its DTO
func ToOrganizationMemberResponse(m *domain.OrganizationMember) OrganizationMemberResponse {
	return OrganizationMemberResponse{
		MemberID:       m.MemberID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		UserName:       m.UserName,
		Role:           m.Role,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
	}
}

// ToOrganizationResponses converts a slice of domain organizations to DTOs.
func ToOrganizationResponses(orgs []domain.Organization) []OrganizationResponse {
	responses := make([]OrganizationResponse, len(orgs))
	for i := range orgs {
		responses[i] = ToOrganizationResponse(&orgs[i])
	}
	return responses
}
