package domain

import "github.com/shopspring/decimal"

// Organization is the top-level tenant. Workspaces, teams and rates all hang
// off an organization.
type Organization struct {
	OrganizationID        string          `json:"organizationID"` // Primary Key (e.g., UUID)
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	OwnerMemberID         string          `json:"ownerMemberID"`         // FK -> OrganizationMember
	BaseCurrencyCode      string          `json:"baseCurrencyCode"`      // Every entry is valued into this currency
	DefaultRemittanceRate decimal.Decimal `json:"defaultRemittanceRate"` // Fallback % when neither team nor workspace define one
	AuditFields
}

// OrgRole defines the possible roles a member can have within an organization.
type OrgRole string

const (
	OrgRoleOwner  OrgRole = "OWNER"
	OrgRoleAdmin  OrgRole = "ADMIN"
	OrgRoleMember OrgRole = "MEMBER"
)

// OrganizationMember represents a user's membership in an organization.
type OrganizationMember struct {
	MemberID       string  `json:"memberID"` // Primary Key (e.g., UUID)
	OrganizationID string  `json:"organizationID"`
	UserID         string  `json:"userID"` // FK -> users.user_id
	UserName       string  `json:"userName"`
	Role           OrgRole `json:"role"`
	IsActive       bool    `json:"isActive"`
	AuditFields
}
