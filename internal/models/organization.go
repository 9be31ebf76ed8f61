package models

import "github.com/shopspring/decimal"

// OrgRole mirrors the organization role enum in the database.
type OrgRole string

// Organization represents a row in the organizations table.
type Organization struct {
	OrganizationID        string          `db:"organization_id"`
	Title                 string          `db:"title"`
	Description           string          `db:"description"`
	OwnerMemberID         string          `db:"owner_member_id"`
	BaseCurrencyCode      string          `db:"base_currency_code"`
	DefaultRemittanceRate decimal.Decimal `db:"default_remittance_rate"`
	AuditFields
}

// OrganizationMember represents a row in the organization_members table.
// UserName is populated from a join with users and never written back.
type OrganizationMember struct {
	MemberID       string  `db:"member_id"`
	OrganizationID string  `db:"organization_id"`
	UserID         string  `db:"user_id"`
	UserName       string  `db:"user_name"`
	Role           OrgRole `db:"role"`
	IsActive       bool    `db:"is_active"`
	AuditFields
}
