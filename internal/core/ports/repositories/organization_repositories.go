package repositories

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
)

// OrganizationReader defines read operations for organizations and members.
type OrganizationReader interface {
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	FindMemberByID(ctx context.Context, memberID string) (*domain.OrganizationMember, error)
	// FindMembership resolves a user's membership in an organization.
	FindMembership(ctx context.Context, userID, organizationID string) (*domain.OrganizationMember, error)
	ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error)
}

// OrganizationWriter defines write operations for organizations and members.
type OrganizationWriter interface {
	SaveOrganization(ctx context.Context, org domain.Organization) error
	UpdateOrganization(ctx context.Context, org domain.Organization) error
	SaveMember(ctx context.Context, member domain.OrganizationMember) error
	UpdateMember(ctx context.Context, member domain.OrganizationMember) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
