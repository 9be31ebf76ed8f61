package services

import (
	"context"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// OrganizationReaderSvc defines read operations for organizations.
type OrganizationReaderSvc interface {
	GetOrganizationByID(ctx context.Context, organizationID, requestingUserID string) (*domain.Organization, error)
	ListMembers(ctx context.Context, organizationID, requestingUserID string) ([]domain.OrganizationMember, error)
}

// OrganizationWriterSvc defines write operations for organizations.
type OrganizationWriterSvc interface {
	// CreateOrganization creates the org and makes the creator its owner.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)
	AddMember(ctx context.Context, organizationID string, req dto.AddMemberRequest, actorUserID string) (*domain.OrganizationMember, error)
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
}
