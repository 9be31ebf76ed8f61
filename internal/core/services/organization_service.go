package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
)

// defaultRemittanceRate applies when an organization is created without one.
var defaultRemittanceRate = decimal.NewFromInt(90)

type organizationService struct {
	BaseService
	orgRepo      portsrepo.OrganizationRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	workspaceSvc portssvc.AuthorizerSvc
}

// NewOrganizationService creates the organization service.
func NewOrganizationService(
	orgRepo portsrepo.OrganizationRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	workspaceSvc portssvc.AuthorizerSvc,
) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo:      orgRepo,
		currencyRepo: currencyRepo,
		workspaceSvc: workspaceSvc,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID, requestingUserID string) (*domain.Organization, error) {
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization",
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) ListMembers(ctx context.Context, organizationID, requestingUserID string) ([]domain.OrganizationMember, error) {
	if _, err := s.workspaceSvc.Authorize(ctx, requestingUserID, domain.CapEntryRead, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}
	members, err := s.orgRepo.ListMembers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization members",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if members == nil {
		return []domain.OrganizationMember{}, nil
	}
	return members, nil
}

// CreateOrganization creates the organization and its owner membership in
// one shot. The creator becomes the owner.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, req.BaseCurrencyCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown base currency %s", apperrors.ErrValidation, req.BaseCurrencyCode)
		}
		return nil, err
	}

	rate := defaultRemittanceRate
	if req.DefaultRemittanceRate != nil {
		if err := validateRatePercent(*req.DefaultRemittanceRate); err != nil {
			return nil, err
		}
		rate = *req.DefaultRemittanceRate
	}

	now := time.Now()
	ownerMember := domain.OrganizationMember{
		MemberID: uuid.NewString(),
		UserID:   creatorUserID,
		Role:     domain.OrgRoleOwner,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	org := domain.Organization{
		OrganizationID:        uuid.NewString(),
		Title:                 req.Title,
		Description:           req.Description,
		OwnerMemberID:         ownerMember.MemberID,
		BaseCurrencyCode:      req.BaseCurrencyCode,
		DefaultRemittanceRate: rate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	ownerMember.OrganizationID = org.OrganizationID

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization",
			slog.String("organization_id", org.OrganizationID))
		return nil, err
	}
	if err := s.orgRepo.SaveMember(ctx, ownerMember); err != nil {
		s.LogError(ctx, err, "Failed to save owner membership",
			slog.String("organization_id", org.OrganizationID),
			slog.String("member_id", ownerMember.MemberID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created",
		slog.String("organization_id", org.OrganizationID),
		slog.String("owner_member_id", ownerMember.MemberID))
	return &org, nil
}

func (s *organizationService) AddMember(ctx context.Context, organizationID string, req dto.AddMemberRequest, actorUserID string) (*domain.OrganizationMember, error) {
	if _, err := s.workspaceSvc.Authorize(ctx, actorUserID, domain.CapOrgManage, domain.AuthScope{OrganizationID: organizationID}); err != nil {
		return nil, err
	}
	if req.Role != domain.OrgRoleAdmin && req.Role != domain.OrgRoleMember {
		return nil, fmt.Errorf("%w: role must be ADMIN or MEMBER", apperrors.ErrValidation)
	}

	now := time.Now()
	member := domain.OrganizationMember{
		MemberID:       uuid.NewString(),
		OrganizationID: organizationID,
		UserID:         req.UserID,
		Role:           req.Role,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to add organization member",
				slog.String("organization_id", organizationID),
				slog.String("user_id", req.UserID))
		}
		return nil, err
	}
	return &member, nil
}
