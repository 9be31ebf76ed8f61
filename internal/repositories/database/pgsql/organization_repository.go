package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orgfin/org_finance_app/internal/apperrors"
	"github.com/orgfin/org_finance_app/internal/core/domain"
	portsrepo "github.com/orgfin/org_finance_app/internal/core/ports/repositories"
	"github.com/orgfin/org_finance_app/internal/models"
	"github.com/orgfin/org_finance_app/internal/utils/mapping"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, title, description, owner_member_id, base_currency_code, default_remittance_rate, created_at, created_by, last_updated_at, last_updated_by`

// memberColumns joins users for the display name.
const memberColumns = `m.member_id, m.organization_id, m.user_id, u.name, m.role, m.is_active, m.created_at, m.created_by, m.last_updated_at, m.last_updated_by`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var org models.Organization
	err := row.Scan(
		&org.OrganizationID,
		&org.Title,
		&org.Description,
		&org.OwnerMemberID,
		&org.BaseCurrencyCode,
		&org.DefaultRemittanceRate,
		&org.CreatedAt,
		&org.CreatedBy,
		&org.LastUpdatedAt,
		&org.LastUpdatedBy,
	)
	return org, err
}

func scanMember(row pgx.Row) (models.OrganizationMember, error) {
	var member models.OrganizationMember
	err := row.Scan(
		&member.MemberID,
		&member.OrganizationID,
		&member.UserID,
		&member.UserName,
		&member.Role,
		&member.IsActive,
		&member.CreatedAt,
		&member.CreatedBy,
		&member.LastUpdatedAt,
		&member.LastUpdatedBy,
	)
	return member, err
}

// FindOrganizationByID retrieves an organization by ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE organization_id = $1;`
	modelOrg, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	domainOrg := mapping.ToDomainOrganization(modelOrg)
	return &domainOrg, nil
}

// FindMemberByID retrieves a membership row by its ID.
func (r *PgxOrganizationRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM organization_members m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.member_id = $1;
	`
	modelMember, err := scanMember(r.Pool.QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	domainMember := mapping.ToDomainOrganizationMember(modelMember)
	return &domainMember, nil
}

// FindMembership resolves a user's membership in an organization.
func (r *PgxOrganizationRepository) FindMembership(ctx context.Context, userID, organizationID string) (*domain.OrganizationMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM organization_members m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.user_id = $1 AND m.organization_id = $2;
	`
	modelMember, err := scanMember(r.Pool.QueryRow(ctx, query, userID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	domainMember := mapping.ToDomainOrganizationMember(modelMember)
	return &domainMember, nil
}

// ListMembers lists all members of an organization.
func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.OrganizationMember, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM organization_members m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.organization_id = $1
		ORDER BY m.created_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	modelMembers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.OrganizationMember, error) {
		return scanMember(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect members: %w", err)
	}
	return mapping.ToDomainOrganizationMemberSlice(modelMembers), nil
}

// SaveOrganization persists a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	modelOrg := mapping.ToModelOrganization(org)
	query := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelOrg.OrganizationID,
		modelOrg.Title,
		modelOrg.Description,
		modelOrg.OwnerMemberID,
		modelOrg.BaseCurrencyCode,
		modelOrg.DefaultRemittanceRate,
		modelOrg.CreatedAt,
		modelOrg.CreatedBy,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save organization %s: %w", modelOrg.OrganizationID, err)
	}
	return nil
}

// UpdateOrganization updates mutable organization fields.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	modelOrg := mapping.ToModelOrganization(org)
	query := `
		UPDATE organizations
		SET title = $2, description = $3, owner_member_id = $4, default_remittance_rate = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelOrg.OrganizationID,
		modelOrg.Title,
		modelOrg.Description,
		modelOrg.OwnerMemberID,
		modelOrg.DefaultRemittanceRate,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update organization %s: %w", modelOrg.OrganizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveMember persists a new organization membership.
func (r *PgxOrganizationRepository) SaveMember(ctx context.Context, member domain.OrganizationMember) error {
	modelMember := mapping.ToModelOrganizationMember(member)
	query := `
		INSERT INTO organization_members (member_id, organization_id, user_id, role, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelMember.MemberID,
		modelMember.OrganizationID,
		modelMember.UserID,
		modelMember.Role,
		modelMember.IsActive,
		modelMember.CreatedAt,
		modelMember.CreatedBy,
		modelMember.LastUpdatedAt,
		modelMember.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save member %s: %w", modelMember.MemberID, err)
	}
	return nil
}

// UpdateMember updates a membership's role and active flag.
func (r *PgxOrganizationRepository) UpdateMember(ctx context.Context, member domain.OrganizationMember) error {
	modelMember := mapping.ToModelOrganizationMember(member)
	query := `
		UPDATE organization_members
		SET role = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE member_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelMember.MemberID,
		modelMember.Role,
		modelMember.IsActive,
		modelMember.LastUpdatedAt,
		modelMember.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", modelMember.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
