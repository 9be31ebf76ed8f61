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

type PgxWorkspaceRepository struct {
	BaseRepository
}

// newPgxWorkspaceRepository creates a new repository for workspace and team data.
func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepositoryFacade {
	return &PgxWorkspaceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

const workspaceColumns = `workspace_id, organization_id, admin_member_id, title, description, status, remittance_rate, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

const teamColumns = `team_id, organization_id, title, description, coordinator_member_id, custom_remittance_rate, created_at, created_by, last_updated_at, last_updated_by`

func scanWorkspace(row pgx.Row) (models.Workspace, error) {
	var ws models.Workspace
	err := row.Scan(
		&ws.WorkspaceID,
		&ws.OrganizationID,
		&ws.AdminMemberID,
		&ws.Title,
		&ws.Description,
		&ws.Status,
		&ws.RemittanceRate,
		&ws.StartDate,
		&ws.EndDate,
		&ws.CreatedAt,
		&ws.CreatedBy,
		&ws.LastUpdatedAt,
		&ws.LastUpdatedBy,
	)
	return ws, err
}

func scanTeam(row pgx.Row) (models.Team, error) {
	var team models.Team
	err := row.Scan(
		&team.TeamID,
		&team.OrganizationID,
		&team.Title,
		&team.Description,
		&team.CoordinatorMemberID,
		&team.CustomRemittanceRate,
		&team.CreatedAt,
		&team.CreatedBy,
		&team.LastUpdatedAt,
		&team.LastUpdatedBy,
	)
	return team, err
}

func scanWorkspaceTeam(row pgx.Row) (models.WorkspaceTeam, error) {
	var wt models.WorkspaceTeam
	err := row.Scan(
		&wt.WorkspaceTeamID,
		&wt.WorkspaceID,
		&wt.TeamID,
		&wt.CreatedAt,
		&wt.CreatedBy,
		&wt.LastUpdatedAt,
		&wt.LastUpdatedBy,
	)
	return wt, err
}

func scanTeamMember(row pgx.Row) (models.TeamMember, error) {
	var tm models.TeamMember
	err := row.Scan(
		&tm.TeamMemberID,
		&tm.TeamID,
		&tm.MemberID,
		&tm.Role,
		&tm.JoinedAt,
	)
	return tm, err
}

// FindWorkspaceByID retrieves a workspace by ID.
func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE workspace_id = $1;`
	modelWs, err := scanWorkspace(r.Pool.QueryRow(ctx, query, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace %s: %w", workspaceID, err)
	}
	domainWs := mapping.ToDomainWorkspace(modelWs)
	return &domainWs, nil
}

// ListWorkspacesByOrganization lists all workspaces of an organization.
func (r *PgxWorkspaceRepository) ListWorkspacesByOrganization(ctx context.Context, organizationID string) ([]domain.Workspace, error) {
	query := `
		SELECT ` + workspaceColumns + `
		FROM workspaces
		WHERE organization_id = $1
		ORDER BY start_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}
	defer rows.Close()

	modelWorkspaces, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Workspace, error) {
		return scanWorkspace(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect workspaces: %w", err)
	}
	return mapping.ToDomainWorkspaceSlice(modelWorkspaces), nil
}

// FindTeamByID retrieves a team by ID.
func (r *PgxWorkspaceRepository) FindTeamByID(ctx context.Context, teamID string) (*domain.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE team_id = $1;`
	modelTeam, err := scanTeam(r.Pool.QueryRow(ctx, query, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team %s: %w", teamID, err)
	}
	domainTeam := mapping.ToDomainTeam(modelTeam)
	return &domainTeam, nil
}

// ListTeamsByOrganization lists all teams of an organization.
func (r *PgxWorkspaceRepository) ListTeamsByOrganization(ctx context.Context, organizationID string) ([]domain.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams
		WHERE organization_id = $1
		ORDER BY title;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	modelTeams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Team, error) {
		return scanTeam(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect teams: %w", err)
	}
	return mapping.ToDomainTeamSlice(modelTeams), nil
}

// FindWorkspaceTeamByID retrieves a workspace-team join row by ID.
func (r *PgxWorkspaceRepository) FindWorkspaceTeamByID(ctx context.Context, workspaceTeamID string) (*domain.WorkspaceTeam, error) {
	query := `
		SELECT workspace_team_id, workspace_id, team_id, created_at, created_by, last_updated_at, last_updated_by
		FROM workspace_teams
		WHERE workspace_team_id = $1;
	`
	modelWt, err := scanWorkspaceTeam(r.Pool.QueryRow(ctx, query, workspaceTeamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace team %s: %w", workspaceTeamID, err)
	}
	domainWt := mapping.ToDomainWorkspaceTeam(modelWt)
	return &domainWt, nil
}

// FindWorkspaceTeam resolves the join row for a (workspace, team) pair.
func (r *PgxWorkspaceRepository) FindWorkspaceTeam(ctx context.Context, workspaceID, teamID string) (*domain.WorkspaceTeam, error) {
	query := `
		SELECT workspace_team_id, workspace_id, team_id, created_at, created_by, last_updated_at, last_updated_by
		FROM workspace_teams
		WHERE workspace_id = $1 AND team_id = $2;
	`
	modelWt, err := scanWorkspaceTeam(r.Pool.QueryRow(ctx, query, workspaceID, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace team for workspace %s team %s: %w", workspaceID, teamID, err)
	}
	domainWt := mapping.ToDomainWorkspaceTeam(modelWt)
	return &domainWt, nil
}

// FindTeamMember resolves the membership of an org member in a team.
func (r *PgxWorkspaceRepository) FindTeamMember(ctx context.Context, teamID, memberID string) (*domain.TeamMember, error) {
	query := `
		SELECT team_member_id, team_id, member_id, role, joined_at
		FROM team_members
		WHERE team_id = $1 AND member_id = $2;
	`
	modelTm, err := scanTeamMember(r.Pool.QueryRow(ctx, query, teamID, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	domainTm := mapping.ToDomainTeamMember(modelTm)
	return &domainTm, nil
}

// FindTeamMemberByID retrieves a team membership row by its ID.
func (r *PgxWorkspaceRepository) FindTeamMemberByID(ctx context.Context, teamMemberID string) (*domain.TeamMember, error) {
	query := `
		SELECT team_member_id, team_id, member_id, role, joined_at
		FROM team_members
		WHERE team_member_id = $1;
	`
	modelTm, err := scanTeamMember(r.Pool.QueryRow(ctx, query, teamMemberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find team member %s: %w", teamMemberID, err)
	}
	domainTm := mapping.ToDomainTeamMember(modelTm)
	return &domainTm, nil
}

// SaveWorkspace persists a new workspace.
func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace) error {
	modelWs := mapping.ToModelWorkspace(workspace)
	query := `
		INSERT INTO workspaces (` + workspaceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelWs.WorkspaceID,
		modelWs.OrganizationID,
		modelWs.AdminMemberID,
		modelWs.Title,
		modelWs.Description,
		modelWs.Status,
		modelWs.RemittanceRate,
		modelWs.StartDate,
		modelWs.EndDate,
		modelWs.CreatedAt,
		modelWs.CreatedBy,
		modelWs.LastUpdatedAt,
		modelWs.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save workspace %s: %w", modelWs.WorkspaceID, err)
	}
	return nil
}

// UpdateWorkspace updates mutable workspace fields.
func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	modelWs := mapping.ToModelWorkspace(workspace)
	query := `
		UPDATE workspaces
		SET admin_member_id = $2, title = $3, description = $4, status = $5, remittance_rate = $6,
			start_date = $7, end_date = $8, last_updated_at = $9, last_updated_by = $10
		WHERE workspace_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelWs.WorkspaceID,
		modelWs.AdminMemberID,
		modelWs.Title,
		modelWs.Description,
		modelWs.Status,
		modelWs.RemittanceRate,
		modelWs.StartDate,
		modelWs.EndDate,
		modelWs.LastUpdatedAt,
		modelWs.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update workspace %s: %w", modelWs.WorkspaceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveTeam persists a new team.
func (r *PgxWorkspaceRepository) SaveTeam(ctx context.Context, team domain.Team) error {
	modelTeam := mapping.ToModelTeam(team)
	query := `
		INSERT INTO teams (` + teamColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTeam.TeamID,
		modelTeam.OrganizationID,
		modelTeam.Title,
		modelTeam.Description,
		modelTeam.CoordinatorMemberID,
		modelTeam.CustomRemittanceRate,
		modelTeam.CreatedAt,
		modelTeam.CreatedBy,
		modelTeam.LastUpdatedAt,
		modelTeam.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save team %s: %w", modelTeam.TeamID, err)
	}
	return nil
}

// UpdateTeam updates mutable team fields, including the custom remittance rate.
func (r *PgxWorkspaceRepository) UpdateTeam(ctx context.Context, team domain.Team) error {
	modelTeam := mapping.ToModelTeam(team)
	query := `
		UPDATE teams
		SET title = $2, description = $3, coordinator_member_id = $4, custom_remittance_rate = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE team_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelTeam.TeamID,
		modelTeam.Title,
		modelTeam.Description,
		modelTeam.CoordinatorMemberID,
		modelTeam.CustomRemittanceRate,
		modelTeam.LastUpdatedAt,
		modelTeam.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update team %s: %w", modelTeam.TeamID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveWorkspaceTeam persists a new workspace-team join row.
func (r *PgxWorkspaceRepository) SaveWorkspaceTeam(ctx context.Context, workspaceTeam domain.WorkspaceTeam) error {
	modelWt := mapping.ToModelWorkspaceTeam(workspaceTeam)
	query := `
		INSERT INTO workspace_teams (workspace_team_id, workspace_id, team_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelWt.WorkspaceTeamID,
		modelWt.WorkspaceID,
		modelWt.TeamID,
		modelWt.CreatedAt,
		modelWt.CreatedBy,
		modelWt.LastUpdatedAt,
		modelWt.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save workspace team: %w", err)
	}
	return nil
}

// SaveTeamMember persists a new team membership.
func (r *PgxWorkspaceRepository) SaveTeamMember(ctx context.Context, teamMember domain.TeamMember) error {
	modelTm := mapping.ToModelTeamMember(teamMember)
	query := `
		INSERT INTO team_members (team_member_id, team_id, member_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTm.TeamMemberID,
		modelTm.TeamID,
		modelTm.MemberID,
		modelTm.Role,
		modelTm.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save team member: %w", err)
	}
	return nil
}
