package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
	"github.com/orgfin/org_finance_app/internal/middleware"
)

// workspaceHandler handles HTTP requests for workspaces, teams and their
// remittance rate configuration.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{workspaceService: ws}
}

// registerWorkspaceRoutes registers routes related to workspaces and teams.
func registerWorkspaceRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSvcFacade) {
	h := newWorkspaceHandler(workspaceService)

	orgs := rg.Group("/organizations/:orgID")
	{
		orgs.POST("/workspaces", h.createWorkspace)
		orgs.GET("/workspaces", h.listWorkspaces)
		orgs.POST("/teams", h.createTeam)
	}

	workspaces := rg.Group("/workspaces")
	{
		workspaces.GET("/:workspaceID", h.getWorkspace)
		workspaces.PATCH("/:workspaceID", h.updateWorkspace)
		workspaces.POST("/:workspaceID/teams", h.addTeamToWorkspace)
		workspaces.PUT("/:workspaceID/teams/:teamID/remittance-rate", h.setTeamRemittanceRate)
	}

	teams := rg.Group("/teams")
	{
		teams.GET("/:teamID", h.getTeam)
		teams.POST("/:teamID/members", h.addTeamMember)
	}
}

// createWorkspace godoc
// @Summary Create a workspace
// @Description Creates a bounded working period under an organization
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), c.Param("orgID"), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create workspace")
		return
	}

	logger.Info("Workspace created", slog.String("workspace_id", workspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// listWorkspaces godoc
// @Summary List workspaces
// @Tags workspaces
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {array} dto.WorkspaceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/workspaces [get]
func (h *workspaceHandler) listWorkspaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list workspaces")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponses(workspaces))
}

// getWorkspace godoc
// @Summary Get a workspace
// @Tags workspaces
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 404 {object} map[string]string "Workspace not found"
// @Security BearerAuth
// @Router /workspaces/{workspaceID} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspaceByID(c.Request.Context(), c.Param("workspaceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// updateWorkspace godoc
// @Summary Update a workspace
// @Description Updates workspace fields, including status (ACTIVE/ARCHIVED/CLOSED)
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   workspace body dto.UpdateWorkspaceRequest true "Fields to update"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspaceID} [patch]
func (h *workspaceHandler) updateWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.UpdateWorkspace(c.Request.Context(), c.Param("workspaceID"), req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update workspace")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// createTeam godoc
// @Summary Create a team
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   team body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/teams [post]
func (h *workspaceHandler) createTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTeam", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	team, err := h.workspaceService.CreateTeam(c.Request.Context(), c.Param("orgID"), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create team")
		return
	}

	logger.Info("Team created", slog.String("team_id", team.TeamID))
	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// getTeam godoc
// @Summary Get a team
// @Tags teams
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Failure 404 {object} map[string]string "Team not found"
// @Security BearerAuth
// @Router /teams/{teamID} [get]
func (h *workspaceHandler) getTeam(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	team, err := h.workspaceService.GetTeamByID(c.Request.Context(), c.Param("teamID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve team")
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// addTeamMember godoc
// @Summary Add a team member
// @Description Adds an organization member to a team as SUBMITTER or AUDITOR
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   teamID path string true "Team ID"
// @Param   member body dto.AddTeamMemberRequest true "Membership details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Already a team member"
// @Security BearerAuth
// @Router /teams/{teamID}/members [post]
func (h *workspaceHandler) addTeamMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTeamMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	teamMember, err := h.workspaceService.AddTeamMember(c.Request.Context(), c.Param("teamID"), req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add team member")
		return
	}

	logger.Info("Team member added", slog.String("team_member_id", teamMember.TeamMemberID))
	c.JSON(http.StatusCreated, gin.H{
		"teamMemberID": teamMember.TeamMemberID,
		"teamID":       teamMember.TeamID,
		"memberID":     teamMember.MemberID,
		"role":         string(teamMember.Role),
	})
}

// addTeamToWorkspace godoc
// @Summary Attach a team to a workspace
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   team body dto.AddTeamToWorkspaceRequest true "Team to attach"
// @Success 201 {object} dto.WorkspaceTeamResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Team already attached"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/teams [post]
func (h *workspaceHandler) addTeamToWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddTeamToWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddTeamToWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	workspaceTeam, err := h.workspaceService.AddTeamToWorkspace(c.Request.Context(), c.Param("workspaceID"), req.TeamID, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to attach team")
		return
	}

	logger.Info("Team attached to workspace", slog.String("workspace_team_id", workspaceTeam.WorkspaceTeamID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceTeamResponse(workspaceTeam))
}

// setTeamRemittanceRate godoc
// @Summary Set a team's custom remittance rate
// @Description Sets or clears the per-team remittance rate override used within the workspace
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   teamID path string true "Team ID"
// @Param   rate body dto.SetTeamRateRequest true "Custom rate (null clears the override)"
// @Success 200 {object} dto.TeamResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/teams/{teamID}/remittance-rate [put]
func (h *workspaceHandler) setTeamRemittanceRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetTeamRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetTeamRemittanceRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	team, err := h.workspaceService.SetTeamRemittanceRate(c.Request.Context(), c.Param("workspaceID"), c.Param("teamID"), req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to set team rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}
