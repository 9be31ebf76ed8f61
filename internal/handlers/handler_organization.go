package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
	"github.com/orgfin/org_finance_app/internal/middleware"
)

// organizationHandler handles HTTP requests for organizations, their members
// and organization-level exchange rates.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
	rateService         portssvc.RateSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade, rs portssvc.RateSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
		rateService:         rs,
	}
}

// registerOrganizationRoutes registers routes related to organizations.
func registerOrganizationRoutes(rg *gin.RouterGroup, organizationService portssvc.OrganizationSvcFacade, rateService portssvc.RateSvcFacade) {
	h := newOrganizationHandler(organizationService, rateService)

	orgs := rg.Group("/organizations")
	{
		orgs.POST("", h.createOrganization)
		orgs.GET("/:orgID", h.getOrganization)
		orgs.POST("/:orgID/members", h.addMember)
		orgs.GET("/:orgID/members", h.listMembers)
		orgs.POST("/:orgID/rates", h.createOrgRate)
		orgs.GET("/:orgID/rates", h.listOrgRates)
	}
}

// createOrganization godoc
// @Summary Create an organization
// @Description Creates an organization with a base currency; the creator becomes its owner
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create organization"
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create organization")
		return
	}

	logger.Info("Organization created", slog.String("organization_id", org.OrganizationID))
	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org))
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves an organization's details
// @Tags organizations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Organization not found"
// @Security BearerAuth
// @Router /organizations/{orgID} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	org, err := h.organizationService.GetOrganizationByID(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// addMember godoc
// @Summary Add an organization member
// @Description Adds a user to the organization with a role
// @Tags organizations
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   member body dto.AddMemberRequest true "Member details"
// @Success 201 {object} dto.OrganizationMemberResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "User already a member"
// @Security BearerAuth
// @Router /organizations/{orgID}/members [post]
func (h *organizationHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddMember", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	member, err := h.organizationService.AddMember(c.Request.Context(), c.Param("orgID"), req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to add member")
		return
	}

	logger.Info("Member added", slog.String("member_id", member.MemberID))
	c.JSON(http.StatusCreated, dto.ToOrganizationMemberResponse(member))
}

// listMembers godoc
// @Summary List organization members
// @Description Retrieves all members of an organization
// @Tags organizations
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {array} dto.OrganizationMemberResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/members [get]
func (h *organizationHandler) listMembers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	members, err := h.organizationService.ListMembers(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list members")
		return
	}

	responses := make([]dto.OrganizationMemberResponse, len(members))
	for i := range members {
		responses[i] = dto.ToOrganizationMemberResponse(&members[i])
	}
	c.JSON(http.StatusOK, responses)
}

// createOrgRate godoc
// @Summary Create an organization-level exchange rate
// @Description Adds a rate from a currency into the organization's base currency, effective from a date
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   rate body dto.CreateOrgRateRequest true "Rate details"
// @Success 201 {object} dto.OrgRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/rates [post]
func (h *organizationHandler) createOrgRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOrgRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrgRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	rate, err := h.rateService.CreateOrgRate(c.Request.Context(), c.Param("orgID"), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create rate")
		return
	}

	logger.Info("Organization rate created", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToOrgRateResponse(rate))
}

// listOrgRates godoc
// @Summary List organization-level exchange rates
// @Tags exchange-rates
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Success 200 {array} dto.OrgRateResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/rates [get]
func (h *organizationHandler) listOrgRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	rates, err := h.rateService.ListOrgRates(c.Request.Context(), c.Param("orgID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrgRateResponses(rates))
}
