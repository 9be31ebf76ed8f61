package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
	"github.com/orgfin/org_finance_app/internal/middleware"
)

// exchangeRateHandler handles workspace-level exchange rate requests. The
// organization-level rate routes live with the organization handler.
type exchangeRateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newExchangeRateHandler(rs portssvc.RateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers workspace-scoped exchange rate routes.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/workspaces/:workspaceID/rates")
	{
		rates.POST("", h.createWorkspaceRate)
		rates.GET("", h.listWorkspaceRates)
		rates.POST("/:rateID/approve", h.approveWorkspaceRate)
	}
}

// createWorkspaceRate godoc
// @Summary Create a workspace-level exchange rate
// @Description Proposes a workspace rate; it only becomes usable by entry valuation after approval
// @Tags exchange-rates
// @Accept  json
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   rate body dto.CreateWorkspaceRateRequest true "Rate details"
// @Success 201 {object} dto.WorkspaceRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/rates [post]
func (h *exchangeRateHandler) createWorkspaceRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkspaceRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	rate, err := h.rateService.CreateWorkspaceRate(c.Request.Context(), c.Param("workspaceID"), req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create rate")
		return
	}

	logger.Info("Workspace rate created", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceRateResponse(rate))
}

// listWorkspaceRates godoc
// @Summary List workspace-level exchange rates
// @Tags exchange-rates
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 200 {array} dto.WorkspaceRateResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/rates [get]
func (h *exchangeRateHandler) listWorkspaceRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	rates, err := h.rateService.ListWorkspaceRates(c.Request.Context(), c.Param("workspaceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list rates")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceRateResponses(rates))
}

// approveWorkspaceRate godoc
// @Summary Approve a workspace-level exchange rate
// @Description Approves a proposed workspace rate. The approver must differ from the creator.
// @Tags exchange-rates
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Param   rateID path string true "Exchange Rate ID"
// @Success 200 {object} dto.WorkspaceRateResponse
// @Failure 403 {object} map[string]string "Forbidden or creator self-approval"
// @Failure 404 {object} map[string]string "Rate not found"
// @Failure 409 {object} map[string]string "Rate already approved"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/rates/{rateID}/approve [post]
func (h *exchangeRateHandler) approveWorkspaceRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	approverUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	rate, err := h.rateService.ApproveWorkspaceRate(c.Request.Context(), c.Param("workspaceID"), c.Param("rateID"), approverUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve rate")
		return
	}

	logger.Info("Workspace rate approved", slog.String("exchange_rate_id", rate.ExchangeRateID))
	c.JSON(http.StatusOK, dto.ToWorkspaceRateResponse(rate))
}
