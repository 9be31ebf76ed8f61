package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
	"github.com/orgfin/org_finance_app/internal/middleware"
)

// remittanceHandler handles HTTP requests for remittance obligations.
type remittanceHandler struct {
	remittanceService portssvc.RemittanceSvcFacade
}

func newRemittanceHandler(rs portssvc.RemittanceSvcFacade) *remittanceHandler {
	return &remittanceHandler{remittanceService: rs}
}

// registerRemittanceRoutes registers routes related to remittances.
func registerRemittanceRoutes(rg *gin.RouterGroup, remittanceService portssvc.RemittanceSvcFacade) {
	h := newRemittanceHandler(remittanceService)

	remittances := rg.Group("/remittances")
	{
		remittances.GET("/:remittanceID", h.getRemittance)
		remittances.POST("/:remittanceID/payments", h.recordPayment)
		remittances.POST("/:remittanceID/confirm", h.confirmRemittance)
		remittances.POST("/:remittanceID/cancel", h.cancelRemittance)
		remittances.POST("/:remittanceID/reopen", h.reopenRemittance)
	}

	rg.GET("/workspaces/:workspaceID/remittances", h.listRemittancesByWorkspace)
	rg.POST("/workspace-teams/:workspaceTeamID/remittances/:periodID/recompute", h.recomputeRemittance)
}

// getRemittance godoc
// @Summary Get a remittance
// @Tags remittances
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 404 {object} map[string]string "Remittance not found"
// @Security BearerAuth
// @Router /remittances/{remittanceID} [get]
func (h *remittanceHandler) getRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.GetRemittanceByID(c.Request.Context(), c.Param("remittanceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve remittance")
		return
	}
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// listRemittancesByWorkspace godoc
// @Summary List a workspace's remittances
// @Tags remittances
// @Produce  json
// @Param   workspaceID path string true "Workspace ID"
// @Success 200 {array} dto.RemittanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspaceID}/remittances [get]
func (h *remittanceHandler) listRemittancesByWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittances, err := h.remittanceService.ListRemittancesByWorkspace(c.Request.Context(), c.Param("workspaceID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list remittances")
		return
	}
	c.JSON(http.StatusOK, dto.ToRemittanceResponses(remittances))
}

// recomputeRemittance godoc
// @Summary Recompute a remittance's due amount
// @Description Re-derives the due amount from the approved entry set for the workspace team and period
// @Tags remittances
// @Produce  json
// @Param   workspaceTeamID path string true "Workspace Team ID"
// @Param   periodID path string true "Period ID (YYYY-MM)"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspace-teams/{workspaceTeamID}/remittances/{periodID}/recompute [post]
func (h *remittanceHandler) recomputeRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.RecomputeRemittance(c.Request.Context(), c.Param("workspaceTeamID"), c.Param("periodID"), actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to recompute remittance")
		return
	}

	logger.Info("Remittance recomputed", slog.String("remittance_id", remittance.RemittanceID))
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// recordPayment godoc
// @Summary Record a payment against a remittance
// @Description Applies a payment. Overpayments are rejected unless allowOverpayment is set by an authorized actor.
// @Tags remittances
// @Accept  json
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Overpayment or canceled remittance"
// @Security BearerAuth
// @Router /remittances/{remittanceID}/payments [post]
func (h *remittanceHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.RecordPayment(c.Request.Context(), c.Param("remittanceID"), req.Amount, req.AllowOverpayment, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("remittance_id", remittance.RemittanceID),
		slog.String("status", string(remittance.Status)))
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// confirmRemittance godoc
// @Summary Confirm a fully paid remittance
// @Tags remittances
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Not fully paid or already confirmed"
// @Security BearerAuth
// @Router /remittances/{remittanceID}/confirm [post]
func (h *remittanceHandler) confirmRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.ConfirmRemittance(c.Request.Context(), c.Param("remittanceID"), actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to confirm remittance")
		return
	}

	logger.Info("Remittance confirmed", slog.String("remittance_id", remittance.RemittanceID))
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// cancelRemittance godoc
// @Summary Cancel a remittance
// @Description Applies the administrative canceled override. Canceled remittances ignore derived status until reopened.
// @Tags remittances
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Already canceled"
// @Security BearerAuth
// @Router /remittances/{remittanceID}/cancel [post]
func (h *remittanceHandler) cancelRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.CancelRemittance(c.Request.Context(), c.Param("remittanceID"), actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel remittance")
		return
	}

	logger.Info("Remittance canceled", slog.String("remittance_id", remittance.RemittanceID))
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}

// reopenRemittance godoc
// @Summary Reopen a canceled remittance
// @Description Clears the canceled override and re-derives the status from amounts and due date
// @Tags remittances
// @Produce  json
// @Param   remittanceID path string true "Remittance ID"
// @Success 200 {object} dto.RemittanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Not canceled"
// @Security BearerAuth
// @Router /remittances/{remittanceID}/reopen [post]
func (h *remittanceHandler) reopenRemittance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	remittance, err := h.remittanceService.ReopenRemittance(c.Request.Context(), c.Param("remittanceID"), actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reopen remittance")
		return
	}

	logger.Info("Remittance reopened", slog.String("remittance_id", remittance.RemittanceID))
	c.JSON(http.StatusOK, dto.ToRemittanceResponse(remittance))
}
