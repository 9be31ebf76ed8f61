package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orgfin/org_finance_app/internal/core/domain"
	portssvc "github.com/orgfin/org_finance_app/internal/core/ports/services"
	"github.com/orgfin/org_finance_app/internal/dto"
	"github.com/orgfin/org_finance_app/internal/middleware"
)

// entryHandler handles HTTP requests for the entry lifecycle.
type entryHandler struct {
	entryService      portssvc.EntrySvcFacade
	attachmentService portssvc.AttachmentSvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade, as portssvc.AttachmentSvcFacade) *entryHandler {
	return &entryHandler{
		entryService:      es,
		attachmentService: as,
	}
}

// RegisterEntryRoutes registers routes related to entries and their
// supporting documents. Exported for handler tests.
func RegisterEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade, attachmentService portssvc.AttachmentSvcFacade) {
	h := newEntryHandler(entryService, attachmentService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
		entries.POST("/:entryID/transition", h.transitionEntry)
		entries.POST("/:entryID/attachments", h.registerAttachment)
		entries.GET("/:entryID/attachments", h.listAttachments)
	}

	rg.GET("/organizations/:orgID/entries", h.listEntries)
}

// createEntry godoc
// @Summary Submit a new entry
// @Description Creates a pending entry, resolving the exchange rate and freezing the converted amount computation inputs
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 422 {object} map[string]string "No applicable exchange rate"
// @Security BearerAuth
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	submitterUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, submitterUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create entry")
		return
	}

	logger.Info("Entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_type", string(entry.EntryType)))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get an entry
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List entries
// @Description Lists an organization's entries with optional workspace, team, type and status filters
// @Tags entries
// @Produce  json
// @Param   orgID path string true "Organization ID"
// @Param   workspaceID query string false "Filter by workspace"
// @Param   workspaceTeamID query string false "Filter by workspace team"
// @Param   entryType query string false "Filter by entry type"
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Page size (default 50)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /organizations/{orgID}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	page, err := h.entryService.ListEntries(c.Request.Context(), c.Param("orgID"), userID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, page)
}

// updateEntry godoc
// @Summary Update a pending entry
// @Description Edits submitter fields while the entry is pending. Changing currency or occurrence date re-resolves the rate.
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Entry no longer pending"
// @Security BearerAuth
// @Router /entries/{entryID} [patch]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), c.Param("entryID"), req, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// transitionEntry godoc
// @Summary Transition an entry's status
// @Description Moves an entry through the review state machine (approve, reject, flag, resubmit)
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   transition body dto.TransitionEntryRequest true "Target status and optional note"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Concurrent status change"
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /entries/{entryID}/transition [post]
func (h *entryHandler) transitionEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransitionEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.entryService.TransitionEntry(c.Request.Context(), c.Param("entryID"), req.TargetStatus, req.Note, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to transition entry")
		return
	}

	logger.Info("Entry transitioned",
		slog.String("entry_id", entry.EntryID),
		slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a pending entry
// @Description Removes a pending entry that has never been reviewed
// @Tags entries
// @Param   entryID path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Entry has review history"
// @Security BearerAuth
// @Router /entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), c.Param("entryID"), actorUserID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// registerAttachment godoc
// @Summary Register an attachment
// @Description Registers metadata for a supporting document uploaded to object storage
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   attachment body dto.RegisterAttachmentRequest true "Attachment metadata"
// @Success 201 {object} dto.AttachmentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /entries/{entryID}/attachments [post]
func (h *entryHandler) registerAttachment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterAttachment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorUserID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	attachment, err := h.attachmentService.RegisterAttachment(c.Request.Context(), domain.Attachment{
		EntryID:     c.Param("entryID"),
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		StorageKey:  req.StorageKey,
	}, actorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to register attachment")
		return
	}

	logger.Info("Attachment registered", slog.String("attachment_id", attachment.AttachmentID))
	c.JSON(http.StatusCreated, dto.ToAttachmentResponse(attachment))
}

// listAttachments godoc
// @Summary List an entry's attachments
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {array} dto.AttachmentResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /entries/{entryID}/attachments [get]
func (h *entryHandler) listAttachments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c, logger)
	if !ok {
		return
	}

	attachments, err := h.attachmentService.ListAttachments(c.Request.Context(), c.Param("entryID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list attachments")
		return
	}
	c.JSON(http.StatusOK, dto.ToAttachmentResponses(attachments))
}
