package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "revenue-reconciliation-backend/internal/errors"
	"revenue-reconciliation-backend/internal/logging"
	"revenue-reconciliation-backend/internal/models"
	service "revenue-reconciliation-backend/internal/services/reconciliation"
)

type ReconciliationHandler struct {
	service *service.ReconciliationService
}

func NewReconciliationHandler(s *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

// respondError maps service errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error().Err(err).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label + " ID"})
		return uuid.Nil, false
	}
	return id, true
}

func auditView(a *models.Audit) gin.H {
	return gin.H{
		"audit":    a,
		"progress": a.Progress(),
	}
}

// CreateAudit starts an audit over two files already on the server.
func (h *ReconciliationHandler) CreateAudit(c *gin.Context) {
	var payload service.CreateAuditRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	audit, err := h.service.CreateAudit(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, auditView(audit))
}

func (h *ReconciliationHandler) GetAudit(c *gin.Context) {
	id, ok := parseID(c, "auditId", "audit")
	if !ok {
		return
	}
	audit, err := h.service.GetAudit(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, auditView(audit))
}

// ProcessAudit runs one scheduling step. Pollers call it to drive audits
// when no dispatcher is running.
func (h *ReconciliationHandler) ProcessAudit(c *gin.Context) {
	id, ok := parseID(c, "auditId", "audit")
	if !ok {
		return
	}
	step, err := h.service.ProcessNext(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"audit":       step.Audit,
		"progress":    step.Audit.Progress(),
		"claimed":     step.Claimed,
		"chunk_index": step.ChunkIndex,
		"inserted":    step.Findings,
		"finalized":   step.Finalized,
	})
}

func (h *ReconciliationHandler) ListAnomalies(c *gin.Context) {
	id, ok := parseID(c, "auditId", "audit")
	if !ok {
		return
	}

	filter := models.AnomalyFilter{
		Category: models.Category(c.Query("category")),
		Status:   models.AnomalyStatus(c.Query("status")),
		Cursor:   c.Query("cursor"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	items, nextCursor, hasMore, err := h.service.ListAnomalies(c.Request.Context(), id, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []models.Anomaly{}
	}
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"next_cursor": nextCursor,
		"has_more":    hasMore,
	})
}

func (h *ReconciliationHandler) PublishAudit(c *gin.Context) {
	id, ok := parseID(c, "auditId", "audit")
	if !ok {
		return
	}
	audit, err := h.service.PublishAudit(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "audit published", "audit": audit})
}

func (h *ReconciliationHandler) DeleteAudit(c *gin.Context) {
	id, ok := parseID(c, "auditId", "audit")
	if !ok {
		return
	}
	if err := h.service.DeleteAudit(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReconciliationHandler) UpdateAnomalyStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "anomaly")
	if !ok {
		return
	}

	var payload struct {
		Status      string `json:"status"`
		PerformedBy string `json:"performed_by"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	anomaly, err := h.service.UpdateAnomalyStatus(c.Request.Context(), id,
		models.AnomalyStatus(payload.Status), payload.PerformedBy, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "anomaly updated", "anomaly": anomaly})
}

func (h *ReconciliationHandler) GetOrganizationSettings(c *gin.Context) {
	id, ok := parseID(c, "orgId", "organization")
	if !ok {
		return
	}
	stored, cfg, err := h.service.OrganizationSettings(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": stored, "resolved": cfg})
}

func (h *ReconciliationHandler) SaveOrganizationSettings(c *gin.Context) {
	id, ok := parseID(c, "orgId", "organization")
	if !ok {
		return
	}

	var payload struct {
		Preset    string         `json:"preset"`
		Overrides map[string]any `json:"overrides"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	stored, cfg, err := h.service.SaveOrganizationSettings(c.Request.Context(), id, payload.Preset, payload.Overrides)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": stored, "resolved": cfg})
}
