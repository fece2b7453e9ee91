package handlers

import (
	"fmt"
	"net/http"
	"path"

	portssvc "github.com/SscSPs/plan_approval_app/internal/core/ports/services"
	"github.com/SscSPs/plan_approval_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// auditHandler serves the audit trail and plan documents.
type auditHandler struct {
	auditService portssvc.AuditSvc
}

func newAuditHandler(as portssvc.AuditSvc) *auditHandler {
	return &auditHandler{auditService: as}
}

func registerDocumentRoutes(rg *gin.RouterGroup, as portssvc.AuditSvc) {
	h := newAuditHandler(as)
	docs := rg.Group("/documents")
	{
		docs.GET("/:documentID/download", h.downloadDocument)
	}
}

// listLogs godoc
// @Summary Plan audit trail
// @Description Lists the plan's transitions in timestamp order.
// @Tags audit
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} dto.ListLogsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID}/logs [get]
func (h *auditHandler) listLogs(c *gin.Context) {
	logs, err := h.auditService.ListLogsByPlan(c.Request.Context(), c.Param("planID"))
	if err != nil {
		respondError(c, err, "Failed to list plan logs")
		return
	}
	c.JSON(http.StatusOK, dto.ListLogsResponse{Logs: logs})
}

// listDocuments godoc
// @Summary Plan documents
// @Tags audit
// @Produce json
// @Param planID path string true "Plan ID"
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /plans/{planID}/documents [get]
func (h *auditHandler) listDocuments(c *gin.Context) {
	docs, err := h.auditService.ListDocumentsByPlan(c.Request.Context(), c.Param("planID"))
	if err != nil {
		respondError(c, err, "Failed to list plan documents")
		return
	}
	c.JSON(http.StatusOK, dto.ListDocumentsResponse{Documents: docs})
}

// downloadDocument godoc
// @Summary Download a document
// @Description Returns a presigned URL when the store supports it (?redirect=true follows it),
// @Description otherwise streams the content.
// @Tags audit
// @Produce json,octet-stream
// @Param documentID path string true "Document ID"
// @Param redirect query bool false "Redirect to the presigned URL"
// @Success 200 {object} dto.DocumentDownloadResponse
// @Success 302 "Redirect to presigned URL"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /documents/{documentID}/download [get]
func (h *auditHandler) downloadDocument(c *gin.Context) {
	documentID := c.Param("documentID")

	doc, url, err := h.auditService.GetDocumentDownloadURL(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to prepare document download")
		return
	}
	if url != "" {
		if c.Query("redirect") == "true" {
			c.Redirect(http.StatusFound, url)
			return
		}
		c.JSON(http.StatusOK, dto.DocumentDownloadResponse{Document: *doc, URL: url})
		return
	}

	doc, content, err := h.auditService.OpenDocument(c.Request.Context(), documentID)
	if err != nil {
		respondError(c, err, "Failed to open document")
		return
	}
	defer content.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", content, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", path.Base(doc.FilePath)),
	})
}
