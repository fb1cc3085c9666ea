package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealdesk/deal_workflow_app/internal/apperrors"
	"github.com/dealdesk/deal_workflow_app/internal/core/domain"
	portssvc "github.com/dealdesk/deal_workflow_app/internal/core/ports/services"
	"github.com/dealdesk/deal_workflow_app/internal/dto"
	"github.com/dealdesk/deal_workflow_app/internal/middleware"
	"github.com/dealdesk/deal_workflow_app/internal/utils/pagination"
)

// fileHandler handles HTTP requests for workflow files.
type fileHandler struct {
	workflowService portssvc.WorkflowSvcFacade
}

// newFileHandler creates a new fileHandler.
func newFileHandler(ws portssvc.WorkflowSvcFacade) *fileHandler {
	return &fileHandler{workflowService: ws}
}

// RegisterFileRoutes registers routes related to workflow files.
func RegisterFileRoutes(rg *gin.RouterGroup, workflowService portssvc.WorkflowSvcFacade) {
	h := newFileHandler(workflowService)

	files := rg.Group("/files")
	{
		files.POST("", h.createFile)
		files.GET("", h.listFiles)
		files.GET("/summary", h.fileSummary)
		files.POST("/recompute-escalations", h.recomputeEscalations)
		files.GET("/:id", h.getFile)
		files.POST("/:id/approve", h.approveFile)
		files.POST("/:id/reject", h.rejectFile)
		files.POST("/:id/documents", h.attachDocument)
	}
}

func toActor(a middleware.AuthenticatedActor) portssvc.Actor {
	return portssvc.Actor{UserID: a.UserID, Name: a.Name, Role: a.Role}
}

// respondWorkflowError maps engine errors onto HTTP statuses.
func respondWorkflowError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Unhandled workflow error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// createFile godoc
// @Summary Create a workflow file
// @Description Creates a new deal file and submits it for verification. Sales only.
// @Tags files
// @Accept json
// @Produce json
// @Param file body dto.CreateFileRequest true "File details"
// @Success 201 {object} dto.FileResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller is not SALES"
// @Failure 500 {object} ErrorResponse "Failed to create file"
// @Security BearerAuth
// @Router /files [post]
func (h *fileHandler) createFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file, err := h.workflowService.CreateFile(c.Request.Context(), req, toActor(actor))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFileResponse(file, actor.Role))
}

// listFiles godoc
// @Summary List files visible to the caller
// @Description Returns the files the caller's role is responsible for. Escalation chain roles see files escalated to exactly their level; stage roles see files currently assigned to them. Pages with an opaque cursor token.
// @Tags files
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListFilesResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list files"
// @Security BearerAuth
// @Router /files [get]
func (h *fileHandler) listFiles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > 200 {
		limit = 200
	}

	files, err := h.workflowService.ListFilesForRole(c.Request.Context(), actor.Role)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	if token := c.Query("nextToken"); token != "" {
		cursorDate, cursorID, err := pagination.DecodeToken(token)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid pagination token"})
			return
		}
		files = afterCursor(files, cursorDate, cursorID)
	}

	resp := dto.ListFilesResponse{}
	if len(files) > limit {
		files = files[:limit]
		last := files[len(files)-1]
		resp.NextToken = pagination.EncodeToken(last.SubmissionDate, last.FileID)
	}
	resp.Files = dto.ToListFilesResponse(files, actor.Role).Files

	c.JSON(http.StatusOK, resp)
}

// afterCursor drops every file at or before the cursor position. Files are
// ordered newest submission first with file id as the tiebreaker.
func afterCursor(files []domain.WorkflowFile, cursorDate time.Time, cursorID string) []domain.WorkflowFile {
	for i := range files {
		if files[i].SubmissionDate.Before(cursorDate) {
			return files[i:]
		}
		if files[i].SubmissionDate.Equal(cursorDate) && files[i].FileID > cursorID {
			return files[i:]
		}
	}
	return nil
}

// getFile godoc
// @Summary Get a file by ID
// @Tags files
// @Produce json
// @Param id path string true "File ID"
// @Success 200 {object} dto.FileResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve file"
// @Security BearerAuth
// @Router /files/{id} [get]
func (h *fileHandler) getFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fileID := c.Param("id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file, err := h.workflowService.GetFileByID(c.Request.Context(), fileID)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileResponse(file, actor.Role))
}

// approveFile godoc
// @Summary Approve the file's pending stage
// @Description Advances the file to the next pipeline stage. When the file is escalated only the escalation level's owner may approve, which also clears the escalation.
// @Tags files
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Param decision body dto.DecisionRequest true "Approval comments"
// @Success 200 {object} dto.FileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller's role may not act on this file"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 409 {object} ErrorResponse "File is in a terminal state"
// @Failure 500 {object} ErrorResponse "Failed to approve file"
// @Security BearerAuth
// @Router /files/{id}/approve [post]
func (h *fileHandler) approveFile(c *gin.Context) {
	h.decide(c, h.workflowService.ApproveFile)
}

// rejectFile godoc
// @Summary Reject the file
// @Description Terminates the file in REJECTED from whichever stage is pending. When the file is escalated only the escalation level's owner may reject.
// @Tags files
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Param decision body dto.DecisionRequest true "Rejection comments"
// @Success 200 {object} dto.FileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Caller's role may not act on this file"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 409 {object} ErrorResponse "File is in a terminal state"
// @Failure 500 {object} ErrorResponse "Failed to reject file"
// @Security BearerAuth
// @Router /files/{id}/reject [post]
func (h *fileHandler) rejectFile(c *gin.Context) {
	h.decide(c, h.workflowService.RejectFile)
}

// decide is the shared body of approveFile and rejectFile.
func (h *fileHandler) decide(
	c *gin.Context,
	op func(ctx context.Context, fileID string, comments string, actor portssvc.Actor) (*domain.WorkflowFile, error),
) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fileID := c.Param("id")

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for decision", slog.String("file_id", fileID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file, err := op(c.Request.Context(), fileID, req.Comments, toActor(actor))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileResponse(file, actor.Role))
}

// attachDocument godoc
// @Summary Attach a document to a file
// @Description Appends a document reference to a non-terminal file.
// @Tags files
// @Accept json
// @Produce json
// @Param id path string true "File ID"
// @Param document body dto.CreateDocumentRequest true "Document reference"
// @Success 200 {object} dto.FileResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 409 {object} ErrorResponse "File is in a terminal state"
// @Failure 500 {object} ErrorResponse "Failed to attach document"
// @Security BearerAuth
// @Router /files/{id}/documents [post]
func (h *fileHandler) attachDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fileID := c.Param("id")

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for attachDocument", slog.String("file_id", fileID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	file, err := h.workflowService.AttachDocument(c.Request.Context(), fileID, req, toActor(actor))
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFileResponse(file, actor.Role))
}

// fileSummary godoc
// @Summary Summarize files by status
// @Tags files
// @Produce json
// @Success 200 {object} dto.FileSummaryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to summarize files"
// @Security BearerAuth
// @Router /files/summary [get]
func (h *fileHandler) fileSummary(c *gin.Context) {
	summary, err := h.workflowService.Summary(c.Request.Context())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// recomputeEscalations godoc
// @Summary Recompute escalation levels now
// @Description Runs the escalation sweep immediately instead of waiting for the next scheduled run. Returns the number of files escalated.
// @Tags files
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to recompute escalations"
// @Security BearerAuth
// @Router /files/recompute-escalations [post]
func (h *fileHandler) recomputeEscalations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	escalated, err := h.workflowService.RecomputeEscalations(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	logger.Info("Manual escalation sweep complete", slog.Int("escalated", escalated))
	c.JSON(http.StatusOK, gin.H{"escalated": escalated})
}
