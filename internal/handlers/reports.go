// reports.go handles strengths report HTTP endpoints (TP-31).
//
// POST   /api/v1/reports            — Upload a PDF report for parsing
// POST   /api/v1/reports/parse-text — Parse already-extracted text synchronously
// GET    /api/v1/reports            — List reports with filtering/pagination
// GET    /api/v1/reports/:id        — Get one report
// DELETE /api/v1/reports/:id        — Delete a report and its stored PDF
package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TeamPulse-Labs/teampulse-api/internal/middleware"
	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	pdfservice "github.com/TeamPulse-Labs/teampulse-api/internal/services/pdf"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/worker"
)

// maxPDFSize is the max upload size for PDF files (50MB).
const maxPDFSize = 50 << 20

// UploadReport accepts a PDF report and queues it for parsing.
// POST /api/v1/reports
//
// Accepts a multipart upload with field name "file". Returns 202 with
// the pending report record; clients poll GET /reports/:id for results.
func (h *Handler) UploadReport(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "storage_unavailable",
			Message: "Object storage is not configured; use POST /api/v1/reports/parse-text instead",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	data, originalName, ok := h.readPDFUpload(c)
	if !ok {
		return
	}

	storedFilename := uuid.New().String() + ".pdf"

	if err := h.Store.Upload(c.Request.Context(), storedFilename, data, "application/pdf"); err != nil {
		log.Printf("❌ Failed to store uploaded PDF %s: %v", originalName, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "storage_error",
			Message: "Failed to store uploaded file",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	var apiKeyID *string
	if apiKey := middleware.GetAPIKey(c); apiKey != nil {
		apiKeyID = &apiKey.ID
	}

	r := &models.StrengthsReport{
		Filename:     storedFilename,
		OriginalName: originalName,
		Status:       models.StatusPending,
		APIKeyID:     apiKeyID,
	}

	if err := h.DB.CreateReport(c.Request.Context(), r); err != nil {
		log.Printf("❌ Failed to create report record: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create report record",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if err := h.Worker.Submit(worker.Job{
		ID:        r.ID,
		Type:      worker.JobReportParsing,
		CreatedAt: time.Now(),
	}); err != nil {
		r.Status = models.StatusFailed
		r.ErrorMessage = err.Error()
		h.DB.UpdateReport(c.Request.Context(), r)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "queue_full",
			Message: "Processing queue is full; try again later",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	c.JSON(http.StatusAccepted, r)
}

// ParseText runs the extraction pipeline on pre-extracted text.
// POST /api/v1/reports/parse-text
//
// Synchronous and stateless: nothing is persisted. Useful when the
// client did its own PDF-to-text conversion, and for correcting a
// misdetected participant name.
func (h *Handler) ParseText(c *gin.Context) {
	var req models.ParseTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "text is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	opts := strengths.Options{
		IncludeRawText: req.IncludeRawText && h.IncludeRawText,
	}

	report := h.Parser.ParseText(req.Text, req.ParticipantName, opts)
	validation := strengths.ValidateReport(report)

	c.JSON(http.StatusOK, gin.H{
		"report":     report,
		"validation": validation,
	})
}

// GetReport retrieves a single report by ID.
// GET /api/v1/reports/:id
func (h *Handler) GetReport(c *gin.Context) {
	id := c.Param("id")

	r, err := h.DB.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Report not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, r)
}

// ListReports returns a filtered, paginated list of reports.
// GET /api/v1/reports
func (h *Handler) ListReports(c *gin.Context) {
	var params models.ReportListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid query parameters",
			Code:    http.StatusBadRequest,
		})
		return
	}

	reports, total, err := h.DB.ListReports(c.Request.Context(), params)
	if err != nil {
		log.Printf("❌ Failed to list reports: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list reports",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if reports == nil {
		reports = []models.StrengthsReport{}
	}

	perPage := params.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	page := params.Page
	if page < 1 {
		page = 1
	}

	c.JSON(http.StatusOK, models.PaginatedResponse[models.StrengthsReport]{
		Data:       reports,
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	})
}

// DeleteReport removes a report and its stored PDF.
// DELETE /api/v1/reports/:id
func (h *Handler) DeleteReport(c *gin.Context) {
	id := c.Param("id")

	r, err := h.DB.GetReport(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Report not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	if err := h.DB.DeleteReport(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to delete report",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// Best-effort cleanup of the stored object.
	if h.Store != nil && r.Filename != "" {
		if err := h.Store.Delete(c.Request.Context(), r.Filename); err != nil {
			log.Printf("⚠️  Failed to delete stored PDF %s: %v", r.Filename, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report deleted"})
}

// readPDFUpload validates and reads a multipart PDF upload. It writes
// the error response itself and returns ok=false on failure.
func (h *Handler) readPDFUpload(c *gin.Context) (data []byte, originalName string, ok bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPDFSize)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "No PDF file provided. Upload a file with the field name 'file'. Max size: 50MB.",
			Code:    http.StatusBadRequest,
		})
		return nil, "", false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".pdf" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_file_type",
			Message: fmt.Sprintf("Unsupported file format '%s'. Only .pdf files are accepted.", ext),
			Code:    http.StatusBadRequest,
		})
		return nil, "", false
	}

	data, err = io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "read_error",
			Message: "Failed to read uploaded file",
			Code:    http.StatusBadRequest,
		})
		return nil, "", false
	}

	if !pdfservice.ValidatePDF(data) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_pdf",
			Message: "The uploaded file does not appear to be a valid PDF",
			Code:    http.StatusBadRequest,
		})
		return nil, "", false
	}

	return data, header.Filename, true
}
