// batches.go handles multi-report batch upload endpoints (TP-35).
//
// POST /api/v1/batches     — Upload several PDFs in one request
// GET  /api/v1/batches/:id — Get batch progress and its reports
package handlers

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TeamPulse-Labs/teampulse-api/internal/middleware"
	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	pdfservice "github.com/TeamPulse-Labs/teampulse-api/internal/services/pdf"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/worker"
)

// maxBatchFiles caps how many PDFs one batch may contain.
const maxBatchFiles = 25

// CreateBatch accepts multiple PDF reports and queues them for parsing.
// POST /api/v1/batches
//
// Accepts a multipart upload with repeated "files" fields. Files that
// fail validation get a failed report row instead of sinking the whole
// batch. Returns 202 with the batch record.
func (h *Handler) CreateBatch(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "storage_unavailable",
			Message: "Object storage is not configured; batch uploads are disabled",
			Code:    http.StatusServiceUnavailable,
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Multipart form with 'files' fields is required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "At least one PDF under the 'files' field is required",
			Code:    http.StatusBadRequest,
		})
		return
	}
	if len(files) > maxBatchFiles {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "too_many_files",
			Message: "A batch may contain at most 25 files",
			Code:    http.StatusBadRequest,
		})
		return
	}

	var apiKeyID *string
	if apiKey := middleware.GetAPIKey(c); apiKey != nil {
		apiKeyID = &apiKey.ID
	}

	batch := &models.Batch{
		Status:     models.StatusProcessing,
		TotalCount: len(files),
	}
	if err := h.DB.CreateBatch(c.Request.Context(), batch); err != nil {
		log.Printf("❌ Failed to create batch: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create batch",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	for _, fh := range files {
		r := &models.StrengthsReport{
			Filename:     uuid.New().String() + ".pdf",
			OriginalName: fh.Filename,
			Status:       models.StatusPending,
			BatchID:      &batch.ID,
			APIKeyID:     apiKeyID,
		}

		data, vErr := readBatchFile(fh)
		if vErr != "" {
			r.Status = models.StatusFailed
			r.ErrorMessage = vErr
			if err := h.DB.CreateReport(c.Request.Context(), r); err != nil {
				log.Printf("❌ Failed to record invalid batch file %s: %v", fh.Filename, err)
			}
			continue
		}

		if err := h.Store.Upload(c.Request.Context(), r.Filename, data, "application/pdf"); err != nil {
			r.Status = models.StatusFailed
			r.ErrorMessage = "failed to store uploaded file"
			log.Printf("❌ Failed to store batch file %s: %v", fh.Filename, err)
			h.DB.CreateReport(c.Request.Context(), r)
			continue
		}

		if err := h.DB.CreateReport(c.Request.Context(), r); err != nil {
			log.Printf("❌ Failed to create report record for %s: %v", fh.Filename, err)
			continue
		}

		if err := h.Worker.Submit(worker.Job{
			ID:        r.ID,
			Type:      worker.JobReportParsing,
			CreatedAt: time.Now(),
		}); err != nil {
			r.Status = models.StatusFailed
			r.ErrorMessage = err.Error()
			h.DB.UpdateReport(c.Request.Context(), r)
		}
	}

	// Roll up counts for files that failed validation immediately.
	if err := h.DB.UpdateBatchCounts(c.Request.Context(), batch.ID); err != nil {
		log.Printf("⚠️  Failed to update batch counts for %s: %v", batch.ID, err)
	}

	fresh, err := h.DB.GetBatch(c.Request.Context(), batch.ID)
	if err == nil {
		batch = fresh
	}

	c.JSON(http.StatusAccepted, batch)
}

// GetBatch returns a batch with its reports.
// GET /api/v1/batches/:id
func (h *Handler) GetBatch(c *gin.Context) {
	id := c.Param("id")

	batch, err := h.DB.GetBatch(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Batch not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	reports, err := h.DB.GetBatchReports(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to list batch reports: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list batch reports",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if reports == nil {
		reports = []models.StrengthsReport{}
	}

	c.JSON(http.StatusOK, gin.H{
		"batch":   batch,
		"reports": reports,
	})
}

// readBatchFile opens and validates one file from a batch upload.
// Returns a non-empty validation message on failure.
func readBatchFile(fh *multipart.FileHeader) ([]byte, string) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" {
		return nil, "unsupported file format; only .pdf files are accepted"
	}
	if fh.Size > maxPDFSize {
		return nil, "file exceeds the 50MB size limit"
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "failed to open uploaded file"
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "failed to read uploaded file"
	}

	if !pdfservice.ValidatePDF(data) {
		return nil, "file does not appear to be a valid PDF"
	}

	return data, ""
}
