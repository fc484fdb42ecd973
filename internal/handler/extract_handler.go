package handler

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"billex/internal/domain"
	"billex/internal/export"
	"billex/internal/service"
)

// ExtractHandler handles bill extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
	maxUploadBytes int64
}

// NewExtractHandler creates a new ExtractHandler. maxUploadMB bounds the
// size of directly uploaded documents.
func NewExtractHandler(extractService service.ExtractService, maxUploadMB int64) *ExtractHandler {
	return &ExtractHandler{
		extractService: extractService,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}
}

// ExtractRequest is the extract-bill-data request body.
type ExtractRequest struct {
	Document string `json:"document" binding:"required" example:"https://example.com/bills/invoice-123.pdf"`
}

// extractPayload is the success payload for extraction endpoints.
type extractPayload struct {
	TokenUsage        domain.TokenUsage      `json:"token_usage"`
	PagewiseLineItems []domain.PageLineItems `json:"pagewise_line_items"`
	TotalItemCount    int                    `json:"total_item_count"`
}

func payloadFrom(res *domain.ExtractResult) extractPayload {
	return extractPayload{
		TokenUsage:        res.TokenUsage,
		PagewiseLineItems: res.PagewiseLineItems,
		TotalItemCount:    res.TotalItemCount,
	}
}

// Extract handles POST /api/v1/extract-bill-data
// @Summary Extract bill line items from a document URL
// @Description Downloads the document (http, https or s3 URL), rasterizes each page, extracts line items with a vision model and returns pagewise items plus a deduplicated total count
// @Tags extract
// @Accept json
// @Produce json
// @Param request body ExtractRequest true "Document URL"
// @Success 200 {object} APIResponse{data=ExtractResponseData} "Extraction result"
// @Failure 400 {object} ErrorResponseBody "Bad URL or download failure"
// @Failure 422 {object} ErrorResponseBody "Undecodable document"
// @Failure 502 {object} ErrorResponseBody "Unusable model output"
// @Security ApiKeyAuth
// @Router /extract-bill-data [post]
func (h *ExtractHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document URL is required")
		return
	}

	res, err := h.extractService.ExtractFromURL(c.Request.Context(), req.Document)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payloadFrom(res))
}

// Upload handles POST /api/v1/extract-bill-data/upload
// @Summary Extract bill line items from an uploaded file
// @Description Accepts a multipart PDF or image upload and runs the same extraction pipeline, using the filename as the format hint
// @Tags extract
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to extract (PDF, JPG, PNG or HEIC)"
// @Success 200 {object} APIResponse{data=ExtractResponseData} "Extraction result"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security ApiKeyAuth
// @Router /extract-bill-data/upload [post]
func (h *ExtractHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		HandleError(c, domain.ErrUnsupportedFileType)
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "failed to read uploaded file")
		return
	}

	res, err := h.extractService.ExtractFromBytes(c.Request.Context(), data, header.Filename)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payloadFrom(res))
}

// Export handles POST /api/v1/extract-bill-data/export
// @Summary Extract and export bill line items as CSV or XLSX
// @Description Runs extraction for a document URL and streams the line items as a downloadable CSV (UTF-8 BOM) or Excel workbook
// @Tags extract
// @Accept json
// @Produce text/csv
// @Param request body ExtractRequest true "Document URL"
// @Param format query string false "Export format: csv (default) or xlsx"
// @Success 200 {file} file "Exported line items"
// @Failure 400 {object} ErrorResponseBody "Bad URL, download failure or unknown format"
// @Security ApiKeyAuth
// @Router /extract-bill-data/export [post]
func (h *ExtractHandler) Export(c *gin.Context) {
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "document URL is required")
		return
	}

	res, err := h.extractService.ExtractFromURL(c.Request.Context(), req.Document)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("bill-items-%s.%s", time.Now().Format("20060102-150405"), format)
	var buf bytes.Buffer

	switch format {
	case domain.ExportFormatXLSX:
		if err := export.WriteXLSX(&buf, res); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	default:
		if err := export.WriteCSV(&buf, res); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	}
}
