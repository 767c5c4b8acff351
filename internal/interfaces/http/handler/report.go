package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	reportapp "github.com/ecommerce/backoffice/internal/application/report"
	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/shared"
	"github.com/ecommerce/backoffice/internal/infrastructure/logger"
	"github.com/ecommerce/backoffice/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportExporter produces filtered sales reports
type ReportExporter interface {
	Export(ctx context.Context, params map[string]string) (*reportapp.ExportResult, error)
}

// TemplateReportRenderer produces the template based PDF report
type TemplateReportRenderer interface {
	Render(ctx context.Context, filters map[string]string) (*reportapp.ExportResult, error)
}

// ReportHandler handles sales report downloads
type ReportHandler struct {
	BaseHandler
	exporter  ReportExporter
	templates TemplateReportRenderer
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(exporter ReportExporter, templates TemplateReportRenderer) *ReportHandler {
	return &ReportHandler{
		exporter:  exporter,
		templates: templates,
	}
}

// ExportSalesReport godoc
// @ID           exportSalesReport
// @Summary      Export the filtered sales report
// @Description  Streams every sale matching the filters as a CSV or PDF attachment, newest first.
// @Description  All filters are optional and combined with AND.
// @Tags         reports
// @Produce      text/csv
// @Produce      application/pdf
// @Produce      json
// @Param        format        query string false "Output format" Enums(csv, pdf) default(csv)
// @Param        client_search query string false "Case-insensitive match on customer first name, last name or email"
// @Param        month         query int    false "Sale month (1-12)"
// @Param        year          query int    false "Sale year"
// @Param        product_name  query string false "Case-insensitive match on any product of the sale"
// @Param        monto_min     query number false "Minimum sale total, inclusive"
// @Param        monto_max     query number false "Maximum sale total, inclusive"
// @Param        fecha_inicio  query string false "First sale day, inclusive (YYYY-MM-DD)"
// @Param        fecha_fin     query string false "Last sale day, inclusive (YYYY-MM-DD)"
// @Param        status        query string false "Exact sale status"
// @Success      200 {file} file
// @Failure      400 {object} FieldErrorsResponse
// @Failure      400 {object} dto.FormatError
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/admin/report [get]
func (h *ReportHandler) ExportSalesReport(c *gin.Context) {
	result, err := h.exporter.Export(c.Request.Context(), firstValues(c.Request.URL.Query()))
	if err != nil {
		var fieldErrs report.FieldErrors
		switch {
		case errors.As(err, &fieldErrs):
			c.JSON(http.StatusBadRequest, fieldErrs)
		case errors.Is(err, shared.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, dto.FormatError{Error: shared.ErrUnsupportedFormat.Message})
		default:
			h.HandleError(c, err)
		}
		return
	}

	logger.L(c.Request.Context()).Debug("Sending sales report",
		zap.String("filename", result.Filename),
		zap.Int("rows", result.RowCount),
		zap.String("archive_key", result.ArchiveKey),
	)
	sendAttachment(c, result.ContentType, result.Filename, result.Content)
}

// ExportTemplatePDF godoc
// @ID           exportSalesReportTemplatePDF
// @Summary      Export the printable sales report
// @Description  Renders the HTML sales report template and converts it to PDF.
// @Description  Query parameters are recorded in the document as filter metadata.
// @Tags         reports
// @Produce      application/pdf
// @Produce      json
// @Success      200 {file} file
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} dto.RenderError
// @Security     BearerAuth
// @Router       /reports/export/pdf [get]
func (h *ReportHandler) ExportTemplatePDF(c *gin.Context) {
	result, err := h.templates.Render(c.Request.Context(), firstValues(c.Request.URL.Query()))
	if err != nil {
		_ = c.Error(err)
		logger.L(c.Request.Context()).Error("Template sales report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.RenderError{Detail: shared.ErrRenderFailed.Message})
		return
	}
	sendAttachment(c, result.ContentType, result.Filename, result.Content)
}

// firstValues keeps the first value of every query parameter
func firstValues(query url.Values) map[string]string {
	params := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
