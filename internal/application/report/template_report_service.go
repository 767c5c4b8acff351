package report

import (
	"context"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// TemplatePDFFilename is the attachment name of template-rendered reports
const TemplatePDFFilename = "sales_report.pdf"

// HTMLTemplates renders named HTML templates
type HTMLTemplates interface {
	RenderHTML(name string, data any) (string, error)
}

// HTMLConverter turns an HTML document into PDF bytes
type HTMLConverter interface {
	ConvertHTML(ctx context.Context, html, title string) ([]byte, error)
}

// TemplateReportData is the view model of the HTML sales report
type TemplateReportData struct {
	Title       string
	Filters     map[string]string
	CurrentDate time.Time
	SalesData   []report.Row
}

// TemplateReportService renders the HTML sales report and converts it to PDF.
// Filters are carried as document metadata only.
type TemplateReportService struct {
	templates HTMLTemplates
	converter HTMLConverter
	template  string
	title     string
	now       func() time.Time
	logger    *zap.Logger
}

// NewTemplateReportService creates a TemplateReportService
func NewTemplateReportService(templates HTMLTemplates, converter HTMLConverter, templateName, title string, logger *zap.Logger) *TemplateReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateReportService{
		templates: templates,
		converter: converter,
		template:  templateName,
		title:     title,
		now:       time.Now,
		logger:    logger,
	}
}

// Render produces the PDF document. Every failure is reported as
// shared.ErrRenderFailed carrying the underlying cause.
func (s *TemplateReportService) Render(ctx context.Context, filters map[string]string) (*ExportResult, error) {
	data := TemplateReportData{
		Title:       s.title,
		Filters:     filters,
		CurrentDate: s.now(),
		SalesData:   []report.Row{},
	}

	html, err := s.templates.RenderHTML(s.template, data)
	if err != nil {
		s.logger.Error("Failed to render sales report template", zap.Error(err))
		return nil, shared.ErrRenderFailed.WithCause(err)
	}

	pdf, err := s.converter.ConvertHTML(ctx, html, s.title)
	if err != nil {
		s.logger.Error("Failed to convert sales report to PDF", zap.Error(err))
		return nil, shared.ErrRenderFailed.WithCause(err)
	}

	return &ExportResult{
		Content:     pdf,
		ContentType: report.FormatPDF.ContentType(),
		Filename:    TemplatePDFFilename,
		Format:      report.FormatPDF,
	}, nil
}
