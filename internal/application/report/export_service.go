package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/ecommerce/backoffice/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/ecommerce/backoffice/internal/application/report"

// ParamFormat selects the export serialization
const ParamFormat = "format"

// RowRenderer serializes a sequence of report rows into one format
type RowRenderer interface {
	Render(w io.Writer, rows iter.Seq[report.Row]) error
}

// ReportArchiver keeps a copy of every generated report
type ReportArchiver interface {
	Archive(ctx context.Context, filename, contentType string, content []byte) (string, error)
}

// ExportObserver receives the outcome of each export
type ExportObserver interface {
	ExportSucceeded(ctx context.Context, format report.Format, rows int, elapsed time.Duration)
	ExportFailed(ctx context.Context, format report.Format, reason string)
}

// ExportResult is a rendered report ready to be sent to the caller
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
	Format      report.Format
	RowCount    int
	ArchiveKey  string
}

// ExportService runs one export: format selection, filter compilation,
// record filtering, normalization and serialization.
type ExportService struct {
	source    sales.SaleReader
	queries   *QueryBuilder
	adapter   *SchemaAdapter
	renderers map[report.Format]RowRenderer
	archiver  ReportArchiver
	observer  ExportObserver
	tracer    trace.Tracer
	logger    *zap.Logger
}

// ExportOption configures an ExportService
type ExportOption func(*ExportService)

// WithArchiver uploads a copy of each successful export
func WithArchiver(a ReportArchiver) ExportOption {
	return func(s *ExportService) {
		s.archiver = a
	}
}

// WithObserver reports export outcomes, typically to metrics
func WithObserver(o ExportObserver) ExportOption {
	return func(s *ExportService) {
		s.observer = o
	}
}

// WithExportLogger sets the service logger
func WithExportLogger(l *zap.Logger) ExportOption {
	return func(s *ExportService) {
		s.logger = l
	}
}

// NewExportService creates an ExportService
func NewExportService(
	source sales.SaleReader,
	queries *QueryBuilder,
	adapter *SchemaAdapter,
	renderers map[report.Format]RowRenderer,
	opts ...ExportOption,
) *ExportService {
	s := &ExportService{
		source:    source,
		queries:   queries,
		adapter:   adapter,
		renderers: renderers,
		tracer:    otel.Tracer(tracerName),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Export produces the report selected by params. Input problems come back as
// shared.ErrUnsupportedFormat or report.FieldErrors; a failing record source
// comes back as shared.ErrSourceUnavailable.
func (s *ExportService) Export(ctx context.Context, params map[string]string) (*ExportResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "report.export")
	defer span.End()

	format, err := report.ParseFormat(params[ParamFormat])
	if err != nil {
		span.SetStatus(codes.Error, "unsupported format")
		s.failed(ctx, report.Format(params[ParamFormat]), "unsupported_format")
		return nil, err
	}
	span.SetAttributes(attribute.String("report.format", string(format)))

	renderer, ok := s.renderers[format]
	if !ok {
		s.failed(ctx, format, "unsupported_format")
		return nil, shared.ErrUnsupportedFormat
	}

	criteria, err := s.queries.Compile(params)
	if err != nil {
		span.SetStatus(codes.Error, "invalid filters")
		s.failed(ctx, format, "invalid_filters")
		return nil, err
	}

	records, err := s.source.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "source unavailable")
		s.failed(ctx, format, "source_unavailable")
		return nil, shared.ErrSourceUnavailable.WithCause(err)
	}

	matched := s.queries.Apply(criteria, records)
	span.SetAttributes(
		attribute.Int("report.source_records", len(records)),
		attribute.Int("report.rows", len(matched)),
	)

	var buf bytes.Buffer
	if err := renderer.Render(&buf, s.adapter.Rows(matched)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		s.failed(ctx, format, "render_failed")
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	result := &ExportResult{
		Content:     buf.Bytes(),
		ContentType: format.ContentType(),
		Filename:    format.Filename(),
		Format:      format,
		RowCount:    len(matched),
	}
	s.archive(ctx, result)

	elapsed := time.Since(start)
	if s.observer != nil {
		s.observer.ExportSucceeded(ctx, format, result.RowCount, elapsed)
	}
	s.logger.Info("Sales report exported",
		zap.String("format", string(format)),
		zap.Int("rows", result.RowCount),
		zap.Int("bytes", len(result.Content)),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}

func (s *ExportService) archive(ctx context.Context, result *ExportResult) {
	if s.archiver == nil {
		return
	}
	key, err := s.archiver.Archive(ctx, result.Filename, result.ContentType, result.Content)
	if err != nil {
		s.logger.Warn("Failed to archive sales report",
			zap.String("filename", result.Filename),
			zap.Error(err),
		)
		return
	}
	result.ArchiveKey = key
}

func (s *ExportService) failed(ctx context.Context, format report.Format, reason string) {
	if s.observer != nil {
		s.observer.ExportFailed(ctx, format, reason)
	}
	s.logger.Debug("Sales report export rejected",
		zap.String("format", string(format)),
		zap.String("reason", reason),
	)
}
