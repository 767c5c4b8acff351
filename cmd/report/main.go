// Command report exports a sales report from a JSON record file, applying
// the same filters and serializers as the HTTP export endpoint.
//
//	report -input sales.json -format pdf -out report.pdf -filter month=1 -filter year=2024
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	reportapp "github.com/ecommerce/backoffice/internal/application/report"
	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/shared"
	"github.com/ecommerce/backoffice/internal/infrastructure/config"
	"github.com/ecommerce/backoffice/internal/infrastructure/export"
	"github.com/ecommerce/backoffice/internal/infrastructure/logger"
	"github.com/ecommerce/backoffice/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Exit codes
const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
)

// filterFlags collects repeated -filter key=value flags
type filterFlags map[string]string

func (f filterFlags) String() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (f filterFlags) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("filter %q is not key=value", value)
	}
	if key == reportapp.ParamFormat {
		return errors.New("use -format to select the output format")
	}
	f[key] = val
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(exitFailure)
	}
	os.Exit(run(context.Background(), os.Args[1:], cfg.Report, os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, settings config.ReportConfig, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		input    string
		format   string
		out      string
		timezone string
		logLevel string
		filters  = filterFlags{}
	)
	fs.StringVar(&input, "input", "", "JSON file with sale records (- for stdin)")
	fs.StringVar(&format, "format", string(report.DefaultFormat), "Output format (csv, pdf)")
	fs.StringVar(&out, "out", "", "Output file (default: the report filename, - for stdout)")
	fs.StringVar(&timezone, "timezone", settings.Timezone, "IANA time zone for date filters and printed dates")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.Var(filters, "filter", "Filter as key=value, repeatable (client_search, month, year, product_name, monto_min, monto_max, fecha_inicio, fecha_fin, status)")
	if err := fs.Parse(args); err != nil {
		return exitValidation
	}
	if input == "" {
		fmt.Fprintln(stderr, "-input is required")
		fs.Usage()
		return exitValidation
	}

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = log.Sync() }()

	loc := time.UTC
	if timezone != "" {
		if loc, err = time.LoadLocation(timezone); err != nil {
			log.Error("Invalid time zone", zap.String("timezone", timezone), zap.Error(err))
			return exitValidation
		}
	}

	var source *persistence.JSONSaleSource
	if input == "-" {
		source = persistence.NewJSONSource(stdin)
	} else {
		source = persistence.NewJSONFileSource(input)
	}

	service := reportapp.NewExportService(
		source,
		reportapp.NewQueryBuilder(loc),
		reportapp.NewSchemaAdapter(loc, log),
		map[report.Format]reportapp.RowRenderer{
			report.FormatCSV: export.NewCSVRenderer(export.WithUTF8BOM(settings.CSVBOM)),
			report.FormatPDF: export.NewPDFRenderer(
				export.WithLocation(loc),
				export.WithRepeatColumnHeader(settings.RepeatColumnHeader),
			),
		},
		reportapp.WithExportLogger(log),
	)

	params := make(map[string]string, len(filters)+1)
	for k, v := range filters {
		params[k] = v
	}
	params[reportapp.ParamFormat] = format

	result, err := service.Export(ctx, params)
	if err != nil {
		return reportError(err, stderr, log)
	}

	if out == "" {
		out = result.Filename
	}
	if err := writeOutput(out, result.Content, stdout); err != nil {
		log.Error("Failed to write report", zap.String("out", out), zap.Error(err))
		return exitFailure
	}
	log.Info("Report written",
		zap.String("out", out),
		zap.String("format", string(result.Format)),
		zap.Int("rows", result.RowCount),
	)
	return exitOK
}

// reportError prints input problems as JSON and maps the error to an exit code
func reportError(err error, stderr io.Writer, log *zap.Logger) int {
	enc := json.NewEncoder(stderr)

	var fieldErrs report.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		_ = enc.Encode(fieldErrs)
		return exitValidation
	case errors.Is(err, shared.ErrUnsupportedFormat):
		_ = enc.Encode(map[string]string{"error": shared.ErrUnsupportedFormat.Message})
		return exitValidation
	default:
		log.Error("Export failed", zap.Error(err))
		return exitFailure
	}
}

func writeOutput(out string, content []byte, stdout io.Writer) error {
	if out == "-" {
		_, err := stdout.Write(content)
		return err
	}
	return os.WriteFile(out, content, 0o644)
}
