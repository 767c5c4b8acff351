package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	reportapp "github.com/ecommerce/backoffice/internal/application/report"
	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/infrastructure/auth"
	"github.com/ecommerce/backoffice/internal/infrastructure/config"
	"github.com/ecommerce/backoffice/internal/infrastructure/export"
	"github.com/ecommerce/backoffice/internal/infrastructure/logger"
	"github.com/ecommerce/backoffice/internal/infrastructure/persistence"
	"github.com/ecommerce/backoffice/internal/infrastructure/printing"
	"github.com/ecommerce/backoffice/internal/infrastructure/storage"
	"github.com/ecommerce/backoffice/internal/infrastructure/telemetry"
	"github.com/ecommerce/backoffice/internal/interfaces/http/handler"
	"github.com/ecommerce/backoffice/internal/interfaces/http/middleware"
	"github.com/ecommerce/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/ecommerce/backoffice/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Backoffice Sales Report API
//	@version		1.0
//	@description	Sales report export service: filtered CSV/PDF exports of the sales ledger for administrators.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	bootLog, err := newLogger(cfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	otelCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// OTEL logs are teed into the application logger
	logsCfg := otelCfg
	logsCfg.Enabled = otelCfg.Enabled && cfg.Telemetry.LogsEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, logsCfg, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize OTEL logs", zap.Error(err))
	}
	log, err := newLogger(cfg, loggerProvider.Core(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting sales report service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, otelCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	metricsCfg := otelCfg
	metricsCfg.Enabled = otelCfg.Enabled && cfg.Telemetry.MetricsEnabled
	meterProvider, err := telemetry.NewMeterProvider(ctx, metricsCfg, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
		AuthToken:       cfg.Profiling.AuthToken,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	defer shutdownTelemetry(log, tracerProvider, meterProvider, loggerProvider, profiler)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Report services
	loc, err := cfg.Report.Location()
	if err != nil {
		log.Fatal("Invalid report timezone", zap.String("timezone", cfg.Report.Timezone), zap.Error(err))
	}

	reportMetrics, err := telemetry.NewReportMetrics(meterProvider.Meter(telemetry.ReportMeterName))
	if err != nil {
		log.Fatal("Failed to create report metrics", zap.Error(err))
	}

	exportOpts := []reportapp.ExportOption{
		reportapp.WithObserver(reportMetrics),
		reportapp.WithExportLogger(log.Named("report")),
	}
	if archiver := newArchiver(ctx, cfg, log); archiver != nil {
		exportOpts = append(exportOpts, reportapp.WithArchiver(archiver))
	}

	exportService := reportapp.NewExportService(
		persistence.NewGormSaleRepository(db.DB),
		reportapp.NewQueryBuilder(loc),
		reportapp.NewSchemaAdapter(loc, log.Named("schema")),
		map[report.Format]reportapp.RowRenderer{
			report.FormatCSV: export.NewCSVRenderer(export.WithUTF8BOM(cfg.Report.CSVBOM)),
			report.FormatPDF: export.NewPDFRenderer(
				export.WithLocation(loc),
				export.WithRepeatColumnHeader(cfg.Report.RepeatColumnHeader),
				export.WithAuthor(cfg.App.Name),
			),
		},
		exportOpts...,
	)

	templates, err := printing.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load report templates", zap.Error(err))
	}
	chrome := printing.NewChromedpRenderer(printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		RemoteURL:      cfg.Printing.ChromeRemoteURL,
		ExecPath:       cfg.Printing.ChromePath,
		NoSandbox:      cfg.Printing.NoSandbox,
		Logger:         log.Named("chromedp"),
	})
	defer func() {
		if err := chrome.Close(); err != nil {
			log.Error("Error closing browser", zap.Error(err))
		}
	}()
	templateService := reportapp.NewTemplateReportService(
		templates, chrome, printing.SaleReportTemplate, cfg.Report.Title, log.Named("report"),
	)

	// Authentication
	jwtService := auth.NewJWTService(cfg.JWT)
	revocations, closeRevocations := newRevocationStore(ctx, cfg, log)
	defer closeRevocations()

	// HTTP
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Tracing - Open the server span
	// 3. Recovery - Catch panics
	// 4. Logger - Log requests
	// 5. Metrics - Record request counters and latency
	// 6. Profiling - Label profiler samples by route
	// 7. Security - Add security headers
	// 8. CORS - Handle cross-origin requests
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	})...)
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter(middleware.HTTPMeterName))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)
	engine.Use(middleware.Profiling(profiler.IsEnabled()))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))

	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, version)
	engine.GET("/health", systemHandler.Health)

	if cfg.Swagger.Enabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	jwtMiddleware := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		Validator:   jwtService,
		Revocations: revocations,
		Logger:      log,
	})

	r := router.NewRouter(engine, router.WithAPIVersion("v1"), router.WithAlias("/api"))
	r.Register(handler.ReportRoutes(handler.NewReportHandler(exportService, templateService), jwtMiddleware)).
		Register(handler.SystemRoutes(systemHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.Strings("api_prefixes", r.Prefixes()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func newLogger(cfg *config.Config, extra ...zapcore.Core) (*zap.Logger, error) {
	return logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, extra...)
}

// newArchiver returns the S3 report archive, falling back to a local
// directory, or nil when archiving is off or cannot be set up. Export never
// depends on the archive.
func newArchiver(ctx context.Context, cfg *config.Config, log *zap.Logger) reportapp.ReportArchiver {
	if !cfg.Report.Archive {
		return nil
	}
	if !cfg.Storage.Configured() {
		return newLocalArchiver(ctx, cfg.Storage, log)
	}

	archive, err := storage.NewS3ReportArchive(ctx, &cfg.Storage, storage.WithLogger(log.Named("archive")))
	if err != nil {
		log.Error("Failed to create report archive", zap.Error(err))
		return nil
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		log.Error("Report archive bucket unavailable", zap.String("bucket", cfg.Storage.Bucket), zap.Error(err))
		return nil
	}
	log.Info("Report archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	return archive
}

func newLocalArchiver(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) reportapp.ReportArchiver {
	if !cfg.LocalConfigured() {
		log.Warn("Report archive enabled but neither a bucket nor a local path is configured")
		return nil
	}
	archive, err := storage.NewFileSystemArchive(cfg.LocalPath, log.Named("archive"))
	if err != nil {
		log.Error("Failed to create local report archive", zap.Error(err))
		return nil
	}
	if cfg.Retention > 0 {
		go runArchiveCleanup(ctx, archive, cfg.Retention, log)
	}
	log.Info("Report archive enabled", zap.String("path", cfg.LocalPath))
	return archive
}

// runArchiveCleanup prunes the local archive once per retention tick
func runArchiveCleanup(ctx context.Context, archive *storage.FileSystemArchive, retention time.Duration, log *zap.Logger) {
	interval := min(retention, time.Hour)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if _, err := archive.CleanupOlderThan(ctx, retention); err != nil {
			log.Warn("Report archive cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// newRevocationStore uses redis when enabled and falls back to process
// memory otherwise
func newRevocationStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (auth.RevocationStore, func()) {
	if !cfg.Redis.Enabled {
		log.Info("Token revocation uses in-memory store")
		return auth.NewMemoryRevocationStore(), func() {}
	}

	client, err := auth.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, token revocation uses in-memory store",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err),
		)
		return auth.NewMemoryRevocationStore(), func() {}
	}

	log.Info("Token revocation uses redis", zap.String("addr", cfg.Redis.Addr()))
	return auth.NewRedisRevocationStore(client), func() {
		if err := client.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdownTelemetry(log *zap.Logger, tp, mp, lp shutdowner, profiler *telemetry.Profiler) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	for _, p := range []shutdowner{tp, mp, lp} {
		if err := p.Shutdown(ctx); err != nil {
			log.Error("Error shutting down telemetry provider", zap.Error(err))
		}
	}
}
