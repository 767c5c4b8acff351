package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
}

// Tracing returns the OpenTelemetry tracing handlers: otelgin, which opens
// the server span, followed by a handler that adds request_id, user_id and
// report.format to that span once the rest of the chain has run.
//
//	r.Use(middleware.Tracing(cfg)...)
func Tracing(cfg TracingConfig) gin.HandlersChain {
	if !cfg.Enabled {
		return gin.HandlersChain{func(c *gin.Context) { c.Next() }}
	}
	return gin.HandlersChain{otelgin.Middleware(cfg.ServiceName), enrichSpan}
}

func enrichSpan(c *gin.Context) {
	c.Next()

	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		return
	}
	if id := GetRequestID(c); id != "" {
		span.SetAttributes(attribute.String("request_id", id))
	}
	if id := GetJWTUserID(c); id != "" {
		span.SetAttributes(attribute.String("user_id", id))
	}
	if format := c.Query("format"); format != "" {
		span.SetAttributes(attribute.String("report.format", format))
	}
}
