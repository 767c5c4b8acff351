package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelRoute  = "route"
	ProfilingLabelMethod = "method"
	ProfilingLabelFormat = "report_format"
)

// Profiling tags CPU and allocation samples taken while a request runs with
// its route pattern and method, plus the report format for export routes.
// Unmatched routes are not labelled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		labels := profilingLabels(c)
		if len(labels) == 0 {
			c.Next()
			return
		}
		pyroscope.TagWrapper(c.Request.Context(), pyroscope.Labels(labels...), func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// profilingLabels returns key/value pairs; the route pattern keeps
// cardinality bounded
func profilingLabels(c *gin.Context) []string {
	route := c.FullPath()
	if route == "" {
		return nil
	}
	labels := []string{ProfilingLabelRoute, route, ProfilingLabelMethod, c.Request.Method}
	if format := c.Query("format"); format == "csv" || format == "pdf" {
		labels = append(labels, ProfilingLabelFormat, format)
	}
	return labels
}
