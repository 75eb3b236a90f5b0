package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger writes one access line per request, scoped by the request ID that
// RequestID assigned and, when a span is active, its trace ID.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		scoped := log.With().Str("request_id", GetRequestID(c))
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			scoped = scoped.Str("trace_id", sc.TraceID().String())
		}
		logger := scoped.Logger()

		event := logger.WithLevel(level).
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path)
		if raw := c.Request.URL.RawQuery; raw != "" {
			event = event.Str("query", raw)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.Last().Error())
		}

		event.
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("sales api request")
	}
}
