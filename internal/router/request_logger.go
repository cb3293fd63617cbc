package router

import (
	"net/http"
	"time"

	"neurowatch/internal/handlers"
	"neurowatch/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger writes one entry per handled request. Entries carry the gin
// route pattern rather than the raw path as the grouping key, plus the
// workspace and its role when the route loaded one.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ce := log.Check(requestLevel(status), requestMessage(status))
		if ce == nil {
			return
		}
		ce.Write(requestFields(c, time.Since(start))...)
	}
}

// requestLevel keeps the once-a-second upload polling at debug.
func requestLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status == http.StatusTooManyRequests:
		return zapcore.InfoLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.DebugLevel
	}
}

func requestMessage(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "Server error"
	case status == http.StatusTooManyRequests:
		return "Upload rate limited"
	case status >= http.StatusBadRequest:
		return "Client error"
	default:
		return "Request processed"
	}
}

func requestFields(c *gin.Context, latency time.Duration) []zap.Field {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("route", route),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Int("bytes", c.Writer.Size()),
		zap.Duration("latency", latency),
		zap.String("client_ip", c.ClientIP()),
		zap.Bool("htmx", c.GetHeader("HX-Request") == "true"),
	}
	if v, ok := c.Get(handlers.WorkspaceContextKey); ok {
		if ws, ok := v.(*repository.Workspace); ok {
			fields = append(fields,
				zap.String("workspace_id", ws.ID),
				zap.String("role", string(ws.Role())),
			)
		}
	}
	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("errors", c.Errors.String()))
	}
	return fields
}
