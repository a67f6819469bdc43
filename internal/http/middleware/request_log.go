package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"

	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
	"github.com/yungbote/quizbank-backend/internal/platform/logger"
)

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		log.Log(requestLevel(c.Writer.Status()), "HTTP request", requestFields(c, time.Since(start))...)
	}
}

func requestLevel(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// requestFields builds the access log line: the matched route (raw path for
// unmatched requests), outcome, correlation ids, caller and the quiz
// entities the route addressed.
func requestFields(c *gin.Context, elapsed time.Duration) []interface{} {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	fields := []interface{}{
		"method", strings.ToUpper(c.Request.Method),
		"path", path,
		"status", c.Writer.Status(),
		"duration_ms", elapsed.Milliseconds(),
	}
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil {
		if td.TraceID != "" {
			fields = append(fields, "trace_id", td.TraceID)
		}
		if td.RequestID != "" {
			fields = append(fields, "request_id", td.RequestID)
		}
		for _, res := range td.Resources {
			fields = append(fields, res.Key, res.ID)
		}
	}
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd != nil && rd.UserID != uuid.Nil {
		fields = append(fields, "user_id", rd.UserID.String())
	}
	if len(c.Errors) > 0 {
		fields = append(fields, "error", c.Errors.String())
	}
	return fields
}
