package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/quizbank-backend/internal/platform/ctxutil"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"

	maxRequestIDLen = 128
)

// AttachRequestScope assigns request and trace ids and records which
// question, competence or user the matched route addresses. The ids are
// echoed as response headers and tagged on the active span.
func AttachRequestScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		reqID := clientRequestID(c.GetHeader(headerRequestID))
		if reqID == "" {
			reqID = uuid.NewString()
		}

		span := trace.SpanFromContext(ctx)
		traceID := ""
		if sc := span.SpanContext(); sc.HasTraceID() {
			traceID = sc.TraceID().String()
		} else if h := clientRequestID(c.GetHeader(headerTraceID)); h != "" {
			traceID = h
		} else {
			traceID = uuid.NewString()
		}

		td := &ctxutil.TraceData{
			TraceID:   traceID,
			RequestID: reqID,
			Route:     c.FullPath(),
			Resources: routeResources(c.FullPath(), c.Params),
		}
		if span.IsRecording() {
			attrs := []attribute.KeyValue{attribute.String("quizbank.request_id", reqID)}
			for _, res := range td.Resources {
				attrs = append(attrs, attribute.String("quizbank."+res.Key, res.ID))
			}
			span.SetAttributes(attrs...)
		}

		c.Request = c.Request.WithContext(ctxutil.WithTraceData(ctx, td))
		c.Set("trace_id", traceID)
		c.Set("request_id", reqID)
		c.Writer.Header().Set(headerTraceID, traceID)
		c.Writer.Header().Set(headerRequestID, reqID)
		c.Next()
	}
}

// clientRequestID returns h when it is a usable id: bounded length and
// visible ASCII only. Anything else is dropped so it never reaches logs.
func clientRequestID(h string) string {
	h = strings.TrimSpace(h)
	if h == "" || len(h) > maxRequestIDLen {
		return ""
	}
	for i := 0; i < len(h); i++ {
		if h[i] <= ' ' || h[i] > '~' {
			return ""
		}
	}
	return h
}

// routeResources maps the :id and :competenceId params of the API routes to
// the entity they name. Routes without params yield nil.
func routeResources(fullPath string, params gin.Params) []ctxutil.RouteResource {
	route := strings.TrimPrefix(fullPath, "/api")
	var out []ctxutil.RouteResource
	if id := params.ByName("id"); id != "" {
		switch {
		case strings.HasPrefix(route, "/questions/"):
			out = append(out, ctxutil.RouteResource{Key: "question_id", ID: id})
		case strings.HasPrefix(route, "/competences/"):
			out = append(out, ctxutil.RouteResource{Key: "competence_id", ID: id})
		case strings.HasPrefix(route, "/users/"):
			out = append(out, ctxutil.RouteResource{Key: "target_user_id", ID: id})
		}
	}
	if id := params.ByName("competenceId"); id != "" {
		out = append(out, ctxutil.RouteResource{Key: "competence_id", ID: id})
	}
	return out
}
